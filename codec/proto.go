// Copyright 2026 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package codec

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// TypeProto is a constant representing the "proto" encoding type.
const TypeProto Type = "proto"

// ProtoCodec encodes values as the protobuf wire form of google.protobuf.Value.
type ProtoCodec struct{}

// Encode encodes the given value 'v' to protobuf bytes.
func (ProtoCodec) Encode(v any) ([]byte, error) {
	pv, err := structpb.NewValue(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedValue, err)
	}

	return proto.MarshalOptions{Deterministic: true}.Marshal(pv)
}

// Decode decodes protobuf bytes into the value pointed to by v, which must
// be a *any.
func (ProtoCodec) Decode(data []byte, v any) error {
	out, err := target(v)
	if err != nil {
		return err
	}

	var pv structpb.Value
	if err := proto.Unmarshal(data, &pv); err != nil {
		return err
	}
	*out = pv.AsInterface()

	return nil
}
