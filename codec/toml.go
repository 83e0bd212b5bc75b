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

	"github.com/BurntSushi/toml"
)

// TypeTOML is a constant representing the "toml" encoding type.
const TypeTOML Type = "toml"

// TOMLCodec implements TOML encoding. A TOML document is always a table, so
// only objects can be encoded.
type TOMLCodec struct{}

// Encode encodes the given value 'v' to a TOML-encoded byte slice.
func (TOMLCodec) Encode(v any) ([]byte, error) {
	if _, ok := v.(map[string]any); !ok {
		return nil, fmt.Errorf("%w: toml documents must be objects, got %T", ErrUnsupportedValue, v)
	}

	return toml.Marshal(v)
}

// Decode decodes the TOML-encoded data into the value pointed to by v,
// which must be a *any.
func (TOMLCodec) Decode(data []byte, v any) error {
	out, err := target(v)
	if err != nil {
		return err
	}

	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return err
	}
	*out = doc

	return nil
}
