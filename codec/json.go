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

import jsoniter "github.com/json-iterator/go"

// TypeJSON is a constant representing the "json" encoding type.
const TypeJSON Type = "json"

var jsonAPI = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

// JSONCodec implements JSON encoding. Objects are written with sorted keys
// and numbers are decoded as json.Number so no precision is lost.
type JSONCodec struct{}

// Encode converts the provided value v into a JSON-encoded byte slice.
func (JSONCodec) Encode(v any) ([]byte, error) {
	return jsonAPI.Marshal(v)
}

// Decode unmarshals the JSON-encoded data into the value pointed to by v.
func (JSONCodec) Decode(data []byte, v any) error {
	return jsonAPI.Unmarshal(data, v)
}
