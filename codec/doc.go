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

// Package codec encodes and decodes the generic native shape exchanged with
// the marshalling engines.
//
// A native value is nil, a string, a []any of native values or a
// map[string]any of native values. Decoders may also produce numbers,
// booleans and typed maps; the value package normalizes those.
//
// # Built-in Codecs
//
//   - json: JSON with sorted object keys and numbers kept as text
//   - xml: XML elements with a type attribute per value
//   - yaml: YAML
//   - toml: TOML (documents must be objects)
//   - msgpack: MessagePack
//   - proto: protobuf wire encoding of google.protobuf.Value
//
// # Custom Codecs
//
// Register custom codecs on a [Registry]:
//
//	type MyCodec struct{}
//
//	func (MyCodec) Encode(v any) ([]byte, error) {
//	    // Custom encoding logic
//	    return data, nil
//	}
//
//	func (MyCodec) Decode(data []byte, v any) error {
//	    // Custom decoding logic
//	    return nil
//	}
//
//	reg := codec.Default()
//	err := reg.Register("myformat", MyCodec{})
package codec
