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

package detect

import "strings"

// Capabilities selects the definition sides a detector must find.
type Capabilities uint8

const (
	// Serialize requires a serializer.
	Serialize Capabilities = 1 << iota
	// Deserialize requires a deserializer.
	Deserialize

	// Both requires a serializer and a deserializer.
	Both = Serialize | Deserialize
)

// Serialize reports whether the serializer side is required.
func (c Capabilities) Serialize() bool { return c&Serialize != 0 }

// Deserialize reports whether the deserializer side is required.
func (c Capabilities) Deserialize() bool { return c&Deserialize != 0 }

// Valid reports whether at least one side is required.
func (c Capabilities) Valid() bool { return c&Both != 0 && c&^Both == 0 }

// String returns "serialize", "deserialize", "serialize|deserialize" or "none".
func (c Capabilities) String() string {
	var parts []string
	if c.Serialize() {
		parts = append(parts, "serialize")
	}
	if c.Deserialize() {
		parts = append(parts, "deserialize")
	}
	if len(parts) == 0 {
		return "none"
	}

	return strings.Join(parts, "|")
}
