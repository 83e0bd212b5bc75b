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

package definition

import (
	"reflect"

	"rivaas.dev/marshal/types"
)

// PrimitiveSerializer converts a value of the definition's type into its string form.
type PrimitiveSerializer func(v reflect.Value) (string, error)

// PrimitiveDeserializer builds a value of the definition's type from its string form.
type PrimitiveDeserializer func(s string) (reflect.Value, error)

// CustomPrimitive is the definition of a type written as a single string.
type CustomPrimitive struct {
	typ          types.Type
	serializer   PrimitiveSerializer
	deserializer PrimitiveDeserializer
}

// NewCustomPrimitive creates a custom primitive definition.
func NewCustomPrimitive(t types.Type, ser PrimitiveSerializer, deser PrimitiveDeserializer) (*CustomPrimitive, error) {
	if ser == nil && deser == nil {
		return nil, ErrNoSides
	}

	return &CustomPrimitive{typ: t, serializer: ser, deserializer: deser}, nil
}

// Type implements [Definition].
func (d *CustomPrimitive) Type() types.Type { return d.typ }

// Kind implements [Definition].
func (d *CustomPrimitive) Kind() Kind { return KindCustomPrimitive }

// CanSerialize implements [Definition].
func (d *CustomPrimitive) CanSerialize() bool { return d.serializer != nil }

// CanDeserialize implements [Definition].
func (d *CustomPrimitive) CanDeserialize() bool { return d.deserializer != nil }

// Children implements [Definition]. Custom primitives have no children.
func (d *CustomPrimitive) Children() []types.Type { return nil }

// Serializer returns the serializer, or nil.
func (d *CustomPrimitive) Serializer() PrimitiveSerializer { return d.serializer }

// Deserializer returns the deserializer, or nil.
func (d *CustomPrimitive) Deserializer() PrimitiveDeserializer { return d.deserializer }
