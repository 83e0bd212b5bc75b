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

// Field is a named, typed value extracted from an object during serialization.
type Field struct {
	Name string
	Type types.Type
	// Get extracts the field value from an object of the definition's type.
	Get func(obj reflect.Value) reflect.Value
}

// Param is a named, typed argument of a reconstructing factory.
type Param struct {
	Name string
	Type types.Type
}

// ObjectSerializer lists the fields written for an object.
type ObjectSerializer struct {
	Fields []Field
}

// ObjectDeserializer reconstructs an object from its named fields.
type ObjectDeserializer struct {
	// Name identifies the reconstructing factory in diagnostics.
	Name string
	// Params are the fields the factory requires, in call order.
	Params []Param
	// Construct calls the factory with one argument per parameter.
	Construct func(args []reflect.Value) (reflect.Value, error)
}

// SerializedObject is the definition of a type written as a map of named fields.
type SerializedObject struct {
	typ          types.Type
	serializer   *ObjectSerializer
	deserializer *ObjectDeserializer
}

// NewSerializedObject creates a serialized object definition.
func NewSerializedObject(t types.Type, ser *ObjectSerializer, deser *ObjectDeserializer) (*SerializedObject, error) {
	if ser == nil && deser == nil {
		return nil, ErrNoSides
	}

	return &SerializedObject{typ: t, serializer: ser, deserializer: deser}, nil
}

// Type implements [Definition].
func (d *SerializedObject) Type() types.Type { return d.typ }

// Kind implements [Definition].
func (d *SerializedObject) Kind() Kind { return KindSerializedObject }

// CanSerialize implements [Definition].
func (d *SerializedObject) CanSerialize() bool { return d.serializer != nil }

// CanDeserialize implements [Definition].
func (d *SerializedObject) CanDeserialize() bool { return d.deserializer != nil }

// Serializer returns the serializer, or nil.
func (d *SerializedObject) Serializer() *ObjectSerializer { return d.serializer }

// Deserializer returns the deserializer, or nil.
func (d *SerializedObject) Deserializer() *ObjectDeserializer { return d.deserializer }

// Children implements [Definition]. It returns the union of the serializer's
// field types and the deserializer's parameter types.
func (d *SerializedObject) Children() []types.Type {
	var out []types.Type
	add := func(t types.Type) {
		for _, seen := range out {
			if seen.Equal(t) {
				return
			}
		}
		out = append(out, t)
	}

	if d.serializer != nil {
		for _, f := range d.serializer.Fields {
			add(f.Type)
		}
	}
	if d.deserializer != nil {
		for _, p := range d.deserializer.Params {
			add(p.Type)
		}
	}

	return out
}
