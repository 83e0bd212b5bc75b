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
	"rivaas.dev/marshal/value"
)

// CollectionSerializer flattens a collection into an ordered sequence,
// converting every element with each.
type CollectionSerializer func(coll reflect.Value, each func(elem reflect.Value) (value.Value, error)) (value.Collection, error)

// CollectionDeserializer builds a collection of the given type from an ordered
// sequence, converting every element with each.
type CollectionDeserializer func(rt reflect.Type, in value.Collection, each func(i int, elem value.Value) (reflect.Value, error)) (reflect.Value, error)

// Collection is the definition of a type written as a homogeneous ordered sequence.
type Collection struct {
	typ          types.Type
	elem         types.Type
	serializer   CollectionSerializer
	deserializer CollectionDeserializer
}

// NewCollection creates a collection definition with the given element type.
func NewCollection(t, elem types.Type, ser CollectionSerializer, deser CollectionDeserializer) (*Collection, error) {
	if ser == nil && deser == nil {
		return nil, ErrNoSides
	}

	return &Collection{typ: t, elem: elem, serializer: ser, deserializer: deser}, nil
}

// Type implements [Definition].
func (d *Collection) Type() types.Type { return d.typ }

// Kind implements [Definition].
func (d *Collection) Kind() Kind { return KindCollection }

// CanSerialize implements [Definition].
func (d *Collection) CanSerialize() bool { return d.serializer != nil }

// CanDeserialize implements [Definition].
func (d *Collection) CanDeserialize() bool { return d.deserializer != nil }

// Children implements [Definition]. It returns the element type.
func (d *Collection) Children() []types.Type { return []types.Type{d.elem} }

// Elem returns the element type.
func (d *Collection) Elem() types.Type { return d.elem }

// Serializer returns the serializer, or nil.
func (d *Collection) Serializer() CollectionSerializer { return d.serializer }

// Deserializer returns the deserializer, or nil.
func (d *Collection) Deserializer() CollectionDeserializer { return d.deserializer }
