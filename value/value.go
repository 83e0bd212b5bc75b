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

// Package value defines the universal value: the format-agnostic pivot between
// domain objects and text codecs.
//
// A [Value] is exactly one of [Null], [Primitive], [Collection] or [*Object].
// Consumers switch over the concrete types:
//
//	switch v := v.(type) {
//	case value.Null:
//	case value.Primitive:
//	case value.Collection:
//	case *value.Object:
//	}
//
// [ToNative] and [FromNative] convert between values and the generic
// nil/string/[]any/map[string]any shape exchanged with codecs.
package value

import (
	"strconv"
	"strings"
)

// Kind identifies the variant of a [Value].
type Kind int

const (
	// KindNull is the absence of a value.
	KindNull Kind = iota
	// KindPrimitive is a single string.
	KindPrimitive
	// KindCollection is an ordered sequence of values.
	KindCollection
	// KindObject is a mapping from names to values.
	KindObject
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindPrimitive:
		return "primitive"
	case KindCollection:
		return "collection"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is the universal value. The set of implementations is closed.
type Value interface {
	Kind() Kind
	sealed()
}

// Null is the null value.
type Null struct{}

// Kind implements [Value].
func (Null) Kind() Kind { return KindNull }

func (Null) sealed() {}

// Primitive is a single string value.
type Primitive string

// Kind implements [Value].
func (Primitive) Kind() Kind { return KindPrimitive }

func (Primitive) sealed() {}

// String returns the primitive's text.
func (p Primitive) String() string { return string(p) }

// Collection is an ordered sequence of values.
type Collection []Value

// Kind implements [Value].
func (Collection) Kind() Kind { return KindCollection }

func (Collection) sealed() {}

// Object is an insertion-ordered mapping from names to values.
// The zero value is not usable; create objects with [NewObject].
type Object struct {
	keys   []string
	values map[string]Value
}

// NewObject creates an empty object.
func NewObject() *Object {
	return &Object{values: make(map[string]Value)}
}

// Kind implements [Value].
func (*Object) Kind() Kind { return KindObject }

func (*Object) sealed() {}

// Set stores v under name. A new name is appended to the key order;
// an existing name keeps its position.
func (o *Object) Set(name string, v Value) *Object {
	if v == nil {
		v = Null{}
	}
	if _, ok := o.values[name]; !ok {
		o.keys = append(o.keys, name)
	}
	o.values[name] = v

	return o
}

// Get returns the value stored under name.
func (o *Object) Get(name string) (Value, bool) {
	v, ok := o.values[name]
	return v, ok
}

// Delete removes name from the object.
func (o *Object) Delete(name string) {
	if _, ok := o.values[name]; !ok {
		return
	}
	delete(o.values, name)
	for i, k := range o.keys {
		if k == name {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the names in insertion order.
func (o *Object) Keys() []string {
	return append([]string(nil), o.keys...)
}

// Len returns the number of entries.
func (o *Object) Len() int {
	return len(o.keys)
}

// Clone returns a shallow copy of the object.
func (o *Object) Clone() *Object {
	c := NewObject()
	for _, k := range o.keys {
		c.Set(k, o.values[k])
	}

	return c
}

// Equal reports whether a and b are structurally equal.
// Object key order is not significant.
func Equal(a, b Value) bool {
	if a == nil {
		a = Null{}
	}
	if b == nil {
		b = Null{}
	}
	if a.Kind() != b.Kind() {
		return false
	}

	switch av := a.(type) {
	case Null:
		return true
	case Primitive:
		return av == b.(Primitive)
	case Collection:
		bv := b.(Collection)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}

		return true
	case *Object:
		bv := b.(*Object)
		if av.Len() != bv.Len() {
			return false
		}
		for _, k := range av.keys {
			other, ok := bv.Get(k)
			if !ok || !Equal(av.values[k], other) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

// String renders the value in a compact, JSON-like notation for diagnostics.
func String(v Value) string {
	var sb strings.Builder
	write(&sb, v)

	return sb.String()
}

func write(sb *strings.Builder, v Value) {
	switch v := v.(type) {
	case nil, Null:
		sb.WriteString("null")
	case Primitive:
		sb.WriteString(strconv.Quote(string(v)))
	case Collection:
		sb.WriteByte('[')
		for i, e := range v {
			if i > 0 {
				sb.WriteByte(',')
			}
			write(sb, e)
		}
		sb.WriteByte(']')
	case *Object:
		sb.WriteByte('{')
		for i, k := range v.keys {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Quote(k))
			sb.WriteByte(':')
			write(sb, v.values[k])
		}
		sb.WriteByte('}')
	}
}
