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

// Package definition describes how a single type is serialized and deserialized.
//
// There are three kinds of definitions:
//
//   - [CustomPrimitive]: the type is written as a single string.
//   - [SerializedObject]: the type is written as a map of named fields.
//   - [Collection]: the type is written as an ordered sequence of one element type.
//
// Every definition carries a serializer, a deserializer, or both. The
// constructors reject definitions with neither side ([ErrNoSides]).
package definition

import (
	"errors"
	"fmt"
	"reflect"

	"rivaas.dev/marshal/types"
)

// ErrNoSides is returned when a definition has neither a serializer nor a deserializer.
var ErrNoSides = errors.New("definition requires a serializer or a deserializer")

// Kind identifies the kind of a [Definition].
type Kind int

const (
	// KindCustomPrimitive is a type written as a single string.
	KindCustomPrimitive Kind = iota
	// KindSerializedObject is a type written as a map of named fields.
	KindSerializedObject
	// KindCollection is a type written as a homogeneous ordered sequence.
	KindCollection
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindCustomPrimitive:
		return "custom primitive"
	case KindSerializedObject:
		return "serialized object"
	case KindCollection:
		return "collection"
	default:
		return "unknown"
	}
}

// Definition describes the conversion of one type.
type Definition interface {
	// Type returns the type the definition applies to.
	Type() types.Type
	// Kind returns the definition kind.
	Kind() Kind
	// CanSerialize reports whether a serializer is present.
	CanSerialize() bool
	// CanDeserialize reports whether a deserializer is present.
	CanDeserialize() bool
	// Children returns the types this definition requires definitions for.
	Children() []types.Type
}

// ConversionError is raised by built-in string conversions when the input
// cannot be converted to the target type.
type ConversionError struct {
	Type  reflect.Type
	Input string
	Err   error
}

// Error returns a formatted error message.
func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert %q to %s: %v", e.Input, e.Type, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConversionError) Unwrap() error {
	return e.Err
}

// Adapt converts v to want. It handles the pointer and value forms of the same
// type: T is addressed into *T and *T is dereferenced into T (nil becomes the
// zero value).
func Adapt(v reflect.Value, want reflect.Type) reflect.Value {
	if !v.IsValid() {
		return reflect.Zero(want)
	}
	if v.Type() == want {
		return v
	}
	if v.Type().AssignableTo(want) {
		out := reflect.New(want).Elem()
		out.Set(v)

		return out
	}
	if want.Kind() == reflect.Pointer && v.Type() == want.Elem() {
		p := reflect.New(v.Type())
		p.Elem().Set(v)

		return p
	}
	if v.Kind() == reflect.Pointer && v.Type().Elem() == want {
		if v.IsNil() {
			return reflect.Zero(want)
		}

		return v.Elem()
	}
	if v.Kind() == reflect.Pointer && want.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Zero(want)
		}

		return Adapt(Adapt(v.Elem(), want.Elem()), want)
	}
	if v.Kind() == want.Kind() && v.Type().ConvertibleTo(want) {
		return v.Convert(want)
	}

	return reflect.Zero(want)
}
