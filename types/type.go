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

package types

import (
	"fmt"
	"reflect"
	"strings"
)

// Base identifiers of the built-in parameterized shapes.
const (
	BasePointer = "*"
	BaseSlice   = "[]"
	BaseMap     = "map"

	// BaseUnsupported identifies the unsupported marker.
	BaseUnsupported = "?"
)

// Argument names used by the built-in shapes.
const (
	ArgElem = "elem"
	ArgKey  = "key"
)

// Arg is a named type argument of a [Type].
type Arg struct {
	Name string
	Type Type
}

// Type is a closed, resolved type description.
// The zero value is the unsupported marker.
type Type struct {
	base string
	rt   reflect.Type
	args []Arg
}

// Unsupported is the marker for types that cannot be resolved to a concrete Go type.
var Unsupported = Type{base: BaseUnsupported}

// For returns the resolved type of T.
func For[T any]() Type {
	return Of(reflect.TypeFor[T]())
}

// Of resolves a Go type.
// Interfaces, functions, channels and unsafe pointers resolve to [Unsupported].
func Of(rt reflect.Type) Type {
	if rt == nil {
		return Unsupported
	}

	switch rt.Kind() {
	case reflect.Pointer:
		return Type{base: BasePointer, rt: rt, args: []Arg{{Name: ArgElem, Type: Of(rt.Elem())}}}
	case reflect.Slice:
		return Type{base: BaseSlice, rt: rt, args: []Arg{{Name: ArgElem, Type: Of(rt.Elem())}}}
	case reflect.Array:
		return Type{base: arrayBase(rt.Len()), rt: rt, args: []Arg{{Name: ArgElem, Type: Of(rt.Elem())}}}
	case reflect.Map:
		return Type{base: BaseMap, rt: rt, args: []Arg{
			{Name: ArgKey, Type: Of(rt.Key())},
			{Name: ArgElem, Type: Of(rt.Elem())},
		}}
	case reflect.Interface, reflect.Func, reflect.Chan, reflect.UnsafePointer, reflect.Invalid:
		return Unsupported
	default:
		return Type{base: qualifiedName(rt), rt: rt}
	}
}

func arrayBase(n int) string {
	return fmt.Sprintf("[%d]", n)
}

func qualifiedName(rt reflect.Type) string {
	if rt.PkgPath() == "" {
		return rt.String()
	}

	return rt.PkgPath() + "." + rt.Name()
}

// Reflect returns the Go type, or nil for unsupported types.
func (t Type) Reflect() reflect.Type {
	if t.IsUnsupported() {
		return nil
	}

	return t.rt
}

// Base returns the base type identifier.
func (t Type) Base() string {
	if t.base == "" {
		return BaseUnsupported
	}

	return t.base
}

// Args returns a copy of the type arguments in declaration order.
func (t Type) Args() []Arg {
	if len(t.args) == 0 {
		return nil
	}
	out := make([]Arg, len(t.args))
	copy(out, t.args)

	return out
}

// Arg returns the type argument with the given name.
func (t Type) Arg(name string) (Type, bool) {
	for _, a := range t.args {
		if a.Name == name {
			return a.Type, true
		}
	}

	return Unsupported, false
}

// Elem returns the "elem" argument of pointers, slices, arrays and maps.
func (t Type) Elem() (Type, bool) {
	return t.Arg(ArgElem)
}

// IsUnsupported reports whether t or any of its arguments is the unsupported marker.
func (t Type) IsUnsupported() bool {
	if t.base == "" || t.base == BaseUnsupported {
		return true
	}
	for _, a := range t.args {
		if a.Type.IsUnsupported() {
			return true
		}
	}

	return false
}

// IsPointer reports whether t is a pointer type.
func (t Type) IsPointer() bool {
	return t.base == BasePointer
}

// Indirect strips all pointer layers from t.
func (t Type) Indirect() Type {
	for t.IsPointer() {
		elem, _ := t.Elem()
		t = elem
	}

	return t
}

// Equal reports whether both types have the same base and equal arguments.
func (t Type) Equal(o Type) bool {
	if t.Base() != o.Base() || len(t.args) != len(o.args) {
		return false
	}
	if t.IsUnsupported() || o.IsUnsupported() {
		return t.IsUnsupported() == o.IsUnsupported() && t.String() == o.String()
	}
	if t.rt != o.rt {
		return false
	}
	for i := range t.args {
		if t.args[i].Name != o.args[i].Name || !t.args[i].Type.Equal(o.args[i].Type) {
			return false
		}
	}

	return true
}

// Name returns the short name of the type, without package path.
func (t Type) Name() string {
	if t.rt != nil && t.rt.Name() != "" {
		return t.rt.Name()
	}

	return t.String()
}

// String returns a Go-like notation of the type.
func (t Type) String() string {
	switch t.Base() {
	case BaseUnsupported:
		return BaseUnsupported
	case BasePointer:
		return "*" + t.argString(ArgElem)
	case BaseMap:
		return "map[" + t.argString(ArgKey) + "]" + t.argString(ArgElem)
	}
	if strings.HasPrefix(t.base, "[") {
		return t.base + t.argString(ArgElem)
	}
	if t.rt != nil {
		return t.rt.String()
	}

	return t.base
}

func (t Type) argString(name string) string {
	a, ok := t.Arg(name)
	if !ok {
		return BaseUnsupported
	}

	return a.String()
}
