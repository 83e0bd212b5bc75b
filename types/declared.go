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
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ErrArityMismatch is returned when a parameterized type is applied to a number
// of arguments that differs from the number of its parameters. It indicates an
// inconsistency between a type declaration and the context supplying it and is
// never recoverable.
var ErrArityMismatch = errors.New("type argument arity mismatch")

// Declared is a possibly-open type as written at a declaration site.
type Declared interface {
	fmt.Stringer
	resolve(ctx Context) (Type, error)
	unify(t Type, bindings map[string]Type) bool
}

// Constructor builds a closed Go type from resolved type arguments.
type Constructor struct {
	name   string
	params []string
	build  func(args []reflect.Type) (reflect.Type, bool)
}

// NewConstructor creates a type constructor. The build function returns false
// when the arguments cannot form a valid Go type.
func NewConstructor(name string, params []string, build func(args []reflect.Type) (reflect.Type, bool)) Constructor {
	return Constructor{name: name, params: append([]string(nil), params...), build: build}
}

// Name returns the base identifier produced by the constructor.
func (c Constructor) Name() string { return c.name }

// Params returns the generic parameter names.
func (c Constructor) Params() []string { return append([]string(nil), c.params...) }

// Built-in constructors.
var (
	SliceCtor = NewConstructor(BaseSlice, []string{ArgElem}, func(args []reflect.Type) (reflect.Type, bool) {
		return reflect.SliceOf(args[0]), true
	})
	PointerCtor = NewConstructor(BasePointer, []string{ArgElem}, func(args []reflect.Type) (reflect.Type, bool) {
		return reflect.PointerTo(args[0]), true
	})
	MapCtor = NewConstructor(BaseMap, []string{ArgKey, ArgElem}, func(args []reflect.Type) (reflect.Type, bool) {
		if !args[0].Comparable() {
			return nil, false
		}

		return reflect.MapOf(args[0], args[1]), true
	})
)

// ArrayCtor returns the constructor of arrays with n elements.
func ArrayCtor(n int) Constructor {
	return NewConstructor(arrayBase(n), []string{ArgElem}, func(args []reflect.Type) (reflect.Type, bool) {
		return reflect.ArrayOf(n, args[0]), true
	})
}

type concrete struct{ t Type }

type variable struct{ name string }

type wildcard struct{}

type applied struct {
	ctor Constructor
	args []Declared
}

// Concrete declares a closed Go type.
func Concrete(rt reflect.Type) Declared { return concrete{t: Of(rt)} }

// Var declares a type variable.
func Var(name string) Declared { return variable{name: name} }

// Wildcard declares an unbounded wildcard. It always resolves to [Unsupported].
func Wildcard() Declared { return wildcard{} }

// Apply declares the application of a type constructor to arguments.
func Apply(ctor Constructor, args ...Declared) Declared {
	return applied{ctor: ctor, args: args}
}

// SliceOf declares []elem.
func SliceOf(elem Declared) Declared { return Apply(SliceCtor, elem) }

// PointerTo declares *elem.
func PointerTo(elem Declared) Declared { return Apply(PointerCtor, elem) }

// MapOf declares map[key]elem.
func MapOf(key, elem Declared) Declared { return Apply(MapCtor, key, elem) }

// ArrayOf declares [n]elem.
func ArrayOf(n int, elem Declared) Declared { return Apply(ArrayCtor(n), elem) }

// Resolve closes a declared type against the bindings of ctx.
// It returns [ErrArityMismatch] when a constructor is applied to the wrong
// number of arguments.
func Resolve(d Declared, ctx Context) (Type, error) {
	if d == nil {
		return Unsupported, nil
	}

	return d.resolve(ctx)
}

// MustResolve is like [Resolve] but panics on error.
func MustResolve(d Declared, ctx Context) Type {
	t, err := Resolve(d, ctx)
	if err != nil {
		panic(fmt.Sprintf("types.MustResolve: %v", err))
	}

	return t
}

// Unify matches template against the closed type t and returns the bindings of
// the template's variables. Wildcards match any type.
func Unify(template Declared, t Type) (Context, bool) {
	bindings := make(map[string]Type)
	if template == nil || !template.unify(t, bindings) {
		return Context{}, false
	}

	return Context{bindings: bindings}, true
}

func (c concrete) resolve(Context) (Type, error) { return c.t, nil }

func (c concrete) unify(t Type, _ map[string]Type) bool { return c.t.Equal(t) }

func (c concrete) String() string { return c.t.String() }

func (v variable) resolve(ctx Context) (Type, error) {
	if t, ok := ctx.Lookup(v.name); ok {
		return t, nil
	}

	return Unsupported, nil
}

func (v variable) unify(t Type, bindings map[string]Type) bool {
	if bound, ok := bindings[v.name]; ok {
		return bound.Equal(t)
	}
	bindings[v.name] = t

	return true
}

func (v variable) String() string { return v.name }

func (wildcard) resolve(Context) (Type, error) { return Unsupported, nil }

func (wildcard) unify(Type, map[string]Type) bool { return true }

func (wildcard) String() string { return BaseUnsupported }

func (a applied) resolve(ctx Context) (Type, error) {
	if len(a.args) != len(a.ctor.params) {
		return Unsupported, fmt.Errorf("%w: %s expects %d arguments %v, got %d",
			ErrArityMismatch, a.ctor.name, len(a.ctor.params), a.ctor.params, len(a.args))
	}

	resolved := make([]Arg, len(a.args))
	rts := make([]reflect.Type, len(a.args))
	closed := true
	for i, arg := range a.args {
		t, err := Resolve(arg, ctx)
		if err != nil {
			return Unsupported, err
		}
		resolved[i] = Arg{Name: a.ctor.params[i], Type: t}
		rts[i] = t.Reflect()
		if rts[i] == nil {
			closed = false
		}
	}

	if !closed {
		return Type{base: a.ctor.name, args: resolved}, nil
	}

	rt, ok := a.ctor.build(rts)
	if !ok || rt == nil {
		return Unsupported, nil
	}
	t := Of(rt)
	if t.base != a.ctor.name {
		// User constructors may produce named types: keep the declared shape.
		return Type{base: a.ctor.name, rt: rt, args: resolved}, nil
	}

	return t, nil
}

func (a applied) unify(t Type, bindings map[string]Type) bool {
	if t.Base() != a.ctor.name || len(t.args) != len(a.args) || len(a.args) != len(a.ctor.params) {
		return false
	}
	for i, arg := range a.args {
		if t.args[i].Name != a.ctor.params[i] || !arg.unify(t.args[i].Type, bindings) {
			return false
		}
	}

	return true
}

func (a applied) String() string {
	parts := make([]string, len(a.args))
	for i, arg := range a.args {
		parts[i] = arg.String()
	}

	switch {
	case a.ctor.name == BasePointer && len(parts) == 1:
		return "*" + parts[0]
	case a.ctor.name == BaseMap && len(parts) == 2:
		return "map[" + parts[0] + "]" + parts[1]
	case strings.HasPrefix(a.ctor.name, "[") && len(parts) == 1:
		return a.ctor.name + parts[0]
	}

	return a.ctor.name + "[" + strings.Join(parts, ", ") + "]"
}
