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

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"rivaas.dev/marshal/definition"
	"rivaas.dev/marshal/types"
)

var errorType = reflect.TypeFor[error]()

// Factory is a registered function that builds a value.
//
// Supported signatures are func(...) T, func(...) *T, func(...) (T, error)
// and func(...) (*T, error). Variadic functions are not supported.
type Factory struct {
	name    string
	fn      reflect.Value
	params  []definition.Param
	returns reflect.Type
	errs    bool
}

// NewFactory registers fn as a factory.
//
// params names the function's parameters in order. They can be omitted, in
// which case the parameters are named arg0, arg1 and so on. The factory name
// is the short name of the function symbol; use [Factory.Named] to override it.
func NewFactory(fn any, params ...string) (Factory, error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return Factory{}, fmt.Errorf("%w: %T is not a function", ErrInvalidFactory, fn)
	}
	ft := v.Type()
	if ft.IsVariadic() {
		return Factory{}, fmt.Errorf("%w: %s is variadic", ErrInvalidFactory, ft)
	}

	var errs bool
	switch ft.NumOut() {
	case 1:
	case 2:
		if ft.Out(1) != errorType {
			return Factory{}, fmt.Errorf("%w: second result of %s must be error", ErrInvalidFactory, ft)
		}
		errs = true
	default:
		return Factory{}, fmt.Errorf("%w: %s must return a value and an optional error", ErrInvalidFactory, ft)
	}

	returns := ft.Out(0)
	if returns.Kind() == reflect.Pointer {
		returns = returns.Elem()
	}
	if types.Of(returns).IsUnsupported() {
		return Factory{}, fmt.Errorf("%w: %s returns unsupported type %s", ErrInvalidFactory, ft, ft.Out(0))
	}

	if len(params) != 0 && len(params) != ft.NumIn() {
		return Factory{}, fmt.Errorf("%w: %s has %d parameters, %d names given",
			ErrInvalidFactory, ft, ft.NumIn(), len(params))
	}

	ps := make([]definition.Param, ft.NumIn())
	for i := range ps {
		name := fmt.Sprintf("arg%d", i)
		if len(params) > 0 {
			name = params[i]
		}
		ps[i] = definition.Param{Name: name, Type: types.Of(ft.In(i))}
	}

	return Factory{
		name:    funcName(v),
		fn:      v,
		params:  ps,
		returns: returns,
		errs:    errs,
	}, nil
}

// MustFactory is like [NewFactory] but panics on error.
func MustFactory(fn any, params ...string) Factory {
	f, err := NewFactory(fn, params...)
	if err != nil {
		panic(fmt.Sprintf("detect.MustFactory: %v", err))
	}

	return f
}

// Factories registers every function in fns with default parameter names.
// It is meant for string factories, whose parameter name is never matched.
func Factories(fns ...any) ([]Factory, error) {
	out := make([]Factory, 0, len(fns))
	for _, fn := range fns {
		f, err := NewFactory(fn)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}

	return out, nil
}

// funcName returns the short name of a function symbol:
// "example.com/pkg.NewPoint" becomes "NewPoint".
func funcName(v reflect.Value) string {
	fn := runtime.FuncForPC(v.Pointer())
	if fn == nil {
		return ""
	}
	name := fn.Name()
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}

	return strings.TrimSuffix(name, "-fm")
}

// Named returns a copy of f with the given name.
func (f Factory) Named(name string) Factory {
	f.name = name
	return f
}

// Name returns the factory name.
func (f Factory) Name() string { return f.name }

// Returns returns the built type with pointers stripped.
func (f Factory) Returns() reflect.Type { return f.returns }

// Params returns a copy of the declared parameters.
func (f Factory) Params() []definition.Param {
	return append([]definition.Param(nil), f.params...)
}

// String returns the factory name and parameters.
func (f Factory) String() string {
	parts := make([]string, len(f.params))
	for i, p := range f.params {
		parts[i] = p.Name + " " + p.Type.String()
	}

	return f.name + "(" + strings.Join(parts, ", ") + ")"
}

// takesString reports whether f consumes exactly one string.
func (f Factory) takesString() bool {
	return len(f.params) == 1 && f.params[0].Type.Reflect() == stringType
}

// Call invokes the factory. The result has the factory's declared result type.
func (f Factory) Call(args []reflect.Value) (reflect.Value, error) {
	in := make([]reflect.Value, len(args))
	for i, a := range args {
		in[i] = definition.Adapt(a, f.fn.Type().In(i))
	}

	out := f.fn.Call(in)
	if f.errs && !out[1].IsNil() {
		return reflect.Value{}, out[1].Interface().(error)
	}

	return out[0], nil
}

// build calls the factory and adapts the result to rt.
func (f Factory) build(rt reflect.Type) func(args []reflect.Value) (reflect.Value, error) {
	return func(args []reflect.Value) (reflect.Value, error) {
		v, err := f.Call(args)
		if err != nil {
			return reflect.Value{}, err
		}

		return definition.Adapt(v, rt), nil
	}
}
