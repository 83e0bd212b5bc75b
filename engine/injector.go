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

package engine

import (
	"reflect"

	"rivaas.dev/marshal/types"
)

// Injector supplies values for object fields that are absent from the input.
// A value registered for a property path takes precedence over one
// registered for the field's type.
//
// An Injector is not safe for concurrent modification; populate it before
// handing it to a deserialization call.
type Injector struct {
	byPath map[string]any
	byType map[reflect.Type]any
}

// NewInjector creates an empty injector.
func NewInjector() *Injector {
	return &Injector{
		byPath: make(map[string]any),
		byType: make(map[reflect.Type]any),
	}
}

// Put registers v for the dotted property path.
func (in *Injector) Put(path string, v any) *Injector {
	in.byPath[path] = v
	return in
}

// ForType registers v for fields of type rt.
func (in *Injector) ForType(rt reflect.Type, v any) *Injector {
	in.byType[rt] = v
	return in
}

// InjectType registers v for fields of type T.
func InjectType[T any](in *Injector, v T) *Injector {
	return in.ForType(reflect.TypeFor[T](), v)
}

// Len returns the number of registered values.
func (in *Injector) Len() int {
	if in == nil {
		return 0
	}

	return len(in.byPath) + len(in.byType)
}

// Lookup returns the value injected for a field at path of type t.
// The exact type is tried before its pointer-stripped form.
func (in *Injector) Lookup(path string, t types.Type) (any, bool) {
	if in == nil {
		return nil, false
	}
	if v, ok := in.byPath[path]; ok {
		return v, true
	}

	rt := t.Reflect()
	if rt == nil {
		return nil, false
	}
	if v, ok := in.byType[rt]; ok {
		return v, true
	}
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
		if v, ok := in.byType[rt]; ok {
			return v, true
		}
	}

	return nil, false
}
