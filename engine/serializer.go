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
	"fmt"
	"reflect"
	"strconv"

	"rivaas.dev/marshal/definition"
	"rivaas.dev/marshal/registry"
	"rivaas.dev/marshal/types"
	"rivaas.dev/marshal/validation"
	"rivaas.dev/marshal/value"
)

// PropertyInjector rewrites the top-level object produced by serialization,
// for example to add request-scoped values that are not on the Go value.
// Returning nil keeps the object unchanged.
type PropertyInjector func(*value.Object) *value.Object

// Serializer converts Go values to universal values.
type Serializer struct {
	reg    *registry.Registry
	inject PropertyInjector
}

// NewSerializer creates a serializer over reg. inject may be nil.
func NewSerializer(reg *registry.Registry, inject PropertyInjector) *Serializer {
	return &Serializer{reg: reg, inject: inject}
}

// Serialize converts v, applying the serializer's property injector.
func (s *Serializer) Serialize(v any) (value.Value, error) {
	return s.SerializeWith(v, s.inject)
}

// SerializeWith converts v, applying inject instead of the configured injector.
func (s *Serializer) SerializeWith(v any, inject PropertyInjector) (value.Value, error) {
	sr := &serialization{reg: s.reg, active: make(map[identity]struct{})}

	out, err := sr.serialize(reflect.ValueOf(v), "")
	if err != nil {
		return nil, err
	}

	if obj, ok := out.(*value.Object); ok && inject != nil {
		if rewritten := inject(obj); rewritten != nil {
			out = rewritten
		}
	}

	return out, nil
}

// identity is a reference being serialized: a pointer, a map or a slice
// window (backing array and length).
type identity struct {
	typ reflect.Type
	ptr uintptr
	n   int
}

// serialization is the state of one Serialize call.
type serialization struct {
	reg    *registry.Registry
	active map[identity]struct{}
}

func (sr *serialization) serialize(rv reflect.Value, path string) (value.Value, error) {
unwrap:
	for {
		if !rv.IsValid() {
			return value.Null{}, nil
		}

		switch rv.Kind() {
		case reflect.Interface:
			if rv.IsNil() {
				return value.Null{}, nil
			}
			rv = rv.Elem()

			continue
		case reflect.Pointer:
			if rv.IsNil() {
				return value.Null{}, nil
			}
			id := identity{typ: rv.Type(), ptr: rv.Pointer()}
			if _, ok := sr.active[id]; ok {
				return nil, &CircularReferenceError{Type: types.Of(rv.Type().Elem()), Path: path}
			}
			sr.active[id] = struct{}{}
			defer delete(sr.active, id)
			rv = rv.Elem()

			continue
		case reflect.Slice, reflect.Map:
			if rv.IsNil() {
				return value.Null{}, nil
			}
		}

		break unwrap
	}

	// Slices sharing a backing array and maps can close a cycle without a pointer.
	if (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Map) && rv.Len() > 0 {
		id := identity{typ: rv.Type(), ptr: rv.Pointer(), n: rv.Len()}
		if _, ok := sr.active[id]; ok {
			return nil, &CircularReferenceError{Type: types.Of(rv.Type()), Path: path}
		}
		sr.active[id] = struct{}{}
		defer delete(sr.active, id)
	}

	def, err := sr.reg.LookupReflect(rv.Type())
	if err != nil {
		return nil, err
	}
	if !def.CanSerialize() {
		return nil, fmt.Errorf("%w: %s", ErrNoSerializer, def.Type())
	}

	switch d := def.(type) {
	case *definition.CustomPrimitive:
		s, err := d.Serializer()(rv)
		if err != nil {
			return nil, fmt.Errorf("serialize %s at %s: %w", d.Type(), displayPath(path), err)
		}

		return value.Primitive(s), nil

	case *definition.Collection:
		i := 0
		out, err := d.Serializer()(rv, func(elem reflect.Value) (value.Value, error) {
			v, err := sr.serialize(elem, validation.JoinPath(path, strconv.Itoa(i)))
			i++

			return v, err
		})
		if err != nil {
			return nil, err
		}

		return out, nil

	case *definition.SerializedObject:
		obj := value.NewObject()
		for _, f := range d.Serializer().Fields {
			v, err := sr.serialize(f.Get(rv), validation.JoinPath(path, f.Name))
			if err != nil {
				return nil, err
			}
			if v.Kind() == value.KindNull {
				continue
			}
			obj.Set(f.Name, v)
		}

		return obj, nil

	default:
		return nil, fmt.Errorf("serialize %s: unsupported definition %T", def.Type(), def)
	}
}

func displayPath(path string) string {
	if path == "" {
		return "<root>"
	}

	return path
}
