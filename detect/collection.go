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
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"rivaas.dev/marshal/definition"
	"rivaas.dev/marshal/types"
	"rivaas.dev/marshal/value"
)

// ErrLength is wrapped by conversion errors for fixed-size collections that
// receive too many elements.
var ErrLength = errors.New("too many elements")

// Shape is a collection detector for one homogeneous-sequence shape.
type Shape struct {
	// Label names the shape in rejections and detector listings.
	Label string
	// Elem returns the element type when t has this shape.
	Elem func(t types.Type) (types.Type, bool)
	// Flatten serializes the collection to an ordered sequence.
	Flatten definition.CollectionSerializer
	// Build constructs the native collection from an ordered sequence.
	Build definition.CollectionDeserializer
}

// Template returns an element matcher for shapes described by a declared type.
// elem names the template variable bound to the element type.
//
//	detect.Template(types.SliceOf(types.Var("E")), "E")
func Template(tpl types.Declared, elem string) func(types.Type) (types.Type, bool) {
	return func(t types.Type) (types.Type, bool) {
		ctx, ok := types.Unify(tpl, t)
		if !ok {
			return types.Unsupported, false
		}

		return ctx.Lookup(elem)
	}
}

// Name implements [Detector].
func (s Shape) Name() string {
	return s.Label
}

// Detect implements [Detector].
func (s Shape) Detect(_ *Scope, t types.Type, caps Capabilities) (definition.Definition, error) {
	elem, ok := s.Elem(t)
	if !ok {
		return nil, Reject("not a %s", s.Label)
	}

	var (
		ser   definition.CollectionSerializer
		deser definition.CollectionDeserializer
	)
	if caps.Serialize() {
		if s.Flatten == nil {
			return nil, Reject("%s cannot be serialized", s.Label)
		}
		ser = s.Flatten
	}
	if caps.Deserialize() {
		if s.Build == nil {
			return nil, Reject("%s cannot be deserialized", s.Label)
		}
		deser = s.Build
	}

	return definition.NewCollection(t, elem, ser, deser)
}

// DefaultShapes returns the built-in shapes: slices, arrays and sets.
func DefaultShapes() []Shape {
	return []Shape{SliceShape(), ArrayShape(), SetShape()}
}

// SliceShape matches []E. Byte slices are excluded and handled as scalars.
func SliceShape() Shape {
	match := Template(types.SliceOf(types.Var("E")), "E")

	return Shape{
		Label: "slice",
		Elem: func(t types.Type) (types.Type, bool) {
			elem, ok := match(t)
			if !ok || elem.Reflect() == nil || elem.Reflect() == byteType {
				return types.Unsupported, false
			}

			return elem, true
		},
		Flatten: flattenIndexed,
		Build: func(rt reflect.Type, in value.Collection, each func(int, value.Value) (reflect.Value, error)) (reflect.Value, error) {
			out := reflect.MakeSlice(rt, len(in), len(in))
			if err := fillIndexed(out, in, each); err != nil {
				return reflect.Value{}, err
			}

			return out, nil
		},
	}
}

// ArrayShape matches [N]E.
func ArrayShape() Shape {
	return Shape{
		Label: "array",
		Elem: func(t types.Type) (types.Type, bool) {
			base := t.Base()
			if !strings.HasPrefix(base, "[") || base == types.BaseSlice {
				return types.Unsupported, false
			}

			return t.Elem()
		},
		Flatten: flattenIndexed,
		Build: func(rt reflect.Type, in value.Collection, each func(int, value.Value) (reflect.Value, error)) (reflect.Value, error) {
			if len(in) > rt.Len() {
				return reflect.Value{}, &definition.ConversionError{
					Type:  rt,
					Input: fmt.Sprintf("%d elements", len(in)),
					Err:   ErrLength,
				}
			}
			out := reflect.New(rt).Elem()
			if err := fillIndexed(out, in, each); err != nil {
				return reflect.Value{}, err
			}

			return out, nil
		},
	}
}

// SetShape matches map[E]struct{} and map[E]bool. Only keys mapped to true
// are members of a map[E]bool set. Members are serialized in a stable order.
func SetShape() Shape {
	empty := types.MapOf(types.Var("E"), types.Concrete(reflect.TypeFor[struct{}]()))
	flags := types.MapOf(types.Var("E"), types.Concrete(reflect.TypeFor[bool]()))
	matchEmpty := Template(empty, "E")
	matchFlags := Template(flags, "E")

	return Shape{
		Label: "set",
		Elem: func(t types.Type) (types.Type, bool) {
			if elem, ok := matchEmpty(t); ok {
				return elem, true
			}

			return matchFlags(t)
		},
		Flatten: func(coll reflect.Value, each func(reflect.Value) (value.Value, error)) (value.Collection, error) {
			flags := coll.Type().Elem().Kind() == reflect.Bool
			out := make(value.Collection, 0, coll.Len())
			iter := coll.MapRange()
			for iter.Next() {
				if flags && !iter.Value().Bool() {
					continue
				}
				v, err := each(iter.Key())
				if err != nil {
					return nil, err
				}
				out = append(out, v)
			}
			slices.SortFunc(out, func(a, b value.Value) int {
				return strings.Compare(value.String(a), value.String(b))
			})

			return out, nil
		},
		Build: func(rt reflect.Type, in value.Collection, each func(int, value.Value) (reflect.Value, error)) (reflect.Value, error) {
			member := reflect.New(rt.Elem()).Elem()
			if member.Kind() == reflect.Bool {
				member.SetBool(true)
			}

			out := reflect.MakeMapWithSize(rt, len(in))
			for i, v := range in {
				key, err := each(i, v)
				if err != nil {
					return reflect.Value{}, err
				}
				if !key.IsValid() {
					continue
				}
				out.SetMapIndex(definition.Adapt(key, rt.Key()), member)
			}

			return out, nil
		},
	}
}

func flattenIndexed(coll reflect.Value, each func(reflect.Value) (value.Value, error)) (value.Collection, error) {
	out := make(value.Collection, coll.Len())
	for i := range coll.Len() {
		v, err := each(coll.Index(i))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	return out, nil
}

func fillIndexed(out reflect.Value, in value.Collection, each func(int, value.Value) (reflect.Value, error)) error {
	elem := out.Type().Elem()
	for i, v := range in {
		ev, err := each(i, v)
		if err != nil {
			return err
		}
		out.Index(i).Set(definition.Adapt(ev, elem))
	}

	return nil
}
