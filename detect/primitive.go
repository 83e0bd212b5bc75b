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
	"encoding"
	"fmt"
	"reflect"
	"regexp"

	"github.com/samber/lo"

	"rivaas.dev/marshal/definition"
	"rivaas.dev/marshal/types"
)

var (
	stringType          = reflect.TypeFor[string]()
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// Default names and patterns of the built-in custom-primitive detectors.
var (
	DefaultAccessorNames = []string{"String"}
	// DefaultFactoryNames are formatted with the type name.
	DefaultFactoryNames  = []string{"Parse%s", "New%s"}

	DefaultAccessorPattern      = regexp.MustCompile(`^(String|Text|Format)$`)
	DefaultStringFactoryPattern = regexp.MustCompile(`^(Parse|New|From|Must)`)
)

// PrimitiveStrategy is a custom-primitive detector built from two independent
// side finders. A finder returns a [Rejection] when its side is absent.
type PrimitiveStrategy struct {
	Label            string
	FindSerializer   func(scope *Scope, rt reflect.Type) (definition.PrimitiveSerializer, error)
	FindDeserializer func(scope *Scope, rt reflect.Type) (definition.PrimitiveDeserializer, error)
}

// Name implements [Detector].
func (s PrimitiveStrategy) Name() string {
	return s.Label
}

// Detect implements [Detector]. Only the sides required by caps are looked up.
func (s PrimitiveStrategy) Detect(scope *Scope, t types.Type, caps Capabilities) (definition.Definition, error) {
	rt := t.Reflect()

	var (
		ser   definition.PrimitiveSerializer
		deser definition.PrimitiveDeserializer
		err   error
	)
	if caps.Serialize() {
		if s.FindSerializer == nil {
			return nil, Reject("no serializer strategy")
		}
		if ser, err = s.FindSerializer(scope, rt); err != nil {
			return nil, err
		}
	}
	if caps.Deserialize() {
		if s.FindDeserializer == nil {
			return nil, Reject("no deserializer strategy")
		}
		if deser, err = s.FindDeserializer(scope, rt); err != nil {
			return nil, err
		}
	}

	return definition.NewCustomPrimitive(t, ser, deser)
}

// DefaultPrimitiveDetectors returns the built-in custom-primitive detectors in
// the order they are tried.
func DefaultPrimitiveDetectors() []Detector {
	return []Detector{
		Marker(),
		ByName(DefaultAccessorNames, DefaultFactoryNames),
		ByPattern(DefaultAccessorPattern, DefaultStringFactoryPattern),
		SingleCandidate(),
		Scalar(),
	}
}

// Marker detects types that declare their string form by implementing
// [encoding.TextMarshaler] and [encoding.TextUnmarshaler].
func Marker() Detector {
	return PrimitiveStrategy{
		Label: "marker",
		FindSerializer: func(_ *Scope, rt reflect.Type) (definition.PrimitiveSerializer, error) {
			if !reflect.PointerTo(rt).Implements(textMarshalerType) {
				return nil, Reject("%s does not implement encoding.TextMarshaler", rt)
			}

			return func(v reflect.Value) (string, error) {
				b, err := addressable(v, rt).Interface().(encoding.TextMarshaler).MarshalText()
				return string(b), err
			}, nil
		},
		FindDeserializer: func(_ *Scope, rt reflect.Type) (definition.PrimitiveDeserializer, error) {
			if !reflect.PointerTo(rt).Implements(textUnmarshalerType) {
				return nil, Reject("%s does not implement encoding.TextUnmarshaler", rt)
			}

			return func(s string) (reflect.Value, error) {
				p := reflect.New(rt)
				if err := p.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
					return reflect.Value{}, err
				}

				return p.Elem(), nil
			}, nil
		},
	}
}

// ByName detects an accessor and a string factory by exact name.
// Factory names are formatted with the type name, so "Parse%s" finds
// ParseColor for the type Color. Earlier names take precedence.
func ByName(accessors, factories []string) Detector {
	return PrimitiveStrategy{
		Label: "by name",
		FindSerializer: func(_ *Scope, rt reflect.Type) (definition.PrimitiveSerializer, error) {
			all := stringAccessors(rt)
			for _, name := range accessors {
				if a, ok := lo.Find(all, func(a accessor) bool { return a.name == name }); ok {
					return a.serializer(rt), nil
				}
			}

			return nil, Reject("no accessor named %v", accessors)
		},
		FindDeserializer: func(scope *Scope, rt reflect.Type) (definition.PrimitiveDeserializer, error) {
			if rt.Name() == "" {
				return nil, Reject("%s has no name", rt)
			}
			all := stringFactories(scope, rt)
			names := lo.Map(factories, func(format string, _ int) string {
				return fmt.Sprintf(format, rt.Name())
			})
			for _, name := range names {
				if f, ok := lo.Find(all, func(f Factory) bool { return f.name == name }); ok {
					return stringDeserializer(f, rt), nil
				}
			}

			return nil, Reject("no string factory named %v", names)
		},
	}
}

// ByPattern detects an accessor and a string factory whose names match the
// given patterns. Each side requires a unique match.
func ByPattern(accessorPattern, factoryPattern *regexp.Regexp) Detector {
	return PrimitiveStrategy{
		Label: "by pattern",
		FindSerializer: func(_ *Scope, rt reflect.Type) (definition.PrimitiveSerializer, error) {
			matches := lo.Filter(stringAccessors(rt), func(a accessor, _ int) bool {
				return accessorPattern.MatchString(a.name)
			})
			switch len(matches) {
			case 1:
				return matches[0].serializer(rt), nil
			case 0:
				return nil, Reject("no accessor matches %s", accessorPattern)
			default:
				return nil, Reject("accessors %v all match %s", accessorNames(matches), accessorPattern)
			}
		},
		FindDeserializer: func(scope *Scope, rt reflect.Type) (definition.PrimitiveDeserializer, error) {
			matches := lo.Filter(stringFactories(scope, rt), func(f Factory, _ int) bool {
				return factoryPattern.MatchString(f.name)
			})
			switch len(matches) {
			case 1:
				return stringDeserializer(matches[0], rt), nil
			case 0:
				return nil, Reject("no string factory matches %s", factoryPattern)
			default:
				return nil, Reject("string factories %v all match %s", factoryNames(matches), factoryPattern)
			}
		},
	}
}

// SingleCandidate detects the only string accessor and the only string
// factory of a type.
func SingleCandidate() Detector {
	return PrimitiveStrategy{
		Label: "single candidate",
		FindSerializer: func(_ *Scope, rt reflect.Type) (definition.PrimitiveSerializer, error) {
			all := stringAccessors(rt)
			if len(all) != 1 {
				return nil, Reject("%d string accessors", len(all))
			}

			return all[0].serializer(rt), nil
		},
		FindDeserializer: func(scope *Scope, rt reflect.Type) (definition.PrimitiveDeserializer, error) {
			all := stringFactories(scope, rt)
			if len(all) != 1 {
				return nil, Reject("%d string factories", len(all))
			}

			return stringDeserializer(all[0], rt), nil
		},
	}
}

// accessor is a method taking no arguments and returning a string and an
// optional error. index is its position in the method set of *T.
type accessor struct {
	name  string
	index int
	errs  bool
}

// stringAccessors lists the string accessors of rt and *rt in method name order.
func stringAccessors(rt reflect.Type) []accessor {
	pt := reflect.PointerTo(rt)
	var out []accessor
	for i := range pt.NumMethod() {
		m := pt.Method(i)
		mt := m.Type
		if mt.NumIn() != 1 || mt.Out(0) != stringType {
			continue
		}
		switch {
		case mt.NumOut() == 1:
			out = append(out, accessor{name: m.Name, index: i})
		case mt.NumOut() == 2 && mt.Out(1) == errorType:
			out = append(out, accessor{name: m.Name, index: i, errs: true})
		}
	}

	return out
}

func (a accessor) serializer(rt reflect.Type) definition.PrimitiveSerializer {
	return func(v reflect.Value) (string, error) {
		out := addressable(v, rt).Method(a.index).Call(nil)
		if a.errs && !out[1].IsNil() {
			return "", out[1].Interface().(error)
		}

		return out[0].String(), nil
	}
}

func accessorNames(as []accessor) []string {
	return lo.Map(as, func(a accessor, _ int) string { return a.name })
}

// stringFactories lists the pool factories building rt from one string.
func stringFactories(scope *Scope, rt reflect.Type) []Factory {
	return lo.Filter(scope.factoriesFor(rt), func(f Factory, _ int) bool {
		return f.takesString()
	})
}

func stringDeserializer(f Factory, rt reflect.Type) definition.PrimitiveDeserializer {
	build := f.build(rt)

	return func(s string) (reflect.Value, error) {
		return build([]reflect.Value{reflect.ValueOf(s)})
	}
}

func factoryNames(fs []Factory) []string {
	return lo.Map(fs, func(f Factory, _ int) string { return f.name })
}

// addressable returns a pointer to a copy of v so that methods with pointer
// receivers can be called.
func addressable(v reflect.Value, rt reflect.Type) reflect.Value {
	p := reflect.New(rt)
	p.Elem().Set(definition.Adapt(v, rt))

	return p
}
