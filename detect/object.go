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
	"reflect"
	"regexp"
	"strings"

	"github.com/samber/lo"

	"rivaas.dev/marshal/definition"
	"rivaas.dev/marshal/types"
)

// DefaultObjectDetectors returns the built-in serialized-object detectors.
func DefaultObjectDetectors() []Detector {
	return []Detector{Struct()}
}

// Struct detects struct types as serialized objects.
//
// The serializer writes every exported field, named by the scope's tag, with
// embedded structs flattened and "-" fields excluded. Function and channel
// fields are never written.
//
// The deserializer is the single reconstructing factory whose parameter names
// and types equal the serialized field set. Struct literal construction is a
// candidate too when the struct has no unexported fields. Candidates are
// considered in registration order, the literal last. Ties are broken first
// by the scope's factory pattern and then by factories whose name contains
// the type name. When a tie remains the deserializer is not detected.
func Struct() Detector {
	return structDetector{}
}

type structDetector struct{}

func (structDetector) Name() string {
	return "struct"
}

func (structDetector) Detect(scope *Scope, t types.Type, caps Capabilities) (definition.Definition, error) {
	rt := t.Reflect()
	if rt.Kind() != reflect.Struct {
		return nil, Reject("%s is not a struct", rt)
	}

	info := getStructInfo(rt, scope.TagName)
	if info.err != nil {
		return nil, info.err
	}

	var (
		ser   *definition.ObjectSerializer
		deser *definition.ObjectDeserializer
	)
	if caps.Serialize() {
		ser = &definition.ObjectSerializer{Fields: lo.Map(info.fields, func(f fieldInfo, _ int) definition.Field {
			return definition.Field{Name: f.wire, Type: types.Of(f.typ), Get: fieldGetter(f.index)}
		})}
	}
	if caps.Deserialize() {
		candidates := reconstructors(scope, rt, info)
		chosen, err := pickReconstructor(candidates, scope.FactoryPattern, rt.Name())
		if err != nil {
			return nil, err
		}
		deser = chosen
	}

	return definition.NewSerializedObject(t, ser, deser)
}

// reconstructors lists the deserializer candidates of rt in registration order.
func reconstructors(scope *Scope, rt reflect.Type, info *structInfo) []*definition.ObjectDeserializer {
	var out []*definition.ObjectDeserializer
	for _, f := range scope.factoriesFor(rt) {
		// A one-string factory of a type without fields builds a custom primitive.
		if len(info.fields) == 0 && f.takesString() {
			continue
		}
		if !matchesFields(f.params, info.fields) {
			continue
		}
		out = append(out, &definition.ObjectDeserializer{
			Name:      f.name,
			Params:    f.Params(),
			Construct: f.build(rt),
		})
	}

	if !info.unexported {
		out = append(out, literal(rt, info.fields))
	}

	return out
}

// matchesFields reports whether params and fields are the same set of names and types.
func matchesFields(params []definition.Param, fields []fieldInfo) bool {
	if len(params) != len(fields) {
		return false
	}
	if len(lo.UniqBy(params, func(p definition.Param) string { return p.Name })) != len(params) {
		return false
	}

	return lo.EveryBy(fields, func(f fieldInfo) bool {
		return lo.ContainsBy(params, func(p definition.Param) bool {
			return p.Name == f.wire && p.Type.Reflect() == f.typ
		})
	})
}

func pickReconstructor(candidates []*definition.ObjectDeserializer, pattern *regexp.Regexp, typeName string) (*definition.ObjectDeserializer, error) {
	if len(candidates) == 0 {
		return nil, Reject("no reconstructing factory matches the serialized fields")
	}
	if len(candidates) == 1 {
		return candidates[0], nil
	}

	if pattern != nil {
		byPattern := lo.Filter(candidates, func(d *definition.ObjectDeserializer, _ int) bool {
			return d.Name != "" && pattern.MatchString(d.Name)
		})
		if len(byPattern) == 1 {
			return byPattern[0], nil
		}
		if len(byPattern) > 1 {
			candidates = byPattern
		}
	}

	if typeName != "" {
		byType := lo.Filter(candidates, func(d *definition.ObjectDeserializer, _ int) bool {
			return strings.Contains(d.Name, typeName)
		})
		if len(byType) == 1 {
			return byType[0], nil
		}
	}

	return nil, Reject("ambiguous reconstructing factories %v", lo.Map(candidates, func(d *definition.ObjectDeserializer, _ int) string {
		if d.Name == "" {
			return "struct literal"
		}

		return d.Name
	}))
}

// literal builds rt by setting its fields directly.
func literal(rt reflect.Type, fields []fieldInfo) *definition.ObjectDeserializer {
	params := lo.Map(fields, func(f fieldInfo, _ int) definition.Param {
		return definition.Param{Name: f.wire, Type: types.Of(f.typ)}
	})

	return &definition.ObjectDeserializer{
		Params: params,
		Construct: func(args []reflect.Value) (reflect.Value, error) {
			out := reflect.New(rt).Elem()
			for i, f := range fields {
				if !args[i].IsValid() {
					continue
				}
				fieldByIndexAlloc(out, f.index).Set(definition.Adapt(args[i], f.typ))
			}

			return out, nil
		},
	}
}

// fieldGetter returns the field at index, or an invalid value when an
// embedded pointer on the way is nil.
func fieldGetter(index []int) func(reflect.Value) reflect.Value {
	return func(obj reflect.Value) reflect.Value {
		v, err := obj.FieldByIndexErr(index)
		if err != nil {
			return reflect.Value{}
		}

		return v
	}
}

// fieldByIndexAlloc is like FieldByIndex but allocates nil embedded pointers.
func fieldByIndexAlloc(v reflect.Value, index []int) reflect.Value {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}

	return v
}
