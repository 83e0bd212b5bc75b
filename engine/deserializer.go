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
	"errors"
	"fmt"
	"reflect"
	"strconv"

	"rivaas.dev/marshal/definition"
	"rivaas.dev/marshal/registry"
	"rivaas.dev/marshal/types"
	"rivaas.dev/marshal/validation"
	"rivaas.dev/marshal/value"
)

// CodeTypeMismatch is the validation code recorded when the input has a
// different shape than the target type expects.
const CodeTypeMismatch = "type_mismatch"

// Deserializer converts universal values to Go values.
//
// Errors raised while converting a field or element are mapped through the
// validation table and collected per property path; the walk continues with
// the remaining siblings. Errors no rule matches abort the call with an
// [*UnmappedError].
type Deserializer struct {
	reg   *registry.Registry
	table *validation.Table
}

// NewDeserializer creates a deserializer over reg. A nil table maps no
// errors, so every data error is reported as unmapped.
func NewDeserializer(reg *registry.Registry, table *validation.Table) *Deserializer {
	return &Deserializer{reg: reg, table: table}
}

// Deserialize converts in to a value of type t. inj may be nil.
//
// When one or more fields fail, the returned error is a [*validation.Error]
// listing every failure in input order.
func (d *Deserializer) Deserialize(in value.Value, t types.Type, inj *Injector) (reflect.Value, error) {
	ds := &deserialization{Deserializer: d, inj: inj}
	root := &node{}

	out, err := ds.deserialize(in, t, root)
	if err != nil {
		return reflect.Value{}, err
	}

	var fields []validation.FieldError
	root.flatten(&fields)
	if len(fields) > 0 {
		return reflect.Value{}, &validation.Error{Fields: fields}
	}

	return out, nil
}

// deserialization is the state of one Deserialize call.
type deserialization struct {
	*Deserializer
	inj *Injector
}

// deserialize returns an error only for failures that abort the call. Data
// errors are recorded at n and reported through a zero value.
func (ds *deserialization) deserialize(in value.Value, t types.Type, n *node) (reflect.Value, error) {
	rt := t.Reflect()
	if in == nil || in.Kind() == value.KindNull {
		return zero(t), nil
	}
	if rt == nil {
		return reflect.Value{}, &registry.NotFoundError{Type: t}
	}

	def, err := ds.reg.LookupReflect(rt)
	if err != nil {
		return reflect.Value{}, err
	}
	if !def.CanDeserialize() {
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrNoDeserializer, def.Type())
	}

	switch def := def.(type) {
	case *definition.CustomPrimitive:
		p, ok := in.(value.Primitive)
		if !ok {
			n.mismatch(value.KindPrimitive, in)
			return zero(t), nil
		}
		out, err := def.Deserializer()(string(p))
		if err != nil {
			return zero(t), ds.handle(err, def.Type(), n)
		}

		return definition.Adapt(out, rt), nil

	case *definition.Collection:
		coll, ok := in.(value.Collection)
		if !ok {
			n.mismatch(value.KindCollection, in)
			return zero(t), nil
		}
		elem := def.Elem()
		out, err := def.Deserializer()(def.Type().Reflect(), coll, func(i int, v value.Value) (reflect.Value, error) {
			ev, err := ds.deserialize(v, elem, n.child(strconv.Itoa(i)))
			if err != nil {
				return reflect.Value{}, &fatalError{err: err}
			}

			return ev, nil
		})
		if err != nil {
			var fe *fatalError
			if errors.As(err, &fe) {
				return reflect.Value{}, fe.err
			}

			return zero(t), ds.handle(err, def.Type(), n)
		}

		return definition.Adapt(out, rt), nil

	case *definition.SerializedObject:
		obj, ok := in.(*value.Object)
		if !ok {
			n.mismatch(value.KindObject, in)
			return zero(t), nil
		}

		return ds.object(def, obj, t, n)

	default:
		return reflect.Value{}, fmt.Errorf("deserialize %s: unsupported definition %T", def.Type(), def)
	}
}

func (ds *deserialization) object(def *definition.SerializedObject, obj *value.Object, t types.Type, n *node) (reflect.Value, error) {
	deser := def.Deserializer()
	args := make([]reflect.Value, len(deser.Params))

	for i, p := range deser.Params {
		c := n.child(p.Name)

		in, ok := obj.Get(p.Name)
		if !ok {
			args[i] = ds.injected(c.path, p.Type)
			continue
		}

		v, err := ds.deserialize(in, p.Type, c)
		if err != nil {
			return reflect.Value{}, err
		}
		args[i] = v
	}

	if n.failed() {
		return zero(t), nil
	}

	out, err := deser.Construct(args)
	if err != nil {
		return zero(t), ds.handle(err, def.Type(), n)
	}

	return definition.Adapt(out, t.Reflect()), nil
}

// injected returns the injected value for an absent field, or the zero value.
func (ds *deserialization) injected(path string, t types.Type) reflect.Value {
	v, ok := ds.inj.Lookup(path, t)
	if !ok {
		return zero(t)
	}

	rv := reflect.ValueOf(v)
	if rt := t.Reflect(); rt != nil {
		return definition.Adapt(rv, rt)
	}

	return rv
}

// handle records err at n if the validation table maps it, and returns an
// [*UnmappedError] otherwise.
func (ds *deserialization) handle(err error, t types.Type, n *node) error {
	fields, ok := ds.table.Map(err, n.path)
	if !ok {
		return &UnmappedError{Path: n.path, Type: t, Err: err}
	}
	n.record(fields...)

	return nil
}

func zero(t types.Type) reflect.Value {
	rt := t.Reflect()
	if rt == nil {
		return reflect.Value{}
	}

	return reflect.Zero(rt)
}

// fatalError carries an aborting error through a collection deserializer.
type fatalError struct {
	err error
}

func (e *fatalError) Error() string { return e.err.Error() }

func (e *fatalError) Unwrap() error { return e.err }

// node is one property path in the error tracker.
type node struct {
	path     string
	errs     []validation.FieldError
	children []*node
}

func (n *node) child(segment string) *node {
	c := &node{path: validation.JoinPath(n.path, segment)}
	n.children = append(n.children, c)

	return c
}

func (n *node) record(fields ...validation.FieldError) {
	n.errs = append(n.errs, fields...)
}

func (n *node) mismatch(want value.Kind, got value.Value) {
	n.record(validation.FieldError{
		Path:    n.path,
		Code:    CodeTypeMismatch,
		Message: fmt.Sprintf("expected %s, got %s", want, got.Kind()),
		Meta:    map[string]any{"expected": want.String(), "actual": got.Kind().String()},
	})
}

// failed reports whether n or any descendant recorded an error.
func (n *node) failed() bool {
	if len(n.errs) > 0 {
		return true
	}
	for _, c := range n.children {
		if c.failed() {
			return true
		}
	}

	return false
}

func (n *node) flatten(out *[]validation.FieldError) {
	*out = append(*out, n.errs...)
	for _, c := range n.children {
		c.flatten(out)
	}
}
