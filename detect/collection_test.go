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

//go:build !integration

package detect_test

import (
	"errors"
	"reflect"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/marshal/definition"
	"rivaas.dev/marshal/detect"
	"rivaas.dev/marshal/types"
	"rivaas.dev/marshal/value"
)

func detectCollection(t *testing.T, typ types.Type) *definition.Collection {
	t.Helper()

	def, err := newPipeline(t).Detect(typ, detect.Both)
	require.NoError(t, err)

	coll, ok := def.(*definition.Collection)
	require.True(t, ok, "got %s", def.Kind())

	return coll
}

func serializeInts(v reflect.Value) (value.Value, error) {
	return value.Primitive(strconv.FormatInt(v.Int(), 10)), nil
}

func parseInts(_ int, v value.Value) (reflect.Value, error) {
	n, err := strconv.Atoi(string(v.(value.Primitive)))
	if err != nil {
		return reflect.Value{}, err
	}

	return reflect.ValueOf(n), nil
}

func TestSliceShape(t *testing.T) {
	t.Parallel()

	coll := detectCollection(t, types.For[[]int]())
	assert.True(t, coll.Elem().Equal(types.For[int]()))

	out, err := coll.Serializer()(reflect.ValueOf([]int{3, 1, 2}), serializeInts)
	require.NoError(t, err)
	assert.Equal(t, value.Collection{value.Primitive("3"), value.Primitive("1"), value.Primitive("2")}, out)

	v, err := coll.Deserializer()(reflect.TypeFor[[]int](), out, parseInts)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 2}, v.Interface())
}

func TestSliceShape_ElementErrorStops(t *testing.T) {
	t.Parallel()

	coll := detectCollection(t, types.For[[]int]())
	boom := errors.New("boom")

	_, err := coll.Deserializer()(reflect.TypeFor[[]int](), value.Collection{value.Primitive("1")},
		func(int, value.Value) (reflect.Value, error) { return reflect.Value{}, boom })
	require.ErrorIs(t, err, boom)
}

func TestSliceShape_PointerElements(t *testing.T) {
	t.Parallel()

	coll := detectCollection(t, types.For[[]*Point]())
	assert.True(t, coll.Elem().Equal(types.For[*Point]()))

	p := Point{}
	v, err := coll.Deserializer()(reflect.TypeFor[[]*Point](), value.Collection{value.Null{}, value.NewObject()},
		func(i int, _ value.Value) (reflect.Value, error) {
			if i == 0 {
				return reflect.Value{}, nil
			}

			return reflect.ValueOf(p), nil
		})
	require.NoError(t, err)

	got := v.Interface().([]*Point)
	require.Len(t, got, 2)
	assert.Nil(t, got[0])
	assert.Equal(t, &p, got[1])
}

func TestArrayShape(t *testing.T) {
	t.Parallel()

	coll := detectCollection(t, types.For[[3]int]())

	v, err := coll.Deserializer()(reflect.TypeFor[[3]int](), value.Collection{value.Primitive("7")}, parseInts)
	require.NoError(t, err)
	assert.Equal(t, [3]int{7, 0, 0}, v.Interface())

	in := value.Collection{value.Primitive("1"), value.Primitive("2"), value.Primitive("3"), value.Primitive("4")}
	_, err = coll.Deserializer()(reflect.TypeFor[[3]int](), in, parseInts)
	var cerr *definition.ConversionError
	require.ErrorAs(t, err, &cerr)
	require.ErrorIs(t, err, detect.ErrLength)
}

func TestSetShape(t *testing.T) {
	t.Parallel()

	coll := detectCollection(t, types.For[map[int]struct{}]())

	out, err := coll.Serializer()(reflect.ValueOf(map[int]struct{}{3: {}, 1: {}, 2: {}}), serializeInts)
	require.NoError(t, err)
	assert.Equal(t, value.Collection{value.Primitive("1"), value.Primitive("2"), value.Primitive("3")}, out,
		"members are serialized in a stable order")

	v, err := coll.Deserializer()(reflect.TypeFor[map[int]struct{}](), out, parseInts)
	require.NoError(t, err)
	assert.Equal(t, map[int]struct{}{1: {}, 2: {}, 3: {}}, v.Interface())
}

func TestSetShape_BoolFlags(t *testing.T) {
	t.Parallel()

	coll := detectCollection(t, types.For[map[int]bool]())

	out, err := coll.Serializer()(reflect.ValueOf(map[int]bool{1: true, 2: false}), serializeInts)
	require.NoError(t, err)
	assert.Equal(t, value.Collection{value.Primitive("1")}, out)

	v, err := coll.Deserializer()(reflect.TypeFor[map[int]bool](), out, parseInts)
	require.NoError(t, err)
	assert.Equal(t, map[int]bool{1: true}, v.Interface())
}

func TestShape_Template(t *testing.T) {
	t.Parallel()

	match := detect.Template(types.MapOf(types.Var("K"), types.Var("V")), "V")

	elem, ok := match(types.For[map[string]float64]())
	require.True(t, ok)
	assert.True(t, elem.Equal(types.For[float64]()))

	_, ok = match(types.For[[]string]())
	assert.False(t, ok)
}

func TestShape_Capabilities(t *testing.T) {
	t.Parallel()

	readOnly := detect.SliceShape()
	readOnly.Flatten = nil

	_, err := readOnly.Detect(nil, types.For[[]int](), detect.Both)
	require.ErrorIs(t, err, detect.ErrNotDetected)

	def, err := readOnly.Detect(nil, types.For[[]int](), detect.Deserialize)
	require.NoError(t, err)
	assert.False(t, def.CanSerialize())
}
