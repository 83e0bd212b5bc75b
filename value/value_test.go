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

package value

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObject_Order(t *testing.T) {
	t.Parallel()

	obj := NewObject().
		Set("b", Primitive("2")).
		Set("a", Primitive("1")).
		Set("b", Primitive("3"))

	assert.Equal(t, []string{"b", "a"}, obj.Keys())
	v, ok := obj.Get("b")
	require.True(t, ok)
	assert.Equal(t, Primitive("3"), v)

	obj.Delete("b")
	assert.Equal(t, []string{"a"}, obj.Keys())
	assert.Equal(t, 1, obj.Len())

	obj.Delete("missing")
	assert.Equal(t, 1, obj.Len())
}

func TestObject_SetNilStoresNull(t *testing.T) {
	t.Parallel()

	obj := NewObject().Set("x", nil)
	v, ok := obj.Get("x")
	require.True(t, ok)
	assert.Equal(t, KindNull, v.Kind())
}

func TestObject_Clone(t *testing.T) {
	t.Parallel()

	obj := NewObject().Set("a", Primitive("1"))
	clone := obj.Clone()
	clone.Set("b", Primitive("2"))

	assert.Equal(t, 1, obj.Len())
	assert.Equal(t, 2, clone.Len())
}

func TestEqual(t *testing.T) {
	t.Parallel()

	a := NewObject().Set("x", Primitive("1")).Set("tags", Collection{Primitive("a"), Null{}})
	b := NewObject().Set("tags", Collection{Primitive("a"), Null{}}).Set("x", Primitive("1"))
	c := NewObject().Set("x", Primitive("2")).Set("tags", Collection{Primitive("a"), Null{}})

	assert.True(t, Equal(a, b), "key order is not significant")
	assert.False(t, Equal(a, c))
	assert.True(t, Equal(nil, Null{}))
	assert.False(t, Equal(Primitive(""), Null{}))
	assert.False(t, Equal(Collection{}, Collection{Primitive("a")}))
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "null", KindNull.String())
	assert.Equal(t, "primitive", KindPrimitive.String())
	assert.Equal(t, "collection", KindCollection.String())
	assert.Equal(t, "object", KindObject.String())
	assert.Equal(t, "unknown", Kind(42).String())
}

func TestToNative(t *testing.T) {
	t.Parallel()

	v := NewObject().
		Set("name", Primitive("alice")).
		Set("tags", Collection{Primitive("a"), Null{}}).
		Set("address", NewObject().Set("zip", Primitive("12345")))

	assert.Equal(t, map[string]any{
		"name":    "alice",
		"tags":    []any{"a", nil},
		"address": map[string]any{"zip": "12345"},
	}, ToNative(v))
	assert.Nil(t, ToNative(Null{}))
	assert.Nil(t, ToNative(nil))
}

func TestFromNative(t *testing.T) {
	t.Parallel()

	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name   string
		native any
		want   Value
	}{
		{name: "nil", native: nil, want: Null{}},
		{name: "string", native: "x", want: Primitive("x")},
		{name: "bool", native: true, want: Primitive("true")},
		{name: "int", native: 42, want: Primitive("42")},
		{name: "uint64", native: uint64(7), want: Primitive("7")},
		{name: "float", native: 1.5, want: Primitive("1.5")},
		{name: "whole float", native: float64(2), want: Primitive("2")},
		{name: "json number", native: json.Number("12.50"), want: Primitive("12.50")},
		{name: "bytes", native: []byte("hi"), want: Primitive("aGk=")},
		{name: "time", native: ts, want: Primitive("2026-01-02T03:04:05Z")},
		{name: "list", native: []any{"a", 1}, want: Collection{Primitive("a"), Primitive("1")}},
		{name: "typed list", native: []map[string]any{{"a": "b"}}, want: Collection{NewObject().Set("a", Primitive("b"))}},
		{name: "map any", native: map[any]any{"b": 2, 1: "one"}, want: NewObject().Set("1", Primitive("one")).Set("b", Primitive("2"))},
		{name: "nil pointer", native: (*string)(nil), want: Null{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := FromNative(tt.native)
			require.NoError(t, err)
			assert.True(t, Equal(tt.want, got), "want %s, got %s", String(tt.want), String(got))
		})
	}
}

func TestFromNative_SortsKeys(t *testing.T) {
	t.Parallel()

	got, err := FromNative(map[string]any{"b": "2", "a": "1", "c": "3"})
	require.NoError(t, err)

	obj, ok := got.(*Object)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c"}, obj.Keys())
}

func TestFromNative_Unsupported(t *testing.T) {
	t.Parallel()

	_, err := FromNative(map[string]any{"ch": make(chan int)})
	require.ErrorIs(t, err, ErrUnsupportedNative)
	assert.Contains(t, err.Error(), `key "ch"`)
}

func TestString(t *testing.T) {
	t.Parallel()

	v := NewObject().Set("x", Primitive("1")).Set("l", Collection{Null{}, Primitive("a")})
	assert.Equal(t, `{"x":"1","l":[null,"a"]}`, String(v))
}
