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

package registry_test

import (
	"bytes"
	"errors"
	"log/slog"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/marshal/definition"
	"rivaas.dev/marshal/detect"
	"rivaas.dev/marshal/registry"
	"rivaas.dev/marshal/types"
)

type Money struct {
	cents int64
}

func (m Money) String() string { return strconv.FormatInt(m.cents, 10) }

func ParseMoney(s string) (Money, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	return Money{cents: n}, err
}

type Customer struct {
	Name string `json:"name"`
}

type LineItem struct {
	SKU   string `json:"sku"`
	Price Money  `json:"price"`
}

type Order struct {
	ID       string         `json:"id"`
	Items    []LineItem     `json:"items"`
	Customer *Customer      `json:"customer"`
	Meta     map[string]int `json:"meta"`
}

type Conflict struct {
	A string `json:"a"`
	B string `json:"a"`
}

type Holder struct {
	Conflict Conflict `json:"conflict"`
}

// Label can only be written.
type Label struct {
	text string
}

func (l Label) String() string { return l.text }

type recorder struct {
	events []registry.Event
}

func (r *recorder) handle(e registry.Event) {
	r.events = append(r.events, e)
}

func (r *recorder) messages(typ registry.EventType) []string {
	var out []string
	for _, e := range r.events {
		if e.Type == typ {
			out = append(out, e.Message+" "+argString(e.Args))
		}
	}

	return out
}

func argString(args []any) string {
	var sb strings.Builder
	for _, a := range args {
		sb.WriteString(" ")
		switch v := a.(type) {
		case string:
			sb.WriteString(v)
		case error:
			sb.WriteString(v.Error())
		}
	}

	return sb.String()
}

func newBuilder(t *testing.T, opts ...registry.Option) *registry.Builder {
	t.Helper()

	p := detect.MustNew(detect.WithFactories(detect.MustFactory(ParseMoney)))
	b, err := registry.NewBuilder(p, opts...)
	require.NoError(t, err)

	return b
}

func TestBuilder_Closure(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	reg, err := newBuilder(t, registry.WithEventHandler(rec.handle)).
		AddType(types.For[Order]()).
		Build()
	require.NoError(t, err)

	for _, typ := range []types.Type{
		types.For[Order](),
		types.For[string](),
		types.For[[]LineItem](),
		types.For[Customer](),
		types.For[*Customer](),
		types.For[LineItem](),
		types.For[Money](),
	} {
		_, err := reg.Lookup(typ)
		require.NoError(t, err, typ.String())
	}

	assert.True(t, reg.Types()[0].Equal(types.For[Order]()), "roots come first")
	assert.Equal(t, 6, reg.Len())

	_, err = reg.Lookup(types.For[map[string]int]())
	var nf *registry.NotFoundError
	require.ErrorAs(t, err, &nf)
	require.ErrorIs(t, err, registry.ErrDefinitionNotFound)
	assert.Equal(t, "definition not found for type map[string]int", err.Error())

	warnings := rec.messages(registry.EventWarning)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "map[string]int")
	assert.NotEmpty(t, rec.messages(registry.EventInfo))
}

func TestBuilder_ClosureOfEveryDefinition(t *testing.T) {
	t.Parallel()

	reg, err := newBuilder(t).AddType(types.For[Order]()).Build()
	require.NoError(t, err)

	for _, typ := range reg.Types() {
		def, err := reg.Lookup(typ)
		require.NoError(t, err)

		for _, child := range def.Children() {
			if child.Indirect().Equal(types.For[map[string]int]()) {
				continue
			}
			_, err := reg.Lookup(child)
			assert.NoError(t, err, "child %s of %s", child, typ)
		}
	}
}

func TestBuilder_RootMustBeDetected(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	_, err := newBuilder(t, registry.WithEventHandler(rec.handle)).
		AddType(types.For[map[string]int]()).
		Build()
	require.ErrorIs(t, err, detect.ErrNotDetected)
	assert.NotEmpty(t, rec.messages(registry.EventError))

	_, err = newBuilder(t).AddType(types.For[any]()).Build()
	require.ErrorIs(t, err, detect.ErrUnsupportedType)
}

func TestBuilder_ScannedTypesAreSoft(t *testing.T) {
	t.Parallel()

	reg, err := newBuilder(t).
		AddScanner(registry.Types(types.For[map[string]int](), types.For[Customer]())).
		Build()
	require.NoError(t, err)

	_, err = reg.LookupReflect(reflect.TypeFor[*Customer]())
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len(), "Customer and string")
}

func TestBuilder_ScannerError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	_, err := newBuilder(t).
		AddScanner(registry.ScannerFunc(func() ([]types.Type, error) { return nil, boom })).
		Build()
	require.ErrorIs(t, err, boom)
}

func TestBuilder_ExplicitDefinitionWins(t *testing.T) {
	t.Parallel()

	explicit, err := definition.NewCustomPrimitive(types.For[Customer](),
		func(v reflect.Value) (string, error) { return v.Interface().(Customer).Name, nil },
		func(s string) (reflect.Value, error) { return reflect.ValueOf(Customer{Name: s}), nil },
	)
	require.NoError(t, err)

	reg, err := newBuilder(t).
		AddDefinition(explicit).
		AddType(types.For[Order]()).
		Build()
	require.NoError(t, err)

	def, err := reg.Lookup(types.For[Customer]())
	require.NoError(t, err)
	assert.Same(t, explicit, def)
}

func TestBuilder_DuplicateExplicitDefinition(t *testing.T) {
	t.Parallel()

	ser := func(reflect.Value) (string, error) { return "", nil }
	a, _ := definition.NewCustomPrimitive(types.For[Customer](), ser, nil)
	b, _ := definition.NewCustomPrimitive(types.For[*Customer](), ser, nil)

	_, err := newBuilder(t).AddDefinition(a, b).Build()
	require.ErrorIs(t, err, registry.ErrDuplicateDefinition)
}

func TestBuilder_ConfigurationErrorAbortsBuild(t *testing.T) {
	t.Parallel()

	_, err := newBuilder(t).AddType(types.For[Holder]()).Build()
	require.ErrorIs(t, err, detect.ErrDuplicateField)
}

func TestBuilder_OneShot(t *testing.T) {
	t.Parallel()

	b := newBuilder(t).AddType(types.For[Customer]())
	_, err := b.Build()
	require.NoError(t, err)

	_, err = b.Build()
	require.ErrorIs(t, err, registry.ErrAlreadyBuilt)
}

func TestBuilder_Capabilities(t *testing.T) {
	t.Parallel()

	reg, err := newBuilder(t, registry.WithCapabilities(detect.Serialize)).
		AddType(types.For[Label]()).
		Build()
	require.NoError(t, err)

	def, err := reg.Lookup(types.For[Label]())
	require.NoError(t, err)
	assert.False(t, def.CanDeserialize())

	_, err = newBuilder(t).AddType(types.For[Label]()).Build()
	require.ErrorIs(t, err, detect.ErrNotDetected)
}

func TestNewBuilder_Validation(t *testing.T) {
	t.Parallel()

	_, err := registry.NewBuilder(nil)
	require.Error(t, err)

	_, err = registry.NewBuilder(detect.MustNew(), registry.WithCapabilities(0))
	require.ErrorIs(t, err, detect.ErrInvalidCapabilities)
}

func TestDefaultEventHandler(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := newBuilder(t, registry.WithLogger(logger)).AddType(types.For[Order]()).Build()
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG msg=\"definition added\"")
	assert.Contains(t, out, "level=WARN msg=\"type left out of registry\"")
	assert.Contains(t, out, "level=INFO msg=\"definition registry built\" definitions=6")

	assert.NotPanics(t, func() {
		registry.DefaultEventHandler(nil)(registry.Event{Type: registry.EventError, Message: "ignored"})
	})
}
