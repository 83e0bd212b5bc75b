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

package engine_test

import (
	"errors"
	"reflect"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/marshal/definition"
	"rivaas.dev/marshal/detect"
	"rivaas.dev/marshal/engine"
	"rivaas.dev/marshal/registry"
	"rivaas.dev/marshal/types"
	"rivaas.dev/marshal/validation"
	"rivaas.dev/marshal/value"
)

type Number struct {
	v int
}

func (n Number) String() string { return strconv.Itoa(n.v) }

func ParseNumber(s string) (Number, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return Number{}, err
	}

	return Number{v: v}, nil
}

type Point struct {
	X Number `json:"x"`
	Y Number `json:"y"`
}

func NewPoint(x, y Number) Point { return Point{X: x, Y: y} }

var errInverted = errors.New("lower bound above upper bound")

type Range struct {
	Lo int `json:"lo"`
	Hi int `json:"hi"`
}

func NewRange(lo, hi int) (Range, error) {
	if lo > hi {
		return Range{}, errInverted
	}

	return Range{Lo: lo, Hi: hi}, nil
}

type Item struct {
	Name  string `json:"name"`
	Count Number `json:"count"`
}

type Cart struct {
	Owner string  `json:"owner"`
	Items []Item  `json:"items"`
	Limit *Range  `json:"limit"`
	Note  *string `json:"note"`
}

type Link struct {
	Name string `json:"name"`
	Next *Link  `json:"next"`
}

type Fork struct {
	Left  *Link `json:"left"`
	Right *Link `json:"right"`
}

type Tree struct {
	Name     string `json:"name"`
	Children []Tree `json:"children"`
}

type Grove struct {
	Left  []Tree `json:"left"`
	Right []Tree `json:"right"`
}

// Label can only be written.
type Label struct {
	text string
}

type Tagged struct {
	Label Label `json:"label"`
}

func labelDefinition(t *testing.T) definition.Definition {
	t.Helper()

	def, err := definition.NewCustomPrimitive(types.For[Label](),
		func(v reflect.Value) (string, error) { return v.Interface().(Label).text, nil }, nil)
	require.NoError(t, err)

	return def
}

func testTable() *validation.Table {
	return validation.NewTable(
		validation.As(func(e *strconv.NumError, _ string) validation.FieldError {
			return validation.FieldError{Code: "invalid_number", Message: e.Error()}
		}),
		validation.As(func(e *definition.ConversionError, _ string) validation.FieldError {
			return validation.FieldError{Code: "invalid_value", Message: e.Error()}
		}),
		validation.Is(errInverted, validation.Message("inverted_range")),
	)
}

func buildRegistry(t *testing.T, roots ...types.Type) *registry.Registry {
	t.Helper()

	p := detect.MustNew(detect.WithFactories(
		detect.MustFactory(ParseNumber),
		detect.MustFactory(NewPoint, "x", "y"),
		detect.MustFactory(NewRange, "lo", "hi"),
	))
	b, err := registry.NewBuilder(p)
	require.NoError(t, err)

	b.AddDefinition(labelDefinition(t))
	for _, r := range roots {
		b.AddType(r)
	}
	reg, err := b.Build()
	require.NoError(t, err)

	return reg
}

func TestSerialize_Point(t *testing.T) {
	t.Parallel()

	s := engine.NewSerializer(buildRegistry(t, types.For[Point]()), nil)

	out, err := s.Serialize(NewPoint(Number{1}, Number{2}))
	require.NoError(t, err)
	assert.Equal(t, `{"x":"1","y":"2"}`, value.String(out))

	out, err = s.Serialize(&Point{})
	require.NoError(t, err)
	assert.Equal(t, `{"x":"0","y":"0"}`, value.String(out))
}

func TestSerialize_Nulls(t *testing.T) {
	t.Parallel()

	s := engine.NewSerializer(buildRegistry(t, types.For[Cart]()), nil)

	for _, v := range []any{nil, (*Cart)(nil), []Item(nil)} {
		out, err := s.Serialize(v)
		require.NoError(t, err)
		assert.Equal(t, value.KindNull, out.Kind())
	}

	out, err := s.Serialize(Cart{Owner: "ana"})
	require.NoError(t, err)
	assert.Equal(t, `{"owner":"ana"}`, value.String(out), "null fields are omitted")

	note := "gift"
	out, err = s.Serialize(Cart{
		Owner: "ana",
		Items: []Item{{Name: "pen", Count: Number{3}}},
		Limit: &Range{Lo: 1, Hi: 5},
		Note:  &note,
	})
	require.NoError(t, err)
	assert.Equal(t,
		`{"owner":"ana","items":[{"name":"pen","count":"3"}],"limit":{"lo":"1","hi":"5"},"note":"gift"}`,
		value.String(out))
}

func TestSerialize_Cycle(t *testing.T) {
	t.Parallel()

	s := engine.NewSerializer(buildRegistry(t, types.For[Fork]()), nil)

	a := &Link{Name: "a"}
	b := &Link{Name: "b", Next: a}
	a.Next = b

	_, err := s.Serialize(a)
	require.ErrorIs(t, err, engine.ErrCircularReference)

	var cycle *engine.CircularReferenceError
	require.ErrorAs(t, err, &cycle)
	assert.True(t, cycle.Type.Equal(types.For[Link]()))
	assert.Equal(t, "next.next", cycle.Path)
}

func TestSerialize_SharedNodesAreNotCycles(t *testing.T) {
	t.Parallel()

	s := engine.NewSerializer(buildRegistry(t, types.For[Fork]()), nil)

	shared := &Link{Name: "shared"}
	out, err := s.Serialize(Fork{Left: shared, Right: shared})
	require.NoError(t, err)
	assert.Equal(t, `{"left":{"name":"shared"},"right":{"name":"shared"}}`, value.String(out))

	// Equal but distinct values are unrelated.
	out, err = s.Serialize(Fork{Left: &Link{Name: "x"}, Right: &Link{Name: "x"}})
	require.NoError(t, err)
	assert.Equal(t, `{"left":{"name":"x"},"right":{"name":"x"}}`, value.String(out))
}

func TestSerialize_CycleThroughSlice(t *testing.T) {
	t.Parallel()

	s := engine.NewSerializer(buildRegistry(t, types.For[Grove]()), nil)

	// The copy stored in Children shares the backing array it is stored in.
	root := Tree{Name: "root", Children: make([]Tree, 1)}
	root.Children[0] = root

	_, err := s.Serialize(root)
	require.ErrorIs(t, err, engine.ErrCircularReference)

	var cycle *engine.CircularReferenceError
	require.ErrorAs(t, err, &cycle)
	assert.True(t, cycle.Type.Equal(types.For[[]Tree]()))
	assert.Equal(t, "children.0.children", cycle.Path)

	_, err = s.Serialize(Grove{Left: root.Children})
	require.ErrorIs(t, err, engine.ErrCircularReference)
}

func TestSerialize_SharedSlicesAreNotCycles(t *testing.T) {
	t.Parallel()

	s := engine.NewSerializer(buildRegistry(t, types.For[Grove]()), nil)

	shared := []Tree{{Name: "x"}}
	out, err := s.Serialize(Grove{Left: shared, Right: shared})
	require.NoError(t, err)
	assert.Equal(t, `{"left":[{"name":"x"}],"right":[{"name":"x"}]}`, value.String(out))

	out, err = s.Serialize(Grove{Left: []Tree{{Name: "x"}}, Right: []Tree{{Name: "x"}}})
	require.NoError(t, err)
	assert.Equal(t, `{"left":[{"name":"x"}],"right":[{"name":"x"}]}`, value.String(out))

	// A window of the same array is a different reference.
	nested := []Tree{{Name: "a"}, {Name: "b"}}
	out, err = s.Serialize(Tree{Name: "r", Children: []Tree{{Name: "w", Children: nested[:1]}}})
	require.NoError(t, err)
	assert.Equal(t, `{"name":"r","children":[{"name":"w","children":[{"name":"a"}]}]}`, value.String(out))
}

func TestSerialize_PropertyInjector(t *testing.T) {
	t.Parallel()

	reg := buildRegistry(t, types.For[Point]())
	s := engine.NewSerializer(reg, func(o *value.Object) *value.Object {
		return o.Set("kind", value.Primitive("point"))
	})

	out, err := s.Serialize(NewPoint(Number{1}, Number{2}))
	require.NoError(t, err)
	assert.Equal(t, `{"x":"1","y":"2","kind":"point"}`, value.String(out))

	out, err = s.SerializeWith(NewPoint(Number{1}, Number{2}), func(*value.Object) *value.Object { return nil })
	require.NoError(t, err)
	assert.Equal(t, `{"x":"1","y":"2"}`, value.String(out), "nil keeps the object")

	out, err = s.Serialize(Number{7})
	require.NoError(t, err)
	assert.Equal(t, `"7"`, value.String(out), "primitives are not injected")
}

func TestSerialize_Configuration(t *testing.T) {
	t.Parallel()

	s := engine.NewSerializer(buildRegistry(t, types.For[Point]()), nil)

	_, err := s.Serialize(map[string]int{"a": 1})
	require.ErrorIs(t, err, registry.ErrDefinitionNotFound)

	reg := buildRegistry(t, types.For[Tagged]())
	d := engine.NewDeserializer(reg, testTable())
	_, err = d.Deserialize(value.NewObject().Set("label", value.Primitive("x")), types.For[Tagged](), nil)
	require.ErrorIs(t, err, engine.ErrNoDeserializer)

	out, err := engine.NewSerializer(reg, nil).Serialize(Tagged{Label: Label{text: "hi"}})
	require.NoError(t, err)
	assert.Equal(t, `{"label":"hi"}`, value.String(out))
}

func TestDeserialize_Point(t *testing.T) {
	t.Parallel()

	d := engine.NewDeserializer(buildRegistry(t, types.For[Point]()), testTable())

	in := value.NewObject().Set("x", value.Primitive("1")).Set("y", value.Primitive("2"))
	out, err := d.Deserialize(in, types.For[Point](), nil)
	require.NoError(t, err)
	assert.Equal(t, NewPoint(Number{1}, Number{2}), out.Interface())

	ptr, err := d.Deserialize(in, types.For[*Point](), nil)
	require.NoError(t, err)
	assert.Equal(t, &Point{X: Number{1}, Y: Number{2}}, ptr.Interface())
}

func TestDeserialize_AggregatesFieldErrors(t *testing.T) {
	t.Parallel()

	d := engine.NewDeserializer(buildRegistry(t, types.For[Point]()), testTable())

	in := value.NewObject().Set("x", value.Primitive("abc")).Set("y", value.Primitive("2"))
	_, err := d.Deserialize(in, types.For[Point](), nil)
	require.ErrorIs(t, err, validation.ErrValidation)

	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "x", verr.Fields[0].Path)
	assert.Equal(t, "invalid_number", verr.Fields[0].Code)

	in = value.NewObject().Set("x", value.Primitive("abc")).Set("y", value.Primitive("def"))
	_, err = d.Deserialize(in, types.For[Point](), nil)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"x", "y"}, verr.Paths())
}

func TestDeserialize_NestedPaths(t *testing.T) {
	t.Parallel()

	d := engine.NewDeserializer(buildRegistry(t, types.For[Cart]()), testTable())

	item := func(name, count string) *value.Object {
		return value.NewObject().Set("name", value.Primitive(name)).Set("count", value.Primitive(count))
	}
	in := value.NewObject().
		Set("owner", value.Primitive("ana")).
		Set("items", value.Collection{item("pen", "1"), item("ink", "2"), item("cap", "many")}).
		Set("limit", value.NewObject().Set("lo", value.Primitive("9")).Set("hi", value.Primitive("1")))

	_, err := d.Deserialize(in, types.For[Cart](), nil)

	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"items.2.count", "limit"}, verr.Paths())
	assert.True(t, verr.HasCode("inverted_range"))
}

func TestDeserialize_Collections(t *testing.T) {
	t.Parallel()

	d := engine.NewDeserializer(buildRegistry(t, types.For[Cart]()), testTable())

	in := value.NewObject().
		Set("owner", value.Primitive("ana")).
		Set("items", value.Collection{
			value.NewObject().Set("name", value.Primitive("pen")).Set("count", value.Primitive("4")),
			value.Null{},
		}).
		Set("note", value.Primitive("gift"))

	out, err := d.Deserialize(in, types.For[Cart](), nil)
	require.NoError(t, err)

	cart := out.Interface().(Cart)
	assert.Equal(t, []Item{{Name: "pen", Count: Number{4}}, {}}, cart.Items)
	require.NotNil(t, cart.Note)
	assert.Equal(t, "gift", *cart.Note)
	assert.Nil(t, cart.Limit)
}

func TestDeserialize_TypeMismatch(t *testing.T) {
	t.Parallel()

	d := engine.NewDeserializer(buildRegistry(t, types.For[Cart]()), testTable())

	in := value.NewObject().
		Set("owner", value.NewObject()).
		Set("items", value.Primitive("pen"))

	_, err := d.Deserialize(in, types.For[Cart](), nil)

	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 2)
	assert.Equal(t, engine.CodeTypeMismatch, verr.Fields[0].Code)
	assert.Equal(t, "owner", verr.Fields[0].Path)
	assert.Equal(t, "expected primitive, got object", verr.Fields[0].Message)
	assert.Equal(t, "items", verr.Fields[1].Path)
}

func TestDeserialize_UnmappedErrorIsFatal(t *testing.T) {
	t.Parallel()

	table := validation.NewTable(validation.Is(errInverted, validation.Message("inverted_range")))
	d := engine.NewDeserializer(buildRegistry(t, types.For[Point]()), table)

	in := value.NewObject().Set("x", value.Primitive("abc")).Set("y", value.Primitive("def"))
	_, err := d.Deserialize(in, types.For[Point](), nil)
	require.ErrorIs(t, err, strconv.ErrSyntax)
	require.NotErrorIs(t, err, validation.ErrValidation)

	var unmapped *engine.UnmappedError
	require.ErrorAs(t, err, &unmapped)
	assert.Equal(t, "x", unmapped.Path)
	assert.True(t, unmapped.Type.Equal(types.For[Number]()))
}

func TestDeserialize_Injector(t *testing.T) {
	t.Parallel()

	d := engine.NewDeserializer(buildRegistry(t, types.For[Cart]()), testTable())
	in := value.NewObject().Set("items", value.Collection{})

	inj := engine.NewInjector().Put("owner", "from-path")
	engine.InjectType(inj, "from-type")
	engine.InjectType(inj, Range{Lo: 1, Hi: 2})

	out, err := d.Deserialize(in, types.For[Cart](), inj)
	require.NoError(t, err)

	cart := out.Interface().(Cart)
	assert.Equal(t, "from-path", cart.Owner, "path wins over type")
	assert.Equal(t, &Range{Lo: 1, Hi: 2}, cart.Limit, "pointer fields match the element type")
	assert.Equal(t, "from-type", *cart.Note)
	assert.Empty(t, cart.Items)

	out, err = d.Deserialize(in, types.For[Cart](), nil)
	require.NoError(t, err)
	assert.Empty(t, out.Interface().(Cart).Owner, "absent without injector")
}

func TestDeserialize_NullAndMissingDefinitions(t *testing.T) {
	t.Parallel()

	d := engine.NewDeserializer(buildRegistry(t, types.For[Point]()), testTable())

	out, err := d.Deserialize(value.Null{}, types.For[Point](), nil)
	require.NoError(t, err)
	assert.Equal(t, Point{}, out.Interface())

	_, err = d.Deserialize(value.Primitive("1"), types.For[Range](), nil)
	require.ErrorIs(t, err, registry.ErrDefinitionNotFound)

	_, err = d.Deserialize(value.Primitive("1"), types.For[any](), nil)
	require.ErrorIs(t, err, registry.ErrDefinitionNotFound)
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	reg := buildRegistry(t, types.For[Cart]())
	s := engine.NewSerializer(reg, nil)
	d := engine.NewDeserializer(reg, testTable())

	note := "n"
	want := Cart{
		Owner: "bo",
		Items: []Item{{Name: "a", Count: Number{1}}, {Name: "b", Count: Number{2}}},
		Limit: &Range{Lo: 0, Hi: 9},
		Note:  &note,
	}

	v, err := s.Serialize(want)
	require.NoError(t, err)
	out, err := d.Deserialize(v, types.For[Cart](), nil)
	require.NoError(t, err)
	assert.Equal(t, want, out.Interface())
}
