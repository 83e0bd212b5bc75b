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

package marshal

import (
	"fmt"
	"reflect"

	"rivaas.dev/marshal/codec"
	"rivaas.dev/marshal/definition"
	"rivaas.dev/marshal/detect"
	"rivaas.dev/marshal/engine"
	"rivaas.dev/marshal/registry"
	"rivaas.dev/marshal/types"
	"rivaas.dev/marshal/validation"
	"rivaas.dev/marshal/value"
)

// CodeInvalidValue is the validation code of inputs a built-in conversion
// rejected, such as "abc" for an int field.
const CodeInvalidValue = "invalid_value"

// Marshaller converts registered types to and from universal values and
// text formats. It is safe for concurrent use.
type Marshaller struct {
	reg    *registry.Registry
	ser    *engine.Serializer
	deser  *engine.Deserializer
	codecs *codec.Registry
}

// New creates a [Marshaller], detecting definitions for every configured
// type and the types they reach.
//
// Example:
//
//	m, err := marshal.New(
//	    marshal.WithType[Point](),
//	    marshal.WithFactory(ParseNumber),
//	    marshal.WithFactory(NewPoint, "x", "y"),
//	)
func New(opts ...Option) (*Marshaller, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	pipeline, err := detect.New(append([]detect.Option{detect.WithFactories(cfg.factories...)}, cfg.detect...)...)
	if err != nil {
		return nil, err
	}

	b, err := registry.NewBuilder(pipeline,
		registry.WithCapabilities(cfg.caps),
		registry.WithEventHandler(cfg.eventHandler),
	)
	if err != nil {
		return nil, err
	}
	reg, err := b.AddDefinition(cfg.definitions...).
		AddType(cfg.types...).
		AddScanner(cfg.scanners...).
		Build()
	if err != nil {
		return nil, err
	}

	codecs := codec.Default()
	for _, f := range cfg.formats {
		if err := codecs.Register(f.name, f.codec); err != nil {
			return nil, err
		}
	}

	table := validation.NewTable(cfg.rules...).With(defaultRules()...)

	return &Marshaller{
		reg:    reg,
		ser:    engine.NewSerializer(reg, cfg.inject),
		deser:  engine.NewDeserializer(reg, table),
		codecs: codecs,
	}, nil
}

// MustNew creates a [Marshaller] with the given options.
// Panics if configuration is invalid or a root type cannot be detected.
//
// Use in main() or init() where panic on startup is acceptable.
func MustNew(opts ...Option) *Marshaller {
	m, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("marshal.MustNew: %v", err))
	}

	return m
}

// defaultRules map conversion failures of the built-in detectors and
// go-playground/validator failures raised by factories.
func defaultRules() []validation.Rule {
	return []validation.Rule{
		validation.As(func(e *definition.ConversionError, _ string) validation.FieldError {
			return validation.FieldError{
				Code:    CodeInvalidValue,
				Message: e.Error(),
				Meta:    map[string]any{"input": e.Input, "type": e.Type.String()},
			}
		}),
		validation.PlaygroundRule(),
	}
}

// Registry returns the definitions the marshaller was built with.
func (m *Marshaller) Registry() *registry.Registry {
	return m.reg
}

// Formats returns the registered format names in sorted order.
func (m *Marshaller) Formats() []codec.Type {
	return m.codecs.Names()
}

// Serialize converts v to a universal value.
func (m *Marshaller) Serialize(v any, opts ...CallOption) (value.Value, error) {
	c := applyCallOptions(opts)
	if c.hasProperties {
		return m.ser.SerializeWith(v, c.properties)
	}

	return m.ser.Serialize(v)
}

// Marshal serializes v and encodes it in format.
func (m *Marshaller) Marshal(format codec.Type, v any, opts ...CallOption) ([]byte, error) {
	cd, err := m.codecs.Get(format)
	if err != nil {
		return nil, err
	}

	out, err := m.Serialize(v, opts...)
	if err != nil {
		return nil, err
	}

	data, err := cd.Encode(value.ToNative(out))
	if err != nil {
		return nil, &FormatError{Format: format, Op: ErrEncode, Err: err}
	}

	return data, nil
}

// Deserialize builds a value of type t from in.
//
// Errors:
//   - [*validation.Error]: one or more fields of the input are invalid
//   - [*engine.UnmappedError]: a conversion failed with an error no rule maps
//   - [*registry.NotFoundError]: a required type has no definition
func (m *Marshaller) Deserialize(in value.Value, t types.Type, opts ...CallOption) (reflect.Value, error) {
	c := applyCallOptions(opts)

	return m.deser.Deserialize(in, t, c.injector)
}

// Unmarshal decodes data in format and builds a value of type t from it.
func (m *Marshaller) Unmarshal(format codec.Type, data []byte, t types.Type, opts ...CallOption) (reflect.Value, error) {
	in, err := m.decode(format, data)
	if err != nil {
		return reflect.Value{}, err
	}

	return m.Deserialize(in, t, opts...)
}

func (m *Marshaller) decode(format codec.Type, data []byte) (value.Value, error) {
	cd, err := m.codecs.Get(format)
	if err != nil {
		return nil, err
	}

	var native any
	if err := cd.Decode(data, &native); err != nil {
		return nil, &FormatError{Format: format, Op: ErrDecode, Err: err}
	}
	in, err := value.FromNative(native)
	if err != nil {
		return nil, &FormatError{Format: format, Op: ErrDecode, Err: err}
	}

	return in, nil
}

// DeserializeAs builds a T from in.
//
// Example:
//
//	p, err := marshal.DeserializeAs[Point](m, in)
func DeserializeAs[T any](m *Marshaller, in value.Value, opts ...CallOption) (T, error) {
	out, err := m.Deserialize(in, types.For[T](), opts...)
	if err != nil {
		var zero T
		return zero, err
	}

	return as[T](out)
}

// UnmarshalAs decodes data in format and builds a T from it.
//
// Example:
//
//	p, err := marshal.UnmarshalAs[Point](m, "json", body)
func UnmarshalAs[T any](m *Marshaller, format codec.Type, data []byte, opts ...CallOption) (T, error) {
	out, err := m.Unmarshal(format, data, types.For[T](), opts...)
	if err != nil {
		var zero T
		return zero, err
	}

	return as[T](out)
}

func as[T any](out reflect.Value) (T, error) {
	var zero T
	if !out.IsValid() {
		return zero, nil
	}

	v, ok := definition.Adapt(out, reflect.TypeFor[T]()).Interface().(T)
	if !ok {
		return zero, fmt.Errorf("%w: got %s, want %s", ErrTypeMismatch, out.Type(), reflect.TypeFor[T]())
	}

	return v, nil
}
