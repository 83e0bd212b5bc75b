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
	"errors"
	"fmt"
	"log/slog"

	"rivaas.dev/marshal/codec"
	"rivaas.dev/marshal/definition"
	"rivaas.dev/marshal/detect"
	"rivaas.dev/marshal/engine"
	"rivaas.dev/marshal/registry"
	"rivaas.dev/marshal/types"
	"rivaas.dev/marshal/validation"
)

// PropertyInjector rewrites the top-level object of a serialized value.
type PropertyInjector = engine.PropertyInjector

// Option configures a [Marshaller].
type Option func(*config)

type format struct {
	name  codec.Type
	codec codec.Codec
}

type config struct {
	types        []types.Type
	definitions  []definition.Definition
	scanners     []registry.Scanner
	factories    []detect.Factory
	detect       []detect.Option
	caps         detect.Capabilities
	rules        []validation.Rule
	formats      []format
	eventHandler registry.EventHandler
	inject       PropertyInjector
	errs         []error
}

func defaultConfig() *config {
	return &config{
		caps:         detect.Both,
		eventHandler: registry.DefaultEventHandler(nil),
	}
}

func (c *config) validate() error {
	if err := errors.Join(c.errs...); err != nil {
		return err
	}
	if len(c.types) == 0 && len(c.definitions) == 0 && len(c.scanners) == 0 {
		return errors.New("at least one type, definition or scanner is required")
	}
	for _, f := range c.formats {
		if f.name == "" || f.codec == nil {
			return fmt.Errorf("%w: format %q", codec.ErrInvalidCodec, f.name)
		}
	}
	if c.eventHandler == nil {
		c.eventHandler = registry.DefaultEventHandler(nil)
	}

	return nil
}

// WithType adds T as a root type. Roots are strict: [New] fails if no
// definition can be detected for T. Types reached from a root or returned by a
// scanner are lenient and are omitted with a warning event when undetectable.
func WithType[T any]() Option {
	return WithTypes(types.For[T]())
}

// WithTypes adds root types. See [WithType] for the detection policy.
func WithTypes(ts ...types.Type) Option {
	return func(c *config) {
		c.types = append(c.types, ts...)
	}
}

// WithDefinition adds explicit definitions. Their types are never detected.
func WithDefinition(defs ...definition.Definition) Option {
	return func(c *config) {
		c.definitions = append(c.definitions, defs...)
	}
}

// WithScanner adds type sources. Scanned types that cannot be detected are
// left out of the registry with a warning event.
func WithScanner(s ...registry.Scanner) Option {
	return func(c *config) {
		c.scanners = append(c.scanners, s...)
	}
}

// WithFactory adds a factory function. params names its parameters after the
// serialized fields it reconstructs; single-string factories of custom
// primitives need no names.
//
// Example:
//
//	marshal.WithFactory(NewPoint, "x", "y")
func WithFactory(fn any, params ...string) Option {
	return func(c *config) {
		f, err := detect.NewFactory(fn, params...)
		if err != nil {
			c.errs = append(c.errs, err)
			return
		}
		c.factories = append(c.factories, f)
	}
}

// WithFactories adds prepared factories.
func WithFactories(fs ...detect.Factory) Option {
	return func(c *config) {
		c.factories = append(c.factories, fs...)
	}
}

// WithCapabilities sets the definition sides detected for every type.
// Default: [detect.Both].
func WithCapabilities(caps detect.Capabilities) Option {
	return func(c *config) {
		c.caps = caps
	}
}

// WithTagName sets the struct tag read for serialized field names.
// Default: "json".
func WithTagName(name string) Option {
	return func(c *config) {
		c.detect = append(c.detect, detect.WithTagName(name))
	}
}

// WithFactoryPattern sets the regular expression that breaks ties between
// reconstructing factories. Default: "^New".
func WithFactoryPattern(pattern string) Option {
	return func(c *config) {
		c.detect = append(c.detect, detect.WithFactoryPattern(pattern))
	}
}

// WithShapes adds collection shapes, tried before the built-in ones.
func WithShapes(shapes ...detect.Shape) Option {
	return func(c *config) {
		c.detect = append(c.detect, detect.WithShapes(shapes...))
	}
}

// WithPrimitiveDetectors replaces the custom-primitive detectors.
func WithPrimitiveDetectors(ds ...detect.Detector) Option {
	return func(c *config) {
		c.detect = append(c.detect, detect.WithPrimitiveDetectors(ds...))
	}
}

// WithObjectDetectors replaces the serialized-object detectors.
func WithObjectDetectors(ds ...detect.Detector) Option {
	return func(c *config) {
		c.detect = append(c.detect, detect.WithObjectDetectors(ds...))
	}
}

// WithValidationRules adds rules mapping deserialization errors to field
// errors. They are evaluated in order, before the built-in rules.
func WithValidationRules(rules ...validation.Rule) Option {
	return func(c *config) {
		c.rules = append(c.rules, rules...)
	}
}

// WithFormat registers a codec under name, replacing a built-in codec of the
// same name.
func WithFormat(name codec.Type, cd codec.Codec) Option {
	return func(c *config) {
		c.formats = append(c.formats, format{name: name, codec: cd})
	}
}

// WithEventHandler sets a custom [registry.EventHandler] for build events.
func WithEventHandler(handler registry.EventHandler) Option {
	return func(c *config) {
		c.eventHandler = handler
	}
}

// WithLogger logs build events to logger.
// This is a convenience wrapper around [WithEventHandler].
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.eventHandler = registry.DefaultEventHandler(logger)
	}
}

// WithPropertyInjector sets the injector applied to every serialized
// top-level object.
func WithPropertyInjector(inject PropertyInjector) Option {
	return func(c *config) {
		c.inject = inject
	}
}

// CallOption configures a single conversion.
type CallOption func(*call)

type call struct {
	injector      *engine.Injector
	properties    PropertyInjector
	hasProperties bool
}

func applyCallOptions(opts []CallOption) *call {
	c := &call{}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithInjector supplies values for fields absent from the input.
func WithInjector(inj *engine.Injector) CallOption {
	return func(c *call) {
		c.injector = inj
	}
}

// WithProperties replaces the configured property injector for one call.
// A nil injector disables property injection.
func WithProperties(inject PropertyInjector) CallOption {
	return func(c *call) {
		c.properties = inject
		c.hasProperties = true
	}
}
