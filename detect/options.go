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
)

const (
	// DefaultTagName is the struct tag read for serialized field names.
	DefaultTagName = "json"

	// DefaultFactoryPattern prefers constructors named New...
	DefaultFactoryPattern = "^New"
)

// Option configures a [Pipeline].
type Option func(*config)

type config struct {
	factories      []Factory
	tagName        string
	factoryPattern string
	userShapes     []Shape
	shapes         []Shape
	primitives     []Detector
	objects        []Detector
}

func defaultConfig() *config {
	return &config{
		tagName:        DefaultTagName,
		factoryPattern: DefaultFactoryPattern,
		primitives:     DefaultPrimitiveDetectors(),
		objects:        DefaultObjectDetectors(),
	}
}

func (c *config) validate() error {
	if c.tagName == "" {
		return errors.New("tag name cannot be empty")
	}
	for i, s := range c.userShapes {
		if s.Label == "" || s.Elem == nil || (s.Flatten == nil && s.Build == nil) {
			return fmt.Errorf("shape %d: name, element matcher and one conversion side are required", i)
		}
	}
	for i, d := range c.primitives {
		if d == nil {
			return fmt.Errorf("primitive detector %d is nil", i)
		}
	}
	for i, d := range c.objects {
		if d == nil {
			return fmt.Errorf("object detector %d is nil", i)
		}
	}
	c.shapes = append(append([]Shape(nil), c.userShapes...), DefaultShapes()...)

	return nil
}

// WithFactories adds factories to the factory pool.
// Registration order is the order candidates are considered in.
func WithFactories(fs ...Factory) Option {
	return func(c *config) {
		c.factories = append(c.factories, fs...)
	}
}

// WithTagName sets the struct tag read for serialized field names.
// Default: "json".
func WithTagName(name string) Option {
	return func(c *config) {
		c.tagName = name
	}
}

// WithFactoryPattern sets the regular expression that breaks ties between
// reconstructing factories. Default: "^New".
func WithFactoryPattern(pattern string) Option {
	return func(c *config) {
		c.factoryPattern = pattern
	}
}

// WithShapes adds collection shapes. They are tried before the built-in shapes.
func WithShapes(shapes ...Shape) Option {
	return func(c *config) {
		c.userShapes = append(c.userShapes, shapes...)
	}
}

// WithPrimitiveDetectors replaces the custom-primitive detector list.
func WithPrimitiveDetectors(ds ...Detector) Option {
	return func(c *config) {
		c.primitives = ds
	}
}

// WithObjectDetectors replaces the serialized-object detector list.
func WithObjectDetectors(ds ...Detector) Option {
	return func(c *config) {
		c.objects = ds
	}
}
