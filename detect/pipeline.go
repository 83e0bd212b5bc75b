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
	"reflect"
	"regexp"

	"rivaas.dev/marshal/definition"
	"rivaas.dev/marshal/types"
)

// Detector attempts to produce a definition for a type.
//
// Detect returns a [Rejection] (see [Reject]) when the type does not match.
// Any other error is a configuration error and stops detection.
type Detector interface {
	Name() string
	Detect(scope *Scope, t types.Type, caps Capabilities) (definition.Definition, error)
}

// Scope is the shared configuration detectors run with.
type Scope struct {
	// Factories is the factory pool in registration order.
	Factories []Factory
	// TagName is the struct tag holding serialized field names.
	TagName string
	// FactoryPattern breaks ties between reconstructing factories.
	FactoryPattern *regexp.Regexp
}

// factoriesFor returns the pool factories building rt, in registration order.
func (s *Scope) factoriesFor(rt reflect.Type) []Factory {
	var out []Factory
	for _, f := range s.Factories {
		if f.returns == rt {
			out = append(out, f)
		}
	}

	return out
}

// Pipeline classifies types into definitions. It is immutable once created
// and safe for concurrent use.
type Pipeline struct {
	scope       Scope
	collections []Detector
	primitives  []Detector
	objects     []Detector
}

// New creates a pipeline with the given options.
func New(opts ...Option) (*Pipeline, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	re, err := regexp.Compile(cfg.factoryPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid factory pattern %q: %w", cfg.factoryPattern, err)
	}

	collections := make([]Detector, 0, len(cfg.shapes))
	for _, s := range cfg.shapes {
		collections = append(collections, s)
	}

	return &Pipeline{
		scope: Scope{
			Factories:      cfg.factories,
			TagName:        cfg.tagName,
			FactoryPattern: re,
		},
		collections: collections,
		primitives:  cfg.primitives,
		objects:     cfg.objects,
	}, nil
}

// MustNew is like [New] but panics on error.
func MustNew(opts ...Option) *Pipeline {
	p, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("detect.MustNew: %v", err))
	}

	return p
}

// Scope returns the detection scope.
func (p *Pipeline) Scope() *Scope {
	return &p.scope
}

// Detect classifies t. Pointer layers are stripped first.
//
// Types containing the unsupported marker are rejected before any detector
// runs. When no detector matches, the returned [*DetectionError] lists the
// reason each detector gave.
func (p *Pipeline) Detect(t types.Type, caps Capabilities) (definition.Definition, error) {
	if !caps.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapabilities, caps)
	}

	t = t.Indirect()
	if t.IsUnsupported() {
		return nil, &DetectionError{Type: t, Err: ErrUnsupportedType}
	}

	var reasons []string
	for _, list := range [][]Detector{p.collections, p.primitives, p.objects} {
		for _, d := range list {
			def, err := d.Detect(&p.scope, t, caps)
			if err == nil && def != nil {
				return def, nil
			}
			if err == nil {
				reasons = append(reasons, d.Name()+": no match")
				continue
			}

			var rej *Rejection
			if !errors.As(err, &rej) {
				return nil, fmt.Errorf("detect %s with %s: %w", t, d.Name(), err)
			}
			reasons = append(reasons, d.Name()+": "+rej.Reason)
		}
	}

	return nil, &DetectionError{Type: t, Reasons: reasons, Err: ErrNotDetected}
}
