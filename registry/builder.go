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

package registry

import (
	"errors"
	"fmt"
	"reflect"

	"rivaas.dev/marshal/definition"
	"rivaas.dev/marshal/detect"
	"rivaas.dev/marshal/types"
)

// Builder collects seeds and builds a [Registry] once.
// A Builder is not safe for concurrent use.
type Builder struct {
	pipeline *detect.Pipeline
	cfg      *config
	roots    []types.Type
	explicit []definition.Definition
	scanners []Scanner
	built    bool
}

// NewBuilder creates a builder detecting definitions with pipeline.
func NewBuilder(pipeline *detect.Pipeline, opts ...Option) (*Builder, error) {
	if pipeline == nil {
		return nil, errors.New("registry: pipeline is required")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Builder{pipeline: pipeline, cfg: cfg}, nil
}

// AddType adds root types. Every root must be detectable or [Builder.Build]
// fails. Child and scanned types that cannot be detected are omitted and
// reported as [EventWarning].
func (b *Builder) AddType(ts ...types.Type) *Builder {
	b.roots = append(b.roots, ts...)
	return b
}

// AddDefinition adds explicit definitions. They are used as given and take
// precedence over detection.
func (b *Builder) AddDefinition(defs ...definition.Definition) *Builder {
	b.explicit = append(b.explicit, defs...)
	return b
}

// AddScanner adds scanners supplying soft seeds.
func (b *Builder) AddScanner(s ...Scanner) *Builder {
	b.scanners = append(b.scanners, s...)
	return b
}

// build is the state of one Build call.
type build struct {
	*Builder
	reg     *Registry
	visited map[reflect.Type]bool
	queue   []types.Type
}

// Build detects the definitions reachable from the seeds.
//
// Configuration errors reported by detectors abort the build. Build can only
// be called once; later calls return [ErrAlreadyBuilt].
func (b *Builder) Build() (*Registry, error) {
	if b.built {
		return nil, ErrAlreadyBuilt
	}
	b.built = true

	st := &build{
		Builder: b,
		reg:     &Registry{defs: make(map[reflect.Type]definition.Definition)},
		visited: make(map[reflect.Type]bool),
	}

	for _, def := range b.explicit {
		if err := st.addExplicit(def); err != nil {
			return nil, err
		}
	}

	for _, t := range b.roots {
		if err := st.detect(t, true); err != nil {
			return nil, err
		}
	}

	for _, s := range b.scanners {
		scanned, err := s.Scan()
		if err != nil {
			return nil, fmt.Errorf("registry: scan: %w", err)
		}
		for _, t := range scanned {
			if err := st.detect(t, false); err != nil {
				return nil, err
			}
		}
	}

	for len(st.queue) > 0 {
		t := st.queue[0]
		st.queue = st.queue[1:]
		if err := st.detect(t, false); err != nil {
			return nil, err
		}
	}

	b.cfg.eventHandler(Event{
		Type:    EventInfo,
		Message: "definition registry built",
		Args:    []any{"definitions", st.reg.Len()},
	})

	return st.reg, nil
}

func (st *build) addExplicit(def definition.Definition) error {
	if def == nil {
		return errors.New("registry: nil definition")
	}
	t := def.Type().Indirect()
	rt := t.Reflect()
	if rt == nil {
		return fmt.Errorf("registry: explicit definition for %s: %w", t, detect.ErrUnsupportedType)
	}
	if _, ok := st.reg.defs[rt]; ok {
		return fmt.Errorf("registry: %w for %s", ErrDuplicateDefinition, t)
	}

	st.add(t, def, "explicit")

	return nil
}

// detect adds the definition of t unless t was seen before. Detection
// failures fail the build for roots and are reported as warnings otherwise.
func (st *build) detect(t types.Type, root bool) error {
	t = t.Indirect()
	rt := t.Reflect()
	if rt != nil && st.visited[rt] {
		return nil
	}
	if rt != nil {
		st.visited[rt] = true
	}

	def, err := st.pipeline.Detect(t, st.cfg.caps)
	if err == nil {
		st.add(t, def, "detected")
		return nil
	}

	if !errors.Is(err, detect.ErrNotDetected) && !errors.Is(err, detect.ErrUnsupportedType) {
		st.cfg.eventHandler(Event{
			Type:    EventError,
			Message: "definition detection failed",
			Args:    []any{"type", t.String(), "error", err},
		})

		return fmt.Errorf("registry: %w", err)
	}

	if root {
		st.cfg.eventHandler(Event{
			Type:    EventError,
			Message: "root type has no definition",
			Args:    []any{"type", t.String(), "error", err},
		})

		return fmt.Errorf("registry: root type: %w", err)
	}

	st.cfg.eventHandler(Event{
		Type:    EventWarning,
		Message: "type left out of registry",
		Args:    []any{"type", t.String(), "reason", err.Error()},
	})

	return nil
}

func (st *build) add(t types.Type, def definition.Definition, how string) {
	rt := t.Reflect()
	st.visited[rt] = true
	st.reg.defs[rt] = def
	st.reg.order = append(st.reg.order, t)

	st.cfg.eventHandler(Event{
		Type:    EventDebug,
		Message: "definition added",
		Args:    []any{"type", t.String(), "kind", def.Kind().String(), "source", how},
	})

	for _, child := range def.Children() {
		child = child.Indirect()
		if crt := child.Reflect(); crt != nil && st.visited[crt] {
			continue
		}
		st.queue = append(st.queue, child)
	}
}
