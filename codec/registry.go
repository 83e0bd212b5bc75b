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

package codec

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Registry holds codecs by format name.
// It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	codecs map[Type]Codec
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[Type]Codec)}
}

// Default creates a registry holding the built-in codecs.
func Default() *Registry {
	r := NewRegistry()
	r.codecs[TypeJSON] = JSONCodec{}
	r.codecs[TypeXML] = XMLCodec{}
	r.codecs[TypeYAML] = YAMLCodec{}
	r.codecs[TypeTOML] = TOMLCodec{}
	r.codecs[TypeMsgPack] = MsgPackCodec{}
	r.codecs[TypeProto] = ProtoCodec{}

	return r
}

// Register registers a codec for the given format, replacing any codec
// already registered under that name.
func (r *Registry) Register(name Type, c Codec) error {
	if name == "" {
		return fmt.Errorf("%w: empty format name", ErrInvalidCodec)
	}
	if c == nil {
		return fmt.Errorf("%w: nil codec for format %q", ErrInvalidCodec, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.codecs[name] = c

	return nil
}

// Get retrieves the codec registered for the given format. If none is
// registered, an [*UnknownFormatError] is returned.
func (r *Registry) Get(name Type) (Codec, error) {
	r.mu.RLock()
	c, ok := r.codecs[name]
	r.mu.RUnlock()
	if !ok {
		return nil, &UnknownFormatError{Name: name, Known: r.Names()}
	}

	return c, nil
}

// Names returns the registered format names in sorted order.
func (r *Registry) Names() []Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]Type, 0, len(r.codecs))
	for name := range r.codecs {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

// UnknownFormatError is returned when no codec is registered for a format.
type UnknownFormatError struct {
	Name  Type
	Known []Type
}

// Error returns a formatted error message.
func (e *UnknownFormatError) Error() string {
	known := make([]string, len(e.Known))
	for i, k := range e.Known {
		known[i] = string(k)
	}

	return fmt.Sprintf("%v %q (registered: %s)", ErrUnknownFormat, e.Name, strings.Join(known, ", "))
}

// Unwrap returns [ErrUnknownFormat].
func (e *UnknownFormatError) Unwrap() error {
	return ErrUnknownFormat
}
