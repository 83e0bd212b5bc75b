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
	"reflect"

	"rivaas.dev/marshal/definition"
	"rivaas.dev/marshal/types"
)

// Registry is an immutable mapping from types to definitions.
// Pointer types share the definition of their element type.
type Registry struct {
	defs  map[reflect.Type]definition.Definition
	order []types.Type
}

// Lookup returns the definition of t.
// It returns a [*NotFoundError] when the registry has no definition for t.
func (r *Registry) Lookup(t types.Type) (definition.Definition, error) {
	t = t.Indirect()
	if rt := t.Reflect(); rt != nil {
		if def, ok := r.defs[rt]; ok {
			return def, nil
		}
	}

	return nil, &NotFoundError{Type: t}
}

// LookupReflect is like [Registry.Lookup] for a Go type.
func (r *Registry) LookupReflect(rt reflect.Type) (definition.Definition, error) {
	for rt != nil && rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if def, ok := r.defs[rt]; ok {
		return def, nil
	}

	return nil, &NotFoundError{Type: types.Of(rt)}
}

// Types returns the registered types in discovery order.
func (r *Registry) Types() []types.Type {
	return append([]types.Type(nil), r.order...)
}

// Len returns the number of definitions.
func (r *Registry) Len() int {
	return len(r.order)
}
