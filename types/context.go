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

package types

import (
	"fmt"
	"maps"
)

// Context holds the concrete bindings of type variables in a declaring scope.
// The zero value is an empty context.
type Context struct {
	bindings map[string]Type
}

// Bind creates a context binding params position-for-position to args.
// It returns [ErrArityMismatch] when the lengths differ.
func Bind(params []string, args []Type) (Context, error) {
	if len(params) != len(args) {
		return Context{}, fmt.Errorf("%w: %d parameters %v, %d arguments",
			ErrArityMismatch, len(params), params, len(args))
	}

	bindings := make(map[string]Type, len(params))
	for i, p := range params {
		bindings[p] = args[i]
	}

	return Context{bindings: bindings}, nil
}

// ContextOf returns the context formed by the named arguments of t.
func ContextOf(t Type) Context {
	bindings := make(map[string]Type, len(t.args))
	for _, a := range t.args {
		bindings[a.Name] = a.Type
	}

	return Context{bindings: bindings}
}

// Lookup returns the binding of name.
func (c Context) Lookup(name string) (Type, bool) {
	t, ok := c.bindings[name]
	return t, ok
}

// With returns a copy of c with name bound to t.
func (c Context) With(name string, t Type) Context {
	bindings := make(map[string]Type, len(c.bindings)+1)
	maps.Copy(bindings, c.bindings)
	bindings[name] = t

	return Context{bindings: bindings}
}

// Len returns the number of bindings.
func (c Context) Len() int {
	return len(c.bindings)
}
