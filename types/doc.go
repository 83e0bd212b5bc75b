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

// Package types models Go types as closed, resolved type descriptions.
//
// A [Type] is a base identifier plus an ordered list of named type arguments.
// Go's built-in parameterized shapes (pointers, slices, arrays and maps) are
// decomposed into their arguments; named and basic types carry none, because
// instantiated generic types are already closed named types at runtime.
//
// Declared types ([Declared]) describe types as they are written at a
// declaration site and may reference type variables. [Resolve] closes them
// against a [Context] of variable bindings:
//
//	ctx, err := types.Bind([]string{"E"}, []types.Type{types.For[User]()})
//	t, err := types.Resolve(types.SliceOf(types.Var("E")), ctx)
//	// t describes []User
//
// Types that cannot be resolved to a concrete Go type (interfaces, unbound
// variables, wildcards) resolve to the [Unsupported] marker. Any type that
// contains the marker at any depth reports [Type.IsUnsupported] and is
// rejected by the detection pipeline.
package types
