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

// Package registry builds the closed set of definitions reachable from a set
// of root types.
//
// A [Builder] is seeded with root types, explicit definitions and scanners.
// [Builder.Build] detects a definition for every root, then walks the child
// types of every definition until no new type is found. Children that cannot
// be detected are left out of the registry and reported as warnings: a later
// lookup of such a type fails with [ErrDefinitionNotFound]. Roots that cannot
// be detected fail the build.
//
// The resulting [Registry] is immutable and safe for concurrent use.
//
//	b, err := registry.NewBuilder(pipeline, registry.WithLogger(slog.Default()))
//	if err != nil {
//		return err
//	}
//	reg, err := b.AddType(types.For[Order]()).Build()
package registry
