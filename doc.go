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

// Package marshal converts Go object graphs to and from text formats without
// per-type mapping code.
//
// A [Marshaller] is built once from a set of root types. Building detects a
// definition for every type reachable from the roots: custom primitives
// (types with a string form), collections (slices, arrays and sets) and
// serialized objects (structs rebuilt through a constructor or a struct
// literal). The built marshaller is immutable and safe for concurrent use.
//
//	m := marshal.MustNew(
//	    marshal.WithType[Order](),
//	    marshal.WithFactory(ParseMoney),
//	    marshal.WithFactory(NewOrder, "id", "items"),
//	)
//
//	data, err := m.Marshal("json", order)
//	order, err := marshal.UnmarshalAs[Order](m, "json", data)
//
// # Errors
//
// Deserialization collects every invalid field of the input before failing.
// The returned [*validation.Error] lists field errors by dotted property
// path such as "items.2.price". Errors no validation rule recognizes are
// configuration problems and are returned as [*engine.UnmappedError] at the
// first occurrence.
//
// # Formats
//
// Values pass through the universal value representation ([value.Value])
// before a codec turns them into bytes. The built-in formats are json, xml,
// yaml, toml, msgpack and proto; [WithFormat] adds or replaces formats.
package marshal
