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

// Package engine converts between Go values and universal values using a
// built definition registry.
//
// A [Serializer] walks a Go value through the definition of each runtime
// type. Object fields that serialize to null are left out, and a reference
// cycle fails the call with a [*CircularReferenceError].
//
// A [Deserializer] is the structural mirror. It keeps going after a field or
// element fails so that every problem in the input is reported at once:
// failures matched by the validation table are collected at their dotted
// path and returned together as one [*validation.Error]. Failures the table
// does not match are configuration gaps and stop the call with an
// [*UnmappedError].
//
// Both engines are stateless between calls and safe for concurrent use.
package engine
