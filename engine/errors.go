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

package engine

import (
	"errors"
	"fmt"

	"rivaas.dev/marshal/types"
)

// Static errors for the engines.
var (
	// ErrNoSerializer is returned when a definition has no serializer.
	ErrNoSerializer = errors.New("no serializer configured for type")

	// ErrNoDeserializer is returned when a definition has no deserializer.
	ErrNoDeserializer = errors.New("no deserializer configured for type")

	// ErrCircularReference is matched by [*CircularReferenceError].
	ErrCircularReference = errors.New("circular reference")
)

// CircularReferenceError is returned when serialization reaches a value that
// is already being serialized.
type CircularReferenceError struct {
	Type types.Type
	Path string
}

// Error returns a formatted error message.
func (e *CircularReferenceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v of type %s", ErrCircularReference, e.Type)
	}

	return fmt.Sprintf("%v of type %s at %s", ErrCircularReference, e.Type, e.Path)
}

// Unwrap returns [ErrCircularReference].
func (e *CircularReferenceError) Unwrap() error {
	return ErrCircularReference
}

// UnmappedError is returned when deserialization raises an error that no
// validation rule matches.
type UnmappedError struct {
	Path string
	Type types.Type
	Err  error
}

// Error returns a formatted error message.
func (e *UnmappedError) Error() string {
	path := e.Path
	if path == "" {
		path = "<root>"
	}

	return fmt.Sprintf("unmapped error deserializing %s at %s: %v", e.Type, path, e.Err)
}

// Unwrap returns the underlying error.
func (e *UnmappedError) Unwrap() error {
	return e.Err
}
