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

	"rivaas.dev/marshal/types"
)

// Static errors for the registry.
var (
	// ErrDefinitionNotFound is matched by lookups of types without a definition.
	ErrDefinitionNotFound = errors.New("definition not found")

	// ErrAlreadyBuilt is returned when a builder is built twice.
	ErrAlreadyBuilt = errors.New("registry already built")

	// ErrDuplicateDefinition is returned when two explicit definitions share a type.
	ErrDuplicateDefinition = errors.New("duplicate explicit definition")
)

// NotFoundError is returned when no definition exists for a type.
type NotFoundError struct {
	Type types.Type
}

// Error returns a formatted error message.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v for type %s", ErrDefinitionNotFound, e.Type)
}

// Unwrap returns [ErrDefinitionNotFound].
func (e *NotFoundError) Unwrap() error {
	return ErrDefinitionNotFound
}
