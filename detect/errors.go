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

package detect

import (
	"errors"
	"fmt"
	"strings"

	"rivaas.dev/marshal/types"
)

// Static errors for detection.
var (
	// ErrNotDetected is matched by errors for types no detector could classify.
	ErrNotDetected = errors.New("no definition detected")

	// ErrUnsupportedType is matched by errors for types that contain the
	// unsupported marker. Such types are rejected before any detector runs.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrInvalidFactory is returned by [NewFactory] for unusable functions.
	ErrInvalidFactory = errors.New("invalid factory")

	// ErrInvalidCapabilities is returned when no side is requested.
	ErrInvalidCapabilities = errors.New("invalid capabilities")

	// ErrDuplicateField is returned when two struct fields serialize under the same name.
	ErrDuplicateField = errors.New("duplicate serialized field name")
)

// Rejection is returned by a [Detector] that does not match a type.
// It is not a configuration error: the pipeline moves on to the next detector.
type Rejection struct {
	Reason string
}

// Reject returns a [Rejection] with a formatted reason.
func Reject(format string, args ...any) error {
	return &Rejection{Reason: fmt.Sprintf(format, args...)}
}

// Error returns the rejection reason.
func (r *Rejection) Error() string {
	return r.Reason
}

// Is reports whether target is [ErrNotDetected].
func (r *Rejection) Is(target error) bool {
	return target == ErrNotDetected
}

// DetectionError is returned by [Pipeline.Detect] when no detector matched.
// It wraps [ErrNotDetected] or [ErrUnsupportedType].
type DetectionError struct {
	Type    types.Type
	Reasons []string
	Err     error
}

// Error returns a formatted error message listing the rejection reasons.
func (e *DetectionError) Error() string {
	if len(e.Reasons) == 0 {
		return fmt.Sprintf("%v for %s", e.Err, e.Type)
	}

	return fmt.Sprintf("%v for %s: %s", e.Err, e.Type, strings.Join(e.Reasons, "; "))
}

// Unwrap returns the underlying sentinel error.
func (e *DetectionError) Unwrap() error {
	return e.Err
}
