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

package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrValidation is a sentinel error for validation failures.
// Use errors.Is(err, ErrValidation) to check if an error is a validation error.
var ErrValidation = errors.New("validation")

// FieldError represents a single validation error for a specific field.
// Multiple FieldError values are collected in an [Error].
//
// Example:
//
//	err := FieldError{
//	    Path:    "address.zipCode",
//	    Code:    "invalid_value",
//	    Message: `cannot convert "abc" to int`,
//	}
type FieldError struct {
	Path    string         `json:"path"`           // Dotted property path (e.g., "items.2.price")
	Code    string         `json:"code"`           // Stable code (e.g., "invalid_value", "tag.required")
	Message string         `json:"message"`        // Human-readable message
	Meta    map[string]any `json:"meta,omitempty"` // Additional metadata (tag, param, value, etc.)
}

// Error returns a formatted error message as "path: message" or just "message" if path is empty.
func (e FieldError) Error() string {
	if e.Path == "" {
		return e.Message
	}

	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Unwrap returns [ErrValidation] for errors.Is/errors.As compatibility.
func (e FieldError) Unwrap() error {
	return ErrValidation
}

// HTTPStatus returns 422 Unprocessable Entity.
func (e FieldError) HTTPStatus() int {
	return 422
}

// Error represents validation errors for one or more fields.
// It is returned as a whole: every independent problem found in one input
// is listed, not only the first.
//
//nolint:recvcheck // Error must use value receiver for error interface compatibility, mutating methods use pointer
type Error struct {
	Fields []FieldError `json:"errors"`
}

// Error returns a formatted error message.
func (v Error) Error() string {
	if len(v.Fields) == 0 {
		return ""
	}
	if len(v.Fields) == 1 {
		return v.Fields[0].Error()
	}

	msgs := make([]string, 0, len(v.Fields))
	for _, err := range v.Fields {
		msgs = append(msgs, err.Error())
	}

	return fmt.Sprintf("validation failed: %s", strings.Join(msgs, "; "))
}

// Unwrap returns [ErrValidation] for errors.Is/errors.As compatibility.
func (v Error) Unwrap() error {
	return ErrValidation
}

// HTTPStatus returns 422 Unprocessable Entity.
func (v Error) HTTPStatus() int {
	return 422
}

// Details returns the field errors.
func (v Error) Details() any {
	return v.Fields
}

// Code returns "validation_error".
func (v Error) Code() string {
	return "validation_error"
}

// Add adds a new [FieldError] to the collection.
func (v *Error) Add(path, code, message string, meta map[string]any) {
	v.Fields = append(v.Fields, FieldError{
		Path:    path,
		Code:    code,
		Message: message,
		Meta:    meta,
	})
}

// AddError adds an error to the collection, handling different error types.
// AddError accepts [FieldError], [Error], or generic errors and converts them appropriately.
func (v *Error) AddError(err error) {
	if err == nil {
		return
	}

	var fe FieldError
	if errors.As(err, &fe) {
		v.Fields = append(v.Fields, fe)
		return
	}

	var ve *Error
	if errors.As(err, &ve) {
		v.Fields = append(v.Fields, ve.Fields...)
		return
	}

	var vv Error
	if errors.As(err, &vv) {
		v.Fields = append(v.Fields, vv.Fields...)
		return
	}

	v.Fields = append(v.Fields, FieldError{
		Code:    "validation_error",
		Message: err.Error(),
	})
}

// HasErrors returns true if there are any errors.
func (v Error) HasErrors() bool {
	return len(v.Fields) > 0
}

// HasCode returns true if any error has the given code.
func (v Error) HasCode(code string) bool {
	for _, e := range v.Fields {
		if e.Code == code {
			return true
		}
	}

	return false
}

// Has checks if a specific field path has an error.
func (v Error) Has(path string) bool {
	for _, f := range v.Fields {
		if f.Path == path {
			return true
		}
	}

	return false
}

// GetField returns the first [FieldError] for a given path, or nil if not found.
func (v Error) GetField(path string) *FieldError {
	for _, f := range v.Fields {
		if f.Path == path {
			return &f
		}
	}

	return nil
}

// Paths returns the distinct paths with errors in the order they were added.
func (v Error) Paths() []string {
	seen := make(map[string]bool, len(v.Fields))
	var out []string
	for _, f := range v.Fields {
		if !seen[f.Path] {
			seen[f.Path] = true
			out = append(out, f.Path)
		}
	}

	return out
}

// Sort sorts errors by path, then by code.
func (v *Error) Sort() {
	sort.SliceStable(v.Fields, func(i, j int) bool {
		if v.Fields[i].Path != v.Fields[j].Path {
			return v.Fields[i].Path < v.Fields[j].Path
		}

		return v.Fields[i].Code < v.Fields[j].Code
	})
}

// ErrorOrNil returns v as an error, or nil if it holds no field errors.
func (v *Error) ErrorOrNil() error {
	if v == nil || len(v.Fields) == 0 {
		return nil
	}

	return v
}

// JoinPath appends a segment to a dotted property path.
func JoinPath(parent, segment string) string {
	switch {
	case parent == "":
		return segment
	case segment == "":
		return parent
	default:
		return parent + "." + segment
	}
}
