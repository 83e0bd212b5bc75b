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

// Package validation turns deserialization failures into user-facing field errors.
//
// A [Table] is an ordered list of [Rule] values. Each rule pairs a predicate
// on an error with a mapping to one or more [FieldError] values. Rules are
// evaluated in order and the first match wins, so specific rules must be
// listed before general ones:
//
//	table := validation.NewTable(
//	    validation.As(func(e *strconv.NumError, path string) validation.FieldError {
//	        return validation.FieldError{Path: path, Code: "number", Message: "must be a number"}
//	    }),
//	    validation.Is(ErrOutOfStock, validation.Message("stock")),
//	)
//
// Errors that no rule matches are not validation errors. The caller treats
// them as configuration gaps.
//
// Field errors are aggregated into an [Error], which matches [ErrValidation]
// with [errors.Is]:
//
//	var verr *validation.Error
//	if errors.As(err, &verr) {
//	    for _, f := range verr.Fields {
//	        fmt.Printf("%s: %s\n", f.Path, f.Message)
//	    }
//	}
//
// [StructValidator] and [PlaygroundRule] connect factories that validate with
// go-playground/validator struct tags.
package validation
