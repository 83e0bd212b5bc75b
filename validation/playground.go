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
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// StructValidator validates structs with go-playground/validator tags.
// Fields are named by their json tag, so error paths match serialized names.
//
// Factories call it before returning the value they built:
//
//	var sv = validation.NewStructValidator()
//
//	func NewUser(name, email string) (User, error) {
//	    u := User{Name: name, Email: email}
//	    return u, sv.Struct(u)
//	}
type StructValidator struct {
	validate *validator.Validate
}

// NewStructValidator creates a validator with required-struct checks enabled.
func NewStructValidator() *StructValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Use json tags as field names for better error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "-" {
			return ""
		}
		if idx := strings.Index(name, ","); idx != -1 {
			name = name[:idx]
		}
		if name == "" {
			return fld.Name
		}

		return name
	})

	return &StructValidator{validate: v}
}

// Struct validates s. Tag failures are returned as [validator.ValidationErrors].
func (v *StructValidator) Struct(s any) error {
	return v.validate.Struct(s)
}

// Validator returns the underlying validator to register custom tags.
func (v *StructValidator) Validator() *validator.Validate {
	return v.validate
}

// PlaygroundRule maps [validator.ValidationErrors] to one field error per
// failed tag. Paths are relative to the path of the value being built.
func PlaygroundRule() Rule {
	rule := AsMany(func(errs validator.ValidationErrors, path string) []FieldError {
		out := make([]FieldError, 0, len(errs))
		for _, e := range errs {
			out = append(out, FieldError{
				Path:    JoinPath(path, namespacePath(e.Namespace())),
				Code:    "tag." + e.Tag(),
				Message: getTagErrorMessage(e),
				Meta: map[string]any{
					"tag":   e.Tag(),
					"param": e.Param(),
					"value": e.Value(),
				},
			})
		}

		return out
	})
	rule.Name = "go-playground validator"

	return rule
}

// namespacePath turns "User.items[2].name" into "items.2.name".
func namespacePath(ns string) string {
	if idx := strings.Index(ns, "."); idx != -1 {
		ns = ns[idx+1:]
	}
	ns = strings.ReplaceAll(ns, "[", ".")

	return strings.ReplaceAll(ns, "]", "")
}

// getTagErrorMessage returns a human-readable message for a failed tag.
func getTagErrorMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "min":
		if e.Type().Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", e.Param())
		}
		return fmt.Sprintf("must be at least %s", e.Param())
	case "max":
		if e.Type().Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", e.Param())
		}
		return fmt.Sprintf("must be at most %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", e.Param())
	case "gt", "gte", "lt", "lte":
		return fmt.Sprintf("must be %s %s", comparisons[e.Tag()], e.Param())
	default:
		return fmt.Sprintf("failed validation (%s)", e.Tag())
	}
}

var comparisons = map[string]string{
	"gt":  "greater than",
	"gte": "at least",
	"lt":  "less than",
	"lte": "at most",
}
