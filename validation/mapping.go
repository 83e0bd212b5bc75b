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
	"reflect"
)

// CodeInvalid is the code of field errors produced by [Message] and of
// matched errors whose mapper returned nothing.
const CodeInvalid = "invalid"

// Mapper converts a matched error into field errors for the given path.
type Mapper func(err error, path string) []FieldError

// Rule pairs a predicate with a mapping.
type Rule struct {
	// Name describes the rule in diagnostics.
	Name  string
	Match func(err error) bool
	Map   Mapper
}

// Table is an ordered list of rules. The first matching rule wins.
// A Table is immutable and safe for concurrent use.
type Table struct {
	rules []Rule
}

// NewTable creates a table from rules in evaluation order.
func NewTable(rules ...Rule) *Table {
	return &Table{rules: append([]Rule(nil), rules...)}
}

// With returns a new table with rules appended after the existing ones.
func (t *Table) With(rules ...Rule) *Table {
	if t == nil {
		return NewTable(rules...)
	}

	out := make([]Rule, 0, len(t.rules)+len(rules))
	out = append(out, t.rules...)
	out = append(out, rules...)

	return &Table{rules: out}
}

// Len returns the number of rules.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}

	return len(t.rules)
}

// Map returns the field errors for err at path and whether a rule matched.
// Field errors without a path are placed at path.
func (t *Table) Map(err error, path string) ([]FieldError, bool) {
	if t == nil || err == nil {
		return nil, false
	}

	for _, r := range t.rules {
		if r.Match == nil || !r.Match(err) {
			continue
		}

		var fields []FieldError
		if r.Map != nil {
			fields = r.Map(err, path)
		}
		if len(fields) == 0 {
			fields = []FieldError{{Path: path, Code: CodeInvalid, Message: err.Error()}}
		}
		for i := range fields {
			if fields[i].Path == "" {
				fields[i].Path = path
			}
		}

		return fields, true
	}

	return nil, false
}

// Match creates a rule from a predicate.
func Match(pred func(error) bool, m Mapper) Rule {
	return Rule{Name: "match", Match: pred, Map: m}
}

// Is creates a rule matching errors that wrap target.
func Is(target error, m Mapper) Rule {
	return Rule{
		Name:  "is " + target.Error(),
		Match: func(err error) bool { return errors.Is(err, target) },
		Map:   m,
	}
}

// As creates a rule matching errors of type E anywhere in the chain and
// mapping them to a single field error.
func As[E error](m func(e E, path string) FieldError) Rule {
	return AsMany(func(e E, path string) []FieldError {
		return []FieldError{m(e, path)}
	})
}

// AsMany is like [As] for errors that decompose into several field errors.
func AsMany[E error](m func(e E, path string) []FieldError) Rule {
	return Rule{
		Name: "as " + reflect.TypeFor[E]().String(),
		Match: func(err error) bool {
			var target E
			return errors.As(err, &target)
		},
		Map: func(err error, path string) []FieldError {
			var target E
			if !errors.As(err, &target) {
				return nil
			}

			return m(target, path)
		},
	}
}

// Message returns a mapper producing one field error with the given code and
// the error text as message. An empty code means [CodeInvalid].
func Message(code string) Mapper {
	if code == "" {
		code = CodeInvalid
	}

	return func(err error, path string) []FieldError {
		return []FieldError{{Path: path, Code: code, Message: err.Error()}}
	}
}
