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

//go:build !integration

package validation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupAddress struct {
	Zip string `json:"zipCode" validate:"required,len=5"`
}

type signup struct {
	Name    string          `json:"name" validate:"required,min=3"`
	Email   string          `json:"email" validate:"required,email"`
	Age     int             `json:"age" validate:"gte=18"`
	Address signupAddress   `json:"address"`
	Tags    []signupAddress `json:"tags" validate:"dive"`
}

func TestStructValidator(t *testing.T) {
	t.Parallel()

	sv := NewStructValidator()
	require.NotNil(t, sv.Validator())

	valid := signup{Name: "Ana", Email: "ana@example.com", Age: 30, Address: signupAddress{Zip: "12345"}}
	require.NoError(t, sv.Struct(valid))

	err := sv.Struct(signup{Name: "Al", Email: "nope", Age: 12, Tags: []signupAddress{{Zip: "1"}}})
	require.Error(t, err)

	fields, ok := NewTable(PlaygroundRule()).Map(fmt.Errorf("new signup: %w", err), "user")
	require.True(t, ok)

	verr := Error{Fields: fields}
	verr.Sort()

	assert.Equal(t, []string{
		"user.address.zipCode",
		"user.age",
		"user.email",
		"user.name",
		"user.tags.0.zipCode",
	}, verr.Paths())

	name := verr.GetField("user.name")
	require.NotNil(t, name)
	assert.Equal(t, "tag.min", name.Code)
	assert.Equal(t, "must be at least 3 characters", name.Message)
	assert.Equal(t, "min", name.Meta["tag"])

	age := verr.GetField("user.age")
	require.NotNil(t, age)
	assert.Equal(t, "must be at least 18", age.Message)

	email := verr.GetField("user.email")
	require.NotNil(t, email)
	assert.Equal(t, "must be a valid email address", email.Message)

	zip := verr.GetField("user.address.zipCode")
	require.NotNil(t, zip)
	assert.Equal(t, "is required", zip.Message)

	assert.Equal(t, "go-playground validator", PlaygroundRule().Name)
}

func TestNamespacePath(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"User.name":              "name",
		"User.items[2].name":     "items.2.name",
		"User.address.zipCode":   "address.zipCode",
		"name":                   "name",
		"Order.lines[0][1].code": "lines.0.1.code",
	}
	for in, want := range tests {
		assert.Equal(t, want, namespacePath(in), in)
	}
}
