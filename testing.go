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

package marshal

import (
	"testing"

	"rivaas.dev/marshal/codec"
)

// TestMarshaller creates a Marshaller configured for testing.
// It fails the test if building fails.
//
// Example:
//
//	func TestMyFeature(t *testing.T) {
//	    m := marshal.TestMarshaller(t, marshal.WithType[Order]())
//	    // use m in test
//	}
func TestMarshaller(t *testing.T, opts ...Option) *Marshaller {
	t.Helper()

	m, err := New(opts...)
	if err != nil {
		t.Fatalf("TestMarshaller: failed to create marshaller: %v", err)
	}

	return m
}

// TestRoundTrip marshals v in format and unmarshals the result back into a T.
// It fails the test on any error.
//
// Example:
//
//	got := marshal.TestRoundTrip(t, m, "json", order)
//	assert.Equal(t, order, got)
func TestRoundTrip[T any](t *testing.T, m *Marshaller, format codec.Type, v T) T {
	t.Helper()

	data, err := m.Marshal(format, v)
	if err != nil {
		t.Fatalf("TestRoundTrip: marshal %s: %v", format, err)
	}
	out, err := UnmarshalAs[T](m, format, data)
	if err != nil {
		t.Fatalf("TestRoundTrip: unmarshal %s: %v", format, err)
	}

	return out
}
