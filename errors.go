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
	"errors"
	"fmt"

	"rivaas.dev/marshal/codec"
)

// Static errors for the marshaller.
var (
	// ErrEncode is matched by encoding failures of a format codec.
	ErrEncode = errors.New("encode failed")

	// ErrDecode is matched by decoding failures of a format codec.
	ErrDecode = errors.New("decode failed")

	// ErrTypeMismatch is returned by the generic helpers when the built value
	// does not have the requested Go type.
	ErrTypeMismatch = errors.New("result type mismatch")
)

// FormatError reports a codec failure for a format.
type FormatError struct {
	Format codec.Type
	Op     error // ErrEncode or ErrDecode
	Err    error
}

// Error returns a formatted error message.
func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Format, e.Op, e.Err)
}

// Unwrap returns the operation sentinel and the codec error.
func (e *FormatError) Unwrap() []error {
	return []error{e.Op, e.Err}
}
