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

package codec

import "errors"

// Type represents a codec type identifier.
type Type string

// Encoder converts native values into encoded byte representations.
// Implementations must be safe for concurrent use.
type Encoder interface {
	// Encode converts the value v into an encoded byte slice.
	// It returns an error if encoding fails.
	Encode(v any) ([]byte, error)
}

// Decoder converts encoded byte representations into native values.
// Implementations must be safe for concurrent use.
type Decoder interface {
	// Decode converts the encoded data into the value pointed to by v.
	// It returns an error if decoding fails or if v is not a valid target.
	Decode(data []byte, v any) error
}

// Codec is both an [Encoder] and a [Decoder].
type Codec interface {
	Encoder
	Decoder
}

// Static errors for codecs.
var (
	// ErrUnknownFormat is matched by [*UnknownFormatError].
	ErrUnknownFormat = errors.New("unknown format")

	// ErrInvalidCodec is returned when registering a codec without a name or implementation.
	ErrInvalidCodec = errors.New("invalid codec")

	// ErrInvalidTarget is returned when a built-in decoder is not given a *any.
	ErrInvalidTarget = errors.New("decode target must be *any")

	// ErrUnsupportedValue is returned when a value has no representation in a format.
	ErrUnsupportedValue = errors.New("unsupported value")
)

// target returns v as the *any built-in decoders write to.
func target(v any) (*any, error) {
	out, ok := v.(*any)
	if !ok || out == nil {
		return nil, ErrInvalidTarget
	}

	return out, nil
}
