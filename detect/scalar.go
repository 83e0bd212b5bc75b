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
	"encoding/base64"
	"errors"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"

	"rivaas.dev/marshal/definition"
)

var (
	// ErrOverflow is wrapped by conversion errors for numbers that do not fit the target type.
	ErrOverflow = errors.New("value out of range")
	// ErrEmpty is wrapped by conversion errors for empty input to a non-string type.
	ErrEmpty = errors.New("empty input")
	// ErrNotDecimal is wrapped by conversion errors for integers written in
	// anything but base 10.
	ErrNotDecimal = errors.New("not a decimal integer")
)

var (
	durationType = reflect.TypeFor[time.Duration]()
	byteType     = reflect.TypeFor[byte]()
)

// Scalar detects Go basic kinds: booleans, integers, floats, strings and byte
// slices. Byte slices are written in standard base64 and durations in
// [time.Duration.String] form. Parse failures are [*definition.ConversionError].
func Scalar() Detector {
	return PrimitiveStrategy{
		Label: "scalar",
		FindSerializer: func(_ *Scope, rt reflect.Type) (definition.PrimitiveSerializer, error) {
			if !isScalar(rt) {
				return nil, Reject("%s is not a scalar", rt)
			}

			return func(v reflect.Value) (string, error) {
				return formatScalar(definition.Adapt(v, rt)), nil
			}, nil
		},
		FindDeserializer: func(_ *Scope, rt reflect.Type) (definition.PrimitiveDeserializer, error) {
			if !isScalar(rt) {
				return nil, Reject("%s is not a scalar", rt)
			}

			return func(s string) (reflect.Value, error) {
				v, err := parseScalar(rt, s)
				if err != nil {
					return reflect.Value{}, &definition.ConversionError{Type: rt, Input: s, Err: err}
				}

				return v, nil
			}, nil
		},
	}
}

func isScalar(rt reflect.Type) bool {
	switch rt.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	case reflect.Slice:
		return rt.Elem() == byteType
	default:
		return false
	}
}

func formatScalar(v reflect.Value) string {
	switch v.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v.Type() == durationType {
			return time.Duration(v.Int()).String()
		}

		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, v.Type().Bits())
	case reflect.Slice:
		return base64.StdEncoding.EncodeToString(v.Bytes())
	default:
		return v.String()
	}
}

func parseScalar(rt reflect.Type, s string) (reflect.Value, error) {
	out := reflect.New(rt).Elem()
	if s == "" && rt.Kind() != reflect.String && rt.Kind() != reflect.Slice {
		return reflect.Value{}, ErrEmpty
	}

	switch rt.Kind() {
	case reflect.Bool:
		b, err := cast.ToBoolE(s)
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		var (
			n   int64
			err error
		)
		if rt == durationType {
			var d time.Duration
			d, err = cast.ToDurationE(s)
			n = int64(d)
		} else if err = checkDecimal(s); err == nil {
			n, err = cast.ToInt64E(s)
		}
		if err != nil {
			return reflect.Value{}, err
		}
		if out.OverflowInt(n) {
			return reflect.Value{}, ErrOverflow
		}
		out.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if err := checkDecimal(s); err != nil {
			return reflect.Value{}, err
		}
		n, err := cast.ToUint64E(s)
		if err != nil {
			return reflect.Value{}, err
		}
		if out.OverflowUint(n) {
			return reflect.Value{}, ErrOverflow
		}
		out.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := cast.ToFloat64E(s)
		if err != nil {
			return reflect.Value{}, err
		}
		if out.OverflowFloat(f) {
			return reflect.Value{}, ErrOverflow
		}
		out.SetFloat(f)
	case reflect.Slice:
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return reflect.Value{}, err
		}
		out.Set(reflect.ValueOf(b).Convert(rt))
	default:
		out.SetString(s)
	}

	return out, nil
}

// checkDecimal accepts an optionally signed run of decimal digits. cast parses
// with base 0, which would read "010" as octal.
func checkDecimal(s string) error {
	digits := strings.TrimPrefix(strings.TrimPrefix(s, "-"), "+")
	if len(digits) == len(s)-1 || len(digits) == len(s) {
		if digits != "" && strings.Trim(digits, "0123456789") == "" && (len(digits) == 1 || digits[0] != '0') {
			return nil
		}
	}

	return ErrNotDecimal
}
