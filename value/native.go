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

package value

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/spf13/cast"
)

// ErrUnsupportedNative is returned by [FromNative] for shapes that have no
// universal representation.
var ErrUnsupportedNative = errors.New("unsupported native value")

// ToNative converts v into the nil/string/[]any/map[string]any shape consumed
// by codecs.
func ToNative(v Value) any {
	switch v := v.(type) {
	case nil, Null:
		return nil
	case Primitive:
		return string(v)
	case Collection:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = ToNative(e)
		}

		return out
	case *Object:
		out := make(map[string]any, v.Len())
		for _, k := range v.keys {
			out[k] = ToNative(v.values[k])
		}

		return out
	default:
		return nil
	}
}

// FromNative converts a codec-produced structure into a [Value].
// Scalars (booleans, numbers, timestamps) become primitives holding their
// canonical text; byte slices are base64 encoded. Map keys are sorted so the
// resulting object order is deterministic.
func FromNative(native any) (Value, error) {
	switch n := native.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return n, nil
	case string:
		return Primitive(n), nil
	case json.Number:
		return Primitive(n.String()), nil
	case []byte:
		return Primitive(base64.StdEncoding.EncodeToString(n)), nil
	case time.Time:
		return Primitive(n.Format(time.RFC3339Nano)), nil
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		s, err := cast.ToStringE(n)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedNative, err)
		}

		return Primitive(s), nil
	case []any:
		out := make(Collection, len(n))
		for i, e := range n {
			v, err := FromNative(e)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			out[i] = v
		}

		return out, nil
	case map[string]any:
		keys := make([]string, 0, len(n))
		for k := range n {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		obj := NewObject()
		for _, k := range keys {
			v, err := FromNative(n[k])
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			obj.Set(k, v)
		}

		return obj, nil
	}

	return fromReflect(reflect.ValueOf(native))
}

// fromReflect handles typed slices and maps such as []map[string]any or
// map[any]any produced by some decoders.
func fromReflect(rv reflect.Value) (Value, error) {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null{}, nil
		}

		return FromNative(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return Null{}, nil
		}
		out := make(Collection, rv.Len())
		for i := range rv.Len() {
			v, err := FromNative(rv.Index(i).Interface())
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			out[i] = v
		}

		return out, nil
	case reflect.Map:
		if rv.IsNil() {
			return Null{}, nil
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k, err := cast.ToStringE(iter.Key().Interface())
			if err != nil {
				return nil, fmt.Errorf("%w: map key %v", ErrUnsupportedNative, iter.Key())
			}
			m[k] = iter.Value().Interface()
		}

		return FromNative(m)
	case reflect.String:
		return Primitive(rv.String()), nil
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		s, err := cast.ToStringE(scalar(rv))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedNative, err)
		}

		return Primitive(s), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedNative, rv.Interface())
	}
}

// scalar returns the underlying builtin value of a possibly named scalar.
func scalar(rv reflect.Value) any {
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint()
	default:
		return rv.Float()
	}
}
