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
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
)

var (
	// RCU pattern: atomic pointer to immutable map
	structInfoCachePtr atomic.Pointer[map[cacheKey]*structInfo]

	// Write-side lock (only for cache updates)
	structInfoCacheMu sync.Mutex
)

func init() {
	m := make(map[cacheKey]*structInfo)
	structInfoCachePtr.Store(&m)
}

// cacheKey is the key for the struct cache.
type cacheKey struct {
	typ reflect.Type
	tag string
}

// fieldInfo is a serialized struct field.
type fieldInfo struct {
	index []int        // Field index path (supports embedded structs)
	name  string       // Go field name
	wire  string       // Serialized name
	typ   reflect.Type // Declared field type
}

// structInfo holds the parsed fields of a struct type for one tag.
type structInfo struct {
	fields []fieldInfo
	// unexported reports fields that struct literal construction cannot set.
	unexported bool
	// err is a configuration error found while parsing.
	err error
}

// getStructInfo retrieves or parses struct information from the cache.
// Reads are lock-free; concurrent misses for the same key parse once.
func getStructInfo(typ reflect.Type, tag string) *structInfo {
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		panic(fmt.Sprintf("detect: getStructInfo expects struct, got %s", typ.Kind()))
	}

	key := cacheKey{typ: typ, tag: tag}

	m := structInfoCachePtr.Load()
	if si, ok := (*m)[key]; ok {
		return si
	}

	structInfoCacheMu.Lock()
	defer structInfoCacheMu.Unlock()

	// Double-check: another goroutine might have populated it
	m = structInfoCachePtr.Load()
	if si, ok := (*m)[key]; ok {
		return si
	}

	si := parseStructInfo(typ, tag)

	newMap := make(map[cacheKey]*structInfo, len(*m)+1)
	maps.Copy(newMap, *m)
	newMap[key] = si
	structInfoCachePtr.Store(&newMap)

	return si
}

// parseStructInfo collects the serialized fields of t in field index order.
// Fields promoted from embedded structs are flattened. A shallower field hides
// a deeper one with the same name; two at the same depth are a configuration error.
func parseStructInfo(t reflect.Type, tag string) *structInfo {
	info := &structInfo{}
	parseStructType(t, tag, nil, map[reflect.Type]bool{t: true}, info)

	byName := make(map[string]int, len(info.fields))
	kept := info.fields[:0]
	for _, f := range info.fields {
		i, seen := byName[f.wire]
		if !seen {
			byName[f.wire] = len(kept)
			kept = append(kept, f)

			continue
		}
		switch {
		case len(f.index) < len(kept[i].index):
			kept[i] = f
		case len(f.index) == len(kept[i].index):
			info.err = fmt.Errorf("%w: %q used by %s and %s in %s",
				ErrDuplicateField, f.wire, kept[i].name, f.name, t)
		}
	}
	slices.SortFunc(kept, func(a, b fieldInfo) int {
		return slices.Compare(a.index, b.index)
	})
	info.fields = kept

	return info
}

func parseStructType(t reflect.Type, tag string, indexPrefix []int, path map[reflect.Type]bool, info *structInfo) {
	for i := range t.NumField() {
		field := t.Field(i)
		index := append(append([]int(nil), indexPrefix...), i)

		name, skip := fieldName(field, tag)
		if skip {
			continue
		}

		// Embedded structs without an explicit name are flattened.
		ft := field.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if field.Anonymous && ft.Kind() == reflect.Struct && !hasTagName(field, tag) {
			if !field.IsExported() {
				info.unexported = true
				continue
			}
			if path[ft] {
				continue
			}
			path[ft] = true
			parseStructType(ft, tag, index, path, info)
			delete(path, ft)

			continue
		}

		if !field.IsExported() {
			info.unexported = true
			continue
		}

		switch field.Type.Kind() {
		case reflect.Func, reflect.Chan, reflect.UnsafePointer:
			continue
		}

		info.fields = append(info.fields, fieldInfo{
			index: index,
			name:  field.Name,
			wire:  name,
			typ:   field.Type,
		})
	}
}

// fieldName returns the serialized name of a field. Fields tagged "-" are skipped.
func fieldName(field reflect.StructField, tag string) (string, bool) {
	v := field.Tag.Get(tag)
	if v == "-" {
		return "", true
	}
	name, _, _ := strings.Cut(v, ",")
	if name == "" {
		name = field.Name
	}

	return name, false
}

func hasTagName(field reflect.StructField, tag string) bool {
	name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
	return name != "" && name != "-"
}

// WarmupCache pre-parses struct types so that detection does not pay for
// reflection. Non-struct values are skipped.
//
//	detect.WarmupCache("json", Order{}, Customer{})
func WarmupCache(tag string, values ...any) {
	for _, v := range values {
		typ := reflect.TypeOf(v)
		if typ == nil {
			continue
		}
		if typ.Kind() == reflect.Pointer {
			typ = typ.Elem()
		}
		if typ.Kind() != reflect.Struct {
			continue
		}
		getStructInfo(typ, tag)
	}
}
