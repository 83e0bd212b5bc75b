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

package registry

import "rivaas.dev/marshal/types"

// Scanner supplies candidate types for bulk registration.
// Scanned types are soft seeds: those that cannot be detected are left out.
type Scanner interface {
	Scan() ([]types.Type, error)
}

// ScannerFunc adapts a function to a [Scanner].
type ScannerFunc func() ([]types.Type, error)

// Scan implements [Scanner].
func (f ScannerFunc) Scan() ([]types.Type, error) {
	return f()
}

// Types returns a scanner supplying a fixed list of types.
func Types(ts ...types.Type) Scanner {
	return ScannerFunc(func() ([]types.Type, error) {
		return append([]types.Type(nil), ts...), nil
	})
}
