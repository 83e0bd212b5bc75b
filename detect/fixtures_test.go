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

package detect_test

import (
	"errors"
	"strconv"
	"strings"
)

// Number is a custom primitive with a String accessor and a Parse factory.
type Number struct {
	v int
}

func (n Number) String() string { return strconv.Itoa(n.v) }

func ParseNumber(s string) (Number, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return Number{}, err
	}

	return Number{v: v}, nil
}

// Point is a serialized object with a reconstructing factory.
type Point struct {
	X Number `json:"x"`
	Y Number `json:"y"`
}

func NewPoint(x, y Number) Point {
	return Point{X: x, Y: y}
}

// Color is an integer with a string form.
type Color int

func (c Color) String() string {
	switch c {
	case 1:
		return "red"
	case 2:
		return "blue"
	default:
		return "none"
	}
}

func ParseColor(s string) (Color, error) {
	switch s {
	case "red":
		return 1, nil
	case "blue":
		return 2, nil
	default:
		return 0, errors.New("unknown color")
	}
}

// Celsius declares its string form through encoding.TextMarshaler.
type Celsius struct {
	Degrees float64
}

func (c Celsius) MarshalText() ([]byte, error) {
	return []byte(strconv.FormatFloat(c.Degrees, 'f', -1, 64) + "C"), nil
}

func (c *Celsius) UnmarshalText(b []byte) error {
	f, err := strconv.ParseFloat(strings.TrimSuffix(string(b), "C"), 64)
	if err != nil {
		return err
	}
	c.Degrees = f

	return nil
}

// Pair has two factories that are equally plausible.
type Pair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
	hash  int
}

func MakePairA(left, right string) Pair { return Pair{Left: left, Right: right, hash: 1} }

func MakePairB(left, right string) Pair { return Pair{Left: left, Right: right, hash: 2} }

// Segment has two factories, one of them named after the type.
type Segment struct {
	From int `json:"from"`
	To   int `json:"to"`
	id   int
}

func BuildSegment(from, to int) *Segment { return &Segment{From: from, To: to, id: 1} }

func Combine(from, to int) Segment { return Segment{From: from, To: to, id: 2} }

// Token has a single-string factory and no serialized fields.
type Token struct {
	raw string
}

func NewToken(s string) Token { return Token{raw: s} }

// Audit is embedded into Document.
type Audit struct {
	CreatedBy string `json:"createdBy"`
}

// Document flattens its embedded struct and skips excluded fields.
type Document struct {
	*Audit
	Title    string            `json:"title,omitempty"`
	Tags     []string          `json:"tags"`
	Secret   string            `json:"-"`
	Callback func()            `json:"callback"`
	Extra    map[string]string `json:"extra"`
}
