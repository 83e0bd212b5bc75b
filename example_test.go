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

package marshal_test

import (
	"errors"
	"fmt"
	"strconv"

	"rivaas.dev/marshal"
	"rivaas.dev/marshal/engine"
	"rivaas.dev/marshal/validation"
	"rivaas.dev/marshal/value"
)

// Celsius is written as its decimal string.
type Celsius float64

func (c Celsius) String() string { return strconv.FormatFloat(float64(c), 'f', -1, 64) }

func ParseCelsius(s string) (Celsius, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New("not a temperature")
	}

	return Celsius(f), nil
}

type Reading struct {
	Sensor string  `json:"sensor"`
	Temp   Celsius `json:"temp"`
}

// ExampleMarshaller_Marshal demonstrates writing a value as JSON.
func ExampleMarshaller_Marshal() {
	m := marshal.MustNew(
		marshal.WithType[Reading](),
		marshal.WithFactory(ParseCelsius),
	)

	data, err := m.Marshal("json", Reading{Sensor: "roof", Temp: 21.5})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(string(data))
	// Output: {"sensor":"roof","temp":"21.5"}
}

// ExampleUnmarshalAs demonstrates collecting field errors.
func ExampleUnmarshalAs() {
	m := marshal.MustNew(
		marshal.WithType[Reading](),
		marshal.WithFactory(ParseCelsius),
		marshal.WithValidationRules(validation.Match(
			func(err error) bool { return err.Error() == "not a temperature" },
			validation.Message("temperature"),
		)),
	)

	_, err := marshal.UnmarshalAs[Reading](m, "yaml", []byte("sensor: [a]\ntemp: warm\n"))

	var verr *validation.Error
	if errors.As(err, &verr) {
		for _, f := range verr.Fields {
			fmt.Println(f.Path, f.Code)
		}
	}
	// Output:
	// sensor type_mismatch
	// temp temperature
}

// ExampleWithInjector demonstrates supplying absent fields.
func ExampleWithInjector() {
	m := marshal.MustNew(
		marshal.WithType[Reading](),
		marshal.WithFactory(ParseCelsius),
	)

	inj := engine.NewInjector().Put("sensor", "default")
	in := value.NewObject().Set("temp", value.Primitive("-3"))

	r, err := marshal.DeserializeAs[Reading](m, in, marshal.WithInjector(inj))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%s %s\n", r.Sensor, r.Temp)
	// Output: default -3
}
