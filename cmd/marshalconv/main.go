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

// Command marshalconv converts documents between the formats supported by
// rivaas.dev/marshal.
//
//	marshalconv convert --from yaml --to json config.yaml
package main

import (
	"fmt"
	"os"

	"rivaas.dev/marshal/internal/cli"
)

func main() {
	if err := cli.NewCommand(cli.CommandOptions{}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "marshalconv:", err)
		os.Exit(1)
	}
}
