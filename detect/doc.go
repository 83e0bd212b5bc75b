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

// Package detect classifies Go types into definitions.
//
// A [Pipeline] holds three ordered lists of [Detector] values: collection
// shapes, custom-primitive detectors and serialized-object detectors. The
// lists are tried in that fixed order and the first detector that succeeds
// wins. A type that both has a string factory and exported fields is thus a
// custom primitive, unless a collection shape claims it first.
//
// Detection is gated by [Capabilities]: only the required sides are
// attempted, and a detector that cannot find a required side does not match.
//
// Go has no static methods, so factories are plain functions registered in
// the pipeline's factory pool with [NewFactory]. Their parameter names are
// declared at registration because reflection does not expose them:
//
//	p := detect.MustNew(
//		detect.WithFactories(
//			detect.MustFactory(NewPoint, "x", "y"),
//			detect.MustFactory(ParseNumber),
//		),
//	)
//	def, err := p.Detect(types.For[Point](), detect.Both)
package detect
