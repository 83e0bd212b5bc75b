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

import (
	"fmt"
	"log/slog"

	"rivaas.dev/marshal/detect"
)

// Option configures a [Builder].
type Option func(*config)

type config struct {
	caps         detect.Capabilities
	eventHandler EventHandler
}

func defaultConfig() *config {
	return &config{
		caps:         detect.Both,
		eventHandler: DefaultEventHandler(nil),
	}
}

func (c *config) validate() error {
	if !c.caps.Valid() {
		return fmt.Errorf("%w: %d", detect.ErrInvalidCapabilities, c.caps)
	}
	if c.eventHandler == nil {
		c.eventHandler = DefaultEventHandler(nil)
	}

	return nil
}

// WithCapabilities sets the definition sides detected for every type.
// A registry built for serialize-only use never looks for deserializers.
// Default: [detect.Both].
func WithCapabilities(caps detect.Capabilities) Option {
	return func(c *config) {
		c.caps = caps
	}
}

// WithEventHandler sets a custom [EventHandler] for build events.
func WithEventHandler(handler EventHandler) Option {
	return func(c *config) {
		c.eventHandler = handler
	}
}

// WithLogger sets the logger for build events using the default event handler.
// This is a convenience wrapper around [WithEventHandler].
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.eventHandler = DefaultEventHandler(logger)
	}
}
