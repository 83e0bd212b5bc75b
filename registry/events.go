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

import "log/slog"

// EventType represents the severity of a build event.
type EventType int

const (
	// EventError indicates an error event (e.g., a root type could not be detected).
	EventError EventType = iota
	// EventWarning indicates a warning event (e.g., a child type was left out).
	EventWarning
	// EventInfo indicates an informational event (e.g., the registry was built).
	EventInfo
	// EventDebug indicates a debug event (e.g., a definition was detected).
	EventDebug
)

// Event is an operational event emitted while building a registry.
type Event struct {
	Type    EventType
	Message string
	Args    []any // slog-style key-value pairs
}

// EventHandler processes build events.
//
//	registry.WithEventHandler(func(e registry.Event) {
//	    if e.Type == registry.EventWarning {
//	        omitted.Add(1)
//	    }
//	})
type EventHandler func(Event)

// DefaultEventHandler returns an EventHandler that logs events to the provided slog.Logger.
//
// If logger is nil, returns a no-op handler that discards all events.
func DefaultEventHandler(logger *slog.Logger) EventHandler {
	if logger == nil {
		return func(Event) {}
	}

	return func(e Event) {
		switch e.Type {
		case EventError:
			logger.Error(e.Message, e.Args...)
		case EventWarning:
			logger.Warn(e.Message, e.Args...)
		case EventInfo:
			logger.Info(e.Message, e.Args...)
		case EventDebug:
			logger.Debug(e.Message, e.Args...)
		}
	}
}
