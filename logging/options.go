// Copyright 2025 The Lyra Log Authors
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

package logging

import (
	"time"

	"github.com/uniwue-rz/lyra-log/engine"
	"github.com/uniwue-rz/lyra-log/handler"
)

// Option is a functional option for configuring the logger.
type Option func(*Logger)

// WithHandlers registers handlers in dispatch order. May be given more
// than once; handlers accumulate.
func WithHandlers(hs ...*handler.Handler) Option {
	return func(l *Logger) {
		l.pending = append(l.pending, hs...)
	}
}

// WithMicrosecondTimestamps keeps microseconds in record times. By default
// times are truncated to whole seconds.
func WithMicrosecondTimestamps(enabled bool) Option {
	return func(l *Logger) { l.microseconds = enabled }
}

// WithProcessors adds processors that run on every record, after the
// built-in trace and redaction processors.
func WithProcessors(processors ...engine.Processor) Option {
	return func(l *Logger) {
		l.processors = append(l.processors, processors...)
	}
}

// WithRedaction replaces the values of the named context keys with
// [RedactedValue]. Without keys, [DefaultRedactedKeys] are used.
//
// Example:
//
//	logger := logging.MustNew("app",
//	    logging.WithHandlers(h),
//	    logging.WithRedaction("password", "session"),
//	)
func WithRedaction(keys ...string) Option {
	return func(l *Logger) {
		l.redacting = true
		l.redact = append(l.redact, keys...)
	}
}

// WithErrorHandler receives sink write failures. By default they are
// discarded.
func WithErrorHandler(fn func(error)) Option {
	return func(l *Logger) {
		if fn != nil {
			l.errorHandler = fn
		}
	}
}

// WithClock replaces the time source for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Logger) { l.clock = now }
}
