// Copyright 2025 The Lyra Log Authors
// Copyright 2025 Company.info B.V.
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

package config

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the loader.
var (
	// ErrNilContext is returned when Load is called with a nil context.
	ErrNilContext = errors.New("context cannot be nil")

	// ErrNilSource is returned when a nil source is registered.
	ErrNilSource = errors.New("source cannot be nil")

	// ErrNilDumper is returned when a nil dumper is registered.
	ErrNilDumper = errors.New("dumper cannot be nil")

	// ErrNoSources is returned when Load runs without any source.
	ErrNoSources = errors.New("no configuration sources")

	// ErrUnknownFormat is returned when a file extension names no codec.
	ErrUnknownFormat = errors.New("cannot detect format")

	// ErrNilLoader is returned when a watcher is created without a loader.
	ErrNilLoader = errors.New("loader cannot be nil")

	// ErrNilLogger is returned when a watcher is created without a logger.
	ErrNilLogger = errors.New("logger cannot be nil")

	// ErrNoWatchPaths is returned when a watcher has no files to watch.
	ErrNoWatchPaths = errors.New("no files to watch")
)

// Error describes a failure while loading a definition or building a
// logger from it.
//
// Source names where it happened ("source[1]", "json-schema",
// "definition"), Field optionally narrows it ("handlers[2]"), and
// Operation names the step ("load", "merge", "validate", "decode",
// "build"). Err is the underlying error and stays reachable through
// [errors.Is] and [errors.As], including the typed handler errors.
type Error struct {
	Source    string
	Field     string
	Operation string
	Err       error
}

// Error returns a formatted error message with context information.
func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error in %s.%s during %s: %v",
			e.Source, e.Field, e.Operation, e.Err)
	}
	return fmt.Sprintf("config error in %s during %s: %v",
		e.Source, e.Operation, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates an Error without field information.
func NewError(source, operation string, err error) *Error {
	return &Error{
		Source:    source,
		Operation: operation,
		Err:       err,
	}
}

// NewFieldError creates an Error for one field of the definition.
func NewFieldError(source, field, operation string, err error) *Error {
	return &Error{
		Source:    source,
		Field:     field,
		Operation: operation,
		Err:       err,
	}
}
