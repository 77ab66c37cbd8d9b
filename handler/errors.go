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

package handler

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the factory. Every typed error below unwraps to one
// of them, so callers can branch with [errors.Is] or extract details with
// [errors.As]:
//
//	h, err := handler.New("Stream", "INFO", opts, nil)
//	var optErr *handler.HandlerOptionNotExistsError
//	if errors.As(err, &optErr) {
//	    fmt.Println("unknown keys:", optErr.Keys)
//	}
var (
	// ErrHandlerNotSupported indicates an unknown handler kind name.
	ErrHandlerNotSupported = errors.New("the given handler is not supported")

	// ErrOptionNotExists indicates an option key the handler kind does not define.
	ErrOptionNotExists = errors.New("the option for the handler does not exist")

	// ErrLevelNotExists indicates an unknown level name.
	ErrLevelNotExists = errors.New("the given log level does not exist")

	// ErrInvalidOption indicates an option value of the wrong type or out of range.
	ErrInvalidOption = errors.New("invalid handler option")
)

// HandlerNotSupportedError reports a kind name outside the supported set.
type HandlerNotSupportedError struct {
	Kind string
}

func (e *HandlerNotSupportedError) Error() string {
	return fmt.Sprintf("%s: %q", ErrHandlerNotSupported, e.Kind)
}

func (e *HandlerNotSupportedError) Unwrap() error {
	return ErrHandlerNotSupported
}

// HandlerOptionNotExistsError reports option keys the kind does not
// define. Keys are sorted.
type HandlerOptionNotExistsError struct {
	Kind Kind
	Keys []string
}

func (e *HandlerOptionNotExistsError) Error() string {
	return fmt.Sprintf("%s: %s does not accept %s", ErrOptionNotExists, e.Kind, strings.Join(e.Keys, ", "))
}

func (e *HandlerOptionNotExistsError) Unwrap() error {
	return ErrOptionNotExists
}

// LogLevelNotExistsError reports a level name outside the eight severities.
type LogLevelNotExistsError struct {
	Level string
}

func (e *LogLevelNotExistsError) Error() string {
	return fmt.Sprintf("%s: %q", ErrLevelNotExists, e.Level)
}

func (e *LogLevelNotExistsError) Unwrap() error {
	return ErrLevelNotExists
}
