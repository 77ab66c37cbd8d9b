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

import "errors"

// Error types for the logger.
//
// Usage pattern:
//
//	logger, err := logging.New(name, logging.WithHandlers(hs...))
//	if errors.Is(err, logging.ErrEmptyName) {
//	    // fall back to a default channel name
//	}
var (
	// ErrEmptyName indicates an empty logger name.
	ErrEmptyName = errors.New("logger name is empty")

	// ErrNilHandler indicates a nil handler was passed.
	// This is a programmer error and should be caught during initialization.
	ErrNilHandler = errors.New("handler is nil")

	// ErrNilEngine indicates a nil engine was passed to [Logger.SetEngine].
	ErrNilEngine = errors.New("engine is nil")

	// ErrLoggerClosed indicates the logger has been closed via [Logger.Close].
	// Further log attempts are silently dropped (not an error condition).
	// This error is returned by operations that change the handler set.
	ErrLoggerClosed = errors.New("logger is closed")
)
