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
// Package logging provides the Logger facade: a named channel with an
// ordered list of handlers built by the handler package.
//
// Records go to the handlers in the order they were added. A handler whose
// bubble option is false stops the record from reaching the handlers after
// it. Each handler filters by its own minimum level.
//
// # Basic Usage
//
//	h, err := handler.New("StdErr", "DEBUG", nil, nil)
//	if err != nil {
//	    return err
//	}
//	logger := logging.MustNew("app", logging.WithHandlers(h))
//	defer logger.Close()
//	logger.Info("service started", "port", 8080)
//
// # Levels
//
// Eight levels are available, from [LevelDebug] to [LevelEmergency]:
//
//	logger.Notice("config reloaded")
//	logger.Critical("replica lost", "replica", "db-2")
//
// # Replacing Handlers
//
// [Logger.SetHandlers] swaps the complete handler set at once. Log calls
// running concurrently see either the old or the new set:
//
//	_ = logger.SetHandlers(fileHandler, syslogHandler)
//
// # Convenience Methods
//
//	logger.LogError(err, "operation failed", "user_id", userID)
//
//	start := time.Now()
//	logger.LogDuration("processing completed", start, "items", count)
//
//	logger.ErrorWithStack("invariant violated", err, true)
//
// # Trace Correlation
//
// Records logged with a context carrying an OpenTelemetry span get
// trace_id and span_id extra fields:
//
//	cl := logger.WithContext(ctx)
//	cl.Info("processing request")
//
// # Redaction
//
//	logger := logging.MustNew("auth", logging.WithHandlers(h), logging.WithRedaction())
//	logger.Info("login", "password", "hunter2") // password="***REDACTED***"
//
// # Buffering
//
// Startup logs can be held back and replayed later:
//
//	logger.StartBuffering()
//	// ... initialization ...
//	_ = logger.FlushBuffer()
//
// # log/slog
//
// [Logger.Slog] exposes the logger as a [log/slog.Logger] for libraries
// written against the standard interface.
//
// # Testing
//
// [NewTestHelper] captures JSON output for assertions:
//
//	th := logging.NewTestHelper(t)
//	th.Logger.Info("test message", "key", "value")
//	th.AssertLog(t, "INFO", "test message", map[string]any{"key": "value"})
//
// [MockWriter] records raw writes and [SinkSpy] records engine records.
package logging
