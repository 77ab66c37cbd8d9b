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

// Package main demonstrates logging helper methods and utilities.
//
// This example covers:
//   - LogDuration for timing operations
//   - LogError and ErrorWithStack for error handling
//   - Buffering startup logs until a banner is printed
//   - Trace-correlated logging through a ContextLogger
//   - DebugInfo for diagnostic information
package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/uniwue-rz/lyra-log/formatter"
	"github.com/uniwue-rz/lyra-log/handler"
	"github.com/uniwue-rz/lyra-log/logging"
)

func main() {
	console, err := handler.New("StdOut", "INFO", nil, formatter.NewConsole())
	if err != nil {
		panic(err)
	}
	logger := logging.MustNew("helpers", logging.WithHandlers(console))
	defer logger.Close()

	// 1. Buffered startup logs
	demonstrateBuffering(logger)

	// 2. Duration logging - measure operation timing
	demonstrateDurationLogging(logger)

	// 3. Error logging with and without stack traces
	demonstrateErrorLogging(logger)

	// 4. Trace correlation
	demonstrateContextLogging(logger)

	// 5. Debug info for diagnostics
	demonstrateDebugInfo(logger)
}

func demonstrateBuffering(logger *logging.Logger) {
	logger.StartBuffering()
	logger.Info("loading plugins", "count", 3)
	logger.Info("plugins loaded")

	fmt.Println("=== helpers v1.0.0 ===")
	if err := logger.FlushBuffer(); err != nil {
		fmt.Println("flush failed:", err)
	}
}

func demonstrateDurationLogging(logger *logging.Logger) {
	fmt.Println("\n--- Duration Logging ---")

	start := time.Now()
	time.Sleep(25 * time.Millisecond) // Simulate a query
	logger.LogDuration("database query completed", start,
		"query", "SELECT * FROM users",
		"rows", 42,
	)
}

func demonstrateErrorLogging(logger *logging.Logger) {
	fmt.Println("\n--- Error Logging ---")

	err := errors.New("connection refused")
	logger.LogError(err, "cache unavailable", "host", "redis:6379")

	// Stack traces only for unexpected failures
	logger.ErrorWithStack("invariant violated", errors.New("negative balance"), true,
		"account", "acct-123",
	)
}

func demonstrateContextLogging(logger *logging.Logger) {
	fmt.Println("\n--- Context Logging ---")

	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctx, span := tp.Tracer("helpers").Start(context.Background(), "checkout")
	defer span.End()

	cl := logger.WithContext(ctx)
	cl.Info("processing order", "order_id", "ord-789")
	fmt.Println("trace:", cl.TraceID())
}

func demonstrateDebugInfo(logger *logging.Logger) {
	fmt.Println("\n--- Debug Info ---")

	for k, v := range logger.DebugInfo() {
		fmt.Printf("  %s: %v\n", k, v)
	}
}
