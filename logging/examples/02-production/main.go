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

// Package main demonstrates production-ready logging configuration.
//
// This example covers:
//   - Loading the logger definition from a YAML file
//   - Overriding handler settings from the environment
//   - Redacting sensitive fields
//   - Reloading handlers when the file changes
//   - Dumping the effective configuration
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/uniwue-rz/lyra-log/config"
	"github.com/uniwue-rz/lyra-log/logging"
)

const defaultConfig = `
name: payment-api
microseconds: true
redact: [card_number, cvv]
handlers:
  - kind: Stream
    level: INFO
    formatter: json
    options:
      stream: %s
      useLocking: true
  - kind: StdErr
    level: ERROR
    formatter: console
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dir, err := os.MkdirTemp("", "lyra-production")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer os.RemoveAll(dir)

	configPath := filepath.Join(dir, "logging.yaml")
	logPath := filepath.Join(dir, "payment-api.log")
	if err = os.WriteFile(configPath, fmt.Appendf(nil, defaultConfig, logPath), 0o600); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// PAYMENT_LOG_HANDLERS_0_LEVEL=DEBUG raises the file handler's verbosity
	loader := config.MustNew(
		config.WithFile(configPath),
		config.WithEnv("PAYMENT_LOG_"),
		config.WithFileDumper(filepath.Join(dir, "effective.json")),
	)

	logger, err := loader.Logger(ctx)
	if err != nil {
		var cfgErr *config.Error
		if errors.As(err, &cfgErr) {
			fmt.Fprintf(os.Stderr, "logging configuration rejected at %s: %v\n", cfgErr.Source, cfgErr.Err)
		}
		os.Exit(1)
	}
	defer logger.Close()

	watcher, err := config.NewWatcher(loader, logger, config.WithDebounce(time.Second))
	if err != nil {
		logger.LogError(err, "hot reload disabled")
	} else {
		defer watcher.Close()
		go func() {
			if err := watcher.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.LogError(err, "configuration watcher stopped")
			}
		}()
	}

	logger.Info("service started", "port", 8080, "tls_enabled", true)

	// Sensitive fields never reach the sinks
	logger.Info("payment authorized",
		"request_id", "req-12345",
		"amount_cents", 2599,
		"card_number", "4111111111111111",
	)

	logger.Error("database query failed",
		"error", "connection timeout",
		"database", "postgres-primary",
		"retry_count", 3,
	)

	printLog(logger, logPath)
}

func printLog(logger *logging.Logger, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.LogError(err, "reading log file failed")
		return
	}
	fmt.Printf("\n--- %s ---\n%s", path, data)
}
