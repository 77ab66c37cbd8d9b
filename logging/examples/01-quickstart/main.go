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

// Package main demonstrates basic logger setup for development.
//
// This example covers:
//   - Building handlers with the factory
//   - Log levels (Debug through Emergency)
//   - Structured attributes with key-value pairs
//   - Changing a handler's level at runtime
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/uniwue-rz/lyra-log/formatter"
	"github.com/uniwue-rz/lyra-log/handler"
	"github.com/uniwue-rz/lyra-log/logging"
)

func main() {
	// Initialize level from environment (common pattern)
	level := "INFO"
	if strings.EqualFold(os.Getenv("LOG_DEBUG"), "true") {
		level = "DEBUG"
	}

	// Human-readable output on stderr, built from configuration text
	console, err := handler.New("StdErr", level, nil, formatter.NewConsole())
	if err != nil {
		fmt.Fprintln(os.Stderr, "handler:", err)
		os.Exit(1)
	}

	logger := logging.MustNew("quickstart", logging.WithHandlers(console))
	defer logger.Close()

	logger.Info("service starting", "version", "v1.0.0", "port", 8080)
	logger.Debug("debug info (hidden at INFO level)")
	logger.Warning("using default configuration", "config_path", "/etc/app/logging.yaml")

	// Structured attributes - flat key-value pairs
	logger.Info("user login",
		"user_id", 12345,
		"email", "alice@example.com",
		"mfa_enabled", true,
	)

	// Grouped attributes from a map
	logger.Notice("request received", map[string]any{
		"method": "POST",
		"path":   "/api/payments",
	})

	if err := processPayment(); err != nil {
		logger.Error("payment processing failed",
			"error", err,
			"payment.amount_cents", 2599,
			"payment.currency", "USD",
		)
	}

	// Typos in configuration are reported by the factory
	if _, err := handler.New("Stream", "INFFO", map[string]any{"stream": "/tmp/x.log"}, nil); err != nil {
		logger.Critical("rejected handler configuration", "error", err)
	}

	// Raise verbosity at runtime (useful for debugging production issues)
	console.SetLevel(logging.LevelDebug)
	logger.Debug("debug logging now visible", "timestamp", time.Now().Unix())
}

func processPayment() error {
	time.Sleep(10 * time.Millisecond) // Simulate work
	return errors.New("insufficient funds")
}
