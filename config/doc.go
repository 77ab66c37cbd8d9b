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

// Package config builds lyra-log loggers from configuration documents.
//
// A document describes one logger: its name, timestamp precision, the
// context keys to redact and an ordered list of handlers. Every handler
// entry is passed to the handler factory, so the same kinds, levels and
// options are accepted as by [handler.New].
//
//	name: api
//	microseconds: true
//	redact: [password, token]
//	handlers:
//	  - kind: Stream
//	    level: INFO
//	    formatter: json
//	    options:
//	      stream: /var/log/api.log
//	      useLocking: true
//	  - kind: StdErr
//	    level: ERROR
//
// # Sources
//
// A [Loader] reads documents from files (YAML, JSON, TOML, .env), from
// byte content, from the environment and from Consul. Sources are merged
// in registration order, later sources overriding earlier ones:
//
//	loader := config.MustNew(
//	    config.WithFile("/etc/lyra/logging.yaml"),
//	    config.WithEnv("LYRA_"),
//	)
//	logger, err := loader.Logger(ctx)
//
// Keys are case-sensitive. Scalars are replaced, nested maps are merged
// and handler lists merge entry by entry: the second source's handlers[0]
// updates the first source's handlers[0] unless its kind differs, in which
// case it replaces it. Environment variables are matched to keys
// case-insensitively and address handlers by number:
//
//	LYRA_HANDLERS_0_LEVEL=WARNING
//
// # Validation
//
// The merged document is validated against [DefinitionSchema] and decoded
// into a [Definition]; unknown keys fail at both levels. Handler errors
// from the factory are returned as [*Error] naming the handler index and
// wrap the factory's typed errors:
//
//	var optErr *handler.HandlerOptionNotExistsError
//	if errors.As(err, &optErr) {
//	    // optErr.Keys lists the unknown options
//	}
//
// # Reloading
//
// A [Watcher] reloads the definition when a watched file changes and
// swaps freshly built handlers into the running logger:
//
//	w, _ := config.NewWatcher(loader, logger)
//	defer w.Close()
//	go w.Watch(ctx)
//
// # Subpackages
//
//   - codec: encoders and decoders for document formats
//   - source: File, OSEnvVar and Consul sources
//   - dumper: writes the effective configuration to a file
package config
