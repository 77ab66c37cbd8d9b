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

// Package source provides the configuration sources behind the config
// loader. Each source returns the raw document as a map[string]any; the
// loader merges them and decodes the result into a logger definition.
//
// # Available Sources
//
//   - File: a YAML, JSON or TOML file, or in-memory content
//   - OSEnvVar: environment variables sharing a prefix
//   - Consul: one key of the Consul key-value store
//
// # Example
//
//	decoder, _ := codec.GetDecoder(codec.TypeYAML)
//	doc, err := source.NewFile("/etc/lyra/logging.yaml", decoder).Load(ctx)
//
//	env, err := source.NewOSEnvVar("LYRA_").Load(ctx)
package source
