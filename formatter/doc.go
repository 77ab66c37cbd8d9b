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

// Package formatter turns engine records into bytes.
//
// Built-in formatters, selectable by name in configuration files:
//
//   - line: [Line], the default for every sink
//   - json: [NewJSON], one JSON object per line
//   - text: [NewText], key=value pairs
//   - console: [Console], colored output for terminals
package formatter
