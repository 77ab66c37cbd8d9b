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

// Package dumper writes the effective logger configuration somewhere an
// operator can inspect it.
//
// A dumper receives the merged document after every successful load,
// including reloads triggered by a watcher, so the file always reflects the
// handlers currently in use.
//
// # Example
//
//	encoder, _ := codec.GetEncoder(codec.TypeYAML)
//	d := dumper.NewFileWithPermissions("/run/lyra/effective.yaml", encoder, 0o600)
//	err := d.Dump(ctx, doc)
package dumper
