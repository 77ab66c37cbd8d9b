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

package config

import "context"

// Source provides one layer of configuration. Later sources override
// earlier ones when the loader merges them.
//
// Load must be safe to call concurrently; the watcher reloads from its own
// goroutine.
type Source interface {
	// Load returns the raw document. A nil map is treated as empty.
	Load(ctx context.Context) (map[string]any, error)
}

// Dumper receives the merged document after a successful Load, for
// example to record the effective configuration on disk.
type Dumper interface {
	Dump(ctx context.Context, doc map[string]any) error
}
