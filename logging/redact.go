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

import (
	"context"
	"log/slog"
	"strings"

	"github.com/uniwue-rz/lyra-log/engine"
)

// RedactedValue replaces the value of a redacted key.
const RedactedValue = "***REDACTED***"

// DefaultRedactedKeys are redacted when [WithRedaction] is given no keys.
var DefaultRedactedKeys = []string{"password", "token", "secret", "api_key", "authorization"}

// RedactionProcessor replaces the values of the given context keys,
// including keys nested in groups and in map[string]any values. Keys match
// case-insensitively.
func RedactionProcessor(keys ...string) engine.Processor {
	if len(keys) == 0 {
		keys = DefaultRedactedKeys
	}
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[strings.ToLower(k)] = struct{}{}
	}

	return func(_ context.Context, r *engine.Record) {
		r.Attrs = redactAttrs(r.Attrs, set)
	}
}

func redactAttrs(attrs []slog.Attr, keys map[string]struct{}) []slog.Attr {
	if len(attrs) == 0 {
		return attrs
	}
	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		if _, ok := keys[strings.ToLower(a.Key)]; ok {
			out[i] = slog.String(a.Key, RedactedValue)
			continue
		}
		if v := a.Value.Resolve(); v.Kind() == slog.KindGroup {
			out[i] = slog.Attr{Key: a.Key, Value: slog.GroupValue(redactAttrs(v.Group(), keys)...)}
			continue
		}
		if m, ok := a.Value.Any().(map[string]any); ok && a.Value.Kind() == slog.KindAny {
			out[i] = slog.Any(a.Key, redactMap(m, keys))
			continue
		}
		out[i] = a
	}
	return out
}

func redactMap(m map[string]any, keys map[string]struct{}) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if _, ok := keys[strings.ToLower(k)]; ok {
			out[k] = RedactedValue
			continue
		}
		if nested, ok := v.(map[string]any); ok {
			out[k] = redactMap(nested, keys)
			continue
		}
		out[k] = v
	}
	return out
}
