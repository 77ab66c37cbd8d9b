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

package config

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"dario.cat/mergo"
	"github.com/spf13/cast"

	"github.com/uniwue-rz/lyra-log/handler"
)

const (
	handlersKey = "handlers"

	// maxHandlerIndex bounds the handler index accepted from the environment.
	maxHandlerIndex = 255
)

// normalize converts a decoded document into map[string]any objects and
// []any lists, whatever shapes the codec produced.
func normalize(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []map[string]any:
		out := make([]any, len(x))
		for i, m := range x {
			out[i] = normalize(m)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = normalize(val)
		}
		return out
	default:
		return v
	}
}

// mergeDocuments merges src into dst. Scalars and nested maps of src
// override dst. Handler lists merge by position: an entry of src updates
// the entry at the same index of dst, unless it names a different kind,
// in which case it replaces it. A nil entry keeps dst's entry.
func mergeDocuments(dst, src map[string]any) error {
	rest := maps.Clone(src)
	delete(rest, handlersKey)
	if err := mergo.Map(&dst, rest, mergo.WithOverride); err != nil {
		return err
	}

	srcHandlers, ok := src[handlersKey]
	if !ok {
		return nil
	}
	srcList, ok := srcHandlers.([]any)
	if !ok {
		dst[handlersKey] = srcHandlers
		return nil
	}
	dstList, _ := dst[handlersKey].([]any)

	merged, err := mergeHandlers(dstList, srcList)
	if err != nil {
		return err
	}
	dst[handlersKey] = merged
	return nil
}

func mergeHandlers(dst, src []any) ([]any, error) {
	out := make([]any, max(len(dst), len(src)))
	copy(out, dst)

	for i, s := range src {
		if s == nil {
			continue
		}
		sm, sOK := s.(map[string]any)
		dm, dOK := out[i].(map[string]any)
		if !sOK || !dOK || !sameKind(dm, sm) {
			out[i] = s
			continue
		}
		dm = normalize(dm).(map[string]any)
		if err := mergo.Map(&dm, sm, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("handlers[%d]: %w", i, err)
		}
		out[i] = dm
	}
	return out, nil
}

func sameKind(dst, src map[string]any) bool {
	kind, ok := src["kind"]
	return !ok || kind == dst["kind"]
}

// Canonical key sets used to restore the case of keys read from the
// environment, where names are lowercased.
var (
	definitionKeys = []string{"name", "microseconds", "redact", handlersKey}
	handlerDefKeys = []string{"kind", "level", "formatter", "options"}
)

// optionKeys returns every option key accepted by any handler kind.
func optionKeys() []string {
	var keys []string
	for _, k := range handler.Kinds() {
		keys = append(keys, slices.Collect(maps.Keys(handler.DefaultOptions(k)))...)
	}
	slices.Sort(keys)
	return slices.Compact(keys)
}

// canonicalize turns an environment style document into the regular
// shape: known keys get their canonical case, handlers indexed by number
// become a list, and the scalar fields of the definition get their types.
func canonicalize(doc map[string]any) map[string]any {
	out := renameKeys(doc, definitionKeys)

	if m, ok := out[handlersKey].(map[string]any); ok {
		if list, ok := indexedList(m); ok {
			out[handlersKey] = list
		}
	}
	if list, ok := out[handlersKey].([]any); ok {
		opts := optionKeys()
		for i, item := range list {
			h, ok := item.(map[string]any)
			if !ok {
				continue
			}
			h = renameKeys(h, handlerDefKeys)
			if o, ok := h["options"].(map[string]any); ok {
				h["options"] = renameKeys(o, opts)
			}
			list[i] = h
		}
	}

	if s, ok := out["microseconds"].(string); ok {
		if b, err := cast.ToBoolE(s); err == nil {
			out["microseconds"] = b
		}
	}
	if s, ok := out["redact"].(string); ok {
		out["redact"] = splitList(s)
	}
	return out
}

// renameKeys replaces keys matching a canonical key case-insensitively.
func renameKeys(m map[string]any, canonical []string) map[string]any {
	byLower := make(map[string]string, len(canonical))
	for _, k := range canonical {
		byLower[strings.ToLower(k)] = k
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		if c, ok := byLower[strings.ToLower(k)]; ok {
			k = c
		}
		out[k] = v
	}
	return out
}

// indexedList converts {"0": a, "2": c} into [a, nil, c]. It reports false
// when a key is not an integer between 0 and maxHandlerIndex.
func indexedList(m map[string]any) ([]any, bool) {
	type entry struct {
		index int
		value any
	}
	entries := make([]entry, 0, len(m))
	for k, v := range m {
		i, err := strconv.Atoi(k)
		if err != nil || i < 0 || i > maxHandlerIndex {
			return nil, false
		}
		entries = append(entries, entry{i, v})
	}
	slices.SortFunc(entries, func(a, b entry) int { return cmp.Compare(a.index, b.index) })

	size := 0
	if len(entries) > 0 {
		size = entries[len(entries)-1].index + 1
	}
	list := make([]any, size)
	for _, e := range entries {
		list[e.index] = e.value
	}
	return list, true
}

func splitList(s string) []any {
	var out []any
	for item := range strings.SplitSeq(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
