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

package engine

import (
	"log/slog"
	"maps"
	"slices"
	"time"
)

// badKey is the key used for arguments that are not preceded by a key.
// It matches the key [log/slog] uses for the same situation.
const badKey = "!BADKEY"

// Record is a single log event as it travels from the engine to the sinks.
type Record struct {
	Time    time.Time
	Channel string
	Level   Level
	Message string

	// Attrs is the caller-supplied context, in call order.
	Attrs []slog.Attr

	// Extra holds attributes added by processors.
	Extra []slog.Attr
}

// Context returns the caller context as a map. Group attributes become
// nested maps.
func (r Record) Context() map[string]any {
	return attrsToMap(r.Attrs)
}

// ExtraFields returns the processor-added fields as a map.
func (r Record) ExtraFields() map[string]any {
	return attrsToMap(r.Extra)
}

// Clone returns a copy of r that shares no attribute storage with it.
func (r Record) Clone() Record {
	r.Attrs = slices.Clone(r.Attrs)
	r.Extra = slices.Clone(r.Extra)
	return r
}

// AddExtra appends processor fields to the record.
func (r *Record) AddExtra(attrs ...slog.Attr) {
	r.Extra = append(r.Extra, attrs...)
}

// Slog converts r to a [slog.Record]. The channel is added as the
// "channel" attribute, followed by the context and the extra fields.
func (r Record) Slog() slog.Record {
	sr := slog.NewRecord(r.Time, r.Level.Slog(), r.Message, 0)
	sr.AddAttrs(slog.String("channel", r.Channel))
	sr.AddAttrs(r.Attrs...)
	if len(r.Extra) > 0 {
		sr.AddAttrs(slog.Attr{Key: "extra", Value: slog.GroupValue(r.Extra...)})
	}
	return sr
}

func attrsToMap(attrs []slog.Attr) map[string]any {
	m := make(map[string]any, len(attrs))
	for _, a := range attrs {
		a.Value = a.Value.Resolve()
		if a.Equal(slog.Attr{}) {
			continue
		}
		if a.Value.Kind() == slog.KindGroup {
			group := attrsToMap(a.Value.Group())
			if a.Key == "" {
				maps.Copy(m, group)
				continue
			}
			m[a.Key] = group
			continue
		}
		m[a.Key] = a.Value.Any()
	}
	return m
}

// Attrs converts loosely typed logging arguments into attributes.
//
// Accepted forms, freely mixed:
//   - a [slog.Attr]
//   - a map[string]any context, expanded in sorted key order
//   - a string key followed by its value
//
// A trailing key without a value, or a value without a key, is kept under
// the key "!BADKEY" the same way [log/slog] does.
func Attrs(args ...any) []slog.Attr {
	if len(args) == 0 {
		return nil
	}
	attrs := make([]slog.Attr, 0, len(args))
	for len(args) > 0 {
		switch x := args[0].(type) {
		case slog.Attr:
			attrs = append(attrs, x)
			args = args[1:]
		case map[string]any:
			for _, k := range slices.Sorted(maps.Keys(x)) {
				attrs = append(attrs, slog.Any(k, x[k]))
			}
			args = args[1:]
		case string:
			if len(args) == 1 {
				attrs = append(attrs, slog.String(badKey, x))
				args = args[1:]
				continue
			}
			attrs = append(attrs, slog.Any(x, args[1]))
			args = args[2:]
		default:
			attrs = append(attrs, slog.Any(badKey, x))
			args = args[1:]
		}
	}
	return attrs
}
