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
	"context"
	"log/slog"
	"slices"
)

// slogHandler adapts an [Engine] to [slog.Handler].
type slogHandler struct {
	engine *Engine
	attrs  []slog.Attr
	groups []string
}

// SlogHandler returns a [slog.Handler] that feeds records into e.
// Attributes added under a group are nested as [slog.Group] values.
func (e *Engine) SlogHandler() slog.Handler {
	return &slogHandler{engine: e}
}

// Enabled reports whether any sink of the engine accepts level.
func (h *slogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.engine.IsHandling(Level(level))
}

// Handle converts r and dispatches it through the engine.
func (h *slogHandler) Handle(ctx context.Context, r slog.Record) error {
	attrs := make([]slog.Attr, 0, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})

	// Attributes bound before the innermost group stay outside it.
	all := append(slices.Clone(h.attrs), nest(h.groups, attrs)...)

	t := r.Time
	if t.IsZero() {
		t = h.engine.now()
	}
	rec := Record{
		Time:    h.engine.timestamp(t),
		Channel: h.engine.Name(),
		Level:   Level(r.Level),
		Message: r.Message,
		Attrs:   all,
	}
	return h.engine.emit(ctx, rec)
}

// WithAttrs returns a handler that adds attrs to every record.
func (h *slogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	return &slogHandler{
		engine: h.engine,
		attrs:  append(slices.Clone(h.attrs), nest(h.groups, attrs)...),
		groups: h.groups,
	}
}

// WithGroup returns a handler that nests subsequent attributes under name.
func (h *slogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &slogHandler{
		engine: h.engine,
		attrs:  h.attrs,
		groups: append(slices.Clone(h.groups), name),
	}
}

// nest wraps attrs in the given groups, outermost first.
func nest(groups []string, attrs []slog.Attr) []slog.Attr {
	if len(groups) == 0 || len(attrs) == 0 {
		return attrs
	}
	args := make([]any, len(attrs))
	for i, a := range attrs {
		args[i] = a
	}
	g := slog.Group(groups[len(groups)-1], args...)
	for i := len(groups) - 2; i >= 0; i-- {
		g = slog.Group(groups[i], g)
	}
	return []slog.Attr{g}
}
