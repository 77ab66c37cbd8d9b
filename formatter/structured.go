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

package formatter

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/uniwue-rz/lyra-log/engine"
)

// Structured renders records through one of the [log/slog] handlers,
// JSON or text. Level names follow [engine.Level], so NOTICE is printed as
// "NOTICE" rather than "INFO+2".
type Structured struct {
	pool sync.Pool
}

// encoder pairs a buffer with a handler writing into it.
type encoder struct {
	buf     *bytes.Buffer
	handler slog.Handler
}

// NewJSON returns a formatter producing one JSON object per line.
func NewJSON() *Structured {
	return newStructured(func(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
		return slog.NewJSONHandler(w, opts)
	})
}

// NewText returns a formatter producing key=value lines.
func NewText() *Structured {
	return newStructured(func(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
		return slog.NewTextHandler(w, opts)
	})
}

func newStructured(build func(io.Writer, *slog.HandlerOptions) slog.Handler) *Structured {
	opts := &slog.HandlerOptions{ReplaceAttr: replaceLevel}
	s := &Structured{}
	s.pool.New = func() any {
		buf := &bytes.Buffer{}
		return &encoder{buf: buf, handler: build(buf, opts)}
	}
	return s
}

// Format implements [Formatter].
func (s *Structured) Format(r engine.Record) ([]byte, error) {
	enc := s.pool.Get().(*encoder)
	enc.buf.Reset()
	defer s.pool.Put(enc)

	if err := enc.handler.Handle(context.Background(), r.Slog()); err != nil {
		return nil, err
	}
	return bytes.Clone(enc.buf.Bytes()), nil
}

// replaceLevel prints the level under its engine name.
func replaceLevel(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.LevelKey {
		if lvl, ok := a.Value.Any().(slog.Level); ok {
			return slog.String(slog.LevelKey, engine.Level(lvl).String())
		}
	}
	return a
}
