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
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"

	"github.com/uniwue-rz/lyra-log/engine"
)

// DefaultTimeLayout renders fractional seconds only when present, so
// records truncated to whole seconds print without a fraction.
const DefaultTimeLayout = "2006-01-02T15:04:05.999999Z07:00"

var lineBuilderPool = sync.Pool{
	New: func() any {
		return &strings.Builder{}
	},
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// Line renders one record per line:
//
//	[2024-03-01T12:30:45+00:00] app.INFO: message {"user":"alice"} {"trace_id":"..."}
//
// The context and extra objects are omitted when empty.
type Line struct {
	timeLayout   string
	withTime     bool
	inlineBreaks bool
}

// LineOption configures a [Line] formatter.
type LineOption func(*Line)

// WithTimeLayout sets the time layout used for the leading timestamp.
func WithTimeLayout(layout string) LineOption {
	return func(l *Line) {
		l.timeLayout = layout
	}
}

// WithoutTime drops the leading timestamp. Syslog supplies its own.
func WithoutTime() LineOption {
	return func(l *Line) {
		l.withTime = false
	}
}

// WithInlineLineBreaks keeps line breaks inside messages instead of
// replacing them with spaces.
func WithInlineLineBreaks() LineOption {
	return func(l *Line) {
		l.inlineBreaks = true
	}
}

// NewLine creates a line formatter.
func NewLine(opts ...LineOption) *Line {
	l := &Line{
		timeLayout: DefaultTimeLayout,
		withTime:   true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Format implements [Formatter].
func (l *Line) Format(r engine.Record) ([]byte, error) {
	b := lineBuilderPool.Get().(*strings.Builder)
	b.Reset()
	defer lineBuilderPool.Put(b)

	if l.withTime {
		b.WriteString("[")
		b.WriteString(r.Time.Format(l.timeLayout))
		b.WriteString("] ")
	}
	b.WriteString(r.Channel)
	b.WriteString(".")
	b.WriteString(r.Level.String())
	b.WriteString(": ")

	msg := r.Message
	if !l.inlineBreaks {
		msg = lineBreaks.Replace(msg)
	}
	b.WriteString(msg)

	for _, attrs := range [][]slog.Attr{r.Attrs, r.Extra} {
		if len(attrs) == 0 {
			continue
		}
		encoded, err := encodeAttrs(attrs)
		if err != nil {
			return nil, err
		}
		b.WriteString(" ")
		b.Write(encoded)
	}

	b.WriteString("\n")
	return []byte(b.String()), nil
}

// encodeAttrs renders attributes as a JSON object. Values encoding/json
// rejects are written as strings.
func encodeAttrs(attrs []slog.Attr) ([]byte, error) {
	m := jsonSafe(attrs)
	data, err := json.Marshal(m)
	if err == nil {
		return data, nil
	}
	data, err = json.Marshal(stringifyUnsupported(m))
	if err != nil {
		return nil, fmt.Errorf("encode context: %w", err)
	}
	return data, nil
}

func stringifyUnsupported(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = stringifyUnsupported(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = stringifyUnsupported(val)
		}
		return out
	case float64:
		return floatValue(x)
	case float32:
		return floatValue(float64(x))
	default:
		if _, err := json.Marshal(x); err != nil {
			return fmt.Sprintf("%+v", x)
		}
		return x
	}
}

func floatValue(f float64) any {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	}
	return f
}

// jsonSafe converts attributes into values encoding/json renders
// meaningfully. Errors become their message.
func jsonSafe(attrs []slog.Attr) map[string]any {
	m := make(map[string]any, len(attrs))
	for _, a := range attrs {
		a.Value = a.Value.Resolve()
		if a.Equal(slog.Attr{}) {
			continue
		}
		switch a.Value.Kind() {
		case slog.KindGroup:
			m[a.Key] = jsonSafe(a.Value.Group())
		case slog.KindDuration:
			m[a.Key] = a.Value.Duration().String()
		case slog.KindAny:
			if err, ok := a.Value.Any().(error); ok {
				m[a.Key] = err.Error()
				continue
			}
			m[a.Key] = a.Value.Any()
		default:
			m[a.Key] = a.Value.Any()
		}
	}
	return m
}
