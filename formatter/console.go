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
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/uniwue-rz/lyra-log/engine"
)

// ANSI color codes
const (
	colorReset   = "\033[0m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
	colorGray    = "\033[37m"
	colorWhite   = "\033[97m"
	colorBold    = "\033[1m"
	colorDim     = "\033[2m"
)

// consoleBuilderPool provides reusable [strings.Builder] instances
// for formatting console log entries.
var consoleBuilderPool = sync.Pool{
	New: func() any {
		return &strings.Builder{}
	},
}

// Console renders compact, colored lines for terminals:
//
//	12:30:45.123 INFO      app  request served user=alice status=200
//
// Meant for development; use [NewJSON] when logs are collected by machines.
type Console struct {
	colors bool
}

// NewConsole returns a console formatter with ANSI colors.
func NewConsole() *Console {
	return &Console{colors: true}
}

// NewPlainConsole returns a console formatter without ANSI colors.
func NewPlainConsole() *Console {
	return &Console{}
}

// Format implements [Formatter].
func (c *Console) Format(r engine.Record) ([]byte, error) {
	b := consoleBuilderPool.Get().(*strings.Builder)
	b.Reset()
	defer consoleBuilderPool.Put(b)

	c.paint(b, colorDim, r.Time.Format("15:04:05.000"))
	b.WriteString(" ")

	c.paint(b, c.levelColor(r.Level)+colorBold, fmt.Sprintf("%-9s", r.Level.String()))
	b.WriteString(" ")

	c.paint(b, colorCyan, r.Channel)
	b.WriteString("  ")

	c.paint(b, colorWhite, r.Message)

	for _, a := range r.Attrs {
		c.appendAttr(b, "", a)
	}
	for _, a := range r.Extra {
		c.appendAttr(b, "", a)
	}

	b.WriteString("\n")
	return []byte(b.String()), nil
}

func (c *Console) paint(b *strings.Builder, color, s string) {
	if !c.colors {
		b.WriteString(s)
		return
	}
	b.WriteString(color)
	b.WriteString(s)
	b.WriteString(colorReset)
}

// levelColor returns the ANSI color code for a log level.
func (c *Console) levelColor(level engine.Level) string {
	switch {
	case level >= engine.LevelCritical:
		return colorMagenta
	case level >= engine.LevelError:
		return colorRed
	case level >= engine.LevelWarning:
		return colorYellow
	case level >= engine.LevelInfo:
		return colorGreen
	default:
		return colorBlue
	}
}

// appendAttr writes " key=value". Group members are written with
// dotted keys.
//
// fmt.Sprint is used as a catch-all for types without specialized formatting.
func (c *Console) appendAttr(b *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	key := a.Key
	if prefix != "" {
		key = prefix + "." + key
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, member := range a.Value.Group() {
			c.appendAttr(b, key, member)
		}
		return
	}

	b.WriteString(" ")
	c.paint(b, colorGray, key+"=")

	switch v := a.Value.Any().(type) {
	case string:
		b.WriteString(v)
	case int64:
		b.WriteString(strconv.FormatInt(v, 10))
	case uint64:
		b.WriteString(strconv.FormatUint(v, 10))
	case bool:
		b.WriteString(strconv.FormatBool(v))
	case time.Duration:
		b.WriteString(v.String())
	case time.Time:
		b.WriteString(v.Format(time.RFC3339))
	case float64:
		b.WriteString(strconv.FormatFloat(v, 'f', 2, 64))
	case error:
		b.WriteString(v.Error())
	default:
		// Only use fmt.Sprint as last resort
		b.WriteString(fmt.Sprint(v))
	}
}
