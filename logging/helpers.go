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
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"
)

// logAttrPool provides pooled argument slices for the convenience methods.
var logAttrPool = sync.Pool{
	New: func() any {
		s := make([]any, 0, 16)
		return &s
	},
}

func withPooledArgs(fn func(args []any) []any) {
	argsPtr := logAttrPool.Get().(*[]any)
	args := fn((*argsPtr)[:0])
	clear(args)
	*argsPtr = args[:0]
	logAttrPool.Put(argsPtr)
}

// LogError logs err at ERROR with an "error" field followed by extra.
//
// Example:
//
//	if err := db.Insert(user); err != nil {
//	    logger.LogError(err, "database operation failed",
//	        "operation", "INSERT",
//	        "table", "users",
//	    )
//	    return err
//	}
func (l *Logger) LogError(err error, msg string, extra ...any) {
	if l.closed.Load() || err == nil {
		return
	}
	withPooledArgs(func(args []any) []any {
		args = append(args, "error", err.Error())
		args = append(args, extra...)
		l.log(bgCtx, LevelError, msg, args...)
		return args
	})
}

// LogDuration logs at INFO how long has passed since start.
//
// Automatically includes:
//   - duration_ms: Duration in milliseconds (for easy filtering/alerting)
//   - duration: Human-readable duration string (e.g., "1.5s", "250ms")
func (l *Logger) LogDuration(msg string, start time.Time, extra ...any) {
	if l.closed.Load() {
		return
	}
	duration := time.Since(start)
	withPooledArgs(func(args []any) []any {
		args = append(args,
			"duration_ms", duration.Milliseconds(),
			"duration", duration.String(),
		)
		args = append(args, extra...)
		l.log(bgCtx, LevelInfo, msg, args...)
		return args
	})
}

// ErrorWithStack logs err at ERROR, optionally with the caller's stack.
//
// When to use stack traces:
//
//	✓ Critical errors that require debugging
//	✓ Unexpected error conditions (panics, invariant violations)
//	✗ Expected errors (validation failures, not found)
func (l *Logger) ErrorWithStack(msg string, err error, includeStack bool, extra ...any) {
	if l.closed.Load() || err == nil {
		return
	}
	var stack string
	if includeStack {
		stack = captureStack(3)
	}
	withPooledArgs(func(args []any) []any {
		args = append(args, "error", err.Error())
		if includeStack {
			args = append(args, "stack", stack)
		}
		args = append(args, extra...)
		l.log(bgCtx, LevelError, msg, args...)
		return args
	})
}

// captureStack captures a stack trace.
//
// Skip parameter: Number of stack frames to skip.
//   - 0: includes runtime.Callers itself
//   - 3: skips runtime.Callers, captureStack and ErrorWithStack
func captureStack(skip int) string {
	var buf strings.Builder
	pcs := make([]uintptr, 10)
	n := runtime.Callers(skip, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	for {
		frame, more := frames.Next()
		fmt.Fprintf(&buf, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}
	return buf.String()
}
