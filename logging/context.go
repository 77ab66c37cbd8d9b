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

	"go.opentelemetry.io/otel/trace"

	"github.com/uniwue-rz/lyra-log/engine"
)

// Semantic convention field names for trace correlation.
const (
	fieldTraceID = "trace_id"
	fieldSpanID  = "span_id"
)

// ContextLogger logs through a [Logger] with a fixed context.
//
// When the context carries an active OpenTelemetry span, every record
// gets trace_id and span_id extra fields, which correlates log lines with
// traces without passing IDs by hand.
//
// Each instance is typically created per request and used by a single
// goroutine.
type ContextLogger struct {
	logger  *Logger
	ctx     context.Context
	traceID string
	spanID  string
}

// NewContextLogger creates a context-aware logger.
func NewContextLogger(ctx context.Context, logger *Logger) *ContextLogger {
	if ctx == nil {
		ctx = bgCtx
	}
	cl := &ContextLogger{logger: logger, ctx: ctx}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		cl.traceID = sc.TraceID().String()
		cl.spanID = sc.SpanID().String()
	}
	return cl
}

// WithContext returns a logger that passes ctx with every record.
func (l *Logger) WithContext(ctx context.Context) *ContextLogger {
	return NewContextLogger(ctx, l)
}

// Logger returns the wrapped [Logger].
func (cl *ContextLogger) Logger() *Logger {
	return cl.logger
}

// Context returns the context passed with every record.
func (cl *ContextLogger) Context() context.Context {
	return cl.ctx
}

// TraceID returns the trace ID if available.
func (cl *ContextLogger) TraceID() string {
	return cl.traceID
}

// SpanID returns the span ID if available.
func (cl *ContextLogger) SpanID() string {
	return cl.spanID
}

// Log logs msg at level with the context.
func (cl *ContextLogger) Log(level Level, msg string, args ...any) {
	cl.logger.log(cl.ctx, level, msg, args...)
}

// Debug logs a debug message with context.
func (cl *ContextLogger) Debug(msg string, args ...any) {
	cl.logger.log(cl.ctx, LevelDebug, msg, args...)
}

// Info logs an info message with context.
func (cl *ContextLogger) Info(msg string, args ...any) {
	cl.logger.log(cl.ctx, LevelInfo, msg, args...)
}

// Notice logs a notice with context.
func (cl *ContextLogger) Notice(msg string, args ...any) {
	cl.logger.log(cl.ctx, LevelNotice, msg, args...)
}

// Warning logs a warning with context.
func (cl *ContextLogger) Warning(msg string, args ...any) {
	cl.logger.log(cl.ctx, LevelWarning, msg, args...)
}

// Error logs an error message with context.
func (cl *ContextLogger) Error(msg string, args ...any) {
	cl.logger.log(cl.ctx, LevelError, msg, args...)
}

// Critical logs a critical message with context.
func (cl *ContextLogger) Critical(msg string, args ...any) {
	cl.logger.log(cl.ctx, LevelCritical, msg, args...)
}

// Alert logs an alert with context.
func (cl *ContextLogger) Alert(msg string, args ...any) {
	cl.logger.log(cl.ctx, LevelAlert, msg, args...)
}

// Emergency logs an emergency with context.
func (cl *ContextLogger) Emergency(msg string, args ...any) {
	cl.logger.log(cl.ctx, LevelEmergency, msg, args...)
}

// TraceProcessor adds trace_id and span_id extra fields when ctx carries a
// valid span context. Every [Logger] installs it.
func TraceProcessor(ctx context.Context, r *engine.Record) {
	if ctx == nil {
		return
	}
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return
	}
	r.AddExtra(
		slog.String(fieldTraceID, sc.TraceID().String()),
		slog.String(fieldSpanID, sc.SpanID().String()),
	)
}
