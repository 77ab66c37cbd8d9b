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
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/uniwue-rz/lyra-log/engine"
	"github.com/uniwue-rz/lyra-log/handler"
)

// Level is the severity of a record. See [engine.Level].
type Level = engine.Level

// The eight severities, re-exported for convenience.
const (
	LevelDebug     = engine.LevelDebug
	LevelInfo      = engine.LevelInfo
	LevelNotice    = engine.LevelNotice
	LevelWarning   = engine.LevelWarning
	LevelError     = engine.LevelError
	LevelCritical  = engine.LevelCritical
	LevelAlert     = engine.LevelAlert
	LevelEmergency = engine.LevelEmergency
)

// Package-level cached context reused across log calls that carry no
// request context.
var bgCtx = context.Background()

// Logger is a named log channel with an ordered list of handlers.
//
// Thread-safety: All public methods are safe for concurrent use.
// The engine pointer is accessed atomically, while mu protects the handler
// list and reconfiguration operations.
type Logger struct {
	mu       sync.Mutex
	name     string
	handlers []*handler.Handler
	engine   atomic.Pointer[engine.Engine]
	closed   atomic.Bool

	// Construction settings, read in New only.
	pending      []*handler.Handler
	microseconds bool
	processors   []engine.Processor
	redact       []string
	redacting    bool
	clock        func() time.Time
	errorHandler func(error)
}

// New creates a logger bound to name.
//
// Each handler passed with [WithHandlers] is registered with the engine in
// order. Trace correlation is always active: records logged with a context
// carrying an OpenTelemetry span get trace_id and span_id extra fields.
func New(name string, opts ...Option) (*Logger, error) {
	l := &Logger{
		name:         name,
		errorHandler: func(error) {},
	}
	for _, opt := range opts {
		opt(l)
	}

	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	engineOpts := []engine.Option{
		engine.WithMicroseconds(l.microseconds),
		engine.WithProcessors(TraceProcessor),
	}
	if l.redacting {
		engineOpts = append(engineOpts, engine.WithProcessors(RedactionProcessor(l.redact...)))
	}
	engineOpts = append(engineOpts, engine.WithProcessors(l.processors...))
	if l.clock != nil {
		engineOpts = append(engineOpts, engine.WithClock(l.clock))
	}

	e := engine.New(name, engineOpts...)
	l.engine.Store(e)

	l.handlers = slices.Clone(l.pending)
	for _, h := range l.handlers {
		e.Push(h)
	}
	l.pending = nil
	return l, nil
}

// MustNew creates a new Logger or panics on error.
func MustNew(name string, opts ...Option) *Logger {
	l, err := New(name, opts...)
	if err != nil {
		panic("logging initialization failed: " + err.Error())
	}
	return l
}

// Validate checks if the configuration is valid.
func (l *Logger) Validate() error {
	if l.name == "" {
		return ErrEmptyName
	}
	for i, h := range l.pending {
		if h == nil {
			return fmt.Errorf("%w: handler %d", ErrNilHandler, i)
		}
	}
	return nil
}

// Name returns the channel name.
func (l *Logger) Name() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.name
}

// SetName renames the logger and the engine channel. Records logged
// afterwards carry the new name.
func (l *Logger) SetName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.name = name
	l.Engine().SetName(name)
	return nil
}

// Engine returns the underlying engine.
func (l *Logger) Engine() *engine.Engine {
	return l.engine.Load()
}

// SetEngine replaces the underlying engine. The new engine keeps its own
// name, sinks and processors; handlers added later are pushed onto it.
func (l *Logger) SetEngine(e *engine.Engine) error {
	if e == nil {
		return ErrNilEngine
	}
	l.engine.Store(e)
	return nil
}

// Handlers returns the handlers in dispatch order.
func (l *Logger) Handlers() []*handler.Handler {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.handlers)
}

// AddHandler appends h and registers it with the engine.
func (l *Logger) AddHandler(h *handler.Handler) error {
	if h == nil {
		return ErrNilHandler
	}
	if l.closed.Load() {
		return ErrLoggerClosed
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.handlers = append(l.handlers, h)
	l.Engine().Push(h)
	return nil
}

// AddHandlers appends each handler in order. Nothing is added when any of
// them is nil.
func (l *Logger) AddHandlers(hs ...*handler.Handler) error {
	if err := checkHandlers(hs); err != nil {
		return err
	}
	for _, h := range hs {
		if err := l.AddHandler(h); err != nil {
			return err
		}
	}
	return nil
}

// SetHandlers replaces all handlers in one step. Concurrent log calls see
// either the old or the new set, never a mix. Replaced handlers are not
// closed, since they may be shared with other loggers.
func (l *Logger) SetHandlers(hs ...*handler.Handler) error {
	if err := checkHandlers(hs); err != nil {
		return err
	}
	if l.closed.Load() {
		return ErrLoggerClosed
	}

	sinks := make([]engine.Sink, len(hs))
	for i, h := range hs {
		sinks[i] = h
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.handlers = slices.Clone(hs)
	l.Engine().SetSinks(sinks...)
	return nil
}

func checkHandlers(hs []*handler.Handler) error {
	for i, h := range hs {
		if h == nil {
			return fmt.Errorf("%w: handler %d", ErrNilHandler, i)
		}
	}
	return nil
}

// Slog returns a [slog.Logger] writing through this logger's engine, for
// code written against log/slog.
func (l *Logger) Slog() *slog.Logger {
	return slog.New(l.Engine().SlogHandler())
}

// log is the internal helper every level method goes through.
//
// Sink failures do not reach the caller; they are passed to the error
// handler configured with [WithErrorHandler].
func (l *Logger) log(ctx context.Context, level Level, msg string, args ...any) {
	if l.closed.Load() {
		return
	}
	e := l.Engine()
	if !e.IsHandling(level) {
		return
	}
	if err := e.Log(ctx, level, msg, engine.Attrs(args...)...); err != nil {
		l.errorHandler(err)
	}
}

// Log logs msg at level. args are key/value pairs, [slog.Attr] values or
// map[string]any context maps.
func (l *Logger) Log(level Level, msg string, args ...any) {
	l.log(bgCtx, level, msg, args...)
}

// Debug logs at DEBUG.
func (l *Logger) Debug(msg string, args ...any) {
	l.log(bgCtx, LevelDebug, msg, args...)
}

// Info logs at INFO.
func (l *Logger) Info(msg string, args ...any) {
	l.log(bgCtx, LevelInfo, msg, args...)
}

// Notice logs at NOTICE.
func (l *Logger) Notice(msg string, args ...any) {
	l.log(bgCtx, LevelNotice, msg, args...)
}

// Warning logs at WARNING.
func (l *Logger) Warning(msg string, args ...any) {
	l.log(bgCtx, LevelWarning, msg, args...)
}

// Error logs at ERROR.
func (l *Logger) Error(msg string, args ...any) {
	l.log(bgCtx, LevelError, msg, args...)
}

// Critical logs at CRITICAL.
func (l *Logger) Critical(msg string, args ...any) {
	l.log(bgCtx, LevelCritical, msg, args...)
}

// Alert logs at ALERT.
func (l *Logger) Alert(msg string, args ...any) {
	l.log(bgCtx, LevelAlert, msg, args...)
}

// Emergency logs at EMERGENCY.
func (l *Logger) Emergency(msg string, args ...any) {
	l.log(bgCtx, LevelEmergency, msg, args...)
}

// Close flushes buffered records and closes every handler. Later log calls
// are dropped. Calling Close again is a no-op.
func (l *Logger) Close() error {
	if l.closed.Swap(true) {
		return nil
	}

	var errs []error
	if err := l.Engine().FlushBuffer(); err != nil {
		errs = append(errs, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for _, h := range l.handlers {
		if err := h.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", h, err))
		}
	}
	return errors.Join(errs...)
}

// IsClosed reports whether Close was called.
func (l *Logger) IsClosed() bool {
	return l.closed.Load()
}

// DebugInfo returns diagnostic information about the logger.
func (l *Logger) DebugInfo() map[string]any {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := l.Engine()
	handlers := make([]string, len(l.handlers))
	for i, h := range l.handlers {
		handlers[i] = h.String()
	}

	return map[string]any{
		"name":         l.name,
		"channel":      e.Name(),
		"handlers":     handlers,
		"sinks":        len(e.Sinks()),
		"microseconds": e.Microseconds(),
		"is_buffering": e.IsBuffering(),
		"is_closed":    l.closed.Load(),
	}
}
