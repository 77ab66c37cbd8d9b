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
	"errors"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// ErrNoSinks is returned by [Engine.Pop] when no sink is attached.
var ErrNoSinks = errors.New("no sinks attached")

// Sink is a destination for records.
//
// Sinks are consulted in attachment order. A sink that does not bubble
// stops the record from reaching the sinks attached after it, but only
// once it has accepted the record.
type Sink interface {
	// IsHandling reports whether the sink accepts records at level.
	IsHandling(level Level) bool

	// Handle writes the record.
	Handle(ctx context.Context, r Record) error

	// Bubbles reports whether records continue to later sinks after this
	// sink handled them.
	Bubbles() bool
}

// Processor enriches a record before dispatch, typically by adding
// [Record.Extra] fields.
type Processor func(ctx context.Context, r *Record)

// Engine is a named log channel dispatching records to an ordered
// collection of sinks.
//
// The sink collection is published as an immutable snapshot, so log calls
// never observe a partially replaced collection. Configuration changes
// serialize on an internal mutex.
type Engine struct {
	mu           sync.Mutex
	name         atomic.Pointer[string]
	sinks        atomic.Pointer[[]Sink]
	processors   atomic.Pointer[[]Processor]
	microseconds atomic.Bool
	now          func() time.Time
	buffer       *bufferState
}

// Option configures an [Engine].
type Option func(*Engine)

// WithMicroseconds sets the initial timestamp precision.
func WithMicroseconds(enabled bool) Option {
	return func(e *Engine) {
		e.microseconds.Store(enabled)
	}
}

// WithClock replaces the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithProcessors registers processors at construction time.
func WithProcessors(processors ...Processor) Option {
	return func(e *Engine) {
		for _, p := range processors {
			e.PushProcessor(p)
		}
	}
}

// New creates an engine bound to the channel name.
func New(name string, opts ...Option) *Engine {
	e := &Engine{
		now:    time.Now,
		buffer: &bufferState{},
	}
	e.name.Store(&name)
	e.sinks.Store(&[]Sink{})
	e.processors.Store(&[]Processor{})

	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name returns the channel name stamped on every record.
func (e *Engine) Name() string {
	return *e.name.Load()
}

// SetName renames the channel for subsequent records.
func (e *Engine) SetName(name string) {
	e.name.Store(&name)
}

// UseMicroseconds toggles microsecond timestamps. When disabled, record
// times are truncated to whole seconds.
func (e *Engine) UseMicroseconds(enabled bool) {
	e.microseconds.Store(enabled)
}

// Microseconds reports whether microsecond timestamps are enabled.
func (e *Engine) Microseconds() bool {
	return e.microseconds.Load()
}

// Push attaches a sink after the currently attached ones.
func (e *Engine) Push(s Sink) {
	e.mu.Lock()
	defer e.mu.Unlock()

	current := *e.sinks.Load()
	next := make([]Sink, len(current), len(current)+1)
	copy(next, current)
	next = append(next, s)
	e.sinks.Store(&next)
}

// Pop detaches and returns the most recently attached sink.
func (e *Engine) Pop() (Sink, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	current := *e.sinks.Load()
	if len(current) == 0 {
		return nil, ErrNoSinks
	}
	last := current[len(current)-1]
	next := slices.Clone(current[:len(current)-1])
	e.sinks.Store(&next)
	return last, nil
}

// SetSinks replaces the whole sink collection in one step.
func (e *Engine) SetSinks(sinks ...Sink) {
	next := slices.Clone(sinks)
	if next == nil {
		next = []Sink{}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.sinks.Store(&next)
}

// Sinks returns the attached sinks in dispatch order.
func (e *Engine) Sinks() []Sink {
	return slices.Clone(*e.sinks.Load())
}

// PushProcessor registers a processor. Processors run in registration
// order.
func (e *Engine) PushProcessor(p Processor) {
	if p == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	current := *e.processors.Load()
	next := make([]Processor, len(current), len(current)+1)
	copy(next, current)
	next = append(next, p)
	e.processors.Store(&next)
}

// IsHandling reports whether any attached sink accepts records at level.
func (e *Engine) IsHandling(level Level) bool {
	for _, s := range *e.sinks.Load() {
		if s.IsHandling(level) {
			return true
		}
	}
	return false
}

// Log builds a record and dispatches it. The returned error joins the
// errors of every sink that failed to write; a failing sink does not stop
// delivery to the others.
func (e *Engine) Log(ctx context.Context, level Level, msg string, attrs ...slog.Attr) error {
	if !e.IsHandling(level) {
		return nil
	}

	r := Record{
		Time:    e.timestamp(e.now()),
		Channel: e.Name(),
		Level:   level,
		Message: msg,
		Attrs:   attrs,
	}
	return e.emit(ctx, r)
}

// emit runs the processors and either buffers or dispatches the record.
func (e *Engine) emit(ctx context.Context, r Record) error {
	for _, p := range *e.processors.Load() {
		p(ctx, &r)
	}

	if e.buffer.hold(ctx, r) {
		return nil
	}
	return e.dispatch(ctx, r)
}

// dispatch delivers r to the sinks in attachment order, honoring bubble.
func (e *Engine) dispatch(ctx context.Context, r Record) error {
	var errs []error
	for _, s := range *e.sinks.Load() {
		if !s.IsHandling(r.Level) {
			continue
		}
		if err := s.Handle(ctx, r); err != nil {
			errs = append(errs, err)
		}
		if !s.Bubbles() {
			break
		}
	}
	return errors.Join(errs...)
}

func (e *Engine) timestamp(t time.Time) time.Time {
	if e.microseconds.Load() {
		return t.Truncate(time.Microsecond)
	}
	return t.Truncate(time.Second)
}
