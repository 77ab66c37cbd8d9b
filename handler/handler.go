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

package handler

import (
	"context"
	"fmt"
	"sync"

	"github.com/uniwue-rz/lyra-log/engine"
	"github.com/uniwue-rz/lyra-log/formatter"
)

// Sink is the destination a [Handler] writes formatted records to.
type Sink interface {
	// Write delivers one formatted record.
	Write(ctx context.Context, r engine.Record, formatted []byte) error

	// DefaultFormatter is used when the handler has no formatter attached.
	DefaultFormatter() formatter.Formatter

	Close() error
}

// Handler binds a kind, a minimum level, its options, a sink and an
// optional formatter. It implements [engine.Sink] and is safe for
// concurrent use.
type Handler struct {
	mu        sync.RWMutex
	kind      Kind
	level     engine.Level
	options   Options
	sink      Sink
	formatter formatter.Formatter
}

var _ engine.Sink = (*Handler)(nil)

// New validates a handler description given as text and builds it.
//
// An empty level means DEBUG and nil options mean the kind's defaults.
// Validation runs in this order: kind name, option keys, level name,
// option values, sink construction. A nil formatter leaves the sink's
// default formatter in place.
//
// Example:
//
//	h, err := handler.New("Stream", "WARNING", map[string]any{
//	    "stream":     "/var/log/app.log",
//	    "useLocking": true,
//	}, nil)
func New(kind, level string, options map[string]any, f formatter.Formatter) (*Handler, error) {
	k, err := ParseKind(kind)
	if err != nil {
		return nil, err
	}
	if unknown := unknownKeys(k, options); len(unknown) > 0 {
		return nil, &HandlerOptionNotExistsError{Kind: k, Keys: unknown}
	}
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	opts, err := decodeOptions(k, options)
	if err != nil {
		return nil, err
	}
	return build(k, lvl, opts, f)
}

// Build constructs a handler from typed options. opts must be the option
// type of kind; nil means [Defaults].
func Build(kind Kind, level engine.Level, opts Options, f formatter.Formatter) (*Handler, error) {
	if !kind.Valid() {
		return nil, &HandlerNotSupportedError{Kind: kind.String()}
	}
	if opts == nil {
		opts = Defaults(kind)
	}
	opts, err := normalize(kind, opts)
	if err != nil {
		return nil, err
	}
	if err := validateOptions(kind, opts); err != nil {
		return nil, err
	}
	return build(kind, level, opts, f)
}

// normalize dereferences option pointers and rejects option types that do
// not belong to kind. A nil pointer stands for [Defaults].
func normalize(kind Kind, opts Options) (Options, error) {
	switch o := opts.(type) {
	case *StreamOptions:
		opts = derefOr(kind, o)
	case *SyslogOptions:
		opts = derefOr(kind, o)
	case *ErrorLogOptions:
		opts = derefOr(kind, o)
	}

	var ok bool
	switch kind {
	case KindStream, KindStdErr, KindStdOut:
		_, ok = opts.(StreamOptions)
	case KindSyslog:
		_, ok = opts.(SyslogOptions)
	case KindErrorLog:
		_, ok = opts.(ErrorLogOptions)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s does not take %T", ErrInvalidOption, kind, opts)
	}
	return opts, nil
}

func derefOr[T Options](kind Kind, p *T) Options {
	if p == nil {
		return Defaults(kind)
	}
	return *p
}

func build(kind Kind, level engine.Level, opts Options, f formatter.Formatter) (*Handler, error) {
	var (
		sink Sink
		err  error
	)
	switch o := opts.(type) {
	case StreamOptions:
		sink, err = NewStreamSink(o)
	case SyslogOptions:
		sink, err = NewSyslogSink(o)
	case ErrorLogOptions:
		sink = NewErrorLogSink(o)
	}
	if err != nil {
		return nil, fmt.Errorf("%s handler: %w", kind, err)
	}

	return &Handler{
		kind:      kind,
		level:     level,
		options:   opts,
		sink:      sink,
		formatter: f,
	}, nil
}

// NewStream builds a Stream handler.
func NewStream(level engine.Level, opts StreamOptions, f formatter.Formatter) (*Handler, error) {
	return Build(KindStream, level, opts, f)
}

// NewStdErr builds a handler writing to standard error.
func NewStdErr(level engine.Level, f formatter.Formatter) (*Handler, error) {
	return Build(KindStdErr, level, nil, f)
}

// NewStdOut builds a handler writing to standard output.
func NewStdOut(level engine.Level, f formatter.Formatter) (*Handler, error) {
	return Build(KindStdOut, level, nil, f)
}

// NewSyslog builds a Syslog handler.
func NewSyslog(level engine.Level, opts SyslogOptions, f formatter.Formatter) (*Handler, error) {
	return Build(KindSyslog, level, opts, f)
}

// NewErrorLog builds an ErrorLog handler.
func NewErrorLog(level engine.Level, opts ErrorLogOptions, f formatter.Formatter) (*Handler, error) {
	return Build(KindErrorLog, level, opts, f)
}

// IsHandling implements [engine.Sink].
func (h *Handler) IsHandling(level engine.Level) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return level >= h.level
}

// Bubbles implements [engine.Sink].
func (h *Handler) Bubbles() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.options == nil || h.options.Bubbles()
}

// Handle formats r and writes it to the sink.
func (h *Handler) Handle(ctx context.Context, r engine.Record) error {
	h.mu.RLock()
	sink, f := h.sink, h.formatter
	h.mu.RUnlock()

	if sink == nil {
		return nil
	}
	if f == nil {
		f = sink.DefaultFormatter()
	}
	formatted, err := f.Format(r)
	if err != nil {
		return fmt.Errorf("format record: %w", err)
	}
	return sink.Write(ctx, r, formatted)
}

// Kind returns the handler kind.
func (h *Handler) Kind() Kind {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.kind
}

// SetKind renames the kind. The sink is not rebuilt.
func (h *Handler) SetKind(kind Kind) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.kind = kind
}

// Level returns the minimum level the handler accepts.
func (h *Handler) Level() engine.Level {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.level
}

// SetLevel changes the minimum level.
func (h *Handler) SetLevel(level engine.Level) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.level = level
}

// Options returns the merged options the handler was built with.
func (h *Handler) Options() Options {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.options
}

// SetOptions replaces the stored options without validating them or
// rebuilding the sink. Only the bubble flag takes effect immediately.
func (h *Handler) SetOptions(opts Options) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.options = opts
}

// Sink returns the underlying sink.
func (h *Handler) Sink() Sink {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.sink
}

// SetSink replaces the underlying sink. The previous sink is not closed.
func (h *Handler) SetSink(s Sink) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sink = s
}

// Formatter returns the attached formatter, or nil when the sink default
// is in use.
func (h *Handler) Formatter() formatter.Formatter {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.formatter
}

// SetFormatter attaches f. Nil restores the sink default.
func (h *Handler) SetFormatter(f formatter.Formatter) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.formatter = f
}

// Close releases the sink.
func (h *Handler) Close() error {
	h.mu.RLock()
	sink := h.sink
	h.mu.RUnlock()
	if sink == nil {
		return nil
	}
	return sink.Close()
}

// String implements [fmt.Stringer].
func (h *Handler) String() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return fmt.Sprintf("%s(%s)", h.kind, h.level)
}
