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

//go:build !integration

package handler

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniwue-rz/lyra-log/engine"
	"github.com/uniwue-rz/lyra-log/formatter"
)

func testRecord(level engine.Level, msg string) engine.Record {
	return engine.Record{
		Time:    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Channel: "test",
		Level:   level,
		Message: msg,
	}
}

// TestNew_DefaultsPerKind changes the working directory, so it does not
// run in parallel.
func TestNew_DefaultsPerKind(t *testing.T) {
	t.Chdir(t.TempDir())

	for _, kind := range Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			h, err := New(kind.String(), "DEBUG", nil, nil)
			require.NoError(t, err)
			t.Cleanup(func() { _ = h.Close() })

			assert.Equal(t, kind, h.Kind())
			assert.Equal(t, engine.LevelDebug, h.Level())
			assert.Equal(t, DefaultOptions(kind), h.Options().Map())
			assert.Nil(t, h.Formatter())
		})
	}

	_, err := os.Stat(DefaultStreamPath)
	assert.NoError(t, err, "Stream default file is created in the working directory")
}

func TestNew_UnknownOptionKey(t *testing.T) {
	t.Parallel()

	for _, kind := range Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			t.Parallel()

			h, err := New(kind.String(), "DEBUG", map[string]any{"bubble": true, "unknown": 1, "another": 2}, nil)
			require.Error(t, err)
			assert.Nil(t, h)

			var optErr *HandlerOptionNotExistsError
			require.ErrorAs(t, err, &optErr)
			assert.Equal(t, kind, optErr.Kind)
			assert.Equal(t, []string{"another", "unknown"}, optErr.Keys)
			assert.ErrorIs(t, err, ErrOptionNotExists)
		})
	}
}

func TestNew_StreamWithMisspelledKey(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "app.log")
	_, err := New("Stream", "DEBUG", map[string]any{"streama": path}, nil)

	var optErr *HandlerOptionNotExistsError
	require.ErrorAs(t, err, &optErr)
	assert.Equal(t, []string{"streama"}, optErr.Keys)
	assert.Contains(t, err.Error(), "streama")
	assert.NoFileExists(t, path)
}

func TestNew_OptionKeysAreCaseSensitive(t *testing.T) {
	t.Parallel()

	_, err := New("Stream", "DEBUG", map[string]any{"UseLocking": true}, nil)
	assert.ErrorIs(t, err, ErrOptionNotExists)
}

func TestNew_UnknownLevel(t *testing.T) {
	t.Parallel()

	tests := []string{"INFFO", "info", "Warning", "WARN", "TRACE"}
	for _, level := range tests {
		t.Run(level, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "app.log")
			_, err := New("Stream", level, map[string]any{"stream": path}, nil)

			var levelErr *LogLevelNotExistsError
			require.ErrorAs(t, err, &levelErr)
			assert.Equal(t, level, levelErr.Level)
			assert.ErrorIs(t, err, ErrLevelNotExists)
			assert.NoFileExists(t, path)
		})
	}
}

func TestNew_UnknownKind(t *testing.T) {
	t.Parallel()

	tests := []string{"stdEEE", "stream", "STDERR", "Stdout", "File", ""}
	for _, kind := range tests {
		t.Run(kind, func(t *testing.T) {
			t.Parallel()

			_, err := New(kind, "DEBUG", nil, nil)

			var kindErr *HandlerNotSupportedError
			require.ErrorAs(t, err, &kindErr)
			assert.Equal(t, kind, kindErr.Kind)
			assert.ErrorIs(t, err, ErrHandlerNotSupported)
		})
	}
}

func TestNew_CheckOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		kind    string
		level   string
		options map[string]any
		want    error
	}{
		{
			name:    "kind before keys",
			kind:    "Nope",
			level:   "NOPE",
			options: map[string]any{"nope": true},
			want:    ErrHandlerNotSupported,
		},
		{
			name:    "keys before level",
			kind:    "StdErr",
			level:   "NOPE",
			options: map[string]any{"nope": true},
			want:    ErrOptionNotExists,
		},
		{
			name:    "level before values",
			kind:    "ErrorLog",
			level:   "NOPE",
			options: map[string]any{"messageType": 3},
			want:    ErrLevelNotExists,
		},
		{
			name:    "values last",
			kind:    "ErrorLog",
			level:   "INFO",
			options: map[string]any{"messageType": 3},
			want:    ErrInvalidOption,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, err := New(tt.kind, tt.level, tt.options, nil)
			assert.Nil(t, h)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNew_EmptyLevelMeansDebug(t *testing.T) {
	t.Parallel()

	h, err := New("StdErr", "", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, engine.LevelDebug, h.Level())
}

func TestNew_InvalidValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		kind    string
		options map[string]any
	}{
		{"stream of wrong type", "Stream", map[string]any{"stream": 42}},
		{"empty stream path", "Stream", map[string]any{"stream": ""}},
		{"nil stream", "StdOut", map[string]any{"stream": nil}},
		{"bad permission", "Stream", map[string]any{"filePermission": "rwx"}},
		{"bubble not a bool", "StdErr", map[string]any{"bubble": "maybe"}},
		{"message type out of range", "ErrorLog", map[string]any{"messageType": 3}},
		{"unknown facility", "Syslog", map[string]any{"facility": "LOG_NOPE"}},
		{"unknown logopt", "Syslog", map[string]any{"logopts": "LOG_PID|LOG_NOPE"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, err := New(tt.kind, "DEBUG", tt.options, nil)
			assert.Nil(t, h)
			assert.ErrorIs(t, err, ErrInvalidOption)
		})
	}
}

func TestNew_MergesOverDefaults(t *testing.T) {
	t.Parallel()

	h, err := New("Syslog", "NOTICE", map[string]any{
		"ident":    "billing",
		"facility": "local0",
		"logopts":  []any{"LOG_PID", "LOG_CONS"},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, engine.LevelNotice, h.Level())
	assert.Equal(t, SyslogOptions{
		Ident:    "billing",
		Facility: FacilityLocal0,
		Bubble:   true,
		LogOpts:  LogPID | LogCons,
	}, h.Options())
}

func TestNew_WeaklyTypedValues(t *testing.T) {
	t.Parallel()

	h, err := New("ErrorLog", "ERROR", map[string]any{
		"messageType":    "4",
		"bubble":         "true",
		"expandNewLines": 0,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, ErrorLogOptions{MessageType: MessageTypeSAPI, Bubble: true}, h.Options())
}

func TestNew_StreamRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "dir", "app.log")
	h, err := New("Stream", "INFO", map[string]any{"stream": path, "useLocking": true}, nil)
	require.NoError(t, err)

	require.NoError(t, h.Handle(context.Background(), testRecord(engine.LevelInfo, "TEST")))
	require.NoError(t, h.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[2024-03-01T12:00:00Z] test.INFO: TEST\n", string(data))
}

func TestNew_AttachesFormatter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f := formatter.NewLine(formatter.WithoutTime())
	h, err := New("Stream", "DEBUG", map[string]any{"stream": &buf}, f)
	require.NoError(t, err)
	assert.Same(t, f, h.Formatter())

	require.NoError(t, h.Handle(context.Background(), testRecord(engine.LevelWarning, "careful")))
	assert.Equal(t, "test.WARNING: careful\n", buf.String())
}

func TestBuild_TypedPath(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h, err := NewStream(engine.LevelWarning, StreamOptions{Stream: &buf, Bubble: false}, nil)
	require.NoError(t, err)
	assert.Equal(t, KindStream, h.Kind())
	assert.False(t, h.Bubbles())
	assert.False(t, h.IsHandling(engine.LevelNotice))
	assert.True(t, h.IsHandling(engine.LevelWarning))
	assert.True(t, h.IsHandling(engine.LevelEmergency))

	h, err = Build(KindErrorLog, engine.LevelInfo, &ErrorLogOptions{MessageType: MessageTypeSAPI}, nil)
	require.NoError(t, err)
	assert.Equal(t, ErrorLogOptions{MessageType: MessageTypeSAPI}, h.Options())

	h, err = NewStdOut(engine.LevelInfo, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultOptions(KindStdOut), h.Options().Map())
}

func TestBuild_NilOptionPointerMeansDefaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind Kind
		opts Options
	}{
		{KindStdErr, (*StreamOptions)(nil)},
		{KindSyslog, (*SyslogOptions)(nil)},
		{KindErrorLog, (*ErrorLogOptions)(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			t.Parallel()

			h, err := Build(tt.kind, engine.LevelInfo, tt.opts, nil)
			require.NoError(t, err)
			t.Cleanup(func() { _ = h.Close() })
			assert.Equal(t, Defaults(tt.kind), h.Options())
		})
	}
}

func TestBuild_Rejects(t *testing.T) {
	t.Parallel()

	_, err := Build(KindSyslog, engine.LevelInfo, StreamOptions{Stream: os.Stderr}, nil)
	assert.ErrorIs(t, err, ErrInvalidOption)

	_, err = Build(Kind(99), engine.LevelInfo, nil, nil)
	assert.ErrorIs(t, err, ErrHandlerNotSupported)

	_, err = NewErrorLog(engine.LevelInfo, ErrorLogOptions{MessageType: 1}, nil)
	assert.ErrorIs(t, err, ErrInvalidOption)
}

type stubSink struct {
	writes [][]byte
	err    error
	closed bool
}

func (s *stubSink) Write(_ context.Context, _ engine.Record, formatted []byte) error {
	s.writes = append(s.writes, formatted)
	return s.err
}

func (s *stubSink) DefaultFormatter() formatter.Formatter { return formatter.NewLine(formatter.WithoutTime()) }

func (s *stubSink) Close() error {
	s.closed = true
	return nil
}

func TestHandler_Accessors(t *testing.T) {
	t.Parallel()

	h, err := NewStdErr(engine.LevelDebug, nil)
	require.NoError(t, err)

	h.SetLevel(engine.LevelError)
	assert.Equal(t, engine.LevelError, h.Level())
	assert.False(t, h.IsHandling(engine.LevelWarning))

	h.SetKind(KindStdOut)
	assert.Equal(t, KindStdOut, h.Kind())
	assert.Equal(t, "StdOut(ERROR)", h.String())

	h.SetOptions(StreamOptions{Stream: os.Stderr, Bubble: false})
	assert.False(t, h.Bubbles())

	f := formatter.NewJSON()
	h.SetFormatter(f)
	assert.Same(t, f, h.Formatter())
	h.SetFormatter(nil)
	assert.Nil(t, h.Formatter())

	sink := &stubSink{}
	h.SetSink(sink)
	assert.Same(t, sink, h.Sink())

	require.NoError(t, h.Handle(context.Background(), testRecord(engine.LevelError, "boom")))
	require.Len(t, sink.writes, 1)
	assert.Equal(t, "test.ERROR: boom\n", string(sink.writes[0]))

	require.NoError(t, h.Close())
	assert.True(t, sink.closed)
}

func TestHandler_HandleReturnsSinkError(t *testing.T) {
	t.Parallel()

	errWrite := errors.New("disk full")
	h, err := NewStdErr(engine.LevelDebug, nil)
	require.NoError(t, err)
	h.SetSink(&stubSink{err: errWrite})

	assert.ErrorIs(t, h.Handle(context.Background(), testRecord(engine.LevelInfo, "x")), errWrite)
}

func TestHandler_BubbleThroughEngine(t *testing.T) {
	t.Parallel()

	var first, second bytes.Buffer
	stop, err := NewStream(engine.LevelDebug, StreamOptions{Stream: &first, Bubble: false}, nil)
	require.NoError(t, err)
	next, err := NewStream(engine.LevelDebug, StreamOptions{Stream: &second, Bubble: true}, nil)
	require.NoError(t, err)

	e := engine.New("app")
	e.SetSinks(stop, next)
	require.NoError(t, e.Log(context.Background(), engine.LevelInfo, "only once"))

	assert.Contains(t, first.String(), "only once")
	assert.Empty(t, second.String())
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	for _, kind := range Kinds() {
		parsed, err := ParseKind(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)

		text, err := kind.MarshalText()
		require.NoError(t, err)
		var back Kind
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, kind, back)
	}

	assert.Equal(t, "Kind(42)", Kind(42).String())
	_, err := Kind(42).MarshalText()
	assert.ErrorIs(t, err, ErrHandlerNotSupported)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	for _, level := range engine.Levels() {
		parsed, err := ParseLevel(level.String())
		require.NoError(t, err)
		assert.Equal(t, level, parsed)
	}

	parsed, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, engine.LevelDebug, parsed)
}
