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
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/uniwue-rz/lyra-log/engine"
	"github.com/uniwue-rz/lyra-log/formatter"
	"github.com/uniwue-rz/lyra-log/handler"
)

// LogEntry represents a parsed log entry for testing.
type LogEntry struct {
	Time    time.Time
	Level   string
	Channel string
	Message string
	Attrs   map[string]any
	Extra   map[string]any
}

// syncBuffer is a [bytes.Buffer] safe for concurrent writers and readers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) snapshot() *bytes.Buffer {
	b.mu.Lock()
	defer b.mu.Unlock()
	return bytes.NewBuffer(bytes.Clone(b.buf.Bytes()))
}

func (b *syncBuffer) reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

// NewTestLogger creates a [Logger] named "test" that writes JSON lines at
// DEBUG and above to the returned buffer. Use [ParseJSONLogEntries] to
// inspect the output.
func NewTestLogger() (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	h, err := handler.NewStream(LevelDebug, handler.StreamOptions{Stream: buf, Bubble: true}, formatter.NewJSON())
	if err != nil {
		panic("logging: test handler: " + err.Error())
	}
	return MustNew("test", WithHandlers(h), WithMicrosecondTimestamps(true)), buf
}

// ParseJSONLogEntries parses JSON log entries from buf into [LogEntry]
// values. The buffer is not consumed.
func ParseJSONLogEntries(buf *bytes.Buffer) ([]LogEntry, error) {
	var entries []LogEntry
	scanner := bufio.NewScanner(bytes.NewReader(buf.Bytes()))
	for scanner.Scan() {
		var entry map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			return nil, err
		}

		le := LogEntry{Attrs: make(map[string]any)}
		le.Message, _ = entry["msg"].(string)
		le.Level, _ = entry["level"].(string)
		le.Channel, _ = entry["channel"].(string)
		if ts, ok := entry["time"].(string); ok {
			le.Time, _ = time.Parse(time.RFC3339Nano, ts)
		}
		le.Extra, _ = entry["extra"].(map[string]any)

		for k, v := range entry {
			switch k {
			case "time", "level", "msg", "channel", "extra":
			default:
				le.Attrs[k] = v
			}
		}
		entries = append(entries, le)
	}

	return entries, scanner.Err()
}

// TestHelper provides utilities for testing with the logging package.
type TestHelper struct {
	Logger *Logger
	buffer *syncBuffer
}

// NewTestHelper creates a [TestHelper] with in-memory JSON logging at DEBUG.
// Additional [Option] values can be passed to customize the logger.
func NewTestHelper(t *testing.T, opts ...Option) *TestHelper {
	t.Helper()

	buf := &syncBuffer{}
	h, err := handler.NewStream(LevelDebug, handler.StreamOptions{Stream: buf, Bubble: true}, formatter.NewJSON())
	require.NoError(t, err)

	logger, err := New("test", append([]Option{WithHandlers(h)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = logger.Close() })

	return &TestHelper{Logger: logger, buffer: buf}
}

// Logs returns all parsed log entries.
func (th *TestHelper) Logs() ([]LogEntry, error) {
	return ParseJSONLogEntries(th.buffer.snapshot())
}

// LastLog returns the most recent log entry.
func (th *TestHelper) LastLog() (*LogEntry, error) {
	entries, err := th.Logs()
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, errors.New("no log entries found")
	}
	return &entries[len(entries)-1], nil
}

// ContainsLog checks if any log entry has the given message.
func (th *TestHelper) ContainsLog(msg string) bool {
	entries, err := th.Logs()
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if entry.Message == msg {
			return true
		}
	}
	return false
}

// CountLevel returns the number of log entries at the given level name.
func (th *TestHelper) CountLevel(level string) int {
	entries, err := th.Logs()
	if err != nil {
		return 0
	}
	count := 0
	for _, entry := range entries {
		if entry.Level == level {
			count++
		}
	}
	return count
}

// Reset clears the buffer for fresh testing.
func (th *TestHelper) Reset() {
	th.buffer.reset()
}

// AssertLog checks that a log entry exists with the given properties.
// Numbers compare across int and float64, since JSON decodes to float64.
func (th *TestHelper) AssertLog(t *testing.T, level, msg string, attrs map[string]any) {
	t.Helper()

	entries, err := th.Logs()
	require.NoError(t, err, "failed to parse logs")

	for _, entry := range entries {
		if entry.Level != level || entry.Message != msg {
			continue
		}
		if attrsMatch(entry.Attrs, attrs) {
			return
		}
	}

	require.Fail(t, "log entry not found", "level=%s msg=%s attrs=%v", level, msg, attrs)
}

func attrsMatch(actual, expected map[string]any) bool {
	for k, expectedVal := range expected {
		actualVal, ok := actual[k]
		if !ok {
			return false
		}
		var matched bool
		switch want := expectedVal.(type) {
		case int:
			got, isNum := actualVal.(float64)
			matched = isNum && int(got) == want
		case int64:
			got, isNum := actualVal.(float64)
			matched = isNum && int64(got) == want
		case float64:
			got, isNum := actualVal.(float64)
			matched = isNum && got == want
		default:
			matched = fmt.Sprint(actualVal) == fmt.Sprint(expectedVal)
		}
		if !matched {
			return false
		}
	}
	return true
}

// MockWriter is an io.Writer that records all writes for test assertions.
// It can be used as the stream of a Stream handler.
//
// Example:
//
//	mw := &logging.MockWriter{}
//	h, _ := handler.NewStream(logging.LevelDebug, handler.StreamOptions{Stream: mw, Bubble: true}, nil)
//	logger := logging.MustNew("app", logging.WithHandlers(h))
//	logger.Info("test")
//
//	if mw.WriteCount() != 1 {
//	    t.Error("expected exactly one write")
//	}
type MockWriter struct {
	mu         sync.Mutex
	writes     [][]byte
	writeError error
	bytesTotal int
}

// NewFailingWriter returns a MockWriter whose writes fail with err.
func NewFailingWriter(err error) *MockWriter {
	return &MockWriter{writeError: err}
}

// Write implements io.Writer.
func (mw *MockWriter) Write(p []byte) (n int, err error) {
	mw.mu.Lock()
	defer mw.mu.Unlock()

	if mw.writeError != nil {
		return 0, mw.writeError
	}
	mw.writes = append(mw.writes, bytes.Clone(p))
	mw.bytesTotal += len(p)
	return len(p), nil
}

// WriteCount returns the number of write calls.
func (mw *MockWriter) WriteCount() int {
	mw.mu.Lock()
	defer mw.mu.Unlock()
	return len(mw.writes)
}

// BytesWritten returns total bytes written.
func (mw *MockWriter) BytesWritten() int {
	mw.mu.Lock()
	defer mw.mu.Unlock()
	return mw.bytesTotal
}

// LastWrite returns the most recent write.
func (mw *MockWriter) LastWrite() []byte {
	mw.mu.Lock()
	defer mw.mu.Unlock()
	if len(mw.writes) == 0 {
		return nil
	}
	return mw.writes[len(mw.writes)-1]
}

// Reset clears all recorded writes.
func (mw *MockWriter) Reset() {
	mw.mu.Lock()
	defer mw.mu.Unlock()
	mw.writes = nil
	mw.bytesTotal = 0
}

// SinkSpy implements [engine.Sink] and records every record it handles.
//
// Example:
//
//	spy := logging.NewSinkSpy(logging.LevelInfo, true)
//	logger.Engine().Push(spy)
//	logger.Info("test", "key", "value")
//
//	if spy.RecordCount() != 1 {
//	    t.Error("expected one record")
//	}
type SinkSpy struct {
	mu      sync.Mutex
	min     Level
	bubble  bool
	records []engine.Record
}

// NewSinkSpy creates a spy accepting records at min and above.
func NewSinkSpy(min Level, bubble bool) *SinkSpy {
	return &SinkSpy{min: min, bubble: bubble}
}

// IsHandling implements [engine.Sink].
func (s *SinkSpy) IsHandling(level Level) bool {
	return level >= s.min
}

// Bubbles implements [engine.Sink].
func (s *SinkSpy) Bubbles() bool {
	return s.bubble
}

// Handle implements [engine.Sink].
func (s *SinkSpy) Handle(_ context.Context, r engine.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, r.Clone())
	return nil
}

// Records returns all captured records.
func (s *SinkSpy) Records() []engine.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]engine.Record(nil), s.records...)
}

// RecordCount returns the number of captured records.
func (s *SinkSpy) RecordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Reset clears all captured records.
func (s *SinkSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
}
