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
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/uniwue-rz/lyra-log/engine"
	"github.com/uniwue-rz/lyra-log/formatter"
)

const defaultFileMode os.FileMode = 0o644

// ErrSinkClosed is returned when writing to a closed sink.
var ErrSinkClosed = errors.New("sink is closed")

// StreamSink appends records to a file or an [io.Writer].
type StreamSink struct {
	mu      sync.Mutex
	w       io.Writer
	file    *os.File // non-nil when w is an *os.File
	path    string
	owned   bool
	locking bool
	closed  bool
}

// NewStreamSink opens the configured stream. A path is opened for
// appending and created together with its parent directories.
func NewStreamSink(opts StreamOptions) (*StreamSink, error) {
	s := &StreamSink{locking: opts.UseLocking}

	switch stream := opts.Stream.(type) {
	case string:
		f, err := openStreamFile(stream, opts.FilePermission)
		if err != nil {
			return nil, err
		}
		s.w, s.file, s.path, s.owned = f, f, stream, true
	case io.Writer:
		s.w = stream
		if f, ok := stream.(*os.File); ok {
			s.file = f
			s.path = f.Name()
		}
	default:
		return nil, fmt.Errorf("%w: stream must be a path or an io.Writer, got %T", ErrInvalidOption, opts.Stream)
	}
	return s, nil
}

func openStreamFile(path string, perm *os.FileMode) (*os.File, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: stream path is empty", ErrInvalidOption)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory %q: %w", dir, err)
		}
	}

	mode := defaultFileMode
	if perm != nil {
		mode = *perm
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, mode)
	if err != nil {
		return nil, fmt.Errorf("open log stream %q: %w", path, err)
	}
	if perm != nil {
		if err := f.Chmod(*perm); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("chmod log stream %q: %w", path, err)
		}
	}
	return f, nil
}

// Path returns the file path, or "" for a plain writer.
func (s *StreamSink) Path() string {
	return s.path
}

// DefaultFormatter implements [Sink].
func (s *StreamSink) DefaultFormatter() formatter.Formatter {
	return formatter.NewLine()
}

// Write implements [Sink].
func (s *StreamSink) Write(_ context.Context, _ engine.Record, formatted []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSinkClosed
	}

	if s.locking && s.file != nil {
		if err := lockFile(s.file); err != nil {
			return fmt.Errorf("lock log stream: %w", err)
		}
		defer func() { _ = unlockFile(s.file) }()
	}

	if _, err := s.w.Write(formatted); err != nil {
		return fmt.Errorf("write log stream: %w", err)
	}
	return nil
}

// Close closes files the sink opened itself. Standard streams and
// caller-provided writers stay open.
func (s *StreamSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	if s.owned && s.file != nil {
		return s.file.Close()
	}
	return nil
}
