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
	"strings"
	"sync"

	"github.com/uniwue-rz/lyra-log/engine"
	"github.com/uniwue-rz/lyra-log/formatter"
)

// ErrSyslogUnavailable is returned on platforms without a syslog daemon.
var ErrSyslogUnavailable = errors.New("syslog is not available on this platform")

const consolePath = "/dev/console"

// syslogWriter is the subset of [log/syslog.Writer] the sink uses.
type syslogWriter interface {
	Emerg(m string) error
	Alert(m string) error
	Crit(m string) error
	Err(m string) error
	Warning(m string) error
	Notice(m string) error
	Info(m string) error
	Debug(m string) error
	Close() error
}

type syslogDialer func(facility Facility, ident string) (syslogWriter, error)

// SyslogSink sends records to the local syslog daemon.
//
// The connection is opened on the first write unless [LogNDelay] is set.
// [LogPerror] mirrors every message to standard error and [LogCons] falls
// back to the system console when the daemon cannot be reached.
type SyslogSink struct {
	mu       sync.Mutex
	ident    string
	facility Facility
	logopts  LogOpt
	w        syslogWriter
	closed   bool

	dial        syslogDialer
	stderr      io.Writer
	openConsole func() (io.WriteCloser, error)
}

// NewSyslogSink creates a syslog sink.
func NewSyslogSink(opts SyslogOptions) (*SyslogSink, error) {
	return newSyslogSink(opts, dialSyslog)
}

func newSyslogSink(opts SyslogOptions, dial syslogDialer) (*SyslogSink, error) {
	s := &SyslogSink{
		ident:    opts.Ident,
		facility: opts.Facility,
		logopts:  opts.LogOpts,
		dial:     dial,
		stderr:   os.Stderr,
		openConsole: func() (io.WriteCloser, error) {
			return os.OpenFile(consolePath, os.O_WRONLY, 0)
		},
	}

	if s.logopts.Has(LogNDelay) {
		s.mu.Lock()
		err := s.connect()
		s.mu.Unlock()
		if err != nil && !s.logopts.Has(LogCons) {
			return nil, err
		}
	}
	return s, nil
}

// connect dials the daemon once. Callers hold s.mu.
func (s *SyslogSink) connect() error {
	if s.w != nil {
		return nil
	}
	w, err := s.dial(s.facility, s.ident)
	if err != nil {
		return fmt.Errorf("connect to syslog: %w", err)
	}
	s.w = w
	return nil
}

// DefaultFormatter implements [Sink]. Syslog stamps its own time.
func (s *SyslogSink) DefaultFormatter() formatter.Formatter {
	return formatter.NewLine(formatter.WithoutTime())
}

// Write implements [Sink].
func (s *SyslogSink) Write(_ context.Context, r engine.Record, formatted []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSinkClosed
	}

	msg := strings.TrimRight(string(formatted), "\r\n")
	if s.logopts.Has(LogPerror) {
		_, _ = fmt.Fprintf(s.stderr, "%s: %s\n", s.ident, msg)
	}

	if err := s.connect(); err != nil {
		return s.toConsole(msg, err)
	}
	if err := sendSyslog(s.w, r.Level, msg); err != nil {
		return s.toConsole(msg, err)
	}
	return nil
}

func (s *SyslogSink) toConsole(msg string, cause error) error {
	if !s.logopts.Has(LogCons) {
		return cause
	}
	c, err := s.openConsole()
	if err != nil {
		return errors.Join(cause, err)
	}
	defer func() { _ = c.Close() }()
	if _, err := fmt.Fprintf(c, "%s: %s\r\n", s.ident, msg); err != nil {
		return errors.Join(cause, err)
	}
	return nil
}

func sendSyslog(w syslogWriter, level engine.Level, msg string) error {
	switch level.SyslogSeverity() {
	case 0:
		return w.Emerg(msg)
	case 1:
		return w.Alert(msg)
	case 2:
		return w.Crit(msg)
	case 3:
		return w.Err(msg)
	case 4:
		return w.Warning(msg)
	case 5:
		return w.Notice(msg)
	case 6:
		return w.Info(msg)
	default:
		return w.Debug(msg)
	}
}

// Close disconnects from the daemon.
func (s *SyslogSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	if s.w == nil {
		return nil
	}
	err := s.w.Close()
	s.w = nil
	return err
}
