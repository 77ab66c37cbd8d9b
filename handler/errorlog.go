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
	"log"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/coreos/go-systemd/v22/journal"

	"github.com/uniwue-rz/lyra-log/engine"
	"github.com/uniwue-rz/lyra-log/formatter"
)

var lineSplit = regexp.MustCompile(`[\r\n]+`)

// journalSender matches [journal.Send].
type journalSender func(message string, priority journal.Priority, vars map[string]string) error

// ErrorLogSink hands records to the process error log.
//
// With [MessageTypeOS] entries go to the systemd journal when it is
// reachable and to standard error otherwise. With [MessageTypeSAPI] they
// go through the standard [log] package, so whatever output the program
// configured there receives them.
type ErrorLogSink struct {
	mu          sync.Mutex
	messageType MessageType
	expand      bool

	journalEnabled func() bool
	sendJournal    journalSender
	stderr         io.Writer
	logger         *log.Logger
}

// NewErrorLogSink creates an error log sink.
func NewErrorLogSink(opts ErrorLogOptions) *ErrorLogSink {
	return &ErrorLogSink{
		messageType:    opts.MessageType,
		expand:         opts.ExpandNewLines,
		journalEnabled: journal.Enabled,
		sendJournal:    journal.Send,
		stderr:         os.Stderr,
		logger:         log.Default(),
	}
}

// DefaultFormatter implements [Sink]. Line breaks survive formatting when
// the sink expands them into separate entries.
func (s *ErrorLogSink) DefaultFormatter() formatter.Formatter {
	if s.expand {
		return formatter.NewLine(formatter.WithInlineLineBreaks())
	}
	return formatter.NewLine()
}

// Write implements [Sink].
func (s *ErrorLogSink) Write(_ context.Context, r engine.Record, formatted []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	text := strings.TrimRight(string(formatted), "\r\n")
	lines := []string{text}
	if s.expand {
		lines = lineSplit.Split(text, -1)
	}

	var errs []error
	for _, line := range lines {
		if line == "" {
			continue
		}
		if err := s.writeLine(r, line); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *ErrorLogSink) writeLine(r engine.Record, line string) error {
	if s.messageType == MessageTypeSAPI {
		return s.logger.Output(3, line)
	}
	if s.journalEnabled() {
		priority := journal.Priority(r.Level.SyslogSeverity())
		if err := s.sendJournal(line, priority, journalFields(r)); err != nil {
			return fmt.Errorf("send to journal: %w", err)
		}
		return nil
	}
	_, err := fmt.Fprintln(s.stderr, line)
	return err
}

// Close implements [Sink]. Nothing is held open.
func (s *ErrorLogSink) Close() error {
	return nil
}

// journalFields turns the record channel and attributes into journal
// fields. Keys are upper-cased and reduced to [A-Z0-9_], groups are joined
// with "_".
func journalFields(r engine.Record) map[string]string {
	fields := map[string]string{
		"SYSLOG_IDENTIFIER": r.Channel,
		"LYRA_LEVEL":        r.Level.String(),
	}
	for _, a := range r.Attrs {
		addJournalField(fields, "", a)
	}
	for _, a := range r.Extra {
		addJournalField(fields, "", a)
	}
	return fields
}

func addJournalField(fields map[string]string, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	key := journalKey(a.Key)
	if prefix != "" {
		key = prefix + "_" + key
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, member := range a.Value.Group() {
			addJournalField(fields, key, member)
		}
		return
	}
	if key == "" {
		return
	}

	switch a.Value.Kind() {
	case slog.KindFloat64:
		fields[key] = strconv.FormatFloat(a.Value.Float64(), 'f', -1, 64)
	case slog.KindTime:
		fields[key] = a.Value.Time().Format("2006-01-02T15:04:05.000Z07:00")
	default:
		fields[key] = a.Value.String()
	}
}

// journalKey upper-cases k and replaces characters journald rejects.
// Leading underscores are reserved for trusted fields and get stripped.
func journalKey(k string) string {
	k = strings.ToUpper(k)
	k = strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, k)
	return strings.TrimLeft(k, "_")
}
