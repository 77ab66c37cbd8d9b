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
	"fmt"
	"io"
	"os"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cast"
)

// DefaultStreamPath is the file a Stream handler writes to when no
// stream is given. Relative paths resolve against the working directory.
const DefaultStreamPath = "lyra.log"

// DefaultIdent is the syslog identity used when none is configured.
const DefaultIdent = "lyra"

// Options is the typed option set of one handler kind.
type Options interface {
	// Bubbles reports whether records continue to later handlers after
	// this one handled them.
	Bubbles() bool

	// Map returns the options keyed by their configuration names.
	Map() map[string]any
}

// StreamOptions configures the Stream, StdErr and StdOut kinds.
type StreamOptions struct {
	// Stream is a file path or an [io.Writer].
	Stream any `mapstructure:"stream"`

	Bubble bool `mapstructure:"bubble"`

	// FilePermission is applied to files the handler opens. Nil keeps the
	// process umask default.
	FilePermission *os.FileMode `mapstructure:"filePermission"`

	// UseLocking holds an exclusive advisory lock around each write.
	UseLocking bool `mapstructure:"useLocking"`
}

// Bubbles implements [Options].
func (o StreamOptions) Bubbles() bool { return o.Bubble }

// Map implements [Options].
func (o StreamOptions) Map() map[string]any {
	var perm any
	if o.FilePermission != nil {
		perm = *o.FilePermission
	}
	return map[string]any{
		"stream":         o.Stream,
		"bubble":         o.Bubble,
		"filePermission": perm,
		"useLocking":     o.UseLocking,
	}
}

// SyslogOptions configures the Syslog kind.
type SyslogOptions struct {
	Ident    string   `mapstructure:"ident"`
	Facility Facility `mapstructure:"facility"`
	Bubble   bool     `mapstructure:"bubble"`
	LogOpts  LogOpt   `mapstructure:"logopts"`
}

// Bubbles implements [Options].
func (o SyslogOptions) Bubbles() bool { return o.Bubble }

// Map implements [Options].
func (o SyslogOptions) Map() map[string]any {
	return map[string]any{
		"ident":    o.Ident,
		"facility": o.Facility,
		"bubble":   o.Bubble,
		"logopts":  o.LogOpts,
	}
}

// MessageType selects where an ErrorLog handler sends its messages.
type MessageType int

const (
	// MessageTypeOS sends messages to the operating system logger.
	MessageTypeOS MessageType = 0

	// MessageTypeSAPI sends messages to the process logger of the
	// standard log package.
	MessageTypeSAPI MessageType = 4
)

// Valid reports whether t is one of the two supported message types.
func (t MessageType) Valid() bool {
	return t == MessageTypeOS || t == MessageTypeSAPI
}

// ErrorLogOptions configures the ErrorLog kind.
type ErrorLogOptions struct {
	MessageType MessageType `mapstructure:"messageType"`
	Bubble      bool        `mapstructure:"bubble"`

	// ExpandNewLines emits one entry per line of the formatted record.
	ExpandNewLines bool `mapstructure:"expandNewLines"`
}

// Bubbles implements [Options].
func (o ErrorLogOptions) Bubbles() bool { return o.Bubble }

// Map implements [Options].
func (o ErrorLogOptions) Map() map[string]any {
	return map[string]any{
		"messageType":    o.MessageType,
		"bubble":         o.Bubble,
		"expandNewLines": o.ExpandNewLines,
	}
}

// Defaults returns the typed default options of kind, or nil for an
// unknown kind.
func Defaults(kind Kind) Options {
	switch kind {
	case KindStream:
		return StreamOptions{Stream: DefaultStreamPath, Bubble: true}
	case KindStdErr:
		return StreamOptions{Stream: os.Stderr, Bubble: true}
	case KindStdOut:
		return StreamOptions{Stream: os.Stdout, Bubble: true}
	case KindSyslog:
		return SyslogOptions{Ident: DefaultIdent, Facility: FacilityUser, Bubble: true, LogOpts: LogPID}
	case KindErrorLog:
		return ErrorLogOptions{MessageType: MessageTypeOS, Bubble: false, ExpandNewLines: true}
	default:
		return nil
	}
}

// DefaultOptions returns the default options of kind keyed by name, or
// nil for an unknown kind.
func DefaultOptions(kind Kind) map[string]any {
	d := Defaults(kind)
	if d == nil {
		return nil
	}
	return d.Map()
}

// unknownKeys returns the caller keys kind does not define, sorted.
func unknownKeys(kind Kind, options map[string]any) []string {
	defaults := DefaultOptions(kind)
	var keys []string
	for key := range options {
		if _, ok := defaults[key]; !ok {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)
	return keys
}

// decodeOptions merges options over the defaults of kind and decodes the
// result into the kind's typed struct.
func decodeOptions(kind Kind, options map[string]any) (Options, error) {
	merged := DefaultOptions(kind)
	for key, value := range options {
		merged[key] = value
	}

	var out Options
	switch kind {
	case KindStream, KindStdErr, KindStdOut:
		var o StreamOptions
		if err := decodeInto(merged, &o); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidOption, kind, err)
		}
		out = o
	case KindSyslog:
		var o SyslogOptions
		if err := decodeInto(merged, &o); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidOption, kind, err)
		}
		out = o
	case KindErrorLog:
		var o ErrorLogOptions
		if err := decodeInto(merged, &o); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidOption, kind, err)
		}
		out = o
	default:
		return nil, &HandlerNotSupportedError{Kind: kind.String()}
	}

	if err := validateOptions(kind, out); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeInto(input map[string]any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			fileModeHook,
			facilityHook,
			logOptHook,
			messageTypeHook,
		),
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		MatchName: func(mapKey, fieldName string) bool {
			return mapKey == fieldName
		},
		Result: target,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

var (
	fileModeType    = reflect.TypeFor[os.FileMode]()
	facilityType    = reflect.TypeFor[Facility]()
	logOptType      = reflect.TypeFor[LogOpt]()
	messageTypeType = reflect.TypeFor[MessageType]()
)

// fileModeHook reads permission strings as octal ("0640", "640") and
// coerces numbers with cast.
func fileModeHook(from, to reflect.Type, data any) (any, error) {
	if to != fileModeType || from == fileModeType {
		return data, nil
	}
	if s, ok := data.(string); ok {
		n, err := strconv.ParseUint(strings.TrimPrefix(strings.TrimSpace(s), "0o"), 8, 32)
		if err != nil {
			return nil, fmt.Errorf("filePermission %q: %w", s, err)
		}
		return os.FileMode(n), nil
	}
	n, err := cast.ToUint32E(data)
	if err != nil {
		return nil, fmt.Errorf("filePermission: %w", err)
	}
	return os.FileMode(n), nil
}

func facilityHook(from, to reflect.Type, data any) (any, error) {
	if to != facilityType || from == facilityType {
		return data, nil
	}
	return ParseFacility(data)
}

func logOptHook(from, to reflect.Type, data any) (any, error) {
	if to != logOptType || from == logOptType {
		return data, nil
	}
	return ParseLogOpt(data)
}

func messageTypeHook(from, to reflect.Type, data any) (any, error) {
	if to != messageTypeType || from == messageTypeType {
		return data, nil
	}
	n, err := cast.ToIntE(data)
	if err != nil {
		return nil, fmt.Errorf("messageType: %w", err)
	}
	return MessageType(n), nil
}

// validateOptions checks values the decoder cannot express as types.
func validateOptions(kind Kind, opts Options) error {
	switch o := opts.(type) {
	case StreamOptions:
		switch s := o.Stream.(type) {
		case string:
			if s == "" {
				return fmt.Errorf("%w: %s: stream path is empty", ErrInvalidOption, kind)
			}
		case io.Writer:
		default:
			return fmt.Errorf("%w: %s: stream must be a path or an io.Writer, got %T", ErrInvalidOption, kind, o.Stream)
		}
		if o.FilePermission != nil && *o.FilePermission&^os.ModePerm != 0 {
			return fmt.Errorf("%w: %s: filePermission %#o has non-permission bits", ErrInvalidOption, kind, uint32(*o.FilePermission))
		}
	case SyslogOptions:
		if !o.Facility.Valid() {
			return fmt.Errorf("%w: %s: unknown facility %d", ErrInvalidOption, kind, int(o.Facility))
		}
		if o.LogOpts&^logOptMask != 0 {
			return fmt.Errorf("%w: %s: unknown logopts %#x", ErrInvalidOption, kind, int(o.LogOpts))
		}
	case ErrorLogOptions:
		if !o.MessageType.Valid() {
			return fmt.Errorf("%w: %s: messageType %d, want %d or %d", ErrInvalidOption, kind, int(o.MessageType), int(MessageTypeOS), int(MessageTypeSAPI))
		}
	}
	return nil
}
