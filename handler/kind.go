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

	"github.com/uniwue-rz/lyra-log/engine"
)

// Kind selects the sink a handler writes to.
type Kind uint8

// Supported kinds.
const (
	KindStream Kind = iota + 1
	KindStdErr
	KindStdOut
	KindSyslog
	KindErrorLog
)

var kindNames = map[Kind]string{
	KindStream:   "Stream",
	KindStdErr:   "StdErr",
	KindStdOut:   "StdOut",
	KindSyslog:   "Syslog",
	KindErrorLog: "ErrorLog",
}

// Kinds returns every supported kind.
func Kinds() []Kind {
	return []Kind{KindSyslog, KindErrorLog, KindStdErr, KindStdOut, KindStream}
}

// ParseKind resolves a kind name. Names are case-sensitive.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, &HandlerNotSupportedError{Kind: name}
}

// String returns the kind name as used in configuration.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// MarshalText implements [encoding.TextMarshaler].
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, &HandlerNotSupportedError{Kind: k.String()}
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseLevel resolves one of the eight level names. An empty name means
// DEBUG.
func ParseLevel(name string) (engine.Level, error) {
	if name == "" {
		return engine.LevelDebug, nil
	}
	level, ok := engine.LookupLevel(name)
	if !ok {
		return 0, &LogLevelNotExistsError{Level: name}
	}
	return level, nil
}
