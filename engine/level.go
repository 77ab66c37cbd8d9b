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
	"fmt"
	"log/slog"
)

// Level is the severity ordinal attached to a record.
//
// The values extend [slog.Level]: DEBUG, INFO, WARNING and ERROR coincide
// with slog's levels, and the syslog-only severities sit between and above
// them. A Level can therefore be converted to and from [slog.Level] without
// loss, and records produced through [log/slog] land on the expected name.
type Level slog.Level

// The eight RFC 5424 severities.
const (
	LevelDebug     Level = Level(slog.LevelDebug)
	LevelInfo      Level = Level(slog.LevelInfo)
	LevelNotice    Level = 2
	LevelWarning   Level = Level(slog.LevelWarn)
	LevelError     Level = Level(slog.LevelError)
	LevelCritical  Level = 12
	LevelAlert     Level = 16
	LevelEmergency Level = 20
)

var levelNames = map[Level]string{
	LevelDebug:     "DEBUG",
	LevelInfo:      "INFO",
	LevelNotice:    "NOTICE",
	LevelWarning:   "WARNING",
	LevelError:     "ERROR",
	LevelCritical:  "CRITICAL",
	LevelAlert:     "ALERT",
	LevelEmergency: "EMERGENCY",
}

// levelOrder lists the severities from least to most severe.
var levelOrder = []Level{
	LevelDebug,
	LevelInfo,
	LevelNotice,
	LevelWarning,
	LevelError,
	LevelCritical,
	LevelAlert,
	LevelEmergency,
}

// Levels returns the recognized levels ordered from least to most severe.
func Levels() []Level {
	out := make([]Level, len(levelOrder))
	copy(out, levelOrder)
	return out
}

// LookupLevel resolves an exact, upper-case level name such as "WARNING".
func LookupLevel(name string) (Level, bool) {
	for l, n := range levelNames {
		if n == name {
			return l, true
		}
	}
	return 0, false
}

// String returns the level name. Levels between the named ones are printed
// relative to the nearest lower name, e.g. "INFO+1".
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	base := levelOrder[0]
	for _, candidate := range levelOrder {
		if candidate > l {
			break
		}
		base = candidate
	}
	delta := int(l) - int(base)
	if delta < 0 {
		return fmt.Sprintf("%s%d", levelNames[base], delta)
	}
	return fmt.Sprintf("%s+%d", levelNames[base], delta)
}

// Slog converts l to the equivalent [slog.Level].
func (l Level) Slog() slog.Level {
	return slog.Level(l)
}

// Level implements [slog.Leveler].
func (l Level) Level() slog.Level {
	return slog.Level(l)
}

// SyslogSeverity returns the RFC 5424 severity number, 0 (emergency)
// through 7 (debug). Levels between the named ones round down to the
// closest named level.
func (l Level) SyslogSeverity() int {
	switch {
	case l >= LevelEmergency:
		return 0
	case l >= LevelAlert:
		return 1
	case l >= LevelCritical:
		return 2
	case l >= LevelError:
		return 3
	case l >= LevelWarning:
		return 4
	case l >= LevelNotice:
		return 5
	case l >= LevelInfo:
		return 6
	default:
		return 7
	}
}
