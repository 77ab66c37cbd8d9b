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

package engine

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		want   Level
		wantOK bool
	}{
		{name: "DEBUG", want: LevelDebug, wantOK: true},
		{name: "INFO", want: LevelInfo, wantOK: true},
		{name: "NOTICE", want: LevelNotice, wantOK: true},
		{name: "WARNING", want: LevelWarning, wantOK: true},
		{name: "ERROR", want: LevelError, wantOK: true},
		{name: "CRITICAL", want: LevelCritical, wantOK: true},
		{name: "ALERT", want: LevelAlert, wantOK: true},
		{name: "EMERGENCY", want: LevelEmergency, wantOK: true},
		{name: "INFFO"},
		{name: "info"},
		{name: "WARN"},
		{name: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := LookupLevel(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
				assert.Equal(t, tt.name, got.String())
			}
		})
	}
}

func TestLevel_Ordering(t *testing.T) {
	t.Parallel()

	levels := Levels()
	assert.Len(t, levels, 8)
	for i := 1; i < len(levels); i++ {
		assert.Less(t, levels[i-1], levels[i])
	}
}

func TestLevel_SlogCompatibility(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelDebug, LevelDebug.Slog())
	assert.Equal(t, slog.LevelInfo, LevelInfo.Slog())
	assert.Equal(t, slog.LevelWarn, LevelWarning.Slog())
	assert.Equal(t, slog.LevelError, LevelError.Level())
}

func TestLevel_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "INFO+1", Level(1).String())
	assert.Equal(t, "ERROR+2", Level(10).String())
	assert.Equal(t, "DEBUG-4", Level(-8).String())
	assert.Equal(t, "EMERGENCY+5", Level(25).String())
}

func TestLevel_SyslogSeverity(t *testing.T) {
	t.Parallel()

	want := map[Level]int{
		LevelEmergency: 0,
		LevelAlert:     1,
		LevelCritical:  2,
		LevelError:     3,
		LevelWarning:   4,
		LevelNotice:    5,
		LevelInfo:      6,
		LevelDebug:     7,
	}
	for level, severity := range want {
		assert.Equal(t, severity, level.SyslogSeverity(), level.String())
	}
}
