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
	"strings"

	"github.com/spf13/cast"
)

// Facility is a syslog facility code, already shifted into the priority's
// facility bits. On platforms with log/syslog the constants are taken from
// it.
type Facility int

var facilityNames = map[string]Facility{
	"LOG_KERN":     FacilityKern,
	"LOG_USER":     FacilityUser,
	"LOG_MAIL":     FacilityMail,
	"LOG_DAEMON":   FacilityDaemon,
	"LOG_AUTH":     FacilityAuth,
	"LOG_SYSLOG":   FacilitySyslog,
	"LOG_LPR":      FacilityLPR,
	"LOG_NEWS":     FacilityNews,
	"LOG_UUCP":     FacilityUUCP,
	"LOG_CRON":     FacilityCron,
	"LOG_AUTHPRIV": FacilityAuthPriv,
	"LOG_FTP":      FacilityFTP,
	"LOG_LOCAL0":   FacilityLocal0,
	"LOG_LOCAL1":   FacilityLocal1,
	"LOG_LOCAL2":   FacilityLocal2,
	"LOG_LOCAL3":   FacilityLocal3,
	"LOG_LOCAL4":   FacilityLocal4,
	"LOG_LOCAL5":   FacilityLocal5,
	"LOG_LOCAL6":   FacilityLocal6,
	"LOG_LOCAL7":   FacilityLocal7,
}

// ParseFacility accepts a facility name ("LOG_LOCAL0", "local0") or its
// numeric value.
func ParseFacility(v any) (Facility, error) {
	if s, ok := v.(string); ok {
		name := strings.ToUpper(strings.TrimSpace(s))
		if !strings.HasPrefix(name, "LOG_") {
			name = "LOG_" + name
		}
		if f, ok := facilityNames[name]; ok {
			return f, nil
		}
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0, fmt.Errorf("%w: facility %v", ErrInvalidOption, v)
	}
	f := Facility(n)
	if !f.Valid() {
		return 0, fmt.Errorf("%w: facility %d", ErrInvalidOption, n)
	}
	return f, nil
}

// Valid reports whether f is a known facility.
func (f Facility) Valid() bool {
	for _, known := range facilityNames {
		if known == f {
			return true
		}
	}
	return false
}

func (f Facility) String() string {
	for name, known := range facilityNames {
		if known == f {
			return name
		}
	}
	return fmt.Sprintf("Facility(%d)", int(f))
}

// LogOpt is a set of openlog(3) flags.
type LogOpt int

// openlog(3) flags, with their POSIX values. Neither log/syslog nor
// golang.org/x/sys exports them.
const (
	LogPID    LogOpt = 0x01
	LogCons   LogOpt = 0x02
	LogODelay LogOpt = 0x04
	LogNDelay LogOpt = 0x08
	LogNoWait LogOpt = 0x10
	LogPerror LogOpt = 0x20
)

var logOptNames = []struct {
	name string
	opt  LogOpt
}{
	{"LOG_PID", LogPID},
	{"LOG_CONS", LogCons},
	{"LOG_ODELAY", LogODelay},
	{"LOG_NDELAY", LogNDelay},
	{"LOG_NOWAIT", LogNoWait},
	{"LOG_PERROR", LogPerror},
}

const logOptMask = LogPID | LogCons | LogODelay | LogNDelay | LogNoWait | LogPerror

// ParseLogOpt accepts an integer, a "LOG_PID|LOG_CONS" expression or a
// list of flag names.
func ParseLogOpt(v any) (LogOpt, error) {
	switch t := v.(type) {
	case string:
		var opts LogOpt
		for _, part := range strings.FieldsFunc(t, func(r rune) bool { return r == '|' || r == ',' || r == ' ' }) {
			opt, err := parseLogOptName(part)
			if err != nil {
				return 0, err
			}
			opts |= opt
		}
		return opts, nil
	case []any:
		var opts LogOpt
		for _, item := range t {
			opt, err := ParseLogOpt(item)
			if err != nil {
				return 0, err
			}
			opts |= opt
		}
		return opts, nil
	case []string:
		items := make([]any, len(t))
		for i, s := range t {
			items[i] = s
		}
		return ParseLogOpt(items)
	}

	n, err := cast.ToIntE(v)
	if err != nil {
		return 0, fmt.Errorf("%w: logopts %v", ErrInvalidOption, v)
	}
	if LogOpt(n)&^logOptMask != 0 {
		return 0, fmt.Errorf("%w: logopts %#x", ErrInvalidOption, n)
	}
	return LogOpt(n), nil
}

func parseLogOptName(name string) (LogOpt, error) {
	upper := strings.ToUpper(name)
	if !strings.HasPrefix(upper, "LOG_") {
		upper = "LOG_" + upper
	}
	for _, entry := range logOptNames {
		if entry.name == upper {
			return entry.opt, nil
		}
	}
	if n, err := cast.ToIntE(name); err == nil {
		return ParseLogOpt(n)
	}
	return 0, fmt.Errorf("%w: logopts flag %q", ErrInvalidOption, name)
}

// Has reports whether every flag in flag is set.
func (o LogOpt) Has(flag LogOpt) bool {
	return o&flag == flag
}

func (o LogOpt) String() string {
	if o == 0 {
		return "0"
	}
	var parts []string
	for _, entry := range logOptNames {
		if o.Has(entry.opt) {
			parts = append(parts, entry.name)
		}
	}
	if rest := o &^ logOptMask; rest != 0 {
		parts = append(parts, fmt.Sprintf("%#x", int(rest)))
	}
	return strings.Join(parts, "|")
}
