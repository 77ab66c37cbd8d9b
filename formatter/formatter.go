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

package formatter

import (
	"errors"
	"fmt"

	"github.com/uniwue-rz/lyra-log/engine"
)

// ErrUnknownFormatter is returned by [Parse] for an unrecognized name.
var ErrUnknownFormatter = errors.New("unknown formatter")

// Formatter renders a record into the bytes a sink writes.
// Implementations must be safe for concurrent use.
type Formatter interface {
	Format(r engine.Record) ([]byte, error)
}

// Name identifies a built-in formatter in configuration text.
type Name string

// Built-in formatter names.
const (
	NameLine    Name = "line"
	NameJSON    Name = "json"
	NameText    Name = "text"
	NameConsole Name = "console"
)

// Parse returns the built-in formatter registered under name.
// An empty name yields a nil Formatter, leaving the sink's default in place.
func Parse(name string) (Formatter, error) {
	switch Name(name) {
	case "":
		return nil, nil //nolint:nilnil // no formatter requested
	case NameLine:
		return NewLine(), nil
	case NameJSON:
		return NewJSON(), nil
	case NameText:
		return NewText(), nil
	case NameConsole:
		return NewConsole(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormatter, name)
	}
}
