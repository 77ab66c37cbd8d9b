// Copyright 2025 The Lyra Log Authors
// Copyright 2025 Company.info B.V.
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

package source

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/uniwue-rz/lyra-log/config/codec"
)

// OSEnvVar loads configuration from environment variables sharing a
// prefix. The prefix is stripped, names are lowercased and underscores
// nest, so with prefix "LYRA_" the variable LYRA_HANDLERS_0_LEVEL=INFO
// becomes handlers.0.level.
type OSEnvVar struct {
	prefix  string
	decoder codec.Decoder
	environ func() []string
}

// NewOSEnvVar creates an OSEnvVar source for prefix. An empty prefix
// loads the whole environment.
func NewOSEnvVar(prefix string) *OSEnvVar {
	return &OSEnvVar{
		prefix:  prefix,
		decoder: codec.EnvVarCodec{},
		environ: os.Environ,
	}
}

// Prefix returns the variable name prefix.
func (e *OSEnvVar) Prefix() string {
	return e.prefix
}

// Load reads the matching variables.
func (e *OSEnvVar) Load(_ context.Context) (map[string]any, error) {
	var lines []string
	for _, env := range e.environ() {
		if rest, ok := strings.CutPrefix(env, e.prefix); ok {
			lines = append(lines, rest)
		}
	}

	var config map[string]any
	if err := e.decoder.Decode([]byte(strings.Join(lines, "\n")), &config); err != nil {
		return nil, fmt.Errorf("failed to decode environment variables: %w", err)
	}
	return config, nil
}
