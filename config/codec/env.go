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

// Package codec provides functionality for encoding and decoding data.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

// TypeEnvVar is the codec type for KEY=value lines.
const TypeEnvVar Type = "env_var"

func init() {
	RegisterEncoder(TypeEnvVar, EnvVarCodec{})
	RegisterDecoder(TypeEnvVar, EnvVarCodec{})
}

// EnvVarCodec reads environment style KEY=value lines into a nested map.
// Keys are lowercased and every underscore opens a nesting level, so
// HANDLERS_0_LEVEL=INFO becomes {"handlers": {"0": {"level": "INFO"}}}.
type EnvVarCodec struct{}

// Encode is not supported; the environment is read-only.
func (EnvVarCodec) Encode(_ any) ([]byte, error) {
	return nil, errors.New("encoding to environment variables is not supported")
}

// Decode parses data into v, which must be a *map[string]any. Lines without
// "=" and keys made only of underscores are skipped. A key that is both a
// value and a prefix of another key keeps the nested form.
func (EnvVarCodec) Decode(data []byte, v any) error {
	ptr, ok := v.(*map[string]any)
	if !ok {
		return fmt.Errorf("EnvVarCodec.Decode: expected *map[string]any, got %T", v)
	}

	conf := make(map[string]any)
	for line := range bytes.SplitSeq(data, []byte("\n")) {
		key, value, found := strings.Cut(string(line), "=")
		if !found {
			continue
		}
		parts := strings.FieldsFunc(strings.ToLower(strings.TrimSpace(key)), func(r rune) bool {
			return r == '_'
		})
		if len(parts) == 0 {
			continue
		}

		current := conf
		for _, part := range parts[:len(parts)-1] {
			next, isMap := current[part].(map[string]any)
			if !isMap {
				next = make(map[string]any)
				current[part] = next
			}
			current = next
		}

		last := parts[len(parts)-1]
		if _, nested := current[last].(map[string]any); nested {
			continue
		}
		current[last] = strings.TrimSpace(value)
	}

	*ptr = conf
	return nil
}
