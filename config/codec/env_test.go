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

//go:build !integration

package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvVarCodec_Decode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  map[string]any
	}{
		{
			name:  "flat keys",
			input: "NAME=app\nMICROSECONDS=true",
			want:  map[string]any{"name": "app", "microseconds": "true"},
		},
		{
			name:  "nested handler keys",
			input: "HANDLERS_0_KIND=Stream\nHANDLERS_0_OPTIONS_USELOCKING=true\nHANDLERS_1_KIND=StdErr",
			want: map[string]any{
				"handlers": map[string]any{
					"0": map[string]any{
						"kind":    "Stream",
						"options": map[string]any{"uselocking": "true"},
					},
					"1": map[string]any{"kind": "StdErr"},
				},
			},
		},
		{
			name:  "value keeps equals signs and is trimmed",
			input: "HANDLERS_0_OPTIONS_IDENT = a=b ",
			want: map[string]any{
				"handlers": map[string]any{
					"0": map[string]any{"options": map[string]any{"ident": "a=b"}},
				},
			},
		},
		{
			name:  "repeated underscores collapse",
			input: "_NAME__=x\nHANDLERS__0__LEVEL=INFO",
			want: map[string]any{
				"name":     "x",
				"handlers": map[string]any{"0": map[string]any{"level": "INFO"}},
			},
		},
		{
			name:  "lines without equals and empty keys are skipped",
			input: "garbage\n=value\n___=x\n\nNAME=ok",
			want:  map[string]any{"name": "ok"},
		},
		{
			name:  "nested form wins over scalar",
			input: "HANDLERS=oops\nHANDLERS_0_KIND=Stream\nHANDLERS=again",
			want: map[string]any{
				"handlers": map[string]any{"0": map[string]any{"kind": "Stream"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got map[string]any
			require.NoError(t, EnvVarCodec{}.Decode([]byte(tt.input), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnvVarCodec_DecodeWrongTarget(t *testing.T) {
	t.Parallel()

	var v any
	err := EnvVarCodec{}.Decode([]byte("A=b"), &v)
	assert.ErrorContains(t, err, "expected *map[string]any")
}

func TestEnvVarCodec_Encode(t *testing.T) {
	t.Parallel()

	_, err := EnvVarCodec{}.Encode(map[string]any{"a": 1})
	assert.Error(t, err)
}
