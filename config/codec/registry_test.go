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

func TestGetEncoder_UnregisteredType(t *testing.T) {
	t.Parallel()

	encoder, err := GetEncoder(Type("unknown"))
	require.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, encoder)
	assert.Contains(t, err.Error(), `"unknown"`)
}

func TestGetDecoder_UnregisteredType(t *testing.T) {
	t.Parallel()

	decoder, err := GetDecoder(Type("unknown"))
	require.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, decoder)
}

func TestBuiltinCodecsRegistered(t *testing.T) {
	t.Parallel()

	for _, typ := range []Type{TypeJSON, TypeYAML, TypeTOML, TypeEnvVar} {
		_, err := GetDecoder(typ)
		require.NoError(t, err, typ)
		_, err = GetEncoder(typ)
		require.NoError(t, err, typ)
	}

	types := DecoderTypes()
	assert.Contains(t, types, TypeYAML)
	assert.Contains(t, types, TypeCasterBool)
	assert.IsNonDecreasing(t, types)
}

type rawCodec struct{}

func (rawCodec) Decode(data []byte, v any) error {
	*(v.(*map[string]any)) = map[string]any{"raw": string(data)}
	return nil
}

func TestRegisterDecoder(t *testing.T) {
	t.Parallel()

	typ := Type("test-raw")
	RegisterDecoder(typ, rawCodec{})

	dec, err := GetDecoder(typ)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, dec.Decode([]byte("x"), &m))
	assert.Equal(t, map[string]any{"raw": "x"}, m)
}
