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

package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniwue-rz/lyra-log/handler"
)

func TestError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without field",
			err:  NewError("source[0]", "load", errors.New("file not found")),
			want: "config error in source[0] during load: file not found",
		},
		{
			name: "with field",
			err:  NewFieldError("definition", "handlers[2]", "build", errors.New("bad level")),
			want: "config error in definition.handlers[2] during build: bad level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := &handler.LogLevelNotExistsError{Level: "VERBOSE"}
	err := NewFieldError("definition", "handlers[0]", "build", cause)

	assert.ErrorIs(t, err, handler.ErrLevelNotExists)
	var target *handler.LogLevelNotExistsError
	require.ErrorAs(t, err, &target)
	assert.Same(t, cause, target)
}
