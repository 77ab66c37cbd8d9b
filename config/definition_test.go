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

package config

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniwue-rz/lyra-log/engine"
	"github.com/uniwue-rz/lyra-log/formatter"
	"github.com/uniwue-rz/lyra-log/handler"
	"github.com/uniwue-rz/lyra-log/logging"
)

func TestHandlerDefinition_Build(t *testing.T) {
	t.Parallel()

	t.Run("formatter", func(t *testing.T) {
		t.Parallel()
		h, err := HandlerDefinition{Kind: "StdOut", Level: "NOTICE", Formatter: "json"}.Build()
		require.NoError(t, err)
		t.Cleanup(func() { _ = h.Close() })

		assert.Equal(t, handler.KindStdOut, h.Kind())
		assert.Equal(t, logging.LevelNotice, h.Level())
		assert.IsType(t, &formatter.Structured{}, h.Formatter())
	})

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		h, err := HandlerDefinition{Kind: "StdErr"}.Build()
		require.NoError(t, err)
		t.Cleanup(func() { _ = h.Close() })

		assert.Equal(t, logging.LevelDebug, h.Level())
		assert.True(t, h.Bubbles())
	})

	t.Run("unknown formatter", func(t *testing.T) {
		t.Parallel()
		_, err := HandlerDefinition{Kind: "StdErr", Formatter: "xml"}.Build()
		assert.ErrorIs(t, err, formatter.ErrUnknownFormatter)
	})
}

func TestBuildHandlers_ClosesBuiltHandlersOnError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	notDir := filepath.Join(dir, "regular")
	require.NoError(t, os.WriteFile(notDir, nil, 0o600))

	def := &Definition{
		Name: "app",
		Handlers: []HandlerDefinition{
			{Kind: "Stream", Options: map[string]any{"stream": filepath.Join(dir, "app.log")}},
			{Kind: "Stream", Options: map[string]any{"stream": filepath.Join(notDir, "app.log")}},
		},
	}

	var built []*handler.Handler
	hs, err := buildHandlers(def, func(hd HandlerDefinition) (*handler.Handler, error) {
		h, err := hd.Build()
		if err == nil {
			built = append(built, h)
		}
		return h, err
	})
	require.Error(t, err)
	assert.Nil(t, hs)

	var pathErr *fs.PathError
	assert.ErrorAs(t, err, &pathErr)

	var cfgErr *Error
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "handlers[1]", cfgErr.Field)

	require.Len(t, built, 1)
	writeErr := built[0].Sink().Write(context.Background(), engine.Record{}, []byte("late\n"))
	assert.ErrorIs(t, writeErr, handler.ErrSinkClosed)
}

func TestBuildHandlers_PublicPathFailsOnUnopenableStream(t *testing.T) {
	t.Parallel()

	notDir := filepath.Join(t.TempDir(), "regular")
	require.NoError(t, os.WriteFile(notDir, nil, 0o600))

	hs, err := BuildHandlers(&Definition{
		Name: "app",
		Handlers: []HandlerDefinition{
			{Kind: "StdErr"},
			{Kind: "Stream", Options: map[string]any{"stream": filepath.Join(notDir, "app.log")}},
		},
	})
	require.Error(t, err)
	assert.Nil(t, hs)
}

func TestBuild(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	def := &Definition{
		Name:         "api",
		Microseconds: true,
		Redact:       []string{"password"},
		Handlers: []HandlerDefinition{
			{Kind: "StdErr", Level: "ERROR"},
		},
	}

	logger, err := Build(def)
	require.NoError(t, err)
	t.Cleanup(func() { _ = logger.Close() })

	assert.Equal(t, "api", logger.Name())
	assert.True(t, logger.Engine().Microseconds())
	require.Len(t, logger.Handlers(), 1)
	assert.Equal(t, handler.KindStdErr, logger.Handlers()[0].Kind())

	h, err := handler.NewStream(logging.LevelDebug, handler.StreamOptions{Stream: buf, Bubble: true},
		formatter.NewLine(formatter.WithoutTime()))
	require.NoError(t, err)
	require.NoError(t, logger.SetHandlers(h))

	logger.Info("login", "user", "ada", "password", "hunter2")
	assert.Equal(t, "api.INFO: login {\"password\":\"***REDACTED***\",\"user\":\"ada\"}\n", buf.String())
}

func TestBuild_WithoutRedaction(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	h, err := handler.NewStream(logging.LevelDebug, handler.StreamOptions{Stream: buf, Bubble: true},
		formatter.NewLine(formatter.WithoutTime()))
	require.NoError(t, err)

	logger, err := Build(&Definition{Name: "app"}, logging.WithHandlers(h))
	require.NoError(t, err)
	t.Cleanup(func() { _ = logger.Close() })

	logger.Info("login", "password", "hunter2")
	assert.Equal(t, "app.INFO: login {\"password\":\"hunter2\"}\n", buf.String())
}

func TestBuild_Errors(t *testing.T) {
	t.Parallel()

	_, err := Build(nil)
	var cfgErr *Error
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "definition", cfgErr.Source)

	_, err = Build(&Definition{Handlers: []HandlerDefinition{{Kind: "StdErr"}}})
	require.ErrorIs(t, err, logging.ErrEmptyName)

	_, err = Build(&Definition{Name: "app", Handlers: []HandlerDefinition{{Kind: "Mail"}}})
	require.ErrorIs(t, err, handler.ErrHandlerNotSupported)
}

func TestDecodeDefinition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doc     map[string]any
		want    *Definition
		wantErr bool
	}{
		{
			name: "full",
			doc: map[string]any{
				"name":         "app",
				"microseconds": true,
				"redact":       []any{"token"},
				"handlers": []any{
					map[string]any{"kind": "Syslog", "level": "ALERT", "options": map[string]any{"ident": "app"}},
				},
			},
			want: &Definition{
				Name:         "app",
				Microseconds: true,
				Redact:       []string{"token"},
				Handlers: []HandlerDefinition{
					{Kind: "Syslog", Level: "ALERT", Options: map[string]any{"ident": "app"}},
				},
			},
		},
		{
			name: "redact from string",
			doc:  map[string]any{"name": "app", "redact": "password,token"},
			want: &Definition{Name: "app", Redact: []string{"password", "token"}},
		},
		{
			name: "weak boolean",
			doc:  map[string]any{"name": "app", "microseconds": "true"},
			want: &Definition{Name: "app", Microseconds: true},
		},
		{
			name:    "unknown key",
			doc:     map[string]any{"name": "app", "level": "INFO"},
			wantErr: true,
		},
		{
			name:    "keys are case-sensitive",
			doc:     map[string]any{"Name": "app"},
			wantErr: true,
		},
		{
			name:    "unknown handler key",
			doc:     map[string]any{"name": "app", "handlers": []any{map[string]any{"kind": "StdErr", "bubble": true}}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			def, err := decodeDefinition(tt.doc)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, def)
		})
	}
}

func TestCloseHandlers(t *testing.T) {
	t.Parallel()

	h, err := handler.NewStdOut(logging.LevelInfo, nil)
	require.NoError(t, err)
	assert.NoError(t, closeHandlers([]*handler.Handler{h}))
	assert.NoError(t, closeHandlers(nil))
}
