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
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniwue-rz/lyra-log/config/codec"
	"github.com/uniwue-rz/lyra-log/logging"
)

type watchFixture struct {
	configPath string
	logPath    string
	loader     *Loader
	logger     *logging.Logger
}

func newWatchFixture(t *testing.T) *watchFixture {
	t.Helper()

	f := &watchFixture{
		configPath: filepath.Join(t.TempDir(), "logging.yaml"),
		logPath:    filepath.Join(t.TempDir(), "app.log"),
	}
	f.write(t, "app", "INFO")
	f.loader = TestLoader(t, WithFile(f.configPath))

	logger, err := f.loader.Logger(t.Context())
	require.NoError(t, err)
	t.Cleanup(func() { _ = logger.Close() })
	f.logger = logger
	return f
}

func (f *watchFixture) write(t *testing.T, name, level string) {
	t.Helper()
	content := fmt.Sprintf("name: %s\nhandlers:\n  - kind: Stream\n    level: %s\n    options:\n      stream: %s\n",
		name, level, f.logPath)
	require.NoError(t, os.WriteFile(f.configPath, []byte(content), 0o600))
}

func TestNewWatcher_Errors(t *testing.T) {
	t.Parallel()

	logger := logging.MustNew("app")
	loader := TestLoader(t, WithSource(TestSource(stdErrDoc("app", "INFO"))))

	_, err := NewWatcher(nil, logger)
	assert.ErrorIs(t, err, ErrNilLoader)

	_, err = NewWatcher(loader, nil)
	assert.ErrorIs(t, err, ErrNilLogger)

	_, err = NewWatcher(loader, logger)
	assert.ErrorIs(t, err, ErrNoWatchPaths)

	_, err = NewWatcher(loader, logger, WithWatchPaths(filepath.Join(t.TempDir(), "missing", "logging.yaml")))
	var cfgErr *Error
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "watcher", cfgErr.Source)
}

func TestNewWatcher_Paths(t *testing.T) {
	t.Parallel()

	f := newWatchFixture(t)
	w, err := NewWatcher(f.loader, f.logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	assert.Equal(t, []string{f.configPath}, w.Paths())

	other := filepath.Join(filepath.Dir(f.configPath), "other.yaml")
	w2, err := NewWatcher(f.loader, f.logger, WithWatchPaths(other+"/"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w2.Close() })
	assert.Equal(t, []string{other}, w2.Paths())
}

func TestWatcher_Reload(t *testing.T) {
	t.Parallel()

	f := newWatchFixture(t)
	var reloaded *Definition
	w, err := NewWatcher(f.loader, f.logger, WithReloadHandler(func(def *Definition) { reloaded = def }))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	before := f.logger.Handlers()
	require.Len(t, before, 1)
	assert.Equal(t, logging.LevelInfo, before[0].Level())

	f.write(t, "api", "ERROR")
	require.NoError(t, w.Reload(t.Context()))

	after := f.logger.Handlers()
	require.Len(t, after, 1)
	assert.NotSame(t, before[0], after[0])
	assert.Equal(t, logging.LevelError, after[0].Level())
	assert.Equal(t, "api", f.logger.Name())
	require.NotNil(t, reloaded)
	assert.Equal(t, "api", reloaded.Name)

	f.logger.Warning("below threshold")
	f.logger.Error("written")
	data, err := os.ReadFile(f.logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "api.ERROR: written")
	assert.NotContains(t, string(data), "below threshold")
}

func TestWatcher_ReloadAppliesMicroseconds(t *testing.T) {
	t.Parallel()

	f := newWatchFixture(t)
	w, err := NewWatcher(f.loader, f.logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	assert.False(t, f.logger.Engine().Microseconds())

	content := fmt.Sprintf("name: app\nmicroseconds: true\nhandlers:\n  - kind: Stream\n    options:\n      stream: %s\n", f.logPath)
	require.NoError(t, os.WriteFile(f.configPath, []byte(content), 0o600))
	require.NoError(t, w.Reload(t.Context()))
	assert.True(t, f.logger.Engine().Microseconds())
}

func TestWatcher_ReloadFailureKeepsHandlers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "invalid yaml", content: "name: [app\n"},
		{name: "schema violation", content: "handlers: []\n"},
		{name: "unknown kind", content: "name: api\nhandlers:\n  - kind: Mail\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newWatchFixture(t)
			w, err := NewWatcher(f.loader, f.logger)
			require.NoError(t, err)
			t.Cleanup(func() { _ = w.Close() })

			before := f.logger.Handlers()
			require.NoError(t, os.WriteFile(f.configPath, []byte(tt.content), 0o600))

			require.Error(t, w.Reload(t.Context()))
			assert.Equal(t, before, f.logger.Handlers())
			assert.Equal(t, "app", f.logger.Name())

			f.logger.Info("still working")
			data, err := os.ReadFile(f.logPath)
			require.NoError(t, err)
			assert.Contains(t, string(data), "app.INFO: still working")
		})
	}
}

func TestWatcher_ReloadAfterLoggerClosed(t *testing.T) {
	t.Parallel()

	f := newWatchFixture(t)
	w, err := NewWatcher(f.loader, f.logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	f.write(t, "renamed", "DEBUG")
	require.NoError(t, f.logger.Close())
	err = w.Reload(t.Context())
	require.ErrorIs(t, err, logging.ErrLoggerClosed)
	assert.Equal(t, "app", f.logger.Name())
	assert.Equal(t, "app", f.logger.Engine().Name())
}

func TestWatcher_WatchReloadsOnChange(t *testing.T) {
	t.Parallel()

	f := newWatchFixture(t)
	var reloads atomic.Int32
	w, err := NewWatcher(f.loader, f.logger,
		WithDebounce(20*time.Millisecond),
		WithReloadHandler(func(*Definition) { reloads.Add(1) }),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
		_ = w.Close()
	})

	f.write(t, "api", "WARNING")

	require.Eventually(t, func() bool {
		return reloads.Load() > 0 && f.logger.Name() == "api"
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, logging.LevelWarning, f.logger.Handlers()[0].Level())
}

func TestWatcher_WatchReportsErrors(t *testing.T) {
	t.Parallel()

	f := newWatchFixture(t)
	errs := make(chan error, 8)
	w, err := NewWatcher(f.loader, f.logger,
		WithDebounce(20*time.Millisecond),
		WithReloadErrorHandler(func(err error) { errs <- err }),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
		_ = w.Close()
	})

	require.NoError(t, os.WriteFile(f.configPath, []byte("name: ''\n"), 0o600))

	select {
	case err := <-errs:
		var cfgErr *Error
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "json-schema", cfgErr.Source)
	case <-time.After(5 * time.Second):
		t.Fatal("reload error was not reported")
	}
	assert.Equal(t, "app", f.logger.Name())
}

func TestWatcher_WatchStops(t *testing.T) {
	t.Parallel()

	t.Run("context", func(t *testing.T) {
		t.Parallel()

		f := newWatchFixture(t)
		w, err := NewWatcher(f.loader, f.logger)
		require.NoError(t, err)
		t.Cleanup(func() { _ = w.Close() })

		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		assert.ErrorIs(t, w.Watch(ctx), context.Canceled)
	})

	t.Run("close", func(t *testing.T) {
		t.Parallel()

		f := newWatchFixture(t)
		w, err := NewWatcher(f.loader, f.logger)
		require.NoError(t, err)

		done := make(chan error, 1)
		go func() { done <- w.Watch(context.Background()) }()

		require.NoError(t, w.Close())
		require.NoError(t, w.Close())

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("Watch did not return after Close")
		}
	})

	t.Run("nil context", func(t *testing.T) {
		t.Parallel()

		f := newWatchFixture(t)
		w, err := NewWatcher(f.loader, f.logger)
		require.NoError(t, err)
		t.Cleanup(func() { _ = w.Close() })

		assert.ErrorIs(t, w.Watch(nil), ErrNilContext) //nolint:staticcheck // nil context is the case under test
	})
}

func TestWithDebounce(t *testing.T) {
	t.Parallel()

	w := &Watcher{debounce: DefaultDebounce}
	WithDebounce(time.Microsecond)(w)
	assert.Equal(t, DefaultDebounce, w.debounce)
	WithDebounce(2 * time.Second)(w)
	assert.Equal(t, 2*time.Second, w.debounce)
}

func TestWatcher_EnvFileSource(t *testing.T) {
	t.Parallel()

	path := writeTestFile(t, "logging.env", []byte("NAME=app\nHANDLERS_0_KIND=StdOut\n"))
	loader := TestLoader(t, WithFileAs(path, codec.TypeEnvVar))
	logger, err := loader.Logger(t.Context())
	require.NoError(t, err)
	t.Cleanup(func() { _ = logger.Close() })

	w, err := NewWatcher(loader, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	assert.Equal(t, []string{path}, w.Paths())
}
