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

package config

import (
	"context"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/uniwue-rz/lyra-log/logging"
)

// DefaultDebounce is how long a watcher waits after the last file event
// before reloading.
const DefaultDebounce = 500 * time.Millisecond

// WatcherOption configures a [Watcher].
type WatcherOption func(*Watcher)

// WithDebounce sets the quiet period before a reload. Values below one
// millisecond are ignored.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d >= time.Millisecond {
			w.debounce = d
		}
	}
}

// WithWatchPaths replaces the watched files. By default the watcher
// follows [Loader.Paths].
func WithWatchPaths(paths ...string) WatcherOption {
	return func(w *Watcher) {
		w.paths = w.paths[:0]
		for _, p := range paths {
			w.paths = append(w.paths, filepath.Clean(p))
		}
	}
}

// WithReloadErrorHandler sets a callback for failed reloads. Failures are
// also logged at ERROR through the watched logger.
func WithReloadErrorHandler(fn func(error)) WatcherOption {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// WithReloadHandler sets a callback run after every successful reload
// with the definition now in effect.
func WithReloadHandler(fn func(*Definition)) WatcherOption {
	return func(w *Watcher) {
		w.onReload = fn
	}
}

// Watcher reloads a running [logging.Logger] when its configuration files
// change.
//
// Each reload loads the definition, builds fresh handlers and swaps them in
// with [logging.Logger.SetHandlers]; the handlers it replaced are closed
// afterwards. When loading or building fails the logger keeps its current
// handlers. Redaction keys are fixed when the logger is built and are not
// changed by a reload.
type Watcher struct {
	loader   *Loader
	logger   *logging.Logger
	paths    []string
	debounce time.Duration
	onError  func(error)
	onReload func(*Definition)

	reloadMu  sync.Mutex
	fsw       *fsnotify.Watcher
	closeOnce sync.Once
}

// NewWatcher creates a watcher for the files of loader.
//
// Example:
//
//	loader := config.MustNew(config.WithFile("/etc/lyra/logging.yaml"))
//	logger, _ := loader.Logger(ctx)
//
//	w, err := config.NewWatcher(loader, logger, config.WithDebounce(time.Second))
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//	go w.Watch(ctx)
func NewWatcher(loader *Loader, logger *logging.Logger, opts ...WatcherOption) (*Watcher, error) {
	if loader == nil {
		return nil, ErrNilLoader
	}
	if logger == nil {
		return nil, ErrNilLogger
	}

	w := &Watcher{
		loader:   loader,
		logger:   logger,
		paths:    loader.Paths(),
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(w)
	}
	if len(w.paths) == 0 {
		return nil, ErrNoWatchPaths
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, NewError("watcher", "create", err)
	}

	// Directories are watched so files replaced by rename are still seen.
	var dirs []string
	for _, p := range w.paths {
		if dir := filepath.Dir(p); !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}
	for _, dir := range dirs {
		if err = fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, NewError("watcher", "add", err)
		}
	}
	w.fsw = fsw

	return w, nil
}

// Paths returns the watched files.
func (w *Watcher) Paths() []string {
	return slices.Clone(w.paths)
}

// Watch reloads the logger on file changes until ctx is done or the
// watcher is closed. It returns ctx.Err() when the context ends and nil
// after [Watcher.Close].
func (w *Watcher) Watch(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}

	var timer *time.Timer
	var timerC <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	w.logger.Debug("configuration watcher started", "paths", w.paths, "debounce", w.debounce.String())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			if err := w.Reload(ctx); err != nil {
				w.reportError(err)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warning("configuration watcher error", "error", err.Error())
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	return slices.Contains(w.paths, filepath.Clean(event.Name))
}

func (w *Watcher) reportError(err error) {
	w.logger.Error("configuration reload failed", "error", err.Error())
	if w.onError != nil {
		w.onError(err)
	}
}

// Reload loads the definition once and applies it to the logger. On error
// the logger is left unchanged.
func (w *Watcher) Reload(ctx context.Context) error {
	w.reloadMu.Lock()
	defer w.reloadMu.Unlock()

	def, err := w.loader.Load(ctx)
	if err != nil {
		return err
	}

	hs, err := BuildHandlers(def)
	if err != nil {
		return err
	}

	previousName := w.logger.Name()
	if err = w.logger.SetName(def.Name); err != nil {
		_ = closeHandlers(hs)
		return NewFieldError("watcher", "name", "apply", err)
	}
	previous := w.logger.Handlers()
	if err = w.logger.SetHandlers(hs...); err != nil {
		_ = w.logger.SetName(previousName)
		_ = closeHandlers(hs)
		return NewError("watcher", "swap", err)
	}
	w.logger.Engine().UseMicroseconds(def.Microseconds)

	if err = closeHandlers(previous); err != nil {
		w.logger.Warning("closing replaced handlers failed", "error", err.Error())
	}

	w.logger.Info("configuration reloaded", "handlers", len(hs))
	if w.onReload != nil {
		w.onReload(def)
	}
	return nil
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		err = w.fsw.Close()
	})
	return err
}
