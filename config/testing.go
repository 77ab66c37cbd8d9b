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

package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// MockSource is a test implementation of the Source interface.
type MockSource struct {
	mu   sync.Mutex
	conf map[string]any
	err  error
}

// Load implements the Source interface for testing.
func (m *MockSource) Load(_ context.Context) (map[string]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.conf, m.err //nolint:nilnil // Test mock intentionally returns (nil, nil) for certain test cases
}

// Set replaces the document returned by later loads.
func (m *MockSource) Set(conf map[string]any, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conf, m.err = conf, err
}

// MockDumper is a test implementation of the Dumper interface.
type MockDumper struct {
	mu    sync.Mutex
	calls int
	doc   map[string]any
	err   error
}

// Dump implements the Dumper interface for testing.
func (m *MockDumper) Dump(_ context.Context, doc map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.doc = doc
	return m.err
}

// Calls returns how often Dump was called.
func (m *MockDumper) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Doc returns the most recently dumped document.
func (m *MockDumper) Doc() map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.doc
}

// TestSource creates a mock source returning conf.
func TestSource(conf map[string]any) *MockSource {
	return &MockSource{conf: conf}
}

// TestSourceWithError creates a mock source that returns an error on Load.
func TestSourceWithError(err error) *MockSource {
	return &MockSource{err: err}
}

// TestDumper creates a mock dumper for testing.
func TestDumper() *MockDumper {
	return &MockDumper{}
}

// TestDumperWithError creates a mock dumper that returns an error on Dump.
func TestDumperWithError(err error) *MockDumper {
	return &MockDumper{err: err}
}

// TestLoader creates a loader with the given options.
// It fails the test if creation fails.
func TestLoader(t *testing.T, opts ...Option) *Loader {
	t.Helper()
	l, err := New(opts...)
	require.NoError(t, err, "failed to create test loader")
	return l
}

// TestDefinition loads conf through a loader and returns the definition.
func TestDefinition(t *testing.T, conf map[string]any) *Definition {
	t.Helper()
	def, err := TestLoader(t, WithSource(TestSource(conf))).Load(t.Context())
	require.NoError(t, err, "failed to load test definition")
	return def
}

// TestYAMLFile creates a temporary YAML file with the given content.
// The file is automatically cleaned up when the test completes.
func TestYAMLFile(t *testing.T, content []byte) string {
	t.Helper()
	return writeTestFile(t, "logging.yaml", content)
}

// TestJSONFile creates a temporary JSON file with the given content.
// The file is automatically cleaned up when the test completes.
func TestJSONFile(t *testing.T, content []byte) string {
	t.Helper()
	return writeTestFile(t, "logging.json", content)
}

// TestTOMLFile creates a temporary TOML file with the given content.
// The file is automatically cleaned up when the test completes.
func TestTOMLFile(t *testing.T, content []byte) string {
	t.Helper()
	return writeTestFile(t, "logging.toml", content)
}

func writeTestFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	filePath := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(filePath, content, 0o600), "failed to create test file %s", name)
	return filePath
}
