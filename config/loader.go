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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/uniwue-rz/lyra-log/config/codec"
	"github.com/uniwue-rz/lyra-log/config/dumper"
	"github.com/uniwue-rz/lyra-log/config/source"
	"github.com/uniwue-rz/lyra-log/logging"
)

// Option is a functional option that configures a [Loader].
type Option func(l *Loader) error

// Loader reads a logger [Definition] from layered sources.
//
// Sources are loaded in registration order and merged, later sources
// overriding earlier ones. The merged document is checked against
// [DefinitionSchema] and decoded with exact key matching.
//
// Loader is safe for concurrent use by multiple goroutines.
type Loader struct {
	mu         sync.Mutex
	sources    []Source
	dumpers    []Dumper
	schemas    []*jsonschema.Schema
	validators []func(*Definition) error
}

// WithSource adds a source to the loader.
func WithSource(src Source) Option {
	return func(l *Loader) error {
		if src == nil {
			return ErrNilSource
		}
		l.sources = append(l.sources, src)
		return nil
	}
}

// WithFile loads the definition from a file. The format is detected from
// the extension (.yaml, .yml, .json, .toml, .env); use [WithFileAs] for
// anything else.
//
// Paths support environment variable expansion using ${VAR} or $VAR syntax.
//
// Example:
//
//	loader := config.MustNew(
//	    config.WithFile("/etc/lyra/logging.yaml"),
//	    config.WithFile("${APP_DIR}/logging.local.yaml"),
//	)
func WithFile(path string) Option {
	return func(l *Loader) error {
		path = os.ExpandEnv(path)

		format, err := detectFormat(path)
		if err != nil {
			return NewError("file-source", "detect-format", err)
		}
		return addFile(l, path, format)
	}
}

// WithFileAs loads the definition from a file with an explicit format.
//
// Example:
//
//	config.WithFileAs("/etc/lyra/logging", codec.TypeYAML)
func WithFileAs(path string, codecType codec.Type) Option {
	return func(l *Loader) error {
		return addFile(l, os.ExpandEnv(path), codecType)
	}
}

func addFile(l *Loader, path string, codecType codec.Type) error {
	decoder, err := codec.GetDecoder(codecType)
	if err != nil {
		return NewError("file-source", "get-decoder", err)
	}

	var src Source = source.NewFile(path, decoder)
	if codecType == codec.TypeEnvVar {
		src = &envStyleSource{Source: src, path: path}
	}
	l.sources = append(l.sources, src)
	return nil
}

// WithContent loads the definition from data, for example an embedded
// default configuration.
//
// Example:
//
//	//go:embed logging.yaml
//	var defaults []byte
//
//	loader := config.MustNew(config.WithContent(defaults, codec.TypeYAML))
func WithContent(data []byte, codecType codec.Type) Option {
	return func(l *Loader) error {
		decoder, err := codec.GetDecoder(codecType)
		if err != nil {
			return NewError("content-source", "get-decoder", err)
		}
		l.sources = append(l.sources, source.NewFileContent(data, decoder))
		return nil
	}
}

// WithEnv overlays environment variables starting with prefix. Names are
// matched to definition keys case-insensitively and numbered handler
// entries merge into the handler at the same position:
//
//	LYRA_NAME=api
//	LYRA_MICROSECONDS=true
//	LYRA_REDACT=password,token
//	LYRA_HANDLERS_0_LEVEL=WARNING
//	LYRA_HANDLERS_0_OPTIONS_USELOCKING=true
func WithEnv(prefix string) Option {
	return func(l *Loader) error {
		l.sources = append(l.sources, &envStyleSource{Source: source.NewOSEnvVar(prefix)})
		return nil
	}
}

// WithConsul loads the definition from a Consul key. The format is
// detected from the key's extension.
//
// If CONSUL_HTTP_ADDR is not set, this option is silently skipped, allowing
// development without Consul while requiring it in production environments.
//
// Required environment variables (production only):
//   - CONSUL_HTTP_ADDR: The address of the Consul server (e.g., "http://localhost:8500")
//   - CONSUL_HTTP_TOKEN: The access token for authentication with Consul (optional)
func WithConsul(path string) Option {
	return func(l *Loader) error {
		if os.Getenv("CONSUL_HTTP_ADDR") == "" {
			return nil
		}

		path = os.ExpandEnv(path)
		format, err := detectFormat(path)
		if err != nil {
			return NewError("consul-source", "detect-format", err)
		}
		return addConsul(l, path, format)
	}
}

// WithConsulAs loads from a Consul key with an explicit format. With a
// caster type the key holds a single value stored under the key's last
// path segment:
//
//	config.WithConsulAs("apps/api/microseconds", codec.TypeCasterBool)
//
// Like [WithConsul], it is skipped when CONSUL_HTTP_ADDR is not set.
func WithConsulAs(path string, codecType codec.Type) Option {
	return func(l *Loader) error {
		if os.Getenv("CONSUL_HTTP_ADDR") == "" {
			return nil
		}
		return addConsul(l, os.ExpandEnv(path), codecType)
	}
}

func addConsul(l *Loader, path string, codecType codec.Type) error {
	decoder, err := codec.GetDecoder(codecType)
	if err != nil {
		return NewError("consul-source", "get-decoder", err)
	}
	src, err := source.NewConsul(path, decoder, nil)
	if err != nil {
		return NewError("consul-source", "create-client", err)
	}
	l.sources = append(l.sources, src)
	return nil
}

// WithDumper adds a dumper receiving every merged document.
func WithDumper(d Dumper) Option {
	return func(l *Loader) error {
		if d == nil {
			return ErrNilDumper
		}
		l.dumpers = append(l.dumpers, d)
		return nil
	}
}

// WithFileDumper writes the effective configuration to path after every
// successful Load. The format is detected from the extension.
func WithFileDumper(path string) Option {
	return func(l *Loader) error {
		path = os.ExpandEnv(path)

		format, err := detectFormat(path)
		if err != nil {
			return NewError("file-dumper", "detect-format", err)
		}
		return addFileDumper(l, path, format)
	}
}

// WithFileDumperAs is [WithFileDumper] with an explicit format.
func WithFileDumperAs(path string, codecType codec.Type) Option {
	return func(l *Loader) error {
		return addFileDumper(l, os.ExpandEnv(path), codecType)
	}
}

func addFileDumper(l *Loader, path string, codecType codec.Type) error {
	encoder, err := codec.GetEncoder(codecType)
	if err != nil {
		return NewError("file-dumper", "get-encoder", err)
	}
	l.dumpers = append(l.dumpers, dumper.NewFile(path, encoder))
	return nil
}

// WithJSONSchema adds a schema the merged document must satisfy in
// addition to [DefinitionSchema], for example to pin allowed handler kinds
// in a deployment.
func WithJSONSchema(schema []byte) Option {
	return func(l *Loader) error {
		s, err := compileSchema(fmt.Sprintf("custom-%d.json", len(l.schemas)), schema)
		if err != nil {
			return NewError("json-schema", "compile", err)
		}
		l.schemas = append(l.schemas, s)
		return nil
	}
}

// WithValidator adds a check run on every decoded definition.
func WithValidator(fn func(*Definition) error) Option {
	return func(l *Loader) error {
		if fn == nil {
			return errors.New("validator cannot be nil")
		}
		l.validators = append(l.validators, fn)
		return nil
	}
}

// New creates a loader. Errors from all options are joined.
func New(options ...Option) (*Loader, error) {
	l := &Loader{}

	var errs []error
	for _, option := range options {
		if option == nil {
			continue
		}
		if err := option(l); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return l, nil
}

// MustNew creates a loader or panics on error.
// Use this in main() or initialization code where panic is acceptable.
func MustNew(options ...Option) *Loader {
	l, err := New(options...)
	if err != nil {
		panic(fmt.Sprintf("config: failed to create loader: %v", err))
	}
	return l
}

// Paths returns the local files the loader reads, in load order. Content,
// environment and Consul sources are not included.
func (l *Loader) Paths() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	var paths []string
	for _, src := range l.sources {
		var p string
		switch s := src.(type) {
		case *source.File:
			p = s.Path()
		case *envStyleSource:
			p = s.path
		}
		if p != "" {
			paths = append(paths, filepath.Clean(p))
		}
	}
	return paths
}

// Load reads every source and returns the decoded definition.
//
// Errors:
//   - Returns [ErrNilContext] if ctx is nil
//   - Returns [*Error] if a source fails to load or merge
//   - Returns [*Error] if schema validation, decoding or a validator fails
//   - Returns [*Error] if a dumper fails
func (l *Loader) Load(ctx context.Context) (*Definition, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	doc, err := l.merge(ctx)
	if err != nil {
		return nil, err
	}

	base, err := definitionSchema()
	if err != nil {
		return nil, NewError("json-schema", "compile", err)
	}
	for _, s := range append([]*jsonschema.Schema{base}, l.schemas...) {
		if err = validateSchema(s, doc); err != nil {
			return nil, NewError("json-schema", "validate", err)
		}
	}

	def, err := decodeDefinition(doc)
	if err != nil {
		return nil, NewError("definition", "decode", err)
	}

	for i, fn := range l.validators {
		if err = runValidator(fn, def); err != nil {
			return nil, NewError(fmt.Sprintf("custom-validator[%d]", i), "validate", err)
		}
	}

	for i, d := range l.dumpers {
		if err = d.Dump(ctx, doc); err != nil {
			return nil, NewError(fmt.Sprintf("dumper[%d]", i), "dump", err)
		}
	}
	return def, nil
}

// Logger loads the definition and builds a logger from it.
//
// Example:
//
//	loader := config.MustNew(config.WithFile("logging.yaml"), config.WithEnv("LYRA_"))
//	logger, err := loader.Logger(ctx)
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
func (l *Loader) Logger(ctx context.Context, opts ...logging.Option) (*logging.Logger, error) {
	def, err := l.Load(ctx)
	if err != nil {
		return nil, err
	}
	return Build(def, opts...)
}

// merge loads the sources in order and merges their documents.
func (l *Loader) merge(ctx context.Context) (map[string]any, error) {
	if len(l.sources) == 0 {
		return nil, NewError("loader", "load", ErrNoSources)
	}

	doc := make(map[string]any)
	for i, src := range l.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		conf, err := src.Load(ctx)
		if err != nil {
			return nil, NewError(fmt.Sprintf("source[%d]", i), "load", err)
		}
		if conf == nil {
			continue
		}

		if err = mergeDocuments(doc, normalize(conf).(map[string]any)); err != nil {
			return nil, NewError(fmt.Sprintf("source[%d]", i), "merge", err)
		}
	}
	return doc, nil
}

func runValidator(fn func(*Definition) error, def *Definition) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("validator panic: %v", r)
		}
	}()
	return fn(def)
}

// envStyleSource restores canonical keys on documents whose names were
// lowercased, such as the environment or a .env file.
type envStyleSource struct {
	Source
	path string
}

func (s *envStyleSource) Load(ctx context.Context) (map[string]any, error) {
	conf, err := s.Source.Load(ctx)
	if err != nil || conf == nil {
		return conf, err
	}
	return canonicalize(conf), nil
}
