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
	"errors"
	"fmt"

	"github.com/go-viper/mapstructure/v2"

	"github.com/uniwue-rz/lyra-log/formatter"
	"github.com/uniwue-rz/lyra-log/handler"
	"github.com/uniwue-rz/lyra-log/logging"
)

// Definition describes a logger in configuration text.
//
//	name: app
//	microseconds: false
//	redact: [password, token]
//	handlers:
//	  - kind: Stream
//	    level: INFO
//	    formatter: json
//	    options:
//	      stream: /var/log/app.log
//	      useLocking: true
type Definition struct {
	Name         string              `config:"name"`
	Microseconds bool                `config:"microseconds"`
	Redact       []string            `config:"redact"`
	Handlers     []HandlerDefinition `config:"handlers"`
}

// HandlerDefinition is one entry of [Definition.Handlers]. Kind, Level and
// Options are passed to [handler.New] unchanged; Formatter names a
// built-in formatter (see [formatter.Parse]).
type HandlerDefinition struct {
	Kind      string         `config:"kind"`
	Level     string         `config:"level"`
	Formatter string         `config:"formatter"`
	Options   map[string]any `config:"options"`
}

// Build creates the handler through the factory.
func (hd HandlerDefinition) Build() (*handler.Handler, error) {
	f, err := formatter.Parse(hd.Formatter)
	if err != nil {
		return nil, err
	}
	return handler.New(hd.Kind, hd.Level, hd.Options, f)
}

// decodeDefinition decodes a merged document. Field names match exactly
// and unknown fields are rejected.
func decodeDefinition(doc map[string]any) (*Definition, error) {
	def := &Definition{}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "config",
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		MatchName:        func(mapKey, fieldName string) bool { return mapKey == fieldName },
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		Result:           def,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err = dec.Decode(doc); err != nil {
		return nil, err
	}
	return def, nil
}

// BuildHandlers creates every handler of def in order. When one fails, the
// handlers already created are closed and the error names its index.
func BuildHandlers(def *Definition) ([]*handler.Handler, error) {
	return buildHandlers(def, HandlerDefinition.Build)
}

func buildHandlers(def *Definition, build func(HandlerDefinition) (*handler.Handler, error)) ([]*handler.Handler, error) {
	hs := make([]*handler.Handler, 0, len(def.Handlers))
	for i, hd := range def.Handlers {
		h, err := build(hd)
		if err != nil {
			closeHandlers(hs)
			return nil, NewFieldError("definition", fmt.Sprintf("handlers[%d]", i), "build", err)
		}
		hs = append(hs, h)
	}
	return hs, nil
}

// Build creates a logger from def. opts are applied after the options
// derived from the definition.
//
// Example:
//
//	logger, err := config.Build(def, logging.WithErrorHandler(reportSinkFailure))
func Build(def *Definition, opts ...logging.Option) (*logging.Logger, error) {
	if def == nil {
		return nil, NewError("definition", "build", errors.New("definition is nil"))
	}

	hs, err := BuildHandlers(def)
	if err != nil {
		return nil, err
	}

	loggerOpts := []logging.Option{
		logging.WithHandlers(hs...),
		logging.WithMicrosecondTimestamps(def.Microseconds),
	}
	if len(def.Redact) > 0 {
		loggerOpts = append(loggerOpts, logging.WithRedaction(def.Redact...))
	}

	l, err := logging.New(def.Name, append(loggerOpts, opts...)...)
	if err != nil {
		closeHandlers(hs)
		return nil, NewError("definition", "build", err)
	}
	return l, nil
}

func closeHandlers(hs []*handler.Handler) error {
	var errs []error
	for _, h := range hs {
		if err := h.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
