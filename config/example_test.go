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

package config_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/uniwue-rz/lyra-log/config"
	"github.com/uniwue-rz/lyra-log/config/codec"
	"github.com/uniwue-rz/lyra-log/handler"
)

var exampleYAML = []byte(`
name: api
microseconds: true
redact: [password]
handlers:
  - kind: StdErr
    level: ERROR
  - kind: Syslog
    level: WARNING
    options:
      ident: api
      facility: 16
`)

// ExampleLoader_Load demonstrates loading a definition from embedded content.
func ExampleLoader_Load() {
	loader := config.MustNew(config.WithContent(exampleYAML, codec.TypeYAML))

	def, err := loader.Load(context.Background())
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(def.Name, def.Microseconds, def.Redact)
	for _, h := range def.Handlers {
		fmt.Println(h.Kind, h.Level)
	}
	// Output:
	// api true [password]
	// StdErr ERROR
	// Syslog WARNING
}

// ExampleNew demonstrates layering sources, later ones overriding earlier ones.
func ExampleNew() {
	override := []byte(`{"handlers": [{"level": "CRITICAL"}]}`)

	loader, err := config.New(
		config.WithContent(exampleYAML, codec.TypeYAML),
		config.WithContent(override, codec.TypeJSON),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	def, err := loader.Load(context.Background())
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(def.Handlers[0].Kind, def.Handlers[0].Level)
	// Output: StdErr CRITICAL
}

// ExampleLoader_Logger demonstrates how factory errors surface.
func ExampleLoader_Logger() {
	loader := config.MustNew(config.WithContent([]byte(`
name: api
handlers:
  - kind: Mail
`), codec.TypeYAML))

	_, err := loader.Logger(context.Background())

	var notSupported *handler.HandlerNotSupportedError
	if errors.As(err, &notSupported) {
		fmt.Println("unsupported kind:", notSupported.Kind)
	}
	fmt.Println(err)
	// Output:
	// unsupported kind: Mail
	// config error in definition.handlers[0] during build: the given handler is not supported: "Mail"
}

// ExampleWithValidator demonstrates a deployment rule on top of the schema.
func ExampleWithValidator() {
	loader := config.MustNew(
		config.WithContent(exampleYAML, codec.TypeYAML),
		config.WithValidator(func(def *config.Definition) error {
			if !def.Microseconds {
				return errors.New("microsecond timestamps are required")
			}
			return nil
		}),
	)

	_, err := loader.Load(context.Background())
	fmt.Println(err == nil)
	// Output: true
}

// ExampleBuild demonstrates building a logger from a definition value.
func ExampleBuild() {
	logger, err := config.Build(&config.Definition{
		Name:     "worker",
		Handlers: []config.HandlerDefinition{{Kind: "StdErr", Level: "WARNING"}},
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer logger.Close()

	fmt.Println(logger.Name(), logger.Handlers()[0])
	// Output: worker StdErr(WARNING)
}
