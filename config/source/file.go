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

package source

import (
	"context"
	"fmt"
	"os"

	"github.com/uniwue-rz/lyra-log/config/codec"
)

// File loads a logger definition from a file or from in-memory content.
type File struct {
	path    string
	data    []byte
	decoder codec.Decoder
}

// NewFile creates a File source that reads path on every Load, so edits to
// the file are picked up on reload.
func NewFile(path string, decoder codec.Decoder) *File {
	return &File{
		path:    path,
		decoder: decoder,
	}
}

// NewFileContent creates a File source over fixed content, such as an
// embedded default configuration.
func NewFileContent(data []byte, decoder codec.Decoder) *File {
	return &File{
		data:    data,
		decoder: decoder,
	}
}

// Path returns the file path, or "" for content sources.
func (f *File) Path() string {
	return f.path
}

// Load reads and decodes the file.
//
// Errors:
//   - Returns error if the file cannot be read (NewFile only)
//   - Returns error if decoding fails
func (f *File) Load(context.Context) (map[string]any, error) {
	data := f.data
	if f.path != "" {
		var err error
		if data, err = os.ReadFile(f.path); err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
	}

	var config map[string]any
	if err := f.decoder.Decode(data, &config); err != nil {
		return nil, fmt.Errorf("failed to decode file %s: %w", f.describe(), err)
	}
	return config, nil
}

func (f *File) describe() string {
	if f.path == "" {
		return "content"
	}
	return f.path
}
