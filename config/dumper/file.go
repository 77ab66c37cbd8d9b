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

package dumper

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/uniwue-rz/lyra-log/config/codec"
)

// DefaultFilePermissions is the mode of dumped files: owner read/write,
// group and others read.
const DefaultFilePermissions os.FileMode = 0o644

// File writes the effective logger configuration to a file.
type File struct {
	path        string
	encoder     codec.Encoder
	permissions os.FileMode
}

// NewFile creates a File dumper writing to path with
// [DefaultFilePermissions].
func NewFile(path string, encoder codec.Encoder) *File {
	return NewFileWithPermissions(path, encoder, DefaultFilePermissions)
}

// NewFileWithPermissions creates a File dumper with custom permissions.
// Use 0600 when handler options carry credentials.
func NewFileWithPermissions(path string, encoder codec.Encoder, permissions os.FileMode) *File {
	return &File{
		path:        path,
		encoder:     encoder,
		permissions: permissions,
	}
}

// Path returns the destination file.
func (f *File) Path() string {
	return f.path
}

// Dump encodes doc and replaces the destination file. The data is written
// to a temporary file in the same directory first, so readers never see a
// partial document.
//
// Errors:
//   - Returns ctx.Err() if the context is already done
//   - Returns error if encoding fails
//   - Returns error if writing to the file fails
func (f *File) Dump(ctx context.Context, doc map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := f.encoder.Encode(doc)
	if err != nil {
		return fmt.Errorf("failed to encode values: %w", err)
	}

	if err = f.write(data); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func (f *File) write(data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(f.path), "."+filepath.Base(f.path)+".*")
	if err != nil {
		return err
	}
	name := tmp.Name()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return err
	}
	if err = tmp.Close(); err != nil {
		_ = os.Remove(name)
		return err
	}
	if err = os.Chmod(name, f.permissions); err != nil {
		_ = os.Remove(name)
		return err
	}
	if err = os.Rename(name, f.path); err != nil {
		_ = os.Remove(name)
		return err
	}
	return nil
}
