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

// Package codec provides functionality for encoding and decoding data.
package codec

import "errors"

// ErrNotFound is returned when no codec is registered under a type.
var ErrNotFound = errors.New("codec not found")

// Type names a registered codec, such as "yaml" or "caster-bool".
type Type string

// Encoder converts configuration values into their textual form.
type Encoder interface {
	// Encode converts the value v into an encoded byte slice.
	Encode(v any) ([]byte, error)
}

// Decoder parses configuration text.
type Decoder interface {
	// Decode converts the encoded data into the value pointed to by v.
	// Document codecs expect v to be a *map[string]any.
	Decode(data []byte, v any) error
}
