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

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Registry maps codec types to their implementations.
type Registry struct {
	mu       sync.RWMutex
	encoders map[Type]Encoder
	decoders map[Type]Decoder
}

var registry = &Registry{
	encoders: make(map[Type]Encoder),
	decoders: make(map[Type]Decoder),
}

// RegisterEncoder registers encoder under name, replacing any previous one.
func RegisterEncoder(name Type, encoder Encoder) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.encoders[name] = encoder
}

// RegisterDecoder registers decoder under name, replacing any previous one.
func RegisterDecoder(name Type, decoder Decoder) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.decoders[name] = decoder
}

// GetEncoder returns the encoder registered under name.
func GetEncoder(name Type) (Encoder, error) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	encoder, exists := registry.encoders[name]
	if !exists {
		return nil, fmt.Errorf("%w: encoder for type %q", ErrNotFound, name)
	}
	return encoder, nil
}

// GetDecoder returns the decoder registered under name.
func GetDecoder(name Type) (Decoder, error) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	decoder, exists := registry.decoders[name]
	if !exists {
		return nil, fmt.Errorf("%w: decoder for type %q", ErrNotFound, name)
	}
	return decoder, nil
}

// DecoderTypes returns the registered decoder types in sorted order.
func DecoderTypes() []Type {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return slices.Sorted(maps.Keys(registry.decoders))
}
