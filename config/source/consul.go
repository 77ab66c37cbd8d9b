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
	"path"
	"sync/atomic"

	"github.com/hashicorp/consul/api"

	"github.com/uniwue-rz/lyra-log/config/codec"
)

// ConsulKV is the subset of the Consul KV API the source uses.
type ConsulKV interface {
	Get(key string, q *api.QueryOptions) (*api.KVPair, *api.QueryMeta, error)
}

// Consul loads configuration from one key of Consul's key-value store.
//
// With a document decoder the key holds a whole logger definition. With a
// [codec.CasterCodec] the key holds one scalar that is stored under the
// last path segment, so "apps/api/microseconds" yields
// {"microseconds": <value>}.
//
// The default client is configured from the environment:
//   - CONSUL_HTTP_ADDR: The address of the Consul server (e.g., "http://localhost:8500")
//   - CONSUL_HTTP_TOKEN: The access token for authentication (optional)
type Consul struct {
	kv        ConsulKV
	path      string
	decoder   codec.Decoder
	lastIndex atomic.Uint64
}

// NewConsul creates a Consul source for key path. When kv is nil a client
// is built from [api.DefaultConfig].
//
// Errors:
//   - Returns error if the Consul client cannot be created
func NewConsul(path string, decoder codec.Decoder, kv ConsulKV) (*Consul, error) {
	if kv == nil {
		client, err := api.NewClient(api.DefaultConfig())
		if err != nil {
			return nil, fmt.Errorf("failed to create consul client: %w", err)
		}
		kv = client.KV()
	}
	return &Consul{
		kv:      kv,
		path:    path,
		decoder: decoder,
	}, nil
}

// Path returns the Consul key.
func (c *Consul) Path() string {
	return c.path
}

// LastIndex returns the modify index seen by the last successful Load.
func (c *Consul) LastIndex() uint64 {
	return c.lastIndex.Load()
}

// Load fetches and decodes the key. A missing key yields an empty map.
func (c *Consul) Load(ctx context.Context) (map[string]any, error) {
	pair, meta, err := c.kv.Get(c.path, (&api.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get consul key %q: %w", c.path, err)
	}
	if pair == nil {
		return make(map[string]any), nil
	}
	if meta != nil {
		c.lastIndex.Store(meta.LastIndex)
	}

	if caster, ok := c.decoder.(*codec.CasterCodec); ok {
		var val any
		if err := caster.Decode(pair.Value, &val); err != nil {
			return nil, fmt.Errorf("failed to decode consul value: %w", err)
		}
		return map[string]any{path.Base(pair.Key): val}, nil
	}

	var config map[string]any
	if err := c.decoder.Decode(pair.Value, &config); err != nil {
		return nil, fmt.Errorf("failed to decode consul value: %w", err)
	}
	return config, nil
}
