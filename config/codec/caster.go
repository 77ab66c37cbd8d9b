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
	"strings"

	"github.com/spf13/cast"
)

// CastType names the target type of a [CasterCodec].
type CastType string

// revive:disable:exported
const (
	CastTypeBool       CastType = "bool"
	TypeCasterBool     Type     = "caster-bool"
	CastTypeDuration   CastType = "duration"
	TypeCasterDuration Type     = "caster-duration"
	CastTypeFloat64    CastType = "float64"
	TypeCasterFloat64  Type     = "caster-float64"
	CastTypeInt        CastType = "int"
	TypeCasterInt      Type     = "caster-int"
	CastTypeInt64      CastType = "int64"
	TypeCasterInt64    Type     = "caster-int64"
	CastTypeUint32     CastType = "uint32"
	TypeCasterUint32   Type     = "caster-uint32"
	CastTypeString     CastType = "string"
	TypeCasterString   Type     = "caster-string"
	CastTypeStrings    CastType = "strings"
	TypeCasterStrings  Type     = "caster-strings"
)

// casts holds the conversion behind every cast type.
var casts = map[CastType]func(string) (any, error){
	CastTypeBool:     castWith(cast.ToBoolE),
	CastTypeDuration: castWith(cast.ToDurationE),
	CastTypeFloat64:  castWith(cast.ToFloat64E),
	CastTypeInt:      castWith(cast.ToIntE),
	CastTypeInt64:    castWith(cast.ToInt64E),
	CastTypeUint32:   castWith(cast.ToUint32E),
	CastTypeString:   castWith(cast.ToStringE),
	CastTypeStrings:  splitList,
}

var casterTypes = map[Type]CastType{
	TypeCasterBool:     CastTypeBool,
	TypeCasterDuration: CastTypeDuration,
	TypeCasterFloat64:  CastTypeFloat64,
	TypeCasterInt:      CastTypeInt,
	TypeCasterInt64:    CastTypeInt64,
	TypeCasterUint32:   CastTypeUint32,
	TypeCasterString:   CastTypeString,
	TypeCasterStrings:  CastTypeStrings,
}

func init() {
	for t, ct := range casterTypes {
		RegisterDecoder(t, NewCaster(ct))
	}
}

func castWith[T any](fn func(any) (T, error)) func(string) (any, error) {
	return func(s string) (any, error) {
		return fn(strings.TrimSpace(s))
	}
}

// splitList reads a comma separated list, dropping empty items.
func splitList(s string) (any, error) {
	var out []string
	for item := range strings.SplitSeq(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out, nil
}

// CasterCodec decodes a single scalar value, such as one Consul key holding
// a log level or a flag.
type CasterCodec struct {
	castType CastType
}

// NewCaster creates a CasterCodec converting to castType.
func NewCaster(castType CastType) *CasterCodec {
	return &CasterCodec{castType: castType}
}

// CastType returns the target type.
func (c *CasterCodec) CastType() CastType {
	return c.castType
}

// Decode converts data and stores the result in v, which must be a *any.
func (c *CasterCodec) Decode(data []byte, v any) error {
	m, ok := v.(*any)
	if !ok {
		return fmt.Errorf("caster %s: expected *any, got %T", c.castType, v)
	}
	fn, ok := casts[c.castType]
	if !ok {
		return fmt.Errorf("%w: cast type %q", ErrNotFound, c.castType)
	}

	val, err := fn(string(data))
	if err != nil {
		return fmt.Errorf("caster %s: %w", c.castType, err)
	}
	*m = val
	return nil
}
