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

// Package codec converts configuration text into Go values.
//
// Document codecs ([JSONCodec], [YAMLCodec], [TOMLCodec]) decode a whole
// logger definition into a map[string]any. [EnvVarCodec] turns KEY=value
// lines into the same nested shape. [CasterCodec] decodes a single scalar,
// which lets one remote key hold just a level or a flag.
//
// Codecs are looked up by [Type] in a process-wide registry:
//
//	decoder, err := codec.GetDecoder(codec.TypeYAML)
//	if err != nil {
//	    return err
//	}
//	var doc map[string]any
//	err = decoder.Decode(data, &doc)
//
// # Custom Codecs
//
// Register custom codecs using [RegisterEncoder] and [RegisterDecoder]:
//
//	codec.RegisterDecoder(codec.Type("hcl"), HCLCodec{})
//
// # Type Casting
//
//	decoder, _ := codec.GetDecoder(codec.TypeCasterBool)
//	var value any
//	_ = decoder.Decode([]byte("true"), &value) // value is true
package codec
