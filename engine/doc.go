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

// Package engine is the record dispatcher underneath a logger.
//
// An [Engine] is a named channel holding an ordered collection of [Sink]
// values. Each log call becomes a [Record] stamped with the channel name,
// passed through the registered [Processor] functions and delivered to
// every sink that accepts its [Level], in attachment order. A sink whose
// Bubbles method reports false ends delivery after it has handled the
// record.
//
// # Levels
//
// The eight syslog severities are modelled on top of [log/slog] levels:
//
//	DEBUG(-4) INFO(0) NOTICE(2) WARNING(4) ERROR(8) CRITICAL(12) ALERT(16) EMERGENCY(20)
//
// # Sink collection
//
//	e := engine.New("app")
//	e.Push(fileSink)          // attach
//	e.Pop()                   // detach the most recent
//	e.SetSinks(a, b)          // replace the whole collection at once
//
// # slog interoperability
//
// [Engine.SlogHandler] exposes the engine as a [slog.Handler], so
// slog.New(e.SlogHandler()) writes to the same sinks.
package engine
