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

package engine

import (
	"context"
	"errors"
	"sync"
)

// bufferedRecord holds a captured record for later replay.
type bufferedRecord struct {
	ctx    context.Context
	record Record
}

// bufferState holds the records captured while buffering is enabled.
type bufferState struct {
	mu        sync.Mutex
	buffering bool
	records   []bufferedRecord
}

// hold stores r when buffering is enabled and reports whether it did.
func (b *bufferState) hold(ctx context.Context, r Record) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.buffering {
		return false
	}
	// The caller may reuse its attribute slice after returning.
	b.records = append(b.records, bufferedRecord{ctx: ctx, record: r.Clone()})
	return true
}

// StartBuffering holds records in memory instead of dispatching them until
// [Engine.FlushBuffer] is called.
//
// This is useful for delaying startup logs until after a banner or other
// output is printed:
//
//	e.StartBuffering()
//	// ... initialization that produces logs ...
//	printBanner()
//	e.FlushBuffer()
func (e *Engine) StartBuffering() {
	e.buffer.mu.Lock()
	defer e.buffer.mu.Unlock()
	e.buffer.buffering = true
}

// FlushBuffer stops buffering and dispatches the held records in the order
// they were logged, to the sinks attached at flush time.
func (e *Engine) FlushBuffer() error {
	e.buffer.mu.Lock()
	records := e.buffer.records
	e.buffer.records = nil
	e.buffer.buffering = false
	e.buffer.mu.Unlock()

	var errs []error
	for _, br := range records {
		if err := e.dispatch(br.ctx, br.record); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// IsBuffering reports whether records are currently being held.
func (e *Engine) IsBuffering() bool {
	e.buffer.mu.Lock()
	defer e.buffer.mu.Unlock()
	return e.buffer.buffering
}
