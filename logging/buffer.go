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

package logging

// StartBuffering enables log buffering on the logger.
// While buffering is enabled, log records are stored in memory instead of being written.
// Call FlushBuffer to replay all buffered logs to the handlers.
//
// This is useful for delaying startup logs until after a banner or other output is printed.
//
// Example:
//
//	logger.StartBuffering()
//	// ... initialization that produces logs ...
//	printBanner()
//	logger.FlushBuffer()
func (l *Logger) StartBuffering() {
	l.Engine().StartBuffering()
}

// FlushBuffer replays all buffered log records to the handlers and disables
// buffering. If buffering was not enabled, this is a no-op.
func (l *Logger) FlushBuffer() error {
	return l.Engine().FlushBuffer()
}

// IsBuffering returns whether the logger is currently buffering logs.
func (l *Logger) IsBuffering() bool {
	return l.Engine().IsBuffering()
}
