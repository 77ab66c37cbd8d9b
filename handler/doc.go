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

// Package handler builds log handlers from a kind, a level and a set of
// options.
//
// Five kinds are supported:
//
//   - Stream: a file path or an [io.Writer]
//   - StdErr and StdOut: the process standard streams
//   - Syslog: the local syslog daemon
//   - ErrorLog: the systemd journal, standard error or the [log] package
//
// Configuration text goes through [New], which rejects unknown kinds,
// unknown option keys and unknown levels with typed errors before any
// sink is opened:
//
//	h, err := handler.New("Syslog", "NOTICE", map[string]any{
//	    "ident":    "billing",
//	    "facility": "LOG_LOCAL0",
//	    "logopts":  "LOG_PID|LOG_NDELAY",
//	}, nil)
//
// Code that already knows what it wants uses the typed path:
//
//	h, err := handler.NewStream(engine.LevelInfo, handler.StreamOptions{
//	    Stream: "/var/log/app.log",
//	    Bubble: true,
//	}, formatter.NewJSON())
//
// Options the caller leaves out are taken from [DefaultOptions]. A
// handler whose bubble option is false stops a record from reaching the
// handlers attached after it.
package handler
