// Copyright (c) 2025, The yaspe Authors. All rights reserved.
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

// Package logging configures log/slog for the yaspe binaries.
//
// Features:
//   - JSON output on stderr for pipelines and the API server
//   - Colored terminal output (tint) when stderr is a TTY
//   - Automatic module and version context
//   - Source location tracking for debug logs
//   - Integration with standard library log package
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: per-section scanner decisions, skipped rows, sentinel dates
//   - INFO: General informational messages (default)
//   - WARN/WARNING: recoverable problems such as a missing run-start marker
//   - ERROR: per-file failures in batch runs
//
// # Usage
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("yasped", version)
//	    slog.Info("processing capture", "path", path)
//	}
//
// The CLI picks the handler from --log-format:
//
//	logging.SetDefaultLogger("yaspe", version, "debug", logging.FormatAuto)
//
// Converting standard library logger:
//
//	stdLogger := logging.NewLogLogger(slog.LevelWarn, false)
//
// # Environment Configuration
//
// LOG_LEVEL is used when no explicit level is passed:
//
//	LOG_LEVEL=debug yaspe extract capture.html
//
// # Output Format
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "capture extracted",
//	    "module": "yaspe",
//	    "version": "v1.0.0",
//	    "path": "capture.html"
//	}
package logging
