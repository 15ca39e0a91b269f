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

package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// EnvVarLogLevel is the environment variable consulted when no explicit level is given.
const EnvVarLogLevel = "LOG_LEVEL"

// Format selects the handler used for log output.
type Format string

const (
	// FormatJSON writes one JSON object per record.
	FormatJSON Format = "json"
	// FormatText writes colored, human-readable records.
	FormatText Format = "text"
	// FormatAuto picks FormatText on a terminal and FormatJSON otherwise.
	FormatAuto Format = "auto"
)

// ParseFormat parses a format name, defaulting to FormatAuto.
func ParseFormat(s string) Format {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatJSON:
		return FormatJSON
	case FormatText:
		return FormatText
	default:
		return FormatAuto
	}
}

// ParseLogLevel converts a level name into a slog.Level. Unknown values map to info.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// resolveLevel returns the explicit level if set, then LOG_LEVEL, then info.
func resolveLevel(level string) slog.Level {
	if strings.TrimSpace(level) != "" {
		return ParseLogLevel(level)
	}
	return ParseLogLevel(os.Getenv(EnvVarLogLevel))
}

// NewStructuredLogger returns a JSON logger on stderr tagged with module and version.
func NewStructuredLogger(module, version, level string) *slog.Logger {
	return NewLogger(os.Stderr, module, version, level, FormatJSON)
}

// NewLogger returns a logger writing to w in the given format.
func NewLogger(w io.Writer, module, version, level string, format Format) *slog.Logger {
	lvl := resolveLevel(level)
	if format == FormatAuto {
		format = FormatJSON
		if f, ok := w.(*os.File); ok && isTerminal(f) {
			format = FormatText
		}
	}

	var h slog.Handler
	if format == FormatText {
		h = newTerminalHandler(w, lvl)
	} else {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{
			AddSource: lvl <= slog.LevelDebug,
			Level:     lvl,
		})
	}

	return slog.New(h).With(
		slog.String("module", module),
		slog.String("version", version),
	)
}

func newTerminalHandler(w io.Writer, lvl slog.Level) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		NoColor:    runtime.GOOS == "windows",
		AddSource:  lvl <= slog.LevelDebug,
		Level:      lvl,
		TimeFormat: time.TimeOnly,
	})
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SetDefaultStructuredLogger installs a JSON logger as the slog default,
// with the level taken from LOG_LEVEL.
func SetDefaultStructuredLogger(module, version string) {
	slog.SetDefault(NewStructuredLogger(module, version, ""))
}

// SetDefaultStructuredLoggerWithLevel installs a JSON logger with an explicit level.
func SetDefaultStructuredLoggerWithLevel(module, version, level string) {
	slog.SetDefault(NewStructuredLogger(module, version, level))
}

// SetDefaultLogger installs a logger on stderr in the given format.
func SetDefaultLogger(module, version, level string, format Format) {
	slog.SetDefault(NewLogger(os.Stderr, module, version, level, format))
}

// NewLogLogger adapts the default slog handler to a standard library logger,
// e.g. for http.Server.ErrorLog.
func NewLogLogger(level slog.Level, addSource bool) *log.Logger {
	h := slog.Default().Handler()
	if addSource {
		h = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{AddSource: true, Level: level})
	}
	return slog.NewLogLogger(h, level)
}
