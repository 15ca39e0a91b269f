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

package serializer

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var extFormats = map[string]Format{
	".json":  FormatJSON,
	".yaml":  FormatYAML,
	".yml":   FormatYAML,
	".table": FormatTable,
	".txt":   FormatTable,
	".csv":   FormatCSV,
}

// FormatFromPath maps a file extension (case-insensitive) to a Format.
// Unknown extensions are read as JSON.
func FormatFromPath(filePath string) Format {
	if f, ok := extFormats[strings.ToLower(filepath.Ext(filePath))]; ok {
		return f
	}
	slog.Warn("unknown file extension, assuming json", "path", filePath)
	return FormatJSON
}

// Reader decodes one JSON or YAML document. YAML documents may not carry
// fields the target type does not declare.
type Reader struct {
	format Format
	input  io.Reader
	closer io.Closer
}

// NewReader returns a Reader over input, which is closed by Close when it
// implements io.Closer.
func NewReader(format Format, input io.Reader) (*Reader, error) {
	if err := readable(format); err != nil {
		return nil, err
	}
	closer, _ := input.(io.Closer)
	return &Reader{format: format, input: input, closer: closer}, nil
}

// NewFileReader opens filePath for reading.
func NewFileReader(format Format, filePath string) (*Reader, error) {
	if err := readable(format); err != nil {
		return nil, err
	}
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filePath, err)
	}
	return &Reader{format: format, input: f, closer: f}, nil
}

// readable rejects the output-only formats.
func readable(format Format) error {
	if format.IsUnknown() {
		return fmt.Errorf("unknown format: %s", format)
	}
	if format == FormatTable || format == FormatCSV {
		return fmt.Errorf("%s output cannot be read back", format)
	}
	return nil
}

// Deserialize decodes the document into v, which must be a pointer.
func (r *Reader) Deserialize(v any) error {
	if r == nil || r.input == nil {
		return fmt.Errorf("reader has no input")
	}

	var err error
	if r.format == FormatYAML {
		dec := yaml.NewDecoder(r.input)
		dec.KnownFields(true)
		err = dec.Decode(v)
	} else {
		err = json.NewDecoder(r.input).Decode(v)
	}
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", r.format, err)
	}
	return nil
}

// Close releases the input. Calling it twice, or on a nil Reader, is a no-op.
func (r *Reader) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	c := r.closer
	r.closer = nil
	return c.Close()
}

// FromFile decodes the file at path into a new T, picking the format from
// the extension:
//
//	cfg, err := FromFile[config.Config]("yaspe.yaml")
func FromFile[T any](path string) (*T, error) {
	format := FormatFromPath(path)
	slog.Debug("reading file", "path", path, "format", format)

	rd, err := NewFileReader(format, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rd.Close(); cerr != nil {
			slog.Warn("failed to close file", "path", path, "error", cerr)
		}
	}()

	var v T
	if err := rd.Deserialize(&v); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &v, nil
}
