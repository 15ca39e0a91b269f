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
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/yaspe-go/yaspe/pkg/table"
	"gopkg.in/yaml.v3"
)

// Format names an output encoding.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table" // aligned text, one block per section
	FormatCSV   Format = "csv"   // header row then rows
)

const defaultValueKey = "value"

var formats = []Format{FormatJSON, FormatYAML, FormatTable, FormatCSV}

// IsUnknown reports whether f is not one of the supported formats.
func (f Format) IsUnknown() bool {
	for _, known := range formats {
		if f == known {
			return false
		}
	}
	return true
}

// SupportedFormats lists the format names accepted by --format and the API.
func SupportedFormats() []string {
	out := make([]string, len(formats))
	for i, f := range formats {
		out[i] = string(f)
	}
	return out
}

// Writer encodes results to a stream. Writers returned by
// NewFileWriterOrStdout own their file and must be closed.
type Writer struct {
	format Format
	output io.Writer
	closer io.Closer
}

// NewWriter returns a Writer on output (stdout when nil). An unknown format
// falls back to JSON.
func NewWriter(format Format, output io.Writer) *Writer {
	if output == nil {
		output = os.Stdout
	}
	return &Writer{format: knownOrJSON(format), output: output}
}

// NewFileWriterOrStdout returns a Writer that creates path, or writes to
// stdout when path is blank or cannot be created.
func NewFileWriterOrStdout(format Format, path string) *Writer {
	path = strings.TrimSpace(path)
	if path == "" {
		return NewStdoutWriter(format)
	}

	f, err := os.Create(path)
	if err != nil {
		slog.Error("cannot create output file, writing to stdout", "path", path, "error", err)
		return NewStdoutWriter(format)
	}
	return &Writer{format: knownOrJSON(format), output: f, closer: f}
}

// NewStdoutWriter returns a Writer on stdout.
func NewStdoutWriter(format Format) *Writer {
	return NewWriter(format, os.Stdout)
}

func knownOrJSON(format Format) Format {
	if !format.IsUnknown() {
		return format
	}
	slog.Warn("unknown output format, using json", "format", format)
	return FormatJSON
}

// Close closes the output file, if the Writer owns one. Repeated calls
// return nil.
func (w *Writer) Close() error {
	if w.closer == nil {
		return nil
	}
	c := w.closer
	w.closer = nil
	return c.Close()
}

// Serialize writes data in the configured format. Values implementing
// Tabular are rendered table by table in the table and csv formats; csv
// output to a stream concatenates the tables with a blank line between them.
// Use WriteCSV to get one file per table.
func (w *Writer) Serialize(ctx context.Context, data any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	switch w.format {
	case FormatJSON:
		return w.serializeJSON(data)
	case FormatYAML:
		return w.serializeYAML(data)
	case FormatTable:
		if t, ok := data.(Tabular); ok {
			return w.serializeTables(t.Tables())
		}
		return w.serializeTable(data)
	case FormatCSV:
		t, ok := data.(Tabular)
		if !ok {
			return fmt.Errorf("csv format requires tabular data, got %T", data)
		}
		return writeCSVStream(w.output, t.Tables())
	default:
		return fmt.Errorf("unsupported format: %s", w.format)
	}
}

func (w *Writer) serializeJSON(data any) error {
	encoder := json.NewEncoder(w.output)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to serialize to JSON: %w", err)
	}
	return nil
}

func (w *Writer) serializeYAML(data any) error {
	encoder := yaml.NewEncoder(w.output)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to serialize to YAML: %w", err)
	}
	return encoder.Close()
}

func (w *Writer) serializeTable(data any) error {
	flat := make(map[string]any)
	flattenValue(flat, reflect.ValueOf(data), "")
	if len(flat) == 0 {
		fmt.Fprintln(w.output, "<empty>")
		return nil
	}

	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tw := tabwriter.NewWriter(w.output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tVALUE")
	fmt.Fprintln(tw, "-----\t-----")
	for _, key := range keys {
		fmt.Fprintf(tw, "%s\t%v\n", key, flat[key])
	}
	return tw.Flush()
}

// serializeTables prints each table under its name with aligned columns.
func (w *Writer) serializeTables(tables []*table.Table) error {
	if len(tables) == 0 {
		fmt.Fprintln(w.output, "<empty>")
		return nil
	}
	for i, t := range tables {
		if i > 0 {
			fmt.Fprintln(w.output)
		}
		fmt.Fprintf(w.output, "== %s (%d rows)\n", t.Name, t.Len())
		tw := tabwriter.NewWriter(w.output, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(t.Columns, "\t"))
		for _, row := range t.Rows {
			fmt.Fprintln(tw, strings.Join(cellStrings(row), "\t"))
		}
		if err := tw.Flush(); err != nil {
			return fmt.Errorf("failed to flush table %s: %w", t.Name, err)
		}
	}
	return nil
}

func flattenValue(out map[string]any, val reflect.Value, prefix string) {
	if !val.IsValid() {
		return
	}

	for val.Kind() == reflect.Pointer || val.Kind() == reflect.Interface {
		if val.IsNil() {
			if prefix != "" {
				out[prefix] = nil
			}
			return
		}
		val = val.Elem()
	}

	//nolint:exhaustive // common kinds handled explicitly, the rest go to default
	switch val.Kind() {
	case reflect.Struct:
		if s, ok := val.Interface().(fmt.Stringer); ok {
			if prefix == "" {
				prefix = defaultValueKey
			}
			out[prefix] = s.String()
			return
		}
		typ := val.Type()
		for i := 0; i < val.NumField(); i++ {
			field := typ.Field(i)
			if !field.IsExported() {
				continue
			}
			flattenValue(out, val.Field(i), joinKey(prefix, field.Name))
		}
	case reflect.Map:
		for _, mapKey := range val.MapKeys() {
			key := joinKey(prefix, fmt.Sprintf("%v", mapKey.Interface()))
			flattenValue(out, val.MapIndex(mapKey), key)
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < val.Len(); i++ {
			key := joinKey(prefix, fmt.Sprintf("[%d]", i))
			flattenValue(out, val.Index(i), key)
		}
	default:
		if prefix == "" {
			prefix = defaultValueKey
		}
		out[prefix] = val.Interface()
	}
}

func joinKey(prefix, suffix string) string {
	if prefix == "" {
		return suffix
	}
	if suffix == "" {
		return prefix
	}
	return prefix + "." + suffix
}
