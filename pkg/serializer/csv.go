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
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/yaspe-go/yaspe/pkg/reading"
	"github.com/yaspe-go/yaspe/pkg/table"
)

// CSVPath returns the file WriteCSV uses for one table.
func CSVPath(dir, source, name string) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.csv", source, name))
}

// WriteCSV writes each table to <dir>/<source>_<name>.csv and returns the
// paths written. Empty tables are skipped. dir is created when missing.
func WriteCSV(dir, source string, tables []*table.Table) ([]string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %q: %w", dir, err)
	}

	paths := make([]string, 0, len(tables))
	for _, t := range tables {
		if t.IsEmpty() {
			continue
		}
		path := CSVPath(dir, source, t.Name)
		if err := writeCSVFile(path, t); err != nil {
			return paths, err
		}
		slog.Debug("wrote csv", "path", path, "rows", t.Len())
		paths = append(paths, path)
	}
	return paths, nil
}

func writeCSVFile(path string, t *table.Table) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %q: %w", path, cerr)
		}
	}()
	return writeCSVTable(f, t)
}

func writeCSVStream(w io.Writer, tables []*table.Table) error {
	for i, t := range tables {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := writeCSVTable(w, t); err != nil {
			return err
		}
	}
	return nil
}

func writeCSVTable(w io.Writer, t *table.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("failed to write %s header: %w", t.Name, err)
	}
	for _, row := range t.Rows {
		if err := cw.Write(cellStrings(row)); err != nil {
			return fmt.Errorf("failed to write %s row: %w", t.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func cellStrings(row []reading.Reading) []string {
	out := make([]string, len(row))
	for i, v := range row {
		if v != nil {
			out[i] = v.String()
		}
	}
	return out
}
