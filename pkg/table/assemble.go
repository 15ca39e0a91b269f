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

package table

import (
	"log/slog"

	"github.com/yaspe-go/yaspe/pkg/reading"
)

// ReservedRenames maps column names that collide with query keywords in the
// downstream store to their replacements.
var ReservedRenames = map[string]string{
	"Date": "RunDate",
	"Time": "RunTime",
}

func renamed(name string) string {
	if to, ok := ReservedRenames[name]; ok {
		return to
	}
	return name
}

// Assemble turns a section's rows into a Table.
//
// A nil header means the section's header was never seen and yields the
// Empty sentinel. Otherwise rows narrower than the widest row are dropped,
// columns are the union of row names in first-seen order, reserved names
// are renamed, and any row still missing a value is dropped.
func Assemble(name string, header []string, rows []*Row) *Table {
	if header == nil {
		return Empty(name)
	}
	if len(rows) == 0 {
		cols := make([]string, len(header))
		for i, h := range header {
			cols[i] = renamed(h)
		}
		return &Table{Name: name, Columns: cols, Rows: [][]reading.Reading{}}
	}

	width := 0
	for _, r := range rows {
		width = max(width, r.Len())
	}

	var (
		columns []string
		index   = make(map[string]int)
		kept    = make([]*Row, 0, len(rows))
	)
	for _, r := range rows {
		if r.Len() != width {
			continue
		}
		kept = append(kept, r)
		for _, n := range r.Names() {
			if _, ok := index[n]; !ok {
				index[n] = len(columns)
				columns = append(columns, n)
			}
		}
	}

	t := &Table{
		Name:    name,
		Columns: make([]string, len(columns)),
		Rows:    make([][]reading.Reading, 0, len(kept)),
	}
	for i, c := range columns {
		t.Columns[i] = renamed(c)
	}

	dropped := len(rows) - len(kept)
	for _, r := range kept {
		values := make([]reading.Reading, len(columns))
		for _, c := range r.Cells() {
			values[index[c.Name]] = c.Value
		}
		if hasMissing(values) {
			dropped++
			continue
		}
		t.Rows = append(t.Rows, values)
	}

	if dropped > 0 {
		slog.Debug("dropped incomplete rows", "section", name, "dropped", dropped, "kept", len(t.Rows))
	}
	return t
}

func hasMissing(values []reading.Reading) bool {
	for _, v := range values {
		if reading.IsMissing(v) {
			return true
		}
	}
	return false
}
