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
	"github.com/yaspe-go/yaspe/pkg/reading"
)

// EmptyColumn is the only column of the empty-table sentinel.
const EmptyColumn = "empty"

// Table is the uniform result for one section: named columns and rows of
// equal width.
type Table struct {
	Name    string              `json:"name" yaml:"name"`
	Columns []string            `json:"columns" yaml:"columns"`
	Rows    [][]reading.Reading `json:"rows" yaml:"rows"`
}

// Empty returns the sentinel for a section whose header never appeared.
func Empty(name string) *Table {
	return &Table{
		Name:    name,
		Columns: []string{EmptyColumn},
		Rows:    [][]reading.Reading{},
	}
}

// IsEmpty reports whether t is the empty-table sentinel.
func (t *Table) IsEmpty() bool {
	return t == nil || len(t.Rows) == 0 && len(t.Columns) == 1 && t.Columns[0] == EmptyColumn
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Index returns the position of column name, or -1.
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns every value of column name, or nil if there is no such column.
func (t *Table) Column(name string) []reading.Reading {
	i := t.Index(name)
	if i < 0 {
		return nil
	}
	out := make([]reading.Reading, len(t.Rows))
	for r, row := range t.Rows {
		out[r] = row[i]
	}
	return out
}

// Record returns row i as a name to value map.
func (t *Table) Record(i int) map[string]reading.Reading {
	rec := make(map[string]reading.Reading, len(t.Columns))
	for c, name := range t.Columns {
		rec[name] = t.Rows[i][c]
	}
	return rec
}
