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

// Cell is one named value of a Row.
type Cell struct {
	Name  string
	Value reading.Reading
}

// Row is an ordered column-name to value mapping. Setting an existing name
// replaces the value in place; new names are appended.
type Row struct {
	cells []Cell
}

// NewRow returns an empty Row with room for n cells.
func NewRow(n int) *Row {
	return &Row{cells: make([]Cell, 0, n)}
}

// Zip pairs columns with values up to the shorter of the two.
// A repeated column name keeps its first position and its last value.
func Zip(columns []string, values []reading.Reading) *Row {
	n := min(len(columns), len(values))
	r := NewRow(n + 2)
	for i := range n {
		r.Set(columns[i], values[i])
	}
	return r
}

// Set assigns v to name.
func (r *Row) Set(name string, v reading.Reading) {
	for i := range r.cells {
		if r.cells[i].Name == name {
			r.cells[i].Value = v
			return
		}
	}
	r.cells = append(r.cells, Cell{Name: name, Value: v})
}

// Get returns the value of name.
func (r *Row) Get(name string) (reading.Reading, bool) {
	for _, c := range r.cells {
		if c.Name == name {
			return c.Value, true
		}
	}
	return nil, false
}

// GetString returns the string form of name's value, or "" if absent.
func (r *Row) GetString(name string) string {
	v, ok := r.Get(name)
	if !ok || v == nil {
		return ""
	}
	return v.String()
}

// Has reports whether name is set.
func (r *Row) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Rename changes the name of a cell, keeping its position.
func (r *Row) Rename(from, to string) {
	for i := range r.cells {
		if r.cells[i].Name == from {
			r.cells[i].Name = to
			return
		}
	}
}

// Len returns the number of cells.
func (r *Row) Len() int {
	return len(r.cells)
}

// Names returns the cell names in order.
func (r *Row) Names() []string {
	names := make([]string, len(r.cells))
	for i, c := range r.cells {
		names[i] = c.Name
	}
	return names
}

// Cells returns the cells in order. The slice must not be modified.
func (r *Row) Cells() []Cell {
	return r.cells
}
