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

package extract

import (
	"time"

	"github.com/yaspe-go/yaspe/pkg/calendar"
	"github.com/yaspe-go/yaspe/pkg/table"
)

// SectionID names one tool's block within a capture.
type SectionID string

const (
	SectionMgstat    SectionID = "mgstat"
	SectionVmstat    SectionID = "vmstat"
	SectionIostat    SectionID = "iostat"
	SectionNfsiostat SectionID = "nfsiostat"
	SectionPerfmon   SectionID = "perfmon"
	SectionAIXSarD   SectionID = "aix-sar-d"
)

// Sections lists every section in result order.
var Sections = [...]SectionID{
	SectionMgstat,
	SectionVmstat,
	SectionIostat,
	SectionNfsiostat,
	SectionPerfmon,
	SectionAIXSarD,
}

// ParseSectionID parses a section name.
func ParseSectionID(s string) (SectionID, bool) {
	for _, id := range Sections {
		if string(id) == s {
			return id, true
		}
	}
	return "", false
}

// String returns the section name.
func (id SectionID) String() string {
	return string(id)
}

// Synthesized and well-known column names.
const (
	ColumnDate     = "Date"
	ColumnTime     = "Time"
	ColumnDatetime = "datetime"
	ColumnSource   = "html name"
)

// section is the state every row builder shares: whether its block is
// open, the frozen column list, and the rows collected so far.
type section struct {
	id      SectionID
	active  bool
	columns []string
	rows    []*table.Row
	skipped int

	reconciler *calendar.Reconciler
	cursor     *calendar.Cursor
	dated      bool
}

func newSection(id SectionID) *section {
	return &section{
		id:     id,
		cursor: calendar.NewCursor(time.Time{}),
	}
}

func (s *section) frozen() bool {
	return s.columns != nil
}

// freeze sets the column list once; later headers are ignored.
func (s *section) freeze(columns []string) bool {
	if s.frozen() || len(columns) == 0 {
		return false
	}
	s.columns = columns
	return true
}

func (s *section) add(r *table.Row) {
	s.rows = append(s.rows, r)
}

func (s *section) skip() {
	s.skipped++
}

func (s *section) assemble() *table.Table {
	return table.Assemble(string(s.id), s.columns, s.rows)
}
