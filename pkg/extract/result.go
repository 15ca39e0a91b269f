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

	"github.com/yaspe-go/yaspe/pkg/capture"
	"github.com/yaspe-go/yaspe/pkg/table"
)

// Result holds every section table of one capture. Sections is always six
// tables long, in Sections order; a section that never appeared is the
// empty-table sentinel.
type Result struct {
	Source      string         `json:"source,omitempty" yaml:"source,omitempty"`
	OS          capture.OS     `json:"os" yaml:"os"`
	RunStart    time.Time      `json:"runStart,omitzero" yaml:"runStart,omitempty"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Sections    []*table.Table `json:"sections" yaml:"sections"`
	Stats       Stats          `json:"stats" yaml:"stats"`
}

// Stats counts what the scan saw and threw away.
type Stats struct {
	Lines     int               `json:"lines" yaml:"lines"`
	Skipped   map[SectionID]int `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Rows      map[SectionID]int `json:"rows,omitempty" yaml:"rows,omitempty"`
	Sentinels int               `json:"sentinels" yaml:"sentinels"`
}

// Table returns the table for id, or nil for an unknown id.
func (r *Result) Table(id SectionID) *table.Table {
	for i, s := range Sections {
		if s == id && i < len(r.Sections) {
			return r.Sections[i]
		}
	}
	return nil
}

// Populated returns the sections that are not the empty sentinel.
func (r *Result) Populated() []*table.Table {
	var out []*table.Table
	for _, t := range r.Sections {
		if !t.IsEmpty() {
			out = append(out, t)
		}
	}
	return out
}

// Tables returns the populated sections for table and CSV rendering.
func (r *Result) Tables() []*table.Table {
	return r.Populated()
}
