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
	"log/slog"
	"strings"

	"github.com/yaspe-go/yaspe/pkg/reading"
	"github.com/yaspe-go/yaspe/pkg/table"
)

// vmstatPrefix names the columns the capture prepends without a header.
const vmstatPrefix = "Date Time r "

// vmstatColumns builds the column list from a vmstat header line. The
// header may share its line with the opening <pre> tag; everything up to
// the run-queue column is replaced by the synthetic date and time columns.
func vmstatColumns(line string, aix bool) []string {
	text := line
	if _, after, ok := strings.Cut(line, "<pre>"); ok {
		text = strings.TrimSpace(after)
	}

	var (
		rest string
		ok   bool
	)
	if aix {
		_, rest, ok = strings.Cut(text, "r ")
	} else {
		_, rest, ok = strings.Cut(" "+text, " r ")
	}
	if !ok {
		return nil
	}

	columns := strings.Fields(vmstatPrefix + rest)
	if aix {
		// AIX reports both syscalls and system cpu as "sy"; the first is syscalls.
		for i, c := range columns {
			if c == "sy" {
				columns[i] = "sy_calls"
				break
			}
		}
	}
	return columns
}

func (s *scan) vmstatBounds(line string) bool {
	sec := s.vmstat
	if isVmstatBegin(line) {
		sec.active = true
	}
	if isVmstatEnd(line) {
		sec.active = false
	}
	return sec.active
}

func (s *scan) vmstatHeader(line string, aix bool) {
	sec := s.vmstat
	if sec.freeze(vmstatColumns(line, aix)) {
		slog.Debug("section header", "section", sec.id, "columns", len(sec.columns), "aix", aix)
	}
}

// routeLinuxVmstat handles vmstat output that carries its own date and
// time in the first two fields.
func (s *scan) routeLinuxVmstat(line string) {
	if !s.vmstatBounds(line) {
		return
	}
	sec := s.vmstat
	switch {
	case isVmstatHeader(line):
		s.vmstatHeader(line, false)
	case sec.frozen() && !isBlank(line):
		row := table.Zip(sec.columns, parseRow(s.num, sec.columns, strings.Fields(line)))
		row.Set(ColumnSource, s.source())
		if !s.reconcile(sec, row) {
			sec.skip()
			return
		}
		sec.add(row)
	}
}

// routeAIXVmstat handles AIX vmstat, where the time is the last field and
// there is no date at all. The date comes from the section cursor.
func (s *scan) routeAIXVmstat(line string) {
	if !s.vmstatBounds(line) {
		return
	}
	sec := s.vmstat
	switch {
	case isVmstatHeader(line):
		s.vmstatHeader(line, true)
	case sec.frozen() && !isBlank(line):
		fields := strings.Fields(line)
		clock := fields[len(fields)-1]
		if !isClock(clock) {
			sec.skip()
			return
		}
		date := s.advance(sec, clock)

		values := make([]reading.Reading, 0, len(fields)+2)
		values = append(values, reading.Str(date), reading.Str(clock))
		values = append(values, s.num.ParseAll(fields)...)

		row := table.Zip(sec.columns, values)
		row.Set(ColumnSource, s.source())
		s.stamp(row, date)
		sec.add(row)
	}
}

// isClock reports whether tok looks like an HH:MM[:SS] time of day.
func isClock(tok string) bool {
	h, rest, ok := strings.Cut(tok, ":")
	if !ok || h == "" || rest == "" {
		return false
	}
	for _, r := range h + rest {
		if (r < '0' || r > '9') && r != ':' {
			return false
		}
	}
	return true
}
