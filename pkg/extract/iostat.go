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

	"github.com/yaspe-go/yaspe/pkg/calendar"
	"github.com/yaspe-go/yaspe/pkg/reading"
	"github.com/yaspe-go/yaspe/pkg/table"
)

// aixIostatColumns names the fields of AIX iostat -DlT, which prints a
// three-line banner instead of a usable header.
var aixIostatColumns = []string{
	"Device",
	"xfer tm act",
	"xfer bps",
	"xfer tps",
	"xfer bread",
	"xfer bwrtn",
	"read rps",
	"read avg serv",
	"read min serv",
	"read max serv",
	"read time outs",
	"read fail",
	"write wps",
	"write avg serv",
	"write min serv",
	"write max serv",
	"write time outs",
	"write fail",
	"queue avg time",
	"queue min time",
	"queue max time",
	"queue avg wqsz",
	"queue avg sqsz",
	"queue serv qfull",
	ColumnTime,
}

// iostatState extends the section with the device-block bookkeeping
// Linux iostat needs: samples are an optional date line followed by a
// Device header and one line per device.
type iostatState struct {
	*section

	deviceBlock  bool
	dateIncluded bool
	amPm         bool
	date         string
	clock        string
}

// isDateLine reports whether fields are a sample timestamp: a date then a
// time, optionally followed by AM or PM.
func isDateLine(fields []string) bool {
	if len(fields) != 2 && len(fields) != 3 {
		return false
	}
	_, ok := calendar.SplitDate(fields[0])
	return ok
}

// routeLinuxIostat handles Linux iostat -x. The block has no end marker
// and stops at the next HTML block.
func (s *scan) routeLinuxIostat(line string) {
	st := s.iostat
	if st.active && isBlockStart(line) {
		st.active = false
		return
	}
	if isIostatStart(line) {
		st.active = true
	}
	if !st.active {
		return
	}

	fields := strings.Fields(line)
	if isDateLine(fields) {
		st.deviceBlock = false
		st.dateIncluded = true
		st.date = fields[0]
		st.clock = fields[1]
		if len(fields) == 3 {
			st.amPm = true
			st.clock += " " + fields[2]
		}
	}
	if isIostatCPU(line) {
		st.deviceBlock = false
	}
	if st.deviceBlock && st.frozen() && len(fields) > 0 && !isIostatHeader(line) && s.wantDevice(fields[0]) {
		s.linuxIostatRow(line)
	}
	if isIostatHeader(line) {
		st.deviceBlock = true
		header := line
		if st.dateIncluded {
			header = "Date Time " + line
		}
		if st.freeze(strings.Fields(strings.ReplaceAll(header, ":", ""))) {
			slog.Debug("section header", "section", st.id, "columns", len(st.columns), "dated", st.dateIncluded)
		}
	}
}

// linuxIostatRow builds one device row. Decimal commas are turned into
// points before the line is split, so the fixed dot-decimal normalizer
// reads every capture alike.
func (s *scan) linuxIostatRow(line string) {
	st := s.iostat
	tokens := strings.Fields(strings.ReplaceAll(line, ",", "."))

	values := make([]reading.Reading, 0, len(tokens)+2)
	if st.dateIncluded {
		values = append(values, reading.Str(st.date), reading.Str(st.clock))
	}
	values = append(values, s.dot.ParseAll(tokens)...)

	row := table.Zip(st.columns, values)
	row.Set(ColumnSource, s.source())
	if st.columns[0] == ColumnDate {
		if !s.reconcile(st.section, row) {
			st.skip()
			return
		}
	}
	st.add(row)
}

// routeAIXIostat handles AIX iostat, recognising sample lines purely by
// their field count.
func (s *scan) routeAIXIostat(line string) {
	st := s.iostat
	if st.active && isBlockStart(line) {
		st.active = false
		return
	}
	if isIostatStart(line) {
		st.active = true
		if st.freeze(append(append([]string{}, aixIostatColumns...), ColumnDate)) {
			slog.Debug("section header", "section", st.id, "columns", len(st.columns), "aix", true)
		}
	}
	if !st.active {
		return
	}

	fields := strings.Fields(line)
	if len(fields) != len(aixIostatColumns) || !s.wantDevice(fields[0]) {
		return
	}
	clock := fields[len(fields)-1]
	if !isClock(clock) {
		st.skip()
		return
	}

	row := table.Zip(aixIostatColumns, s.num.ParseAllAIX(fields))
	row.Set(ColumnSource, s.source())
	s.stamp(row, s.advance(st.section, clock))
	st.add(row)
}
