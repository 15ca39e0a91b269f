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

const sarDPrefix = "Date Time device "

// sarDColumns builds columns from the sar -d header, which shares its line
// with the first sample time.
func sarDColumns(line string) []string {
	_, rest, ok := strings.Cut(line, sarDHead+" ")
	if !ok {
		return nil
	}
	return strings.Fields(sarDPrefix + rest)
}

// routeSarD handles AIX sar -d. Only the first row of each interval has a
// time; the other devices in that interval reuse it.
func (s *scan) routeSarD(line string) {
	sec := s.sarD
	if isSarDStart(line) {
		sec.active = true
	}
	if isSarDEnd(line) {
		sec.active = false
	}
	if !sec.active {
		return
	}

	switch {
	case isSarDHeader(line):
		if sec.freeze(sarDColumns(line)) {
			slog.Debug("section header", "section", sec.id, "columns", len(sec.columns))
		}
	case sec.frozen() && !isBlank(line):
		fields := strings.Fields(line)

		var clock, date string
		switch {
		case strings.Contains(fields[0], "disk"):
			clock = sec.cursor.Previous()
			date = sec.cursor.Date()
			if !sec.dated {
				date = calendar.Sentinel
			}
		case isClock(fields[0]):
			clock = fields[0]
			fields = fields[1:]
			date = s.advance(sec, clock)
		default:
			sec.skip()
			return
		}

		values := make([]reading.Reading, 0, len(fields)+2)
		values = append(values, reading.Str(date), reading.Str(clock))
		values = append(values, s.num.ParseAll(fields)...)

		row := table.Zip(sec.columns, values)
		row.Set(ColumnSource, s.source())
		s.stamp(row, date)
		sec.add(row)
	}
}
