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
	"unicode"

	"github.com/yaspe-go/yaspe/pkg/calendar"
	"github.com/yaspe-go/yaspe/pkg/reading"
	"github.com/yaspe-go/yaspe/pkg/table"
)

// perfmonColumns turns the perfmon CSV header into safe identifiers: every
// rune other than letters, digits, spaces and commas is removed and spaces
// become underscores. The first column, the timestamp, is named datetime.
func perfmonColumns(line string) []string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == ',':
			return r
		case r == ' ':
			return '_'
		case unicode.IsSpace(r):
			return r
		}
		return -1
	}, line)

	columns := splitComma(clean)
	if len(columns) > 0 {
		columns[0] = ColumnDatetime
	}
	return columns
}

// unquote strips the first and last character of a CSV field and any
// quote left inside it. Every field is assumed quoted; an unquoted field
// loses real characters.
func unquote(field string) string {
	if len(field) < 2 {
		return ""
	}
	return strings.ReplaceAll(field[1:len(field)-1], `"`, "")
}

func (s *scan) routePerfmon(line string) {
	sec := s.perfmon
	if isPerfmonStart(line) {
		sec.active = true
	}
	if isPerfmonEnd(line) {
		sec.active = false
	}
	if !sec.active {
		return
	}

	switch {
	case isPerfmonHeader(line):
		if sec.freeze(perfmonColumns(line)) {
			slog.Debug("section header", "section", sec.id, "columns", len(sec.columns))
		}
	case sec.frozen() && !isBlank(line):
		fields := splitComma(line)
		values := make([]reading.Reading, len(fields))
		for i, f := range fields {
			f = unquote(f)
			fields[i] = f
			if strings.TrimSpace(f) == "" {
				values[i] = reading.Float64(0)
				continue
			}
			values[i] = s.num.Parse(f)
		}

		row := table.Zip(sec.columns, values)
		row.Set(ColumnSource, s.source())
		row.Set(ColumnDatetime, reading.Str(s.perfmonDatetime(sec, fields)))
		sec.add(row)
	}
}

// perfmonTimestamp joins the timestamp with a separate Time column when
// there is one and drops fractional seconds.
func perfmonTimestamp(columns, fields []string) string {
	if len(fields) == 0 {
		return ""
	}
	dt := fields[0]
	if len(columns) > 1 && columns[1] == ColumnTime && len(fields) > 1 {
		dt += " " + fields[1]
	}
	dt, _, _ = strings.Cut(dt, ".")
	return dt
}

// perfmonDatetime reconciles the date half of the row's timestamp against
// the run start. A timestamp without a date token is kept as it is.
func (s *scan) perfmonDatetime(sec *section, fields []string) string {
	dt := perfmonTimestamp(sec.columns, fields)
	date, clock, ok := strings.Cut(strings.TrimSpace(dt), " ")
	if !ok {
		return dt
	}
	if _, ok := calendar.SplitDate(date); !ok {
		return dt
	}
	if sec.reconciler == nil {
		sec.reconciler = calendar.NewReconciler(s.runStart, string(sec.id))
	}
	date = sec.reconciler.Reconcile(date)
	if date == calendar.Sentinel {
		s.sentinels++
	}
	return date + " " + strings.TrimSpace(clock)
}
