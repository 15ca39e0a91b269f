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
	"io"
	"log/slog"
	"time"

	"github.com/yaspe-go/yaspe/pkg/calendar"
	"github.com/yaspe-go/yaspe/pkg/capture"
)

// Mgstat scans a bare mgstat file (.mgst): the whole input is the mgstat
// section, with no HTML markers around it. The other five sections of the
// Result are empty.
func Mgstat(r io.Reader, opts ...Option) (*Result, error) {
	return New(opts...).Mgstat(r)
}

// Mgstat scans r as a bare mgstat file. Without WithRunStart the first
// sample's date, read as month/day/year, is the run start.
func (e *Extractor) Mgstat(r io.Reader) (*Result, error) {
	s := e.newScan()
	s.mgstat.active = true

	err := capture.ScanLines(r, func(line string) error {
		s.lines++
		if !s.hasStart && s.mgstat.frozen() && !isMgstatHeader(line) && !isBlank(line) {
			s.startFromFirstSample(line)
		}
		s.routeMgstat(line)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.result(), nil
}

func (s *scan) startFromFirstSample(line string) {
	fields := splitComma(line)
	for i, c := range s.mgstat.columns {
		if c != ColumnDate || i >= len(fields) {
			continue
		}
		if t, ok := parseMDY(fields[i]); ok {
			s.setRunStart(t)
			return
		}
		slog.Debug("first mgstat date unreadable as month/day/year", "token", fields[i])
		return
	}
}

// parseMDY reads a numeric month/day/year date; two-digit years are 20xx.
func parseMDY(token string) (time.Time, bool) {
	p, ok := calendar.SplitDate(token)
	if !ok {
		return time.Time{}, false
	}
	month, day, year := p[0], p[1], p[2]
	if year < 100 {
		year += 2000
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
