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

package calendar

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// RunStartMarker identifies the capture line carrying the session start date.
const RunStartMarker = "Profile run"

// runStartLayout is the month-name day year form the collector writes.
const runStartLayout = "Jan 2 2006"

var startedAt = regexp.MustCompile(`started at (\d{1,2}):(\d{2})(?::(\d{2}))?`)

// IsRunStartLine reports whether line carries the run-start marker.
func IsRunStartLine(line string) bool {
	return strings.Contains(line, RunStartMarker)
}

// ParseRunStart extracts the run start from a line such as
//
//	Profile run "24hours" started at 00:00 on Jan 02 2024.
//
// The date after the last " on " is read as "Jan 2 2006", falling back to
// dateparse for other renderings. The "started at" clock, when present,
// sets the time of day. The result is in UTC.
func ParseRunStart(line string) (time.Time, error) {
	line = strings.TrimSpace(line)
	i := strings.LastIndex(line, " on ")
	if i < 0 {
		return time.Time{}, fmt.Errorf("run start line has no date: %q", line)
	}
	text := strings.TrimSpace(line[i+len(" on "):])
	text = strings.TrimSpace(strings.TrimRight(text, "."))

	day, err := time.Parse(runStartLayout, text)
	if err != nil {
		day, err = dateparse.ParseIn(text, time.UTC)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse run start date %q: %w", text, err)
		}
	}
	day = DateOf(day)

	if m := startedAt.FindStringSubmatch(line); m != nil {
		h, _ := strconv.Atoi(m[1])
		mins, _ := strconv.Atoi(m[2])
		secs, _ := strconv.Atoi(m[3])
		if h < 24 && mins < 60 && secs < 60 {
			day = day.Add(time.Duration(h)*time.Hour + time.Duration(mins)*time.Minute + time.Duration(secs)*time.Second)
		}
	}
	return day, nil
}

// DateOf truncates t to midnight UTC of its calendar day.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
