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

	"github.com/yaspe-go/yaspe/pkg/table"
)

// nfsiostatColumns is the fixed record layout: the mount, then ten read
// and ten write statistics.
var nfsiostatColumns = []string{
	"Host", "Device", "Mounted on",
	"read ops/s", "read kB/s", "read kB/op", "read retrans", "read retrans %",
	"read avg RTT (ms)", "read avg exe (ms)", "read avg queue (ms)", "read errors", "read errors %",
	"write ops/s", "write kB/s", "write kB/op", "write retrans", "write retrans %",
	"write avg RTT (ms)", "write avg exe (ms)", "write avg queue (ms)", "write errors", "write errors %",
	ColumnSource,
}

var fragmentCleaner = strings.NewReplacer("(", "", ")", "", "%", "")

// nfsiostatState assembles one record per mount from three lines: the
// "mounted on" line, the line after "read:" and the line after "write:".
type nfsiostatState struct {
	*section

	pending   []string
	haveRead  bool
	readNext  bool
	writeNext bool
}

// nfsFragment turns a statistics line into comma-joinable tokens, with
// percentages such as "(0.0%)" reduced to plain numbers.
func nfsFragment(line string) []string {
	return strings.Fields(fragmentCleaner.Replace(strings.Join(strings.Fields(line), " ")))
}

// routeNfsiostat handles Linux nfsiostat. The block ends at the next
// closing pre tag.
func (s *scan) routeNfsiostat(line string) {
	st := s.nfsiostat
	if st.active && isNfsiostatEnd(line) {
		st.active = false
		st.reset()
		return
	}
	if isNfsiostatStart(line) {
		st.active = true
	}
	if !st.active {
		return
	}

	if isNfsMount(line) {
		st.reset()
		if mount, ok := parseMount(line); ok {
			st.pending = mount
		}
	}
	switch {
	case st.readNext:
		st.readNext = false
		if st.pending != nil {
			st.pending = append(st.pending, nfsFragment(line)...)
			st.haveRead = true
		}
	case st.writeNext:
		st.writeNext = false
		if st.pending != nil && st.haveRead {
			st.pending = append(st.pending, nfsFragment(line)...)
			s.nfsiostatRow()
		}
		st.reset()
	}

	if isNfsRead(line) {
		st.readNext, st.writeNext = true, false
		if st.freeze(nfsiostatColumns) {
			slog.Debug("section header", "section", st.id, "columns", len(st.columns))
		}
	}
	if isNfsWrite(line) {
		st.readNext, st.writeNext = false, true
	}
}

func (st *nfsiostatState) reset() {
	st.pending = nil
	st.haveRead = false
}

// parseMount reads "host:/export mounted on /mnt/point:".
func parseMount(line string) ([]string, bool) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return nil, false
	}
	host, device, ok := strings.Cut(fields[0], ":")
	if !ok {
		return nil, false
	}
	return []string{strings.TrimSpace(host), device, strings.ReplaceAll(fields[3], ":", "")}, true
}

func (s *scan) nfsiostatRow() {
	st := s.nfsiostat
	row := table.Zip(st.columns, s.num.ParseAll(st.pending))
	row.Set(ColumnSource, s.source())
	st.add(row)
}
