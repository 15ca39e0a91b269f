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

	"github.com/yaspe-go/yaspe/pkg/capture"
	"github.com/yaspe-go/yaspe/pkg/table"
)

func (s *scan) routeMgstat(line string) {
	sec := s.mgstat
	if isMgstatBegin(line) {
		sec.active = true
	}
	if isMgstatEnd(line) {
		sec.active = false
	}
	if !sec.active {
		return
	}

	switch {
	case isMgstatHeader(line):
		if sec.freeze(splitComma(line)) {
			slog.Debug("section header", "section", sec.id, "columns", len(sec.columns))
		}
	case isMgstatConfig(line):
		if s.description == "" {
			s.description = capture.MgstatConfig(line)
		}
	case sec.frozen() && !isBlank(line):
		s.mgstatRow(line)
	}
}

// mgstatRow builds one comma-separated mgstat sample.
func (s *scan) mgstatRow(line string) {
	sec := s.mgstat
	row := table.Zip(sec.columns, parseRow(s.num, sec.columns, splitComma(line)))
	row.Set(ColumnSource, s.source())
	if !s.reconcile(sec, row) {
		sec.skip()
		return
	}
	s.seedAIX(row.GetString(ColumnDate))
	sec.add(row)
}

func splitComma(line string) []string {
	parts := strings.Split(line, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
