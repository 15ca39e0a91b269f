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
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/yaspe-go/yaspe/pkg/capture"
	"github.com/yaspe-go/yaspe/pkg/reading"
	"github.com/yaspe-go/yaspe/pkg/table"
)

// Table names of a JavaReport.
const (
	TableJavaProcesses = "java_processes"
	TableJavaSnapshots = "java_snapshots"
)

// maxCommand is how much of a process command line is kept.
const maxCommand = 120

// ps -elfy fields: S UID PID PPID C PRI NI RSS SZ WCHAN STIME TTY TIME CMD
const (
	psUser    = 1
	psPID     = 2
	psRSS     = 7
	psCommand = 13
)

var (
	psSectionStart = regexp.MustCompile(`<a id="ps -elfy_\d+">`)
	xmsFlag        = regexp.MustCompile(`-Xms(\d+[kmgKMG]?)`)
	xmxFlag        = regexp.MustCompile(`-Xmx(\d+[kmgKMG]?)`)
)

// psSectionEnd closes the last ps snapshot of a capture.
const psSectionEnd = "<div id=vmstat>"

// ProcessKind classifies a java process by its main class.
type ProcessKind string

const (
	KindJReport ProcessKind = "JReport Server"
	KindRender  ProcessKind = "Render Server"
	KindOther   ProcessKind = "Other"
)

// ClassifyProcess returns the kind of the java process running command.
func ClassifyProcess(command string) ProcessKind {
	switch {
	case strings.Contains(command, "jet.server.JREntServer"):
		return KindJReport
	case strings.Contains(command, "com.intersystems.zenreports.RenderServer"):
		return KindRender
	}
	return KindOther
}

// JavaProcess is one java process of a ps snapshot.
type JavaProcess struct {
	PID     string      `json:"pid" yaml:"pid"`
	User    string      `json:"user" yaml:"user"`
	RSSKB   int64       `json:"rssKB" yaml:"rssKB"`
	Xms     string      `json:"xms,omitempty" yaml:"xms,omitempty"`
	Xmx     string      `json:"xmx,omitempty" yaml:"xmx,omitempty"`
	Kind    ProcessKind `json:"kind" yaml:"kind"`
	Command string      `json:"command" yaml:"command"`
}

// JavaSnapshot is one ps -elfy section. Captures take several, each at a
// different point in time; Number counts them from 1.
type JavaSnapshot struct {
	Number    int           `json:"number" yaml:"number"`
	Processes []JavaProcess `json:"processes" yaml:"processes"`
}

// TotalKB is the resident memory of every java process in the snapshot.
func (s JavaSnapshot) TotalKB() int64 {
	var total int64
	for _, p := range s.Processes {
		total += p.RSSKB
	}
	return total
}

// KindKB totals resident memory per process kind.
func (s JavaSnapshot) KindKB() map[ProcessKind]int64 {
	out := make(map[ProcessKind]int64)
	for _, p := range s.Processes {
		out[p.Kind] += p.RSSKB
	}
	return out
}

// JavaReport holds the java processes of every ps snapshot of a capture.
// Snapshots without java processes are kept so numbering matches the
// capture.
type JavaReport struct {
	Source    string         `json:"source,omitempty" yaml:"source,omitempty"`
	Snapshots []JavaSnapshot `json:"snapshots" yaml:"snapshots"`
}

// WithJava returns the snapshots that have at least one java process.
func (r *JavaReport) WithJava() []JavaSnapshot {
	var out []JavaSnapshot
	for _, s := range r.Snapshots {
		if len(s.Processes) > 0 {
			out = append(out, s)
		}
	}
	return out
}

// Peak returns the snapshot with the most java memory; the first one wins
// a tie. It reports false when no snapshot has a java process.
func (r *JavaReport) Peak() (JavaSnapshot, bool) {
	var (
		peak  JavaSnapshot
		found bool
	)
	for _, s := range r.WithJava() {
		if !found || s.TotalKB() > peak.TotalKB() {
			peak, found = s, true
		}
	}
	return peak, found
}

// Tables renders the report as one row per process and one row per
// snapshot. A capture with no ps section yields no tables.
func (r *JavaReport) Tables() []*table.Table {
	var out []*table.Table
	for _, t := range []*table.Table{r.processTable(), r.snapshotTable()} {
		if !t.IsEmpty() {
			out = append(out, t)
		}
	}
	return out
}

var (
	javaProcessColumns  = []string{"snapshot", "PID", "user", "rss_kb", "rss_mb", "xms", "xmx", "type", "command", ColumnSource}
	javaSnapshotColumns = []string{"snapshot", "processes", "rss_kb", "rss_gb", "jreport_kb", "render_kb", "other_kb", ColumnSource}
)

func (r *JavaReport) processTable() *table.Table {
	if len(r.Snapshots) == 0 {
		return table.Empty(TableJavaProcesses)
	}
	var rows []*table.Row
	for _, s := range r.Snapshots {
		for _, p := range s.Processes {
			rows = append(rows, table.Zip(javaProcessColumns, []reading.Reading{
				reading.Int(s.Number),
				reading.Str(p.PID),
				reading.Int64(p.RSSKB),
				reading.Float64(float64(p.RSSKB) / 1024),
				reading.Str(p.Xms),
				reading.Str(p.Xmx),
				reading.Str(string(p.Kind)),
				reading.Str(p.Command),
				reading.Str(r.Source),
			}))
		}
	}
	return table.Assemble(TableJavaProcesses, javaProcessColumns, rows)
}

func (r *JavaReport) snapshotTable() *table.Table {
	if len(r.Snapshots) == 0 {
		return table.Empty(TableJavaSnapshots)
	}
	var rows []*table.Row
	for _, s := range r.WithJava() {
		kinds := s.KindKB()
		rows = append(rows, table.Zip(javaSnapshotColumns, []reading.Reading{
			reading.Int(s.Number),
			reading.Int(len(s.Processes)),
			reading.Int64(s.TotalKB()),
			reading.Float64(float64(s.TotalKB()) / 1024 / 1024),
			reading.Int64(kinds[KindJReport]),
			reading.Int64(kinds[KindRender]),
			reading.Int64(kinds[KindOther]),
			reading.Str(r.Source),
		}))
	}
	return table.Assemble(TableJavaSnapshots, javaSnapshotColumns, rows)
}

// JavaMemory scans the ps -elfy sections of a capture for java processes.
func JavaMemory(r io.Reader, opts ...Option) (*JavaReport, error) {
	return New(opts...).JavaMemory(r)
}

// JavaMemory scans r for ps -elfy snapshots. A snapshot starts at its
// anchor and runs to the next anchor or the vmstat block; one that holds
// no lines at all is not counted.
func (e *Extractor) JavaMemory(r io.Reader) (*JavaReport, error) {
	rep := &JavaReport{Source: e.source, Snapshots: []JavaSnapshot{}}

	var (
		in      bool
		lines   int
		current []JavaProcess
	)
	flush := func() {
		if lines == 0 {
			return
		}
		s := JavaSnapshot{Number: len(rep.Snapshots) + 1, Processes: current}
		if s.Processes == nil {
			s.Processes = []JavaProcess{}
		}
		rep.Snapshots = append(rep.Snapshots, s)
		slog.Debug("ps snapshot", "snapshot", s.Number, "java", len(s.Processes), "rssKB", s.TotalKB())
		lines, current = 0, nil
	}

	err := capture.ScanLines(r, func(line string) error {
		switch {
		case psSectionStart.MatchString(line):
			flush()
			in = true
		case in && strings.Contains(line, psSectionEnd):
			flush()
			in = false
		case in:
			lines++
			if p, ok := parseJavaProcess(line); ok {
				current = append(current, p)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	flush()

	if len(rep.Snapshots) == 0 {
		slog.Warn("capture has no ps -elfy section", "source", e.source)
	}
	return rep, nil
}

// isJavaLine keeps sleeping or running processes launched from a java
// binary.
func isJavaLine(line string) bool {
	return (strings.HasPrefix(line, "S ") || strings.HasPrefix(line, "R ")) &&
		strings.Contains(line, "/java")
}

// parseJavaProcess reads one ps -elfy line. Lines with fewer than 14 fields
// or a non-numeric RSS are not processes.
func parseJavaProcess(line string) (JavaProcess, bool) {
	if !isJavaLine(line) {
		return JavaProcess{}, false
	}
	fields := strings.Fields(line)
	if len(fields) <= psCommand {
		return JavaProcess{}, false
	}
	rss, err := strconv.ParseInt(fields[psRSS], 10, 64)
	if err != nil {
		return JavaProcess{}, false
	}

	command := fieldsFrom(line, psCommand)
	p := JavaProcess{
		PID:     fields[psPID],
		User:    fields[psUser],
		RSSKB:   rss,
		Kind:    ClassifyProcess(command),
		Command: truncate(command, maxCommand),
	}
	if m := xmsFlag.FindStringSubmatch(command); m != nil {
		p.Xms = m[1]
	}
	if m := xmxFlag.FindStringSubmatch(command); m != nil {
		p.Xmx = m[1]
	}
	return p, true
}

// fieldsFrom returns line from its nth whitespace-separated field on, with
// the spacing inside the rest kept.
func fieldsFrom(line string, n int) string {
	field := -1
	inField := false
	for i, r := range line {
		space := unicode.IsSpace(r)
		if !space && !inField {
			field++
			if field == n {
				return strings.TrimSpace(line[i:])
			}
		}
		inField = !space
	}
	return ""
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
