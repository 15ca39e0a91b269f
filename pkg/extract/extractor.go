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
	"path/filepath"
	"strings"
	"time"

	"github.com/yaspe-go/yaspe/pkg/calendar"
	"github.com/yaspe-go/yaspe/pkg/capture"
	"github.com/yaspe-go/yaspe/pkg/reading"
	"github.com/yaspe-go/yaspe/pkg/table"
)

// Extractor turns capture text into section tables. It holds only
// configuration; every call to Extract runs an independent scan, so one
// Extractor may be shared across goroutines.
type Extractor struct {
	os        capture.OS
	iostat    bool
	nfsiostat bool
	devices   map[string]struct{}
	source    string
	format    reading.NumberFormat
	runStart  time.Time
	maxSize   int64
}

// New returns an Extractor configured by opts.
func New(opts ...Option) *Extractor {
	e := defaultExtractor()
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract scans a decoded capture once and returns its tables.
// Only read failures are returned as errors; malformed rows are skipped.
func Extract(r io.Reader, opts ...Option) (*Result, error) {
	return New(opts...).Extract(r)
}

// ExtractFile opens a capture file and scans it. The source name defaults
// to the file name up to its first dot.
func ExtractFile(path string, opts ...Option) (*Result, error) {
	return New(opts...).ExtractFile(path)
}

// ExtractFile opens path as a Latin-1 capture and scans it.
func (e *Extractor) ExtractFile(path string) (*Result, error) {
	rc, err := capture.Open(path, capture.WithMaxSize(e.maxSize))
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	if e.source == "" {
		c := *e
		c.source = SourceName(path)
		return c.Extract(rc)
	}
	return e.Extract(rc)
}

// SourceName derives the source column value from a capture path.
func SourceName(path string) string {
	name, _, _ := strings.Cut(filepath.Base(path), ".")
	return name
}

// Extract scans r, which must already be decoded text.
func (e *Extractor) Extract(r io.Reader) (*Result, error) {
	s := e.newScan()
	if err := capture.ScanLines(r, func(line string) error {
		s.route(line)
		return nil
	}); err != nil {
		return nil, err
	}
	return s.result(), nil
}

// scan is the state of one pass over one capture.
type scan struct {
	opts *Extractor

	os       capture.OS
	detectOS bool
	runStart time.Time
	hasStart bool
	fixed    bool
	seeded   bool

	description string
	lines       int
	sentinels   int

	num *reading.Normalizer
	dot *reading.Normalizer

	sections [len(Sections)]*section

	mgstat    *section
	vmstat    *section
	iostat    *iostatState
	nfsiostat *nfsiostatState
	perfmon   *section
	sarD      *section
}

func (e *Extractor) newScan() *scan {
	s := &scan{
		opts:     e,
		os:       e.os,
		detectOS: e.os == "",
		num:      reading.NewNormalizer(e.format),
		dot:      reading.NewNormalizer(reading.USFormat),
	}
	if s.detectOS {
		s.os = capture.Unknown
	}
	for i, id := range Sections {
		s.sections[i] = newSection(id)
	}
	s.mgstat = s.sections[0]
	s.vmstat = s.sections[1]
	s.iostat = &iostatState{section: s.sections[2]}
	s.nfsiostat = &nfsiostatState{section: s.sections[3]}
	s.perfmon = s.sections[4]
	s.sarD = s.sections[5]

	if !e.runStart.IsZero() {
		s.setRunStart(e.runStart)
		s.fixed = true
	}
	return s
}

// route hands one line to every section in a fixed precedence: mgstat,
// then the OS-specific vmstat or perfmon, then iostat and nfsiostat, then
// AIX sar-d. A line may be seen by several sections.
func (s *scan) route(line string) {
	s.lines++

	if calendar.IsRunStartLine(line) {
		s.observeRunStart(line)
	}
	if s.detectOS && s.os == capture.Unknown && capture.IsVersionLine(line) {
		s.os = capture.DetectOS(line)
		slog.Debug("detected operating system", "os", s.os)
	}
	if skippedByFlags(line, s.opts.iostat, s.opts.nfsiostat) {
		return
	}

	s.routeMgstat(line)

	switch {
	case s.os.IsUnix():
		s.routeLinuxVmstat(line)
	case s.os == capture.AIX:
		s.routeAIXVmstat(line)
	case s.os == capture.Windows:
		s.routePerfmon(line)
	}

	if s.os.IsUnix() {
		if s.opts.iostat {
			s.routeLinuxIostat(line)
		}
		if s.opts.nfsiostat {
			s.routeNfsiostat(line)
		}
	}
	if s.os == capture.AIX {
		if s.opts.iostat {
			s.routeAIXIostat(line)
		}
		s.routeSarD(line)
	}
}

// observeRunStart reads a run-start marker. In concatenated captures each
// marker replaces the previous one for the rows that follow it.
func (s *scan) observeRunStart(line string) {
	if s.fixed {
		return
	}
	t, err := calendar.ParseRunStart(line)
	if err != nil {
		slog.Warn("unparseable run start marker", "line", strings.TrimSpace(line), "error", err)
		return
	}
	if s.hasStart && !t.Equal(s.runStart) {
		slog.Info("run start replaced by a later marker",
			"previous", s.runStart.Format(time.DateTime),
			"runStart", t.Format(time.DateTime))
	}
	s.setRunStart(t)
}

func (s *scan) setRunStart(t time.Time) {
	s.runStart = t
	s.hasStart = true
	for _, sec := range s.sections {
		sec.reconciler = nil
		if sec.cursor.Seed(t) {
			sec.dated = true
		}
	}
	slog.Debug("run start", "runStart", t.Format(time.DateTime))
}

// seedAIX moves the AIX vmstat and sar-d date cursors to the first mgstat
// date, which is more reliable than the run start on AIX captures.
func (s *scan) seedAIX(date string) {
	if s.seeded || s.os != capture.AIX {
		return
	}
	t, ok := calendar.ParseCanonical(date)
	if !ok {
		return
	}
	s.seeded = true
	for _, sec := range []*section{s.vmstat, s.sarD} {
		if sec.cursor.Seed(t) {
			sec.dated = true
		}
	}
}

// reconcile rewrites the row's Date token as a canonical date and adds the
// datetime column. It reports false when the row has no usable date or
// time.
func (s *scan) reconcile(sec *section, row *table.Row) bool {
	raw := row.GetString(ColumnDate)
	if _, ok := calendar.SplitDate(raw); !ok {
		return false
	}
	if !row.Has(ColumnTime) {
		return false
	}
	if sec.reconciler == nil {
		sec.reconciler = calendar.NewReconciler(s.runStart, string(sec.id))
	}
	date := sec.reconciler.Reconcile(raw)
	s.stamp(row, date)
	return true
}

// advance dates a row from the section's cursor.
func (s *scan) advance(sec *section, clock string) string {
	date := sec.cursor.Advance(clock)
	if !sec.dated {
		return calendar.Sentinel
	}
	return date
}

func (s *scan) stamp(row *table.Row, date string) {
	if date == calendar.Sentinel {
		s.sentinels++
	}
	row.Set(ColumnDate, reading.Str(date))
	row.Set(ColumnDatetime, reading.Str(date+" "+row.GetString(ColumnTime)))
}

// parseRow normalizes tokens, keeping the ones under the Date and Time
// columns as text so separators in them survive any number format.
func parseRow(n *reading.Normalizer, columns, tokens []string) []reading.Reading {
	out := n.ParseAll(tokens)
	for i, c := range columns {
		if i >= len(tokens) {
			break
		}
		if c == ColumnDate || c == ColumnTime {
			out[i] = reading.Str(tokens[i])
		}
	}
	return out
}

func (s *scan) source() reading.Reading {
	return reading.Str(s.opts.source)
}

func (s *scan) wantDevice(name string) bool {
	if len(s.opts.devices) == 0 {
		return true
	}
	_, ok := s.opts.devices[name]
	return ok
}

func (s *scan) result() *Result {
	if !s.hasStart {
		slog.Warn("capture has no run start marker, dates set to sentinel", "source", s.opts.source)
	}

	res := &Result{
		Source:      s.opts.source,
		OS:          s.os,
		Description: s.description,
		Sections:    make([]*table.Table, len(s.sections)),
		Stats: Stats{
			Lines:     s.lines,
			Skipped:   make(map[SectionID]int),
			Rows:      make(map[SectionID]int),
			Sentinels: s.sentinels,
		},
	}
	if s.hasStart {
		res.RunStart = s.runStart
	}
	for i, sec := range s.sections {
		t := sec.assemble()
		res.Sections[i] = t
		res.Stats.Rows[sec.id] = t.Len()
		if sec.skipped > 0 {
			res.Stats.Skipped[sec.id] = sec.skipped
		}
		slog.Debug("section assembled",
			"section", sec.id,
			"headerFound", sec.frozen(),
			"rows", t.Len(),
			"skipped", sec.skipped)
	}
	return res
}
