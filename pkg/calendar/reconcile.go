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
	"log/slog"
	"strconv"
	"strings"
	"time"
)

const (
	// Layout is the unambiguous form every reconciled date takes.
	Layout = "2006/01/02"

	// Sentinel is returned when no reading of a date token lies within a day
	// of the run start. It is deliberately visible in charts.
	Sentinel = "1900/01/01"
)

// window is how far a row date may drift from the run start.
const window = 24 * time.Hour

// permutations lists the (day, month, year) orderings of three date
// components, in the order they are tried.
var permutations = [6][3]int{
	{0, 1, 2},
	{0, 2, 1},
	{1, 0, 2},
	{1, 2, 0},
	{2, 0, 1},
	{2, 1, 0},
}

// SplitDate splits a d1/d2/d3 token into its three numeric components.
// '-' and '.' are accepted as separators too.
func SplitDate(token string) ([3]int, bool) {
	var out [3]int
	parts := strings.FieldsFunc(strings.TrimSpace(token), func(r rune) bool {
		return r == '/' || r == '-' || r == '.'
	})
	if len(parts) != 3 {
		return out, false
	}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || strings.ContainsAny(p, "+-") {
			return out, false
		}
		out[i] = n
	}
	return out, true
}

// candidate builds the date for one permutation, or false if it is rejected.
func candidate(parts [3]int, perm [3]int, runStart time.Time) (time.Time, bool) {
	day, month, year := parts[perm[0]], parts[perm[1]], parts[perm[2]]
	if year < 100 {
		year += 2000
	}
	if day < 1 || day > 31 || month < 1 || month > 12 || year < runStart.Year() {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day {
		// e.g. 31/04 rolled into May
		return time.Time{}, false
	}
	return t, true
}

func inWindow(t, runStart time.Time) bool {
	d := t.Sub(DateOf(runStart))
	return d >= -window && d <= window
}

// search tries every permutation in order and returns the first date within
// a day of the run start and the index of the permutation that produced it.
func search(parts [3]int, runStart time.Time) (time.Time, int, bool) {
	for i, perm := range permutations {
		t, ok := candidate(parts, perm, runStart)
		if ok && inWindow(t, runStart) {
			return t, i, true
		}
	}
	return time.Time{}, -1, false
}

// Reconcile resolves a date token of unknown field order against the run
// start and returns it in Layout form, or Sentinel when nothing fits.
func Reconcile(runStart time.Time, token string) string {
	parts, ok := SplitDate(token)
	if !ok {
		return Sentinel
	}
	t, _, ok := search(parts, runStart)
	if !ok {
		return Sentinel
	}
	return t.Format(Layout)
}

// Reconciler reconciles the date column of one section. It remembers the
// field order that last worked and tries it first, and it skips all work
// while the raw token is unchanged from the previous row. Both shortcuts
// return what Reconcile would: within a one-day window no two orderings of
// the same token yield different in-window dates.
//
// A Reconciler is not safe for concurrent use.
type Reconciler struct {
	runStart time.Time
	order    int
	lastRaw  string
	lastOut  string
	section  string
}

// NewReconciler returns a Reconciler for one section of one capture.
func NewReconciler(runStart time.Time, section string) *Reconciler {
	return &Reconciler{
		runStart: runStart,
		order:    -1,
		section:  section,
	}
}

// Reconcile returns the Layout form of token, or Sentinel.
func (r *Reconciler) Reconcile(token string) string {
	if r.lastOut != "" && token == r.lastRaw {
		return r.lastOut
	}
	out := r.reconcile(token)
	r.lastRaw, r.lastOut = token, out
	return out
}

func (r *Reconciler) reconcile(token string) string {
	parts, ok := SplitDate(token)
	if !ok {
		return Sentinel
	}
	if r.order >= 0 {
		if t, ok := candidate(parts, permutations[r.order], r.runStart); ok && inWindow(t, r.runStart) {
			return t.Format(Layout)
		}
	}
	t, i, ok := search(parts, r.runStart)
	if !ok {
		slog.Debug("no date reading within a day of run start",
			"section", r.section,
			"token", token,
			"runStart", r.runStart.Format(Layout))
		return Sentinel
	}
	r.order = i
	return t.Format(Layout)
}

// ParseCanonical parses a Layout date. The sentinel is reported as not ok.
func ParseCanonical(s string) (time.Time, bool) {
	if s == Sentinel {
		return time.Time{}, false
	}
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
