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

import "time"

// midnight is the previous-time value a fresh Cursor compares against.
const midnight = "00:00:00"

// Cursor carries the current date through a stream of rows that only have
// a time of day. The date advances one day whenever a time compares lower
// than the one before it; zero-padded HH:MM:SS strings order correctly as
// strings, so no parsing is needed.
//
// Each section owns its own Cursor.
type Cursor struct {
	date    time.Time
	prev    string
	started bool
}

// NewCursor returns a Cursor starting on the calendar day of start.
func NewCursor(start time.Time) *Cursor {
	return &Cursor{
		date: DateOf(start),
		prev: midnight,
	}
}

// Seed moves the starting date, but only before the first Advance.
// It reports whether the seed was applied.
func (c *Cursor) Seed(date time.Time) bool {
	if c.started {
		return false
	}
	c.date = DateOf(date)
	return true
}

// Advance records the time of the next row and returns that row's date.
func (c *Cursor) Advance(clock string) string {
	c.started = true
	if clock < c.prev {
		c.date = c.date.AddDate(0, 0, 1)
	}
	c.prev = clock
	return c.date.Format(Layout)
}

// Previous returns the last time passed to Advance, or "00:00:00".
func (c *Cursor) Previous() string {
	return c.prev
}

// Date returns the current date in Layout form.
func (c *Cursor) Date() string {
	return c.date.Format(Layout)
}
