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

// Package calendar turns the date and time fragments found in capture rows
// into unambiguous calendar dates.
//
// Captures write row dates as d1/d2/d3 with no guaranteed field order.
// Reconcile tries each (day, month, year) ordering and keeps the first that
// falls within one day of the run start parsed from the "Profile run" line.
// Tokens that fit no ordering come back as Sentinel.
//
// Tools that print only a time of day use a Cursor, which advances the date
// whenever the time goes backwards.
package calendar
