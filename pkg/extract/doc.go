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

// Package extract scans performance capture files and turns each tool
// section into a table.
//
// A scan is a single pass over the capture. Every line is offered to the
// section builders in a fixed order (mgstat, vmstat or perfmon, iostat and
// nfsiostat, AIX sar -d); each builder watches for its own start and end
// markers, freezes its column list at the first header line, and turns
// later lines into rows. Lines that do not fit are skipped and counted,
// never reported as errors.
//
// Dates are normalized against the run start read from the capture's
// "Profile run" line; a later marker replaces an earlier one. Sections whose rows carry a date of unknown field
// order go through calendar.Reconciler; AIX sections that print only a
// time of day are dated by a calendar.Cursor that rolls over at midnight.
//
// Usage:
//
//	res, err := extract.ExtractFile("capture.html",
//	    extract.WithOS(capture.Linux),
//	    extract.WithIostat(true),
//	    extract.WithDevices("sdb"),
//	)
//	if err != nil {
//	    return err
//	}
//	vm := res.Table(extract.SectionVmstat)
//
// Every Result carries all six sections; a section that never appeared is
// the table.Empty sentinel rather than nil.
//
// JavaMemory is a separate pass over the ps -elfy snapshots of a capture
// that lists java processes with their resident memory and heap flags.
package extract
