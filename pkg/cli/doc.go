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

// Package cli implements the yaspe command line.
//
// # Overview
//
// yaspe turns performance capture files (HTML-wrapped vmstat, iostat,
// mgstat, nfsiostat, perfmon and sar -d output) into one table per section,
// ready for charting or loading into a store.
//
// # Commands
//
// extract - Extract section tables from one or more captures:
//
//	yaspe extract [--os linux] [--iostat] [--nfsiostat] [--disk dm-0] [--format csv --output out/] FILE...
//
// Files are processed in parallel (--workers). A file that fails is reported
// and the rest of the batch continues; the command fails only when every file
// fails. With --format csv each table is written to <output>/<source>_<section>.csv.
//
// overview - Print the capture header (OS, host, run start, mgstat config):
//
//	yaspe overview FILE
//
// split - Copy the part of a capture that precedes a marker line:
//
//	yaspe split [--marker "div id=iostat"] [--dir DIR] FILE
//
// mgstat - Extract a bare mgstat (.mgst) file:
//
//	yaspe mgstat [--run-start 2024-01-02] FILE
//
// java-memory - List java processes and their memory per ps -elfy snapshot:
//
//	yaspe java-memory [--format csv --output out/] FILE...
//
// # Global Flags
//
//	--log-level    debug, info, warn, error (default: info)
//	--log-format   json, text or auto (default: auto)
//	--config       YAML file with extraction defaults
//
// # Output Formats
//
//	table  aligned columns, one block per section (default)
//	json   full Result including run start and description
//	yaml   same as json
//	csv    header row then rows, one file per section when --output is set
//
// # Environment Variables
//
//	LOG_LEVEL      logging verbosity when --log-level is not set
//	YASPE_OS       default --os
//	YASPE_FORMAT   default --format
//	YASPE_WORKERS  default --workers
//	YASPE_CONFIG   default --config
package cli
