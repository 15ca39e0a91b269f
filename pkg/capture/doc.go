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

// Package capture reads performance capture files: the HTML-wrapped dumps
// of vmstat, iostat, mgstat and friends written by the collector.
//
// Captures are ISO-8859-1 text. Open and NewReader decode them to UTF-8;
// ScanLines walks the decoded text one line at a time.
//
// ReadOverview collects the capture header (operating system, run start,
// host) in one pass, and Split trims an oversized capture down to the part
// before a marker line.
package capture
