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

import "strings"

// Section boundary and header markers. Matching is substring containment
// on the raw line; captures are not parsed as HTML.
const (
	mgstatBegin = "<!-- beg_mgstat -->"
	mgstatEnd   = "<!-- end_mgstat -->"
	mgstatHead  = "Glorefs"
	mgstatConf  = "numberofcpus="

	vmstatBegin = "<!-- beg_vmstat -->"
	vmstatEnd   = "<!-- end_vmstat -->"
	vmstatHead  = "us sy id wa"

	iostatID       = "id=iostat"
	iostatIDQuoted = `id="iostat"`
	iostatHead     = "Device"
	iostatCPU      = "avg-cpu"

	nfsiostatID  = "id=nfsiostat"
	nfsiostatEnd = "pre>"
	nfsMount     = "mounted on"
	nfsRead      = "read:"
	nfsWrite     = "write:"

	perfmonID   = "id=perfmon"
	perfmonEnd  = "<!-- end_win_perfmon -->"
	perfmonHead = "Memory"

	sarDBegin = "<div id=sar-d>"
	sarDEnd   = "</pre><p align="
	sarDHead  = "device"

	// blockStart ends sections that have no closing marker of their own.
	blockStart = "<div"
)

func isMgstatBegin(line string) bool  { return strings.Contains(line, mgstatBegin) }
func isMgstatEnd(line string) bool    { return strings.Contains(line, mgstatEnd) }
func isMgstatHeader(line string) bool { return strings.Contains(line, mgstatHead) }
func isMgstatConfig(line string) bool { return strings.Contains(line, mgstatConf) }

func isVmstatBegin(line string) bool  { return strings.Contains(line, vmstatBegin) }
func isVmstatEnd(line string) bool    { return strings.Contains(line, vmstatEnd) }
func isVmstatHeader(line string) bool { return strings.Contains(line, vmstatHead) }

// isIostatStart matches both the bare and the quoted id attribute.
func isIostatStart(line string) bool {
	return strings.Contains(line, iostatID) || strings.Contains(line, iostatIDQuoted)
}

func isIostatHeader(line string) bool { return strings.Contains(line, iostatHead) }
func isIostatCPU(line string) bool    { return strings.Contains(line, iostatCPU) }

func isNfsiostatStart(line string) bool { return strings.Contains(line, nfsiostatID) }
func isNfsiostatEnd(line string) bool   { return strings.Contains(line, nfsiostatEnd) }
func isNfsMount(line string) bool       { return strings.Contains(line, nfsMount) }
func isNfsRead(line string) bool        { return strings.Contains(line, nfsRead) }
func isNfsWrite(line string) bool       { return strings.Contains(line, nfsWrite) }

func isPerfmonStart(line string) bool  { return strings.Contains(line, perfmonID) }
func isPerfmonEnd(line string) bool    { return strings.Contains(line, perfmonEnd) }
func isPerfmonHeader(line string) bool { return strings.Contains(line, perfmonHead) }

func isSarDStart(line string) bool { return strings.Contains(line, sarDBegin) }

// isSarDEnd matches the closing pre of the sar-d block but not a line that
// also opens it.
func isSarDEnd(line string) bool {
	return strings.Contains(line, sarDEnd) && !strings.Contains(line, sarDBegin)
}

func isSarDHeader(line string) bool { return strings.Contains(line, sarDHead) }

func isBlockStart(line string) bool { return strings.Contains(line, blockStart) }

// skippedByFlags reports lines dropped before routing because the caller
// turned the owning section off. The whole line is ignored, for every
// section.
func skippedByFlags(line string, iostat, nfsiostat bool) bool {
	if !iostat && strings.Contains(line, iostatID) {
		return true
	}
	return !nfsiostat && strings.Contains(line, nfsiostatID)
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
