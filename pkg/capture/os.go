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

package capture

import (
	"fmt"
	"strings"
)

// OS is the operating system a capture was collected on. It selects which
// section layouts the scanner expects.
type OS string

const (
	Linux   OS = "Linux"
	Ubuntu  OS = "Ubuntu"
	AIX     OS = "AIX"
	Windows OS = "Windows"
	Unknown OS = "Unknown"
)

// OSes lists every supported tag.
var OSes = []OS{Linux, Ubuntu, AIX, Windows, Unknown}

// String returns the tag name.
func (o OS) String() string {
	return string(o)
}

// IsUnix reports whether vmstat/iostat/nfsiostat follow the Linux layouts.
func (o OS) IsUnix() bool {
	return o == Linux || o == Ubuntu
}

// ParseOS parses a tag case-insensitively.
func ParseOS(s string) (OS, error) {
	for _, o := range OSes {
		if strings.EqualFold(string(o), strings.TrimSpace(s)) {
			return o, nil
		}
	}
	return "", fmt.Errorf("unknown operating system %q (must be one of %s)", s, strings.Join(osNames(), ", "))
}

func osNames() []string {
	names := make([]string, len(OSes))
	for i, o := range OSes {
		names[i] = string(o)
	}
	return names
}

// versionMarkers identify the product version line the OS is read from.
var versionMarkers = []string{"Version String: ", "Product Version String: "}

// IsVersionLine reports whether line carries the product version string.
func IsVersionLine(line string) bool {
	for _, m := range versionMarkers {
		if strings.Contains(line, m) {
			return true
		}
	}
	return false
}

// DetectOS reads the OS from a product version line. Windows is checked
// first, then Linux, AIX and Ubuntu, so an Ubuntu string that also names
// Linux is reported as Linux.
func DetectOS(line string) OS {
	for _, o := range []OS{Windows, Linux, AIX, Ubuntu} {
		if strings.Contains(line, string(o)) {
			return o
		}
	}
	return Unknown
}
