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
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/yaspe-go/yaspe/pkg/calendar"
)

// Overview is the capture header information: where and when it was
// collected and on what platform.
type Overview struct {
	OS             OS        `json:"os" yaml:"os"`
	Version        string    `json:"version,omitempty" yaml:"version,omitempty"`
	Platform       string    `json:"platform,omitempty" yaml:"platform,omitempty"`
	Customer       string    `json:"customer,omitempty" yaml:"customer,omitempty"`
	Overview       string    `json:"overview,omitempty" yaml:"overview,omitempty"`
	ProfileRun     string    `json:"profileRun,omitempty" yaml:"profileRun,omitempty"`
	RunStart       time.Time `json:"runStart,omitzero" yaml:"runStart,omitempty"`
	RunOver        string    `json:"runOver,omitempty" yaml:"runOver,omitempty"`
	Instance       string    `json:"instance,omitempty" yaml:"instance,omitempty"`
	Hostname       string    `json:"hostname,omitempty" yaml:"hostname,omitempty"`
	Uptimes        []string  `json:"uptimes,omitempty" yaml:"uptimes,omitempty"`
	MgstatConfig   string    `json:"mgstatConfig,omitempty" yaml:"mgstatConfig,omitempty"`
	NumberOfCPUs   string    `json:"numberOfCpus,omitempty" yaml:"numberOfCpus,omitempty"`
	ProcessorModel string    `json:"processorModel,omitempty" yaml:"processorModel,omitempty"`
}

// ReadOverview scans a decoded capture and collects its Overview.
// OS is Unknown when no version line is present.
func ReadOverview(r io.Reader) (*Overview, error) {
	ov := &Overview{OS: Unknown}
	err := ScanLines(r, func(line string) error {
		ov.observe(line)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ov, nil
}

// ReadOverviewFile opens path and returns its Overview.
func ReadOverviewFile(path string, opts ...Option) (*Overview, error) {
	rc, err := Open(path, opts...)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return ReadOverview(rc)
}

// MgstatConfig renders the mgstat buffer configuration line as a
// comma-separated description.
func MgstatConfig(line string) string {
	return strings.ReplaceAll(strings.TrimSpace(line), ":", ",")
}

func (ov *Overview) observe(line string) {
	trimmed := strings.TrimSpace(line)

	if strings.Contains(line, "VMware") {
		ov.Platform = "VMware"
	}
	if strings.Contains(line, "Customer: ") {
		if parts := strings.Split(line, ":"); len(parts) > 1 {
			ov.Customer = strings.TrimSpace(parts[1])
		}
	}
	if strings.Contains(line, "overview=") {
		if parts := strings.Split(line, "="); len(parts) > 1 {
			ov.Overview = strings.TrimSpace(parts[1])
		}
	}
	if IsVersionLine(line) {
		if _, after, ok := strings.Cut(line, ":"); ok {
			ov.Version = strings.TrimSpace(after)
		}
		ov.OS = DetectOS(line)
	}
	if calendar.IsRunStartLine(line) {
		ov.ProfileRun = trimmed
		if t, err := calendar.ParseRunStart(line); err == nil {
			ov.RunStart = t
		} else {
			slog.Debug("unparseable run start", "line", trimmed, "error", err)
		}
	}
	if strings.Contains(line, "Run over ") {
		ov.RunOver = trimmed
	}
	if before, after, ok := strings.Cut(line, " on machine "); ok {
		ov.Instance = strings.TrimSpace(before)
		ov.Hostname = strings.TrimSpace(after)
	}
	if strings.HasPrefix(line, "up ") {
		ov.Uptimes = append(ov.Uptimes, strings.TrimSpace(line[len("up "):]))
	}
	if strings.Contains(line, "numberofcpus=") {
		ov.MgstatConfig = MgstatConfig(trimmed)
		for _, item := range strings.Split(trimmed, ",") {
			if _, v, ok := strings.Cut(item, "numberofcpus="); ok {
				ov.NumberOfCPUs, _, _ = strings.Cut(v, ":")
			}
		}
	}
	if ov.ProcessorModel == "" && strings.Contains(line, "model name\t:") {
		if _, v, ok := strings.Cut(line, ":"); ok {
			ov.ProcessorModel = strings.TrimSpace(v)
		}
	}
}
