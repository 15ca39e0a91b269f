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
	"time"

	"github.com/yaspe-go/yaspe/pkg/capture"
	"github.com/yaspe-go/yaspe/pkg/defaults"
	"github.com/yaspe-go/yaspe/pkg/reading"
)

// Option configures an Extractor.
type Option func(*Extractor)

// WithOS sets the operating system the capture came from. Without it the
// OS is read from the capture's version line as the scan reaches it.
func WithOS(os capture.OS) Option {
	return func(e *Extractor) {
		e.os = os
	}
}

// WithIostat turns the iostat section on or off. Default is off.
func WithIostat(include bool) Option {
	return func(e *Extractor) {
		e.iostat = include
	}
}

// WithNfsiostat turns the nfsiostat section on or off. Default is off.
func WithNfsiostat(include bool) Option {
	return func(e *Extractor) {
		e.nfsiostat = include
	}
}

// WithDevices limits iostat rows to the named devices. No devices means all.
func WithDevices(devices ...string) Option {
	return func(e *Extractor) {
		e.devices = make(map[string]struct{}, len(devices))
		for _, d := range devices {
			if d != "" {
				e.devices[d] = struct{}{}
			}
		}
	}
}

// WithSourceName sets the value of the source column on every row.
func WithSourceName(name string) Option {
	return func(e *Extractor) {
		e.source = name
	}
}

// WithNumberFormat sets the thousands and decimal separators used to read
// numbers. Default is reading.USFormat.
func WithNumberFormat(f reading.NumberFormat) Option {
	return func(e *Extractor) {
		e.format = f
	}
}

// WithRunStart fixes the run start instead of reading it from the capture.
func WithRunStart(t time.Time) Option {
	return func(e *Extractor) {
		e.runStart = t
	}
}

// WithMaxSize bounds the capture size ExtractFile accepts.
// Default is defaults.MaxCaptureSize.
func WithMaxSize(size int64) Option {
	return func(e *Extractor) {
		e.maxSize = size
	}
}

func defaultExtractor() *Extractor {
	return &Extractor{
		format:  reading.USFormat,
		maxSize: defaults.MaxCaptureSize,
	}
}
