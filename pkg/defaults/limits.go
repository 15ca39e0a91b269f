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

package defaults

// Size limits for capture input.
const (
	// MaxCaptureSize is the largest capture file read from disk. Larger files
	// should be split first.
	MaxCaptureSize int64 = 512 << 20

	// MaxUploadSize is the largest capture accepted by the HTTP API.
	MaxUploadSize int64 = 128 << 20
)

// Batch processing defaults.
const (
	// BatchWorkers is the default number of capture files scanned in parallel.
	BatchWorkers = 4

	// MaxBatchWorkers caps the --workers flag.
	MaxBatchWorkers = 64
)

// SplitMarker is the default line marker used by the capture splitter.
const SplitMarker = "div id=iostat"

// SplitDir is the directory, relative to the capture, that split parts go to.
const SplitDir = "split_html"
