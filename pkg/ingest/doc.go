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

// Package ingest runs capture extraction over a batch of files.
//
// Each file gets its own independent scan; files run in parallel up to the
// configured worker count. A file that cannot be read (or whose scan panics)
// is recorded with its error and the rest of the batch carries on.
//
// Usage:
//
//	runner := ingest.NewRunner(
//		ingest.WithWorkers(8),
//		ingest.WithExtractOptions(extract.WithIostat(true)),
//	)
//	report, err := runner.Run(ctx, paths)
//	for _, f := range report.Failed() {
//		slog.Warn("skipped", "path", f.Path, "error", f.Error)
//	}
package ingest
