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

// Package defaults provides centralized configuration constants for yaspe.
//
// This package defines timeout values, size limits and batch defaults used
// across the codebase.
//
// # Categories
//
//   - Handler timeouts: For HTTP request processing
//   - Server timeouts: For HTTP server configuration
//   - CLI timeouts: For batch extraction runs
//   - Limits: capture and upload sizes, batch worker counts
//
// # Usage
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.ExtractHandlerTimeout)
//	defer cancel()
package defaults
