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

// Package server is the HTTP chassis behind yasped.
//
// It serves /health, /ready and /metrics directly and runs every other
// handler behind a middleware chain:
//
//	metrics -> API version -> request id -> panic recovery -> rate limit -> logging
//
// Errors are answered with ErrorResponse bodies. WriteErrorFromErr maps a
// pkg/errors StructuredError to its HTTP status and carries its context in
// the details.
//
// Usage:
//
//	s := server.New(
//		server.WithName("yasped"),
//		server.WithVersion(version),
//		server.WithHandler(map[string]http.HandlerFunc{
//			"/v1/extract": h.Extract,
//		}),
//	)
//	if err := s.Run(ctx); err != nil {
//		return err
//	}
//
// Environment:
//   - PORT: listen port (default 8080)
//   - SHUTDOWN_TIMEOUT_SECONDS: graceful shutdown budget (default 30)
package server
