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

// Package api wires the yasped HTTP service: capture upload endpoints on top
// of the pkg/server chassis.
//
// # Endpoints
//
// Application endpoints (rate limited):
//   - POST /v1/extract  - extract every section table from the capture in the body
//   - POST /v1/overview - read the capture header (OS, run start, host, mgstat config)
//
// System endpoints:
//   - GET /health, GET /ready, GET /metrics, GET /
//
// # Query Parameters (POST /v1/extract)
//
//   - os: Linux, Ubuntu, AIX or Windows; detected from the capture when omitted
//   - iostat, nfsiostat: include those sections (true/false, default false)
//   - disk: iostat device filter, repeatable or comma separated
//   - source: value of the "html name" column (default "upload")
//   - thousands, decimal: number separators (default "," and ".")
//
// The body is the capture as collected (ISO-8859-1 bytes), up to
// defaults.MaxUploadSize.
//
// Example:
//
//	curl -X POST --data-binary @db01_20240102_0000_24hours.html \
//	  'http://localhost:8080/v1/extract?iostat=true&disk=sda&source=db01'
package api
