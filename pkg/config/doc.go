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

// Package config loads the optional yaspe configuration file.
//
// Example yaspe.yaml:
//
//	os: Linux
//	iostat: true
//	nfsiostat: false
//	devices: [sda, sdb]
//	format: csv
//	output: ./out
//	workers: 8
//	decimal: "."
//	thousands: ","
package config
