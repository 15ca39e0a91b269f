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

// Package reading holds the typed cell values of extracted tables and the
// normalizer that produces them from raw capture tokens.
//
// A Reading is an int64, a float64 or the residual string when a token is
// not numeric. Readings marshal to their bare scalar in JSON and YAML.
//
// Number parsing follows an explicit NumberFormat (thousands and decimal
// separators) passed to NewNormalizer; no process-wide locale is involved:
//
//	n := reading.NewNormalizer(reading.USFormat)
//	n.Parse("1234")     // int64 1234
//	n.Parse("1,234.5")  // float64 1234.5
//	n.Parse("sda")      // "sda"
//	n.ParseAIX("65.5K") // int64 65500
package reading
