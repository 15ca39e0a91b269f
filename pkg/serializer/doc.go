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

// Package serializer writes extraction results and overviews in JSON, YAML,
// aligned text tables or CSV, and reads JSON/YAML documents back.
//
// Values implementing Tabular (such as extract.Result) are rendered one
// table per section in the table and csv formats. Everything else is
// flattened into FIELD/VALUE pairs in table format.
//
// Usage:
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatTable, "")
//	defer w.Close()
//	if err := w.Serialize(ctx, result); err != nil {
//		return err
//	}
//
// One CSV file per section:
//
//	paths, err := serializer.WriteCSV("out", result.Source, result.Tables())
//
// For HTTP responses:
//
//	serializer.RespondJSON(w, http.StatusOK, data)
package serializer
