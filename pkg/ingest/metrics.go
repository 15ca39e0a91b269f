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

package ingest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	filesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yaspe_ingest_files_total",
			Help: "Total number of capture files processed",
		},
		[]string{"status"}, // success, error or canceled
	)

	fileDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "yaspe_ingest_file_duration_seconds",
			Help:    "Time taken to extract one capture file",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		},
	)

	rowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yaspe_ingest_rows_total",
			Help: "Total number of rows extracted",
		},
		[]string{"section"},
	)

	sentinelsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "yaspe_ingest_sentinel_dates_total",
			Help: "Total number of rows stamped with the sentinel date",
		},
	)
)
