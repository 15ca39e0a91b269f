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
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yaspe-go/yaspe/pkg/defaults"
	"github.com/yaspe-go/yaspe/pkg/errors"
	"github.com/yaspe-go/yaspe/pkg/extract"
)

const capture = `<html><body>
Version String: IRIS for UNIX (Red Hat Enterprise Linux for x86-64) 2022.1
Profile run "24hours" started at 00:00 on Jan 02 2024.
<!-- beg_mgstat -->
<div id=mgstat></div>mgstat</font></b><br><pre>
Date,       Time    , Glorefs, RemGrefs
01/02/2024, 00:00:01, 1000, 0
01/02/2024, 00:00:02, 1500, 1
</pre>
<!-- end_mgstat -->
</body></html>
`

func writeCaptures(t *testing.T, names ...string) []string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(paths[i], []byte(capture), 0o600))
	}
	return paths
}

func TestRunner_Run(t *testing.T) {
	paths := writeCaptures(t, "db01.html", "db02.html")
	paths = append(paths, filepath.Join(t.TempDir(), "missing.html"))

	successBefore := testutil.ToFloat64(filesTotal.WithLabelValues(string(StatusSuccess)))
	errorBefore := testutil.ToFloat64(filesTotal.WithLabelValues(string(StatusError)))
	rowsBefore := testutil.ToFloat64(rowsTotal.WithLabelValues(string(extract.SectionMgstat)))

	report, err := NewRunner(WithWorkers(2)).Run(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, report.Files, 3)

	for i, f := range report.Files {
		assert.Equal(t, paths[i], f.Path, "input order kept")
	}

	results := report.Results()
	require.Len(t, results, 2)
	assert.Equal(t, "db01", results[0].Source)
	assert.Equal(t, "db02", results[1].Source)
	assert.Equal(t, 2, results[0].Table(extract.SectionMgstat).Len())

	failed := report.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, StatusError, failed[0].Status)
	assert.Equal(t, errors.ErrCodeNotFound, errors.CodeOf(failed[0].Err))
	assert.NotEmpty(t, failed[0].Error)

	assert.Equal(t, successBefore+2, testutil.ToFloat64(filesTotal.WithLabelValues(string(StatusSuccess))))
	assert.Equal(t, errorBefore+1, testutil.ToFloat64(filesTotal.WithLabelValues(string(StatusError))))
	assert.Equal(t, rowsBefore+4, testutil.ToFloat64(rowsTotal.WithLabelValues(string(extract.SectionMgstat))))
}

func TestRunner_ExtractOptions(t *testing.T) {
	paths := writeCaptures(t, "db01.html")

	report, err := NewRunner(WithExtractOptions(extract.WithSourceName("custom"))).
		Run(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, report.Results(), 1)
	assert.Equal(t, "custom", report.Results()[0].Source)
}

func TestRunner_PanicIsRecorded(t *testing.T) {
	r := NewRunner()
	r.extract = func(path string, _ ...extract.Option) (*extract.Result, error) {
		if filepath.Base(path) == "bad" {
			panic("boom")
		}
		return &extract.Result{Source: filepath.Base(path)}, nil
	}

	report, err := r.Run(context.Background(), []string{"good", "bad", "also-good"})
	require.NoError(t, err)

	assert.Len(t, report.Results(), 2)
	failed := report.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, "bad", failed[0].Path)
	assert.Equal(t, errors.ErrCodeInternal, errors.CodeOf(failed[0].Err))
	assert.Contains(t, failed[0].Error, "boom")
}

func TestRunner_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	r := NewRunner(WithWorkers(1))
	r.extract = func(string, ...extract.Option) (*extract.Result, error) {
		calls++
		return &extract.Result{}, nil
	}

	report, err := r.Run(ctx, []string{"a", "b"})
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls)
	require.Len(t, report.Files, 2)
	for _, f := range report.Files {
		assert.Equal(t, StatusCanceled, f.Status)
	}
}

func TestWithWorkers(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{name: "zero uses default", in: 0, want: defaults.BatchWorkers},
		{name: "negative uses default", in: -3, want: defaults.BatchWorkers},
		{name: "in range", in: 7, want: 7},
		{name: "capped", in: defaults.MaxBatchWorkers + 1, want: defaults.MaxBatchWorkers},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewRunner(WithWorkers(tt.in)).workers)
		})
	}
}
