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

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yaspe-go/yaspe/pkg/capture"
	"github.com/yaspe-go/yaspe/pkg/errors"
	"github.com/yaspe-go/yaspe/pkg/extract"
	"github.com/yaspe-go/yaspe/pkg/reading"
	"github.com/yaspe-go/yaspe/pkg/server"
)

const linuxCapture = `<html><body>
Version String: IRIS for UNIX (Red Hat Enterprise Linux for x86-64) 2022.1
Profile run "24hours" started at 00:00 on Jan 02 2024.
<!-- beg_mgstat -->
<div id=mgstat></div>mgstat</font></b><br><pre>
numberofcpus=16:8,globalbuffers=8192
Date,       Time    , Glorefs, RemGrefs
01/02/2024, 00:00:01, 1000, 0
01/02/2024, 00:00:02, 1500.5, 1
</pre>
<!-- end_mgstat -->
<!-- beg_vmstat -->
<div id=vmstat></div>vmstat</font></b><br><pre>
procs -----------memory---------- ---swap-- -----io---- -system-- ------cpu-----
         r  b   swpd   free   buff  cache   si   so    bi    bo   in   cs us sy id wa st
01/02/24 00:00:01 1  0      0 1000000 2000  30000    0    0     5    10  100  200  5  2 93  0  0
</pre>
<!-- end_vmstat -->
</body></html>
`

// response mirrors extract.Result with untyped cells.
type response struct {
	Source      string     `json:"source"`
	OS          capture.OS `json:"os"`
	Description string     `json:"description"`
	Sections    []struct {
		Name    string   `json:"name"`
		Columns []string `json:"columns"`
		Rows    [][]any  `json:"rows"`
	} `json:"sections"`
}

func post(t *testing.T, h http.Handler, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleExtract(t *testing.T) {
	h := newServer().Handler()

	rec := post(t, h, "/v1/extract?source=db01", linuxCapture)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	var resp response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "db01", resp.Source)
	assert.Equal(t, capture.Linux, resp.OS, "os detected from the capture")
	assert.Equal(t, "numberofcpus=16,8,globalbuffers=8192", resp.Description)
	require.Len(t, resp.Sections, len(extract.Sections))

	mgstat := resp.Sections[0]
	assert.Equal(t, string(extract.SectionMgstat), mgstat.Name)
	require.Len(t, mgstat.Rows, 2)
	assert.Equal(t, "2024/01/02", mgstat.Rows[0][0])
	assert.Contains(t, mgstat.Columns, "html name")

	vmstat := resp.Sections[1]
	require.Len(t, vmstat.Rows, 1)
}

func TestHandleExtract_Errors(t *testing.T) {
	h := newServer().Handler()

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
		code   errors.ErrorCode
	}{
		{"wrong method", http.MethodGet, "/v1/extract", "", http.StatusMethodNotAllowed, errors.ErrCodeMethodNotAllowed},
		{"bad os", http.MethodPost, "/v1/extract?os=plan9", linuxCapture, http.StatusBadRequest, errors.ErrCodeInvalidRequest},
		{"bad flag", http.MethodPost, "/v1/extract?iostat=maybe", linuxCapture, http.StatusBadRequest, errors.ErrCodeInvalidRequest},
		{"bad separators", http.MethodPost, "/v1/extract?decimal=,&thousands=,", linuxCapture, http.StatusBadRequest, errors.ErrCodeInvalidRequest},
		{"empty body", http.MethodPost, "/v1/extract", "", http.StatusBadRequest, errors.ErrCodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			var resp server.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, string(tt.code), resp.Code)
			assert.NotEmpty(t, resp.RequestID)
		})
	}
}

func TestHandleExtract_UploadLimit(t *testing.T) {
	h := NewHandler(WithMaxUpload(16))

	rec := httptest.NewRecorder()
	h.HandleExtract(rec, httptest.NewRequest(http.MethodPost, "/v1/extract", strings.NewReader(linuxCapture)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp server.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "capture exceeds upload limit", resp.Message)
	assert.Equal(t, float64(16), resp.Details["limit"])
}

func TestHandleExtract_ExplicitOS(t *testing.T) {
	h := NewHandler()

	rec := httptest.NewRecorder()
	h.HandleExtract(rec, httptest.NewRequest(http.MethodPost, "/v1/extract?os=aix", strings.NewReader(linuxCapture)))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, capture.AIX, resp.OS)
	assert.Equal(t, defaultSource, resp.Source)
}

func TestHandleOverview(t *testing.T) {
	h := newServer().Handler()

	rec := post(t, h, "/v1/overview", linuxCapture)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var ov capture.Overview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ov))
	assert.Equal(t, capture.Linux, ov.OS)
	assert.Equal(t, "numberofcpus=16,8,globalbuffers=8192", ov.MgstatConfig)
	assert.Equal(t, 2024, ov.RunStart.Year())

	rec = post(t, h, "/v1/overview", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestParseQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost,
		"/v1/extract?os=Ubuntu&iostat=true&nfsiostat=1&disk=sda,sdb&disk=dm-0&source=host1&thousands=.&decimal=,", nil)

	q, err := ParseQuery(req)
	require.NoError(t, err)
	assert.Equal(t, capture.Ubuntu, q.OS)
	assert.True(t, q.Iostat)
	assert.True(t, q.Nfsiostat)
	assert.Equal(t, []string{"sda", "sdb", "dm-0"}, q.Devices)
	assert.Equal(t, "host1", q.Source)
	assert.Equal(t, reading.EuropeanFormat, q.Format)
	assert.Len(t, q.Options(capture.Linux), 6, "explicit os adds WithOS")

	q, err = ParseQuery(httptest.NewRequest(http.MethodPost, "/v1/extract", nil))
	require.NoError(t, err)
	assert.Equal(t, defaultSource, q.Source)
	assert.Equal(t, reading.USFormat, q.Format)
	assert.Len(t, q.Options(capture.Unknown), 5, "unknown os leaves detection on")
}

func TestRun_Timeout(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	_, err := run(t.Context(), 10*time.Millisecond, func() (int, error) {
		<-release
		return 1, nil
	})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeTimeout, errors.CodeOf(err))
}

func TestRun_Panic(t *testing.T) {
	v, err := run(t.Context(), time.Second, func() (int, error) {
		panic("scanner bug")
	})
	require.Error(t, err)
	assert.Zero(t, v)
	assert.Equal(t, errors.ErrCodeInternal, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "capture processing failed")
}
