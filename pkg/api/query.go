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
	"net/http"
	"strconv"
	"strings"

	"github.com/yaspe-go/yaspe/pkg/capture"
	"github.com/yaspe-go/yaspe/pkg/errors"
	"github.com/yaspe-go/yaspe/pkg/extract"
	"github.com/yaspe-go/yaspe/pkg/reading"
)

const defaultSource = "upload"

// ExtractQuery holds the /v1/extract query parameters.
type ExtractQuery struct {
	// OS is empty when the caller leaves detection to the capture.
	OS        capture.OS `json:"os,omitempty"`
	Iostat    bool       `json:"iostat"`
	Nfsiostat bool       `json:"nfsiostat"`
	Devices   []string   `json:"disk,omitempty"`
	Source    string     `json:"source"`

	// Format reads the numbers in the capture.
	Format reading.NumberFormat `json:"-"`
}

// ParseQuery reads the extraction parameters from r. Invalid values come
// back as INVALID_REQUEST errors naming the parameter.
func ParseQuery(r *http.Request) (*ExtractQuery, error) {
	v := r.URL.Query()
	q := &ExtractQuery{
		Source: strings.TrimSpace(v.Get("source")),
		Format: reading.USFormat,
	}
	if q.Source == "" {
		q.Source = defaultSource
	}

	if s := v.Get("os"); s != "" {
		os, err := capture.ParseOS(s)
		if err != nil {
			return nil, invalidParam("os", s, err)
		}
		q.OS = os
	}

	var err error
	if q.Iostat, err = parseBool(v.Get("iostat")); err != nil {
		return nil, invalidParam("iostat", v.Get("iostat"), err)
	}
	if q.Nfsiostat, err = parseBool(v.Get("nfsiostat")); err != nil {
		return nil, invalidParam("nfsiostat", v.Get("nfsiostat"), err)
	}

	for _, d := range v["disk"] {
		for _, name := range strings.Split(d, ",") {
			if name = strings.TrimSpace(name); name != "" {
				q.Devices = append(q.Devices, name)
			}
		}
	}

	if v.Has("thousands") || v.Has("decimal") {
		f, err := reading.ParseNumberFormat(v.Get("thousands"), v.Get("decimal"))
		if err != nil {
			return nil, invalidParam("decimal", v.Get("decimal"), err)
		}
		q.Format = f
	}

	return q, nil
}

func parseBool(s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	return strconv.ParseBool(s)
}

func invalidParam(name, value string, cause error) error {
	return errors.WrapWithContext(errors.ErrCodeInvalidRequest, "invalid query parameter "+name, cause,
		map[string]any{"parameter": name, "value": value})
}

// Options turns the query into extraction options. os overrides q.OS when
// the query did not name one.
func (q *ExtractQuery) Options(os capture.OS) []extract.Option {
	if q.OS != "" {
		os = q.OS
	}
	opts := []extract.Option{
		extract.WithIostat(q.Iostat),
		extract.WithNfsiostat(q.Nfsiostat),
		extract.WithDevices(q.Devices...),
		extract.WithSourceName(q.Source),
		extract.WithNumberFormat(q.Format),
	}
	if os != "" && os != capture.Unknown {
		opts = append(opts, extract.WithOS(os))
	}
	return opts
}
