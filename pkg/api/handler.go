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
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/yaspe-go/yaspe/pkg/capture"
	"github.com/yaspe-go/yaspe/pkg/defaults"
	"github.com/yaspe-go/yaspe/pkg/errors"
	"github.com/yaspe-go/yaspe/pkg/extract"
	"github.com/yaspe-go/yaspe/pkg/serializer"
	"github.com/yaspe-go/yaspe/pkg/server"
)

// Handler serves the capture endpoints.
type Handler struct {
	maxUpload       int64
	extractTimeout  time.Duration
	overviewTimeout time.Duration
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithMaxUpload bounds the request body size.
func WithMaxUpload(n int64) HandlerOption {
	return func(h *Handler) {
		if n > 0 {
			h.maxUpload = n
		}
	}
}

// WithTimeouts sets the per-request processing budgets.
func WithTimeouts(extractTimeout, overviewTimeout time.Duration) HandlerOption {
	return func(h *Handler) {
		if extractTimeout > 0 {
			h.extractTimeout = extractTimeout
		}
		if overviewTimeout > 0 {
			h.overviewTimeout = overviewTimeout
		}
	}
}

// NewHandler returns a Handler with defaults applied.
func NewHandler(opts ...HandlerOption) *Handler {
	h := &Handler{
		maxUpload:       defaults.MaxUploadSize,
		extractTimeout:  defaults.ExtractHandlerTimeout,
		overviewTimeout: defaults.OverviewHandlerTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes returns the path to handler map for server.WithHandler.
func (h *Handler) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"/v1/extract":  h.HandleExtract,
		"/v1/overview": h.HandleOverview,
	}
}

// HandleExtract handles POST /v1/extract. The body is the raw capture.
func (h *Handler) HandleExtract(w http.ResponseWriter, r *http.Request) {
	if !allowPost(w, r) {
		return
	}

	q, err := ParseQuery(r)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "invalid query", nil)
		return
	}

	body, err := h.readBody(w, r)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "failed to read capture", nil)
		return
	}

	res, err := run(r.Context(), h.extractTimeout, func() (*extract.Result, error) {
		os := q.OS
		if os == "" {
			ov, err := capture.ReadOverview(capture.NewReader(bytes.NewReader(body)))
			if err != nil {
				return nil, err
			}
			os = ov.OS
		}
		return extract.Extract(capture.NewReader(bytes.NewReader(body)), q.Options(os)...)
	})
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "extraction failed", map[string]any{"source": q.Source})
		return
	}

	slog.Debug("capture extracted",
		"requestID", server.RequestID(r.Context()),
		"source", res.Source,
		"os", res.OS,
		"bytes", len(body),
		"lines", res.Stats.Lines)

	serializer.RespondJSON(w, http.StatusOK, res)
}

// HandleOverview handles POST /v1/overview.
func (h *Handler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	if !allowPost(w, r) {
		return
	}

	body, err := h.readBody(w, r)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "failed to read capture", nil)
		return
	}

	ov, err := run(r.Context(), h.overviewTimeout, func() (*capture.Overview, error) {
		return capture.ReadOverview(capture.NewReader(bytes.NewReader(body)))
	})
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "overview failed", nil)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, ov)
}

func allowPost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodPost {
		return true
	}
	w.Header().Set("Allow", http.MethodPost)
	server.WriteError(w, r, http.StatusMethodNotAllowed, errors.ErrCodeMethodNotAllowed,
		"method not allowed", false, map[string]any{"method": r.Method})
	return false
}

func (h *Handler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxUpload))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest, "capture exceeds upload limit",
				map[string]any{"limit": tooLarge.Limit})
		}
		return nil, errors.Wrap(errors.ErrCodeIO, "failed to read request body", err)
	}
	if len(body) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "empty capture")
	}
	return body, nil
}

// run calls fn and gives up when ctx ends or timeout passes. The scan itself
// is not interruptible; an abandoned scan finishes in the background.
func run[T any](ctx context.Context, timeout time.Duration, fn func() (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		v   T
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				slog.Error("capture processing panicked", "panic", p)
				done <- outcome{err: errors.NewWithContext(errors.ErrCodeInternal,
					"capture processing failed", map[string]any{"panic": fmt.Sprint(p)})}
			}
		}()
		v, err := fn()
		done <- outcome{v, err}
	}()

	select {
	case o := <-done:
		return o.v, o.err
	case <-ctx.Done():
		var zero T
		return zero, errors.Wrap(errors.ErrCodeTimeout, "capture processing timed out", ctx.Err())
	}
}
