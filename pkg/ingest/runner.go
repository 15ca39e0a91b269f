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
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/yaspe-go/yaspe/pkg/defaults"
	"github.com/yaspe-go/yaspe/pkg/errors"
	"github.com/yaspe-go/yaspe/pkg/extract"
	"golang.org/x/sync/errgroup"
)

// Status of one file in a batch.
type Status string

const (
	StatusSuccess  Status = "success"
	StatusError    Status = "error"
	StatusCanceled Status = "canceled"
)

// FileResult is the outcome for one capture file.
type FileResult struct {
	Path     string          `json:"path" yaml:"path"`
	Status   Status          `json:"status" yaml:"status"`
	Result   *extract.Result `json:"result,omitempty" yaml:"result,omitempty"`
	Err      error           `json:"-" yaml:"-"`
	Error    string          `json:"error,omitempty" yaml:"error,omitempty"`
	Duration time.Duration   `json:"duration" yaml:"duration"`
}

// Report collects the outcome of every file in input order.
type Report struct {
	Files []*FileResult `json:"files" yaml:"files"`
}

// Results returns the results of the files that succeeded.
func (r *Report) Results() []*extract.Result {
	out := make([]*extract.Result, 0, len(r.Files))
	for _, f := range r.Files {
		if f.Status == StatusSuccess {
			out = append(out, f.Result)
		}
	}
	return out
}

// Failed returns the files that did not succeed, canceled ones included.
func (r *Report) Failed() []*FileResult {
	var out []*FileResult
	for _, f := range r.Files {
		if f.Status != StatusSuccess {
			out = append(out, f)
		}
	}
	return out
}

// Option configures a Runner.
type Option func(*Runner)

// WithWorkers sets how many files are scanned at once. Values below 1 use
// the default, values above defaults.MaxBatchWorkers are capped.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		switch {
		case n < 1:
			r.workers = defaults.BatchWorkers
		case n > defaults.MaxBatchWorkers:
			r.workers = defaults.MaxBatchWorkers
		default:
			r.workers = n
		}
	}
}

// WithExtractOptions sets the options passed to every extraction.
func WithExtractOptions(opts ...extract.Option) Option {
	return func(r *Runner) {
		r.opts = append(r.opts, opts...)
	}
}

// Runner extracts a batch of capture files in parallel. A failing file is
// recorded in the Report and never stops the others.
type Runner struct {
	workers int
	opts    []extract.Option
	extract func(path string, opts ...extract.Option) (*extract.Result, error)
}

// NewRunner returns a Runner with the given options applied.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		workers: defaults.BatchWorkers,
		extract: extract.ExtractFile,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run extracts every path. Once ctx is done no new file is started; files
// not started are reported as canceled and ctx.Err() is returned with the
// partial report.
func (r *Runner) Run(ctx context.Context, paths []string) (*Report, error) {
	report := &Report{Files: make([]*FileResult, len(paths))}

	slog.Debug("starting batch", "files", len(paths), "workers", r.workers)

	var mu sync.Mutex
	g := new(errgroup.Group)
	g.SetLimit(r.workers)

	for i, path := range paths {
		if ctx.Err() != nil {
			report.Files[i] = canceled(path, ctx.Err())
			continue
		}
		g.Go(func() error {
			fr := r.one(ctx, path)
			mu.Lock()
			report.Files[i] = fr
			mu.Unlock()
			return nil
		})
	}

	// workers never return errors
	_ = g.Wait()

	failed := len(report.Failed())
	slog.Info("batch complete",
		"files", len(paths),
		"succeeded", len(paths)-failed,
		"failed", failed)

	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, nil
}

func canceled(path string, err error) *FileResult {
	filesTotal.WithLabelValues(string(StatusCanceled)).Inc()
	return &FileResult{
		Path:   path,
		Status: StatusCanceled,
		Err:    err,
		Error:  err.Error(),
	}
}

func (r *Runner) one(ctx context.Context, path string) (fr *FileResult) {
	if err := ctx.Err(); err != nil {
		return canceled(path, err)
	}

	start := time.Now()
	fr = &FileResult{Path: path}

	defer func() {
		if p := recover(); p != nil {
			fr.Result = nil
			fr.Err = errors.New(errors.ErrCodeInternal, fmt.Sprintf("extraction panicked: %v", p))
		}
		fr.Duration = time.Since(start)
		fileDuration.Observe(fr.Duration.Seconds())
		if fr.Err != nil {
			fr.Status = StatusError
			fr.Error = fr.Err.Error()
			slog.Error("capture extraction failed", "path", path, "error", fr.Err)
		} else {
			fr.Status = StatusSuccess
		}
		filesTotal.WithLabelValues(string(fr.Status)).Inc()
	}()

	res, err := r.extract(path, r.opts...)
	if err != nil {
		fr.Err = err
		return fr
	}
	fr.Result = res
	record(res)

	slog.Debug("capture extracted",
		"path", path,
		"os", res.OS,
		"lines", res.Stats.Lines,
		"sentinels", res.Stats.Sentinels)
	return fr
}

func record(res *extract.Result) {
	for id, n := range res.Stats.Rows {
		rowsTotal.WithLabelValues(string(id)).Add(float64(n))
	}
	sentinelsTotal.Add(float64(res.Stats.Sentinels))
}
