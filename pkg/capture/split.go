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

package capture

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/yaspe-go/yaspe/pkg/defaults"
	cerrors "github.com/yaspe-go/yaspe/pkg/errors"
)

// SplitResult describes the outcome of Split.
type SplitResult struct {
	Found bool   `json:"found" yaml:"found"`
	Path  string `json:"path,omitempty" yaml:"path,omitempty"`
	Lines int    `json:"lines" yaml:"lines"`
}

// Split copies every line of the capture at path that precedes the first
// line containing marker into <dir>/split_html/part1_<name>. When dir is
// empty the capture's own directory is used. Bytes are copied unchanged.
// If the marker never appears nothing is written and Found is false.
func Split(path, marker, dir string) (*SplitResult, error) {
	if marker == "" {
		marker = defaults.SplitMarker
	}
	if dir == "" {
		dir = filepath.Dir(path)
	}
	needle := []byte(marker)

	found, err := containsLine(path, needle)
	if err != nil {
		return nil, err
	}
	if !found {
		return &SplitResult{}, nil
	}

	outDir := filepath.Join(dir, defaults.SplitDir)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, cerrors.WrapWithContext(cerrors.ErrCodeIO, "failed to create split directory", err, map[string]any{"dir": outDir})
	}
	outPath := filepath.Join(outDir, "part1_"+filepath.Base(path))

	in, err := os.Open(path)
	if err != nil {
		return nil, cerrors.WrapWithContext(cerrors.ErrCodeIO, "failed to open capture", err, map[string]any{"path": path})
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return nil, cerrors.WrapWithContext(cerrors.ErrCodeIO, "failed to create split file", err, map[string]any{"path": outPath})
	}

	res := &SplitResult{Found: true, Path: outPath}
	w := bufio.NewWriter(out)
	br := bufio.NewReaderSize(in, 64<<10)
	for {
		line, rerr := br.ReadBytes('\n')
		if bytes.Contains(line, needle) {
			break
		}
		if len(line) > 0 {
			if _, err := w.Write(line); err != nil {
				out.Close()
				return nil, cerrors.Wrap(cerrors.ErrCodeIO, "failed to write split file", err)
			}
			res.Lines++
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			out.Close()
			return nil, cerrors.Wrap(cerrors.ErrCodeIO, "failed to read capture", rerr)
		}
	}
	if err := w.Flush(); err != nil {
		out.Close()
		return nil, cerrors.Wrap(cerrors.ErrCodeIO, "failed to write split file", err)
	}
	if err := out.Close(); err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeIO, "failed to close split file", err)
	}
	return res, nil
}

func containsLine(path string, needle []byte) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, cerrors.WrapWithContext(cerrors.ErrCodeIO, "failed to open capture", err, map[string]any{"path": path})
	}
	defer f.Close()

	br := bufio.NewReaderSize(f, 64<<10)
	for {
		line, err := br.ReadBytes('\n')
		if bytes.Contains(line, needle) {
			return true, nil
		}
		if err == io.EOF {
			return false, nil
		}
		if err != nil {
			return false, cerrors.Wrap(cerrors.ErrCodeIO, "failed to read capture", err)
		}
	}
}
