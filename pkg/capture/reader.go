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
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/yaspe-go/yaspe/pkg/defaults"
	cerrors "github.com/yaspe-go/yaspe/pkg/errors"
)

// Option configures how a capture file is opened.
type Option func(*opener)

type opener struct {
	maxSize int64
}

// WithMaxSize sets the largest file Open accepts, in bytes.
// Default is defaults.MaxCaptureSize.
func WithMaxSize(size int64) Option {
	return func(o *opener) {
		o.maxSize = size
	}
}

type readCloser struct {
	io.Reader
	io.Closer
}

// Open opens a capture file for reading as text. Captures are written in
// ISO-8859-1, so bytes are decoded from Latin-1 rather than assumed UTF-8.
func Open(path string, opts ...Option) (io.ReadCloser, error) {
	o := &opener{maxSize: defaults.MaxCaptureSize}
	for _, opt := range opts {
		opt(o)
	}

	if strings.TrimSpace(path) == "" {
		return nil, cerrors.New(cerrors.ErrCodeInvalidRequest, "capture path cannot be empty")
	}

	f, err := os.Open(path)
	if err != nil {
		code := cerrors.ErrCodeIO
		if errors.Is(err, fs.ErrNotExist) {
			code = cerrors.ErrCodeNotFound
		}
		return nil, cerrors.WrapWithContext(code, "failed to open capture", err, map[string]any{"path": path})
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, cerrors.WrapWithContext(cerrors.ErrCodeIO, "failed to stat capture", err, map[string]any{"path": path})
	}
	if info.IsDir() {
		f.Close()
		return nil, cerrors.NewWithContext(cerrors.ErrCodeInvalidRequest, "capture path is a directory", map[string]any{"path": path})
	}
	if o.maxSize > 0 && info.Size() > o.maxSize {
		f.Close()
		return nil, cerrors.NewWithContext(cerrors.ErrCodeInvalidRequest, "capture exceeds maximum size, split it first",
			map[string]any{"path": path, "size": info.Size(), "max": o.maxSize})
	}

	return readCloser{Reader: NewReader(f), Closer: f}, nil
}

// NewReader decodes a Latin-1 byte stream into UTF-8 text.
func NewReader(r io.Reader) io.Reader {
	return transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
}

// ScanLines calls fn for every line of r with the line terminator removed.
// Lines may be arbitrarily long. A non-nil error from fn stops the scan and
// is returned; read failures come back as IO_ERROR.
func ScanLines(r io.Reader, fn func(line string) error) error {
	br := bufio.NewReaderSize(r, 64<<10)
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			line = strings.TrimRight(line, "\r\n")
			if ferr := fn(line); ferr != nil {
				return ferr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return cerrors.Wrap(cerrors.ErrCodeIO, "failed to read capture", err)
		}
	}
}
