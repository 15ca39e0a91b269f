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
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/yaspe-go/yaspe/pkg/errors"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func collect(t *testing.T, text string) []string {
	t.Helper()
	var lines []string
	require.NoError(t, ScanLines(strings.NewReader(text), func(line string) error {
		lines = append(lines, line)
		return nil
	}))
	return lines
}

func TestScanLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "unix endings", text: "a\nb\n", want: []string{"a", "b"}},
		{name: "crlf endings", text: "a\r\nb\r\n", want: []string{"a", "b"}},
		{name: "no trailing newline", text: "a\nb", want: []string{"a", "b"}},
		{name: "blank lines kept", text: "a\n\nb\n", want: []string{"a", "", "b"}},
		{name: "empty input", text: "", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, collect(t, tt.text))
		})
	}
}

func TestScanLinesLongLine(t *testing.T) {
	long := strings.Repeat("x", 1<<20)
	lines := collect(t, long+"\nshort\n")
	require.Len(t, lines, 2)
	assert.Len(t, lines[0], 1<<20)
}

func TestScanLinesStopsOnCallbackError(t *testing.T) {
	stop := errors.New("stop")
	var seen int
	err := ScanLines(strings.NewReader("a\nb\nc\n"), func(string) error {
		seen++
		if seen == 2 {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 2, seen)
}

func TestOpenDecodesLatin1(t *testing.T) {
	// 0xE9 is e-acute in ISO-8859-1 and invalid on its own in UTF-8.
	path := writeFile(t, "capture.html", []byte("Customer: Caf\xe9\n"))

	rc, err := Open(path)
	require.NoError(t, err)
	defer rc.Close()

	lines := []string{}
	require.NoError(t, ScanLines(rc, func(line string) error {
		lines = append(lines, line)
		return nil
	}))
	assert.Equal(t, []string{"Customer: Café"}, lines)
}

func TestOpenErrors(t *testing.T) {
	dir := t.TempDir()
	big := writeFile(t, "big.html", []byte(strings.Repeat("x", 100)))

	tests := []struct {
		name string
		path string
		opts []Option
		code cerrors.ErrorCode
	}{
		{name: "empty path", path: "  ", code: cerrors.ErrCodeInvalidRequest},
		{name: "missing file", path: filepath.Join(dir, "nope.html"), code: cerrors.ErrCodeNotFound},
		{name: "directory", path: dir, code: cerrors.ErrCodeInvalidRequest},
		{name: "too large", path: big, opts: []Option{WithMaxSize(10)}, code: cerrors.ErrCodeInvalidRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc, err := Open(tt.path, tt.opts...)
			require.Error(t, err)
			assert.Nil(t, rc)
			assert.Equal(t, tt.code, cerrors.CodeOf(err))
		})
	}
}
