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

package table

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaspe-go/yaspe/pkg/reading"
)

func TestZip(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		values  []string
		want    []string
	}{
		{"equal", []string{"a", "b"}, []string{"1", "2"}, []string{"a", "b"}},
		{"more values", []string{"a"}, []string{"1", "2"}, []string{"a"}},
		{"more columns", []string{"a", "b", "c"}, []string{"1"}, []string{"a"}},
		{"duplicate column", []string{"sy", "sy"}, []string{"1", "2"}, []string{"sy"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vals := make([]reading.Reading, len(tt.values))
			for i, v := range tt.values {
				vals[i] = reading.Str(v)
			}
			assert.Equal(t, tt.want, Zip(tt.columns, vals).Names())
		})
	}
}

func TestZip_DuplicateKeepsLastValue(t *testing.T) {
	r := Zip([]string{"sy", "us", "sy"}, []reading.Reading{reading.Int(1), reading.Int(2), reading.Int(3)})
	v, ok := r.Get("sy")
	assert.True(t, ok)
	assert.Equal(t, int64(3), v.Any())
	assert.Equal(t, []string{"sy", "us"}, r.Names())
}

func TestRow_SetGetRename(t *testing.T) {
	r := NewRow(2)
	r.Set("Date", reading.Str("01/02/2024"))
	r.Set("Time", reading.Str("00:00:01"))
	r.Set("Date", reading.Str("2024/01/02"))

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, "2024/01/02", r.GetString("Date"))
	assert.Equal(t, "", r.GetString("missing"))
	assert.False(t, r.Has("missing"))

	r.Rename("Date", "datetime")
	assert.Equal(t, []string{"datetime", "Time"}, r.Names())
}
