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

package reading

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestScalar_JSON(t *testing.T) {
	tests := []struct {
		name    string
		reading Reading
		want    string
	}{
		{"int", Int(42), "42"},
		{"int64", Int64(9223372036854775807), "9223372036854775807"},
		{"float64", Float64(3.14), "3.14"},
		{"string", Str("sda"), `"sda"`},
		{"empty string", Str(""), `""`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.reading)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}

func TestScalar_YAML(t *testing.T) {
	data, err := yaml.Marshal(map[string]Reading{"r": Int(7)})
	require.NoError(t, err)
	assert.Equal(t, "r: 7\n", string(data))
}

func TestScalar_String(t *testing.T) {
	tests := []struct {
		name    string
		reading Reading
		want    string
	}{
		{"int", Int64(1200), "1200"},
		{"float", Float64(12.5), "12.5"},
		{"whole float", Float64(1234), "1234"},
		{"small float", Float64(0.001), "0.001"},
		{"string", Str("00:01:02"), "00:01:02"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.reading.String())
		})
	}
}

func TestToReading(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  any
	}{
		{"int", 42, int64(42)},
		{"int64", int64(7), int64(7)},
		{"float64", 3.14, 3.14},
		{"string", "hello", "hello"},
		{"bool falls back to string", true, "true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToReading(tt.value).Any())
		})
	}
}

func TestScalar_UnmarshalJSON(t *testing.T) {
	var s Scalar[float64]
	require.NoError(t, json.Unmarshal([]byte("1.5"), &s))
	assert.Equal(t, 1.5, s.V)
}

func TestScalar_Kind(t *testing.T) {
	assert.Equal(t, KindInt, Int(1).Kind())
	assert.Equal(t, KindFloat, Float64(1).Kind())
	assert.Equal(t, KindText, Str("1").Kind())
}
