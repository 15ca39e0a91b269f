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

package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRunStart(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    time.Time
		wantErr bool
	}{
		{
			name: "collector form with clock",
			line: `Profile run "24hours" started at 00:05 on Jan 02 2024.`,
			want: time.Date(2024, 1, 2, 0, 5, 0, 0, time.UTC),
		},
		{
			name: "single digit day",
			line: `Profile run "8hours" started at 13:30 on Mar 7 2023.`,
			want: time.Date(2023, 3, 7, 13, 30, 0, 0, time.UTC),
		},
		{
			name: "profile name containing on",
			line: `Profile run "production 1day" started at 09:00:30 on Dec 31 2023.`,
			want: time.Date(2023, 12, 31, 9, 0, 30, 0, time.UTC),
		},
		{
			name: "no clock",
			line: "Profile run on Feb 29 2024.",
			want: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "iso date falls back to dateparse",
			line: "Profile run on 2024-06-15.",
			want: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "missing date",
			line:    `Profile run "24hours"`,
			wantErr: true,
		},
		{
			name:    "garbage date",
			line:    "Profile run on someday.",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRunStart(tt.line)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s want %s", got, tt.want)
		})
	}
}

func TestIsRunStartLine(t *testing.T) {
	assert.True(t, IsRunStartLine(`<b>Profile run "24hours" started at 00:00 on Jan 02 2024.</b>`))
	assert.False(t, IsRunStartLine("Profile: default"))
}
