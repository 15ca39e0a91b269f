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

package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const psCapture = `<html><body>
<a id="ps -elfy_1">ps -elfy</a><pre>
S   UID       PID  PPID  C PRI  NI   RSS     SZ WCHAN  STIME TTY          TIME CMD
S   root        1     0  0  80   0  1000   2000 ep_pol 09:00 ?        00:00:01 /usr/lib/systemd/systemd --switched-root
S   irisusr  4242     1  0  80   0 2097152 3000000 futex_ 10:00 ?     00:05:00 /usr/lib/jvm/bin/java -Xms512m -Xmx2g -cp lib/*  jet.server.JREntServer
R   irisusr  4300     1  2  80   0 1048576 2000000 -      10:01 ?     00:01:00 /usr/bin/java -Xmx1G com.intersystems.zenreports.RenderServer 8080
Z   irisusr  4400     1  0  80   0 9999999 0     -      10:02 ?        00:00:00 /usr/bin/java <defunct>
</pre>
<a id="ps -elfy_2">ps -elfy</a><pre>
S   UID       PID  PPID  C PRI  NI   RSS     SZ WCHAN  STIME TTY          TIME CMD
S   irisusr  5000     1  0  80   0 524288 900000 futex_ 11:00 ?       00:00:10 /opt/app/bin/java -jar tool.jar
</pre>
<a id="ps -elfy_3">ps -elfy</a><pre>
S   UID       PID  PPID  C PRI  NI   RSS     SZ WCHAN  STIME TTY          TIME CMD
S   root        1     0  0  80   0  1000   2000 ep_pol 09:00 ?        00:00:01 /usr/lib/systemd/systemd
</pre>
<div id=vmstat></div>vmstat</font></b><br><pre>
S   irisusr  6000     1  0  80   0 1 1 futex_ 12:00 ?       00:00:10 /usr/bin/java -jar ignored.jar
</pre>
</body></html>
`

func TestJavaMemory(t *testing.T) {
	rep, err := JavaMemory(strings.NewReader(psCapture), WithSourceName("db01"))
	require.NoError(t, err)
	assert.Equal(t, "db01", rep.Source)

	require.Len(t, rep.Snapshots, 3)
	assert.Len(t, rep.WithJava(), 2)

	t.Run("processes", func(t *testing.T) {
		procs := rep.Snapshots[0].Processes
		require.Len(t, procs, 2)

		assert.Equal(t, JavaProcess{
			PID:     "4242",
			User:    "irisusr",
			RSSKB:   2097152,
			Xms:     "512m",
			Xmx:     "2g",
			Kind:    KindJReport,
			Command: "/usr/lib/jvm/bin/java -Xms512m -Xmx2g -cp lib/*  jet.server.JREntServer",
		}, procs[0])

		assert.Equal(t, "4300", procs[1].PID)
		assert.Equal(t, KindRender, procs[1].Kind)
		assert.Empty(t, procs[1].Xms)
		assert.Equal(t, "1G", procs[1].Xmx)

		other := rep.Snapshots[1].Processes
		require.Len(t, other, 1)
		assert.Equal(t, KindOther, other[0].Kind)
		assert.Equal(t, int64(524288), other[0].RSSKB)

		assert.Empty(t, rep.Snapshots[2].Processes)
	})

	t.Run("totals", func(t *testing.T) {
		s := rep.Snapshots[0]
		assert.Equal(t, 1, s.Number)
		assert.Equal(t, int64(3145728), s.TotalKB())
		assert.Equal(t, map[ProcessKind]int64{KindJReport: 2097152, KindRender: 1048576}, s.KindKB())

		peak, ok := rep.Peak()
		require.True(t, ok)
		assert.Equal(t, 1, peak.Number)
	})

	t.Run("tables", func(t *testing.T) {
		tables := rep.Tables()
		require.Len(t, tables, 2)

		procs := tables[0]
		assert.Equal(t, TableJavaProcesses, procs.Name)
		assert.Equal(t, javaProcessColumns, procs.Columns)
		require.Equal(t, 3, procs.Len())
		assert.Equal(t, []string{"1", "1", "2"}, columnStrings(procs, "snapshot"))
		assert.Equal(t, 2048.0, cell(t, procs, 0, "rss_mb"))
		assert.Equal(t, "JReport Server", cell(t, procs, 0, "type"))
		assert.Equal(t, "db01", cell(t, procs, 2, ColumnSource))

		snaps := tables[1]
		assert.Equal(t, TableJavaSnapshots, snaps.Name)
		require.Equal(t, 2, snaps.Len())
		assert.Equal(t, 3.0, cell(t, snaps, 0, "rss_gb"))
		assert.Equal(t, int64(2), cell(t, snaps, 0, "processes"))
		assert.Equal(t, int64(1048576), cell(t, snaps, 0, "render_kb"))
		assert.Equal(t, int64(524288), cell(t, snaps, 1, "other_kb"))
	})
}

func TestJavaMemory_NoPsSection(t *testing.T) {
	rep, err := JavaMemory(strings.NewReader(linuxCapture))
	require.NoError(t, err)

	assert.Empty(t, rep.Snapshots)
	assert.Empty(t, rep.Tables())
	_, ok := rep.Peak()
	assert.False(t, ok)
}

func TestJavaMemory_SnapshotsWithoutJava(t *testing.T) {
	text := `<a id="ps -elfy_1">
S   root        1     0  0  80   0  1000   2000 ep_pol 09:00 ?        00:00:01 /usr/lib/systemd/systemd
<a id="ps -elfy_2">
<a id="ps -elfy_3">
S   root        1     0  0  80   0  1000   2000 ep_pol 09:00 ?        00:00:01 /usr/lib/systemd/systemd
`
	rep, err := JavaMemory(strings.NewReader(text))
	require.NoError(t, err)

	// the second anchor holds no lines and is not a snapshot
	require.Len(t, rep.Snapshots, 2)
	assert.Equal(t, 2, rep.Snapshots[1].Number)
	assert.Empty(t, rep.WithJava())

	tables := rep.Tables()
	require.Len(t, tables, 2)
	assert.Equal(t, 0, tables[0].Len())
	assert.Equal(t, 0, tables[1].Len())
}

func TestParseJavaProcess(t *testing.T) {
	long := "/usr/bin/java " + strings.Repeat("-Dx=y ", 30)

	tests := []struct {
		name    string
		line    string
		ok      bool
		command string
	}{
		{name: "not java", line: "S root 1 0 0 80 0 1000 2000 ep_pol 09:00 ? 00:00:01 /usr/lib/systemd/systemd"},
		{name: "zombie", line: "Z u 2 1 0 80 0 1000 0 - 09:00 ? 00:00:00 /usr/bin/java"},
		{name: "too few fields", line: "S u 2 1 0 80 0 1000 /usr/bin/java"},
		{name: "rss not numeric", line: "S u 2 1 0 80 0 12k 2000 - 09:00 ? 00:00:01 /usr/bin/java"},
		{name: "tabs", line: "S \tu\t2\t1\t0\t80\t0\t1000\t2000\t-\t09:00\t?\t00:00:01\t/usr/bin/java  -jar a.jar", ok: true, command: "/usr/bin/java  -jar a.jar"},
		{name: "truncated", line: "S u 2 1 0 80 0 1000 2000 - 09:00 ? 00:00:01 " + long, ok: true, command: strings.TrimSpace(long)[:maxCommand] + "..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := parseJavaProcess(tt.line)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.command, p.Command)
			}
		})
	}
}

func TestClassifyProcess(t *testing.T) {
	assert.Equal(t, KindJReport, ClassifyProcess("java jet.server.JREntServer"))
	assert.Equal(t, KindRender, ClassifyProcess("java com.intersystems.zenreports.RenderServer"))
	assert.Equal(t, KindOther, ClassifyProcess("java -jar app.jar"))
}
