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

package cli

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/yaspe-go/yaspe/pkg/capture"
	"github.com/yaspe-go/yaspe/pkg/errors"
	"github.com/yaspe-go/yaspe/pkg/extract"
	"github.com/yaspe-go/yaspe/pkg/serializer"
	"github.com/yaspe-go/yaspe/pkg/table"
)

func javaMemoryCmd() *cli.Command {
	return &cli.Command{
		Name:      "java-memory",
		Usage:     "Report java process memory from the ps -elfy snapshots of captures",
		ArgsUsage: "FILE...",
		Description: `Each ps -elfy section of a capture is a snapshot. Every java process in
it is listed with its resident memory, -Xms and -Xmx settings and kind
(JReport Server, Render Server or Other), and each snapshot is totalled.

# Examples

Print the processes and snapshot totals of one capture:
  yaspe java-memory server1_20240102_0000_24hours.html

Write two CSV files per capture:
  yaspe java-memory --format csv --output out/ captures/*.html`,
		Flags: []cli.Flag{
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			paths := cmd.Args().Slice()
			if len(paths) == 0 {
				return errors.New(errors.ErrCodeInvalidRequest, "java-memory requires at least one FILE argument")
			}
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			reports := make([]*extract.JavaReport, 0, len(paths))
			for _, path := range paths {
				rep, err := javaMemoryFile(path)
				if err != nil {
					return err
				}
				if peak, ok := rep.Peak(); ok {
					slog.Info("java memory",
						"source", rep.Source,
						"snapshots", len(rep.Snapshots),
						"withJava", len(rep.WithJava()),
						"peakSnapshot", peak.Number,
						"peakKB", peak.TotalKB())
				} else {
					slog.Info("no java processes", "source", rep.Source, "snapshots", len(rep.Snapshots))
				}
				reports = append(reports, rep)
			}
			return writeJavaReports(ctx, format, cmd.String("output"), reports)
		},
	}
}

func javaMemoryFile(path string) (*extract.JavaReport, error) {
	rc, err := capture.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return extract.JavaMemory(rc, extract.WithSourceName(extract.SourceName(path)))
}

func writeJavaReports(ctx context.Context, format serializer.Format, output string, reports []*extract.JavaReport) error {
	if format == serializer.FormatCSV {
		dir := output
		if dir == "" {
			dir = "."
		}
		sources := make([]string, len(reports))
		for i, rep := range reports {
			sources[i] = rep.Source
		}
		if err := uniqueSources(sources); err != nil {
			return err
		}
		for _, rep := range reports {
			files, err := serializer.WriteCSV(dir, rep.Source, rep.Tables())
			if err != nil {
				return errors.WrapWithContext(errors.ErrCodeIO, "failed to write csv", err,
					map[string]any{"dir": dir, "source": rep.Source})
			}
			slog.Info("wrote csv", "source", rep.Source, "files", len(files), "dir", filepath.Clean(dir))
		}
		return nil
	}

	w := serializer.NewFileWriterOrStdout(format, output)
	defer func() {
		if err := w.Close(); err != nil {
			slog.Warn("failed to close output", "error", err)
		}
	}()

	if len(reports) == 1 {
		return w.Serialize(ctx, reports[0])
	}
	return w.Serialize(ctx, javaBatch(reports))
}

// javaBatch renders several reports as one list; its tables are named
// <source>/<table>.
type javaBatch []*extract.JavaReport

// Tables implements serializer.Tabular.
func (b javaBatch) Tables() []*table.Table {
	var out []*table.Table
	for _, rep := range b {
		for _, t := range rep.Tables() {
			named := *t
			named.Name = rep.Source + "/" + t.Name
			out = append(out, &named)
		}
	}
	return out
}
