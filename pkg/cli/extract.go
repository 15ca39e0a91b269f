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
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/yaspe-go/yaspe/pkg/config"
	"github.com/yaspe-go/yaspe/pkg/defaults"
	"github.com/yaspe-go/yaspe/pkg/errors"
	"github.com/yaspe-go/yaspe/pkg/extract"
	"github.com/yaspe-go/yaspe/pkg/ingest"
	"github.com/yaspe-go/yaspe/pkg/serializer"
	"github.com/yaspe-go/yaspe/pkg/table"
)

func extractCmd() *cli.Command {
	return &cli.Command{
		Name:                  "extract",
		EnableShellCompletion: true,
		Usage:                 "Extract section tables from capture files",
		ArgsUsage:             "FILE...",
		Description: `Scan each capture once and build a table per section: mgstat, vmstat,
iostat, nfsiostat, perfmon and sar -d. Dates are normalized against the
capture's run start and numeric columns are converted.

iostat and nfsiostat are skipped unless asked for. Files are processed in
parallel; a file that fails is reported and the others continue.

# Examples

Print every section of a Linux capture:
  yaspe extract --iostat server1_20240102_0000_24hours.html

Write one CSV per section for a batch of captures:
  yaspe extract --format csv --output out/ captures/*.html

Only keep two iostat devices, European number format:
  yaspe extract --iostat --disk dm-0 --disk dm-1 --decimal , --thousands . capture.html`,
		Flags: []cli.Flag{
			osFlag(),
			&cli.BoolFlag{
				Name:  "iostat",
				Usage: "include the iostat section",
			},
			&cli.BoolFlag{
				Name:  "nfsiostat",
				Usage: "include the nfsiostat section",
			},
			&cli.StringSliceFlag{
				Name:  "disk",
				Usage: "only keep iostat rows for this device (can be repeated)",
			},
			&cli.StringFlag{
				Name:  "source",
				Usage: "source column value (single file only; default: file name)",
			},
			&cli.IntFlag{
				Name:    "workers",
				Usage:   "number of captures extracted at once",
				Value:   defaults.BatchWorkers,
				Sources: cli.EnvVars("YASPE_WORKERS"),
			},
			&cli.StringFlag{
				Name:  "decimal",
				Usage: "decimal separator used by the capture",
			},
			&cli.StringFlag{
				Name:  "thousands",
				Usage: "thousands separator used by the capture",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			paths := cmd.Args().Slice()
			if len(paths) == 0 {
				return errors.New(errors.ErrCodeInvalidRequest, "extract requires at least one FILE argument")
			}

			s, err := extractSettingsFrom(cmd, configFrom(ctx))
			if err != nil {
				return err
			}
			if cmd.IsSet("source") {
				if len(paths) > 1 {
					return errors.New(errors.ErrCodeInvalidRequest, "--source can only be used with a single FILE")
				}
				s.opts = append(s.opts, extract.WithSourceName(cmd.String("source")))
			}

			ctx, cancel := context.WithTimeout(ctx, defaults.CLIBatchTimeout)
			defer cancel()

			report, err := ingest.NewRunner(
				ingest.WithWorkers(s.workers),
				ingest.WithExtractOptions(s.opts...),
			).Run(ctx, paths)
			if err != nil {
				return fmt.Errorf("extraction interrupted: %w", err)
			}

			for _, f := range report.Failed() {
				fmt.Fprintf(cmd.Root().ErrWriter, "%s: %s\n", f.Path, f.Error)
			}
			results := report.Results()
			if len(results) == 0 {
				return errors.NewWithContext(errors.ErrCodeInternal,
					fmt.Sprintf("all %d captures failed", len(paths)),
					map[string]any{"files": len(paths)})
			}

			return writeResults(ctx, s.format, s.output, results)
		},
	}
}

// extractSettings is the merge of flags over the config file.
type extractSettings struct {
	opts    []extract.Option
	format  serializer.Format
	output  string
	workers int
}

// extractSettingsFrom resolves every extract setting: a flag set on the
// command line or through its env var wins, then the config file, then the
// flag default.
func extractSettingsFrom(cmd *cli.Command, cfg *config.Config) (*extractSettings, error) {
	pick := func(flag, fromConfig string) string {
		if cmd.IsSet(flag) || fromConfig == "" {
			return cmd.String(flag)
		}
		return fromConfig
	}

	merged := &config.Config{
		OS:        pick("os", cfg.OS),
		Format:    pick("format", cfg.Format),
		Output:    pick("output", cfg.Output),
		Decimal:   pick("decimal", cfg.Decimal),
		Thousands: pick("thousands", cfg.Thousands),
		Iostat:    cmd.Bool("iostat") || (!cmd.IsSet("iostat") && cfg.Iostat),
		Nfsiostat: cmd.Bool("nfsiostat") || (!cmd.IsSet("nfsiostat") && cfg.Nfsiostat),
		Devices:   cmd.StringSlice("disk"),
		Workers:   cmd.Int("workers"),
	}
	if !cmd.IsSet("disk") {
		merged.Devices = cfg.Devices
	}
	if !cmd.IsSet("workers") && cfg.Workers > 0 {
		merged.Workers = cfg.Workers
	}
	if err := merged.Validate(); err != nil {
		return nil, err
	}

	format, err := parseOutputFormat(cmd)
	if err != nil {
		return nil, err
	}
	if !cmd.IsSet("format") && cfg.Format != "" {
		format = serializer.Format(merged.Format)
	}

	nf, err := merged.NumberFormat()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "invalid number separators", err)
	}

	opts, err := osOption(merged.OS)
	if err != nil {
		return nil, err
	}
	opts = append(opts,
		extract.WithIostat(merged.Iostat),
		extract.WithNfsiostat(merged.Nfsiostat),
		extract.WithDevices(merged.Devices...),
		extract.WithNumberFormat(nf),
	)

	slog.Debug("extract settings",
		"os", merged.OS,
		"iostat", merged.Iostat,
		"nfsiostat", merged.Nfsiostat,
		"devices", merged.Devices,
		"format", format,
		"workers", merged.Workers)

	return &extractSettings{
		opts:    opts,
		format:  format,
		output:  merged.Output,
		workers: merged.Workers,
	}, nil
}

// writeResults writes one CSV file per table into output (default: the
// current directory) for the csv format, and serializes everything to output
// or stdout otherwise.
func writeResults(ctx context.Context, format serializer.Format, output string, results []*extract.Result) error {
	if format == serializer.FormatCSV {
		dir := output
		if dir == "" {
			dir = "."
		}
		sources := make([]string, len(results))
		for i, res := range results {
			sources[i] = res.Source
		}
		if err := uniqueSources(sources); err != nil {
			return err
		}
		for _, res := range results {
			files, err := serializer.WriteCSV(dir, res.Source, res.Tables())
			if err != nil {
				return errors.WrapWithContext(errors.ErrCodeIO, "failed to write csv", err,
					map[string]any{"dir": dir, "source": res.Source})
			}
			slog.Info("wrote csv", "source", res.Source, "files", len(files), "dir", filepath.Clean(dir))
		}
		return nil
	}

	w := serializer.NewFileWriterOrStdout(format, output)
	defer func() {
		if err := w.Close(); err != nil {
			slog.Warn("failed to close output", "error", err)
		}
	}()

	if len(results) == 1 {
		return w.Serialize(ctx, results[0])
	}
	return w.Serialize(ctx, batch(results))
}

// uniqueSources rejects a batch in which two captures share a source name:
// both would be written to the same CSV paths.
func uniqueSources(sources []string) error {
	seen := make(map[string]int, len(sources))
	for _, source := range sources {
		seen[source]++
	}
	var dups []string
	for source, n := range seen {
		if n > 1 {
			dups = append(dups, source)
		}
	}
	if len(dups) == 0 {
		return nil
	}
	slices.Sort(dups)
	return errors.NewWithContext(errors.ErrCodeInvalidRequest,
		fmt.Sprintf("captures share a source name, csv files would collide: %s", strings.Join(dups, ", ")),
		map[string]any{"sources": dups})
}

// batch renders several results as one list; its tables are named
// <source>/<section>.
type batch []*extract.Result

// Tables implements serializer.Tabular.
func (b batch) Tables() []*table.Table {
	var out []*table.Table
	for _, res := range b {
		for _, t := range res.Tables() {
			named := *t
			named.Name = res.Source + "/" + t.Name
			out = append(out, &named)
		}
	}
	return out
}
