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
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/urfave/cli/v3"

	"github.com/yaspe-go/yaspe/pkg/capture"
	"github.com/yaspe-go/yaspe/pkg/errors"
	"github.com/yaspe-go/yaspe/pkg/extract"
	"github.com/yaspe-go/yaspe/pkg/reading"
)

func mgstatCmd() *cli.Command {
	return &cli.Command{
		Name:      "mgstat",
		Usage:     "Extract a bare mgstat (.mgst) file",
		ArgsUsage: "FILE",
		Description: `The whole file is read as the mgstat section. Without --run-start the
date of the first sample, read as month/day/year, is the run start.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "run-start",
				Usage: "run start date, e.g. 2024-01-02 or \"Jan 2 2024\"",
			},
			&cli.StringFlag{
				Name:  "source",
				Usage: "source column value (default: file name)",
			},
			&cli.StringFlag{
				Name:  "decimal",
				Usage: "decimal separator used by the file",
			},
			&cli.StringFlag{
				Name:  "thousands",
				Usage: "thousands separator used by the file",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path, err := fileArg(cmd)
			if err != nil {
				return err
			}
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			opts, err := mgstatOptions(cmd, path)
			if err != nil {
				return err
			}

			rc, err := capture.Open(path)
			if err != nil {
				return err
			}
			defer rc.Close()

			res, err := extract.Mgstat(rc, opts...)
			if err != nil {
				return err
			}
			return writeResults(ctx, format, cmd.String("output"), []*extract.Result{res})
		},
	}
}

func mgstatOptions(cmd *cli.Command, path string) ([]extract.Option, error) {
	nf, err := reading.ParseNumberFormat(cmd.String("thousands"), cmd.String("decimal"))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "invalid number separators", err)
	}

	source := cmd.String("source")
	if source == "" {
		source = extract.SourceName(path)
	}

	opts := []extract.Option{
		extract.WithSourceName(source),
		extract.WithNumberFormat(nf),
	}

	if v := strings.TrimSpace(cmd.String("run-start")); v != "" {
		t, err := parseRunStartFlag(v)
		if err != nil {
			return nil, err
		}
		opts = append(opts, extract.WithRunStart(t))
	}
	return opts, nil
}

// parseRunStartFlag reads "Jan 2 2006" like the capture header does, and
// anything dateparse understands otherwise.
func parseRunStartFlag(v string) (time.Time, error) {
	if t, err := time.Parse("Jan 2 2006", v); err == nil {
		return t, nil
	}
	t, err := dateparse.ParseIn(v, time.UTC)
	if err != nil {
		return time.Time{}, errors.Wrap(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid --run-start %q", v), err)
	}
	return t, nil
}
