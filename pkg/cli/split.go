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

	"github.com/urfave/cli/v3"

	"github.com/yaspe-go/yaspe/pkg/capture"
	"github.com/yaspe-go/yaspe/pkg/defaults"
	"github.com/yaspe-go/yaspe/pkg/serializer"
)

func splitCmd() *cli.Command {
	return &cli.Command{
		Name:      "split",
		Usage:     "Copy the part of a capture before a marker line into its own file",
		ArgsUsage: "FILE",
		Description: `Large captures can be cut down to the sections that precede iostat.
Every line before the first line containing --marker is copied unchanged to
<dir>/` + defaults.SplitDir + `/part1_<name>. Nothing is written when the marker
does not appear.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "marker",
				Usage: "text of the first line not copied",
				Value: defaults.SplitMarker,
			},
			&cli.StringFlag{
				Name:  "dir",
				Usage: "parent directory of the split output (default: the capture's directory)",
			},
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

			res, err := capture.Split(path, cmd.String("marker"), cmd.String("dir"))
			if err != nil {
				return err
			}
			if !res.Found {
				slog.Warn("marker not found, nothing written", "path", path, "marker", cmd.String("marker"))
			}

			return serializer.NewStdoutWriter(format).Serialize(ctx, res)
		},
	}
}
