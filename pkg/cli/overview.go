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
	"github.com/yaspe-go/yaspe/pkg/errors"
	"github.com/yaspe-go/yaspe/pkg/serializer"
)

func overviewCmd() *cli.Command {
	return &cli.Command{
		Name:      "overview",
		Usage:     "Print the capture header: OS, host, run start and mgstat config",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
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
			if format == serializer.FormatCSV {
				return errors.New(errors.ErrCodeInvalidRequest, "overview cannot be written as csv")
			}

			ov, err := capture.ReadOverviewFile(path)
			if err != nil {
				return err
			}
			if ov.OS == capture.Unknown {
				slog.Warn("capture has no version line, operating system unknown", "path", path)
			}

			w := serializer.NewFileWriterOrStdout(format, cmd.String("output"))
			defer w.Close()
			return w.Serialize(ctx, ov)
		},
	}
}
