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
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/yaspe-go/yaspe/pkg/capture"
	"github.com/yaspe-go/yaspe/pkg/errors"
	"github.com/yaspe-go/yaspe/pkg/extract"
	"github.com/yaspe-go/yaspe/pkg/serializer"
)

// Flags are built per command: urfave/cli keeps parsed state on the flag
// value, so one instance must not be shared between commands.

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file path, or directory for csv (default: stdout)",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Usage:   fmt.Sprintf("output format (%s)", strings.Join(serializer.SupportedFormats(), ", ")),
		Value:   string(serializer.FormatTable),
		Sources: cli.EnvVars("YASPE_FORMAT"),
	}
}

func osFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "os",
		Usage:   "capture operating system (linux, ubuntu, aix, windows); detected from the capture when empty",
		Sources: cli.EnvVars("YASPE_OS"),
	}
}

// parseOutputFormat returns the --format value, rejecting unknown formats.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(strings.ToLower(strings.TrimSpace(cmd.String("format"))))
	if f.IsUnknown() {
		return "", errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown output format: %q", f),
			map[string]any{"supported": serializer.SupportedFormats()})
	}
	return f, nil
}

// osOption returns WithOS for a non-empty --os value. An empty value leaves
// the OS to the capture's own version line.
func osOption(value string) ([]extract.Option, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	os, err := capture.ParseOS(value)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "invalid --os", err)
	}
	return []extract.Option{extract.WithOS(os)}, nil
}

// fileArg returns the single FILE argument.
func fileArg(cmd *cli.Command) (string, error) {
	if cmd.Args().Len() != 1 {
		return "", errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("%s requires exactly one FILE argument", cmd.Name))
	}
	return cmd.Args().First(), nil
}
