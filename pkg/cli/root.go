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
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/yaspe-go/yaspe/pkg/config"
	"github.com/yaspe-go/yaspe/pkg/logging"
)

const (
	name           = "yaspe"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

type configKey struct{}

// withConfig stores the loaded config file for subcommands.
func withConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// configFrom returns the config loaded by the root command, or the defaults.
func configFrom(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok && cfg != nil {
		return cfg
	}
	return config.Default()
}

// Execute runs the root command with os.Args and exits non-zero on error.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		EnableShellCompletion: true,
		Usage:                 "Extract performance capture sections into tables",
		Description: `yaspe reads performance capture files (HTML-wrapped vmstat, iostat,
mgstat, nfsiostat, perfmon and sar -d output) and turns every section into a
uniform table with normalized dates and numeric values.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error)",
				Sources: cli.EnvVars(logging.EnvVarLogLevel),
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "log format (json, text, auto)",
				Value: string(logging.FormatAuto),
			},
			&cli.StringFlag{
				Name:    "config",
				Usage:   "YAML file with extraction defaults",
				Sources: cli.EnvVars("YASPE_CONFIG"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultLogger(name, version, cmd.String("log-level"),
				logging.ParseFormat(cmd.String("log-format")))

			cfg, err := config.Load(cmd.String("config"))
			if err != nil {
				return ctx, err
			}
			slog.Debug("starting", "name", name, "version", version, "commit", commit)
			return withConfig(ctx, cfg), nil
		},
		Commands: []*cli.Command{
			extractCmd(),
			overviewCmd(),
			splitCmd(),
			mgstatCmd(),
			javaMemoryCmd(),
		},
	}
}
