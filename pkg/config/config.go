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

package config

import (
	"fmt"
	"log/slog"

	"github.com/yaspe-go/yaspe/pkg/capture"
	"github.com/yaspe-go/yaspe/pkg/defaults"
	"github.com/yaspe-go/yaspe/pkg/errors"
	"github.com/yaspe-go/yaspe/pkg/reading"
	"github.com/yaspe-go/yaspe/pkg/serializer"
)

// Config holds extraction defaults read from a YAML (or JSON) file. Command
// line flags override any value set here.
type Config struct {
	OS        string   `json:"os,omitempty" yaml:"os,omitempty"`
	Iostat    bool     `json:"iostat,omitempty" yaml:"iostat,omitempty"`
	Nfsiostat bool     `json:"nfsiostat,omitempty" yaml:"nfsiostat,omitempty"`
	Devices   []string `json:"devices,omitempty" yaml:"devices,omitempty"`
	Format    string   `json:"format,omitempty" yaml:"format,omitempty"`
	Output    string   `json:"output,omitempty" yaml:"output,omitempty"`
	Workers   int      `json:"workers,omitempty" yaml:"workers,omitempty"`
	Decimal   string   `json:"decimal,omitempty" yaml:"decimal,omitempty"`
	Thousands string   `json:"thousands,omitempty" yaml:"thousands,omitempty"`
}

// Default returns the values used when no file is given.
func Default() *Config {
	return &Config{
		Format:  string(serializer.FormatTable),
		Workers: defaults.BatchWorkers,
	}
}

// Load reads path over Default. An empty path returns Default.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	cfg, err := serializer.FromFile[Config](path)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "failed to load config", err,
			map[string]any{"path": path})
	}

	d := Default()
	if cfg.Format == "" {
		cfg.Format = d.Format
	}
	if cfg.Workers == 0 {
		cfg.Workers = d.Workers
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	slog.Debug("loaded config", "path", path, "os", cfg.OS, "format", cfg.Format, "workers", cfg.Workers)
	return cfg, nil
}

// Validate checks every set value.
func (c *Config) Validate() error {
	if c.OS != "" {
		if _, err := capture.ParseOS(c.OS); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRequest, "invalid os", err)
		}
	}
	if c.Format != "" && serializer.Format(c.Format).IsUnknown() {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid format %q", c.Format),
			map[string]any{"supported": serializer.SupportedFormats()})
	}
	if c.Workers < 0 || c.Workers > defaults.MaxBatchWorkers {
		return errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("workers must be between 1 and %d, got %d", defaults.MaxBatchWorkers, c.Workers))
	}
	if _, err := c.NumberFormat(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRequest, "invalid number separators", err)
	}
	return nil
}

// NumberFormat returns the configured separators, USFormat when unset.
func (c *Config) NumberFormat() (reading.NumberFormat, error) {
	return reading.ParseNumberFormat(c.Thousands, c.Decimal)
}
