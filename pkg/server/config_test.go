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

package server

import (
	"testing"
	"time"

	"github.com/yaspe-go/yaspe/pkg/defaults"
)

func TestParseConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("PORT", "")
		t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "")

		cfg := parseConfig()

		if cfg.Address != "" {
			t.Errorf("expected empty address, got %s", cfg.Address)
		}
		if cfg.Port != 8080 {
			t.Errorf("expected port 8080, got %d", cfg.Port)
		}
		if cfg.RateLimit != 100 || cfg.RateLimitBurst != 200 {
			t.Errorf("unexpected rate limit %v/%d", cfg.RateLimit, cfg.RateLimitBurst)
		}
		if cfg.MaxUploadSize != defaults.MaxUploadSize {
			t.Errorf("expected max upload %d, got %d", defaults.MaxUploadSize, cfg.MaxUploadSize)
		}
		if cfg.ReadHeaderTimeout != defaults.ServerReadHeaderTimeout {
			t.Errorf("unexpected read header timeout %v", cfg.ReadHeaderTimeout)
		}
		if cfg.ShutdownTimeout != defaults.ServerShutdownTimeout {
			t.Errorf("unexpected shutdown timeout %v", cfg.ShutdownTimeout)
		}
		if cfg.Handlers == nil {
			t.Error("expected handlers map")
		}
	})

	tests := []struct {
		name     string
		port     string
		shutdown string
		wantPort int
		wantStop time.Duration
	}{
		{"port from env", "9090", "", 9090, defaults.ServerShutdownTimeout},
		{"invalid port keeps default", "invalid", "", 8080, defaults.ServerShutdownTimeout},
		{"out of range port keeps default", "70000", "", 8080, defaults.ServerShutdownTimeout},
		{"shutdown from env", "", "5", 8080, 5 * time.Second},
		{"zero shutdown keeps default", "", "0", 8080, defaults.ServerShutdownTimeout},
		{"bad shutdown keeps default", "", "soon", 8080, defaults.ServerShutdownTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PORT", tt.port)
			t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", tt.shutdown)

			cfg := parseConfig()
			if cfg.Port != tt.wantPort {
				t.Errorf("port = %d, want %d", cfg.Port, tt.wantPort)
			}
			if cfg.ShutdownTimeout != tt.wantStop {
				t.Errorf("shutdown = %v, want %v", cfg.ShutdownTimeout, tt.wantStop)
			}
		})
	}
}
