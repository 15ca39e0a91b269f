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
	"net/http"
	"time"

	"github.com/yaspe-go/yaspe/pkg/errors"
	"github.com/yaspe-go/yaspe/pkg/serializer"
)

// HealthResponse is the body of /health and /ready.
type HealthResponse struct {
	Status    string    `json:"status" yaml:"status"`
	Name      string    `json:"name,omitempty" yaml:"name,omitempty"`
	Version   string    `json:"version,omitempty" yaml:"version,omitempty"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Reason    string    `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// probe answers a GET-only health endpoint with status and body.
func (s *Server) probe(w http.ResponseWriter, r *http.Request, code int, status, reason string) {
	if r.Method != http.MethodGet {
		WriteError(w, r, http.StatusMethodNotAllowed, errors.ErrCodeMethodNotAllowed,
			"method not allowed", false, map[string]any{"method": r.Method})
		return
	}
	serializer.RespondJSON(w, code, HealthResponse{
		Status:    status,
		Name:      s.config.Name,
		Version:   s.config.Version,
		Timestamp: time.Now().UTC(),
		Reason:    reason,
	})
}

// handleHealth reports liveness: the process is serving.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.probe(w, r, http.StatusOK, "healthy", "")
}

// handleReady reports 503 until Start marks the server ready and after
// Shutdown begins.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if !s.IsReady() {
		s.probe(w, r, http.StatusServiceUnavailable, "not_ready", "not accepting captures")
		return
	}
	s.probe(w, r, http.StatusOK, "ready", "")
}
