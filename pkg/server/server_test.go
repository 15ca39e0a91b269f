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
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	s := New(
		WithName("yasped"),
		WithVersion("1.2.3"),
		WithPort(9191),
		WithHandler(map[string]http.HandlerFunc{"/v1/test": okHandler}),
	)

	if s.config.Name != "yasped" || s.config.Version != "1.2.3" {
		t.Errorf("unexpected identity %s %s", s.config.Name, s.config.Version)
	}
	if !strings.HasSuffix(s.httpServer.Addr, ":9191") {
		t.Errorf("unexpected address %s", s.httpServer.Addr)
	}
	if s.rateLimiter == nil || s.httpServer.ErrorLog == nil {
		t.Error("expected limiter and error log")
	}
	if _, ok := s.config.Handlers["/"]; !ok {
		t.Error("expected default root handler")
	}
	if _, ok := s.config.Handlers["/v1/test"]; !ok {
		t.Error("expected /v1/test handler")
	}
}

func TestWithConfig(t *testing.T) {
	cfg := NewConfig()
	cfg.Name = "test-server"
	cfg.RateLimit = 500

	s := New(WithConfig(cfg))
	if s.config.Name != "test-server" || s.config.RateLimit != 500 {
		t.Errorf("config not applied: %+v", s.config)
	}

	if New().config.Name != "server" {
		t.Error("expected default name 'server'")
	}
}

func TestSystemEndpoints(t *testing.T) {
	s := New()
	h := s.Handler()

	tests := []struct {
		name   string
		method string
		path   string
		ready  bool
		want   int
	}{
		{"health", http.MethodGet, "/health", false, http.StatusOK},
		{"health wrong method", http.MethodPost, "/health", false, http.StatusMethodNotAllowed},
		{"not ready", http.MethodGet, "/ready", false, http.StatusServiceUnavailable},
		{"ready", http.MethodGet, "/ready", true, http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", false, http.StatusOK},
		{"unknown path", http.MethodGet, "/nope", false, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.SetReady(tt.ready)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			if rec.Code != tt.want {
				t.Errorf("%s %s = %d, want %d", tt.method, tt.path, rec.Code, tt.want)
			}
		})
	}
}

func TestDefaultRootHandler(t *testing.T) {
	s := New(WithName("yasped"), WithHandler(map[string]http.HandlerFunc{"/v1/extract": okHandler}))

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp struct {
		Name   string   `json:"name"`
		Routes []string `json:"routes"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Name != "yasped" {
		t.Errorf("expected name yasped, got %s", resp.Name)
	}
	if !strings.Contains(strings.Join(resp.Routes, " "), "/v1/extract") {
		t.Errorf("expected /v1/extract in routes, got %v", resp.Routes)
	}

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405 for POST /, got %d", rec.Code)
	}
}

func TestCustomRootHandlerNotOverridden(t *testing.T) {
	called := false
	s := New(WithHandler(map[string]http.HandlerFunc{
		"/": func(w http.ResponseWriter, _ *http.Request) {
			called = true
			w.WriteHeader(http.StatusOK)
		},
	}))

	s.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if !called {
		t.Error("expected custom root handler to be called")
	}
}

func TestGracefulShutdown(t *testing.T) {
	cfg := NewConfig()
	cfg.Address = "127.0.0.1"
	cfg.Port = 18080
	cfg.ShutdownTimeout = 100 * time.Millisecond

	s := New(WithConfig(cfg))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Start(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	if !s.IsReady() {
		t.Error("expected server to be ready while running")
	}
	cancel()

	select {
	case err := <-errChan:
		if err != nil {
			t.Errorf("expected clean shutdown, got error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("shutdown timed out")
	}
	if s.IsReady() {
		t.Error("expected not ready after shutdown")
	}
}

func TestHealthBody(t *testing.T) {
	s := New(WithName("yasped"), WithVersion("1.2.3"))

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var got HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if got.Status != "healthy" || got.Name != "yasped" || got.Version != "1.2.3" {
		t.Errorf("unexpected health body %+v", got)
	}
}
