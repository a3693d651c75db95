// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/catalogd/internal/logging"
)

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := logging.ContextWithLogger(req.Context(), logging.NewTestLogger(&buf))
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Use(AccessLog)
	r.Get("/api/v1/products/{sku}", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/ABC", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	r.ServeHTTP(httptest.NewRecorder(), req)

	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatal("expected an access log line")
	}
	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%s)", err, line)
	}

	want := map[string]interface{}{
		"level":      "warn",
		"route":      "/api/v1/products/{sku}",
		"path":       "/api/v1/products/ABC",
		"status":     float64(404),
		"request_id": "req-1",
		"message":    "HTTP request",
	}
	for k, v := range want {
		if entry[k] != v {
			t.Errorf("%s = %v, want %v", k, entry[k], v)
		}
	}
}
