// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func serveRequestID(t *testing.T, header string) (responseID, contextID string) {
	t.Helper()
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contextID = GetRequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if header != "" {
		req.Header.Set(RequestIDHeader, header)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec.Header().Get(RequestIDHeader), contextID
}

func TestRequestID_GeneratesNewID(t *testing.T) {
	responseID, contextID := serveRequestID(t, "")

	if _, err := uuid.Parse(responseID); err != nil {
		t.Errorf("Response X-Request-ID is not a valid UUID: %v", err)
	}
	if contextID != responseID {
		t.Errorf("Context ID (%s) doesn't match response header ID (%s)", contextID, responseID)
	}
}

func TestRequestID_PreservesExistingID(t *testing.T) {
	existingID := "existing-request-id-12345"
	responseID, contextID := serveRequestID(t, existingID)

	if responseID != existingID {
		t.Errorf("Expected X-Request-ID to be %s, got %s", existingID, responseID)
	}
	if contextID != existingID {
		t.Errorf("Expected context ID to be %s, got %s", existingID, contextID)
	}
}

func TestRequestID_ReplacesUnsafeID(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"contains space", "abc def"},
		{"contains newline", "abc\ndef"},
		{"too long", strings.Repeat("a", maxRequestIDLen+1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			responseID, _ := serveRequestID(t, tt.header)
			if responseID == tt.header {
				t.Errorf("unsafe request ID %q was reused", tt.header)
			}
			if _, err := uuid.Parse(responseID); err != nil {
				t.Errorf("replacement ID is not a UUID: %v", err)
			}
		})
	}
}
