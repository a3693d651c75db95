// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/catalogd/internal/models"
)

// HealthStatus is the body of the health endpoints.
type HealthStatus struct {
	Status     string  `json:"status"`
	Ready      bool    `json:"ready"`
	Generation uint64  `json:"generation,omitempty"`
	Uptime     float64 `json:"uptime_seconds"`
}

// HealthLive handles GET /api/v1/health/live
// Liveness only says the process is serving HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: HealthStatus{
			Status: "alive",
			Ready:  h.catalog.Ready(),
			Uptime: time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// HealthReady handles GET /api/v1/health/ready
// Ready means a catalog snapshot is being served.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	status := h.catalog.Status(r.Context())
	body := HealthStatus{
		Status:     "ready",
		Ready:      status.Ready,
		Generation: status.Generation,
		Uptime:     time.Since(h.startTime).Seconds(),
	}
	if !status.Ready {
		body.Status = "not_ready"
		respondJSON(w, http.StatusServiceUnavailable, &models.APIResponse{
			Status:   "error",
			Data:     body,
			Metadata: models.Metadata{Timestamp: time.Now()},
			Error:    &models.APIError{Code: models.ErrCodeNotReady, Message: "Catalog is not loaded yet"},
		})
		return
	}
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     body,
		Metadata: models.Metadata{Timestamp: time.Now(), Generation: status.Generation},
	})
}
