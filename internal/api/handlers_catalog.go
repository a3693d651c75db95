// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/catalogd/internal/catalog"
	"github.com/tomtom215/catalogd/internal/logging"
	"github.com/tomtom215/catalogd/internal/models"
)

// CatalogStatus handles GET /api/v1/catalog/status
func (h *Handler) CatalogStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := h.catalog.Status(r.Context())
	respondSuccess(w, status, catalog.Meta{Generation: status.Generation}, start)
}

// CatalogReloads handles GET /api/v1/catalog/reloads
func (h *Handler) CatalogReloads(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	limit := getIntParam(r, "limit", 20)
	if limit < 1 || limit > 200 {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, "limit must be between 1 and 200", nil)
		return
	}

	reports, err := h.catalog.Reloads(r.Context(), limit)
	if err != nil {
		respondCatalogError(w, err)
		return
	}
	respondSuccess(w, reports, catalog.Meta{}, start)
}

// CatalogReload handles POST /api/v1/catalog/reload
// The reload runs to completion even if the client disconnects. A failed
// reload answers 502 with the load report in the error details; the
// previous snapshot keeps serving.
func (h *Handler) CatalogReload(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), h.reloadTimeout)
	defer cancel()

	logging.Ctx(r.Context()).Info().Str("remote_addr", sanitizeLogValue(r.RemoteAddr)).Msg("Manual catalog reload requested")

	report, err := h.catalog.Reload(ctx, catalog.TriggerManual)
	if err != nil {
		if errors.Is(err, catalog.ErrClosed) {
			respondError(w, http.StatusServiceUnavailable, models.ErrCodeNotReady, "Catalog is shutting down", nil)
			return
		}
		respondAPIError(w, http.StatusBadGateway, &models.APIError{
			Code:    models.ErrCodeReloadFailed,
			Message: "Catalog reload failed",
			Details: map[string]interface{}{"report": report},
		}, err)
		return
	}
	respondSuccess(w, report, catalog.Meta{Generation: report.Generation}, start)
}
