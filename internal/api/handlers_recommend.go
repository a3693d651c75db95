// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/catalogd/internal/catalog"
	"github.com/tomtom215/catalogd/internal/models"
)

// recommendParams is the validated form of recommendation query strings.
// A zero limit selects the engine default; larger values are clamped by
// the engine.
type recommendParams struct {
	Limit      int      `json:"limit" validate:"gte=0,lte=1000"`
	Categories []string `json:"category" validate:"omitempty,max=50,dive,max=200"`
}

type recommendFunc func(ctx context.Context, sku string, limit int) (*models.RecommendationResult, catalog.Meta, error)

// Similar handles GET /api/v1/recommendations/similar/{sku}
func (h *Handler) Similar(w http.ResponseWriter, r *http.Request) {
	h.recommendForSKU(w, r, h.catalog.Similar)
}

// Complementary handles GET /api/v1/recommendations/complementary/{sku}
func (h *Handler) Complementary(w http.ResponseWriter, r *http.Request) {
	h.recommendForSKU(w, r, h.catalog.Complementary)
}

// recommendForSKU serves the source-product recommendation kinds. An
// unknown SKU is not an error: the result is empty with score 0.
func (h *Handler) recommendForSKU(w http.ResponseWriter, r *http.Request, fn recommendFunc) {
	start := time.Now()

	params := recommendParams{Limit: getIntParam(r, "limit", 0)}
	if apiErr := validateRequest(&params); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	result, meta, err := fn(r.Context(), chi.URLParam(r, "sku"), params.Limit)
	if err != nil {
		respondCatalogError(w, err)
		return
	}
	respondSuccess(w, result, meta, start)
}

// Trending handles GET /api/v1/recommendations/trending
func (h *Handler) Trending(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	params := recommendParams{
		Limit:      getIntParam(r, "limit", 0),
		Categories: queryList(r, "category"),
	}
	if apiErr := validateRequest(&params); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	result, meta, err := h.catalog.Trending(r.Context(), params.Categories, params.Limit)
	if err != nil {
		respondCatalogError(w, err)
		return
	}
	respondSuccess(w, result, meta, start)
}
