// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/catalogd/internal/models"
)

func respondProductNotFound(w http.ResponseWriter, sku string) {
	respondAPIError(w, http.StatusNotFound, &models.APIError{
		Code:    models.ErrCodeNotFound,
		Message: "Product not found",
		Details: map[string]interface{}{"sku": sku},
	}, nil)
}

// Product handles GET /api/v1/products/{sku}
// SKU matching is exact and case-sensitive. Inactive and deleted products
// are returned with their flags set.
func (h *Handler) Product(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	sku := chi.URLParam(r, "sku")

	product, meta, err := h.catalog.GetProduct(r.Context(), sku)
	if err != nil {
		respondCatalogError(w, err)
		return
	}
	if product == nil {
		respondProductNotFound(w, sku)
		return
	}
	respondSuccess(w, product, meta, start)
}

// ProductStock handles GET /api/v1/products/{sku}/stock
func (h *Handler) ProductStock(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	sku := chi.URLParam(r, "sku")

	level, meta, err := h.catalog.Stock(r.Context(), sku)
	if err != nil {
		respondCatalogError(w, err)
		return
	}
	if level == nil {
		respondProductNotFound(w, sku)
		return
	}
	respondSuccess(w, level, meta, start)
}
