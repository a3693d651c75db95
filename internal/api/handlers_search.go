// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/catalogd/internal/catalog"
	"github.com/tomtom215/catalogd/internal/models"
	"github.com/tomtom215/catalogd/internal/search"
)

// searchParams is the validated form of the search query string. Paging
// is not validated here: the search engine clamps out-of-range values.
type searchParams struct {
	Query    string         `json:"q" validate:"max=200"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
	Filters  models.Filters `json:"filters"`
}

// suggestParams is the validated form of the suggest query string.
type suggestParams struct {
	Prefix string `json:"q" validate:"required,max=100"`
	Limit  int    `json:"limit" validate:"gte=1,lte=50"`
}

// parseSearchParams reads search parameters from the query string.
func parseSearchParams(r *http.Request) (searchParams, *models.APIError) {
	q := r.URL.Query()
	params := searchParams{
		Query:    q.Get("q"),
		Page:     getIntParam(r, "page", 1),
		PageSize: getIntParam(r, "page_size", 0),
		Filters: models.Filters{
			Categories: queryList(r, "category"),
			Brands:     queryList(r, "brand"),
			Warehouses: queryList(r, "warehouse"),
			AccSets:    queryList(r, "accset"),
		},
	}
	for _, v := range queryList(r, "availability") {
		params.Filters.Availability = append(params.Filters.Availability,
			models.Availability(strings.ToUpper(strings.ReplaceAll(v, " ", "_"))))
	}

	var apiErr *models.APIError
	if params.Filters.MinPrice, apiErr = getFloatParam(r, "min_price"); apiErr != nil {
		return params, apiErr
	}
	if params.Filters.MaxPrice, apiErr = getFloatParam(r, "max_price"); apiErr != nil {
		return params, apiErr
	}
	return params, validateRequest(&params)
}

// Search handles GET /api/v1/search
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	params, apiErr := parseSearchParams(r)
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	result, meta, err := h.catalog.Search(r.Context(), search.Request{
		Query:    params.Query,
		Filters:  params.Filters,
		Page:     params.Page,
		PageSize: params.PageSize,
	})
	if err != nil {
		respondCatalogError(w, err)
		return
	}
	respondSuccess(w, result, meta, start)
}

// Suggest handles GET /api/v1/suggest
func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	params := suggestParams{
		Prefix: strings.TrimSpace(r.URL.Query().Get("q")),
		Limit:  getIntParam(r, "limit", 10),
	}
	if apiErr := validateRequest(&params); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	suggestions, meta, err := h.catalog.Suggest(r.Context(), params.Prefix, params.Limit)
	if err != nil {
		respondCatalogError(w, err)
		return
	}
	respondSuccess(w, suggestions, meta, start)
}

// PopularQueries handles GET /api/v1/search/popular
func (h *Handler) PopularQueries(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	limit := getIntParam(r, "limit", 10)
	if limit < 1 || limit > 100 {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, "limit must be between 1 and 100", nil)
		return
	}
	respondSuccess(w, h.catalog.PopularQueries(limit), catalog.Meta{}, start)
}
