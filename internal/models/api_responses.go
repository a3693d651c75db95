// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package models

import (
	"time"
)

// APIResponse is the envelope returned by every HTTP endpoint.
//
// Status is "success" with Data populated, or "error" with Error populated.
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"products": [...], "total": 12, "page": 1, "page_size": 20},
//	  "metadata": {
//	    "timestamp": "2026-03-01T12:00:00Z",
//	    "query_time_ms": 2,
//	    "generation": 4
//	  }
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "NOT_FOUND",
//	    "message": "product not found",
//	    "details": {"sku": "ABC-1"}
//	  },
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries timing and cache information for a response.
//
// Generation is the catalog snapshot the response was computed from. It is
// omitted for responses that do not read the catalog.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
	Generation  uint64    `json:"generation,omitempty"`
}

// APIError is a structured error body.
//
// Common error codes:
//   - VALIDATION_ERROR: invalid query or body parameters
//   - NOT_FOUND: unknown SKU
//   - NOT_READY: catalog has not finished its first load
//   - RELOAD_FAILED: a manual reload could not complete
//   - METHOD_NOT_ALLOWED: wrong HTTP method
//   - RATE_LIMIT_EXCEEDED: too many requests
//   - INTERNAL_ERROR: unexpected failure
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error codes used in APIError.Code.
const (
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeNotReady         = "NOT_READY"
	ErrCodeReloadFailed     = "RELOAD_FAILED"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrCodeRateLimited      = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternal         = "INTERNAL_ERROR"
)

// CatalogStatus is returned by the status endpoint.
type CatalogStatus struct {
	Ready       bool        `json:"ready"`
	Generation  uint64      `json:"generation"`
	Products    int         `json:"products"`
	Searchable  int         `json:"searchable"`
	StockRows   int         `json:"stock_rows"`
	LoadedAt    time.Time   `json:"loaded_at"`
	CacheKeys   int         `json:"cache_keys"`
	CacheHits   int64       `json:"cache_hits"`
	CacheMisses int64       `json:"cache_misses"`
	LastReport  *LoadReport `json:"last_report,omitempty"`
}

// Suggestion is one autocomplete entry.
type Suggestion struct {
	Text  string `json:"text"`
	SKU   string `json:"sku,omitempty"`
	Count int    `json:"count"`
}

// PopularQuery is a search phrase and how often it was requested within
// the tracking window.
type PopularQuery struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}
