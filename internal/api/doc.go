// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

/*
Package api exposes the catalog over HTTP using the Chi router.

Every response uses the models.APIResponse envelope. Errors carry one of the
models.ErrCode* codes.

# Endpoints

Search and lookup:

	GET  /api/v1/search                            product search with facets
	GET  /api/v1/search/popular                    most frequent search phrases
	GET  /api/v1/suggest?q=                        autocomplete
	GET  /api/v1/products/{sku}                    single product, any state
	GET  /api/v1/products/{sku}/stock              per-warehouse stock

Recommendations:

	GET  /api/v1/recommendations/similar/{sku}
	GET  /api/v1/recommendations/trending?category=a,b
	GET  /api/v1/recommendations/complementary/{sku}

Catalog lifecycle:

	GET  /api/v1/catalog/status
	GET  /api/v1/catalog/reloads
	POST /api/v1/catalog/reload

Operations:

	GET  /api/v1/health/live                       process is up
	GET  /api/v1/health/ready                      catalog loaded
	GET  /metrics                                  Prometheus

# Search Parameters

	q             free text; empty browses every searchable product
	page          1-based page number (default 1)
	page_size     results per page (default 20, capped at the configured max)
	category, brand, warehouse, accset, availability
	              comma-separated facet values; values within one facet are
	              OR'd, facets are AND'd
	min_price, max_price
	              inclusive bounds; setting either excludes unpriced products

Until the first catalog load completes, catalog endpoints answer 503 with
code NOT_READY.
*/
package api
