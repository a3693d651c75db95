// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

/*
Package models defines data structures shared across the catalog service.

Key Components:

  - Product: one record per SKU, the unit of search and recommendation
  - Stock: per-warehouse availability rows joined to products by SKU
  - Filters: structured search filters (AND across facets, OR within a facet)
  - Facets: value counts recomputed for every search result set
  - SearchResult / RecommendationResult: query outputs returned to callers
  - LoadReport: counters produced by every catalog (re)load
  - APIResponse: standardized HTTP response wrapper

Model Categories:

1. Catalog Records:
  - Product, Stock, Availability

2. Query Models:
  - Filters, FacetName, FacetValue, Facets, SearchResult
  - RecommendationKind, RecommendationResult

3. Operational Models:
  - LoadReport

4. API Models:
  - APIResponse, Metadata, APIError

Records are immutable once loaded. Query operations return copies of
products so callers can never mutate the loaded catalog.
*/
package models
