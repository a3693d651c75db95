// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

/*
Package metrics provides the Prometheus instrumentation for catalogd.

All collectors are registered with the default registry via promauto and are
exposed by the HTTP server at /metrics.

# Available Metrics

API Metrics:
  - catalogd_api_requests_total: requests by method, route pattern and status (counter)
  - catalogd_api_request_duration_seconds: request latency (histogram)
  - catalogd_api_active_requests: in-flight requests (gauge)
  - catalogd_api_rate_limit_hits_total: rejected requests by route (counter)

Query Metrics:
  - catalogd_search_requests_total: searches by mode (query or browse) (counter)
  - catalogd_search_results: total matches per search (histogram)
  - catalogd_search_duration_seconds: search latency excluding cache hits (histogram)
  - catalogd_recommendations_total: recommendation calls by kind and outcome (counter)

Cache Metrics:
  - catalogd_cache_hits_total / catalogd_cache_misses_total: lookups by cache (counter)
  - catalogd_cache_entries: live entries by cache (gauge)
  - catalogd_cache_evictions_total: entries removed by sweeps or purges (counter)

Catalog Metrics:
  - catalogd_catalog_reloads_total: load attempts by trigger and result (counter)
  - catalogd_catalog_reload_duration_seconds: load duration (histogram)
  - catalogd_catalog_products / catalogd_catalog_searchable: current snapshot size (gauge)
  - catalogd_catalog_generation: current snapshot generation (gauge)
  - catalogd_catalog_rejected_rows: skipped and duplicate rows of the last load (gauge)
  - catalogd_catalog_last_success_timestamp: unix time of the last good load (gauge)
*/
package metrics
