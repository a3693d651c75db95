// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

/*
Package middleware provides HTTP middleware components for the API router.

Every middleware here has the chi signature func(http.Handler) http.Handler
and can be passed straight to chi.Router.Use.

Key Components:

  - RequestID: accepts or generates an X-Request-ID and stores it in the
    request context for logging.Ctx
  - AccessLog: one structured zerolog line per request
  - PrometheusMetrics: request count, latency and in-flight gauges labelled
    by chi route pattern
  - Compression: gzip for clients that accept it

Middleware Stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)          // Layer 1: request tracking
	r.Use(middleware.AccessLog)          // Layer 2: access log
	r.Use(middleware.PrometheusMetrics)  // Layer 3: metrics
	r.Use(middleware.Compression)        // Layer 4: gzip

Labelling metrics by route pattern ("/api/v1/products/{sku}") rather than by
raw path keeps Prometheus label cardinality bounded no matter how many SKUs
are requested.
*/
package middleware
