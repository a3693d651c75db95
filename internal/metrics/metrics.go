// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tomtom215/catalogd/internal/models"
)

const namespace = "catalogd"

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "API request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "api_active_requests",
			Help:      "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_rate_limit_hits_total",
			Help:      "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Query Metrics
	SearchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_requests_total",
			Help:      "Total number of searches by mode",
		},
		[]string{"mode"}, // "query", "browse"
	)

	SearchResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_results",
			Help:      "Number of matching products per search",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 500, 1000, 5000},
		},
	)

	SearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Duration of uncached searches in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
	)

	Recommendations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendations_total",
			Help:      "Total number of recommendation calls by kind and outcome",
		},
		[]string{"kind", "outcome"}, // outcome: "results", "empty"
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Total number of cache hits",
		},
		[]string{"cache"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Total number of cache misses",
		},
		[]string{"cache"},
	)

	CacheEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_entries",
			Help:      "Current number of cache entries",
		},
		[]string{"cache"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_evictions_total",
			Help:      "Total number of cache entries removed by sweeps and purges",
		},
		[]string{"cache", "reason"}, // reason: "expired", "reload"
	)

	// Catalog Metrics
	CatalogReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_reloads_total",
			Help:      "Total number of catalog load attempts",
		},
		[]string{"trigger", "result"},
	)

	CatalogReloadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "catalog_reload_duration_seconds",
			Help:      "Duration of catalog loads in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	CatalogProducts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_products",
			Help:      "Number of distinct products in the current snapshot",
		},
	)

	CatalogSearchable = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_searchable",
			Help:      "Number of active, non-deleted products in the current snapshot",
		},
	)

	CatalogGeneration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_generation",
			Help:      "Generation of the current catalog snapshot",
		},
	)

	CatalogRejectedRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_rejected_rows",
			Help:      "Skipped and duplicate rows of the last successful load",
		},
	)

	CatalogLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_last_success_timestamp",
			Help:      "Unix timestamp of the last successful catalog load",
		},
	)
)

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks in-flight API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit counts a request rejected by the rate limiter.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordSearch records a computed (uncached) search.
func RecordSearch(browse bool, total int, duration time.Duration) {
	mode := "query"
	if browse {
		mode = "browse"
	}
	SearchRequests.WithLabelValues(mode).Inc()
	SearchResults.Observe(float64(total))
	SearchDuration.Observe(duration.Seconds())
}

// RecordRecommendation records a recommendation call.
func RecordRecommendation(kind models.RecommendationKind, results int) {
	outcome := "results"
	if results == 0 {
		outcome = "empty"
	}
	Recommendations.WithLabelValues(string(kind), outcome).Inc()
}

// RecordCacheLookup records a cache hit or miss.
func RecordCacheLookup(cache string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cache).Inc()
	} else {
		CacheMisses.WithLabelValues(cache).Inc()
	}
}

// RecordCacheEvictions records entries removed from a cache.
func RecordCacheEvictions(cache, reason string, n int) {
	if n <= 0 {
		return
	}
	CacheEvictions.WithLabelValues(cache, reason).Add(float64(n))
}

// SetCacheEntries sets the live entry gauge of a cache.
func SetCacheEntries(cache string, n int) {
	CacheEntries.WithLabelValues(cache).Set(float64(n))
}

// RecordReload records a catalog load attempt. Snapshot gauges only move on
// success, since a failed load leaves the previous snapshot serving.
func RecordReload(report *models.LoadReport) {
	result := "success"
	if !report.Success {
		result = "failure"
	}
	CatalogReloads.WithLabelValues(report.Trigger, result).Inc()
	CatalogReloadDuration.Observe(report.Duration.Seconds())

	if !report.Success {
		return
	}
	CatalogProducts.Set(float64(report.Products))
	CatalogSearchable.Set(float64(report.Searchable))
	CatalogGeneration.Set(float64(report.Generation))
	CatalogRejectedRows.Set(float64(report.SkippedOrDuplicate()))
	CatalogLastSuccess.Set(float64(report.FinishedAt.Unix()))
}
