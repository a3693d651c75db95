// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/catalogd/internal/middleware"
	"github.com/tomtom215/catalogd/internal/models"
)

// RouterConfig holds HTTP-layer settings.
type RouterConfig struct {
	CORSOrigins       []string
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RateLimitDisabled bool

	// RequestTimeout bounds read endpoints. Zero disables it.
	RequestTimeout time.Duration
}

// NewRouter configures all HTTP routes.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	mw := NewChiMiddleware(&ChiMiddlewareConfig{
		CORSAllowedOrigins: cfg.CORSOrigins,
		CORSAllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		CORSAllowedHeaders: []string{"Content-Type", middleware.RequestIDHeader},
		CORSExposedHeaders: []string{middleware.RequestIDHeader, "ETag"},
		CORSMaxAge:         86400,
		RateLimitRequests:  cfg.RateLimitRequests,
		RateLimitWindow:    cfg.RateLimitWindow,
		RateLimitDisabled:  cfg.RateLimitDisabled,
	})

	r := chi.NewRouter()

	// Global middleware, applied in order
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.CORS())
	r.Use(middleware.PrometheusMetrics)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, models.ErrCodeNotFound, "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, models.ErrCodeMethodNotAllowed, "Method not allowed", nil)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(APISecurityHeaders())

		// Health probes skip the rate limit so orchestrators are never throttled.
		r.Get("/health/live", h.HealthLive)
		r.Get("/health/ready", h.HealthReady)

		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimit())
			r.Use(middleware.Compression)

			r.Group(func(r chi.Router) {
				if cfg.RequestTimeout > 0 {
					r.Use(chimiddleware.Timeout(cfg.RequestTimeout))
				}

				r.Get("/search", h.Search)
				r.Get("/search/popular", h.PopularQueries)
				r.Get("/suggest", h.Suggest)

				r.Get("/products/{sku}", h.Product)
				r.Get("/products/{sku}/stock", h.ProductStock)

				r.Get("/recommendations/similar/{sku}", h.Similar)
				r.Get("/recommendations/trending", h.Trending)
				r.Get("/recommendations/complementary/{sku}", h.Complementary)

				r.Get("/catalog/status", h.CatalogStatus)
				r.Get("/catalog/reloads", h.CatalogReloads)
			})

			r.Post("/catalog/reload", h.CatalogReload)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
