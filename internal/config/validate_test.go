// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Catalog.ProductsPath = "/data/products.csv"
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults with products path", func(*Config) {}, ""},
		{"missing products path", func(c *Config) { c.Catalog.ProductsPath = " " }, "CATALOG_PRODUCTS_PATH"},
		{"unknown format", func(c *Config) { c.Catalog.Format = "parquet" }, "CATALOG_FORMAT"},
		{"watch without interval", func(c *Config) { c.Catalog.ReloadMinInterval = 0 }, "CATALOG_RELOAD_MIN_INTERVAL"},
		{"no watch ignores interval", func(c *Config) {
			c.Catalog.Watch = false
			c.Catalog.ReloadMinInterval = 0
		}, ""},
		{"zero search ttl", func(c *Config) { c.Cache.SearchTTL = 0 }, "CACHE_SEARCH_TTL"},
		{"zero sweep interval", func(c *Config) { c.Cache.SweepInterval = 0 }, "CACHE_SWEEP_INTERVAL"},
		{"page size inverted", func(c *Config) { c.Search.DefaultPageSize = 500 }, "SEARCH_DEFAULT_PAGE_SIZE"},
		{"buckets not increasing", func(c *Config) { c.Search.PriceBuckets = []float64{10, 10} }, "strictly increasing"},
		{"negative bucket", func(c *Config) { c.Search.PriceBuckets = []float64{-1, 10} }, "must be positive"},
		{"limit inverted", func(c *Config) { c.Recommend.DefaultLimit = 60 }, "RECOMMEND_DEFAULT_LIMIT"},
		{"reload log size", func(c *Config) { c.ReloadLog.MaxEntries = 0 }, "RELOAD_LOG_MAX_ENTRIES"},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "HTTP_PORT"},
		{"zero shutdown timeout", func(c *Config) { c.Server.ShutdownTimeout = 0 }, "HTTP_SHUTDOWN_TIMEOUT"},
		{"zero rate limit", func(c *Config) { c.Security.RateLimitReqs = 0 }, "RATE_LIMIT_REQUESTS"},
		{"rate limit disabled", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
			c.Security.RateLimitWindow = -time.Second
		}, ""},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "LOG_LEVEL"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestServerAddr(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 8080}
	if got := s.Addr(); got != "127.0.0.1:8080" {
		t.Errorf("Addr() = %q", got)
	}
}
