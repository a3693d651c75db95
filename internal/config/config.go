// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package config

import (
	"net"
	"strconv"
	"time"

	"github.com/tomtom215/catalogd/internal/catalog"
	"github.com/tomtom215/catalogd/internal/ingest"
	"github.com/tomtom215/catalogd/internal/search"
)

// Config holds all application configuration.
type Config struct {
	Catalog   CatalogConfig   `koanf:"catalog"`
	Cache     CacheConfig     `koanf:"cache"`
	Search    SearchConfig    `koanf:"search"`
	Recommend RecommendConfig `koanf:"recommend"`
	ReloadLog ReloadLogConfig `koanf:"reload_log"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// CatalogConfig names the ingest source and controls reloading.
type CatalogConfig struct {
	// ProductsPath is the product file. Required.
	ProductsPath string `koanf:"products_path"`

	// StockPath is the stock file. Optional when the product file embeds
	// stock rows (JSON "stock" array or XLSX "Stock" sheet).
	StockPath string `koanf:"stock_path"`

	// Format is auto, csv, json or xlsx. Auto picks by file extension.
	Format string `koanf:"format"`

	// Watch reloads the catalog when a source file changes.
	// Default: true
	Watch bool `koanf:"watch"`

	// ReloadMinInterval is the minimum time between watcher-triggered
	// reloads. Bursts of file events inside the interval coalesce.
	// Default: 30s
	ReloadMinInterval time.Duration `koanf:"reload_min_interval"`

	// IncludeInactive admits inactive (not deleted) products to
	// recommendation pools. Search never returns inactive products.
	// Default: false
	IncludeInactive bool `koanf:"include_inactive"`
}

// CacheConfig holds result cache settings.
type CacheConfig struct {
	SearchTTL      time.Duration `koanf:"search_ttl"`
	RecommendTTL   time.Duration `koanf:"recommend_ttl"`
	SweepInterval  time.Duration `koanf:"sweep_interval"`
	SweepBatchSize int           `koanf:"sweep_batch_size"`
}

// SearchConfig holds paging and facet settings.
type SearchConfig struct {
	DefaultPageSize int       `koanf:"default_page_size"`
	MaxPageSize     int       `koanf:"max_page_size"`
	PriceBuckets    []float64 `koanf:"price_buckets"`
}

// RecommendConfig holds recommendation result limits.
type RecommendConfig struct {
	DefaultLimit int `koanf:"default_limit"`
	MaxLimit     int `koanf:"max_limit"`
}

// ReloadLogConfig controls load report persistence.
type ReloadLogConfig struct {
	// Path is a BadgerDB directory. Empty keeps reports in memory only.
	Path string `koanf:"path"`

	// MaxEntries is how many reports are retained.
	// Default: 200
	MaxEntries int `koanf:"max_entries"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// SecurityConfig holds CORS and rate limit settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// Addr returns the HTTP listen address.
func (s *ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Source returns the ingest source described by the catalog section.
// Format must already have passed validation.
func (c *CatalogConfig) Source() ingest.Source {
	format, err := ingest.ParseFormat(c.Format)
	if err != nil {
		format = ingest.FormatAuto
	}
	return ingest.Source{
		ProductsPath: c.ProductsPath,
		StockPath:    c.StockPath,
		Format:       format,
	}
}

// CatalogConfig builds the catalog configuration from the loaded settings.
func (c *Config) CatalogConfig() catalog.Config {
	cc := catalog.DefaultConfig()
	cc.Source = c.Catalog.Source()
	if len(c.Search.PriceBuckets) > 0 {
		cc.PriceBuckets = append([]float64(nil), c.Search.PriceBuckets...)
	}
	cc.Search = search.Options{
		DefaultPageSize: c.Search.DefaultPageSize,
		MaxPageSize:     c.Search.MaxPageSize,
	}
	cc.Recommend.DefaultLimit = c.Recommend.DefaultLimit
	cc.Recommend.MaxLimit = c.Recommend.MaxLimit
	cc.Recommend.IncludeInactive = c.Catalog.IncludeInactive
	cc.Cache.SearchTTL = c.Cache.SearchTTL
	cc.Cache.RecommendTTL = c.Cache.RecommendTTL
	cc.Cache.SweepBatchSize = c.Cache.SweepBatchSize
	return cc
}
