// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

/*
Package config provides centralized configuration management for Catalogd.

Configuration is layered with Koanf v2. Later layers override earlier ones:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: CONFIG_PATH, or the first of DefaultConfigPaths
    that exists
 3. Environment variables listed in the mapping table in koanf.go

Unknown environment variables are ignored so the process environment cannot
leak into configuration by accident.

# Configuration Structure

  - CatalogConfig: ingest source files, file watching and reload throttling
  - CacheConfig: result cache lifetimes and the sweeper interval
  - SearchConfig: paging limits and price facet buckets
  - RecommendConfig: recommendation result limits
  - ReloadLogConfig: where load reports are persisted
  - ServerConfig: HTTP listener settings
  - SecurityConfig: CORS and rate limiting
  - LoggingConfig: zerolog level, format and caller info

# Environment Variables

Catalog:
  - CATALOG_PRODUCTS_PATH: product file (required)
  - CATALOG_STOCK_PATH: stock file (optional)
  - CATALOG_FORMAT: auto, csv, json or xlsx (default: auto)
  - CATALOG_WATCH: reload when source files change (default: true)
  - CATALOG_RELOAD_MIN_INTERVAL: minimum time between watcher reloads (default: 30s)
  - CATALOG_INCLUDE_INACTIVE: admit inactive products to recommendations (default: false)

Cache:
  - CACHE_SEARCH_TTL (default: 2m)
  - CACHE_RECOMMEND_TTL (default: 10m)
  - CACHE_SWEEP_INTERVAL (default: 1m)
  - CACHE_SWEEP_BATCH_SIZE (default: 256)

Search and recommendations:
  - SEARCH_DEFAULT_PAGE_SIZE (default: 20)
  - SEARCH_MAX_PAGE_SIZE (default: 100)
  - SEARCH_PRICE_BUCKETS: comma-separated upper bounds (default: 10,25,50,100)
  - RECOMMEND_DEFAULT_LIMIT (default: 10)
  - RECOMMEND_MAX_LIMIT (default: 50)

Reload log:
  - RELOAD_LOG_PATH: BadgerDB directory; empty keeps reports in memory
  - RELOAD_LOG_MAX_ENTRIES (default: 200)

Server and security:
  - HTTP_HOST (default: 0.0.0.0), HTTP_PORT (default: 8080)
  - HTTP_TIMEOUT (default: 30s), HTTP_SHUTDOWN_TIMEOUT (default: 15s)
  - CORS_ORIGINS: comma-separated (default: *)
  - RATE_LIMIT_REQUESTS (default: 100), RATE_LIMIT_WINDOW (default: 1m)
  - DISABLE_RATE_LIMIT (default: false)

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER (default: false)

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	catalogCfg := cfg.CatalogConfig()
*/
package config
