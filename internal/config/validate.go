// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package config

import (
	"fmt"
	"strings"

	"github.com/tomtom215/catalogd/internal/ingest"
	"github.com/tomtom215/catalogd/internal/logging"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateSearch(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if c.ReloadLog.MaxEntries < 1 {
		return fmt.Errorf("RELOAD_LOG_MAX_ENTRIES must be positive, got %d", c.ReloadLog.MaxEntries)
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateCatalog() error {
	if strings.TrimSpace(c.Catalog.ProductsPath) == "" {
		return fmt.Errorf("CATALOG_PRODUCTS_PATH is required")
	}
	if _, err := ingest.ParseFormat(c.Catalog.Format); err != nil {
		return fmt.Errorf("CATALOG_FORMAT is invalid: %w", err)
	}
	if c.Catalog.Watch && c.Catalog.ReloadMinInterval <= 0 {
		return fmt.Errorf("CATALOG_RELOAD_MIN_INTERVAL must be positive when watching, got %v", c.Catalog.ReloadMinInterval)
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.SearchTTL <= 0 {
		return fmt.Errorf("CACHE_SEARCH_TTL must be positive, got %v", c.Cache.SearchTTL)
	}
	if c.Cache.RecommendTTL <= 0 {
		return fmt.Errorf("CACHE_RECOMMEND_TTL must be positive, got %v", c.Cache.RecommendTTL)
	}
	if c.Cache.SweepInterval <= 0 {
		return fmt.Errorf("CACHE_SWEEP_INTERVAL must be positive, got %v", c.Cache.SweepInterval)
	}
	if c.Cache.SweepBatchSize < 1 {
		return fmt.Errorf("CACHE_SWEEP_BATCH_SIZE must be positive, got %d", c.Cache.SweepBatchSize)
	}
	return nil
}

func (c *Config) validateSearch() error {
	if c.Search.DefaultPageSize < 1 || c.Search.MaxPageSize < 1 {
		return fmt.Errorf("search page sizes must be positive, got default=%d max=%d",
			c.Search.DefaultPageSize, c.Search.MaxPageSize)
	}
	if c.Search.DefaultPageSize > c.Search.MaxPageSize {
		return fmt.Errorf("SEARCH_DEFAULT_PAGE_SIZE (%d) must not exceed SEARCH_MAX_PAGE_SIZE (%d)",
			c.Search.DefaultPageSize, c.Search.MaxPageSize)
	}
	for i, bound := range c.Search.PriceBuckets {
		if bound <= 0 {
			return fmt.Errorf("SEARCH_PRICE_BUCKETS must be positive, got %v", c.Search.PriceBuckets)
		}
		if i > 0 && bound <= c.Search.PriceBuckets[i-1] {
			return fmt.Errorf("SEARCH_PRICE_BUCKETS must be strictly increasing, got %v", c.Search.PriceBuckets)
		}
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if c.Recommend.DefaultLimit < 1 || c.Recommend.MaxLimit < 1 {
		return fmt.Errorf("recommendation limits must be positive, got default=%d max=%d",
			c.Recommend.DefaultLimit, c.Recommend.MaxLimit)
	}
	if c.Recommend.DefaultLimit > c.Recommend.MaxLimit {
		return fmt.Errorf("RECOMMEND_DEFAULT_LIMIT (%d) must not exceed RECOMMEND_MAX_LIMIT (%d)",
			c.Recommend.DefaultLimit, c.Recommend.MaxLimit)
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive, got %v", c.Server.ShutdownTimeout)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", c.Security.RateLimitWindow)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL %q is invalid (valid: trace, debug, info, warn, error)", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT %q is invalid (valid: json, console)", c.Logging.Format)
	}
}
