// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package catalog

import (
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/catalogd/internal/index"
	"github.com/tomtom215/catalogd/internal/ingest"
	"github.com/tomtom215/catalogd/internal/recommend"
	"github.com/tomtom215/catalogd/internal/search"
)

// Config configures a Catalog.
type Config struct {
	Source ingest.Source

	// PriceBuckets are the upper bounds of the price facet buckets.
	PriceBuckets []float64

	Search    search.Options
	Recommend recommend.Config
	Cache     CacheConfig
	Queries   QueryConfig

	// Clock overrides time.Now for caches, query counters and reports.
	Clock func() time.Time
}

// CacheConfig sets result cache lifetimes.
type CacheConfig struct {
	// SearchTTL applies to search results.
	SearchTTL time.Duration

	// RecommendTTL applies to recommendation results. Recommendations
	// change less often than search pages, so this is usually longer.
	RecommendTTL time.Duration

	// SweepBatchSize bounds keys removed per lock hold during a sweep.
	SweepBatchSize int
}

// QueryConfig sizes the popular-query counter.
type QueryConfig struct {
	Window  time.Duration
	Buckets int
	MaxKeys int
}

// DefaultConfig returns defaults for every field except Source.
func DefaultConfig() Config {
	return Config{
		PriceBuckets: append([]float64(nil), index.DefaultPriceBuckets...),
		Search: search.Options{
			DefaultPageSize: search.DefaultPageSize,
			MaxPageSize:     search.DefaultMaxPageSize,
		},
		Recommend: *recommend.DefaultConfig(),
		Cache: CacheConfig{
			SearchTTL:      2 * time.Minute,
			RecommendTTL:   10 * time.Minute,
			SweepBatchSize: 256,
		},
		Queries: QueryConfig{
			Window:  time.Hour,
			Buckets: 60,
			MaxKeys: 10000,
		},
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Cache.SearchTTL <= 0 {
		return errors.New("cache search TTL must be positive")
	}
	if c.Cache.RecommendTTL <= 0 {
		return errors.New("cache recommend TTL must be positive")
	}
	if c.Queries.Window <= 0 || c.Queries.Buckets <= 0 || c.Queries.MaxKeys <= 0 {
		return errors.New("query counter settings must be positive")
	}
	for i := 1; i < len(c.PriceBuckets); i++ {
		if c.PriceBuckets[i] <= c.PriceBuckets[i-1] {
			return fmt.Errorf("price buckets must be strictly increasing, got %v", c.PriceBuckets)
		}
	}
	if err := c.Recommend.Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	return nil
}
