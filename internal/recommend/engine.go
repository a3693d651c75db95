// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package recommend

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/tomtom215/catalogd/internal/index"
	"github.com/tomtom215/catalogd/internal/models"
)

// Engine ranks recommendation candidates. It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return *e.config
}

// NormalizeLimit clamps limit into [1, MaxLimit], using DefaultLimit for
// non-positive values.
func (e *Engine) NormalizeLimit(limit int) int {
	if limit < 1 {
		return e.config.DefaultLimit
	}
	if limit > e.config.MaxLimit {
		return e.config.MaxLimit
	}
	return limit
}

// Similar returns products like sku. An unknown SKU yields an empty
// result with score 0.
func (e *Engine) Similar(idx *index.Index, sku string, limit int) *models.RecommendationResult {
	return e.forSource(idx, SimilarPolicy{}, sku, limit)
}

// Trending returns the most ordered products, optionally restricted to
// categories.
func (e *Engine) Trending(idx *index.Index, categories []string, limit int) *models.RecommendationResult {
	return e.Rank(idx, TrendingPolicy{Categories: categories}, nil, limit)
}

// Complementary returns products from other categories that share
// keywords with sku. An unknown SKU yields an empty result with score 0.
func (e *Engine) Complementary(idx *index.Index, sku string, limit int) *models.RecommendationResult {
	return e.forSource(idx, ComplementaryPolicy{}, sku, limit)
}

func (e *Engine) forSource(idx *index.Index, policy Policy, sku string, limit int) *models.RecommendationResult {
	src, ok := idx.Store().Lookup(sku)
	if !ok {
		e.logger.Debug().Str("sku", sku).Str("kind", string(policy.Kind())).Msg("Recommendation source not found")
		return &models.RecommendationResult{
			Kind:     policy.Kind(),
			Products: []models.Product{},
			Score:    0,
			Reason:   fmt.Sprintf("unknown product %s", sku),
		}
	}
	return e.Rank(idx, policy, src, limit)
}

// Rank is the single ranking routine behind every recommendation kind.
// It walks the catalog, keeps candidates the engine and policy both
// accept, orders them by policy score then SKU, and truncates to limit.
// src may be nil for policies that do not use one.
func (e *Engine) Rank(idx *index.Index, policy Policy, src *models.Product, limit int) *models.RecommendationResult {
	limit = e.NormalizeLimit(limit)

	var ranked []ScoredProduct
	for p := range idx.Store().All() {
		if !e.inPool(p) {
			continue
		}
		if src != nil && p.SKU == src.SKU {
			continue
		}
		if !policy.Eligible(idx, src, p) {
			continue
		}
		ranked = append(ranked, ScoredProduct{Product: p, Score: policy.Score(idx, src, p)})
	}

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Score != b.Score {
			return a.Score.Better(b.Score)
		}
		return a.Product.SKU < b.Product.SKU
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	result := &models.RecommendationResult{
		Kind:     policy.Kind(),
		Products: make([]models.Product, 0, len(ranked)),
		Reason:   policy.Reason(src, len(ranked)),
	}
	for _, r := range ranked {
		result.Products = append(result.Products, r.Product.Clone())
	}
	if len(ranked) > 0 {
		result.Score = policy.Confidence(idx, src, ranked)
	}
	return result
}

func (e *Engine) inPool(p *models.Product) bool {
	if p.IsDeleted {
		return false
	}
	return p.IsActive || e.config.IncludeInactive
}
