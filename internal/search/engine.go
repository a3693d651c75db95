// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

// Package search implements free-text search with structured filters over
// an index.Index.
//
// Matching: an empty query selects every searchable product. A non-empty
// query selects products matching any query token, plus products whose SKU
// contains the whole query as a case-insensitive substring.
//
// Filtering: each populated filter narrows the candidates; values within
// one filter are alternatives.
//
// Ranking: MatchTier descending, then orders last month descending
// (products without a signal last), then SKU ascending. The order is total,
// so pagination over a stable catalog never repeats or drops a product.
//
// Facets are counted over the filtered candidates before pagination.
package search

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/catalogd/internal/index"
	"github.com/tomtom215/catalogd/internal/models"
)

const (
	// DefaultPageSize applies when a request gives no usable page size.
	DefaultPageSize = 20
	// DefaultMaxPageSize caps page size.
	DefaultMaxPageSize = 100
)

// Options configures an Engine.
type Options struct {
	DefaultPageSize int
	MaxPageSize     int
}

// Request is a search request. Page is 1-indexed.
type Request struct {
	Query    string         `json:"query"`
	Filters  models.Filters `json:"filters"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// Engine runs searches. It holds no catalog state and is safe for
// concurrent use.
type Engine struct {
	opts   Options
	logger zerolog.Logger
}

// NewEngine creates a search engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(opts Options, logger zerolog.Logger) *Engine {
	if opts.DefaultPageSize <= 0 {
		opts.DefaultPageSize = DefaultPageSize
	}
	if opts.MaxPageSize <= 0 {
		opts.MaxPageSize = DefaultMaxPageSize
	}
	if opts.DefaultPageSize > opts.MaxPageSize {
		opts.DefaultPageSize = opts.MaxPageSize
	}
	return &Engine{
		opts:   opts,
		logger: logger.With().Str("component", "search").Logger(),
	}
}

// Normalize clamps paging and trims the query. Invalid values are replaced
// with safe defaults rather than rejected.
func (e *Engine) Normalize(req Request) Request {
	req.Query = strings.TrimSpace(req.Query)
	if req.Page < 1 {
		if req.Page != 0 {
			e.logger.Debug().Int("page", req.Page).Msg("Clamping invalid page to 1")
		}
		req.Page = 1
	}
	if req.PageSize < 1 {
		if req.PageSize != 0 {
			e.logger.Debug().Int("page_size", req.PageSize).Msg("Replacing invalid page size with default")
		}
		req.PageSize = e.opts.DefaultPageSize
	}
	if req.PageSize > e.opts.MaxPageSize {
		req.PageSize = e.opts.MaxPageSize
	}
	return req
}

type scored struct {
	product *models.Product
	tier    MatchTier
}

// Search runs req against idx. It never fails: a query with no matches
// returns an empty page with zero total and empty facets.
func (e *Engine) Search(idx *index.Index, req Request) *models.SearchResult {
	req = e.Normalize(req)

	candidates := e.match(idx, req.Query)
	candidates = applyFilters(idx, candidates, &req.Filters)
	if len(candidates) == 0 {
		return models.EmptySearchResult(req.Page, req.PageSize)
	}

	st := idx.Store()
	tokens := index.Tokenize(req.Query)
	ranked := make([]scored, 0, len(candidates))
	for sku := range candidates {
		p, ok := st.Lookup(sku)
		if !ok {
			continue
		}
		tier := TierBrowse
		if req.Query != "" {
			tier = classify(idx, sku, req.Query, tokens)
		}
		ranked = append(ranked, scored{product: p, tier: tier})
	}
	sortRanked(ranked)

	result := &models.SearchResult{
		Products: []models.Product{},
		Total:    len(ranked),
		Page:     req.Page,
		PageSize: req.PageSize,
		Facets:   computeFacets(idx, ranked),
	}

	start := (req.Page - 1) * req.PageSize
	if start >= len(ranked) {
		return result
	}
	end := min(start+req.PageSize, len(ranked))
	result.Products = make([]models.Product, 0, end-start)
	for _, r := range ranked[start:end] {
		result.Products = append(result.Products, r.product.Clone())
	}
	return result
}

// match returns the unfiltered candidate set for query.
func (e *Engine) match(idx *index.Index, query string) index.SKUSet {
	if query == "" {
		all := make(index.SKUSet, len(idx.Searchable()))
		for _, sku := range idx.Searchable() {
			all[sku] = struct{}{}
		}
		return all
	}

	tokens := index.Tokenize(query)
	sets := make([]index.SKUSet, 0, len(tokens)+1)
	for _, tok := range tokens {
		if set := idx.Token(tok); len(set) > 0 {
			sets = append(sets, set)
		}
	}
	sets = append(sets, idx.SKUsContaining(query))
	return index.Union(sets...)
}

func sortRanked(ranked []scored) {
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.tier != b.tier {
			return b.tier.Less(a.tier)
		}
		if ao, bo := a.product.Orders(), b.product.Orders(); ao != bo {
			return ao > bo
		}
		return a.product.SKU < b.product.SKU
	})
}
