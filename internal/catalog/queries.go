// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package catalog

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tomtom215/catalogd/internal/cache"
	"github.com/tomtom215/catalogd/internal/metrics"
	"github.com/tomtom215/catalogd/internal/models"
	"github.com/tomtom215/catalogd/internal/search"
)

// maxTrackedQueryLen caps the byte length of a query phrase kept for
// PopularQueries.
const maxTrackedQueryLen = 100

// Meta describes how a query result was produced.
type Meta struct {
	// Generation is the snapshot the result was computed from.
	Generation uint64

	// Cached is true when the result came from the result cache.
	Cached bool
}

// Search runs a product search. Results may be served from cache and are
// shared between callers, so they must not be modified.
func (c *Catalog) Search(ctx context.Context, req search.Request) (*models.SearchResult, Meta, error) {
	if err := ctx.Err(); err != nil {
		return nil, Meta{}, err
	}
	snap, err := c.serving()
	if err != nil {
		return nil, Meta{}, err
	}
	meta := Meta{Generation: snap.generation}

	req = c.search.Normalize(req)
	c.trackQuery(req.Query)

	key := cache.GenerateKey(cacheNamespace("search", snap.generation), req)

	if res, ok := c.searchCache.Get(key); ok {
		metrics.RecordCacheLookup(searchCacheName, true)
		meta.Cached = true
		return res, meta, nil
	}
	metrics.RecordCacheLookup(searchCacheName, false)

	start := time.Now()
	res := c.search.Search(snap.index, req)
	metrics.RecordSearch(req.Query == "", res.Total, time.Since(start))

	c.searchCache.Set(key, res, 0)
	return res, meta, nil
}

// GetProduct returns a copy of the product with exactly this SKU, including
// inactive and deleted products. An unknown SKU returns nil with no error.
func (c *Catalog) GetProduct(ctx context.Context, sku string) (*models.Product, Meta, error) {
	if err := ctx.Err(); err != nil {
		return nil, Meta{}, err
	}
	snap, err := c.serving()
	if err != nil {
		return nil, Meta{}, err
	}
	meta := Meta{Generation: snap.generation}

	p, ok := snap.store.Lookup(sku)
	if !ok {
		return nil, meta, nil
	}
	clone := p.Clone()
	return &clone, meta, nil
}

// Stock returns per-warehouse stock for sku, or nil for an unknown SKU.
// A known product without stock rows has an empty warehouse list.
func (c *Catalog) Stock(ctx context.Context, sku string) (*models.StockLevel, Meta, error) {
	if err := ctx.Err(); err != nil {
		return nil, Meta{}, err
	}
	snap, err := c.serving()
	if err != nil {
		return nil, Meta{}, err
	}
	meta := Meta{Generation: snap.generation}

	if _, ok := snap.store.Lookup(sku); !ok {
		return nil, meta, nil
	}
	rows := snap.store.StockFor(sku)
	return &models.StockLevel{
		SKU:            sku,
		Warehouses:     rows,
		TotalAvailable: models.TotalAvailable(rows),
	}, meta, nil
}

// Similar recommends products like sku.
func (c *Catalog) Similar(ctx context.Context, sku string, limit int) (*models.RecommendationResult, Meta, error) {
	return c.recommendation(ctx, models.RecommendSimilar, sku, nil, limit)
}

// Trending recommends the most ordered products, optionally restricted to
// categories (case-insensitive).
func (c *Catalog) Trending(ctx context.Context, categories []string, limit int) (*models.RecommendationResult, Meta, error) {
	return c.recommendation(ctx, models.RecommendTrending, "", categories, limit)
}

// Complementary recommends products from other categories that go with sku.
func (c *Catalog) Complementary(ctx context.Context, sku string, limit int) (*models.RecommendationResult, Meta, error) {
	return c.recommendation(ctx, models.RecommendComplementary, sku, nil, limit)
}

func (c *Catalog) recommendation(ctx context.Context, kind models.RecommendationKind, sku string, categories []string, limit int) (*models.RecommendationResult, Meta, error) {
	if err := ctx.Err(); err != nil {
		return nil, Meta{}, err
	}
	snap, err := c.serving()
	if err != nil {
		return nil, Meta{}, err
	}
	meta := Meta{Generation: snap.generation}

	limit = c.recommend.NormalizeLimit(limit)
	categories = normalizeCategories(categories)

	key := cache.GenerateKey(cacheNamespace("recommend", snap.generation), struct {
		Kind       models.RecommendationKind `json:"k"`
		SKU        string                    `json:"s,omitempty"`
		Categories []string                  `json:"c,omitempty"`
		Limit      int                       `json:"l"`
	}{kind, sku, categories, limit})

	if res, ok := c.recommendCache.Get(key); ok {
		metrics.RecordCacheLookup(recommendCacheName, true)
		meta.Cached = true
		return res, meta, nil
	}
	metrics.RecordCacheLookup(recommendCacheName, false)

	var res *models.RecommendationResult
	switch kind {
	case models.RecommendSimilar:
		res = c.recommend.Similar(snap.index, sku, limit)
	case models.RecommendTrending:
		res = c.recommend.Trending(snap.index, categories, limit)
	default:
		res = c.recommend.Complementary(snap.index, sku, limit)
	}
	metrics.RecordRecommendation(kind, len(res.Products))

	c.recommendCache.Set(key, res, 0)
	return res, meta, nil
}

// cacheNamespace scopes cache keys to one snapshot generation.
func cacheNamespace(name string, generation uint64) string {
	return name + "/" + strconv.FormatUint(generation, 10)
}

// normalizeCategories lowercases, trims, dedupes and sorts categories so
// equivalent filters share a cache key.
func normalizeCategories(categories []string) []string {
	if len(categories) == 0 {
		return nil
	}
	out := make([]string, 0, len(categories))
	for _, cat := range categories {
		cat = strings.ToLower(strings.TrimSpace(cat))
		if cat != "" {
			out = append(out, cat)
		}
	}
	slices.Sort(out)
	out = slices.Compact(out)
	if len(out) == 0 {
		return nil
	}
	return out
}

// Suggest returns autocomplete entries for prefix.
func (c *Catalog) Suggest(ctx context.Context, prefix string, limit int) ([]models.Suggestion, Meta, error) {
	if err := ctx.Err(); err != nil {
		return nil, Meta{}, err
	}
	snap, err := c.serving()
	if err != nil {
		return nil, Meta{}, err
	}
	return snap.index.Suggest(strings.TrimSpace(prefix), limit), Meta{Generation: snap.generation}, nil
}

// trackQuery counts a non-empty search phrase for PopularQueries.
func (c *Catalog) trackQuery(query string) {
	q := strings.Join(strings.Fields(strings.ToLower(query)), " ")
	if q == "" {
		return
	}
	if len(q) > maxTrackedQueryLen {
		cut := maxTrackedQueryLen
		for cut > 0 && !utf8.RuneStart(q[cut]) {
			cut--
		}
		q = q[:cut]
	}
	c.queries.Increment(q)
}

// PopularQueries returns the most frequent search phrases in the tracking
// window. It works before the first load.
func (c *Catalog) PopularQueries(limit int) []models.PopularQuery {
	top := c.queries.Top(limit)
	out := make([]models.PopularQuery, 0, len(top))
	for _, kc := range top {
		out = append(out, models.PopularQuery{Query: kc.Key, Count: kc.Count})
	}
	return out
}

// Status summarizes the served snapshot and the caches.
func (c *Catalog) Status(ctx context.Context) models.CatalogStatus {
	searchStats := c.searchCache.GetStats()
	recommendStats := c.recommendCache.GetStats()

	status := models.CatalogStatus{
		CacheKeys:   c.searchCache.Len() + c.recommendCache.Len(),
		CacheHits:   searchStats.Hits + recommendStats.Hits,
		CacheMisses: searchStats.Misses + recommendStats.Misses,
		LastReport:  c.lastReport.Load(),
	}
	if status.LastReport == nil {
		if last, err := c.reloads.Last(ctx); err == nil {
			status.LastReport = last
		}
	}

	snap := c.current.Load()
	if snap == nil {
		return status
	}
	status.Ready = true
	status.Generation = snap.generation
	status.Products = snap.store.Len()
	status.Searchable = snap.store.Searchable()
	status.StockRows = snap.store.StockRows()
	status.LoadedAt = snap.loadedAt
	return status
}

// Reloads returns up to limit recent load reports, newest first.
func (c *Catalog) Reloads(ctx context.Context, limit int) ([]models.LoadReport, error) {
	return c.reloads.Recent(ctx, limit)
}
