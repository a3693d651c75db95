// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/catalogd/internal/cache"
	"github.com/tomtom215/catalogd/internal/index"
	"github.com/tomtom215/catalogd/internal/ingest"
	"github.com/tomtom215/catalogd/internal/metrics"
	"github.com/tomtom215/catalogd/internal/models"
	"github.com/tomtom215/catalogd/internal/recommend"
	"github.com/tomtom215/catalogd/internal/reloadlog"
	"github.com/tomtom215/catalogd/internal/search"
	"github.com/tomtom215/catalogd/internal/store"
)

var (
	// ErrNotReady is returned by queries before the first successful load.
	ErrNotReady = errors.New("catalog not ready")

	// ErrClosed is returned by Initialize and Reload after Shutdown.
	ErrClosed = errors.New("catalog is shut down")
)

// Reload triggers recorded in load reports.
const (
	TriggerStartup = "startup"
	TriggerManual  = "manual"
	TriggerWatcher = "watcher"
)

// Cache names used in metrics.
const (
	searchCacheName    = "search"
	recommendCacheName = "recommend"
)

// snapshot is one immutable generation of the catalog.
type snapshot struct {
	store      *store.Store
	index      *index.Index
	generation uint64
	loadedAt   time.Time
}

// Catalog serves searches and recommendations over the loaded products.
// All methods are safe for concurrent use.
type Catalog struct {
	cfg    Config
	now    func() time.Time
	logger zerolog.Logger

	loader    *ingest.Loader
	search    *search.Engine
	recommend *recommend.Engine

	current atomic.Pointer[snapshot]

	// reloadMu serializes loads; generation is only touched under it.
	reloadMu   sync.Mutex
	generation uint64
	lastReport atomic.Pointer[models.LoadReport]
	reloads    reloadlog.Store

	searchCache    *cache.Cache[*models.SearchResult]
	recommendCache *cache.Cache[*models.RecommendationResult]
	queries        *cache.SlidingWindowStore

	events *eventBus
	closed atomic.Bool
}

// New constructs a Catalog. It does not load anything; call Initialize.
// reloads may be nil, in which case an in-memory log is used.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(cfg Config, reloads reloadlog.Store, logger zerolog.Logger) (*Catalog, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog config: %w", err)
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if reloads == nil {
		reloads = reloadlog.NewMemoryStore(reloadlog.DefaultMaxEntries)
	}

	recCfg := cfg.Recommend
	recEngine, err := recommend.NewEngine(&recCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create recommendation engine: %w", err)
	}

	c := &Catalog{
		cfg:       cfg,
		now:       cfg.Clock,
		logger:    logger.With().Str("component", "catalog").Logger(),
		loader:    ingest.NewLoader(cfg.Source, logger),
		search:    search.NewEngine(cfg.Search, logger),
		recommend: recEngine,
		reloads:   reloads,
		searchCache: cache.New[*models.SearchResult](cache.Options{
			DefaultTTL:     cfg.Cache.SearchTTL,
			SweepBatchSize: cfg.Cache.SweepBatchSize,
			Clock:          cfg.Clock,
		}),
		recommendCache: cache.New[*models.RecommendationResult](cache.Options{
			DefaultTTL:     cfg.Cache.RecommendTTL,
			SweepBatchSize: cfg.Cache.SweepBatchSize,
			Clock:          cfg.Clock,
		}),
		queries: cache.NewSlidingWindowStore(cfg.Queries.Window, cfg.Queries.Buckets, cfg.Queries.MaxKeys, cfg.Clock),
	}

	events, err := newEventBus(logger, c.purgeCaches)
	if err != nil {
		return nil, fmt.Errorf("create event bus: %w", err)
	}
	c.events = events

	return c, nil
}

// Initialize performs the first load. On failure the catalog stays not
// ready and the error (a *ingest.DataLoadError for source problems) is
// returned.
func (c *Catalog) Initialize(ctx context.Context) error {
	_, err := c.load(ctx, TriggerStartup)
	return err
}

// Reload loads the source again and swaps in the new snapshot. On failure
// the previous snapshot keeps serving and the failed report is returned with
// the error.
func (c *Catalog) Reload(ctx context.Context, trigger string) (*models.LoadReport, error) {
	if trigger == "" {
		trigger = TriggerManual
	}
	return c.load(ctx, trigger)
}

// Shutdown stops the event bus and releases the snapshot. Later queries
// return ErrNotReady and later loads return ErrClosed.
func (c *Catalog) Shutdown(ctx context.Context) error {
	if c.closed.Swap(true) {
		return nil
	}

	// Wait for an in-flight load so it cannot publish a snapshot afterwards.
	c.reloadMu.Lock()
	c.current.Store(nil)
	c.reloadMu.Unlock()

	err := c.events.Close(ctx)
	c.searchCache.Clear()
	c.recommendCache.Clear()
	c.logger.Info().Msg("Catalog shut down")
	return err
}

// Ready reports whether a snapshot is being served.
func (c *Catalog) Ready() bool {
	return c.current.Load() != nil
}

// Generation returns the generation of the served snapshot, 0 when not ready.
func (c *Catalog) Generation() uint64 {
	if s := c.current.Load(); s != nil {
		return s.generation
	}
	return 0
}

// Source returns the ingest source the catalog loads from.
func (c *Catalog) Source() ingest.Source {
	return c.loader.Source()
}

func (c *Catalog) serving() (*snapshot, error) {
	s := c.current.Load()
	if s == nil {
		return nil, ErrNotReady
	}
	return s, nil
}

func (c *Catalog) load(ctx context.Context, trigger string) (*models.LoadReport, error) {
	c.reloadMu.Lock()
	defer c.reloadMu.Unlock()

	if c.closed.Load() {
		return nil, ErrClosed
	}

	report := &models.LoadReport{
		ID:        uuid.New().String(),
		Trigger:   trigger,
		StartedAt: c.now(),
	}

	res, err := c.loader.Load(ctx)
	if err != nil {
		c.finish(ctx, report, err)
		return report, fmt.Errorf("load catalog: %w", err)
	}

	st := store.New(res.Products, res.Stock, c.logger)
	idx := index.Build(st, index.Options{PriceBuckets: c.cfg.PriceBuckets})

	c.generation++
	next := &snapshot{
		store:      st,
		index:      idx,
		generation: c.generation,
		loadedAt:   c.now(),
	}
	c.current.Store(next)

	report.Generation = next.generation
	report.ProductRows = res.ProductRows
	report.StockRows = res.StockRows
	report.Products = st.Len()
	report.Searchable = st.Searchable()
	report.SkippedRows = res.Skipped()
	report.Duplicates = st.Duplicates()
	report.OrphanStock = st.OrphanStock()
	report.Success = true
	c.finish(ctx, report, nil)

	c.events.PublishReloaded(report)
	return report, nil
}

// finish stamps, records and logs a load report.
func (c *Catalog) finish(ctx context.Context, report *models.LoadReport, loadErr error) {
	report.FinishedAt = c.now()
	report.Duration = report.FinishedAt.Sub(report.StartedAt)
	if loadErr != nil {
		report.Success = false
		report.Error = loadErr.Error()
	}

	metrics.RecordReload(report)
	c.lastReport.Store(report)
	if err := c.reloads.Append(context.WithoutCancel(ctx), report); err != nil {
		c.logger.Warn().Err(err).Str("report_id", report.ID).Msg("Failed to record load report")
	}

	if loadErr != nil {
		c.logger.Error().
			Err(loadErr).
			Str("trigger", report.Trigger).
			Dur("duration", report.Duration).
			Msg("Catalog load failed")
		return
	}
	c.logger.Info().
		Str("trigger", report.Trigger).
		Uint64("generation", report.Generation).
		Int("products", report.Products).
		Int("searchable", report.Searchable).
		Int("stock_rows", report.StockRows).
		Int("skipped_rows", report.SkippedRows).
		Int("duplicates", report.Duplicates).
		Int("orphan_stock", report.OrphanStock).
		Dur("duration", report.Duration).
		Msg("Catalog loaded")
}

// purgeCaches drops memoized results computed from snapshots older than the
// one now serving. Stale entries are never read, so this only reclaims memory.
func (c *Catalog) purgeCaches(generation uint64) {
	current := c.Generation()
	searchPrefix := cacheNamespace("search", current) + ":"
	recommendPrefix := cacheNamespace("recommend", current) + ":"

	searchEntries := c.searchCache.DeleteFunc(func(key string) bool {
		return !strings.HasPrefix(key, searchPrefix)
	})
	recommendEntries := c.recommendCache.DeleteFunc(func(key string) bool {
		return !strings.HasPrefix(key, recommendPrefix)
	})

	metrics.RecordCacheEvictions(searchCacheName, "reload", searchEntries)
	metrics.RecordCacheEvictions(recommendCacheName, "reload", recommendEntries)
	metrics.SetCacheEntries(searchCacheName, c.searchCache.Len())
	metrics.SetCacheEntries(recommendCacheName, c.recommendCache.Len())

	c.logger.Debug().
		Uint64("generation", generation).
		Uint64("serving_generation", current).
		Int("search_entries", searchEntries).
		Int("recommend_entries", recommendEntries).
		Msg("Purged result caches after reload")
}

// SweepCaches removes expired cache entries and idle query counters. The
// supervisor's sweeper service calls it on a fixed interval.
func (c *Catalog) SweepCaches() int {
	searchRemoved := c.searchCache.Cleanup()
	recommendRemoved := c.recommendCache.Cleanup()
	idle := c.queries.CleanupInactive()

	metrics.RecordCacheEvictions(searchCacheName, "expired", searchRemoved)
	metrics.RecordCacheEvictions(recommendCacheName, "expired", recommendRemoved)
	metrics.SetCacheEntries(searchCacheName, c.searchCache.Len())
	metrics.SetCacheEntries(recommendCacheName, c.recommendCache.Len())

	removed := searchRemoved + recommendRemoved
	if removed > 0 || idle > 0 {
		c.logger.Debug().
			Int("search_expired", searchRemoved).
			Int("recommend_expired", recommendRemoved).
			Int("idle_queries", idle).
			Msg("Swept caches")
	}
	return removed
}
