// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package services

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/catalogd/internal/catalog"
	"github.com/tomtom215/catalogd/internal/models"
)

// CatalogReloader rebuilds the catalog from its source files.
type CatalogReloader interface {
	Reload(ctx context.Context, trigger string) (*models.LoadReport, error)
}

// WatcherConfig configures the source watcher.
type WatcherConfig struct {
	// Paths are the catalog source files. Their parent directories are
	// watched so that files replaced by rename are still seen.
	Paths []string

	// MinInterval is the minimum time between two reloads.
	// Default: 30s
	MinInterval time.Duration

	// Debounce is how long the files must stay quiet before a reload.
	// Default: 500ms
	Debounce time.Duration
}

// WatcherService reloads the catalog when a source file changes.
//
// Bursts of filesystem events are coalesced by the debounce timer, and
// reloads are spaced by a token bucket so a file rewritten in a loop cannot
// keep the catalog permanently rebuilding. A failed reload is logged and
// the previous snapshot keeps serving.
type WatcherService struct {
	reloader CatalogReloader
	paths    map[string]struct{}
	dirs     []string
	debounce time.Duration
	limiter  *rate.Limiter
	logger   zerolog.Logger
	name     string
}

// NewWatcherService creates a watcher for cfg.Paths. Empty paths are ignored.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewWatcherService(reloader CatalogReloader, cfg WatcherConfig, logger zerolog.Logger) *WatcherService {
	if cfg.MinInterval <= 0 {
		cfg.MinInterval = 30 * time.Second
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = 500 * time.Millisecond
	}

	paths := make(map[string]struct{}, len(cfg.Paths))
	seenDirs := make(map[string]struct{}, len(cfg.Paths))
	var dirs []string
	for _, p := range cfg.Paths {
		if p == "" {
			continue
		}
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		p = filepath.Clean(p)
		paths[p] = struct{}{}

		dir := filepath.Dir(p)
		if _, ok := seenDirs[dir]; !ok {
			seenDirs[dir] = struct{}{}
			dirs = append(dirs, dir)
		}
	}

	return &WatcherService{
		reloader: reloader,
		paths:    paths,
		dirs:     dirs,
		debounce: cfg.Debounce,
		limiter:  rate.NewLimiter(rate.Every(cfg.MinInterval), 1),
		logger:   logger.With().Str("service", "catalog-watcher").Logger(),
		name:     "catalog-watcher",
	}
}

// Serve implements suture.Service. A watcher error is returned so the
// supervisor restarts the service with a fresh fsnotify watcher.
func (s *WatcherService) Serve(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range s.dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	s.logger.Info().Strs("dirs", s.dirs).Msg("Watching catalog sources")

	timer := time.NewTimer(s.debounce)
	timer.Stop()
	defer timer.Stop()

	// reserved is set while a reload waits for a limiter token. Further
	// events in that window are absorbed by the pending reload.
	reserved := false

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("file watcher closed")
			}
			if !s.relevant(event) || reserved {
				continue
			}
			s.logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("Catalog source changed")
			timer.Reset(s.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("file watcher closed")
			}
			return fmt.Errorf("file watcher: %w", err)

		case <-timer.C:
			if !reserved {
				if delay := s.limiter.Reserve().Delay(); delay > 0 {
					reserved = true
					s.logger.Debug().Dur("delay", delay).Msg("Catalog reload deferred by rate limit")
					timer.Reset(delay)
					continue
				}
			}
			reserved = false
			s.reload(ctx)
		}
	}
}

// relevant reports whether event touches one of the source files with an
// operation that can change its contents.
func (s *WatcherService) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	_, ok := s.paths[filepath.Clean(event.Name)]
	return ok
}

func (s *WatcherService) reload(ctx context.Context) {
	report, err := s.reloader.Reload(ctx, catalog.TriggerWatcher)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Catalog reload after file change failed")
		return
	}
	s.logger.Info().
		Uint64("generation", report.Generation).
		Int("products", report.Products).
		Msg("Catalog reloaded after file change")
}

// String returns the service name for logging.
func (s *WatcherService) String() string {
	return s.name
}
