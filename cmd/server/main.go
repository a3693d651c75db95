// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tomtom215/catalogd/internal/api"
	"github.com/tomtom215/catalogd/internal/catalog"
	"github.com/tomtom215/catalogd/internal/config"
	"github.com/tomtom215/catalogd/internal/logging"
	"github.com/tomtom215/catalogd/internal/reloadlog"
	"github.com/tomtom215/catalogd/internal/supervisor"
	"github.com/tomtom215/catalogd/internal/supervisor/services"
)

// initialLoadTimeout bounds the first catalog load.
const initialLoadTimeout = 5 * time.Minute

func main() {
	// A missing .env file is normal outside development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logging.Warn().Err(err).Msg("Failed to read .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("products_path", cfg.Catalog.ProductsPath).
		Str("stock_path", cfg.Catalog.StockPath).
		Str("format", cfg.Catalog.Format).
		Bool("watch", cfg.Catalog.Watch).
		Msg("Configuration loaded")

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Catalogd stopped with error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

func run(cfg *config.Config) error {
	reloads, err := reloadlog.Open(reloadlog.Config{
		Path:       cfg.ReloadLog.Path,
		MaxEntries: cfg.ReloadLog.MaxEntries,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := reloads.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing reload log")
		}
	}()

	cat, err := catalog.New(cfg.CatalogConfig(), reloads, logging.Logger())
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := cat.Shutdown(shutdownCtx); err != nil {
			logging.Error().Err(err).Msg("Error shutting down catalog")
		}
	}()

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), initialLoadTimeout)
	if err := cat.Initialize(loadCtx); err != nil {
		logging.Error().Err(err).Msg("Initial catalog load failed, serving as not ready until a reload succeeds")
	}
	cancelLoad()

	router := api.NewRouter(api.NewHandler(cat), api.RouterConfig{
		CORSOrigins:       cfg.Security.CORSOrigins,
		RateLimitRequests: cfg.Security.RateLimitReqs,
		RateLimitWindow:   cfg.Security.RateLimitWindow,
		RateLimitDisabled: cfg.Security.RateLimitDisabled,
		RequestTimeout:    cfg.Server.Timeout,
	})

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		// Manual reloads may outlast the read timeout.
		WriteTimeout: cfg.Server.Timeout + 2*time.Minute,
		IdleTimeout:  2 * time.Minute,
	}

	tree, err := supervisor.NewSupervisorTree(
		logging.NewSlogLogger(logging.WithComponent("supervisor")),
		supervisor.TreeConfig{ShutdownTimeout: cfg.Server.ShutdownTimeout},
	)
	if err != nil {
		return err
	}

	logger := logging.Logger()
	tree.AddCatalogService(services.NewSweeperService(cat, cfg.Cache.SweepInterval, logger))
	if cfg.Catalog.Watch {
		tree.AddCatalogService(services.NewWatcherService(cat, services.WatcherConfig{
			Paths:       []string{cfg.Catalog.ProductsPath, cfg.Catalog.StockPath},
			MinInterval: cfg.Catalog.ReloadMinInterval,
		}, logger))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, cfg.Server.ShutdownTimeout, logger))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	var treeErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for services to stop")
		treeErr = <-errCh
	case treeErr = <-errCh:
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	if treeErr != nil && !errors.Is(treeErr, context.Canceled) {
		return treeErr
	}
	return nil
}
