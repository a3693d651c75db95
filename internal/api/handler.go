// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package api

import (
	"context"
	"time"

	"github.com/tomtom215/catalogd/internal/catalog"
	"github.com/tomtom215/catalogd/internal/models"
	"github.com/tomtom215/catalogd/internal/search"
)

// Catalog is the subset of *catalog.Catalog the handlers use.
type Catalog interface {
	Search(ctx context.Context, req search.Request) (*models.SearchResult, catalog.Meta, error)
	GetProduct(ctx context.Context, sku string) (*models.Product, catalog.Meta, error)
	Stock(ctx context.Context, sku string) (*models.StockLevel, catalog.Meta, error)
	Similar(ctx context.Context, sku string, limit int) (*models.RecommendationResult, catalog.Meta, error)
	Trending(ctx context.Context, categories []string, limit int) (*models.RecommendationResult, catalog.Meta, error)
	Complementary(ctx context.Context, sku string, limit int) (*models.RecommendationResult, catalog.Meta, error)
	Suggest(ctx context.Context, prefix string, limit int) ([]models.Suggestion, catalog.Meta, error)
	PopularQueries(limit int) []models.PopularQuery
	Status(ctx context.Context) models.CatalogStatus
	Reloads(ctx context.Context, limit int) ([]models.LoadReport, error)
	Reload(ctx context.Context, trigger string) (*models.LoadReport, error)
	Ready() bool
}

// Handler serves the catalog endpoints.
type Handler struct {
	catalog   Catalog
	startTime time.Time

	// reloadTimeout bounds a manual reload started over HTTP.
	reloadTimeout time.Duration
}

// NewHandler creates a handler over c.
func NewHandler(c Catalog) *Handler {
	return &Handler{
		catalog:       c,
		startTime:     time.Now(),
		reloadTimeout: 2 * time.Minute,
	}
}
