// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

// Package store holds the loaded product and stock records.
//
// A Store is immutable once built. Reloading the catalog builds a new Store
// rather than mutating an existing one.
package store

import (
	"errors"
	"iter"
	"sort"

	"github.com/rs/zerolog"

	"github.com/tomtom215/catalogd/internal/models"
)

// ErrNotFound is returned by Get for an unknown SKU.
var ErrNotFound = errors.New("product not found")

// Store is an immutable snapshot of product and stock records.
// It is safe for concurrent use.
type Store struct {
	products map[string]*models.Product
	skus     []string // ascending
	stock    map[string][]models.Stock

	searchable  int
	stockRows   int
	duplicates  int
	orphanStock int
}

// New builds a Store. A later product with the same SKU replaces an
// earlier one; every replacement is logged at warn level and counted.
// Stock rows for unknown SKUs are kept in the count of orphans but are
// not reachable through StockFor.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(products []models.Product, stock []models.Stock, logger zerolog.Logger) *Store {
	logger = logger.With().Str("component", "store").Logger()

	s := &Store{
		products: make(map[string]*models.Product, len(products)),
		stock:    make(map[string][]models.Stock),
	}

	for i := range products {
		p := products[i].Clone()
		if _, exists := s.products[p.SKU]; exists {
			s.duplicates++
			logger.Warn().
				Str("sku", p.SKU).
				Int("duplicates", s.duplicates).
				Msg("Duplicate SKU in ingest source, keeping later record")
		}
		s.products[p.SKU] = &p
	}

	s.skus = make([]string, 0, len(s.products))
	for sku, p := range s.products {
		s.skus = append(s.skus, sku)
		if p.Searchable() {
			s.searchable++
		}
	}
	sort.Strings(s.skus)

	for _, row := range stock {
		if _, ok := s.products[row.SKU]; !ok {
			s.orphanStock++
			continue
		}
		s.stock[row.SKU] = append(s.stock[row.SKU], row)
		s.stockRows++
	}

	if s.orphanStock > 0 {
		logger.Info().Int("orphan_stock", s.orphanStock).Msg("Stock rows without a matching product ignored")
	}

	return s
}

// Get returns a copy of the product with exactly this SKU. Matching is
// case-sensitive with no normalization.
func (s *Store) Get(sku string) (models.Product, error) {
	p, ok := s.products[sku]
	if !ok {
		return models.Product{}, ErrNotFound
	}
	return p.Clone(), nil
}

// Lookup returns the stored product without copying. Callers must not
// modify it.
func (s *Store) Lookup(sku string) (*models.Product, bool) {
	p, ok := s.products[sku]
	return p, ok
}

// All yields every product in ascending SKU order, including inactive and
// deleted ones. The sequence can be ranged over any number of times.
// Yielded products must not be modified.
func (s *Store) All() iter.Seq[*models.Product] {
	return func(yield func(*models.Product) bool) {
		for _, sku := range s.skus {
			if !yield(s.products[sku]) {
				return
			}
		}
	}
}

// StockFor returns a copy of the stock rows for sku in ingest order.
func (s *Store) StockFor(sku string) []models.Stock {
	rows := s.stock[sku]
	out := make([]models.Stock, len(rows))
	copy(out, rows)
	return out
}

// TotalAvailable sums available quantity across warehouses.
func (s *Store) TotalAvailable(sku string) int {
	return models.TotalAvailable(s.stock[sku])
}

// Len returns the number of distinct SKUs.
func (s *Store) Len() int { return len(s.skus) }

// Searchable returns the number of active, non-deleted products.
func (s *Store) Searchable() int { return s.searchable }

// StockRows returns the number of stock rows attached to known products.
func (s *Store) StockRows() int { return s.stockRows }

// Duplicates returns how many product rows replaced an earlier row.
func (s *Store) Duplicates() int { return s.duplicates }

// OrphanStock returns how many stock rows referenced unknown SKUs.
func (s *Store) OrphanStock() int { return s.orphanStock }
