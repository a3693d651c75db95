// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package store

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/catalogd/internal/models"
)

func testProducts() []models.Product {
	return []models.Product{
		{SKU: "ANCHW200", DisplayName: "Anchovy 200g", Category: "Seafood", IsActive: true, Price: models.Float64Ptr(9.5)},
		{SKU: "ANCHW150", DisplayName: "Anchovy 150g", Category: "Seafood", IsActive: true},
		{SKU: "OLD1", DisplayName: "Retired", IsActive: true, IsDeleted: true},
		{SKU: "OFF1", DisplayName: "Inactive", IsActive: false},
	}
}

func TestStore_GetBySKU(t *testing.T) {
	s := New(testProducts(), nil, zerolog.Nop())

	for p := range s.All() {
		got, err := s.Get(p.SKU)
		if err != nil {
			t.Fatalf("Get(%q) error = %v", p.SKU, err)
		}
		if got.SKU != p.SKU {
			t.Errorf("Get(%q).SKU = %q", p.SKU, got.SKU)
		}
	}

	if _, err := s.Get("anchw200"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get is case-sensitive; want ErrNotFound, got %v", err)
	}
	if _, err := s.Get("nonexistent-sku"); !errors.Is(err, ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}

func TestStore_GetReturnsCopy(t *testing.T) {
	s := New(testProducts(), nil, zerolog.Nop())

	p, _ := s.Get("ANCHW200")
	*p.Price = 0
	p.DisplayName = "mutated"

	again, _ := s.Get("ANCHW200")
	if again.DisplayName != "Anchovy 200g" || *again.Price != 9.5 {
		t.Errorf("store record mutated through returned copy: %+v", again)
	}
}

func TestStore_InputNotAliased(t *testing.T) {
	in := testProducts()
	s := New(in, nil, zerolog.Nop())

	in[0].DisplayName = "changed after load"
	*in[0].Price = 1

	p, _ := s.Get("ANCHW200")
	if p.DisplayName != "Anchovy 200g" || *p.Price != 9.5 {
		t.Errorf("store aliases caller slice: %+v", p)
	}
}

func TestStore_DuplicateLastWins(t *testing.T) {
	products := append(testProducts(), models.Product{SKU: "ANCHW200", DisplayName: "Anchovy v2", IsActive: true})
	s := New(products, nil, zerolog.Nop())

	p, err := s.Get("ANCHW200")
	if err != nil {
		t.Fatal(err)
	}
	if p.DisplayName != "Anchovy v2" {
		t.Errorf("DisplayName = %q, want later record", p.DisplayName)
	}
	if s.Duplicates() != 1 {
		t.Errorf("Duplicates() = %d, want 1", s.Duplicates())
	}
	if s.Len() != 4 {
		t.Errorf("Len() = %d, want 4", s.Len())
	}
}

func TestStore_AllRestartable(t *testing.T) {
	s := New(testProducts(), nil, zerolog.Nop())

	collect := func() []string {
		var out []string
		for p := range s.All() {
			out = append(out, p.SKU)
		}
		return out
	}

	first := collect()
	second := collect()
	want := []string{"ANCHW150", "ANCHW200", "OFF1", "OLD1"}

	for _, got := range [][]string{first, second} {
		if len(got) != len(want) {
			t.Fatalf("All() yielded %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("All()[%d] = %q, want %q", i, got[i], want[i])
			}
		}
	}

	// Early break stops iteration.
	n := 0
	for range s.All() {
		n++
		break
	}
	if n != 1 {
		t.Errorf("break yielded %d items", n)
	}
}

func TestStore_Stock(t *testing.T) {
	stock := []models.Stock{
		{SKU: "ANCHW200", Warehouse: "WH1", AvailableQuantity: 10},
		{SKU: "ANCHW200", Warehouse: "WH2", AvailableQuantity: 5},
		{SKU: "GHOST", Warehouse: "WH1", AvailableQuantity: 99},
	}
	s := New(testProducts(), stock, zerolog.Nop())

	rows := s.StockFor("ANCHW200")
	if len(rows) != 2 {
		t.Fatalf("StockFor returned %d rows, want 2", len(rows))
	}
	if got := s.TotalAvailable("ANCHW200"); got != 15 {
		t.Errorf("TotalAvailable = %d, want 15", got)
	}
	if got := s.StockFor("GHOST"); len(got) != 0 {
		t.Errorf("orphan stock reachable: %v", got)
	}
	if s.OrphanStock() != 1 {
		t.Errorf("OrphanStock() = %d, want 1", s.OrphanStock())
	}
	if s.StockRows() != 2 {
		t.Errorf("StockRows() = %d, want 2", s.StockRows())
	}

	rows[0].AvailableQuantity = 0
	if s.TotalAvailable("ANCHW200") != 15 {
		t.Error("StockFor must return a copy")
	}
}

func TestStore_Empty(t *testing.T) {
	s := New(nil, nil, zerolog.Nop())
	if s.Len() != 0 || s.Searchable() != 0 {
		t.Errorf("empty store: Len=%d Searchable=%d", s.Len(), s.Searchable())
	}
	for range s.All() {
		t.Fatal("empty store yielded a product")
	}
}

func TestStore_SearchableCount(t *testing.T) {
	s := New(testProducts(), nil, zerolog.Nop())
	if s.Searchable() != 2 {
		t.Errorf("Searchable() = %d, want 2", s.Searchable())
	}
}
