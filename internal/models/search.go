// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package models

// FacetName identifies a filterable product attribute.
type FacetName string

const (
	FacetCategory     FacetName = "category"
	FacetBrand        FacetName = "brand"
	FacetWarehouse    FacetName = "warehouse"
	FacetAccSet       FacetName = "accset"
	FacetAvailability FacetName = "availability"
	FacetPrice        FacetName = "price"
)

// AllFacets lists facets in the order they are reported.
var AllFacets = []FacetName{
	FacetCategory,
	FacetBrand,
	FacetWarehouse,
	FacetAccSet,
	FacetAvailability,
	FacetPrice,
}

// FacetValue is a distinct facet value and the number of results holding it.
type FacetValue struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Facets maps each facet to its value counts. Counts always describe the
// result set they were returned with.
type Facets map[FacetName][]FacetValue

// Filters restricts a search. Separate facets are AND'd together; multiple
// values within one facet are OR'd.
type Filters struct {
	Categories   []string       `json:"categories,omitempty" validate:"omitempty,max=50,dive,max=200"`
	Brands       []string       `json:"brands,omitempty" validate:"omitempty,max=50,dive,max=200"`
	Warehouses   []string       `json:"warehouses,omitempty" validate:"omitempty,max=50,dive,max=200"`
	AccSets      []string       `json:"accsets,omitempty" validate:"omitempty,max=50,dive,max=200"`
	Availability []Availability `json:"availability,omitempty" validate:"omitempty,max=3,dive,oneof=IN_STOCK OUT_OF_STOCK UNKNOWN"`

	// MinPrice and MaxPrice are inclusive bounds. When either is set,
	// unpriced products are excluded.
	MinPrice *float64 `json:"min_price,omitempty" validate:"omitempty,gte=0"`
	MaxPrice *float64 `json:"max_price,omitempty" validate:"omitempty,gte=0"`
}

// HasPriceRange reports whether a price bound is set.
func (f *Filters) HasPriceRange() bool {
	return f.MinPrice != nil || f.MaxPrice != nil
}

// IsEmpty reports whether no filter is set.
func (f *Filters) IsEmpty() bool {
	return len(f.Categories) == 0 && len(f.Brands) == 0 && len(f.Warehouses) == 0 &&
		len(f.AccSets) == 0 && len(f.Availability) == 0 && !f.HasPriceRange()
}

// SearchResult is one page of search matches plus facets computed over
// every match before pagination.
type SearchResult struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
	Facets   Facets    `json:"facets"`
}

// EmptySearchResult returns a zero-match result for the given page.
func EmptySearchResult(page, pageSize int) *SearchResult {
	return &SearchResult{
		Products: []Product{},
		Total:    0,
		Page:     page,
		PageSize: pageSize,
		Facets:   Facets{},
	}
}
