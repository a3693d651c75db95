// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package search

import (
	"strings"

	"github.com/tomtom215/catalogd/internal/index"
	"github.com/tomtom215/catalogd/internal/models"
)

// applyFilters narrows candidates by every populated filter.
func applyFilters(idx *index.Index, candidates index.SKUSet, f *models.Filters) index.SKUSet {
	facetFilters := []struct {
		facet  models.FacetName
		values []string
	}{
		{models.FacetCategory, f.Categories},
		{models.FacetBrand, f.Brands},
		{models.FacetWarehouse, f.Warehouses},
		{models.FacetAccSet, f.AccSets},
		{models.FacetAvailability, availabilityValues(f.Availability)},
	}

	for _, ff := range facetFilters {
		values := nonBlank(ff.values)
		if len(values) == 0 {
			continue
		}
		sets := make([]index.SKUSet, 0, len(values))
		for _, v := range values {
			sets = append(sets, idx.FacetSKUs(ff.facet, v))
		}
		candidates = index.Intersect(candidates, index.Union(sets...))
		if len(candidates) == 0 {
			return candidates
		}
	}

	if f.HasPriceRange() {
		candidates = index.Intersect(candidates, idx.PriceRange(f.MinPrice, f.MaxPrice))
	}
	return candidates
}

func availabilityValues(in []models.Availability) []string {
	out := make([]string, 0, len(in))
	for _, a := range in {
		out = append(out, string(a))
	}
	return out
}

func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
