// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package search

import (
	"sort"
	"strings"

	"github.com/tomtom215/catalogd/internal/index"
	"github.com/tomtom215/catalogd/internal/models"
)

// computeFacets counts facet values across the full ranked set. Each
// product contributes at most one value per facet, so a facet's counts
// never sum past the result total. Warehouse uses the product's primary
// warehouse, so its count can be lower than the hits the warehouse filter
// returns for a product stocked in several warehouses.
func computeFacets(idx *index.Index, ranked []scored) models.Facets {
	counts := make(map[models.FacetName]map[string]int, len(models.AllFacets))
	for _, f := range models.AllFacets {
		counts[f] = make(map[string]int)
	}

	bump := func(f models.FacetName, v string) {
		if v = strings.TrimSpace(v); v != "" {
			counts[f][v]++
		}
	}

	for _, r := range ranked {
		p := r.product
		bump(models.FacetCategory, p.Category)
		bump(models.FacetBrand, p.Brand)
		bump(models.FacetAccSet, p.AccSet)
		bump(models.FacetAvailability, string(p.Availability))
		if w, ok := idx.PrimaryWarehouse(p.SKU); ok {
			bump(models.FacetWarehouse, w)
		}
		if b, ok := idx.PriceBucket(p.Price); ok {
			bump(models.FacetPrice, b)
		}
	}

	facets := make(models.Facets, len(counts))
	for f, values := range counts {
		if len(values) == 0 {
			continue
		}
		if f == models.FacetPrice {
			facets[f] = orderedBuckets(values, idx.PriceBucketOrder())
			continue
		}
		facets[f] = byCount(values)
	}
	return facets
}

// byCount orders values by count descending, then value ascending.
func byCount(values map[string]int) []models.FacetValue {
	out := make([]models.FacetValue, 0, len(values))
	for v, n := range values {
		out = append(out, models.FacetValue{Value: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}

// orderedBuckets keeps price buckets in price order.
func orderedBuckets(values map[string]int, order []string) []models.FacetValue {
	out := make([]models.FacetValue, 0, len(values))
	for _, label := range order {
		if n := values[label]; n > 0 {
			out = append(out, models.FacetValue{Value: label, Count: n})
		}
	}
	return out
}
