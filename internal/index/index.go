// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

// Package index derives lookup structures from a store.Store.
//
// An Index is built once per store snapshot and never modified afterwards,
// so concurrent readers need no locking. Searchable products (active and
// not deleted) feed the token, facet, price and suggestion structures.
// Keyword token sets are kept for every product so recommendation policies
// can decide for themselves whether inactive products are eligible.
package index

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/catalogd/internal/cache"
	"github.com/tomtom215/catalogd/internal/models"
	"github.com/tomtom215/catalogd/internal/store"
)

// DefaultPriceBuckets are the upper bounds of the price facet buckets.
var DefaultPriceBuckets = []float64{10, 25, 50, 100}

// Options configures Build.
type Options struct {
	// PriceBuckets are ascending, positive bucket boundaries. Empty selects
	// DefaultPriceBuckets.
	PriceBuckets []float64
}

type pricedSKU struct {
	price float64
	sku   string
}

type suggestion struct {
	sku string
}

// Index is the set of derived lookup structures for one store snapshot.
type Index struct {
	store *store.Store

	tokens     map[string]SKUSet
	nameTokens map[string]SKUSet
	facets     map[models.FacetName]map[string]SKUSet

	searchable    []string // ascending
	searchableSet SKUSet
	skuLower      map[string]string

	// primaryWarehouse attributes each product to one warehouse for facet
	// counting: the one holding the most stock, ties broken by name.
	primaryWarehouse map[string]string
	keywordTokens    map[string]SKUSet

	priced       []pricedSKU // ascending by price, then SKU
	priceBuckets []float64
	bucketLabels []string

	suggest *cache.Trie[suggestion]

	builtAt time.Time
}

// Build derives an Index from st. It only reads from st and never fails;
// an empty store yields an empty, queryable Index.
func Build(st *store.Store, opts Options) *Index {
	buckets := opts.PriceBuckets
	if len(buckets) == 0 {
		buckets = DefaultPriceBuckets
	}

	idx := &Index{
		store:            st,
		tokens:           make(map[string]SKUSet),
		nameTokens:       make(map[string]SKUSet),
		facets:           make(map[models.FacetName]map[string]SKUSet),
		searchableSet:    make(SKUSet),
		skuLower:         make(map[string]string),
		primaryWarehouse: make(map[string]string),
		keywordTokens:    make(map[string]SKUSet),
		priceBuckets:     append([]float64(nil), buckets...),
		bucketLabels:     bucketLabels(buckets),
		suggest:          cache.NewTrie[suggestion](),
		builtAt:          time.Now(),
	}
	for _, f := range models.AllFacets {
		idx.facets[f] = make(map[string]SKUSet)
	}

	for p := range st.All() {
		kw := make(SKUSet)
		for _, k := range p.Keywords {
			for _, tok := range Tokenize(k) {
				kw.add(tok)
			}
		}
		idx.keywordTokens[p.SKU] = kw

		if !p.Searchable() {
			continue
		}
		idx.addSearchable(p)
	}

	sort.Slice(idx.priced, func(i, j int) bool {
		if idx.priced[i].price != idx.priced[j].price {
			return idx.priced[i].price < idx.priced[j].price
		}
		return idx.priced[i].sku < idx.priced[j].sku
	})

	return idx
}

func (idx *Index) addSearchable(p *models.Product) {
	sku := p.SKU
	idx.searchable = append(idx.searchable, sku)
	idx.searchableSet.add(sku)
	idx.skuLower[sku] = strings.ToLower(sku)

	for _, field := range []string{p.SKU, p.DisplayName, p.Description, p.Brand} {
		for _, tok := range Tokenize(field) {
			idx.addToken(idx.tokens, tok, sku)
		}
	}
	for _, k := range p.Keywords {
		for _, tok := range Tokenize(k) {
			idx.addToken(idx.tokens, tok, sku)
		}
	}
	for _, tok := range Tokenize(p.DisplayName) {
		idx.addToken(idx.nameTokens, tok, sku)
	}

	idx.addFacet(models.FacetCategory, p.Category, sku)
	idx.addFacet(models.FacetBrand, p.Brand, sku)
	idx.addFacet(models.FacetAccSet, p.AccSet, sku)
	idx.addFacet(models.FacetAvailability, string(p.Availability), sku)

	best, bestQty := "", -1
	for _, row := range idx.store.StockFor(sku) {
		if row.Warehouse == "" {
			continue
		}
		idx.addFacet(models.FacetWarehouse, row.Warehouse, sku)
		if row.AvailableQuantity > bestQty || (row.AvailableQuantity == bestQty && row.Warehouse < best) {
			best, bestQty = row.Warehouse, row.AvailableQuantity
		}
	}
	if best != "" {
		idx.primaryWarehouse[sku] = best
	}

	if p.Price != nil {
		idx.priced = append(idx.priced, pricedSKU{price: *p.Price, sku: sku})
		idx.addFacet(models.FacetPrice, idx.bucketFor(*p.Price), sku)
	}

	idx.suggest.Insert(p.SKU, suggestion{sku: sku}, p.Orders())
	if p.DisplayName != "" {
		idx.suggest.Insert(p.DisplayName, suggestion{sku: sku}, p.Orders())
	}
}

func (idx *Index) addToken(m map[string]SKUSet, tok, sku string) {
	set, ok := m[tok]
	if !ok {
		set = make(SKUSet)
		m[tok] = set
	}
	set.add(sku)
}

func (idx *Index) addFacet(f models.FacetName, value, sku string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	idx.addToken(idx.facets[f], strings.ToLower(value), sku)
}

// Store returns the snapshot the index was built from.
func (idx *Index) Store() *store.Store { return idx.store }

// BuiltAt returns when Build finished.
func (idx *Index) BuiltAt() time.Time { return idx.builtAt }

// Searchable returns searchable SKUs in ascending order. The slice is shared.
func (idx *Index) Searchable() []string { return idx.searchable }

// IsSearchable reports whether sku is active and not deleted.
func (idx *Index) IsSearchable(sku string) bool { return idx.searchableSet.Has(sku) }

// Token returns the SKUs whose indexed text contains tok.
func (idx *Index) Token(tok string) SKUSet { return idx.tokens[tok] }

// NameToken returns the SKUs whose display name contains tok.
func (idx *Index) NameToken(tok string) SKUSet { return idx.nameTokens[tok] }

// TokenCount returns the number of distinct indexed tokens.
func (idx *Index) TokenCount() int { return len(idx.tokens) }

// SKUsContaining returns searchable SKUs containing sub, ignoring case.
func (idx *Index) SKUsContaining(sub string) SKUSet {
	out := make(SKUSet)
	sub = strings.ToLower(sub)
	if sub == "" {
		return out
	}
	for _, sku := range idx.searchable {
		if strings.Contains(idx.skuLower[sku], sub) {
			out.add(sku)
		}
	}
	return out
}

// FacetSKUs returns the SKUs holding value for facet f, ignoring case.
func (idx *Index) FacetSKUs(f models.FacetName, value string) SKUSet {
	return idx.facets[f][strings.ToLower(strings.TrimSpace(value))]
}

// FacetValueCount returns the number of distinct values for facet f.
func (idx *Index) FacetValueCount(f models.FacetName) int {
	return len(idx.facets[f])
}

// PrimaryWarehouse returns the warehouse a product is counted under in
// the warehouse facet.
func (idx *Index) PrimaryWarehouse(sku string) (string, bool) {
	w, ok := idx.primaryWarehouse[sku]
	return w, ok
}

// KeywordTokens returns the token set derived from a product's keywords.
// Every stored product has an entry, searchable or not.
func (idx *Index) KeywordTokens(sku string) SKUSet {
	return idx.keywordTokens[sku]
}

// PriceRange returns searchable priced SKUs with minPrice <= price <= maxPrice.
// A nil bound is open. Unpriced products are never included.
func (idx *Index) PriceRange(minPrice, maxPrice *float64) SKUSet {
	lo := 0
	if minPrice != nil {
		lo = sort.Search(len(idx.priced), func(i int) bool { return idx.priced[i].price >= *minPrice })
	}
	hi := len(idx.priced)
	if maxPrice != nil {
		hi = sort.Search(len(idx.priced), func(i int) bool { return idx.priced[i].price > *maxPrice })
	}

	out := make(SKUSet)
	for i := lo; i < hi; i++ {
		out.add(idx.priced[i].sku)
	}
	return out
}

// PriceBucket returns the facet label for a price.
func (idx *Index) PriceBucket(price *float64) (string, bool) {
	if price == nil {
		return "", false
	}
	return idx.bucketFor(*price), true
}

// PriceBucketOrder returns bucket labels from cheapest to most expensive.
func (idx *Index) PriceBucketOrder() []string {
	return idx.bucketLabels
}

func (idx *Index) bucketFor(price float64) string {
	for i, upper := range idx.priceBuckets {
		if price < upper {
			return idx.bucketLabels[i]
		}
	}
	return idx.bucketLabels[len(idx.bucketLabels)-1]
}

func bucketLabels(bounds []float64) []string {
	labels := make([]string, 0, len(bounds)+1)
	lower := 0.0
	for _, upper := range bounds {
		labels = append(labels, fmt.Sprintf("%s-%s", formatBound(lower), formatBound(upper)))
		lower = upper
	}
	return append(labels, formatBound(lower)+"+")
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Suggest returns up to limit autocomplete entries for prefix, matched
// against SKUs and display names of searchable products.
func (idx *Index) Suggest(prefix string, limit int) []models.Suggestion {
	matches := idx.suggest.Autocomplete(prefix, limit)
	out := make([]models.Suggestion, 0, len(matches))
	for _, m := range matches {
		out = append(out, models.Suggestion{
			Text:  m.Value,
			SKU:   m.Data.sku,
			Count: max(m.Weight, 0),
		})
	}
	return out
}
