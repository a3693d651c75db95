// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package index

import (
	"sort"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/catalogd/internal/models"
	"github.com/tomtom215/catalogd/internal/store"
)

func testStore() *store.Store {
	products := []models.Product{
		{
			SKU: "ANCHW200", DisplayName: "Anchovy Fillets 200g", Category: "Seafood", Brand: "Ortiz",
			Availability: models.AvailabilityInStock, Price: models.Float64Ptr(9.5),
			Keywords: []string{"anchovy", "Cured Fish"}, IsActive: true, OrderLastMonth: models.IntPtr(500),
		},
		{
			SKU: "ANCHW150", DisplayName: "Anchovy Fillets 150g", Category: "Seafood", Brand: "Ortiz",
			Availability: models.AvailabilityOutOfStock, Price: models.Float64Ptr(25),
			Keywords: []string{"anchovy"}, IsActive: true,
		},
		{
			SKU: "OIL1", DisplayName: "Olive Oil", Description: "Cold pressed", Category: "Pantry",
			Price: models.Float64Ptr(120), AccSet: "ACC1", Keywords: []string{"oil"}, IsActive: true,
		},
		{SKU: "BARE", IsActive: true},
		{SKU: "GONE", DisplayName: "Anchovy Paste", Category: "Seafood", IsActive: true, IsDeleted: true, Keywords: []string{"anchovy"}},
	}
	stock := []models.Stock{
		{SKU: "ANCHW200", Warehouse: "WH1", AvailableQuantity: 3},
		{SKU: "ANCHW200", Warehouse: "WH2", AvailableQuantity: 8},
		{SKU: "OIL1", Warehouse: "WH1", AvailableQuantity: 1},
		{SKU: "GONE", Warehouse: "WH9", AvailableQuantity: 1},
	}
	return store.New(products, stock, zerolog.Nop())
}

func keys(s SKUSet) []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"Anchovy Fillets, 200g!", []string{"anchovy", "fillets", "200g"}},
		{"ANCHW-200", []string{"anchw", "200"}},
		{"oil oil OIL", []string{"oil"}},
		{"  --  ", []string{}},
		{"Crème brûlée", []string{"crème", "brûlée"}},
	}
	for _, tt := range tests {
		got := Tokenize(tt.in)
		if !equalStrings(got, tt.want) {
			t.Errorf("Tokenize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuild_TokenIndex(t *testing.T) {
	t.Parallel()
	idx := Build(testStore(), Options{})

	tests := []struct {
		token string
		want  []string
	}{
		{"anchovy", []string{"ANCHW150", "ANCHW200"}},
		{"ortiz", []string{"ANCHW150", "ANCHW200"}},
		{"pressed", []string{"OIL1"}},
		{"cured", []string{"ANCHW200"}},
		{"anchw200", []string{"ANCHW200"}},
		{"paste", nil},
	}
	for _, tt := range tests {
		if got := keys(idx.Token(tt.token)); !equalStrings(got, tt.want) && !(len(got) == 0 && tt.want == nil) {
			t.Errorf("Token(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}

	if got := keys(idx.NameToken("fillets")); !equalStrings(got, []string{"ANCHW150", "ANCHW200"}) {
		t.Errorf("NameToken(fillets) = %v", got)
	}
	if idx.NameToken("pressed") != nil {
		t.Error("description tokens must not appear in the name index")
	}
}

func TestBuild_Facets(t *testing.T) {
	t.Parallel()
	idx := Build(testStore(), Options{})

	if got := keys(idx.FacetSKUs(models.FacetCategory, "seafood")); !equalStrings(got, []string{"ANCHW150", "ANCHW200"}) {
		t.Errorf("category seafood = %v", got)
	}
	if got := keys(idx.FacetSKUs(models.FacetWarehouse, "WH1")); !equalStrings(got, []string{"ANCHW200", "OIL1"}) {
		t.Errorf("warehouse WH1 = %v", got)
	}
	if idx.FacetSKUs(models.FacetWarehouse, "WH9") != nil {
		t.Error("deleted product leaked into warehouse facet")
	}
	if got := keys(idx.FacetSKUs(models.FacetAccSet, "acc1")); !equalStrings(got, []string{"OIL1"}) {
		t.Errorf("accset = %v", got)
	}
	if got := keys(idx.FacetSKUs(models.FacetAvailability, "IN_STOCK")); !equalStrings(got, []string{"ANCHW200"}) {
		t.Errorf("availability = %v", got)
	}
	// BARE has no category, brand or accset and appears under none of them.
	if idx.FacetValueCount(models.FacetCategory) != 2 {
		t.Errorf("category values = %d, want 2", idx.FacetValueCount(models.FacetCategory))
	}

	w, ok := idx.PrimaryWarehouse("ANCHW200")
	if !ok || w != "WH2" {
		t.Errorf("PrimaryWarehouse = %q, %v; want WH2", w, ok)
	}
}

func TestBuild_PriceRange(t *testing.T) {
	t.Parallel()
	idx := Build(testStore(), Options{})

	tests := []struct {
		name     string
		min, max *float64
		want     []string
	}{
		{"open", nil, nil, []string{"ANCHW150", "ANCHW200", "OIL1"}},
		{"inclusive bounds", models.Float64Ptr(9.5), models.Float64Ptr(25), []string{"ANCHW150", "ANCHW200"}},
		{"min only", models.Float64Ptr(26), nil, []string{"OIL1"}},
		{"max only", nil, models.Float64Ptr(9.49), nil},
		{"inverted", models.Float64Ptr(50), models.Float64Ptr(10), nil},
	}
	for _, tt := range tests {
		got := keys(idx.PriceRange(tt.min, tt.max))
		if !equalStrings(got, tt.want) && !(len(got) == 0 && tt.want == nil) {
			t.Errorf("%s: PriceRange = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestBuild_PriceBuckets(t *testing.T) {
	t.Parallel()
	idx := Build(testStore(), Options{})

	want := []string{"0-10", "10-25", "25-50", "50-100", "100+"}
	if !equalStrings(idx.PriceBucketOrder(), want) {
		t.Errorf("PriceBucketOrder = %v, want %v", idx.PriceBucketOrder(), want)
	}

	for price, label := range map[float64]string{0: "0-10", 9.99: "0-10", 10: "10-25", 25: "25-50", 100: "100+", 1e6: "100+"} {
		got, ok := idx.PriceBucket(&price)
		if !ok || got != label {
			t.Errorf("PriceBucket(%v) = %q, want %q", price, got, label)
		}
	}
	if _, ok := idx.PriceBucket(nil); ok {
		t.Error("unpriced product must not have a bucket")
	}

	custom := Build(testStore(), Options{PriceBuckets: []float64{5.5}})
	if !equalStrings(custom.PriceBucketOrder(), []string{"0-5.5", "5.5+"}) {
		t.Errorf("custom buckets = %v", custom.PriceBucketOrder())
	}
}

func TestBuild_SearchableAndKeywords(t *testing.T) {
	t.Parallel()
	idx := Build(testStore(), Options{})

	if !equalStrings(idx.Searchable(), []string{"ANCHW150", "ANCHW200", "BARE", "OIL1"}) {
		t.Errorf("Searchable = %v", idx.Searchable())
	}
	if idx.IsSearchable("GONE") {
		t.Error("deleted product reported searchable")
	}
	if got := keys(idx.KeywordTokens("GONE")); !equalStrings(got, []string{"anchovy"}) {
		t.Errorf("KeywordTokens(GONE) = %v; deleted products keep keyword tokens", got)
	}
	if got := keys(idx.KeywordTokens("ANCHW200")); !equalStrings(got, []string{"anchovy", "cured", "fish"}) {
		t.Errorf("KeywordTokens(ANCHW200) = %v", got)
	}
	if got := keys(idx.SKUsContaining("anchw")); !equalStrings(got, []string{"ANCHW150", "ANCHW200"}) {
		t.Errorf("SKUsContaining = %v", got)
	}
	if got := idx.SKUsContaining(""); len(got) != 0 {
		t.Errorf("SKUsContaining(\"\") = %v", keys(got))
	}
}

func TestBuild_Suggest(t *testing.T) {
	t.Parallel()
	idx := Build(testStore(), Options{})

	got := idx.Suggest("anch", 10)
	if len(got) != 4 {
		t.Fatalf("Suggest(anch) returned %d entries: %+v", len(got), got)
	}
	// ANCHW200 has 500 orders so both its SKU and name rank first.
	if got[0].SKU != "ANCHW200" || got[1].SKU != "ANCHW200" {
		t.Errorf("top suggestions = %+v", got[:2])
	}
	if got[0].Count != 500 {
		t.Errorf("Count = %d, want 500", got[0].Count)
	}
	for _, s := range got {
		if s.SKU == "GONE" {
			t.Error("deleted product suggested")
		}
	}
}

func TestBuild_EmptyStore(t *testing.T) {
	t.Parallel()
	idx := Build(store.New(nil, nil, zerolog.Nop()), Options{})

	if len(idx.Searchable()) != 0 || idx.TokenCount() != 0 {
		t.Error("empty store produced non-empty index")
	}
	if idx.Token("anything") != nil {
		t.Error("Token on empty index should be nil")
	}
	if len(idx.PriceRange(nil, nil)) != 0 {
		t.Error("PriceRange on empty index should be empty")
	}
	if len(idx.Suggest("a", 5)) != 0 {
		t.Error("Suggest on empty index should be empty")
	}
}

func TestBuild_Idempotent(t *testing.T) {
	t.Parallel()
	st := testStore()

	a := Build(st, Options{})
	b := Build(st, Options{})

	if a.TokenCount() != b.TokenCount() {
		t.Errorf("TokenCount differs: %d vs %d", a.TokenCount(), b.TokenCount())
	}
	if !equalStrings(a.Searchable(), b.Searchable()) {
		t.Error("Searchable differs between builds")
	}
	if st.Len() != 5 {
		t.Errorf("Build modified the store: Len=%d", st.Len())
	}
}

func TestSetOps(t *testing.T) {
	t.Parallel()

	a := SKUSet{"A": {}, "B": {}}
	b := SKUSet{"B": {}, "C": {}}

	if got := keys(Union(a, b)); !equalStrings(got, []string{"A", "B", "C"}) {
		t.Errorf("Union = %v", got)
	}
	if got := keys(Intersect(a, b)); !equalStrings(got, []string{"B"}) {
		t.Errorf("Intersect = %v", got)
	}
	if got := Intersect(a, nil); len(got) != 0 {
		t.Errorf("Intersect with nil = %v", keys(got))
	}
}
