// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package search

import (
	"strings"

	"github.com/tomtom215/catalogd/internal/index"
)

// MatchTier ranks how strongly a product matched a query. Higher tiers
// sort first. The zero value is used for browse mode (empty query), where
// every product ties and ordering falls through to the tie-breakers.
type MatchTier int

const (
	TierBrowse MatchTier = iota
	// TierToken matches a query token in SKU, description, brand or keywords,
	// or contains the query as a SKU substring.
	TierToken
	// TierName matches a query token in the display name.
	TierName
	// TierSKUPrefix has a SKU starting with the query.
	TierSKUPrefix
	// TierExactSKU has a SKU equal to the query, ignoring case.
	TierExactSKU
)

// String returns the tier name.
func (t MatchTier) String() string {
	switch t {
	case TierBrowse:
		return "browse"
	case TierToken:
		return "token"
	case TierName:
		return "name"
	case TierSKUPrefix:
		return "sku_prefix"
	case TierExactSKU:
		return "exact_sku"
	default:
		return "unknown"
	}
}

// Less reports whether t ranks below other.
func (t MatchTier) Less(other MatchTier) bool {
	return t < other
}

// classify picks the highest tier sku reaches for a non-empty query.
// query must already be trimmed; tokens must come from index.Tokenize.
func classify(idx *index.Index, sku, query string, tokens []string) MatchTier {
	lowerSKU := strings.ToLower(sku)
	lowerQuery := strings.ToLower(query)

	switch {
	case lowerSKU == lowerQuery:
		return TierExactSKU
	case strings.HasPrefix(lowerSKU, lowerQuery):
		return TierSKUPrefix
	}

	for _, tok := range tokens {
		if idx.NameToken(tok).Has(sku) {
			return TierName
		}
	}
	return TierToken
}
