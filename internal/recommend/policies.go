// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package recommend

import (
	"fmt"
	"strings"

	"github.com/tomtom215/catalogd/internal/index"
	"github.com/tomtom215/catalogd/internal/models"
)

// sameValue compares two attribute values, ignoring case. Blank values
// never match anything.
func sameValue(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	return a != "" && strings.EqualFold(a, b)
}

func sharedKeywords(idx *index.Index, a, b string) int {
	ta, tb := idx.KeywordTokens(a), idx.KeywordTokens(b)
	if len(tb) < len(ta) {
		ta, tb = tb, ta
	}
	n := 0
	for tok := range ta {
		if tb.Has(tok) {
			n++
		}
	}
	return n
}

func label(p *models.Product) string {
	if p.DisplayName != "" {
		return fmt.Sprintf("%q (%s)", p.DisplayName, p.SKU)
	}
	return p.SKU
}

// SimilarPolicy recommends products that are like the source.
type SimilarPolicy struct{}

func (SimilarPolicy) Kind() models.RecommendationKind { return models.RecommendSimilar }

func (SimilarPolicy) Eligible(_ *index.Index, src, c *models.Product) bool {
	return sameValue(src.Category, c.Category) || sameValue(src.Brand, c.Brand)
}

func (SimilarPolicy) Score(idx *index.Index, src, c *models.Product) Score {
	attrs := 0
	if sameValue(src.Category, c.Category) {
		attrs++
	}
	if sameValue(src.Brand, c.Brand) {
		attrs++
	}
	return Score{
		Primary:   float64(sharedKeywords(idx, src.SKU, c.SKU)),
		Secondary: float64(attrs),
	}
}

// Confidence is the fraction of the source's keyword tokens plus its
// category and brand that the top candidate shares.
func (SimilarPolicy) Confidence(idx *index.Index, src *models.Product, ranked []ScoredProduct) float64 {
	top := ranked[0].Score
	possible := float64(len(idx.KeywordTokens(src.SKU)) + 2)
	return clamp01((top.Primary + top.Secondary) / possible)
}

func (SimilarPolicy) Reason(src *models.Product, n int) string {
	return fmt.Sprintf("%d products sharing category or brand with %s, ranked by shared keywords", n, label(src))
}

// TrendingPolicy recommends the most ordered products.
type TrendingPolicy struct {
	// Categories restricts the pool when non-empty. Matching ignores case.
	Categories []string
}

func (TrendingPolicy) Kind() models.RecommendationKind { return models.RecommendTrending }

func (t TrendingPolicy) Eligible(_ *index.Index, _ *models.Product, c *models.Product) bool {
	if len(t.Categories) == 0 {
		return true
	}
	for _, cat := range t.Categories {
		if sameValue(cat, c.Category) {
			return true
		}
	}
	return false
}

// Score uses -1 for products without an order signal so they rank after
// products with zero orders.
func (TrendingPolicy) Score(_ *index.Index, _ *models.Product, c *models.Product) Score {
	return Score{Primary: float64(c.Orders())}
}

// Confidence is the top product's share of all orders in the result.
func (TrendingPolicy) Confidence(_ *index.Index, _ *models.Product, ranked []ScoredProduct) float64 {
	total := 0.0
	for _, r := range ranked {
		if r.Score.Primary > 0 {
			total += r.Score.Primary
		}
	}
	if total == 0 {
		return 0
	}
	return clamp01(ranked[0].Score.Primary / total)
}

func (t TrendingPolicy) Reason(_ *models.Product, n int) string {
	if len(t.Categories) == 0 {
		return fmt.Sprintf("%d most ordered products last month", n)
	}
	return fmt.Sprintf("%d most ordered products last month in %s", n, strings.Join(t.Categories, ", "))
}

// ComplementaryPolicy recommends products from other categories that
// share keywords with the source.
type ComplementaryPolicy struct{}

func (ComplementaryPolicy) Kind() models.RecommendationKind { return models.RecommendComplementary }

func (ComplementaryPolicy) Eligible(idx *index.Index, src, c *models.Product) bool {
	if strings.EqualFold(strings.TrimSpace(src.Category), strings.TrimSpace(c.Category)) {
		return false
	}
	return sharedKeywords(idx, src.SKU, c.SKU) > 0
}

func (ComplementaryPolicy) Score(idx *index.Index, src, c *models.Product) Score {
	return Score{Primary: float64(sharedKeywords(idx, src.SKU, c.SKU))}
}

// Confidence is the fraction of the source's keyword tokens the top
// candidate shares.
func (ComplementaryPolicy) Confidence(idx *index.Index, src *models.Product, ranked []ScoredProduct) float64 {
	n := len(idx.KeywordTokens(src.SKU))
	if n == 0 {
		return 0
	}
	return clamp01(ranked[0].Score.Primary / float64(n))
}

func (ComplementaryPolicy) Reason(src *models.Product, n int) string {
	return fmt.Sprintf("%d products from other categories that go well with %s", n, label(src))
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
