// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package recommend

import (
	"github.com/tomtom215/catalogd/internal/index"
	"github.com/tomtom215/catalogd/internal/models"
)

// Score orders candidates. Primary sorts first, then Secondary, both
// descending; remaining ties go to SKU ascending.
type Score struct {
	Primary   float64
	Secondary float64
}

// Better reports whether s ranks ahead of other.
func (s Score) Better(other Score) bool {
	if s.Primary != other.Primary {
		return s.Primary > other.Primary
	}
	return s.Secondary > other.Secondary
}

// ScoredProduct is a ranked candidate.
type ScoredProduct struct {
	Product *models.Product
	Score   Score
}

// Policy supplies everything that differs between recommendation kinds.
// The source product is nil for kinds that do not need one.
type Policy interface {
	// Kind names the recommendation.
	Kind() models.RecommendationKind

	// Eligible filters the candidate pool. Engine has already removed
	// deleted products, inactive products (unless configured), and the
	// source itself.
	Eligible(idx *index.Index, src, candidate *models.Product) bool

	// Score ranks an eligible candidate.
	Score(idx *index.Index, src, candidate *models.Product) Score

	// Confidence maps the ranked results to a value in [0, 1]. ranked is
	// never empty.
	Confidence(idx *index.Index, src *models.Product, ranked []ScoredProduct) float64

	// Reason explains the result in one sentence.
	Reason(src *models.Product, n int) string
}
