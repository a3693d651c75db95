// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package models

// RecommendationKind names a recommendation strategy.
type RecommendationKind string

const (
	RecommendSimilar       RecommendationKind = "similar"
	RecommendTrending      RecommendationKind = "trending"
	RecommendComplementary RecommendationKind = "complementary"
)

// RecommendationResult is a ranked product list with a confidence score in
// [0,1] and a human-readable justification.
type RecommendationResult struct {
	Kind     RecommendationKind `json:"kind"`
	Products []Product          `json:"products"`
	Score    float64            `json:"score"`
	Reason   string             `json:"reason"`
}
