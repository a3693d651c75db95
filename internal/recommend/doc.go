// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

// Package recommend computes fallback product recommendations from the
// loaded catalog without any external service.
//
// # Architecture
//
// Every recommendation kind runs through the same ranking routine,
// Engine.Rank, parameterized by a Policy:
//
//   - Similar: same category or brand as the source, ranked by shared
//     keyword tokens, then by how many of category/brand match
//   - Trending: optionally restricted to categories, ranked by orders
//     last month; products without a signal rank last
//   - Complementary: a different category from the source with at least
//     one shared keyword token, ranked by shared tokens
//
// Ties always fall back to SKU ascending, so results are deterministic.
//
// # Candidate Pools
//
// Deleted products never appear. Inactive products are excluded unless
// Config.IncludeInactive is set. The source product is never recommended
// for itself.
//
// # Scores
//
// Result.Score is the normalized strength of the top candidate, in [0, 1].
// It is 0 when there are no candidates or the source SKU is unknown.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	res := engine.Similar(idx, "ANCHW200", 5)
//	res = engine.Trending(idx, []string{"Seafood"}, 10)
//
// # Thread Safety
//
// Engine holds only configuration and reads the index, so it is safe for
// concurrent use.
package recommend
