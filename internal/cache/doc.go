// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

/*
Package cache provides the in-memory data structures used to memoize and
accelerate catalog queries.

# Components

  - Cache[V]: generic key/value store with per-entry TTL
  - Trie[T]: case-insensitive prefix tree for SKU and name autocomplete
  - SlidingWindowStore: per-key event counters over a trailing window,
    used to track popular search queries

# Expiry Semantics

Expiry is checked on every read. An entry whose ExpiresAt has passed is
reported absent by Get and Has even if it is still physically stored.
Cleanup walks a min-heap of expiry times and removes expired entries in
batches, releasing the write lock between batches:

	c := cache.New[*models.SearchResult](cache.Options{
	    DefaultTTL:     time.Minute,
	    SweepBatchSize: 256,
	})

	c.Set(key, result, 30*time.Second) // per-entry TTL
	c.Set(key, result, 0)              // default TTL

	if res, ok := c.Get(key); ok {
	    // fresh hit
	}

	removed := c.Cleanup() // usually driven by the supervisor's sweeper service

Overwriting a key resets its TTL window.

# Keys

GenerateKey hashes a JSON encoding of the parameters, so logically equal
parameter structs produce identical keys:

	key := cache.GenerateKey("search", params)

# Thread Safety

All types in this package are safe for concurrent use.
*/
package cache
