// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package cache

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

const (
	// DefaultTTL is used when neither the cache nor the caller supplies a TTL.
	DefaultTTL = 5 * time.Minute

	// DefaultSweepBatchSize bounds how many expired keys one Cleanup lock hold removes.
	DefaultSweepBatchSize = 256
)

// Entry is a cached value with its creation and expiry times.
// ExpiresAt is always strictly after CreatedAt.
type Entry[V any] struct {
	Key       string
	Value     V
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the entry is logically absent at now.
func (e *Entry[V]) Expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// Stats tracks cache performance counters.
type Stats struct {
	Hits        int64
	Misses      int64
	Evictions   int64
	TotalKeys   int64
	LastCleanup time.Time
}

// Options configures a Cache.
type Options struct {
	// DefaultTTL applies to Set calls with a non-positive ttl.
	DefaultTTL time.Duration

	// SweepBatchSize is the maximum number of keys removed per lock hold
	// during Cleanup.
	SweepBatchSize int

	// Clock overrides time.Now, mainly for tests.
	Clock func() time.Time
}

// Cache is a thread-safe key/value store with per-entry TTL.
//
// Expiry is decided on read: an entry past its ExpiresAt is never returned by
// Get or Has, whether or not Cleanup has run. Cleanup only reclaims memory.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]*Entry[V]
	expiry  expiryHeap

	defaultTTL time.Duration
	batchSize  int
	now        func() time.Time

	statsMu sync.Mutex
	stats   Stats
}

// New creates a cache. Zero-valued options fall back to package defaults.
//
// No background goroutine is started; call Cleanup periodically (the
// supervisor runs a sweeper service for this).
//
// Example:
//
//	c := cache.New[*models.SearchResult](cache.Options{DefaultTTL: time.Minute})
//	c.Set(key, result, 0)
//	if res, ok := c.Get(key); ok {
//	    return res
//	}
func New[V any](opts Options) *Cache[V] {
	if opts.DefaultTTL <= 0 {
		opts.DefaultTTL = DefaultTTL
	}
	if opts.SweepBatchSize <= 0 {
		opts.SweepBatchSize = DefaultSweepBatchSize
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	return &Cache[V]{
		entries:    make(map[string]*Entry[V]),
		defaultTTL: opts.DefaultTTL,
		batchSize:  opts.SweepBatchSize,
		now:        opts.Clock,
		stats: Stats{
			LastCleanup: opts.Clock(),
		},
	}
}

// Get returns the value for key if present and not expired.
// An expired entry is removed and counted as a miss.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	now := c.now()

	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		c.recordMiss()
		return zero, false
	}

	if entry.Expired(now) {
		c.mu.Lock()
		// Re-check: a concurrent Set may have replaced the entry.
		if current, ok := c.entries[key]; ok && current == entry {
			delete(c.entries, key)
			c.mu.Unlock()
			c.recordEviction(1)
		} else {
			c.mu.Unlock()
		}
		c.recordMiss()
		return zero, false
	}

	c.recordHit()
	return entry.Value, true
}

// Has reports whether key holds a live entry. It does not affect hit/miss counters.
func (c *Cache[V]) Has(key string) bool {
	now := c.now()

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[key]
	return exists && !entry.Expired(now)
}

// Set stores value under key. A non-positive ttl selects the default TTL.
// Overwriting an existing key resets its TTL window.
func (c *Cache[V]) Set(key string, value V, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	now := c.now()
	entry := &Entry[V]{
		Key:       key,
		Value:     value,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	c.mu.Lock()
	c.entries[key] = entry
	c.expiry.push(key, entry.ExpiresAt)
	total := int64(len(c.entries))
	c.mu.Unlock()

	c.statsMu.Lock()
	c.stats.TotalKeys = total
	c.statsMu.Unlock()
}

// Delete removes key. Missing keys are ignored.
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	_, existed := c.entries[key]
	delete(c.entries, key)
	total := int64(len(c.entries))
	c.mu.Unlock()

	if existed {
		c.recordEviction(1)
	}
	c.statsMu.Lock()
	c.stats.TotalKeys = total
	c.statsMu.Unlock()
}

// DeleteFunc removes every entry whose key satisfies del and returns the
// number removed. del runs with the write lock held and must not call back
// into the cache.
func (c *Cache[V]) DeleteFunc(del func(key string) bool) int {
	c.mu.Lock()
	removed := 0
	for key := range c.entries {
		if del(key) {
			delete(c.entries, key)
			removed++
		}
	}
	total := int64(len(c.entries))
	c.mu.Unlock()

	if removed > 0 {
		c.recordEviction(int64(removed))
	}
	c.statsMu.Lock()
	c.stats.TotalKeys = total
	c.statsMu.Unlock()
	return removed
}

// Clear removes every entry.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	evicted := int64(len(c.entries))
	c.entries = make(map[string]*Entry[V])
	c.expiry = expiryHeap{}
	c.mu.Unlock()

	c.statsMu.Lock()
	c.stats.Evictions += evicted
	c.stats.TotalKeys = 0
	c.statsMu.Unlock()
}

// Cleanup purges every entry whose ExpiresAt has passed and returns the
// number removed. The write lock is released between batches of at most
// SweepBatchSize keys so readers and writers are never held off for longer
// than one batch.
func (c *Cache[V]) Cleanup() int {
	now := c.now()
	removed := 0

	for {
		n, more := c.sweepBatch(now)
		removed += n
		if !more {
			break
		}
	}

	c.mu.RLock()
	total := int64(len(c.entries))
	c.mu.RUnlock()

	c.statsMu.Lock()
	c.stats.Evictions += int64(removed)
	c.stats.TotalKeys = total
	c.stats.LastCleanup = now
	c.statsMu.Unlock()

	return removed
}

// sweepBatch pops up to batchSize expired heap items. It reports whether
// expired items may remain.
func (c *Cache[V]) sweepBatch(now time.Time) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for i := 0; i < c.batchSize; i++ {
		item, ok := c.expiry.peek()
		if !ok || now.Before(item.expiresAt) {
			return removed, false
		}
		c.expiry.pop()

		// Heap items go stale when a key is overwritten or deleted; only
		// remove the entry the item was pushed for.
		entry, exists := c.entries[item.key]
		if exists && entry.ExpiresAt.Equal(item.expiresAt) && entry.Expired(now) {
			delete(c.entries, item.key)
			removed++
		}
	}
	return removed, true
}

// Len returns the number of physically stored entries, expired or not.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// GetStats returns a copy of the current counters.
func (c *Cache[V]) GetStats() Stats {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	return c.stats
}

// HitRate returns the cache hit rate as a percentage.
func (c *Cache[V]) HitRate() float64 {
	stats := c.GetStats()
	total := stats.Hits + stats.Misses
	if total == 0 {
		return 0.0
	}
	return float64(stats.Hits) / float64(total) * 100.0
}

func (c *Cache[V]) recordHit() {
	c.statsMu.Lock()
	c.stats.Hits++
	c.statsMu.Unlock()
}

func (c *Cache[V]) recordMiss() {
	c.statsMu.Lock()
	c.stats.Misses++
	c.statsMu.Unlock()
}

func (c *Cache[V]) recordEviction(n int64) {
	c.statsMu.Lock()
	c.stats.Evictions += n
	c.statsMu.Unlock()
}

// GenerateKey creates a cache key from a namespace and parameters.
func GenerateKey(namespace string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", namespace, params)
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", namespace, hash[:16])
}
