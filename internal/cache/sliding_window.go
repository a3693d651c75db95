// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package cache

import (
	"sort"
	"sync"
	"time"
)

// SlidingWindowCounter counts events over a trailing time window divided
// into fixed buckets.
//
// Complexity:
//   - Increment: O(1)
//   - Count: O(k) where k = number of buckets
type SlidingWindowCounter struct {
	mu         sync.Mutex
	buckets    []int64
	bucketSize time.Duration
	numBuckets int
	current    int
	lastUpdate time.Time
	now        func() time.Time
}

// NewSlidingWindowCounter creates a counter for windowSize split into
// numBuckets buckets. clock may be nil.
func NewSlidingWindowCounter(windowSize time.Duration, numBuckets int, clock func() time.Time) *SlidingWindowCounter {
	if numBuckets <= 0 {
		numBuckets = 10
	}
	if windowSize <= 0 {
		windowSize = 15 * time.Minute
	}
	if clock == nil {
		clock = time.Now
	}

	return &SlidingWindowCounter{
		buckets:    make([]int64, numBuckets),
		bucketSize: windowSize / time.Duration(numBuckets),
		numBuckets: numBuckets,
		lastUpdate: clock(),
		now:        clock,
	}
}

// Increment adds delta to the current bucket.
func (sw *SlidingWindowCounter) Increment(delta int64) {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	sw.advance()
	sw.buckets[sw.current] += delta
}

// Count returns the total across the window.
func (sw *SlidingWindowCounter) Count() int64 {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	sw.advance()

	var total int64
	for _, n := range sw.buckets {
		total += n
	}
	return total
}

// advance rotates out buckets that fell off the window. Caller holds the lock.
func (sw *SlidingWindowCounter) advance() {
	now := sw.now()
	elapsed := int(now.Sub(sw.lastUpdate) / sw.bucketSize)
	if elapsed <= 0 {
		return
	}

	if elapsed >= sw.numBuckets {
		for i := range sw.buckets {
			sw.buckets[i] = 0
		}
		sw.current = 0
	} else {
		for i := 0; i < elapsed; i++ {
			sw.current = (sw.current + 1) % sw.numBuckets
			sw.buckets[sw.current] = 0
		}
	}
	// Keep lastUpdate aligned to bucket boundaries so partial buckets are not lost.
	sw.lastUpdate = sw.lastUpdate.Add(time.Duration(elapsed) * sw.bucketSize)
}

// KeyCount is a key and its windowed count.
type KeyCount struct {
	Key   string
	Count int64
}

// SlidingWindowStore keeps one SlidingWindowCounter per key, capped at
// maxKeys. When full, the key with the smallest windowed count is evicted.
type SlidingWindowStore struct {
	mu         sync.RWMutex
	counters   map[string]*SlidingWindowCounter
	windowSize time.Duration
	numBuckets int
	maxKeys    int
	now        func() time.Time
}

// NewSlidingWindowStore creates a store. maxKeys <= 0 means unlimited.
func NewSlidingWindowStore(windowSize time.Duration, numBuckets, maxKeys int, clock func() time.Time) *SlidingWindowStore {
	if clock == nil {
		clock = time.Now
	}
	return &SlidingWindowStore{
		counters:   make(map[string]*SlidingWindowCounter),
		windowSize: windowSize,
		numBuckets: numBuckets,
		maxKeys:    maxKeys,
		now:        clock,
	}
}

// Increment adds 1 to key's counter.
func (s *SlidingWindowStore) Increment(key string) {
	s.IncrementBy(key, 1)
}

// IncrementBy adds delta to key's counter.
func (s *SlidingWindowStore) IncrementBy(key string, delta int64) {
	s.mu.Lock()
	counter, exists := s.counters[key]
	if !exists {
		if s.maxKeys > 0 && len(s.counters) >= s.maxKeys {
			s.evictSmallest()
		}
		counter = NewSlidingWindowCounter(s.windowSize, s.numBuckets, s.now)
		s.counters[key] = counter
	}
	s.mu.Unlock()

	counter.Increment(delta)
}

// Count returns key's windowed count.
func (s *SlidingWindowStore) Count(key string) int64 {
	s.mu.RLock()
	counter, exists := s.counters[key]
	s.mu.RUnlock()

	if !exists {
		return 0
	}
	return counter.Count()
}

// Top returns up to n keys with a non-zero windowed count, highest first,
// ties broken by key ascending.
func (s *SlidingWindowStore) Top(n int) []KeyCount {
	if n <= 0 {
		return nil
	}

	s.mu.RLock()
	counts := make([]KeyCount, 0, len(s.counters))
	for key, counter := range s.counters {
		if c := counter.Count(); c > 0 {
			counts = append(counts, KeyCount{Key: key, Count: c})
		}
	}
	s.mu.RUnlock()

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Key < counts[j].Key
	})

	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// Len returns the number of tracked keys.
func (s *SlidingWindowStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.counters)
}

// CleanupInactive drops keys whose windowed count is zero.
func (s *SlidingWindowStore) CleanupInactive() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, counter := range s.counters {
		if counter.Count() == 0 {
			delete(s.counters, key)
			removed++
		}
	}
	return removed
}

// evictSmallest removes the key with the lowest count. Caller holds the lock.
func (s *SlidingWindowStore) evictSmallest() {
	var (
		victim string
		lowest int64 = -1
	)
	for key, counter := range s.counters {
		c := counter.Count()
		if lowest < 0 || c < lowest || (c == lowest && key < victim) {
			victim, lowest = key, c
		}
	}
	if lowest >= 0 {
		delete(s.counters, victim)
	}
}
