// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package cache

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.t = f.t.Add(d)
	f.mu.Unlock()
}

func TestCacheBasicOperations(t *testing.T) {
	c := New[string](Options{DefaultTTL: time.Minute})

	c.Set("key1", "value1", 0)
	value, exists := c.Get("key1")
	if !exists {
		t.Error("Expected key1 to exist")
	}
	if value != "value1" {
		t.Errorf("Expected value1, got %v", value)
	}
	if !c.Has("key1") {
		t.Error("Expected Has(key1) to be true")
	}

	if _, exists := c.Get("key2"); exists {
		t.Error("Expected key2 to not exist")
	}
	if c.Has("key2") {
		t.Error("Expected Has(key2) to be false")
	}
}

func TestCacheExpiration(t *testing.T) {
	c := New[string](Options{DefaultTTL: 100 * time.Millisecond})

	c.Set("key1", "value1", 0)

	if _, exists := c.Get("key1"); !exists {
		t.Error("Expected key1 to exist immediately after set")
	}

	time.Sleep(150 * time.Millisecond)

	if _, exists := c.Get("key1"); exists {
		t.Error("Expected key1 to be expired")
	}
}

func TestCacheLazyExpiryWithoutCleanup(t *testing.T) {
	clock := newFakeClock()
	c := New[int](Options{DefaultTTL: time.Hour, Clock: clock.Now})

	c.Set("short", 1, 10*time.Second)
	c.Set("long", 2, 0)

	clock.Advance(10 * time.Second)

	if c.Has("short") {
		t.Error("Has must report an expired entry as absent")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (entry not swept yet)", c.Len())
	}
	if _, ok := c.Get("short"); ok {
		t.Error("Get must report an expired entry as absent")
	}
	if v, ok := c.Get("long"); !ok || v != 2 {
		t.Errorf("Get(long) = %v, %v; want 2, true", v, ok)
	}
}

func TestCacheSetResetsTTL(t *testing.T) {
	clock := newFakeClock()
	c := New[string](Options{Clock: clock.Now})

	c.Set("k", "v1", 10*time.Second)
	clock.Advance(8 * time.Second)
	c.Set("k", "v2", 10*time.Second)
	clock.Advance(8 * time.Second)

	v, ok := c.Get("k")
	if !ok || v != "v2" {
		t.Fatalf("Get(k) = %q, %v; want v2, true", v, ok)
	}

	// The stale heap item from the first Set must not remove the live entry.
	if removed := c.Cleanup(); removed != 0 {
		t.Errorf("Cleanup() removed %d, want 0", removed)
	}
	if !c.Has("k") {
		t.Error("expected k to survive cleanup")
	}
}

func TestCacheEntryExpiresAfterCreation(t *testing.T) {
	clock := newFakeClock()
	c := New[string](Options{Clock: clock.Now})

	for _, ttl := range []time.Duration{-time.Second, 0, time.Nanosecond, time.Minute} {
		c.Set("k", "v", ttl)
		c.mu.RLock()
		e := c.entries["k"]
		c.mu.RUnlock()
		if !e.ExpiresAt.After(e.CreatedAt) {
			t.Errorf("ttl %v: ExpiresAt %v not after CreatedAt %v", ttl, e.ExpiresAt, e.CreatedAt)
		}
	}
}

func TestCacheDelete(t *testing.T) {
	c := New[string](Options{})

	c.Set("key1", "value1", 0)
	c.Delete("key1")
	c.Delete("missing")

	if _, exists := c.Get("key1"); exists {
		t.Error("Expected key1 to be deleted")
	}
	if got := c.GetStats().Evictions; got != 1 {
		t.Errorf("Evictions = %d, want 1", got)
	}
}

func TestCacheClear(t *testing.T) {
	c := New[string](Options{})

	c.Set("key1", "value1", 0)
	c.Set("key2", "value2", 0)
	c.Set("key3", "value3", 0)

	c.Clear()

	for _, key := range []string{"key1", "key2", "key3"} {
		if c.Has(key) {
			t.Errorf("Expected %s to be cleared", key)
		}
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestCacheDeleteFunc(t *testing.T) {
	c := New[string](Options{})

	c.Set("search/1:a", "old", 0)
	c.Set("search/1:b", "old", 0)
	c.Set("search/2:a", "new", 0)

	removed := c.DeleteFunc(func(key string) bool {
		return !strings.HasPrefix(key, "search/2:")
	})
	if removed != 2 {
		t.Errorf("DeleteFunc() = %d, want 2", removed)
	}
	if !c.Has("search/2:a") {
		t.Error("Expected search/2:a to survive")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	if stats := c.GetStats(); stats.Evictions != 2 || stats.TotalKeys != 1 {
		t.Errorf("stats = %+v, want 2 evictions and 1 key", stats)
	}
}

func TestCacheCleanup(t *testing.T) {
	clock := newFakeClock()
	c := New[int](Options{Clock: clock.Now, SweepBatchSize: 3})

	for i := 0; i < 10; i++ {
		c.Set(fmt.Sprintf("short-%d", i), i, time.Second)
	}
	for i := 0; i < 5; i++ {
		c.Set(fmt.Sprintf("long-%d", i), i, time.Hour)
	}
	c.Delete("short-0")

	clock.Advance(2 * time.Second)

	removed := c.Cleanup()
	if removed != 9 {
		t.Errorf("Cleanup() removed %d, want 9", removed)
	}
	if c.Len() != 5 {
		t.Errorf("Len() = %d, want 5", c.Len())
	}

	stats := c.GetStats()
	if stats.TotalKeys != 5 {
		t.Errorf("TotalKeys = %d, want 5", stats.TotalKeys)
	}
	if !stats.LastCleanup.Equal(clock.Now()) {
		t.Errorf("LastCleanup = %v, want %v", stats.LastCleanup, clock.Now())
	}

	if removed := c.Cleanup(); removed != 0 {
		t.Errorf("second Cleanup() removed %d, want 0", removed)
	}
}

func TestCacheStats(t *testing.T) {
	c := New[string](Options{})

	c.Set("key1", "value1", 0)
	c.Get("key1") // hit
	c.Get("key2") // miss
	c.Get("key1") // hit

	stats := c.GetStats()

	if stats.Hits != 2 {
		t.Errorf("Expected 2 hits, got %d", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("Expected 1 miss, got %d", stats.Misses)
	}

	hitRate := c.HitRate()
	expectedHitRate := 66.66666666666667
	if hitRate < expectedHitRate-0.01 || hitRate > expectedHitRate+0.01 {
		t.Errorf("Expected hit rate around %.2f%%, got %.2f%%", expectedHitRate, hitRate)
	}
}

func TestGenerateKey(t *testing.T) {
	type params struct {
		Query string
		Page  int
	}

	key1 := GenerateKey("search", params{Query: "tuna", Page: 1})
	key2 := GenerateKey("search", params{Query: "tuna", Page: 1})
	key3 := GenerateKey("search", params{Query: "tuna", Page: 2})
	key4 := GenerateKey("similar", params{Query: "tuna", Page: 1})

	if key1 != key2 {
		t.Error("Expected same params to generate same key")
	}
	if key1 == key3 {
		t.Error("Expected different params to generate different key")
	}
	if key1 == key4 {
		t.Error("Expected different namespaces to generate different key")
	}
}

func TestExpiryHeapOrder(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var h expiryHeap

	for _, offset := range []int{5, 1, 4, 2, 3} {
		h.push(fmt.Sprintf("k%d", offset), base.Add(time.Duration(offset)*time.Second))
	}

	for want := 1; want <= 5; want++ {
		item, ok := h.pop()
		if !ok {
			t.Fatalf("pop %d: heap empty", want)
		}
		if item.key != fmt.Sprintf("k%d", want) {
			t.Errorf("pop %d: got %s", want, item.key)
		}
	}
	if h.len() != 0 {
		t.Errorf("len() = %d, want 0", h.len())
	}
}

func TestCacheConcurrency(t *testing.T) {
	c := New[int](Options{DefaultTTL: time.Minute, SweepBatchSize: 4})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("key-%d", j%7)
				c.Set(key, id, time.Duration(j%3)*time.Millisecond)
				c.Get(key)
				c.Has(key)
				if j%10 == 0 {
					c.Delete(key)
					c.Cleanup()
				}
			}
		}(i)
	}
	wg.Wait()

	stats := c.GetStats()
	if stats.Hits == 0 && stats.Misses == 0 {
		t.Error("Expected some cache activity from concurrent operations")
	}
}

func BenchmarkCacheSet(b *testing.B) {
	c := New[string](Options{})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Set("key", "value", 0)
	}
}

func BenchmarkCacheGet(b *testing.B) {
	c := New[string](Options{})
	c.Set("key", "value", 0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get("key")
	}
}
