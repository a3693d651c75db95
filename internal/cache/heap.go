// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package cache

import "time"

// expiryItem records when a key was scheduled to expire.
type expiryItem struct {
	key       string
	expiresAt time.Time
}

// expiryHeap is a min-heap of expiry times used by Cleanup to find expired
// keys without scanning the whole map. Items are never updated in place;
// overwritten or deleted keys leave stale items that Cleanup discards.
// Not safe for concurrent use; the owning Cache holds its lock.
type expiryHeap struct {
	items []expiryItem
}

func (h *expiryHeap) len() int { return len(h.items) }

func (h *expiryHeap) push(key string, expiresAt time.Time) {
	h.items = append(h.items, expiryItem{key: key, expiresAt: expiresAt})
	h.bubbleUp(len(h.items) - 1)
}

func (h *expiryHeap) peek() (expiryItem, bool) {
	if len(h.items) == 0 {
		return expiryItem{}, false
	}
	return h.items[0], true
}

func (h *expiryHeap) pop() (expiryItem, bool) {
	n := len(h.items)
	if n == 0 {
		return expiryItem{}, false
	}
	top := h.items[0]
	h.items[0] = h.items[n-1]
	h.items[n-1] = expiryItem{}
	h.items = h.items[:n-1]
	if len(h.items) > 0 {
		h.bubbleDown(0)
	}
	return top, true
}

func (h *expiryHeap) less(i, j int) bool {
	return h.items[i].expiresAt.Before(h.items[j].expiresAt)
}

func (h *expiryHeap) bubbleUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less(i, parent) {
			return
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *expiryHeap) bubbleDown(i int) {
	n := len(h.items)
	for {
		smallest := i
		left := 2*i + 1
		right := 2*i + 2

		if left < n && h.less(left, smallest) {
			smallest = left
		}
		if right < n && h.less(right, smallest) {
			smallest = right
		}
		if smallest == i {
			return
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
}
