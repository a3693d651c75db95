// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package cache

import (
	"sort"
	"strings"
	"sync"
)

type trieNode[T any] struct {
	children map[rune]*trieNode[T]
	isEnd    bool
	value    string
	data     T
	weight   int
}

func newTrieNode[T any]() *trieNode[T] {
	return &trieNode[T]{children: make(map[rune]*trieNode[T])}
}

// Trie is a case-insensitive prefix tree used for autocomplete.
// Each stored string carries a payload and a weight used for ranking.
//
// Complexity:
//   - Insert: O(m) where m = string length
//   - Autocomplete: O(m + k log k) where k = strings under the prefix
type Trie[T any] struct {
	mu   sync.RWMutex
	root *trieNode[T]
	size int
}

// TrieResult is one autocomplete match.
type TrieResult[T any] struct {
	Value  string
	Data   T
	Weight int
}

// NewTrie creates an empty trie.
func NewTrie[T any]() *Trie[T] {
	return &Trie[T]{root: newTrieNode[T]()}
}

// Insert stores value with its payload. Inserting an existing value (ignoring
// case) keeps the original spelling, replaces the payload, and keeps the
// larger weight. Returns true for a new value.
func (t *Trie[T]) Insert(value string, data T, weight int) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	node := t.root
	for _, ch := range strings.ToLower(value) {
		child, ok := node.children[ch]
		if !ok {
			child = newTrieNode[T]()
			node.children[ch] = child
		}
		node = child
	}

	isNew := !node.isEnd
	if isNew {
		node.isEnd = true
		node.value = value
		t.size++
	}
	node.data = data
	if isNew || weight > node.weight {
		node.weight = weight
	}
	return isNew
}

// Contains reports whether value was inserted (ignoring case).
func (t *Trie[T]) Contains(value string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	node := t.find(strings.ToLower(value))
	return node != nil && node.isEnd
}

// Autocomplete returns up to limit stored strings starting with prefix,
// ordered by weight descending then value ascending. An empty prefix
// matches nothing.
func (t *Trie[T]) Autocomplete(prefix string, limit int) []TrieResult[T] {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" || limit <= 0 {
		return nil
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	node := t.find(prefix)
	if node == nil {
		return nil
	}

	var results []TrieResult[T]
	collect(node, &results)

	sort.Slice(results, func(i, j int) bool {
		if results[i].Weight != results[j].Weight {
			return results[i].Weight > results[j].Weight
		}
		return results[i].Value < results[j].Value
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// Size returns the number of stored strings.
func (t *Trie[T]) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.size
}

// find walks to the node for key. Caller holds the lock.
func (t *Trie[T]) find(key string) *trieNode[T] {
	node := t.root
	for _, ch := range key {
		node = node.children[ch]
		if node == nil {
			return nil
		}
	}
	return node
}

func collect[T any](node *trieNode[T], results *[]TrieResult[T]) {
	if node.isEnd {
		*results = append(*results, TrieResult[T]{
			Value:  node.value,
			Data:   node.data,
			Weight: node.weight,
		})
	}
	for _, child := range node.children {
		collect(child, results)
	}
}
