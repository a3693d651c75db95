// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package index

import (
	"strings"
	"unicode"
)

// Tokenize splits text into unique lowercase word tokens in order of first
// appearance. A token is a maximal run of letters and digits. Queries and
// indexed fields go through the same function so they always agree.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(fields) <= 1 {
		return fields
	}

	seen := make(map[string]struct{}, len(fields))
	out := fields[:0]
	for _, f := range fields {
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

// SKUSet is a set of SKUs. Sets returned by an Index are shared and must
// not be modified.
type SKUSet map[string]struct{}

// Has reports membership.
func (s SKUSet) Has(sku string) bool {
	_, ok := s[sku]
	return ok
}

func (s SKUSet) add(sku string) {
	s[sku] = struct{}{}
}

// Union returns a new set holding every member of the given sets.
func Union(sets ...SKUSet) SKUSet {
	size := 0
	for _, s := range sets {
		size += len(s)
	}
	out := make(SKUSet, size)
	for _, s := range sets {
		for sku := range s {
			out[sku] = struct{}{}
		}
	}
	return out
}

// Intersect returns a new set of members present in both a and b.
func Intersect(a, b SKUSet) SKUSet {
	if len(b) < len(a) {
		a, b = b, a
	}
	out := make(SKUSet, len(a))
	for sku := range a {
		if b.Has(sku) {
			out[sku] = struct{}{}
		}
	}
	return out
}
