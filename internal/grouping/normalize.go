// Copyright 2026 The Merchgroup Authors
// SPDX-License-Identifier: MIT

package grouping

import (
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"
)

// Normalize returns the comparison key for a raw merchant name: surrounding
// whitespace trimmed, NFKC-folded (full-width letters and digits become
// half-width, half-width katakana becomes full-width) and lowercased.
//
// Normalize is idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	// NFKC can expose new leading/trailing spaces (U+3000, spacing marks) and
	// lowercasing can leave a string that is no longer NFKC, so repeat until
	// stable. Real input settles after one round.
	for range 3 {
		next := strings.TrimSpace(strings.ToLower(norm.NFKC.String(s)))
		if next == s {
			break
		}
		s = next
	}
	return s
}

// NormalizeCache memoizes Normalize by exact raw string. A cache belongs to a
// single clustering call; it is safe for concurrent use so that parallel
// finalization can share it.
type NormalizeCache struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewNormalizeCache returns an empty cache.
func NewNormalizeCache() *NormalizeCache {
	return &NormalizeCache{m: make(map[string]string)}
}

// Normalize returns the cached key for raw, computing it on first use.
// A nil cache normalizes without memoizing.
func (c *NormalizeCache) Normalize(raw string) string {
	if c == nil {
		return Normalize(raw)
	}
	c.mu.RLock()
	key, ok := c.m[raw]
	c.mu.RUnlock()
	if ok {
		return key
	}
	key = Normalize(raw)
	c.mu.Lock()
	c.m[raw] = key
	c.mu.Unlock()
	return key
}

// Len reports the number of memoized entries.
func (c *NormalizeCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
