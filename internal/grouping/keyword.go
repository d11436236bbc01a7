// Copyright 2026 The Merchgroup Authors
// SPDX-License-Identifier: MIT

package grouping

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultKeywordSuffixes are trailing branch and location markers removed
// from extracted keywords: store, branch, numbered store, franchise,
// headquarters, station-front, station and station exits.
var DefaultKeywordSuffixes = []string{
	"店", "支店", "号店", "fc", "フランチャイズ", "本店", "駅前", "駅", "東口", "西口", "南口", "北口",
}

const (
	minKeywordLen      = 2
	fallbackKeywordLen = 10
)

var digitRun = regexp.MustCompile(`\p{Nd}+`)

// KeywordExtractor derives a short keyword shared by the members of a group.
type KeywordExtractor struct {
	suffix *regexp.Regexp
	cache  *NormalizeCache
}

// NewKeywordExtractor builds an extractor stripping the given trailing
// tokens. Tokens are matched literally against normalized text; the
// alternation is tried in the given order at the leftmost position. A nil or
// empty list disables stripping.
func NewKeywordExtractor(suffixes []string, cache *NormalizeCache) *KeywordExtractor {
	ke := &KeywordExtractor{cache: cache}
	var quoted []string
	for _, s := range suffixes {
		if s == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(s))
	}
	if len(quoted) > 0 {
		ke.suffix = regexp.MustCompile("(?:" + strings.Join(quoted, "|") + ")$")
	}
	return ke
}

var defaultExtractor = NewKeywordExtractor(DefaultKeywordSuffixes, nil)

// ExtractKeyword extracts a keyword with the default suffix list.
func ExtractKeyword(names []string) string {
	return defaultExtractor.Extract(names)
}

// Extract returns "" when fewer than two names have a non-empty normalized
// form. Otherwise it takes the longest common substring of the shortest and
// longest normalized names and strips a trailing marker. If that leaves
// fewer than two runes, it falls back to the shortest name without digits,
// marker or whitespace, and finally to the first ten runes of the shortest
// name.
func (ke *KeywordExtractor) Extract(names []string) string {
	normalized := make([]string, 0, len(names))
	for _, n := range names {
		if key := ke.cache.Normalize(n); key != "" {
			normalized = append(normalized, key)
		}
	}
	if len(normalized) < 2 {
		return ""
	}

	sort.SliceStable(normalized, func(i, j int) bool {
		return utf8.RuneCountInString(normalized[i]) < utf8.RuneCountInString(normalized[j])
	})
	shortest := normalized[0]
	longest := normalized[len(normalized)-1]

	common := LongestCommonSubstring(shortest, longest)
	if common != "" {
		common = strings.TrimSpace(ke.stripSuffix(common))
	}
	if utf8.RuneCountInString(common) >= minKeywordLen {
		return common
	}

	keyword := digitRun.ReplaceAllString(shortest, "")
	keyword = ke.stripSuffix(keyword)
	keyword = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, keyword)
	if utf8.RuneCountInString(keyword) >= minKeywordLen {
		return keyword
	}
	return truncateRunes(shortest, fallbackKeywordLen)
}

func (ke *KeywordExtractor) stripSuffix(s string) string {
	if ke.suffix == nil {
		return s
	}
	return ke.suffix.ReplaceAllString(s, "")
}

func truncateRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
