// Copyright 2026 The Merchgroup Authors
// SPDX-License-Identifier: MIT

package grouping

import (
	"fmt"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/pmezard/go-difflib/difflib"
)

// Scorer computes a symmetric similarity ratio in [0, 1] between two
// normalized keys. Two empty keys score 1.
type Scorer interface {
	Name() string
	Similarity(a, b string) float64
}

// bounder is implemented by scorers that can cheaply bound their score from
// above. The greedy clusterer uses it to skip hopeless comparisons.
type bounder interface {
	UpperBound(a, b string) float64
}

// Scorer names accepted by ScorerByName.
const (
	ScorerRatcliff    = "ratcliff"
	ScorerLevenshtein = "levenshtein"
)

// ScorerByName resolves a scorer from its configuration name. The empty
// name selects Ratcliff/Obershelp.
func ScorerByName(name string) (Scorer, error) {
	switch name {
	case "", ScorerRatcliff, "ratcliff-obershelp":
		return RatcliffObershelp{}, nil
	case ScorerLevenshtein:
		return Levenshtein{}, nil
	default:
		return nil, fmt.Errorf("unknown scorer: %q (available: %s, %s)", name, ScorerLevenshtein, ScorerRatcliff)
	}
}

// Similarity scores two normalized keys with Ratcliff/Obershelp.
func Similarity(a, b string) float64 {
	return RatcliffObershelp{}.Similarity(a, b)
}

// RatcliffObershelp scores 2*M/T where M is the number of characters covered
// by recursively found longest common substrings and T is the combined rune
// length of both strings. Runes are the matching unit.
type RatcliffObershelp struct{}

var _ Scorer = RatcliffObershelp{}

// Name returns the scorer name.
func (RatcliffObershelp) Name() string { return ScorerRatcliff }

// Similarity returns the matching ratio. The longest-match search is not
// symmetric on ties, so arguments are put in a fixed order first.
func (RatcliffObershelp) Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if b < a {
		a, b = b, a
	}
	m := difflib.NewMatcher(runeStrings(a), runeStrings(b))
	return m.Ratio()
}

// UpperBound is the length-only bound 2*min(la, lb)/(la+lb).
func (RatcliffObershelp) UpperBound(a, b string) float64 {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	if la+lb == 0 {
		return 1.0
	}
	return 2.0 * float64(min(la, lb)) / float64(la+lb)
}

// Levenshtein scores 1 - distance/max(la, lb) using rune edit distance.
type Levenshtein struct{}

var _ Scorer = Levenshtein{}

// Name returns the scorer name.
func (Levenshtein) Name() string { return ScorerLevenshtein }

// Similarity returns the normalized edit similarity.
func (Levenshtein) Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	d := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(d)/float64(longest)
}

// UpperBound uses the fact that the distance is at least the length gap.
func (Levenshtein) UpperBound(a, b string) float64 {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	longest := max(la, lb)
	if longest == 0 {
		return 1.0
	}
	gap := la - lb
	if gap < 0 {
		gap = -gap
	}
	return 1.0 - float64(gap)/float64(longest)
}

func runeStrings(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
