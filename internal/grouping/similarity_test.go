// Copyright 2026 The Merchgroup Authors
// SPDX-License-Identifier: MIT

package grouping

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------
// Ratcliff/Obershelp
// -----------------------------------------------------------------------

func TestSimilarity_Identical(t *testing.T) {
	for _, k := range []string{"a", "tokyo coffee", "スターバックス渋谷店"} {
		assert.Equal(t, 1.0, Similarity(k, k), k)
	}
}

func TestSimilarity_BothEmpty(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("", ""))
}

func TestSimilarity_OneEmpty(t *testing.T) {
	assert.Equal(t, 0.0, Similarity("abc", ""))
	assert.Equal(t, 0.0, Similarity("", "abc"))
}

func TestSimilarity_Disjoint(t *testing.T) {
	assert.Equal(t, 0.0, Similarity("abc", "xyz"))
}

func TestSimilarity_SubstringOverlap(t *testing.T) {
	// "abc store" is matched whole: 2*9 / (9+24).
	assert.InDelta(t, 18.0/33.0, Similarity("abc store", "abc store shibuya branch"), 1e-9)
}

func TestSimilarity_RecursesIntoFragments(t *testing.T) {
	// Longest block "bcd", then "f" to its right: 2*4 / 12.
	assert.InDelta(t, 8.0/12.0, Similarity("abcdef", "xbcdyf"), 1e-9)
}

func TestSimilarity_CountsRunesNotBytes(t *testing.T) {
	// "スターバックス" plus the trailing "店": 2*8 / (10+10).
	assert.InDelta(t, 16.0/20.0, Similarity("スターバックス渋谷店", "スターバックス新宿店"), 1e-9)
}

func TestSimilarity_Symmetric(t *testing.T) {
	f := gofakeit.New(11)
	for range 300 {
		a := Normalize(f.Company())
		b := Normalize(f.Company())
		assert.Equal(t, Similarity(a, b), Similarity(b, a), "%q vs %q", a, b)
	}
	// Repeated characters make the longest-match search order dependent.
	assert.Equal(t, Similarity("abab", "baba"), Similarity("baba", "abab"))
	assert.Equal(t, Similarity("aab", "abaa"), Similarity("abaa", "aab"))
}

func TestSimilarity_InUnitRange(t *testing.T) {
	f := gofakeit.New(12)
	for range 300 {
		s := Similarity(Normalize(f.Company()), Normalize(f.Name()))
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
	}
}

func TestRatcliffObershelp_UpperBound(t *testing.T) {
	r := RatcliffObershelp{}
	assert.InDelta(t, 2.0*3/(3+9), r.UpperBound("abc", "abcdefghi"), 1e-9)
	assert.Equal(t, 1.0, r.UpperBound("", ""))

	f := gofakeit.New(13)
	for range 300 {
		a, b := Normalize(f.Company()), Normalize(f.Company())
		assert.GreaterOrEqual(t, r.UpperBound(a, b), r.Similarity(a, b), "%q vs %q", a, b)
	}
}

// -----------------------------------------------------------------------
// Levenshtein
// -----------------------------------------------------------------------

func TestLevenshtein_Similarity(t *testing.T) {
	l := Levenshtein{}
	assert.Equal(t, 1.0, l.Similarity("", ""))
	assert.Equal(t, 1.0, l.Similarity("cafe", "cafe"))
	assert.InDelta(t, 1.0-3.0/7.0, l.Similarity("kitten", "sitting"), 1e-9)
	assert.InDelta(t, 1.0-1.0/3.0, l.Similarity("カフェ", "カフエ"), 1e-9)
	assert.Equal(t, l.Similarity("abc store", "abc stor"), l.Similarity("abc stor", "abc store"))
}

func TestLevenshtein_UpperBound(t *testing.T) {
	l := Levenshtein{}
	f := gofakeit.New(14)
	for range 300 {
		a, b := Normalize(f.Company()), Normalize(f.Company())
		assert.GreaterOrEqual(t, l.UpperBound(a, b), l.Similarity(a, b), "%q vs %q", a, b)
	}
}

// -----------------------------------------------------------------------
// ScorerByName
// -----------------------------------------------------------------------

func TestScorerByName(t *testing.T) {
	for _, name := range []string{"", "ratcliff", "ratcliff-obershelp"} {
		s, err := ScorerByName(name)
		require.NoError(t, err)
		assert.Equal(t, ScorerRatcliff, s.Name())
	}

	s, err := ScorerByName("levenshtein")
	require.NoError(t, err)
	assert.Equal(t, ScorerLevenshtein, s.Name())

	_, err = ScorerByName("jaro")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown scorer: "jaro"`)
}
