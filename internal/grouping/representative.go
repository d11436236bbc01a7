// Copyright 2026 The Merchgroup Authors
// SPDX-License-Identifier: MIT

package grouping

import "math/rand/v2"

// DefaultSampleCap bounds the number of members compared all-pairs when
// picking a representative.
const DefaultSampleCap = 50

// Selector picks a group representative by approximating the medoid: the
// member whose summed similarity to the other sampled members is highest.
type Selector struct {
	// SampleCap is the largest group compared in full. Bigger groups are
	// sampled uniformly without replacement. Values <= 0 disable sampling.
	SampleCap int

	// Rand drives sampling. A nil Rand uses a fixed seed of zero.
	Rand *rand.Rand

	// Scorer defaults to Ratcliff/Obershelp.
	Scorer Scorer

	// Cache memoizes normalization; may be nil.
	Cache *NormalizeCache
}

// SelectRepresentative picks a representative with the default cap, scorer
// and a zero-seeded sampler.
func SelectRepresentative(members []RawName, cache *NormalizeCache) RawName {
	s := Selector{SampleCap: DefaultSampleCap, Cache: cache}
	return s.Select(members)
}

// Select returns the representative of members. A singleton's only member is
// returned as is; an empty slice yields the zero RawName. Ties go to the
// candidate seen first in the sample.
func (s *Selector) Select(members []RawName) RawName {
	switch len(members) {
	case 0:
		return RawName{}
	case 1:
		return members[0]
	}

	sample := s.sample(members)
	scorer := s.Scorer
	if scorer == nil {
		scorer = RatcliffObershelp{}
	}

	keys := make([]string, len(sample))
	for i, m := range sample {
		keys[i] = s.Cache.Normalize(m.Name)
	}

	// Pairwise scores are symmetric, so each pair is computed once.
	totals := make([]float64, len(sample))
	for i := range sample {
		for j := i + 1; j < len(sample); j++ {
			sim := scorer.Similarity(keys[i], keys[j])
			totals[i] += sim
			totals[j] += sim
		}
	}

	best := 0
	for i := 1; i < len(totals); i++ {
		if totals[i] > totals[best] {
			best = i
		}
	}
	return sample[best]
}

func (s *Selector) sample(members []RawName) []RawName {
	if s.SampleCap <= 0 || len(members) <= s.SampleCap {
		return members
	}
	rng := s.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(0, 0))
	}
	// Partial Fisher-Yates over indices keeps members untouched.
	idx := make([]int, len(members))
	for i := range idx {
		idx[i] = i
	}
	out := make([]RawName, s.SampleCap)
	for i := range s.SampleCap {
		j := i + rng.IntN(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
		out[i] = members[idx[i]]
	}
	return out
}
