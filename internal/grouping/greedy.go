// Copyright 2026 The Merchgroup Authors
// SPDX-License-Identifier: MIT

package grouping

import (
	"context"
	"fmt"
	"log/slog"
)

// DefaultThreshold is the similarity a name needs to join an existing group.
const DefaultThreshold = 0.8

// Options controls Cluster.
type Options struct {
	// Threshold in (0, 1]. 1.0 only merges identical normalized keys.
	Threshold float64

	// Scorer defaults to Ratcliff/Obershelp.
	Scorer Scorer

	// SampleCap bounds representative selection; 0 means DefaultSampleCap,
	// a negative value compares every member.
	SampleCap int

	// Seed feeds the representative sampler.
	Seed uint64

	// Workers bounds parallel finalization; <= 0 means GOMAXPROCS.
	Workers int

	// KeywordSuffixes are stripped from keywords. Nil selects
	// DefaultKeywordSuffixes; an empty non-nil slice strips nothing.
	KeywordSuffixes []string

	// Progress, if set, is called every ProgressInterval names and at the end.
	Progress         ProgressFunc
	ProgressInterval int
}

// Validate reports configuration errors.
func (o Options) Validate() error {
	if !(o.Threshold > 0 && o.Threshold <= 1) {
		return fmt.Errorf("%w: got %g", ErrInvalidThreshold, o.Threshold)
	}
	return nil
}

func (o Options) finalizeOptions() finalizeOptions {
	return newFinalizeOptions(o.Scorer, o.SampleCap, o.Seed, o.Workers, o.KeywordSuffixes)
}

func newFinalizeOptions(scorer Scorer, sampleCap int, seed uint64, workers int, suffixes []string) finalizeOptions {
	if scorer == nil {
		scorer = RatcliffObershelp{}
	}
	if sampleCap == 0 {
		sampleCap = DefaultSampleCap
	}
	if suffixes == nil {
		suffixes = DefaultKeywordSuffixes
	}
	return finalizeOptions{scorer: scorer, sampleCap: sampleCap, seed: seed, workers: workers, suffixes: suffixes}
}

// Cluster groups names greedily in the order given. Each name is compared
// with the provisional representative (first member) of every existing
// group; it joins the most similar group if that similarity reaches the
// threshold, the earliest-created group winning ties, and otherwise starts a
// new group. Assignments are never revisited.
//
// names must hold distinct raw strings (see Dedupe). Names that normalize to
// "" are skipped. The context is checked between names.
func Cluster(ctx context.Context, names []RawName, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := checkInput(names); err != nil {
		return nil, err
	}
	scorer := opts.Scorer
	if scorer == nil {
		scorer = RatcliffObershelp{}
	}
	bound, _ := scorer.(bounder)
	interval := opts.ProgressInterval
	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	cache := NewNormalizeCache()
	var (
		groups  []Group
		repKeys []string // repKeys[i] is the normalized key of groups[i]'s first member
		skipped int
	)
	total := len(names)
	for idx, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if opts.Progress != nil && idx > 0 && idx%interval == 0 {
			opts.Progress(idx, total)
		}

		key := cache.Normalize(name.Name)
		if key == "" {
			skipped++
			continue
		}

		match, best := -1, 0.0
		for gi, rep := range repKeys {
			if bound != nil {
				ub := bound.UpperBound(key, rep)
				if ub < opts.Threshold || (match >= 0 && ub <= best) {
					continue
				}
			}
			sim := scorer.Similarity(key, rep)
			if sim >= opts.Threshold && sim > best {
				match, best = gi, sim
			}
		}

		if match >= 0 {
			groups[match].Members = append(groups[match].Members, name)
			continue
		}
		groups = append(groups, Group{Members: []RawName{name}})
		repKeys = append(repKeys, key)
	}
	if opts.Progress != nil {
		opts.Progress(total, total)
	}
	slog.Debug("greedy clustering complete", "names", total, "groups", len(groups), "skipped", skipped)

	if err := finalize(ctx, groups, cache, opts.finalizeOptions()); err != nil {
		return nil, err
	}
	return summarize(MethodExact, total, skipped, groups), nil
}
