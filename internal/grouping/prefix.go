// Copyright 2026 The Merchgroup Authors
// SPDX-License-Identifier: MIT

package grouping

import (
	"context"
	"fmt"
	"log/slog"
)

// DefaultPrefixLength is the bucket key length used by ClusterFast.
const DefaultPrefixLength = 3

// FastOptions controls ClusterFast.
type FastOptions struct {
	// PrefixLength is the number of leading runes of the normalized key that
	// must be equal for two names to share a group. Must be >= 1.
	PrefixLength int

	// Scorer is used only for representative selection.
	Scorer Scorer

	// SampleCap, Seed, Workers and KeywordSuffixes behave as in Options.
	SampleCap       int
	Seed            uint64
	Workers         int
	KeywordSuffixes []string

	Progress         ProgressFunc
	ProgressInterval int
}

// Validate reports configuration errors.
func (o FastOptions) Validate() error {
	if o.PrefixLength < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidPrefixLength, o.PrefixLength)
	}
	return nil
}

// BucketKey returns the first n runes of a normalized key, or the whole key
// when it is shorter.
func BucketKey(key string, n int) string {
	return truncateRunes(key, n)
}

// ClusterFast groups names whose normalized keys share the same leading
// PrefixLength runes. No pairwise similarity is computed while bucketing, so
// this runs in linear time, at the cost of recall: similar names with
// different first characters never merge and unrelated names sharing a
// prefix always do.
//
// Groups are ordered by the first appearance of their bucket key; members
// keep input order. names must hold distinct raw strings.
func ClusterFast(ctx context.Context, names []RawName, opts FastOptions) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := checkInput(names); err != nil {
		return nil, err
	}
	interval := opts.ProgressInterval
	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	cache := NewNormalizeCache()
	bucketIndex := make(map[string]int)
	var (
		groups  []Group
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
		bucket := BucketKey(key, opts.PrefixLength)
		if gi, ok := bucketIndex[bucket]; ok {
			groups[gi].Members = append(groups[gi].Members, name)
			continue
		}
		bucketIndex[bucket] = len(groups)
		groups = append(groups, Group{Members: []RawName{name}})
	}
	if opts.Progress != nil {
		opts.Progress(total, total)
	}
	slog.Debug("prefix bucketing complete", "names", total, "buckets", len(groups), "skipped", skipped)

	fo := newFinalizeOptions(opts.Scorer, opts.SampleCap, opts.Seed, opts.Workers, opts.KeywordSuffixes)
	if err := finalize(ctx, groups, cache, fo); err != nil {
		return nil, err
	}
	return summarize(MethodFast, total, skipped, groups), nil
}
