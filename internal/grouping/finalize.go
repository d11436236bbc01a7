// Copyright 2026 The Merchgroup Authors
// SPDX-License-Identifier: MIT

package grouping

import (
	"context"
	"math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// finalizeOptions are the settings shared by both clustering methods for the
// per-group representative and keyword step.
type finalizeOptions struct {
	scorer    Scorer
	sampleCap int
	seed      uint64
	workers   int
	suffixes  []string
}

// finalize fills Representative, Keyword and Count for every group. Groups
// are independent, so they are processed on a bounded worker pool. Each group
// samples from its own PCG stream keyed by (seed, index), which keeps the
// output independent of scheduling.
func finalize(ctx context.Context, groups []Group, cache *NormalizeCache, opts finalizeOptions) error {
	workers := opts.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	extractor := NewKeywordExtractor(opts.suffixes, cache)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range groups {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			grp := &groups[i]
			grp.Count = sumCounts(grp.Members)
			if len(grp.Members) == 1 {
				grp.Representative = grp.Members[0]
				grp.Keyword = cache.Normalize(grp.Members[0].Name)
				return nil
			}
			sel := Selector{
				SampleCap: opts.sampleCap,
				Rand:      rand.New(rand.NewPCG(opts.seed, uint64(i))),
				Scorer:    opts.scorer,
				Cache:     cache,
			}
			grp.Representative = sel.Select(grp.Members)
			grp.Keyword = extractor.Extract(grp.Names())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func summarize(method string, input, skipped int, groups []Group) *Result {
	stats := Stats{Input: input, Skipped: skipped, Groups: len(groups)}
	for _, g := range groups {
		if len(g.Members) > 1 {
			stats.MultiMember++
		}
	}
	return &Result{Method: method, Groups: groups, Stats: stats}
}
