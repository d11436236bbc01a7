// Copyright 2026 The Merchgroup Authors
// SPDX-License-Identifier: MIT

// Package grouping collapses near-duplicate merchant name spellings into
// canonical groups. It normalizes raw names, scores them with a
// Ratcliff/Obershelp similarity ratio, clusters them either greedily against
// a threshold or by prefix bucket, and finalizes every group with a
// representative name and a keyword for partial matching.
//
// The package performs no I/O. Callers supply an in-memory slice of distinct
// raw names with occurrence counts and receive an immutable Result.
package grouping

import (
	"errors"
	"fmt"
	"sort"
)

// Sentinel errors returned before any clustering work begins.
var (
	ErrInvalidThreshold    = errors.New("threshold must be in (0, 1]")
	ErrInvalidPrefixLength = errors.New("prefix length must be >= 1")
	ErrDuplicateName       = errors.New("duplicate raw name")
	ErrNegativeCount       = errors.New("negative occurrence count")
)

// Clustering method names.
const (
	MethodExact = "exact"
	MethodFast  = "fast"
)

// RawName is a merchant name as observed in source data, with the number of
// records it appeared in.
type RawName struct {
	Name  string
	Count int
}

// Group is a set of raw names judged to belong to the same merchant.
type Group struct {
	// Members in the order they joined the group. Never empty.
	Members []RawName

	// Representative is the member chosen for display and rollup.
	Representative RawName

	// Keyword is a short normalized string usable for partial matching.
	// For singleton groups it is the member's normalized key.
	Keyword string

	// Count is the sum of member occurrence counts.
	Count int
}

// Names returns the raw member strings.
func (g Group) Names() []string {
	out := make([]string, len(g.Members))
	for i, m := range g.Members {
		out[i] = m.Name
	}
	return out
}

// Stats summarizes one clustering pass.
type Stats struct {
	Input       int // names supplied by the caller
	Skipped     int // names whose normalized key was empty
	Groups      int
	MultiMember int // groups with two or more members
}

// Result is the output of one clustering pass. It must be treated as
// read-only once returned.
type Result struct {
	Method string
	Groups []Group
	Stats  Stats
}

// Counts returns a name -> occurrence count map covering every member of
// every group.
func (r *Result) Counts() map[string]int {
	counts := make(map[string]int)
	for _, g := range r.Groups {
		for _, m := range g.Members {
			counts[m.Name] = m.Count
		}
	}
	return counts
}

// MultiMemberGroups returns the groups with more than one member, in result
// order.
func (r *Result) MultiMemberGroups() []Group {
	var out []Group
	for _, g := range r.Groups {
		if len(g.Members) > 1 {
			out = append(out, g)
		}
	}
	return out
}

// ProgressFunc observes clustering progress. done never exceeds total.
type ProgressFunc func(done, total int)

// DefaultProgressInterval is how many names are processed between progress
// callbacks.
const DefaultProgressInterval = 10000

// Dedupe merges entries sharing the same raw string by summing their counts
// and returns them sorted lexicographically. This is the canonical way to
// prepare input for Cluster and ClusterFast, which reject duplicates.
func Dedupe(names []RawName) []RawName {
	counts := make(map[string]int, len(names))
	for _, n := range names {
		counts[n.Name] += n.Count
	}
	return FromCounts(counts)
}

// FromCounts converts an occurrence counter into a sorted RawName slice.
func FromCounts(counts map[string]int) []RawName {
	out := make([]RawName, 0, len(counts))
	for name, c := range counts {
		out = append(out, RawName{Name: name, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// checkInput enforces the distinct-name and non-negative-count preconditions.
func checkInput(names []RawName) error {
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if n.Count < 0 {
			return fmt.Errorf("%w: %q has count %d", ErrNegativeCount, n.Name, n.Count)
		}
		if _, dup := seen[n.Name]; dup {
			return fmt.Errorf("%w: %q (aggregate counts with Dedupe first)", ErrDuplicateName, n.Name)
		}
		seen[n.Name] = struct{}{}
	}
	return nil
}

func sumCounts(members []RawName) int {
	total := 0
	for _, m := range members {
		total += m.Count
	}
	return total
}
