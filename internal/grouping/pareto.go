// Copyright 2026 The Merchgroup Authors
// SPDX-License-Identifier: MIT

package grouping

import (
	"math"
	"sort"
)

// Row is one line of the grouping master table: a member name with its own
// count, its group's aggregate count and the running Pareto totals of the
// group it belongs to.
type Row struct {
	Rank              int     `json:"rank" msgpack:"rank"`
	Keyword           string  `json:"keyword" msgpack:"keyword"`
	MerchantName      string  `json:"merchant_name" msgpack:"merchant_name"`
	Representative    string  `json:"representative" msgpack:"representative"`
	Count             int     `json:"count" msgpack:"count"`
	GroupCount        int     `json:"group_count" msgpack:"group_count"`
	CumulativeCount   int     `json:"cumsum_count" msgpack:"cumsum_count"`
	CumulativePercent float64 `json:"cumsum_percent" msgpack:"cumsum_percent"`
}

// ExportOptions controls ExportTable.
type ExportOptions struct {
	// ExcludeSingletons drops one-member groups from the table. They stay in
	// the Result either way.
	ExcludeSingletons bool
}

// ExportTable flattens groups into rows sorted by group aggregate count,
// largest first (ties keep group order). Aggregates are recomputed from
// counts; names missing from counts contribute zero. Cumulative figures are
// per group over the exported groups only, and the percentage is rounded to
// two decimals.
func ExportTable(groups []Group, counts map[string]int, opts ExportOptions) []Row {
	type ranked struct {
		group Group
		total int
	}
	var selected []ranked
	grand := 0
	for _, g := range groups {
		if opts.ExcludeSingletons && len(g.Members) < 2 {
			continue
		}
		total := 0
		for _, m := range g.Members {
			total += counts[m.Name]
		}
		grand += total
		selected = append(selected, ranked{group: g, total: total})
	}
	sort.SliceStable(selected, func(i, j int) bool { return selected[i].total > selected[j].total })

	var rows []Row
	cumulative := 0
	for i, r := range selected {
		cumulative += r.total
		pct := 0.0
		if grand > 0 {
			pct = math.Round(float64(cumulative)/float64(grand)*100*100) / 100
		}
		keyword := r.group.Keyword
		if keyword == "" {
			keyword = Normalize(r.group.Members[0].Name)
		}
		for _, m := range r.group.Members {
			rows = append(rows, Row{
				Rank:              i + 1,
				Keyword:           keyword,
				MerchantName:      m.Name,
				Representative:    r.group.Representative.Name,
				Count:             counts[m.Name],
				GroupCount:        r.total,
				CumulativeCount:   cumulative,
				CumulativePercent: pct,
			})
		}
	}
	return rows
}

// DefaultCoverageTargets are the Pareto checkpoints reported by default.
var DefaultCoverageTargets = []float64{50, 80, 90, 95, 99}

// CoveragePoint answers "how many top groups cover Target percent of volume".
type CoveragePoint struct {
	Target float64 `json:"target"`
	// Groups is the number of top-ranked groups needed to reach Target.
	Groups int `json:"groups"`
	// GroupShare is Groups as a percentage of all exported groups.
	GroupShare float64 `json:"group_share"`
	// MinGroupCount is the aggregate count of the last group needed.
	MinGroupCount int `json:"min_group_count"`
}

// Coverage computes coverage checkpoints from ExportTable rows. Targets that
// are never reached (for example above 100 or with zero volume) are omitted.
func Coverage(rows []Row, targets []float64) []CoveragePoint {
	type level struct {
		count      int
		cumulative int
	}
	var levels []level
	lastRank := 0
	for _, r := range rows {
		if r.Rank == lastRank {
			continue
		}
		lastRank = r.Rank
		levels = append(levels, level{count: r.GroupCount, cumulative: r.CumulativeCount})
	}
	if len(levels) == 0 {
		return nil
	}
	grand := levels[len(levels)-1].cumulative
	if grand == 0 {
		return nil
	}

	var out []CoveragePoint
	for _, target := range targets {
		idx := sort.Search(len(levels), func(i int) bool {
			return float64(levels[i].cumulative)/float64(grand)*100 >= target
		})
		if idx >= len(levels) {
			continue
		}
		out = append(out, CoveragePoint{
			Target:        target,
			Groups:        idx + 1,
			GroupShare:    math.Round(float64(idx+1)/float64(len(levels))*100*10) / 10,
			MinGroupCount: levels[idx].count,
		})
	}
	return out
}
