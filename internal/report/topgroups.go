// Copyright 2026 The Merchgroup Authors
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yana87ryo/data-analysis-training/internal/grouping"
	"github.com/yana87ryo/data-analysis-training/internal/output"
)

// topGroupsSection lists the largest groups that merged more than one
// spelling.
type topGroupsSection struct {
	groups     [][]grouping.Row
	maxMembers int
	remaining  int
}

func (s *topGroupsSection) Name() string        { return "top-groups" }
func (s *topGroupsSection) Description() string { return "Largest groups that merged several spellings" }

func (s *topGroupsSection) Analyze(doc output.Document, opts Options) error {
	if len(doc.Rows) == 0 {
		return fmt.Errorf("top-groups: %w", ErrNoData)
	}
	s.groups = nil
	s.maxMembers = opts.MaxMembers
	s.remaining = 0
	for _, rows := range groupRows(doc) {
		if len(rows) < 2 {
			continue
		}
		if len(s.groups) < opts.TopGroups {
			s.groups = append(s.groups, rows)
		} else {
			s.remaining++
		}
	}
	return nil
}

func (s *topGroupsSection) Render(w io.Writer) error {
	_, _ = fmt.Fprintf(w, "%s\n", SectionTitle("Top Multi-member Groups"))
	_, _ = fmt.Fprintf(w, "-----------------------\n")

	if len(s.groups) == 0 {
		_, _ = fmt.Fprintf(w, "  No groups with more than one member.\n\n")
		return nil
	}

	tbl := NewTable(
		Column{Header: "Rank", Align: AlignRight},
		Column{Header: "Representative"},
		Column{Header: "Keyword"},
		Column{Header: "Size", Align: AlignRight, Color: ColorMemberCount},
		Column{Header: "Count", Align: AlignRight},
		Column{Header: "Cum %", Align: AlignRight},
		Column{Header: "Members"},
	)
	for _, rows := range s.groups {
		first := rows[0]
		rep := first.Representative
		if rep == "" {
			rep = first.MerchantName
		}
		tbl.AddRow(
			strconv.Itoa(first.Rank),
			rep,
			first.Keyword,
			strconv.Itoa(len(rows)),
			strconv.Itoa(first.GroupCount),
			fmt.Sprintf("%.2f", first.CumulativePercent),
			memberSummary(rows, s.maxMembers),
		)
	}
	if err := tbl.Render(w); err != nil {
		return err
	}
	if s.remaining > 0 {
		_, _ = fmt.Fprintf(w, "  ... %d more multi-member groups\n", s.remaining)
	}
	_, _ = fmt.Fprintf(w, "\n")
	return nil
}

// memberSummary joins up to n member names and counts the rest.
func memberSummary(rows []grouping.Row, n int) string {
	shown := min(len(rows), n)
	names := make([]string, 0, shown+1)
	for _, r := range rows[:shown] {
		names = append(names, r.MerchantName)
	}
	if extra := len(rows) - shown; extra > 0 {
		names = append(names, fmt.Sprintf("... and %d more", extra))
	}
	return strings.Join(names, ", ")
}

// groupRows splits the document rows into per-group slices in rank order.
func groupRows(doc output.Document) [][]grouping.Row {
	var out [][]grouping.Row
	for i, r := range doc.Rows {
		if i == 0 || r.Rank != doc.Rows[i-1].Rank {
			out = append(out, nil)
		}
		out[len(out)-1] = append(out[len(out)-1], r)
	}
	return out
}
