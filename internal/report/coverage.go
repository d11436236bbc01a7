// Copyright 2026 The Merchgroup Authors
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/yana87ryo/data-analysis-training/internal/grouping"
	"github.com/yana87ryo/data-analysis-training/internal/output"
)

// coverageSection reports how many top groups cover each volume target.
type coverageSection struct {
	points []grouping.CoveragePoint
	groups int
}

func (s *coverageSection) Name() string        { return "coverage" }
func (s *coverageSection) Description() string { return "Pareto coverage of total volume by top groups" }

func (s *coverageSection) Analyze(doc output.Document, _ Options) error {
	if len(doc.Coverage) == 0 {
		return fmt.Errorf("coverage: %w", ErrNoData)
	}
	s.points = doc.Coverage
	s.groups = doc.GroupCount()
	return nil
}

func (s *coverageSection) Render(w io.Writer) error {
	_, _ = fmt.Fprintf(w, "%s\n", SectionTitle("Pareto Coverage"))
	_, _ = fmt.Fprintf(w, "---------------\n")

	tbl := NewTable(
		Column{Header: "Target", Align: AlignRight},
		Column{Header: "Top groups", Align: AlignRight},
		Column{Header: "Share of groups", Align: AlignRight, Color: ColorGroupShare},
		Column{Header: "Smallest group", Align: AlignRight},
	)
	for _, p := range s.points {
		tbl.AddRow(
			strconv.FormatFloat(p.Target, 'f', -1, 64)+"%",
			strconv.Itoa(p.Groups),
			fmt.Sprintf("%.1f%%", p.GroupShare),
			strconv.Itoa(p.MinGroupCount),
		)
	}
	if err := tbl.Render(w); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "  (%d groups in total)\n\n", s.groups)
	return nil
}
