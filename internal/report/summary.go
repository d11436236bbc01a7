package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/yana87ryo/data-analysis-training/internal/output"
)

// summarySection reports the input and grouping totals. Metadata values are
// preferred; documents read back from a master file only carry rows, so the
// totals are derived from them.
type summarySection struct {
	records     int
	uniqueNames int
	groups      int
	multiMember int
	totalCount  int
}

func (s *summarySection) Name() string        { return "summary" }
func (s *summarySection) Description() string { return "Input and grouping totals" }

func (s *summarySection) Analyze(doc output.Document, _ Options) error {
	md := doc.Metadata
	*s = summarySection{
		records:     md.Records,
		uniqueNames: md.UniqueNames,
		groups:      md.Groups,
		multiMember: md.MultiMember,
		totalCount:  md.TotalCount,
	}

	if s.uniqueNames == 0 {
		s.uniqueNames = len(doc.Rows)
	}
	if s.groups == 0 {
		s.groups = doc.GroupCount()
	}
	if s.multiMember == 0 || s.totalCount == 0 {
		multi, total := 0, 0
		for _, rows := range groupRows(doc) {
			if len(rows) > 1 {
				multi++
			}
			total += rows[0].GroupCount
		}
		if s.multiMember == 0 {
			s.multiMember = multi
		}
		if s.totalCount == 0 {
			s.totalCount = total
		}
	}
	return nil
}

func (s *summarySection) Render(w io.Writer) error {
	_, _ = fmt.Fprintf(w, "%s\n", SectionTitle("Summary"))
	_, _ = fmt.Fprintf(w, "-------\n")

	tbl := NewTable(
		Column{Header: "Metric"},
		Column{Header: "Value", Align: AlignRight},
	)
	if s.records > 0 {
		tbl.AddRow("Records", strconv.Itoa(s.records))
	}
	tbl.AddRow("Unique names", strconv.Itoa(s.uniqueNames))
	tbl.AddRow("Groups", strconv.Itoa(s.groups))
	tbl.AddRow("Multi-member groups", strconv.Itoa(s.multiMember))
	tbl.AddRow("Total count", strconv.Itoa(s.totalCount))

	if err := tbl.Render(w); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "\n")
	return nil
}
