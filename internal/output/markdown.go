package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/yana87ryo/data-analysis-training/internal/grouping"
)

func init() {
	RegisterFormatter(NewMarkdownFormatter())
}

// maxMarkdownMembers caps the member list printed per group.
const maxMarkdownMembers = 5

// MarkdownFormatter writes a human-readable Markdown summary of the groups.
type MarkdownFormatter struct {
	// TopGroups limits the group table. Zero prints every group.
	TopGroups int
}

// Compile-time interface check.
var _ Formatter = (*MarkdownFormatter)(nil)

// NewMarkdownFormatter returns a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Name returns the format name.
func (m *MarkdownFormatter) Name() string {
	return "markdown"
}

// Format writes the document as Markdown to w.
//
// The output includes:
//   - A title heading
//   - A summary line with method, names and groups
//   - A Pareto coverage table
//   - A group table with keyword, representative, members and running share
func (m *MarkdownFormatter) Format(doc Document, w io.Writer) error {
	if len(doc.Rows) == 0 {
		return nil
	}
	if err := writeHeader(w, doc); err != nil {
		return err
	}
	if err := writeCoverageTable(w, doc.Coverage); err != nil {
		return err
	}
	return writeGroupTable(w, groupRows(doc.Rows), m.TopGroups)
}

// writeHeader writes the Markdown title and summary line.
func writeHeader(w io.Writer, doc Document) error {
	if _, err := fmt.Fprintf(w, "# Merchant Grouping Results\n\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	md := doc.Metadata
	method := md.Method
	if method == "" {
		method = "unknown"
	}
	if _, err := fmt.Fprintf(w, "**Method:** %s | **Names:** %d | **Groups:** %d | **Multi-member groups:** %d\n\n",
		method, len(doc.Rows), doc.GroupCount(), md.MultiMember); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

// writeCoverageTable writes the Pareto coverage checkpoints.
func writeCoverageTable(w io.Writer, points []grouping.CoveragePoint) error {
	if len(points) == 0 {
		return nil
	}
	var b strings.Builder
	b.WriteString("## Coverage\n\n")
	b.WriteString("| Target | Groups needed | Share of groups | Smallest group count |\n")
	b.WriteString("|-------:|--------------:|----------------:|---------------------:|\n")
	for _, p := range points {
		fmt.Fprintf(&b, "| %g%% | %d | %.1f%% | %d |\n", p.Target, p.Groups, p.GroupShare, p.MinGroupCount)
	}
	b.WriteString("\n")
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write coverage table: %w", err)
	}
	return nil
}

// writeGroupTable writes one line per group.
func writeGroupTable(w io.Writer, groups [][]grouping.Row, top int) error {
	if top > 0 && top < len(groups) {
		groups = groups[:top]
	}
	var b strings.Builder
	b.WriteString("## Groups\n\n")
	b.WriteString("| # | Keyword | Representative | Members | Group count | Cumulative % |\n")
	b.WriteString("|--:|---------|----------------|---------|------------:|-------------:|\n")
	for _, rows := range groups {
		first := rows[0]
		rep := first.Representative
		if rep == "" {
			rep = first.MerchantName
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %d | %.2f |\n",
			first.Rank, escapeCell(first.Keyword), escapeCell(rep), memberList(rows), first.GroupCount, first.CumulativePercent)
	}
	b.WriteString("\n")
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write group table: %w", err)
	}
	return nil
}

func memberList(rows []grouping.Row) string {
	n := min(len(rows), maxMarkdownMembers)
	parts := make([]string, 0, n+1)
	for _, r := range rows[:n] {
		parts = append(parts, fmt.Sprintf("%s (%d)", escapeCell(r.MerchantName), r.Count))
	}
	if extra := len(rows) - n; extra > 0 {
		parts = append(parts, fmt.Sprintf("... and %d more", extra))
	}
	return strings.Join(parts, "<br>")
}

// escapeCell keeps pipes and newlines from breaking the table.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
