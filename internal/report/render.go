package report

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/yana87ryo/data-analysis-training/internal/output"
)

// Render writes the report header followed by each selected section. An
// empty filter selects every registered section. Sections without data are
// skipped.
func Render(w io.Writer, doc output.Document, filter []string, opts Options) error {
	opts = opts.withDefaults()
	if err := renderHeader(w, doc.Metadata); err != nil {
		return err
	}

	for _, name := range ResolveSections(filter) {
		sec := Get(name)
		if sec == nil {
			continue
		}
		if err := sec.Analyze(doc, opts); err != nil {
			if errors.Is(err, ErrNoData) {
				continue
			}
			return fmt.Errorf("section %s: %w", name, err)
		}
		if err := sec.Render(w); err != nil {
			return fmt.Errorf("section %s render: %w", name, err)
		}
	}
	return nil
}

func renderHeader(w io.Writer, md output.Metadata) error {
	var b strings.Builder
	b.WriteString("Merchant Grouping Report\n")
	b.WriteString("========================\n\n")
	if md.Method != "" {
		fmt.Fprintf(&b, "Method:     %s", md.Method)
		if md.Scorer != "" {
			fmt.Fprintf(&b, " (%s, threshold %g)", md.Scorer, md.Threshold)
		}
		b.WriteString("\n")
	}
	if len(md.Inputs) > 0 {
		fmt.Fprintf(&b, "Inputs:     %s\n", strings.Join(md.Inputs, ", "))
	}
	if !md.GeneratedAt.IsZero() {
		fmt.Fprintf(&b, "Generated:  %s\n", md.GeneratedAt.Format(time.RFC3339))
	}
	b.WriteString("\n")
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("render header: %w", err)
	}
	return nil
}

// ResolveSections determines which sections to run without printing warnings.
// If filter is empty, all registered sections are used.
func ResolveSections(filter []string) []string {
	if len(filter) == 0 {
		return List()
	}

	available := make(map[string]bool)
	for _, name := range List() {
		available[name] = true
	}

	var names []string
	for _, name := range filter {
		if available[name] {
			names = append(names, name)
		}
	}
	return names
}

// UnknownSections returns the names in filter that are not registered.
func UnknownSections(filter []string) []string {
	var unknown []string
	for _, name := range filter {
		if Get(name) == nil {
			unknown = append(unknown, name)
		}
	}
	return unknown
}
