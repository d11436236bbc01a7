// Copyright 2026 The Merchgroup Authors
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/yana87ryo/data-analysis-training/internal/grouping"
)

func init() {
	RegisterFormatter(NewCSVFormatter())
}

// CSVHeader is the column layout of the grouping master file.
var CSVHeader = []string{"keyword", "merchant_name", "count", "group_count", "cumsum_count", "cumsum_percent"}

// CSVFormatter writes the grouping master table as CSV.
type CSVFormatter struct {
	// NoBOM omits the UTF-8 byte order mark that spreadsheet applications
	// need to detect the encoding.
	NoBOM bool
}

// Compile-time interface check.
var _ Formatter = (*CSVFormatter)(nil)

// NewCSVFormatter returns a CSVFormatter that writes a BOM.
func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

// Name returns the format name.
func (f *CSVFormatter) Name() string {
	return "csv"
}

// Format writes one line per member row. Metadata and coverage are not part
// of the master file.
func (f *CSVFormatter) Format(doc Document, w io.Writer) error {
	if !f.NoBOM {
		if _, err := io.WriteString(w, "\ufeff"); err != nil {
			return fmt.Errorf("write bom: %w", err)
		}
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range doc.Rows {
		record := []string{
			r.Keyword,
			r.MerchantName,
			strconv.Itoa(r.Count),
			strconv.Itoa(r.GroupCount),
			strconv.Itoa(r.CumulativeCount),
			formatPercent(r.CumulativePercent),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func formatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64)
}

// ReadCSV loads rows from a master file written by CSVFormatter. A leading
// BOM is accepted. Ranks are reconstructed from changes in group_count and
// cumsum_count, and Representative is left empty.
func ReadCSV(r io.Reader) ([]grouping.Row, error) {
	cr := csv.NewReader(transform.NewReader(r, unicode.UTF8BOM.NewDecoder()))
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read master header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[h] = i
	}
	for _, want := range CSVHeader {
		if _, ok := col[want]; !ok {
			return nil, fmt.Errorf("master file is missing column %q", want)
		}
	}

	var rows []grouping.Row
	rank := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read master file: %w", err)
		}
		line, _ := cr.FieldPos(0)
		row := grouping.Row{
			Keyword:      rec[col["keyword"]],
			MerchantName: rec[col["merchant_name"]],
		}
		ints := []struct {
			name string
			dst  *int
		}{
			{"count", &row.Count},
			{"group_count", &row.GroupCount},
			{"cumsum_count", &row.CumulativeCount},
		}
		for _, f := range ints {
			v, err := strconv.Atoi(rec[col[f.name]])
			if err != nil {
				return nil, fmt.Errorf("line %d: bad %s: %w", line, f.name, err)
			}
			*f.dst = v
		}
		row.CumulativePercent, err = strconv.ParseFloat(rec[col["cumsum_percent"]], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad cumsum_percent: %w", line, err)
		}

		if n := len(rows); n == 0 || rows[n-1].CumulativeCount != row.CumulativeCount || rows[n-1].GroupCount != row.GroupCount {
			rank++
		}
		row.Rank = rank
		rows = append(rows, row)
	}
	return rows, nil
}
