// Copyright 2026 The Merchgroup Authors
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

func init() {
	RegisterFormatter(NewXLSXFormatter())
}

// Sheet names used by XLSXFormatter.
const (
	SheetGroups   = "Groups"
	SheetCoverage = "Coverage"
)

// XLSXFormatter writes the master table and coverage checkpoints as an
// Excel workbook. Rows are streamed so large tables do not build a full
// cell model in memory.
type XLSXFormatter struct{}

// Compile-time interface checks.
var (
	_ Formatter       = (*XLSXFormatter)(nil)
	_ BinaryFormatter = (*XLSXFormatter)(nil)
)

// NewXLSXFormatter returns a new XLSXFormatter.
func NewXLSXFormatter() *XLSXFormatter {
	return &XLSXFormatter{}
}

// Name returns the format name.
func (x *XLSXFormatter) Name() string {
	return "xlsx"
}

// Binary reports that workbooks are not terminal output.
func (x *XLSXFormatter) Binary() bool { return true }

// Format writes the workbook to w.
func (x *XLSXFormatter) Format(doc Document, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck // in-memory workbook

	if err := f.SetSheetName("Sheet1", SheetGroups); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := writeGroupSheet(f, doc, headerStyle); err != nil {
		return err
	}
	if _, err := f.NewSheet(SheetCoverage); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if err := writeCoverageSheet(f, doc, headerStyle); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func writeGroupSheet(f *excelize.File, doc Document, headerStyle int) error {
	sw, err := f.NewStreamWriter(SheetGroups)
	if err != nil {
		return fmt.Errorf("open stream writer: %w", err)
	}
	if err := sw.SetColWidth(1, 2, 30); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	header := make([]any, 0, len(CSVHeader)+1)
	header = append(header, excelize.Cell{StyleID: headerStyle, Value: "rank"})
	for _, h := range CSVHeader {
		header = append(header, excelize.Cell{StyleID: headerStyle, Value: h})
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("write header row: %w", err)
	}

	for i, r := range doc.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{r.Rank, r.Keyword, r.MerchantName, r.Count, r.GroupCount, r.CumulativeCount, r.CumulativePercent}
		if err := sw.SetRow(cell, values); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush sheet: %w", err)
	}
	return nil
}

func writeCoverageSheet(f *excelize.File, doc Document, headerStyle int) error {
	headers := []string{"target_percent", "groups_needed", "group_share_percent", "min_group_count"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetCoverage, cell, h); err != nil {
			return fmt.Errorf("write coverage header: %w", err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(SheetCoverage, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("style coverage header: %w", err)
	}
	for i, p := range doc.Coverage {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetCoverage, cell, &[]any{p.Target, p.Groups, p.GroupShare, p.MinGroupCount}); err != nil {
			return fmt.Errorf("write coverage row: %w", err)
		}
	}
	return nil
}
