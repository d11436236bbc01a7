// Copyright 2026 The Merchgroup Authors
// SPDX-License-Identifier: MIT

// Package ingest reads merchant names out of transaction CSV exports and
// counts how often each raw spelling occurs.
package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// DefaultColumn is the header of the merchant name column in card
// transaction exports.
const DefaultColumn = "Merchant Name"

// StdinPath reads from standard input when passed as a path.
const StdinPath = "-"

// ErrColumnNotFound is returned when the configured header is missing.
var ErrColumnNotFound = errors.New("column not found")

// DefaultNullValues are cell values treated as missing, matching the usual
// dataframe conventions for CSV null markers.
var DefaultNullValues = []string{"", "NA", "N/A", "#N/A", "NULL", "null", "NaN", "nan", "n/a", "None", "<NA>"}

// ctxCheckEvery is how many records are read between context checks.
const ctxCheckEvery = 1024

// Options controls how the merchant column is located and decoded.
type Options struct {
	// Column is the header name to read. Ignored when ColumnIndex is set.
	Column string

	// ColumnIndex selects a zero-based column position instead of a header.
	ColumnIndex *int

	// NoHeader treats the first record as data; the column defaults to 0.
	NoHeader bool

	// Encoding is a character set label understood by LookupEncoding.
	Encoding string

	// NullValues are cell values treated as missing. Nil selects
	// DefaultNullValues.
	NullValues []string

	// OnFile, if set, is called after each file has been read.
	OnFile func(FileStats)
}

// FileStats describes one ingested file.
type FileStats struct {
	Path     string
	Records  int // data records, header excluded
	Missing  int // records whose merchant cell was missing
	Duration time.Duration
}

// Result holds the merged occurrence counts of every ingested file.
type Result struct {
	Counts  map[string]int
	Files   []FileStats
	Records int
	Missing int
}

// Unique returns the number of distinct raw names.
func (r *Result) Unique() int { return len(r.Counts) }

// Reader ingests CSV files with fixed options.
type Reader struct {
	opts  Options
	col   int // -1 until resolved from the header
	enc   encoding.Encoding
	nulls map[string]struct{}
}

// NewReader validates opts and returns a Reader.
func NewReader(opts Options) (*Reader, error) {
	enc, err := LookupEncoding(opts.Encoding)
	if err != nil {
		return nil, err
	}
	if opts.Column == "" {
		opts.Column = DefaultColumn
	}
	col := -1
	switch {
	case opts.ColumnIndex != nil && *opts.ColumnIndex < 0:
		return nil, fmt.Errorf("column index must be >= 0, got %d", *opts.ColumnIndex)
	case opts.ColumnIndex != nil:
		col = *opts.ColumnIndex
	case opts.NoHeader:
		col = 0
	}
	nullValues := opts.NullValues
	if nullValues == nil {
		nullValues = DefaultNullValues
	}
	nulls := make(map[string]struct{}, len(nullValues)+1)
	nulls[""] = struct{}{}
	for _, v := range nullValues {
		nulls[v] = struct{}{}
	}
	return &Reader{opts: opts, col: col, enc: enc, nulls: nulls}, nil
}

// ReadFiles ingests every path in order and merges the counts.
func (r *Reader) ReadFiles(ctx context.Context, paths []string) (*Result, error) {
	res := &Result{Counts: make(map[string]int)}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fs, err := r.readPath(ctx, path, res.Counts)
		if err != nil {
			return nil, err
		}
		res.Files = append(res.Files, fs)
		res.Records += fs.Records
		res.Missing += fs.Missing
		if r.opts.OnFile != nil {
			r.opts.OnFile(fs)
		}
	}
	return res, nil
}

func (r *Reader) readPath(ctx context.Context, path string, counts map[string]int) (FileStats, error) {
	if path == StdinPath {
		return r.Read(ctx, os.Stdin, "stdin", counts)
	}
	f, err := os.Open(path) //nolint:gosec // user-supplied input path
	if err != nil {
		return FileStats{}, fmt.Errorf("open input: %w", err)
	}
	defer f.Close() //nolint:errcheck // best-effort close on read-only file
	return r.Read(ctx, f, path, counts)
}

// Read ingests one CSV stream into counts. name labels errors and stats.
func (r *Reader) Read(ctx context.Context, in io.Reader, name string, counts map[string]int) (FileStats, error) {
	start := time.Now()
	fs := FileStats{Path: name}

	cr := csv.NewReader(transform.NewReader(in, r.enc.NewDecoder()))
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	col := r.col
	if !r.opts.NoHeader {
		header, err := cr.Read()
		if errors.Is(err, io.EOF) {
			fs.Duration = time.Since(start)
			return fs, nil
		}
		if err != nil {
			return fs, fmt.Errorf("read header of %s: %w", name, err)
		}
		if col < 0 {
			col, err = findColumn(header, r.opts.Column)
			if err != nil {
				return fs, fmt.Errorf("%s: %w", name, err)
			}
		} else if col >= len(header) {
			return fs, fmt.Errorf("%s: column index %d out of range (%d columns)", name, col, len(header))
		}
	}

	for {
		if fs.Records%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return fs, err
			}
		}
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fs, fmt.Errorf("read %s: %w", name, err)
		}
		fs.Records++

		var cell string
		if col < len(record) {
			cell = record[col]
		}
		if _, missing := r.nulls[cell]; missing {
			fs.Missing++
			continue
		}
		counts[cell]++
	}

	fs.Duration = time.Since(start)
	slog.Debug("ingested file", "path", name, "records", fs.Records, "missing", fs.Missing, "duration", fs.Duration)
	return fs, nil
}

func findColumn(header []string, column string) (int, error) {
	for i, h := range header {
		if strings.TrimSpace(h) == column {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q (available: %s)", ErrColumnNotFound, column, strings.Join(header, ", "))
}

// ExpandPaths resolves glob patterns into a sorted, de-duplicated file list.
// A literal path that does not exist, or a pattern matching nothing, is an
// error. StdinPath passes through unchanged.
func ExpandPaths(patterns []string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	for _, p := range patterns {
		if p == StdinPath {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
			continue
		}
		matches, err := filepath.Glob(p)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", p, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no input files match %q", p)
		}
		sort.Strings(matches)
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out, nil
}
