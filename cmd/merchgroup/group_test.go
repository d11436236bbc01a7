package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/yana87ryo/data-analysis-training/internal/config"
	"github.com/yana87ryo/data-analysis-training/internal/grouping"
	"github.com/yana87ryo/data-analysis-training/internal/output"
	"github.com/yana87ryo/data-analysis-training/internal/testable"
)

func requireExitCode(t *testing.T, err error, code int) *exitCodeError {
	t.Helper()
	require.Error(t, err)
	var ece *exitCodeError
	require.True(t, errors.As(err, &ece), "expected exitCodeError, got %T: %v", err, err)
	assert.Equal(t, code, ece.ExitCode())
	return ece
}

func decodeDocument(t *testing.T, out string) output.Document {
	t.Helper()
	var doc output.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	return doc
}

func TestGroupCmd_Flags(t *testing.T) {
	for _, name := range []string{
		"config", "column", "column-index", "encoding", "no-header", "method", "threshold",
		"prefix-length", "scorer", "sample-cap", "seed", "workers", "progress-interval",
		"exclude-singletons", "coverage", "format", "output",
	} {
		assert.NotNil(t, groupCmd.Flags().Lookup(name), "flag --%s", name)
	}
}

func TestGroup_CSVToStdout(t *testing.T) {
	dir := isolate(t)
	in := writeTestFile(t, dir, "tx.csv", sampleCSV)

	out, _, err := execute(t, "group", in)
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(out, "\ufeff"), "master CSV starts with a BOM")
	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(out, "\ufeff")), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, strings.Join(output.CSVHeader, ","), lines[0])
	assert.ElementsMatch(t, []string{
		"cafe y,Cafe Y,2,3,3,75.00",
		"cafe y,CAFE Y,1,3,3,75.00",
	}, lines[1:3])
	assert.Equal(t, "book z,Book Z,1,1,4,100.00", lines[3])
}

func TestGroup_JSONMetadata(t *testing.T) {
	dir := isolate(t)
	in := writeTestFile(t, dir, "tx.csv", sampleCSV)

	out, _, err := execute(t, "group", in, "-f", "json")
	require.NoError(t, err)

	doc := decodeDocument(t, out)
	md := doc.Metadata
	assert.NotEmpty(t, md.RunID)
	assert.Equal(t, grouping.MethodExact, md.Method)
	assert.Equal(t, grouping.ScorerRatcliff, md.Scorer)
	assert.InDelta(t, grouping.DefaultThreshold, md.Threshold, 1e-9)
	assert.Equal(t, []string{in}, md.Inputs)
	assert.Equal(t, 4, md.Records)
	assert.Equal(t, 3, md.UniqueNames)
	assert.Equal(t, 2, md.Groups)
	assert.Equal(t, 1, md.MultiMember)
	assert.Equal(t, 4, md.TotalCount)
	assert.False(t, md.GeneratedAt.IsZero())

	assert.Len(t, doc.Rows, 3)
	require.NotEmpty(t, doc.Coverage)
	assert.InDelta(t, 50.0, doc.Coverage[0].Target, 1e-9)
	assert.Equal(t, 1, doc.Coverage[0].Groups)
}

func TestGroup_FastMethod(t *testing.T) {
	dir := isolate(t)
	in := writeTestFile(t, dir, "tx.csv", sampleCSV)

	out, _, err := execute(t, "group", in, "-f", "json", "--method", "fast", "--prefix-length", "2")
	require.NoError(t, err)

	md := decodeDocument(t, out).Metadata
	assert.Equal(t, grouping.MethodFast, md.Method)
	assert.Equal(t, 2, md.PrefixLength)
	assert.Zero(t, md.Threshold)
	assert.Equal(t, 2, md.Groups)
}

func TestGroup_GlobInputsMerge(t *testing.T) {
	dir := isolate(t)
	writeTestFile(t, dir, "a.csv", sampleCSV)
	writeTestFile(t, dir, "b.csv", "Merchant Name\nBook Z\nBook Z\nBook Z\n")

	out, _, err := execute(t, "group", filepath.Join(dir, "*.csv"), "-f", "json")
	require.NoError(t, err)

	doc := decodeDocument(t, out)
	assert.Len(t, doc.Metadata.Inputs, 2)
	assert.Equal(t, 7, doc.Metadata.Records)
	require.NotEmpty(t, doc.Rows)
	assert.Equal(t, "Book Z", doc.Rows[0].MerchantName, "book z now has the largest volume")
	assert.Equal(t, 4, doc.Rows[0].GroupCount)
}

func TestGroup_ExcludeSingletonsAndCoverage(t *testing.T) {
	dir := isolate(t)
	in := writeTestFile(t, dir, "tx.csv", sampleCSV)

	out, _, err := execute(t, "group", in, "-f", "json", "--exclude-singletons", "--coverage", "60,100")
	require.NoError(t, err)

	doc := decodeDocument(t, out)
	require.Len(t, doc.Rows, 2)
	for _, r := range doc.Rows {
		assert.Equal(t, "cafe y", r.Keyword)
		assert.InDelta(t, 100.0, r.CumulativePercent, 1e-9)
	}
	require.Len(t, doc.Coverage, 2)
	assert.InDelta(t, 60.0, doc.Coverage[0].Target, 1e-9)
	assert.InDelta(t, 100.0, doc.Coverage[1].Target, 1e-9)
}

func TestGroup_NoHeaderColumnIndex(t *testing.T) {
	dir := isolate(t)
	in := writeTestFile(t, dir, "raw.csv", "1,Cafe Y\n2,CAFE Y\n3,Book Z\n")

	out, _, err := execute(t, "group", in, "-f", "json", "--no-header", "--column-index", "1")
	require.NoError(t, err)

	doc := decodeDocument(t, out)
	assert.Equal(t, 3, doc.Metadata.Records)
	assert.Equal(t, 2, doc.Metadata.Groups)
}

func TestGroup_ColumnByName(t *testing.T) {
	dir := isolate(t)
	in := writeTestFile(t, dir, "tx.csv", "Store,Amount\nCafe Y,1\nCafe Y,2\n")

	out, _, err := execute(t, "group", in, "-f", "json", "--column", "Store")
	require.NoError(t, err)
	assert.Equal(t, 1, decodeDocument(t, out).Metadata.UniqueNames)
}

func TestGroup_ColumnNotFound(t *testing.T) {
	dir := isolate(t)
	in := writeTestFile(t, dir, "tx.csv", sampleCSV)

	_, _, err := execute(t, "group", in, "--column", "Store")
	ece := requireExitCode(t, err, ExitInvalidArgs)
	assert.Contains(t, ece.Error(), `"Store"`)
	assert.Contains(t, ece.Error(), "Merchant Name", "available columns are listed")
}

func TestGroup_NoMatchingInput(t *testing.T) {
	dir := isolate(t)

	_, _, err := execute(t, "group", filepath.Join(dir, "missing-*.csv"))
	ece := requireExitCode(t, err, ExitInvalidArgs)
	assert.Contains(t, ece.Error(), "no input files match")
}

func TestGroup_InputStatError(t *testing.T) {
	dir := isolate(t)
	in := writeTestFile(t, dir, "tx.csv", sampleCSV)
	withMockFS(t, &testable.MockFileSystem{
		StatFn: func(string) (os.FileInfo, error) { return nil, fmt.Errorf("mock stat error") },
	})

	_, _, err := execute(t, "group", in)
	ece := requireExitCode(t, err, ExitInvalidArgs)
	assert.Contains(t, ece.Error(), "mock stat error")
}

func TestGroup_InvalidFlags(t *testing.T) {
	dir := isolate(t)
	in := writeTestFile(t, dir, "tx.csv", sampleCSV)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown method", []string{"--method", "kmeans"}, `"kmeans"`},
		{"unknown scorer", []string{"--scorer", "jaro"}, `unknown scorer: "jaro"`},
		{"threshold out of range", []string{"--threshold", "1.5"}, "got 1.5"},
		{"zero threshold", []string{"--threshold", "0"}, "Threshold: must be in (0, 1], got 0"},
		{"zero prefix length", []string{"--method", "fast", "--prefix-length", "0"}, "PrefixLength: must be >= 1, got 0"},
		{"unknown format", []string{"--format", "sarif"}, `unknown format: "sarif"`},
		{"unknown encoding", []string{"--encoding", "klingon"}, "klingon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, append([]string{"group", in}, tt.args...)...)
			ece := requireExitCode(t, err, ExitInvalidArgs)
			assert.Contains(t, ece.Error(), tt.want)
		})
	}
}

func TestGroup_BinaryFormatNeedsOutput(t *testing.T) {
	dir := isolate(t)
	in := writeTestFile(t, dir, "tx.csv", sampleCSV)

	for _, format := range []string{"xlsx", "msgpack"} {
		_, _, err := execute(t, "group", in, "-f", format)
		ece := requireExitCode(t, err, ExitInvalidArgs)
		assert.Contains(t, ece.Error(), "--output")
	}
}

func TestGroup_XLSXToFile(t *testing.T) {
	dir := isolate(t)
	in := writeTestFile(t, dir, "tx.csv", sampleCSV)
	outPath := filepath.Join(dir, "master.xlsx")
	mock := &testable.MockFileSystem{}
	withMockFS(t, mock)

	stdout, _, err := execute(t, "group", in, "-f", "xlsx", "-o", outPath)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Equal(t, []string{outPath}, mock.Created)

	f, err := excelize.OpenFile(outPath)
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck // test cleanup
	rows, err := f.GetRows("Groups")
	require.NoError(t, err)
	assert.Len(t, rows, 4, "header plus three member rows")
}

func TestGroup_MsgpackRoundTrip(t *testing.T) {
	dir := isolate(t)
	in := writeTestFile(t, dir, "tx.csv", sampleCSV)
	outPath := filepath.Join(dir, "run.msgpack")

	_, _, err := execute(t, "group", in, "-f", "msgpack", "-o", outPath)
	require.NoError(t, err)

	f, err := os.Open(outPath)
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck // test cleanup
	doc, err := output.ReadMsgpack(f)
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Metadata.Groups)
	assert.Len(t, doc.Rows, 3)
}

func TestGroup_CreateOutputError(t *testing.T) {
	dir := isolate(t)
	in := writeTestFile(t, dir, "tx.csv", sampleCSV)
	withMockFS(t, &testable.MockFileSystem{
		CreateFn: func(string) (*os.File, error) { return nil, fmt.Errorf("mock create error") },
	})

	_, _, err := execute(t, "group", in, "-o", "out.csv")
	ece := requireExitCode(t, err, ExitInvalidArgs)
	assert.Contains(t, ece.Error(), "cannot create output file")
	assert.Contains(t, ece.Error(), "mock create error")
}

func TestGroup_RepoConfig(t *testing.T) {
	dir := isolate(t)
	in := writeTestFile(t, dir, "tx.csv", sampleCSV)
	writeTestFile(t, dir, config.FileName, "output_format: json\nexclude_singletons: true\nreport:\n  coverage: [90]\n")

	out, _, err := execute(t, "group", in)
	require.NoError(t, err)

	doc := decodeDocument(t, out)
	assert.Len(t, doc.Rows, 2, "singletons excluded by config")
	require.Len(t, doc.Coverage, 1)
	assert.InDelta(t, 90.0, doc.Coverage[0].Target, 1e-9)
}

func TestGroup_FlagsOverrideConfig(t *testing.T) {
	dir := isolate(t)
	in := writeTestFile(t, dir, "tx.csv", sampleCSV)
	writeTestFile(t, dir, config.FileName, "method: fast\noutput_format: markdown\n")

	out, _, err := execute(t, "group", in, "--method", "exact", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, grouping.MethodExact, decodeDocument(t, out).Metadata.Method)
}

func TestGroup_ExplicitTOMLConfig(t *testing.T) {
	dir := isolate(t)
	in := writeTestFile(t, dir, "tx.csv", sampleCSV)
	cfgPath := writeTestFile(t, dir, "conf/group.toml", "output_format = \"json\"\nscorer = \"levenshtein\"\n")

	out, _, err := execute(t, "group", in, "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, grouping.ScorerLevenshtein, decodeDocument(t, out).Metadata.Scorer)
}

func TestGroup_InvalidConfig(t *testing.T) {
	dir := isolate(t)
	in := writeTestFile(t, dir, "tx.csv", sampleCSV)
	writeTestFile(t, dir, config.FileName, "threshold: 2\nworkers: -1\n")

	_, _, err := execute(t, "group", in)
	ece := requireExitCode(t, err, ExitInvalidArgs)
	assert.Contains(t, ece.Error(), "config validation failed")
	assert.Contains(t, ece.Error(), "workers")
}

func TestGroup_ZeroParamsInConfigFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"threshold", "threshold: 0\n", "threshold: must be in (0.0, 1.0], got 0"},
		{"prefix length", "method: fast\nprefix_length: 0\n", "prefix_length: must be at least 1, got 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			in := writeTestFile(t, dir, "tx.csv", sampleCSV)
			writeTestFile(t, dir, config.FileName, tt.content)

			_, _, err := execute(t, "group", in)
			ece := requireExitCode(t, err, ExitInvalidArgs)
			assert.Contains(t, ece.Error(), tt.want)
		})
	}
}

func TestGroup_Canceled(t *testing.T) {
	dir := isolate(t)
	in := writeTestFile(t, dir, "tx.csv", sampleCSV)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	groupCmd.SetContext(ctx)
	t.Cleanup(func() { groupCmd.SetContext(context.Background()) })

	_, _, err := execute(t, "group", in)
	requireExitCode(t, err, ExitCanceled)
}

func TestGroup_SeedIsDeterministic(t *testing.T) {
	dir := isolate(t)
	var csv strings.Builder
	csv.WriteString("Merchant Name\n")
	for i := range 30 {
		fmt.Fprintf(&csv, "Cafe Y %d\n", i)
	}
	in := writeTestFile(t, dir, "tx.csv", csv.String())

	run := func() []grouping.Row {
		out, _, err := execute(t, "group", in, "-f", "json", "--seed", "42", "--sample-cap", "5", "--workers", "2")
		require.NoError(t, err)
		return decodeDocument(t, out).Rows
	}
	first := run()
	require.NotEmpty(t, first)
	assert.Equal(t, first, run())
}

func TestRunError(t *testing.T) {
	assert.Equal(t, ExitCanceled, runError(fmt.Errorf("read: %w", context.Canceled)).ExitCode())
	assert.Equal(t, ExitCanceled, runError(context.DeadlineExceeded).ExitCode())
	assert.Equal(t, ExitRunFailure, runError(errors.New("line 3: bad quote")).ExitCode())
}
