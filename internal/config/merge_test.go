package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yana87ryo/data-analysis-training/internal/clusterer"
	"github.com/yana87ryo/data-analysis-training/internal/grouping"
	"github.com/yana87ryo/data-analysis-training/internal/ingest"
	"github.com/yana87ryo/data-analysis-training/internal/pipeline"
)

func boolPtr(b bool) *bool     { return &b }
func seedPtr(n uint64) *uint64 { return &n }

func TestLayer_OverWins(t *testing.T) {
	base := Defaults()
	over := &Config{
		Method:            "fast",
		Seed:              seedPtr(0),
		ExcludeSingletons: boolPtr(false),
		Input:             InputConfig{ColumnIndex: intPtr(2)},
		Report:            ReportConfig{Coverage: []float64{90}},
	}
	merged := Layer(base, over)

	assert.Equal(t, "fast", merged.Method)
	assert.InDelta(t, grouping.DefaultThreshold, *merged.Threshold, 1e-9, "unset fields fall through")
	require.NotNil(t, merged.Seed)
	assert.Equal(t, uint64(0), *merged.Seed)
	require.NotNil(t, merged.ExcludeSingletons)
	assert.False(t, *merged.ExcludeSingletons)
	assert.Equal(t, 2, *merged.Input.ColumnIndex)
	assert.Equal(t, ingest.DefaultColumn, merged.Input.Column)
	assert.Equal(t, []float64{90}, merged.Report.Coverage)

	assert.Equal(t, "exact", base.Method, "base is not modified")
}

func TestLayer_ExplicitZeroIsKept(t *testing.T) {
	merged := Layer(Defaults(), &Config{Threshold: ptr(0.0), PrefixLength: ptr(0)})
	require.NotNil(t, merged.Threshold)
	assert.Zero(t, *merged.Threshold)
	require.NotNil(t, merged.PrefixLength)
	assert.Zero(t, *merged.PrefixLength)

	err := Validate(merged)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "threshold: must be in (0.0, 1.0], got 0")
	assert.Contains(t, err.Error(), "prefix_length: must be at least 1, got 0")
}

func TestLayer_ExtraSuffixesAccumulate(t *testing.T) {
	global := &Config{Keyword: KeywordConfig{ExtraSuffixes: []string{"店舗"}}}
	repo := &Config{Keyword: KeywordConfig{ExtraSuffixes: []string{"営業所"}}}
	merged := Layer(Layer(Defaults(), global), repo)
	assert.Equal(t, []string{"店舗", "営業所"}, merged.Keyword.ExtraSuffixes)
	assert.Equal(t, []string{"店舗"}, global.Keyword.ExtraSuffixes)
}

func TestLayer_EmptySuffixListReplaces(t *testing.T) {
	merged := Layer(Defaults(), &Config{Keyword: KeywordConfig{Suffixes: []string{}}})
	require.NotNil(t, merged.Keyword.Suffixes)
	assert.Empty(t, merged.KeywordSuffixes())
}

func TestKeywordSuffixes(t *testing.T) {
	assert.Equal(t, grouping.DefaultKeywordSuffixes, (&Config{}).KeywordSuffixes())

	cfg := &Config{Keyword: KeywordConfig{Suffixes: []string{"a"}, ExtraSuffixes: []string{"b"}}}
	assert.Equal(t, []string{"a", "b"}, cfg.KeywordSuffixes())

	cfg = &Config{Keyword: KeywordConfig{ExtraSuffixes: []string{"店舗"}}}
	got := cfg.KeywordSuffixes()
	assert.Len(t, got, len(grouping.DefaultKeywordSuffixes)+1)
	assert.Equal(t, "店舗", got[len(got)-1])
}

func TestMerge_FileFillsZeroCLI(t *testing.T) {
	fileCfg := Layer(Defaults(), &Config{
		Method:            "fast",
		Seed:              seedPtr(9),
		Scorer:            "levenshtein",
		Workers:           3,
		ExcludeSingletons: boolPtr(true),
		Input:             InputConfig{ColumnIndex: intPtr(1), NoHeader: boolPtr(true), Encoding: "cp932"},
		Keyword:           KeywordConfig{ExtraSuffixes: []string{"店舗"}},
	})

	got := Merge(fileCfg, pipeline.Config{Inputs: []string{"a.csv"}})

	assert.Equal(t, []string{"a.csv"}, got.Inputs)
	assert.Equal(t, "fast", got.Method)
	assert.InDelta(t, grouping.DefaultThreshold, got.Params.Threshold, 1e-9)
	assert.Equal(t, grouping.DefaultPrefixLength, got.Params.PrefixLength)
	assert.Equal(t, grouping.DefaultSampleCap, got.Params.SampleCap)
	assert.Equal(t, uint64(9), got.Params.Seed)
	assert.Equal(t, grouping.Levenshtein{}, got.Params.Scorer)
	assert.Equal(t, 3, got.Params.Workers)
	assert.Equal(t, grouping.DefaultProgressInterval, got.Params.ProgressInterval)
	assert.Equal(t, "店舗", got.Params.KeywordSuffixes[len(got.Params.KeywordSuffixes)-1])
	require.NotNil(t, got.Ingest.ColumnIndex)
	assert.Equal(t, 1, *got.Ingest.ColumnIndex)
	assert.True(t, got.Ingest.NoHeader)
	assert.Equal(t, "cp932", got.Ingest.Encoding)
	assert.True(t, got.Export.ExcludeSingletons)
	assert.Equal(t, grouping.DefaultCoverageTargets, got.CoverageTargets)
}

func TestMerge_CLIWins(t *testing.T) {
	fileCfg := Layer(Defaults(), &Config{Method: "fast", Threshold: ptr(0.6), Scorer: "levenshtein"})
	cli := pipeline.Config{
		Method: "exact",
		Params: clusterer.Params{Threshold: 0.95, Scorer: grouping.RatcliffObershelp{}},
		Ingest: ingest.Options{Column: "Store"},
	}

	got := Merge(fileCfg, cli)
	assert.Equal(t, "exact", got.Method)
	assert.InDelta(t, 0.95, got.Params.Threshold, 1e-9)
	assert.Equal(t, grouping.RatcliffObershelp{}, got.Params.Scorer)
	assert.Equal(t, "Store", got.Ingest.Column)
}

func TestMerge_DefaultSuffixesLeftNil(t *testing.T) {
	got := Merge(Defaults(), pipeline.Config{})
	assert.Nil(t, got.Params.KeywordSuffixes, "nil selects the built-in list downstream")
	assert.Nil(t, got.Ingest.ColumnIndex)
}

func TestMerge_ProducesValidPipelineConfig(t *testing.T) {
	got := Merge(Defaults(), pipeline.Config{})
	assert.Empty(t, pipeline.ValidateConfig(got))
	_, err := pipeline.New(got)
	assert.NoError(t, err)
}
