package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestValidate_EmptyConfig(t *testing.T) {
	assert.NoError(t, Validate(&Config{}))
}

func TestValidate_Defaults(t *testing.T) {
	assert.NoError(t, Validate(Defaults()))
}

func TestValidate_FieldErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"unknown method", Config{Method: "kmeans"}, `method: unknown method "kmeans" (available: exact, fast)`},
		{"threshold above one", Config{Threshold: ptr(1.5)}, "threshold: must be in (0.0, 1.0], got 1.5"},
		{"negative threshold", Config{Threshold: ptr(-0.1)}, "threshold: must be in (0.0, 1.0]"},
		{"zero threshold", Config{Threshold: ptr(0.0)}, "threshold: must be in (0.0, 1.0], got 0"},
		{"negative prefix", Config{PrefixLength: ptr(-1)}, "prefix_length: must be at least 1"},
		{"zero prefix", Config{PrefixLength: ptr(0)}, "prefix_length: must be at least 1, got 0"},
		{"unknown scorer", Config{Scorer: "jaro"}, `scorer: unknown scorer: "jaro"`},
		{"negative workers", Config{Workers: -2}, "workers: must be non-negative"},
		{"negative progress", Config{ProgressInterval: -1}, "progress_interval: must be non-negative"},
		{"unknown format", Config{OutputFormat: "sarif"}, `output_format: unknown format: "sarif"`},
		{"negative column index", Config{Input: InputConfig{ColumnIndex: intPtr(-1)}}, "input.column_index: must be non-negative"},
		{"unknown encoding", Config{Input: InputConfig{Encoding: "klingon"}}, "input.encoding:"},
		{"blank suffix", Config{Keyword: KeywordConfig{Suffixes: []string{"店", " "}}}, "keyword.suffixes[1]: must not be empty"},
		{"blank extra suffix", Config{Keyword: KeywordConfig{ExtraSuffixes: []string{""}}}, "keyword.extra_suffixes[0]: must not be empty"},
		{"negative top groups", Config{Report: ReportConfig{TopGroups: -1}}, "report.top_groups: must be non-negative"},
		{"coverage out of range", Config{Report: ReportConfig{Coverage: []float64{50, 120}}}, "report.coverage: targets must be in (0, 100], got 120"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config validation failed:")
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := &Config{
		Method:    "nope",
		Threshold: ptr(2.0),
		Workers:   -1,
	}
	err := Validate(cfg)
	require.Error(t, err)
	lines := strings.Split(err.Error(), "\n")
	assert.Len(t, lines, 4, "header plus one line per problem")
}

func TestValidate_ValidValues(t *testing.T) {
	cfg := &Config{
		Method:       "fast",
		Threshold:    ptr(1.0),
		PrefixLength: ptr(2),
		Scorer:       "levenshtein",
		OutputFormat: "xlsx",
		Input:        InputConfig{ColumnIndex: intPtr(0), Encoding: "shift_jis"},
		Keyword:      KeywordConfig{Suffixes: []string{}},
		Report:       ReportConfig{Coverage: []float64{100}},
	}
	assert.NoError(t, Validate(cfg))
}
