// Package config handles .merchgroup.yaml configuration files.
package config

import (
	"github.com/yana87ryo/data-analysis-training/internal/grouping"
	"github.com/yana87ryo/data-analysis-training/internal/ingest"
	"github.com/yana87ryo/data-analysis-training/internal/report"
)

// Config represents the contents of a .merchgroup.yaml (or .merchgroup.toml) file.
type Config struct {
	Method            string   `yaml:"method,omitempty" toml:"method,omitempty"`
	Threshold         *float64 `yaml:"threshold,omitempty" toml:"threshold,omitempty"`
	PrefixLength      *int     `yaml:"prefix_length,omitempty" toml:"prefix_length,omitempty"`
	SampleCap         int      `yaml:"sample_cap,omitempty" toml:"sample_cap,omitempty"`
	Seed              *uint64  `yaml:"seed,omitempty" toml:"seed,omitempty"`
	Scorer            string   `yaml:"scorer,omitempty" toml:"scorer,omitempty"`
	Workers           int      `yaml:"workers,omitempty" toml:"workers,omitempty"`
	ProgressInterval  int      `yaml:"progress_interval,omitempty" toml:"progress_interval,omitempty"`
	OutputFormat      string   `yaml:"output_format,omitempty" toml:"output_format,omitempty"`
	ExcludeSingletons *bool    `yaml:"exclude_singletons,omitempty" toml:"exclude_singletons,omitempty"`

	Input   InputConfig   `yaml:"input,omitempty" toml:"input,omitempty"`
	Keyword KeywordConfig `yaml:"keyword,omitempty" toml:"keyword,omitempty"`
	Report  ReportConfig  `yaml:"report,omitempty" toml:"report,omitempty"`
}

// InputConfig selects and decodes the merchant-name column.
type InputConfig struct {
	Column      string `yaml:"column,omitempty" toml:"column,omitempty"`
	ColumnIndex *int   `yaml:"column_index,omitempty" toml:"column_index,omitempty"`
	Encoding    string `yaml:"encoding,omitempty" toml:"encoding,omitempty"`
	NoHeader    *bool  `yaml:"no_header,omitempty" toml:"no_header,omitempty"`
}

// KeywordConfig controls suffix stripping in keyword extraction. Suffixes
// replaces the built-in list; ExtraSuffixes is appended to whichever list
// is in effect.
type KeywordConfig struct {
	Suffixes      []string `yaml:"suffixes,omitempty" toml:"suffixes,omitempty"`
	ExtraSuffixes []string `yaml:"extra_suffixes,omitempty" toml:"extra_suffixes,omitempty"`
}

// ReportConfig controls the terminal report.
type ReportConfig struct {
	TopGroups int       `yaml:"top_groups,omitempty" toml:"top_groups,omitempty"`
	Coverage  []float64 `yaml:"coverage,omitempty" toml:"coverage,omitempty"`
}

// FileName is the expected config file name in the working directory.
const FileName = ".merchgroup.yaml"

// TOMLFileName is read when FileName does not exist.
const TOMLFileName = ".merchgroup.toml"

// DefaultOutputFormat is used when neither a flag nor a file sets one.
const DefaultOutputFormat = "csv"

// Defaults returns the built-in settings every file layer is merged onto.
func Defaults() *Config {
	return &Config{
		Method:           grouping.MethodExact,
		Threshold:        ptr(grouping.DefaultThreshold),
		PrefixLength:     ptr(grouping.DefaultPrefixLength),
		SampleCap:        grouping.DefaultSampleCap,
		Scorer:           grouping.ScorerRatcliff,
		ProgressInterval: grouping.DefaultProgressInterval,
		OutputFormat:     DefaultOutputFormat,
		Input: InputConfig{
			Column:   ingest.DefaultColumn,
			Encoding: ingest.DefaultEncoding,
		},
		Report: ReportConfig{
			TopGroups: report.DefaultTopGroups,
			Coverage:  append([]float64(nil), grouping.DefaultCoverageTargets...),
		},
	}
}

func ptr[T any](v T) *T { return &v }
