package config

import (
	"github.com/yana87ryo/data-analysis-training/internal/grouping"
	"github.com/yana87ryo/data-analysis-training/internal/pipeline"
)

// Layer returns base with every field set in over applied on top. Zero
// values in over fall through to base. Neither argument is modified.
func Layer(base, over *Config) *Config {
	merged := *base

	if over.Method != "" {
		merged.Method = over.Method
	}
	if over.Threshold != nil {
		merged.Threshold = over.Threshold
	}
	if over.PrefixLength != nil {
		merged.PrefixLength = over.PrefixLength
	}
	if over.SampleCap != 0 {
		merged.SampleCap = over.SampleCap
	}
	if over.Seed != nil {
		merged.Seed = over.Seed
	}
	if over.Scorer != "" {
		merged.Scorer = over.Scorer
	}
	if over.Workers != 0 {
		merged.Workers = over.Workers
	}
	if over.ProgressInterval != 0 {
		merged.ProgressInterval = over.ProgressInterval
	}
	if over.OutputFormat != "" {
		merged.OutputFormat = over.OutputFormat
	}
	if over.ExcludeSingletons != nil {
		merged.ExcludeSingletons = over.ExcludeSingletons
	}

	if over.Input.Column != "" {
		merged.Input.Column = over.Input.Column
	}
	if over.Input.ColumnIndex != nil {
		merged.Input.ColumnIndex = over.Input.ColumnIndex
	}
	if over.Input.Encoding != "" {
		merged.Input.Encoding = over.Input.Encoding
	}
	if over.Input.NoHeader != nil {
		merged.Input.NoHeader = over.Input.NoHeader
	}

	if over.Keyword.Suffixes != nil {
		merged.Keyword.Suffixes = over.Keyword.Suffixes
	}
	if len(over.Keyword.ExtraSuffixes) > 0 {
		merged.Keyword.ExtraSuffixes = append(append([]string(nil), merged.Keyword.ExtraSuffixes...), over.Keyword.ExtraSuffixes...)
	}

	if over.Report.TopGroups != 0 {
		merged.Report.TopGroups = over.Report.TopGroups
	}
	if len(over.Report.Coverage) > 0 {
		merged.Report.Coverage = over.Report.Coverage
	}

	return &merged
}

// KeywordSuffixes returns the effective suffix list: Suffixes (or the
// built-in list) followed by ExtraSuffixes.
func (c *Config) KeywordSuffixes() []string {
	base := c.Keyword.Suffixes
	if base == nil {
		base = grouping.DefaultKeywordSuffixes
	}
	if len(c.Keyword.ExtraSuffixes) == 0 {
		return base
	}
	out := make([]string, 0, len(base)+len(c.Keyword.ExtraSuffixes))
	out = append(out, base...)
	return append(out, c.Keyword.ExtraSuffixes...)
}

// Merge combines file-based config with a CLI-provided pipeline.Config.
// CLI values take precedence; zero-value CLI fields fall through to file config.
// Callers that need an explicit zero to win apply it after Merge.
// fileCfg is expected to have passed Validate.
func Merge(fileCfg *Config, cliCfg pipeline.Config) pipeline.Config {
	result := cliCfg

	if result.Method == "" {
		result.Method = fileCfg.Method
	}

	p := &result.Params
	if p.Threshold == 0 && fileCfg.Threshold != nil {
		p.Threshold = *fileCfg.Threshold
	}
	if p.PrefixLength == 0 && fileCfg.PrefixLength != nil {
		p.PrefixLength = *fileCfg.PrefixLength
	}
	if p.SampleCap == 0 {
		p.SampleCap = fileCfg.SampleCap
	}
	if p.Seed == 0 && fileCfg.Seed != nil {
		p.Seed = *fileCfg.Seed
	}
	if p.Scorer == nil && fileCfg.Scorer != "" {
		if s, err := grouping.ScorerByName(fileCfg.Scorer); err == nil {
			p.Scorer = s
		}
	}
	if p.Workers == 0 {
		p.Workers = fileCfg.Workers
	}
	if p.ProgressInterval == 0 {
		p.ProgressInterval = fileCfg.ProgressInterval
	}
	if p.KeywordSuffixes == nil && (fileCfg.Keyword.Suffixes != nil || len(fileCfg.Keyword.ExtraSuffixes) > 0) {
		p.KeywordSuffixes = fileCfg.KeywordSuffixes()
	}

	in := &result.Ingest
	if in.Column == "" {
		in.Column = fileCfg.Input.Column
	}
	if in.ColumnIndex == nil && fileCfg.Input.ColumnIndex != nil {
		idx := *fileCfg.Input.ColumnIndex
		in.ColumnIndex = &idx
	}
	if in.Encoding == "" {
		in.Encoding = fileCfg.Input.Encoding
	}
	if !in.NoHeader && fileCfg.Input.NoHeader != nil && *fileCfg.Input.NoHeader {
		in.NoHeader = true
	}

	if !result.Export.ExcludeSingletons && fileCfg.ExcludeSingletons != nil && *fileCfg.ExcludeSingletons {
		result.Export.ExcludeSingletons = true
	}

	if result.CoverageTargets == nil && len(fileCfg.Report.Coverage) > 0 {
		result.CoverageTargets = fileCfg.Report.Coverage
	}

	return result
}
