package config

import (
	"fmt"
	"strings"

	"github.com/yana87ryo/data-analysis-training/internal/clusterer"
	"github.com/yana87ryo/data-analysis-training/internal/grouping"
	"github.com/yana87ryo/data-analysis-training/internal/ingest"
	"github.com/yana87ryo/data-analysis-training/internal/output"
)

// Validate checks all fields in the config and returns all errors at once.
// Unset fields are accepted; threshold and prefix_length are checked
// whenever they are present, zero included.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.Method != "" && clusterer.Get(cfg.Method) == nil {
		errs = append(errs, fmt.Sprintf("method: unknown method %q (available: %s)", cfg.Method, strings.Join(clusterer.List(), ", ")))
	}

	if th := cfg.Threshold; th != nil && !(*th > 0 && *th <= 1) {
		errs = append(errs, fmt.Sprintf("threshold: must be in (0.0, 1.0], got %g", *th))
	}

	if n := cfg.PrefixLength; n != nil && *n < 1 {
		errs = append(errs, fmt.Sprintf("prefix_length: must be at least 1, got %d", *n))
	}

	if cfg.Scorer != "" {
		if _, err := grouping.ScorerByName(cfg.Scorer); err != nil {
			errs = append(errs, fmt.Sprintf("scorer: %v", err))
		}
	}

	if cfg.Workers < 0 {
		errs = append(errs, fmt.Sprintf("workers: must be non-negative, got %d", cfg.Workers))
	}

	if cfg.ProgressInterval < 0 {
		errs = append(errs, fmt.Sprintf("progress_interval: must be non-negative, got %d", cfg.ProgressInterval))
	}

	if cfg.OutputFormat != "" {
		if _, err := output.GetFormatter(cfg.OutputFormat); err != nil {
			errs = append(errs, fmt.Sprintf("output_format: %v", err))
		}
	}

	if cfg.Input.ColumnIndex != nil && *cfg.Input.ColumnIndex < 0 {
		errs = append(errs, fmt.Sprintf("input.column_index: must be non-negative, got %d", *cfg.Input.ColumnIndex))
	}

	if cfg.Input.Encoding != "" {
		if _, err := ingest.LookupEncoding(cfg.Input.Encoding); err != nil {
			errs = append(errs, fmt.Sprintf("input.encoding: %v", err))
		}
	}

	for i, s := range cfg.Keyword.Suffixes {
		if strings.TrimSpace(s) == "" {
			errs = append(errs, fmt.Sprintf("keyword.suffixes[%d]: must not be empty", i))
		}
	}
	for i, s := range cfg.Keyword.ExtraSuffixes {
		if strings.TrimSpace(s) == "" {
			errs = append(errs, fmt.Sprintf("keyword.extra_suffixes[%d]: must not be empty", i))
		}
	}

	if cfg.Report.TopGroups < 0 {
		errs = append(errs, fmt.Sprintf("report.top_groups: must be non-negative, got %d", cfg.Report.TopGroups))
	}

	for _, target := range cfg.Report.Coverage {
		if target <= 0 || target > 100 {
			errs = append(errs, fmt.Sprintf("report.coverage: targets must be in (0, 100], got %g", target))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
