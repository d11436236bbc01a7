// Package pipeline provides the grouping orchestration engine for
// merchgroup. It ingests CSV inputs, runs the configured clustering method
// and assembles the Pareto export and coverage figures.
package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yana87ryo/data-analysis-training/internal/grouping"
	"github.com/yana87ryo/data-analysis-training/internal/ingest"
)

// ValidationError describes a single validation failure in a Config.
type ValidationError struct {
	// Field is the struct field that failed validation.
	Field string

	// Message describes what went wrong.
	Message string
}

// Error implements the error interface.
func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// ValidateConfig checks a Config and returns all validation errors found.
// An empty slice means the config is valid. Only the parameters of the
// selected method are checked.
func ValidateConfig(cfg Config) []ValidationError {
	var errs []ValidationError

	switch cfg.Method {
	case grouping.MethodExact:
		if th := cfg.Params.Threshold; !(th > 0 && th <= 1) {
			errs = append(errs, ValidationError{
				Field:   "Threshold",
				Message: fmt.Sprintf("must be in (0, 1], got %v", th),
			})
		}
	case grouping.MethodFast:
		if cfg.Params.PrefixLength < 1 {
			errs = append(errs, ValidationError{
				Field:   "PrefixLength",
				Message: fmt.Sprintf("must be >= 1, got %d", cfg.Params.PrefixLength),
			})
		}
	}

	if cfg.Params.ProgressInterval < 0 {
		errs = append(errs, ValidationError{
			Field:   "ProgressInterval",
			Message: fmt.Sprintf("must not be negative, got %d", cfg.Params.ProgressInterval),
		})
	}

	for _, target := range cfg.CoverageTargets {
		if target <= 0 || target > 100 {
			errs = append(errs, ValidationError{
				Field:   "CoverageTargets",
				Message: fmt.Sprintf("must be in (0, 100], got %v", target),
			})
		}
	}

	if cfg.Ingest.ColumnIndex != nil && *cfg.Ingest.ColumnIndex < 0 {
		errs = append(errs, ValidationError{
			Field:   "ColumnIndex",
			Message: fmt.Sprintf("must be >= 0, got %d", *cfg.Ingest.ColumnIndex),
		})
	}

	if _, err := ingest.LookupEncoding(cfg.Ingest.Encoding); err != nil {
		errs = append(errs, ValidationError{Field: "Encoding", Message: err.Error()})
	}

	return errs
}

// ErrInvalidConfig wraps every error returned for a failed ValidateConfig.
var ErrInvalidConfig = errors.New("invalid pipeline config")

func joinValidation(errs []ValidationError) error {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}
