package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/yana87ryo/data-analysis-training/internal/config"
	"github.com/yana87ryo/data-analysis-training/internal/grouping"
	"github.com/yana87ryo/data-analysis-training/internal/ingest"
	"github.com/yana87ryo/data-analysis-training/internal/output"
	"github.com/yana87ryo/data-analysis-training/internal/pipeline"
)

// Group-specific flag values.
var (
	groupFlags  runFlags
	groupFormat string
	groupOutput string
)

// groupCmd groups the merchant names of one or more CSV files.
var groupCmd = &cobra.Command{
	Use:   "group <file|glob|->...",
	Short: "Group merchant names and write the master table",
	Long: `Read the merchant name column of one or more CSV files, group spelling
variants of the same merchant and write the master table: one row per raw
name with its keyword, its group's total count and the cumulative Pareto
coverage of the groups ranked by volume.

Use "-" to read from standard input. Glob patterns are expanded.

Examples:
  merchgroup group transactions.csv
  merchgroup group 'data/2024-*.csv' --method fast -o master.csv
  merchgroup group sales.csv --encoding cp932 --column 加盟店名 -f xlsx -o master.xlsx`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGroup,
}

func init() {
	groupFlags.register(groupCmd.Flags())
	groupCmd.Flags().StringVarP(&groupFormat, "format", "f", "", "output format: csv, json, markdown, msgpack, xlsx (default csv)")
	groupCmd.Flags().StringVarP(&groupOutput, "output", "o", "", "output file path (default: stdout)")
}

func runGroup(cmd *cobra.Command, args []string) error {
	fileCfg, err := loadConfig(groupFlags.configPath)
	if err != nil {
		return exitError(ExitInvalidArgs, "merchgroup: %v", err)
	}

	format := fileCfg.OutputFormat
	if cmd.Flags().Changed("format") {
		format = groupFormat
	}
	formatter, err := output.GetFormatter(format)
	if err != nil {
		return exitError(ExitInvalidArgs, "merchgroup: %v", err)
	}
	if output.IsBinary(formatter) && groupOutput == "" {
		return exitError(ExitInvalidArgs, "merchgroup: %s output is binary; use --output to write it to a file", format)
	}

	cfg, res, paths, err := runPipeline(cmd, &groupFlags, fileCfg, args)
	if err != nil {
		return err
	}
	doc := newDocument(cfg, res, paths)

	if err := writeOutput(cmd, groupOutput, func(w io.Writer) error {
		return formatter.Format(doc, w)
	}); err != nil {
		return err
	}

	slog.Info("group complete", "names", doc.Metadata.UniqueNames, "groups", doc.Metadata.Groups,
		"multi_member", doc.Metadata.MultiMember, "rows", len(doc.Rows), "duration", res.Duration)
	for _, g := range res.Grouping.MultiMemberGroups() {
		slog.Debug("merged group", "representative", g.Representative.Name, "keyword", g.Keyword,
			"members", len(g.Members), "count", g.Count)
	}
	return nil
}

// runPipeline expands the input patterns, builds the pipeline from flags
// and file config and runs it. Returned errors carry exit codes.
func runPipeline(cmd *cobra.Command, f *runFlags, fileCfg *config.Config, args []string) (pipeline.Config, *pipeline.Result, []string, error) {
	paths, err := ingest.ExpandPaths(args)
	if err != nil {
		return pipeline.Config{}, nil, nil, exitError(ExitInvalidArgs, "merchgroup: %v", err)
	}
	for _, p := range paths {
		if p == ingest.StdinPath {
			continue
		}
		if _, err := cmdFS.Stat(p); err != nil {
			return pipeline.Config{}, nil, nil, exitError(ExitInvalidArgs, "merchgroup: cannot read input %q (%v)", p, err)
		}
	}

	cfg, err := f.pipelineConfig(cmd.Flags(), fileCfg, paths)
	if err != nil {
		return pipeline.Config{}, nil, nil, exitError(ExitInvalidArgs, "merchgroup: %v", err)
	}
	p, err := pipeline.New(cfg)
	if err != nil {
		return pipeline.Config{}, nil, nil, exitError(ExitInvalidArgs, "merchgroup: %v", err)
	}

	res, err := p.Run(cmd.Context())
	if err != nil {
		return pipeline.Config{}, nil, nil, runError(err)
	}
	return cfg, res, paths, nil
}

// runError maps a pipeline failure to its exit code.
func runError(err error) *exitCodeError {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return exitError(ExitCanceled, "merchgroup: canceled (%v)", err)
	case errors.Is(err, ingest.ErrColumnNotFound):
		return exitError(ExitInvalidArgs, "merchgroup: %v", err)
	default:
		return exitError(ExitRunFailure, "merchgroup: %v", err)
	}
}

// newDocument describes a finished run for the formatters.
func newDocument(cfg pipeline.Config, res *pipeline.Result, inputs []string) output.Document {
	md := output.Metadata{
		RunID:       output.NewRunID(),
		Method:      cfg.Method,
		Inputs:      inputs,
		UniqueNames: len(res.Counts),
		Groups:      res.Grouping.Stats.Groups,
		MultiMember: res.Grouping.Stats.MultiMember,
		GeneratedAt: time.Now().UTC().Truncate(time.Second),
	}
	if res.Ingest != nil {
		md.Records = res.Ingest.Records
	}
	if n := len(res.Rows); n > 0 {
		md.TotalCount = res.Rows[n-1].CumulativeCount
	}

	scorer := cfg.Params.Scorer
	if scorer == nil {
		scorer = grouping.RatcliffObershelp{}
	}
	md.Scorer = scorer.Name()
	switch cfg.Method {
	case grouping.MethodExact:
		md.Threshold = cfg.Params.Threshold
	case grouping.MethodFast:
		md.PrefixLength = cfg.Params.PrefixLength
	}

	return output.Document{Metadata: md, Rows: res.Rows, Coverage: res.Coverage}
}

// writeOutput runs write against stdout, or against a file created through
// cmdFS when path is set.
func writeOutput(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	w := cmd.OutOrStdout()
	if path != "" {
		f, err := cmdFS.Create(path)
		if err != nil {
			return exitError(ExitInvalidArgs, "merchgroup: cannot create output file %q (%v)", path, err)
		}
		defer f.Close() //nolint:errcheck // best-effort close on output file
		w = f
	}
	if err := write(w); err != nil {
		return exitError(ExitRunFailure, "merchgroup: writing output failed (%v)", err)
	}
	return nil
}
