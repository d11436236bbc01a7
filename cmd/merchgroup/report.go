package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yana87ryo/data-analysis-training/internal/grouping"
	"github.com/yana87ryo/data-analysis-training/internal/output"
	"github.com/yana87ryo/data-analysis-training/internal/report"
)

// Report-specific flag values.
var (
	reportFlags      runFlags
	reportSections   string
	reportTop        int
	reportMaxMembers int
	reportFrom       string
	reportOutput     string
)

// reportCmd prints the terminal summary of a grouping run.
var reportCmd = &cobra.Command{
	Use:   "report [file|glob|-]...",
	Short: "Print a grouping summary report",
	Long: `Group the given CSV files and print a terminal report: input totals,
the largest multi-member groups and the Pareto coverage table.

With --from, the report is built from a master file written earlier by
"merchgroup group" (csv, json or msgpack) instead of regrouping.

Examples:
  merchgroup report transactions.csv
  merchgroup report --from master.csv --sections coverage
  merchgroup report 'data/*.csv' --top 20 --coverage 50,75,90`,
	RunE: runReport,
}

func init() {
	reportFlags.register(reportCmd.Flags())
	reportCmd.Flags().StringVar(&reportSections, "sections", "", "comma-separated list of report sections to include (default: all)")
	reportCmd.Flags().IntVar(&reportTop, "top", 0, fmt.Sprintf("number of multi-member groups to list (default %d)", report.DefaultTopGroups))
	reportCmd.Flags().IntVar(&reportMaxMembers, "max-members", 0, fmt.Sprintf("member names shown per group (default %d)", report.DefaultMaxMembers))
	reportCmd.Flags().StringVar(&reportFrom, "from", "", "read an existing master file instead of grouping inputs")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "output file path (default: stdout)")
}

func runReport(cmd *cobra.Command, args []string) error {
	if reportFrom == "" && len(args) == 0 {
		return exitError(ExitInvalidArgs, "merchgroup: report needs input files or --from <master file>")
	}
	if reportFrom != "" && len(args) > 0 {
		return exitError(ExitInvalidArgs, "merchgroup: --from cannot be combined with input files")
	}

	filter := splitList(reportSections)
	if unknown := report.UnknownSections(filter); len(unknown) > 0 {
		return exitError(ExitInvalidArgs, "merchgroup: unknown report sections: %s (available: %s)",
			strings.Join(unknown, ", "), strings.Join(report.List(), ", "))
	}

	fileCfg, err := loadConfig(reportFlags.configPath)
	if err != nil {
		return exitError(ExitInvalidArgs, "merchgroup: %v", err)
	}

	var doc output.Document
	if reportFrom != "" {
		targets := fileCfg.Report.Coverage
		if cmd.Flags().Changed("coverage") {
			targets = reportFlags.coverage
		}
		doc, err = readMaster(reportFrom, targets)
		if err != nil {
			return err
		}
	} else {
		cfg, res, paths, err := runPipeline(cmd, &reportFlags, fileCfg, args)
		if err != nil {
			return err
		}
		doc = newDocument(cfg, res, paths)
	}

	opts := report.Options{TopGroups: fileCfg.Report.TopGroups, MaxMembers: reportMaxMembers}
	if cmd.Flags().Changed("top") {
		opts.TopGroups = reportTop
	}

	return writeOutput(cmd, reportOutput, func(w io.Writer) error {
		return report.Render(w, doc, filter, opts)
	})
}

// readMaster loads a master file by extension. CSV files carry rows only,
// so coverage is recomputed for targets.
func readMaster(path string, targets []float64) (output.Document, error) {
	f, err := cmdFS.Open(path)
	if err != nil {
		return output.Document{}, exitError(ExitInvalidArgs, "merchgroup: cannot open master file %q (%v)", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only

	doc, err := decodeMaster(f, path, targets)
	if err != nil {
		return output.Document{}, exitError(ExitRunFailure, "merchgroup: reading %s: %v", path, err)
	}
	if len(doc.Metadata.Inputs) == 0 {
		doc.Metadata.Inputs = []string{path}
	}
	return doc, nil
}

func decodeMaster(f *os.File, path string, targets []float64) (output.Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".msgpack", ".mpk":
		return output.ReadMsgpack(f)
	case ".json":
		var doc output.Document
		if err := json.NewDecoder(f).Decode(&doc); err != nil {
			return output.Document{}, fmt.Errorf("decode json: %w", err)
		}
		return doc, nil
	default:
		rows, err := output.ReadCSV(f)
		if err != nil {
			return output.Document{}, err
		}
		if targets == nil {
			targets = grouping.DefaultCoverageTargets
		}
		return output.Document{Rows: rows, Coverage: grouping.Coverage(rows, targets)}, nil
	}
}

// splitList splits a comma-separated flag value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
