package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	mglog "github.com/yana87ryo/data-analysis-training/internal/log"
)

// Global flag values.
var (
	verbose   bool
	quiet     bool
	noColor   bool
	logFormat string
)

// rootCmd is the base command for merchgroup.
var rootCmd = &cobra.Command{
	Use:   "merchgroup",
	Short: "Group free-text merchant names into canonical merchants",
	Long: `Merchgroup reads card-transaction CSV exports and groups the spelling
variants of each merchant name (width, case, branch suffixes, typos) into one
canonical merchant. Groups are ranked by volume and written as a Pareto master
table with cumulative coverage.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if noColor {
			color.NoColor = true
		}
		opts := mglog.Options{Verbose: verbose, Quiet: quiet, Format: logFormat}
		if err := mglog.Setup(cmd.ErrOrStderr(), opts); err != nil {
			return exitError(ExitInvalidArgs, "merchgroup: %v", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", mglog.FormatText, "log format: text or json")

	rootCmd.AddCommand(groupCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(keywordCmd)
	rootCmd.AddCommand(similarityCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
