package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yana87ryo/data-analysis-training/internal/grouping"
)

var (
	keywordConfig        string
	keywordExtraSuffix   []string
	keywordNoSuffixStrip bool
)

// keywordCmd extracts the shared keyword of a set of names.
var keywordCmd = &cobra.Command{
	Use:   "keyword <name> <name>...",
	Short: "Extract the keyword shared by merchant names",
	Long: `Print the keyword that the group export would assign to the given
names: the longest common substring of the shortest and longest normalized
names with a trailing branch marker removed.

Examples:
  merchgroup keyword "スターバックス渋谷店" "ｽﾀｰﾊﾞｯｸｽ新宿駅前"
  merchgroup keyword --extra-suffix 店舗 "ABC店舗" "ABCマート店舗"`,
	Args: cobra.MinimumNArgs(2),
	RunE: runKeyword,
}

func init() {
	keywordCmd.Flags().StringVar(&keywordConfig, "config", "", "config file (default: .merchgroup.yaml or .merchgroup.toml in the current directory)")
	keywordCmd.Flags().StringSliceVar(&keywordExtraSuffix, "extra-suffix", nil, "additional trailing markers to strip")
	keywordCmd.Flags().BoolVar(&keywordNoSuffixStrip, "no-strip", false, "keep trailing branch markers")
}

func runKeyword(cmd *cobra.Command, args []string) error {
	fileCfg, err := loadConfig(keywordConfig)
	if err != nil {
		return exitError(ExitInvalidArgs, "merchgroup: %v", err)
	}

	var suffixes []string
	if !keywordNoSuffixStrip {
		suffixes = append(append([]string(nil), fileCfg.KeywordSuffixes()...), keywordExtraSuffix...)
	}
	ke := grouping.NewKeywordExtractor(suffixes, nil)

	kw := ke.Extract(args)
	if kw == "" {
		return exitError(ExitInvalidArgs, "merchgroup: no keyword; at least two names must be non-empty after normalization")
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), kw)
	return nil
}
