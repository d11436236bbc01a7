package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/yana87ryo/data-analysis-training/internal/config"
	"github.com/yana87ryo/data-analysis-training/internal/grouping"
	"github.com/yana87ryo/data-analysis-training/internal/ingest"
	"github.com/yana87ryo/data-analysis-training/internal/pipeline"
)

// runFlags are the flags shared by every command that runs a grouping pass.
type runFlags struct {
	configPath        string
	column            string
	columnIndex       int
	encoding          string
	noHeader          bool
	method            string
	threshold         float64
	prefixLength      int
	scorer            string
	sampleCap         int
	seed              uint64
	workers           int
	progressInterval  int
	excludeSingletons bool
	coverage          []float64
}

func (f *runFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.configPath, "config", "", "config file (default: .merchgroup.yaml or .merchgroup.toml in the current directory)")
	fs.StringVar(&f.column, "column", "", fmt.Sprintf("merchant name column header (default %q)", ingest.DefaultColumn))
	fs.IntVar(&f.columnIndex, "column-index", -1, "zero-based merchant name column; overrides --column")
	fs.StringVar(&f.encoding, "encoding", "", "input character set, e.g. utf-8, shift_jis, cp932, euc-jp (default utf-8)")
	fs.BoolVar(&f.noHeader, "no-header", false, "input files have no header row")
	fs.StringVarP(&f.method, "method", "m", "", "grouping method: exact or fast (default exact)")
	fs.Float64VarP(&f.threshold, "threshold", "t", 0, fmt.Sprintf("similarity threshold for the exact method (default %g)", grouping.DefaultThreshold))
	fs.IntVar(&f.prefixLength, "prefix-length", 0, fmt.Sprintf("normalized prefix length for the fast method (default %d)", grouping.DefaultPrefixLength))
	fs.StringVar(&f.scorer, "scorer", "", "similarity scorer: ratcliff or levenshtein (default ratcliff)")
	fs.IntVar(&f.sampleCap, "sample-cap", 0, fmt.Sprintf("max members sampled for representative selection (default %d)", grouping.DefaultSampleCap))
	fs.Uint64Var(&f.seed, "seed", 0, "random seed for representative sampling")
	fs.IntVar(&f.workers, "workers", 0, "parallel workers for group finalization (default GOMAXPROCS)")
	fs.IntVar(&f.progressInterval, "progress-interval", 0, fmt.Sprintf("log clustering progress every N names (default %d)", grouping.DefaultProgressInterval))
	fs.BoolVar(&f.excludeSingletons, "exclude-singletons", false, "drop one-member groups from the master table")
	fs.Float64SliceVar(&f.coverage, "coverage", nil, "coverage targets in percent (default 50,80,90,95,99)")
}

// reset restores the zero state. Slices are cleared after the pflag values
// because Float64Slice.Set("[]") does not empty the slice.
func (f *runFlags) reset(fs *pflag.FlagSet) {
	fs.VisitAll(func(fl *pflag.Flag) {
		fl.Changed = false
		_ = fl.Value.Set(fl.DefValue)
	})
	*f = runFlags{columnIndex: -1}
}

// loadConfig resolves the file configuration: built-in defaults, then the
// global file, then either path or the repo file in the working directory.
func loadConfig(path string) (*config.Config, error) {
	var cfg *config.Config
	if path == "" {
		var err error
		cfg, err = config.Resolve(".")
		if err != nil {
			return nil, err
		}
	} else {
		global, err := config.LoadGlobal()
		if err != nil {
			return nil, err
		}
		file, err := config.LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = config.Layer(config.Layer(config.Defaults(), global), file)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// pipelineConfig merges the flags the user set on fs over fileCfg. Flags
// left at their defaults never override a file value; flags the user set
// always win, zero included, so an explicit --threshold 0 reaches validation.
func (f *runFlags) pipelineConfig(fs *pflag.FlagSet, fileCfg *config.Config, inputs []string) (pipeline.Config, error) {
	cli := pipeline.Config{Inputs: inputs}

	if fs.Changed("column") {
		cli.Ingest.Column = f.column
	}
	if fs.Changed("column-index") {
		idx := f.columnIndex
		cli.Ingest.ColumnIndex = &idx
	}
	if fs.Changed("encoding") {
		cli.Ingest.Encoding = f.encoding
	}
	if fs.Changed("method") {
		cli.Method = f.method
	}
	if fs.Changed("scorer") {
		s, err := grouping.ScorerByName(f.scorer)
		if err != nil {
			return pipeline.Config{}, err
		}
		cli.Params.Scorer = s
	}
	if fs.Changed("coverage") {
		cli.CoverageTargets = f.coverage
	}

	cfg := config.Merge(fileCfg, cli)

	p := &cfg.Params
	if fs.Changed("threshold") {
		p.Threshold = f.threshold
	}
	if fs.Changed("prefix-length") {
		p.PrefixLength = f.prefixLength
	}
	if fs.Changed("sample-cap") {
		p.SampleCap = f.sampleCap
	}
	if fs.Changed("seed") {
		p.Seed = f.seed
	}
	if fs.Changed("workers") {
		p.Workers = f.workers
	}
	if fs.Changed("progress-interval") {
		p.ProgressInterval = f.progressInterval
	}
	if fs.Changed("no-header") {
		cfg.Ingest.NoHeader = f.noHeader
	}
	if fs.Changed("exclude-singletons") {
		cfg.Export.ExcludeSingletons = f.excludeSingletons
	}

	cfg.Ingest.OnFile = func(st ingest.FileStats) {
		slog.Info("read input", "path", st.Path, "records", st.Records, "missing", st.Missing, "duration", st.Duration)
	}
	cfg.Params.Progress = func(done, total int) {
		slog.Info("clustering", "done", done, "total", total)
	}
	return cfg, nil
}
