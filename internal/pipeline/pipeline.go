package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/yana87ryo/data-analysis-training/internal/clusterer"
	"github.com/yana87ryo/data-analysis-training/internal/grouping"
	"github.com/yana87ryo/data-analysis-training/internal/ingest"
)

// Stage names reported in Result.Stages.
const (
	StageIngest  = "ingest"
	StageCluster = "cluster"
	StageExport  = "export"
)

// Config describes one grouping run.
type Config struct {
	// Inputs are CSV paths or glob patterns. Ignored by RunCounts.
	Inputs []string
	Ingest ingest.Options

	// Method names a registered clusterer ("exact" or "fast").
	Method string
	Params clusterer.Params

	Export          grouping.ExportOptions
	CoverageTargets []float64
}

// StageTiming records how long one stage took.
type StageTiming struct {
	Stage    string
	Duration time.Duration
}

// Result is everything a run produced.
type Result struct {
	Ingest   *ingest.Result // nil when run from in-memory counts
	Counts   map[string]int
	Grouping *grouping.Result
	Rows     []grouping.Row
	Coverage []grouping.CoveragePoint
	Stages   []StageTiming
	Duration time.Duration
}

// Pipeline orchestrates ingest, clustering and export.
type Pipeline struct {
	config    Config
	clusterer clusterer.Clusterer
}

// New creates a Pipeline from cfg. The method is resolved from the clusterer
// registry and the configuration is validated before any input is read.
func New(cfg Config) (*Pipeline, error) {
	c, err := clusterer.Lookup(cfg.Method)
	if err != nil {
		return nil, err
	}
	if errs := ValidateConfig(cfg); len(errs) > 0 {
		return nil, joinValidation(errs)
	}
	return &Pipeline{config: cfg, clusterer: c}, nil
}

// NewWithClusterer creates a Pipeline with an explicit clusterer, bypassing
// the registry. This is primarily useful for testing.
func NewWithClusterer(cfg Config, c clusterer.Clusterer) *Pipeline {
	return &Pipeline{config: cfg, clusterer: c}
}

// Run ingests the configured inputs and groups them.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	paths, err := ingest.ExpandPaths(p.config.Inputs)
	if err != nil {
		return nil, err
	}
	reader, err := ingest.NewReader(p.config.Ingest)
	if err != nil {
		return nil, err
	}
	in, err := reader.ReadFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	ingestTime := time.Since(start)
	slog.Info("ingest complete", "files", len(in.Files), "records", in.Records, "unique", in.Unique(), "missing", in.Missing)

	res, err := p.group(ctx, in.Counts)
	if err != nil {
		return nil, err
	}
	res.Ingest = in
	res.Stages = append([]StageTiming{{Stage: StageIngest, Duration: ingestTime}}, res.Stages...)
	res.Duration = time.Since(start)
	return res, nil
}

// RunCounts groups an in-memory occurrence counter, skipping ingest.
func (p *Pipeline) RunCounts(ctx context.Context, counts map[string]int) (*Result, error) {
	start := time.Now()
	res, err := p.group(ctx, counts)
	if err != nil {
		return nil, err
	}
	res.Duration = time.Since(start)
	return res, nil
}

func (p *Pipeline) group(ctx context.Context, counts map[string]int) (*Result, error) {
	names := grouping.FromCounts(counts)

	start := time.Now()
	gr, err := p.clusterer.Cluster(ctx, names, p.config.Params)
	if err != nil {
		return nil, fmt.Errorf("%s clustering: %w", p.clusterer.Name(), err)
	}
	clusterTime := time.Since(start)
	slog.Info("clustering complete", "method", p.clusterer.Name(), "names", gr.Stats.Input,
		"groups", gr.Stats.Groups, "multi_member", gr.Stats.MultiMember, "duration", clusterTime)

	start = time.Now()
	rows := grouping.ExportTable(gr.Groups, counts, p.config.Export)
	targets := p.config.CoverageTargets
	if targets == nil {
		targets = grouping.DefaultCoverageTargets
	}
	coverage := grouping.Coverage(rows, targets)

	return &Result{
		Counts:   counts,
		Grouping: gr,
		Rows:     rows,
		Coverage: coverage,
		Stages: []StageTiming{
			{Stage: StageCluster, Duration: clusterTime},
			{Stage: StageExport, Duration: time.Since(start)},
		},
	}, nil
}
