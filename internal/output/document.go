package output

import (
	"time"

	"github.com/google/uuid"

	"github.com/yana87ryo/data-analysis-training/internal/grouping"
)

// Document is what every formatter renders: the Pareto export rows, the
// coverage checkpoints and a description of the run.
type Document struct {
	Metadata Metadata                 `json:"metadata" msgpack:"metadata"`
	Rows     []grouping.Row           `json:"rows" msgpack:"rows"`
	Coverage []grouping.CoveragePoint `json:"coverage" msgpack:"coverage"`
}

// Metadata describes the run that produced a Document.
type Metadata struct {
	RunID        string    `json:"run_id" msgpack:"run_id"`
	Method       string    `json:"method" msgpack:"method"`
	Scorer       string    `json:"scorer,omitempty" msgpack:"scorer,omitempty"`
	Threshold    float64   `json:"threshold,omitempty" msgpack:"threshold,omitempty"`
	PrefixLength int       `json:"prefix_length,omitempty" msgpack:"prefix_length,omitempty"`
	Inputs       []string  `json:"inputs,omitempty" msgpack:"inputs,omitempty"`
	Records      int       `json:"records" msgpack:"records"`
	UniqueNames  int       `json:"unique_names" msgpack:"unique_names"`
	Groups       int       `json:"groups" msgpack:"groups"`
	MultiMember  int       `json:"multi_member_groups" msgpack:"multi_member_groups"`
	TotalCount   int       `json:"total_count" msgpack:"total_count"`
	GeneratedAt  time.Time `json:"generated_at" msgpack:"generated_at"`
}

// NewRunID returns a fresh identifier for Metadata.RunID.
func NewRunID() string {
	return uuid.NewString()
}

// GroupCount returns the number of distinct groups in the rows.
func (d Document) GroupCount() int {
	n, last := 0, 0
	for _, r := range d.Rows {
		if r.Rank != last {
			n++
			last = r.Rank
		}
	}
	return n
}

// groupRows splits rows into per-group slices, in rank order.
func groupRows(rows []grouping.Row) [][]grouping.Row {
	var out [][]grouping.Row
	for i, r := range rows {
		if i == 0 || r.Rank != rows[i-1].Rank {
			out = append(out, nil)
		}
		out[len(out)-1] = append(out[len(out)-1], r)
	}
	return out
}
