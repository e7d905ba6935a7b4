package store

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Ranker/internal/simulation"
)

var ErrNotFound = errors.New("analysis not found")

// Analysis is one completed sensitivity run with its per-item results.
type Analysis struct {
	ID         uuid.UUID         `json:"analysis_id"`
	Name       string            `json:"name"`
	Params     simulation.Params `json:"params"`
	Domains    []string          `json:"domains"`
	Weights    []float64         `json:"weights"`
	Items      []ItemResult      `json:"items"`
	Frontier   []string          `json:"pareto_frontier"`
	Skipped    []string          `json:"skipped,omitempty"`
	DurationMs int64             `json:"duration_ms"`
	CreatedAt  time.Time         `json:"created_at"`
}

// ItemResult carries everything computed for one item, in input order.
type ItemResult struct {
	Item         string                    `json:"item"`
	Scores       []float64                 `json:"scores"`
	Category     string                    `json:"category"`
	Perspectives []PerspectiveScore        `json:"perspectives"`
	Derived      []NamedValue              `json:"derived,omitempty"`
	Interval     simulation.ScoreInterval  `json:"score_interval"`
	Robustness   simulation.RankRobustness `json:"robustness"`
	Pareto       bool                      `json:"pareto"`
}

// PerspectiveScore is an item's score and rank under one weighting.
type PerspectiveScore struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
	Rank  int     `json:"rank"`
}

type NamedValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// AnalysisSummary is the list view of an analysis.
type AnalysisSummary struct {
	ID         uuid.UUID         `json:"analysis_id"`
	Name       string            `json:"name"`
	Params     simulation.Params `json:"params"`
	NumItems   int               `json:"num_items"`
	NumDomains int               `json:"num_domains"`
	DurationMs int64             `json:"duration_ms"`
	CreatedAt  time.Time         `json:"created_at"`
}

// Summary returns the list view of a.
func (a *Analysis) Summary() *AnalysisSummary {
	return &AnalysisSummary{
		ID:         a.ID,
		Name:       a.Name,
		Params:     a.Params,
		NumItems:   len(a.Items),
		NumDomains: len(a.Domains),
		DurationMs: a.DurationMs,
		CreatedAt:  a.CreatedAt,
	}
}

type AnalysisFilter struct {
	Name   string
	Limit  int
	Offset int
}

type Store interface {
	// CreateAnalysis assigns ID and CreatedAt when they are zero.
	CreateAnalysis(ctx context.Context, a *Analysis) error
	// GetAnalysis returns nil, nil when no analysis has the id.
	GetAnalysis(ctx context.Context, id uuid.UUID) (*Analysis, error)
	// ListAnalyses returns summaries, newest first.
	ListAnalyses(ctx context.Context, filter AnalysisFilter) ([]*AnalysisSummary, error)
	// DeleteAnalysis returns ErrNotFound when no analysis has the id.
	DeleteAnalysis(ctx context.Context, id uuid.UUID) error
	// PruneAnalyses deletes analyses created before cutoff and returns how
	// many were removed.
	PruneAnalyses(ctx context.Context, cutoff time.Time) (int64, error)

	Close() error
}

const defaultListLimit = 100

// ByMeanScore returns the items ordered by mean simulated weighted score,
// highest first. Ties keep input order.
func (a *Analysis) ByMeanScore() []ItemResult {
	out := append([]ItemResult(nil), a.Items...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Interval.Mean > out[j].Interval.Mean
	})
	return out
}

// ByMeanRank returns the items ordered by mean rank under weight
// perturbation, best first, then by baseline score.
func (a *Analysis) ByMeanRank() []ItemResult {
	out := append([]ItemResult(nil), a.Items...)
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].Robustness, out[j].Robustness
		if ri.MeanRank != rj.MeanRank {
			return ri.MeanRank < rj.MeanRank
		}
		return ri.BaselineScore > rj.BaselineScore
	})
	return out
}
