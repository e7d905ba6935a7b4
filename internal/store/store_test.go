package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Ranker/internal/simulation"
)

func sampleAnalysis(name string) *Analysis {
	return &Analysis{
		Name:    name,
		Params:  simulation.DefaultParams(),
		Domains: []string{"Efficacy (70%)", "Safety (30%)"},
		Weights: []float64{0.7, 0.3},
		Items: []ItemResult{
			{
				Item:     "A",
				Scores:   []float64{5, 1},
				Category: "Other",
				Perspectives: []PerspectiveScore{
					{Name: "Baseline", Score: 3.8, Rank: 1},
				},
				Interval:   simulation.ScoreInterval{Mean: 3.7, Lower: 3.4, Upper: 4.0},
				Robustness: simulation.RankRobustness{BaselineScore: 3.8, BaselineRank: 1, MeanRank: 1, PTop1: 1, PTop3: 1},
				Pareto:     true,
			},
		},
		Frontier: []string{"A"},
	}
}

func TestMemoryStoreCreateAndGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	a := sampleAnalysis("first")
	require.NoError(t, s.CreateAnalysis(ctx, a))
	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.False(t, a.CreatedAt.IsZero())

	got, err := s.GetAnalysis(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, a.Name, got.Name)
	assert.Equal(t, a.Items, got.Items)
	assert.Equal(t, a.Params, got.Params)

	got.Items[0].Item = "mutated"
	again, err := s.GetAnalysis(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", again.Items[0].Item, "returned values are copies")

	missing, err := s.GetAnalysis(ctx, uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryStoreList(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		a := sampleAnalysis(fmt.Sprintf("run-%d", i%2))
		a.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, s.CreateAnalysis(ctx, a))
	}

	all, err := s.ListAnalyses(ctx, AnalysisFilter{})
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.True(t, all[0].CreatedAt.After(all[4].CreatedAt), "newest first")
	assert.Equal(t, 1, all[0].NumItems)
	assert.Equal(t, 2, all[0].NumDomains)

	named, err := s.ListAnalyses(ctx, AnalysisFilter{Name: "run-0"})
	require.NoError(t, err)
	assert.Len(t, named, 3)

	page, err := s.ListAnalyses(ctx, AnalysisFilter{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, all[1].ID, page[0].ID)

	empty, err := s.ListAnalyses(ctx, AnalysisFilter{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	a := sampleAnalysis("doomed")
	require.NoError(t, s.CreateAnalysis(ctx, a))
	require.NoError(t, s.DeleteAnalysis(ctx, a.ID))

	got, err := s.GetAnalysis(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, s.DeleteAnalysis(ctx, a.ID), ErrNotFound)
}

func TestMemoryStorePrune(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	now := time.Now().UTC()

	old := sampleAnalysis("old")
	old.CreatedAt = now.Add(-48 * time.Hour)
	fresh := sampleAnalysis("fresh")
	fresh.CreatedAt = now
	require.NoError(t, s.CreateAnalysis(ctx, old))
	require.NoError(t, s.CreateAnalysis(ctx, fresh))

	n, err := s.PruneAnalyses(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := s.GetAnalysis(ctx, old.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	list, err := s.ListAnalyses(ctx, AnalysisFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "fresh", list[0].Name)
}

func TestMemoryStoreConcurrent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.CreateAnalysis(ctx, sampleAnalysis("parallel"))
			_, _ = s.ListAnalyses(ctx, AnalysisFilter{})
		}()
	}
	wg.Wait()

	all, err := s.ListAnalyses(ctx, AnalysisFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 20)
}
