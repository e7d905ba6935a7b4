package store

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps analyses in process. It is used when no database is
// configured and by tests. Stored values are deep copies.
type MemoryStore struct {
	mu       sync.RWMutex
	analyses map[uuid.UUID][]byte
	meta     map[uuid.UUID]*AnalysisSummary
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		analyses: make(map[uuid.UUID][]byte),
		meta:     make(map[uuid.UUID]*AnalysisSummary),
	}
}

func (s *MemoryStore) CreateAnalysis(_ context.Context, a *Analysis) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	data, err := json.Marshal(a)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyses[a.ID] = data
	s.meta[a.ID] = a.Summary()
	return nil
}

func (s *MemoryStore) GetAnalysis(_ context.Context, id uuid.UUID) (*Analysis, error) {
	s.mu.RLock()
	data, ok := s.analyses[id]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	a := &Analysis{}
	if err := json.Unmarshal(data, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *MemoryStore) ListAnalyses(_ context.Context, filter AnalysisFilter) ([]*AnalysisSummary, error) {
	s.mu.RLock()
	out := make([]*AnalysisSummary, 0, len(s.meta))
	for _, m := range s.meta {
		if filter.Name != "" && m.Name != filter.Name {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return []*AnalysisSummary{}, nil
		}
		out = out[filter.Offset:]
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) DeleteAnalysis(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.analyses[id]; !ok {
		return ErrNotFound
	}
	delete(s.analyses, id)
	delete(s.meta, id)
	return nil
}

func (s *MemoryStore) PruneAnalyses(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, m := range s.meta {
		if m.CreatedAt.Before(cutoff) {
			delete(s.analyses, id)
			delete(s.meta, id)
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) Close() error { return nil }
