package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/MikeSquared-Agency/Ranker/internal/config"
	"github.com/MikeSquared-Agency/Ranker/internal/enrich"
	"github.com/MikeSquared-Agency/Ranker/internal/hermes"
	"github.com/MikeSquared-Agency/Ranker/internal/scoring"
	"github.com/MikeSquared-Agency/Ranker/internal/sheet"
	"github.com/MikeSquared-Agency/Ranker/internal/simulation"
	"github.com/MikeSquared-Agency/Ranker/internal/store"
)

// topN is the length of the ranking headline carried by completed events.
const topN = 5

// Request is one analysis to run. A nil Params uses the configured defaults.
type Request struct {
	RequestID string
	Name      string
	IDColumn  string
	Table     *sheet.Table
	Params    *simulation.Params
}

// Service runs the parse, enrich, simulate, persist, publish pipeline.
type Service struct {
	store         store.Store
	hermes        hermes.Client
	enricher      *enrich.Enricher
	params        simulation.Params
	maxReplicates int
	idColumn      string
	logger        *slog.Logger
}

// New wires a Service. h may be nil, in which case no events are published.
func New(s store.Store, h hermes.Client, cfg *config.Config, logger *slog.Logger) *Service {
	return &Service{
		store:         s,
		hermes:        h,
		enricher:      cfg.Enricher(),
		params:        cfg.Simulation,
		maxReplicates: cfg.Server.MaxReplicates,
		idColumn:      cfg.Input.IDColumn,
		logger:        logger,
	}
}

// IsInputError reports whether err was caused by the request rather than
// by the service.
func IsInputError(err error) bool {
	return scoring.IsInputError(err) || errors.Is(err, simulation.ErrInvalidSimulationParameter)
}

// Run executes req and returns the stored analysis. Both simulators run
// concurrently; each owns its own seeded generator, so results do not
// depend on scheduling.
func (s *Service) Run(ctx context.Context, req Request) (*store.Analysis, error) {
	start := time.Now()
	id := uuid.New()

	a, err := s.run(ctx, id, req)
	if err != nil {
		status := statusFailed
		if IsInputError(err) {
			status = statusRejected
		}
		analysesTotal.WithLabelValues(status).Inc()
		s.logger.Warn("analysis failed", "analysis_id", id, "name", req.Name, "status", status, "error", err)
		s.publish(hermes.SubjectAnalysisFailed(id.String()), hermes.AnalysisFailedEvent{
			AnalysisID: id.String(),
			RequestID:  req.RequestID,
			Name:       req.Name,
			Error:      err.Error(),
			Timestamp:  time.Now().UTC(),
		})
		return nil, err
	}

	a.DurationMs = time.Since(start).Milliseconds()
	if err := s.store.CreateAnalysis(ctx, a); err != nil {
		analysesTotal.WithLabelValues(statusFailed).Inc()
		return nil, fmt.Errorf("store analysis: %w", err)
	}

	analysesTotal.WithLabelValues(statusCompleted).Inc()
	analysisItems.Observe(float64(len(a.Items)))
	s.logger.Info("analysis completed",
		"analysis_id", a.ID,
		"name", a.Name,
		"items", len(a.Items),
		"domains", len(a.Domains),
		"replicates", a.Params.Replicates,
		"duration_ms", a.DurationMs,
	)
	s.publish(hermes.SubjectAnalysisCompleted(a.ID.String()), completedEvent(a, req.RequestID))
	return a, nil
}

func (s *Service) run(ctx context.Context, id uuid.UUID, req Request) (*store.Analysis, error) {
	if req.Table == nil {
		return nil, fmt.Errorf("%w: no table", scoring.ErrNoItems)
	}
	params := s.params
	if req.Params != nil {
		params = *req.Params
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := params.CheckReplicateLimit(s.maxReplicates); err != nil {
		return nil, err
	}
	idColumn := req.IDColumn
	if idColumn == "" {
		idColumn = s.idColumn
	}

	model, err := scoring.Parse(req.Table, idColumn)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("parsed input", "analysis_id", id, "items", model.NumItems(), "domains", model.Domains)

	enriched := s.enricher.Enrich(model)
	for _, skipped := range enriched.Skipped {
		s.logger.Debug("enrichment skipped", "analysis_id", id, "reason", skipped)
	}

	var (
		intervals  []simulation.ScoreInterval
		robustness []simulation.RankRobustness
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		defer observe("score_uncertainty", time.Now())
		var err error
		intervals, err = simulation.SimulateScoreIntervals(model.Scores, model.Weights,
			params.Replicates, params.ScoreNoise, params.ScoreSeed)
		return err
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		defer observe("weight_robustness", time.Now())
		var err error
		robustness, err = simulation.SimulateWeightRobustness(model.Scores, model.Weights,
			params.Replicates, params.WeightPerturbation, params.WeightSeed)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	frontier := scoring.ComputeFrontier(model.Candidates())
	onFrontier := make(map[string]bool, len(frontier))
	names := make([]string, 0, len(frontier))
	for _, c := range frontier {
		onFrontier[c.Item] = true
		names = append(names, c.Item)
	}

	items := make([]store.ItemResult, model.NumItems())
	for i, item := range model.Items {
		perspectives := make([]store.PerspectiveScore, len(enriched.Perspectives))
		for k, p := range enriched.Perspectives {
			perspectives[k] = store.PerspectiveScore{Name: p.Name, Score: p.Scores[i], Rank: p.Ranks[i]}
		}
		var derived []store.NamedValue
		for _, d := range enriched.Derived {
			derived = append(derived, store.NamedValue{Name: d.Name, Value: d.Values[i]})
		}
		items[i] = store.ItemResult{
			Item:         item,
			Scores:       model.ItemScores(i),
			Category:     enriched.Categories[i],
			Perspectives: perspectives,
			Derived:      derived,
			Interval:     intervals[i],
			Robustness:   robustness[i],
			Pareto:       onFrontier[item],
		}
	}

	return &store.Analysis{
		ID:       id,
		Name:     req.Name,
		Params:   params,
		Domains:  model.Domains,
		Weights:  model.Weights,
		Items:    items,
		Frontier: names,
		Skipped:  enriched.Skipped,
	}, nil
}

func observe(simulator string, start time.Time) {
	simulationDuration.WithLabelValues(simulator).Observe(time.Since(start).Seconds())
}

func (s *Service) publish(subject string, event interface{}) {
	if s.hermes == nil {
		return
	}
	if err := s.hermes.Publish(subject, event); err != nil {
		s.logger.Warn("failed to publish event", "subject", subject, "error", err)
	}
}

func completedEvent(a *store.Analysis, requestID string) hermes.AnalysisCompletedEvent {
	ranked := a.ByMeanRank()
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	top := make([]hermes.TopItem, len(ranked))
	for i, it := range ranked {
		top[i] = hermes.TopItem{
			Item:      it.Item,
			MeanScore: it.Interval.Mean,
			MeanRank:  it.Robustness.MeanRank,
			PTop1:     it.Robustness.PTop1,
		}
	}
	return hermes.AnalysisCompletedEvent{
		AnalysisID: a.ID.String(),
		RequestID:  requestID,
		Name:       a.Name,
		Items:      len(a.Items),
		Domains:    len(a.Domains),
		Replicates: a.Params.Replicates,
		Top:        top,
		DurationMs: a.DurationMs,
		Timestamp:  time.Now().UTC(),
	}
}
