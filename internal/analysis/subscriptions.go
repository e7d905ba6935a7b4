package analysis

import (
	"context"
	"encoding/json"

	"github.com/MikeSquared-Agency/Ranker/internal/hermes"
)

// SetupSubscriptions lets other services request analyses over NATS.
// Outcomes are reported on the completed and failed subjects.
func (s *Service) SetupSubscriptions(ctx context.Context) error {
	if s.hermes == nil {
		return nil
	}
	return s.hermes.Subscribe(hermes.SubjectAnalysisRequest, func(_ string, data []byte) {
		var req hermes.AnalysisRequestEvent
		if err := json.Unmarshal(data, &req); err != nil {
			s.logger.Warn("invalid analysis request event", "error", err)
			return
		}
		a, err := s.Run(ctx, Request{
			RequestID: req.RequestID,
			Name:      req.Name,
			IDColumn:  req.IDColumn,
			Table:     &req.Table,
			Params:    req.Params,
		})
		if err != nil {
			return
		}
		s.logger.Info("analysis created from NATS request", "analysis_id", a.ID, "request_id", req.RequestID)
	})
}
