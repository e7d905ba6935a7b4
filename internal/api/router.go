package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/Ranker/internal/analysis"
	"github.com/MikeSquared-Agency/Ranker/internal/config"
	"github.com/MikeSquared-Agency/Ranker/internal/store"
)

func NewRouter(svc *analysis.Service, s store.Store, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(120))

	analyses := NewAnalysesHandler(svc, s, cfg.Simulation, cfg.Input.Sheet, cfg.Server.MaxUploadBytes, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyses", analyses.Create)
		r.Post("/analyses/upload", analyses.Upload)
		r.Get("/analyses", analyses.List)
		r.Get("/analyses/{id}", analyses.Get)
		r.Get("/analyses/{id}/intervals.csv", analyses.IntervalsCSV)
		r.Get("/analyses/{id}/robustness.csv", analyses.RobustnessCSV)
		r.Get("/analyses/{id}/workbook.xlsx", analyses.Workbook)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.Server.AdminToken))
			r.Delete("/analyses/{id}", analyses.Delete)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
