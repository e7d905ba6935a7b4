package analysis

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusCompleted = "completed"
	statusRejected  = "rejected"
	statusFailed    = "failed"
)

var (
	analysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ranker_analyses_total",
		Help: "Analyses run, by outcome.",
	}, []string{"status"})

	simulationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ranker_simulation_duration_seconds",
		Help:    "Wall time of one simulator run.",
		Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
	}, []string{"simulator"})

	analysisItems = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ranker_analysis_items",
		Help:    "Number of items per analysis.",
		Buckets: prometheus.LinearBuckets(10, 10, 10),
	})
)
