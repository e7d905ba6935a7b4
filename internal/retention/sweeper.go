package retention

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/MikeSquared-Agency/Ranker/internal/store"
)

var prunedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "ranker_analyses_pruned_total",
	Help: "Analyses deleted by the retention sweeper.",
})

// Sweeper periodically deletes analyses older than maxAge.
type Sweeper struct {
	store    store.Store
	maxAge   time.Duration
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func New(s store.Store, maxAge, interval time.Duration, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		store:    s,
		maxAge:   maxAge,
		interval: interval,
		logger:   logger,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
}

// Start launches the sweep loop. It is a no-op when maxAge or interval is
// not positive.
func (sw *Sweeper) Start(ctx context.Context) {
	if sw.maxAge <= 0 || sw.interval <= 0 {
		sw.logger.Info("retention sweeper disabled")
		return
	}
	sw.wg.Add(1)
	go sw.loop(ctx)
}

func (sw *Sweeper) Stop() {
	sw.stopOnce.Do(func() { close(sw.stopCh) })
	sw.wg.Wait()
}

func (sw *Sweeper) loop(ctx context.Context) {
	defer sw.wg.Done()
	ticker := time.NewTicker(sw.interval)
	defer ticker.Stop()

	for {
		select {
		case <-sw.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			sw.Sweep(ctx)
		}
	}
}

// Sweep runs one pruning pass and returns the number of analyses removed.
func (sw *Sweeper) Sweep(ctx context.Context) int64 {
	cutoff := sw.now().Add(-sw.maxAge)
	n, err := sw.store.PruneAnalyses(ctx, cutoff)
	if err != nil {
		sw.logger.Error("failed to prune analyses", "cutoff", cutoff, "error", err)
		return 0
	}
	if n > 0 {
		prunedTotal.Add(float64(n))
		sw.logger.Info("pruned analyses", "count", n, "cutoff", cutoff)
	}
	return n
}
