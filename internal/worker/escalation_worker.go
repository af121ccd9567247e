package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/campus-helpdesk/grievance-service/internal/observability"
)

// Scanner promotes overdue grievances and reports which tickets moved.
type Scanner interface {
	Scan(ctx context.Context, now time.Time) ([]string, error)
}

// EscalationWorker runs the escalation sweep on a fixed interval. Only the
// replica holding the sweep lease runs a pass; the others skip and retry on
// the next tick.
type EscalationWorker struct {
	scanner  Scanner
	lock     SweepLock
	interval time.Duration
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// NewEscalationWorker constructs the worker. metrics may be nil.
func NewEscalationWorker(scanner Scanner, lock SweepLock, interval time.Duration, metrics *observability.Metrics, logger *zap.Logger) *EscalationWorker {
	if lock == nil {
		lock = NoopSweepLock()
	}
	if interval <= 0 {
		interval = 30 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EscalationWorker{scanner: scanner, lock: lock, interval: interval, metrics: metrics, logger: logger}
}

// Run sweeps until the context is cancelled. One pass runs immediately on
// start so a freshly deployed instance does not wait a full interval.
func (w *EscalationWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *EscalationWorker) sweep(ctx context.Context) {
	held, err := w.lock.TryAcquire(ctx)
	if err != nil {
		w.logger.Warn("sweep lock acquisition failed", zap.Error(err))
		return
	}
	if !held {
		w.logger.Debug("sweep lock held elsewhere, skipping pass")
		return
	}
	defer func() {
		if err := w.lock.Release(ctx); err != nil {
			w.logger.Warn("sweep lock release failed", zap.Error(err))
		}
	}()

	promoted, err := w.scanner.Scan(ctx, time.Now())
	w.metrics.RecordSweep(len(promoted), err != nil)
	if err != nil {
		w.logger.Error("escalation sweep failed", zap.Error(err))
		return
	}
	if len(promoted) > 0 {
		w.logger.Info("escalation sweep finished",
			zap.Int("promoted", len(promoted)),
			zap.Strings("ticket_ids", promoted))
	}
}
