package worker

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/campus-helpdesk/grievance-service/internal/observability"
)

type recordingScanner struct {
	calls int
}

func (s *recordingScanner) Scan(context.Context, time.Time) ([]string, error) {
	s.calls++
	return nil, nil
}

type deniedLock struct {
	tries    int
	released bool
}

func (l *deniedLock) TryAcquire(context.Context) (bool, error) {
	l.tries++
	return false, nil
}

func (l *deniedLock) Release(context.Context) error {
	l.released = true
	return nil
}

func TestSweepSkipsWhenLockHeldElsewhere(t *testing.T) {
	scanner := &recordingScanner{}
	lock := &deniedLock{}
	w := NewEscalationWorker(scanner, lock, time.Minute, nil, zap.NewNop())

	w.sweep(context.Background())

	if scanner.calls != 0 {
		t.Error("scan must not run without the lease")
	}
	if lock.released {
		t.Error("a lease that was never held must not be released")
	}
}

func TestSweepRunsWithNoopLock(t *testing.T) {
	scanner := &recordingScanner{}
	metrics := observability.NewMetrics()
	w := NewEscalationWorker(scanner, NoopSweepLock(), time.Minute, metrics, zap.NewNop())

	w.sweep(context.Background())

	if scanner.calls != 1 {
		t.Errorf("scan calls = %d, want 1", scanner.calls)
	}
	sweeps, _, errs := metrics.SweepTotals()
	if sweeps != 1 || errs != 0 {
		t.Errorf("sweep totals = %d sweeps %d errors", sweeps, errs)
	}
}
