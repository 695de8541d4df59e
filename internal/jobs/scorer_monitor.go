package jobs

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"medrec/internal/metrics"
	"medrec/internal/recommend"
)

const defaultPingTimeout = 5 * time.Second

// ScorerMonitor periodically checks the remote scoring service and
// publishes its availability as the medrec_scorer_up gauge.
type ScorerMonitor struct {
	pinger   recommend.Pinger
	interval time.Duration
	timeout  time.Duration
	log      *zap.Logger

	checked atomic.Bool
	up      atomic.Bool
}

// NewScorerMonitor creates a new scorer monitor.
func NewScorerMonitor(pinger recommend.Pinger, interval time.Duration, log *zap.Logger) *ScorerMonitor {
	if log == nil {
		log = zap.NewNop()
	}
	timeout := defaultPingTimeout
	if interval < timeout {
		timeout = interval
	}
	return &ScorerMonitor{
		pinger:   pinger,
		interval: interval,
		timeout:  timeout,
		log:      log.Named("scorer-monitor"),
	}
}

// Start runs the check loop until ctx is cancelled.
func (m *ScorerMonitor) Start(ctx context.Context) {
	m.log.Info("scorer monitor started", zap.Duration("interval", m.interval))

	// Run immediately on start
	m.check(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.log.Info("scorer monitor stopped")
			return
		case <-ticker.C:
			m.check(ctx)
		}
	}
}

// Up reports the result of the most recent check.
func (m *ScorerMonitor) Up() bool {
	return m.up.Load()
}

// check pings the scorer once and logs availability transitions.
func (m *ScorerMonitor) check(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	err := m.pinger.Ping(pingCtx)
	if ctx.Err() != nil {
		return
	}

	up := err == nil
	metrics.SetScorerUp(up)
	wasUp := m.up.Swap(up)
	first := !m.checked.Swap(true)

	switch {
	case !up && (first || wasUp):
		m.log.Warn("scoring service unavailable", zap.Error(err))
	case up && (first || !wasUp):
		m.log.Info("scoring service available")
	}
}
