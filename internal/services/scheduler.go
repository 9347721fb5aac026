package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/confsync/internal/logging"
	"github.com/dmitrijs2005/confsync/internal/remote"
)

// Scheduler runs the background work: periodic full refreshes and the
// online-status probe. Failures here are absorbed and logged, never
// surfaced to callers; a flaky venue network degrades to cached data, not
// to errors.
type Scheduler struct {
	orch          *Orchestrator
	source        remote.Source
	status        *StatusTracker
	log           logging.Logger
	syncInterval  time.Duration
	probeInterval time.Duration
}

func NewScheduler(orch *Orchestrator, source remote.Source, status *StatusTracker, log logging.Logger, syncInterval, probeInterval time.Duration) *Scheduler {
	return &Scheduler{
		orch:          orch,
		source:        source,
		status:        status,
		log:           log.With("component", "scheduler"),
		syncInterval:  syncInterval,
		probeInterval: probeInterval,
	}
}

// Run blocks until ctx is cancelled. A refresh in flight when ctx is
// cancelled is abandoned; envelope writes are atomic, so no partial state
// can land.
func (s *Scheduler) Run(ctx context.Context) {
	syncTicker := time.NewTicker(s.syncInterval)
	defer syncTicker.Stop()
	probeTicker := time.NewTicker(s.probeInterval)
	defer probeTicker.Stop()

	for {
		select {
		case <-syncTicker.C:
			s.refresh(ctx)

		case <-probeTicker.C:
			s.probe(ctx)

		case <-ctx.Done():
			return
		}
	}
}

func (s *Scheduler) refresh(ctx context.Context) {
	if !s.status.IsOnline() {
		s.log.Debug(ctx, "offline, skipping periodic refresh")
		return
	}
	for name, result := range s.orch.SyncAll(ctx) {
		if result.Err != nil {
			s.log.Warn(ctx, "periodic refresh failure absorbed", "table", name, "error", result.Err)
		}
	}
}

func (s *Scheduler) probe(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	err := s.source.Ping(probeCtx)
	online := err == nil
	if online != s.status.IsOnline() {
		s.log.Info(ctx, "connectivity changed", "online", online)
	}
	s.status.SetOnline(online)
}
