package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/confsync/internal/common"
	"github.com/dmitrijs2005/confsync/internal/logging"
	"github.com/dmitrijs2005/confsync/internal/models"
)

// ClockSkewTolerance bounds how far in the future an envelope timestamp may
// sit before the envelope is considered corrupt. 30s absorbs realistic
// client clock drift; the failure mode this catches (a test time override
// leaking into a real write) produces offsets of minutes to years.
const ClockSkewTolerance = 30 * time.Second

// Monitor validates envelopes and self-heals corruption by clearing the
// offending entry so the caller can treat it as a miss.
type Monitor struct {
	store *Store
	log   logging.Logger
	now   func() time.Time
}

func NewMonitor(store *Store, log logging.Logger) *Monitor {
	return &Monitor{store: store, log: log.With("component", "cache-monitor"), now: time.Now}
}

// Validate checks env for corruption. A nil envelope is a normal miss and
// returns nil. On corruption the entry is cleared, the event is logged, and
// common.ErrCorruptCache is returned so the caller re-syncs.
func (m *Monitor) Validate(ctx context.Context, env *models.CacheEnvelope) error {
	if env == nil {
		return nil
	}

	if reason := m.corruptReason(env); reason != "" {
		m.log.Warn(ctx, "corrupt cache entry cleared",
			"key", env.Key,
			"timestamp", env.Timestamp,
			"version", env.Version,
			"reason", reason,
		)
		if err := m.store.Clear(ctx, env.Key); err != nil {
			return fmt.Errorf("failed to clear corrupt entry %q: %w", env.Key, err)
		}
		return fmt.Errorf("%q: %s: %w", env.Key, reason, common.ErrCorruptCache)
	}

	return nil
}

func (m *Monitor) corruptReason(env *models.CacheEnvelope) string {
	if env.Version != common.CacheVersion {
		return fmt.Sprintf("version %q, want %q", env.Version, common.CacheVersion)
	}
	if skew := env.Timestamp.Sub(m.now()); skew > ClockSkewTolerance {
		return fmt.Sprintf("timestamp %s ahead of clock", skew)
	}
	return ""
}
