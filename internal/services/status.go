// Package services wires the sync engine together: the orchestrator that
// pulls tables through the transform pipeline into the cache, the reader
// that serves cache-first with network fallback, the process-wide status
// tracker, and the background refresh scheduler.
package services

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/confsync/internal/models"
)

// StatusTracker is the process-wide record of sync state. It is constructed
// once at startup and injected; only the orchestrator mutates it, the UI
// and fallback logic read snapshots.
type StatusTracker struct {
	mu             sync.RWMutex
	isOnline       bool
	lastSync       *time.Time
	pendingChanges int
	inFlight       int
}

// NewStatusTracker starts optimistic: online until a probe or sync says
// otherwise.
func NewStatusTracker() *StatusTracker {
	return &StatusTracker{isOnline: true}
}

// Snapshot returns a copy of the current status.
func (t *StatusTracker) Snapshot() models.SyncStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s := models.SyncStatus{
		IsOnline:       t.isOnline,
		PendingChanges: t.pendingChanges,
		SyncInProgress: t.inFlight > 0,
	}
	if t.lastSync != nil {
		ls := *t.lastSync
		s.LastSync = &ls
	}
	return s
}

func (t *StatusTracker) SetOnline(online bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.isOnline = online
}

// IsOnline reports the last known reachability of the remote source.
func (t *StatusTracker) IsOnline() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.isOnline
}

// BeginSync marks one table sync as in flight. Nested calls are counted, so
// SyncInProgress stays true until the last one finishes.
func (t *StatusTracker) BeginSync() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.inFlight++
}

func (t *StatusTracker) EndSync() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.inFlight > 0 {
		t.inFlight--
	}
}

// MarkSynced records a successful sync completion time.
func (t *StatusTracker) MarkSynced(at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	at = at.UTC()
	t.lastSync = &at
	t.isOnline = true
}

// SetPending records the number of local changes waiting to be pushed by
// the admin tooling. The engine itself never produces pending changes.
func (t *StatusTracker) SetPending(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pendingChanges = n
}
