package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTracker_Defaults(t *testing.T) {
	tr := NewStatusTracker()
	s := tr.Snapshot()

	assert.True(t, s.IsOnline)
	assert.Nil(t, s.LastSync)
	assert.Zero(t, s.PendingChanges)
	assert.False(t, s.SyncInProgress)
}

func TestStatusTracker_NestedSyncs(t *testing.T) {
	tr := NewStatusTracker()

	tr.BeginSync()
	tr.BeginSync()
	assert.True(t, tr.Snapshot().SyncInProgress)

	tr.EndSync()
	assert.True(t, tr.Snapshot().SyncInProgress, "still one sync in flight")

	tr.EndSync()
	assert.False(t, tr.Snapshot().SyncInProgress)

	// extra EndSync must not underflow
	tr.EndSync()
	assert.False(t, tr.Snapshot().SyncInProgress)
}

func TestStatusTracker_MarkSynced(t *testing.T) {
	tr := NewStatusTracker()
	tr.SetOnline(false)

	at := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	tr.MarkSynced(at)

	s := tr.Snapshot()
	require.NotNil(t, s.LastSync)
	assert.Equal(t, at, *s.LastSync)
	assert.True(t, s.IsOnline, "a successful sync implies reachability")
}

func TestStatusTracker_SnapshotIsACopy(t *testing.T) {
	tr := NewStatusTracker()
	tr.MarkSynced(time.Now())

	s := tr.Snapshot()
	*s.LastSync = time.Time{}

	s2 := tr.Snapshot()
	require.NotNil(t, s2.LastSync)
	assert.False(t, s2.LastSync.IsZero())
}

func TestStatusTracker_Pending(t *testing.T) {
	tr := NewStatusTracker()
	tr.SetPending(3)
	assert.Equal(t, 3, tr.Snapshot().PendingChanges)
}
