package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/confsync/internal/cache"
	"github.com/dmitrijs2005/confsync/internal/common"
	"github.com/dmitrijs2005/confsync/internal/models"
	"github.com/dmitrijs2005/confsync/internal/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_CacheFirstNeverTouchesNetwork(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	require.NoError(t, e.store.Write(ctx, cache.Key(transform.TableHotels),
		[]models.Record{{"id": "h1", "name": "Grand"}}))

	records, err := e.reader.Get(ctx, transform.TableHotels)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Grand", records[0].String("name"))
	assert.Zero(t, e.src.fetchCount(transform.TableHotels))
}

func TestReader_MissTriggersSynchronousSync(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	e.src.rows[transform.TableHotels] = []models.Record{{"id": "h1", "name": "Grand"}}

	records, err := e.reader.Get(ctx, transform.TableHotels)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1, e.src.fetchCount(transform.TableHotels))

	// second read is served from cache
	_, err = e.reader.Get(ctx, transform.TableHotels)
	require.NoError(t, err)
	assert.Equal(t, 1, e.src.fetchCount(transform.TableHotels))
}

func TestReader_InitialLoadFailurePropagates(t *testing.T) {
	e := newEngine(t)

	e.src.errs[transform.TableHotels] = fmt.Errorf("down: %w", common.ErrNetwork)

	_, err := e.reader.Get(context.Background(), transform.TableHotels)
	assert.ErrorIs(t, err, common.ErrNetwork)
}

func TestReader_UnknownTable(t *testing.T) {
	e := newEngine(t)

	_, err := e.reader.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, common.ErrUnknownTable)
}

// A failed refresh never regresses a user from "has cached schedule" to
// "sees empty state".
func TestReader_FailedRefreshServesLastGoodCache(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	e.src.rows[transform.TableAgendaItems] = []models.Record{{"id": "s1", "title": "Opening"}}
	_, err := e.orch.SyncTable(ctx, transform.TableAgendaItems)
	require.NoError(t, err)

	before, err := e.reader.Get(ctx, transform.TableAgendaItems)
	require.NoError(t, err)

	// network goes away
	e.src.errs[transform.TableAgendaItems] = fmt.Errorf("down: %w", common.ErrNetwork)

	records, err := e.reader.Refresh(ctx, transform.TableAgendaItems)
	require.NoError(t, err, "refresh failure must fall back to cache")
	assert.Equal(t, before, records)

	// and a plain read right after still sees the same data
	after, err := e.reader.Get(ctx, transform.TableAgendaItems)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestReader_RefreshReturnsFreshDataOnSuccess(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	e.src.rows[transform.TableHotels] = []models.Record{{"id": "h1"}}
	_, err := e.orch.SyncTable(ctx, transform.TableHotels)
	require.NoError(t, err)

	e.src.rows[transform.TableHotels] = []models.Record{{"id": "h1"}, {"id": "h2"}}

	records, err := e.reader.Refresh(ctx, transform.TableHotels)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

// A poisoned envelope is cleared on read and the very next access syncs
// fresh, valid data.
func TestReader_CorruptionSelfHeals(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	e.src.rows[transform.TableAgendaItems] = []models.Record{{"id": "s1", "title": "Opening"}}
	_, err := e.orch.SyncTable(ctx, transform.TableAgendaItems)
	require.NoError(t, err)

	future := time.Now().Add(365 * 24 * time.Hour).UnixMilli()
	_, err = e.db.Exec(`UPDATE cache_entries SET timestamp = ? WHERE key = ?`,
		future, cache.Key(transform.TableAgendaItems))
	require.NoError(t, err)

	records, err := e.reader.Get(ctx, transform.TableAgendaItems)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Opening", records[0].String("title"))
	assert.Equal(t, 2, e.src.fetchCount(transform.TableAgendaItems))

	env, err := e.store.Read(ctx, cache.Key(transform.TableAgendaItems))
	require.NoError(t, err)
	require.NotNil(t, env)
	assert.WithinDuration(t, time.Now(), env.Timestamp, 5*time.Second)
}

// Zero records satisfying a transient UI condition is not cache emptiness:
// an empty cached snapshot is served without a new fetch.
func TestReader_EmptySnapshotIsServedNotResynced(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	require.NoError(t, e.store.Write(ctx, cache.Key(transform.TableAgendaItems), []models.Record{}))

	records, err := e.reader.Get(ctx, transform.TableAgendaItems)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Zero(t, e.src.fetchCount(transform.TableAgendaItems))
}

func TestReader_TypedAccessors(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	e.src.rows[transform.TableAttendees] = []models.Record{
		{"id": "a1", "first_name": "Jo", "last_name": "Smith", "is_cfo": true, "email": "jo@secret.example"},
	}

	attendees, err := e.reader.Attendees(ctx)
	require.NoError(t, err)
	require.Len(t, attendees, 1)
	assert.Equal(t, "Jo Smith", attendees[0].DisplayName)
	assert.True(t, attendees[0].IsCFO)
}

func TestReader_SeatForJoinsConfigurationAtReadTime(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	e.src.rows[transform.TableSeatAssignments] = []models.Record{
		{"id": "sa1", "attendee_id": "a1", "seating_configuration_id": "cfg1", "table_name": "T4", "seat_number": float64(2)},
	}
	e.src.rows[transform.TableSeatingConfigurations] = []models.Record{
		{"id": "cfg1", "event_type": "dining", "layout_type": "rounds", "total_tables": float64(20), "seats_per_table": float64(8)},
	}

	detail, err := e.reader.SeatFor(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "T4", detail.Assignment.TableName)
	assert.Equal(t, 2, detail.Assignment.SeatNumber)
	require.NotNil(t, detail.Configuration)
	assert.Equal(t, "rounds", detail.Configuration.LayoutType)
	assert.Equal(t, 8, detail.Configuration.SeatsPerTable)

	_, err = e.reader.SeatFor(ctx, "nobody")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
