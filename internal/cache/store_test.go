package cache

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/confsync/internal/common"
	"github.com/dmitrijs2005/confsync/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

var dbSeq atomic.Int64

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:cachetest%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := Open(context.Background(), dsn)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestKey(t *testing.T) {
	assert.Equal(t, "cache_attendees", Key("attendees"))
}

func TestStore_WriteRead(t *testing.T) {
	db := setupDB(t)
	s := NewStore(db)
	ctx := context.Background()

	records := []models.Record{
		{"id": "a1", "display_name": "Jo Smith"},
		{"id": "a2", "display_name": "Max Power"},
	}
	require.NoError(t, s.Write(ctx, "cache_attendees", records))

	env, err := s.Read(ctx, "cache_attendees")
	require.NoError(t, err)
	require.NotNil(t, env)

	assert.Equal(t, "cache_attendees", env.Key)
	assert.Equal(t, common.CacheVersion, env.Version)
	assert.WithinDuration(t, time.Now(), env.Timestamp, 5*time.Second)
	require.Len(t, env.Data, 2)
	assert.Equal(t, "a1", env.Data[0].String("id"))
	assert.Equal(t, "Max Power", env.Data[1].String("display_name"))
}

func TestStore_WriteReplacesWholeEnvelope(t *testing.T) {
	db := setupDB(t)
	s := NewStore(db)
	ctx := context.Background()

	require.NoError(t, s.Write(ctx, "cache_sponsors", []models.Record{{"id": "s1"}, {"id": "s2"}}))
	require.NoError(t, s.Write(ctx, "cache_sponsors", []models.Record{{"id": "s3"}}))

	env, err := s.Read(ctx, "cache_sponsors")
	require.NoError(t, err)
	require.NotNil(t, env)
	// no merge: the snapshot is replaced wholesale
	require.Len(t, env.Data, 1)
	assert.Equal(t, "s3", env.Data[0].String("id"))

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM cache_entries`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestStore_ReadMissIsNotAnError(t *testing.T) {
	db := setupDB(t)
	s := NewStore(db)

	env, err := s.Read(context.Background(), "cache_nothing")
	require.NoError(t, err)
	assert.Nil(t, env)
}

func TestStore_EmptySnapshotIsNotAMiss(t *testing.T) {
	db := setupDB(t)
	s := NewStore(db)
	ctx := context.Background()

	require.NoError(t, s.Write(ctx, "cache_hotels", []models.Record{}))

	env, err := s.Read(ctx, "cache_hotels")
	require.NoError(t, err)
	require.NotNil(t, env, "zero records is valid data, not cache absence")
	assert.Empty(t, env.Data)
}

func TestStore_Clear(t *testing.T) {
	db := setupDB(t)
	s := NewStore(db)
	ctx := context.Background()

	require.NoError(t, s.Write(ctx, "cache_hotels", []models.Record{{"id": "h1"}}))
	require.NoError(t, s.Clear(ctx, "cache_hotels"))

	env, err := s.Read(ctx, "cache_hotels")
	require.NoError(t, err)
	assert.Nil(t, env)

	// clearing an absent key is fine
	require.NoError(t, s.Clear(ctx, "cache_hotels"))
}

func TestStore_Keys(t *testing.T) {
	db := setupDB(t)
	s := NewStore(db)
	ctx := context.Background()

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)

	require.NoError(t, s.Write(ctx, "cache_b", nil))
	require.NoError(t, s.Write(ctx, "cache_a", nil))

	keys, err = s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"cache_a", "cache_b"}, keys)
}
