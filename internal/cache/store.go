package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/confsync/internal/common"
	"github.com/dmitrijs2005/confsync/internal/dbx"
	"github.com/dmitrijs2005/confsync/internal/models"
)

// Store persists cache envelopes, one row per table key. It does not judge
// envelope validity; that is the Monitor's job.
type Store struct {
	db  dbx.DBTX
	now func() time.Time
}

// NewStore returns a Store bound to the given DBTX.
func NewStore(db dbx.DBTX) *Store {
	return &Store{db: db, now: time.Now}
}

// Key builds the storage key for a table name.
func Key(table string) string {
	return common.CacheKeyPrefix + table
}

// Write wraps records in a fresh envelope and replaces the stored one
// atomically. The whole envelope lands or the old one remains; there are no
// partial writes.
func (s *Store) Write(ctx context.Context, key string, records []models.Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}

	query := `INSERT INTO cache_entries (key, data, timestamp, version)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET data = excluded.data,
				timestamp = excluded.timestamp,
				version = excluded.version
	`
	ts := s.now().UTC()
	_, err = s.db.ExecContext(ctx, query, key, string(data), ts.UnixMilli(), common.CacheVersion)
	if err != nil {
		return fmt.Errorf("failed to upsert cache entry: %w", err)
	}
	return nil
}

// Read returns the stored envelope unmodified, or (nil, nil) when no
// envelope exists for the key. Absence is a normal miss, not an error.
func (s *Store) Read(ctx context.Context, key string) (*models.CacheEnvelope, error) {
	query := `SELECT data, timestamp, version FROM cache_entries WHERE key = ?`
	row := s.db.QueryRowContext(ctx, query, key)

	var (
		data    string
		ts      int64
		version string
	)
	if err := row.Scan(&data, &ts, &version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cache entry: %w", err)
	}

	env := &models.CacheEnvelope{
		Key:       key,
		Timestamp: time.UnixMilli(ts).UTC(),
		Version:   version,
	}
	if err := json.Unmarshal([]byte(data), &env.Data); err != nil {
		return nil, fmt.Errorf("failed to decode cache entry %q: %w", key, err)
	}
	return env, nil
}

// Clear removes the envelope for key. Clearing an absent key is a no-op.
func (s *Store) Clear(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to clear cache entry: %w", err)
	}
	return nil
}

// Keys lists the keys of all stored envelopes.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM cache_entries ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cache keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}
