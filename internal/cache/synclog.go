package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/confsync/internal/dbx"
)

// RunEntry records the outcome of one table sync within a run, for
// diagnostics ("when did attendees last sync, and did it fail?").
type RunEntry struct {
	RunID      string
	Table      string
	Records    int
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
}

// RunLog persists sync run outcomes alongside the cache.
type RunLog struct {
	db dbx.DBTX
}

func NewRunLog(db dbx.DBTX) *RunLog {
	return &RunLog{db: db}
}

func (l *RunLog) Record(ctx context.Context, e RunEntry) error {
	query := `INSERT INTO sync_runs (id, table_name, records, error, started_at, finished_at)
			VALUES (?, ?, ?, ?, ?, ?)`
	_, err := l.db.ExecContext(ctx, query,
		e.RunID, e.Table, e.Records, e.Error,
		e.StartedAt.UTC().UnixMilli(), e.FinishedAt.UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to record sync run: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (l *RunLog) Recent(ctx context.Context, limit int) ([]RunEntry, error) {
	query := `SELECT id, table_name, records, error, started_at, finished_at
			FROM sync_runs ORDER BY finished_at DESC LIMIT ?`
	rows, err := l.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sync runs: %w", err)
	}
	defer rows.Close()

	var result []RunEntry
	for rows.Next() {
		var (
			e        RunEntry
			started  int64
			finished int64
		)
		if err := rows.Scan(&e.RunID, &e.Table, &e.Records, &e.Error, &started, &finished); err != nil {
			return nil, err
		}
		e.StartedAt = time.UnixMilli(started).UTC()
		e.FinishedAt = time.UnixMilli(finished).UTC()
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
