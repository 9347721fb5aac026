// Package cache persists whole-table snapshots as timestamped, versioned
// envelopes in a local SQLite database, and validates them on read.
package cache

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/confsync/internal/migrations"
	"github.com/pressly/goose/v3"
)

// Open opens (or creates) the cache database at dsn and applies pending
// migrations. The caller owns the returned handle.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache db: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate cache db: %w", err)
	}

	return db, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}
