// Package remote talks to the conference row store: a table-oriented fetch
// interface returning row-shaped JSON. Auth is a bearer token issued out of
// band; the engine only needs to distinguish network from auth failures.
package remote

import (
	"context"

	"github.com/dmitrijs2005/confsync/internal/models"
)

// Source is the boundary the sync engine pulls from.
type Source interface {
	// FetchTable returns all raw rows of the named table. Failures map to
	// common.ErrNetwork or common.ErrAuth so callers can pick a fallback.
	FetchTable(ctx context.Context, name string) ([]models.Record, error)

	// Ping probes reachability, for the online-status watcher.
	Ping(ctx context.Context) error
}
