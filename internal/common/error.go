// Package common defines shared constants and sentinel errors used across
// the confsync engine. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Remote source errors.
	ErrNetwork = errors.New("network error")
	ErrAuth    = errors.New("authentication error")

	// Sync errors.
	ErrUnknownTable = errors.New("unknown table")

	// Cache errors.
	ErrCorruptCache = errors.New("corrupt cache entry")
	ErrNotFound     = errors.New("not found")
)

// SyncError wraps a failure that occurred while syncing one table.
// It unwraps to the underlying cause, so errors.Is(err, ErrNetwork)
// still matches through it.
type SyncError struct {
	Table string
	Err   error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("sync %q: %v", e.Table, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}
