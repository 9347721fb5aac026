// Package models defines the data shapes shared across the sync engine:
// raw records, cache envelopes, sync status and the typed conference entities.
package models

import "time"

// Record is one row as it travels through the pipeline, both as returned
// by the remote source and after transformation. Keys are field names.
type Record map[string]any

// String returns the record's value for key as a string, or "" when the
// field is missing or not a string. Missing source fields map to the empty
// string rather than nil so cached shapes stay stable.
func (r Record) String(key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return ""
}

// Bool returns the record's value for key as a bool. Missing fields
// default to def.
func (r Record) Bool(key string, def bool) bool {
	if v, ok := r[key].(bool); ok {
		return v
	}
	return def
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// CacheEnvelope is the timestamped, versioned wrapper persisted for one
// table's snapshot. Invariant: Timestamp never exceeds now plus a small
// clock-skew tolerance; a violation marks the envelope corrupt.
type CacheEnvelope struct {
	// Key is the storage key, e.g. "cache_attendees".
	Key string `json:"key"`

	// Data is the whole-table snapshot, already transformed and filtered.
	Data []Record `json:"data"`

	// Timestamp is when the envelope was written, UTC.
	Timestamp time.Time `json:"timestamp"`

	// Version is the envelope schema tag (common.CacheVersion at write time).
	Version string `json:"version"`
}

// SyncStatus is a point-in-time snapshot of the engine's sync state,
// consumed by the UI and by the fallback logic.
type SyncStatus struct {
	IsOnline       bool       `json:"is_online"`
	LastSync       *time.Time `json:"last_sync"`
	PendingChanges int        `json:"pending_changes"`
	SyncInProgress bool       `json:"sync_in_progress"`
}
