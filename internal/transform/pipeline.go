// Package transform implements the per-table record pipeline: field mapping,
// active-status filtering, per-ID data-quality overrides and, always last,
// allowlist projection. One generic pipeline processes a closed set of table
// specs, so the filtering rules live in data rather than per-entity code.
package transform

import (
	"github.com/dmitrijs2005/confsync/internal/models"
)

// SpeakerLookup resolves an attendee ID to a display-safe speaker reference.
// It is built from the already-filtered attendee snapshot, so it can never
// leak a field the attendee pipeline removed.
type SpeakerLookup func(id string) (models.SpeakerRef, bool)

// Override blanks a single field for one specific record ID. It is a
// data-quality patch, not a general mechanism; every override documents the
// reason it exists.
type Override struct {
	ID     string
	Field  string
	Reason string
}

// TableSpec declares how one table's rows are processed. The specs form a
// closed set (see tables.go); the pipeline itself is table-agnostic.
type TableSpec struct {
	Name string

	// Transform maps raw field names to canonical ones and computes derived
	// fields. It must set every allowlisted field explicitly, defaulting
	// missing source values to the zero value, so cached shapes stay stable.
	Transform func(raw models.Record) models.Record

	// Enrich optionally post-processes the transformed rows with access to
	// the speaker lookup. Used by agenda_items for speaker denormalization.
	Enrich func(rows []models.Record, speakers SpeakerLookup)

	// Active decides whether a transformed row may ever be cached.
	Active func(row models.Record) bool

	// Allow is the field allowlist applied as the final step.
	Allow []string

	Overrides []Override
}

// IsActive is the shared active predicate used uniformly by every table:
// a record is active unless is_active is explicitly false. Inactive records
// are dropped before caching, never merely hidden at render time.
func IsActive(r models.Record) bool {
	return r.Bool("is_active", true)
}

// Project returns a new record containing only allowlisted keys.
//
// The projection is allowlist-based, never denylist-based: a field added on
// the remote side is excluded until it is deliberately allowlisted here.
// Pure function, no side effects.
func Project(r models.Record, allow []string) models.Record {
	out := make(models.Record, len(allow))
	for _, key := range allow {
		if v, ok := r[key]; ok {
			out[key] = v
		}
	}
	return out
}

// FilterActive keeps rows whose active predicate is true.
func FilterActive(rows []models.Record, active func(models.Record) bool) []models.Record {
	out := make([]models.Record, 0, len(rows))
	for _, row := range rows {
		if active(row) {
			out = append(out, row)
		}
	}
	return out
}

// Pipeline drives raw rows through the spec's stages in fixed order:
// transform, active filter, overrides, allowlist projection. Projection is
// always last so no derived field can reintroduce a confidential value.
func Pipeline(spec TableSpec, raw []models.Record, speakers SpeakerLookup) []models.Record {
	rows := make([]models.Record, 0, len(raw))
	for _, r := range raw {
		rows = append(rows, spec.Transform(r))
	}

	if spec.Enrich != nil {
		spec.Enrich(rows, speakers)
	}

	rows = FilterActive(rows, spec.Active)

	for _, ov := range spec.Overrides {
		for _, row := range rows {
			if row.String("id") == ov.ID {
				row[ov.Field] = ""
			}
		}
	}

	out := make([]models.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, Project(row, spec.Allow))
	}
	return out
}
