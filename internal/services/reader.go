package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/confsync/internal/cache"
	"github.com/dmitrijs2005/confsync/internal/common"
	"github.com/dmitrijs2005/confsync/internal/logging"
	"github.com/dmitrijs2005/confsync/internal/models"
	"github.com/dmitrijs2005/confsync/internal/transform"
)

// Reader is the read-side façade. Policy, in order: serve a valid cached
// envelope immediately; on miss (or after corruption self-heal) sync
// synchronously; on refresh failure keep serving the last good envelope.
// Callers never see envelopes or confidential fields.
type Reader struct {
	store   *cache.Store
	monitor *cache.Monitor
	orch    *Orchestrator
	log     logging.Logger
}

func NewReader(store *cache.Store, monitor *cache.Monitor, orch *Orchestrator, log logging.Logger) *Reader {
	return &Reader{
		store:   store,
		monitor: monitor,
		orch:    orch,
		log:     log.With("component", "reader"),
	}
}

// Get returns the records for table, cache-first. A page that already has
// usable data never blocks on the network. An empty cached table is valid
// data, not a miss.
func (r *Reader) Get(ctx context.Context, table string) ([]models.Record, error) {
	if _, ok := transform.Spec(table); !ok {
		return nil, fmt.Errorf("%q: %w", table, common.ErrUnknownTable)
	}

	env := r.readValid(ctx, table)
	if env != nil {
		return env.Data, nil
	}

	// No usable cache: this is an initial load, so a failure is visible.
	return r.orch.SyncTable(ctx, table)
}

// Refresh forces a sync of table. If the sync fails and a valid envelope
// survives, the cached data is served instead; a failed refresh never
// clears or overwrites good cache.
func (r *Reader) Refresh(ctx context.Context, table string) ([]models.Record, error) {
	records, err := r.orch.SyncTable(ctx, table)
	if err == nil {
		return records, nil
	}

	if env := r.readValid(ctx, table); env != nil {
		r.log.Warn(ctx, "refresh failed, serving cached data", "table", table, "error", err)
		return env.Data, nil
	}
	return nil, err
}

// readValid reads the table envelope and validates it. Corrupt envelopes
// are cleared by the monitor; both corruption and storage failures are
// reported as a miss so the caller falls back to a sync.
func (r *Reader) readValid(ctx context.Context, table string) *models.CacheEnvelope {
	env, err := r.store.Read(ctx, cache.Key(table))
	if err != nil {
		r.log.Error(ctx, "cache read failed", "table", table, "error", err)
		return nil
	}
	if err := r.monitor.Validate(ctx, env); err != nil {
		return nil
	}
	return env
}

func decodeRecords[T any](records []models.Record) ([]T, error) {
	b, err := json.Marshal(records)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(records))
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func getAs[T any](r *Reader, ctx context.Context, table string) ([]T, error) {
	records, err := r.Get(ctx, table)
	if err != nil {
		return nil, err
	}
	return decodeRecords[T](records)
}

func (r *Reader) Attendees(ctx context.Context) ([]models.Attendee, error) {
	return getAs[models.Attendee](r, ctx, transform.TableAttendees)
}

func (r *Reader) AgendaItems(ctx context.Context) ([]models.AgendaItem, error) {
	return getAs[models.AgendaItem](r, ctx, transform.TableAgendaItems)
}

func (r *Reader) DiningOptions(ctx context.Context) ([]models.DiningOption, error) {
	return getAs[models.DiningOption](r, ctx, transform.TableDiningOptions)
}

func (r *Reader) Sponsors(ctx context.Context) ([]models.Sponsor, error) {
	return getAs[models.Sponsor](r, ctx, transform.TableSponsors)
}

func (r *Reader) Hotels(ctx context.Context) ([]models.Hotel, error) {
	return getAs[models.Hotel](r, ctx, transform.TableHotels)
}

func (r *Reader) SeatAssignments(ctx context.Context) ([]models.SeatAssignment, error) {
	return getAs[models.SeatAssignment](r, ctx, transform.TableSeatAssignments)
}

func (r *Reader) SeatingConfigurations(ctx context.Context) ([]models.SeatingConfiguration, error) {
	return getAs[models.SeatingConfiguration](r, ctx, transform.TableSeatingConfigurations)
}

// SeatFor resolves an attendee's seat assignment together with its seating
// configuration. The bridge lookup happens at read time; the join is never
// cached pre-computed. Returns common.ErrNotFound when the attendee has no
// assignment.
func (r *Reader) SeatFor(ctx context.Context, attendeeID string) (*models.SeatDetail, error) {
	assignments, err := r.SeatAssignments(ctx)
	if err != nil {
		return nil, err
	}

	var assignment *models.SeatAssignment
	for i := range assignments {
		if assignments[i].AttendeeID == attendeeID {
			assignment = &assignments[i]
			break
		}
	}
	if assignment == nil {
		return nil, fmt.Errorf("seat for attendee %q: %w", attendeeID, common.ErrNotFound)
	}

	detail := &models.SeatDetail{Assignment: *assignment}

	configs, err := r.SeatingConfigurations(ctx)
	if err != nil {
		return nil, err
	}
	for i := range configs {
		if configs[i].ID == assignment.SeatingConfigurationID {
			detail.Configuration = &configs[i]
			break
		}
	}
	return detail, nil
}
