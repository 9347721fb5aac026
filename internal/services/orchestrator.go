package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/confsync/internal/cache"
	"github.com/dmitrijs2005/confsync/internal/common"
	"github.com/dmitrijs2005/confsync/internal/logging"
	"github.com/dmitrijs2005/confsync/internal/models"
	"github.com/dmitrijs2005/confsync/internal/remote"
	"github.com/dmitrijs2005/confsync/internal/transform"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// TableResult reports the outcome of one table within a multi-table sync.
type TableResult struct {
	Records int
	Err     error
}

// Orchestrator fetches tables from the remote source, drives them through
// the transform pipeline and writes the result to the cache store. All
// cache writes in the process go through here.
type Orchestrator struct {
	source remote.Source
	store  *cache.Store
	runlog *cache.RunLog
	status *StatusTracker
	log    logging.Logger

	// group collapses concurrent syncs of the same table into one in-flight
	// operation: a second caller awaits the first caller's outcome instead
	// of issuing a duplicate fetch.
	group singleflight.Group
}

// NewOrchestrator constructs the orchestrator. runlog may be nil to disable
// run logging.
func NewOrchestrator(source remote.Source, store *cache.Store, runlog *cache.RunLog, status *StatusTracker, log logging.Logger) *Orchestrator {
	return &Orchestrator{
		source: source,
		store:  store,
		runlog: runlog,
		status: status,
		log:    log.With("component", "orchestrator"),
	}
}

// SyncTable fetches, transforms, filters and caches one table, returning
// the processed records. Unknown table names fail with
// common.ErrUnknownTable.
func (o *Orchestrator) SyncTable(ctx context.Context, name string) ([]models.Record, error) {
	return o.syncTable(ctx, uuid.NewString(), name)
}

// SyncAll processes every known table in order, best-effort: one table's
// failure is reported in its result and the remaining tables still sync.
func (o *Orchestrator) SyncAll(ctx context.Context) map[string]TableResult {
	runID := uuid.NewString()
	o.log.Info(ctx, "full sync started", "run_id", runID)

	results := make(map[string]TableResult, len(transform.SyncOrder()))
	for _, name := range transform.SyncOrder() {
		records, err := o.syncTable(ctx, runID, name)
		results[name] = TableResult{Records: len(records), Err: err}
		if err != nil {
			o.log.Warn(ctx, "table sync failed, continuing", "run_id", runID, "table", name, "error", err)
		}
	}

	o.log.Info(ctx, "full sync finished", "run_id", runID)
	return results
}

func (o *Orchestrator) syncTable(ctx context.Context, runID, name string) ([]models.Record, error) {
	spec, ok := transform.Spec(name)
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, common.ErrUnknownTable)
	}

	// The winning caller's context drives the shared fetch; duplicates just
	// await its outcome.
	v, err, shared := o.group.Do(name, func() (any, error) {
		return o.doSync(ctx, runID, spec)
	})
	if shared {
		o.log.Debug(ctx, "joined in-flight sync", "table", name)
	}
	if err != nil {
		return nil, err
	}
	return v.([]models.Record), nil
}

func (o *Orchestrator) doSync(ctx context.Context, runID string, spec transform.TableSpec) ([]models.Record, error) {
	o.status.BeginSync()
	defer o.status.EndSync()

	started := time.Now()

	raw, err := o.source.FetchTable(ctx, spec.Name)
	if err != nil {
		if errors.Is(err, common.ErrNetwork) {
			o.status.SetOnline(false)
		}
		o.recordRun(ctx, runID, spec.Name, 0, err, started)
		return nil, &common.SyncError{Table: spec.Name, Err: err}
	}

	records := transform.Pipeline(spec, raw, o.speakerLookup(ctx, spec))

	if err := o.store.Write(ctx, cache.Key(spec.Name), records); err != nil {
		o.recordRun(ctx, runID, spec.Name, 0, err, started)
		return nil, &common.SyncError{Table: spec.Name, Err: err}
	}

	o.status.MarkSynced(time.Now())
	o.recordRun(ctx, runID, spec.Name, len(records), nil, started)
	o.log.Info(ctx, "table synced",
		"run_id", runID, "table", spec.Name,
		"raw", len(raw), "cached", len(records),
		"took", time.Since(started))

	return records, nil
}

// speakerLookup builds the agenda speaker join input from the cached,
// already-filtered attendee snapshot. Tables that do not enrich get nil.
func (o *Orchestrator) speakerLookup(ctx context.Context, spec transform.TableSpec) transform.SpeakerLookup {
	if spec.Enrich == nil {
		return nil
	}
	env, err := o.store.Read(ctx, cache.Key(transform.TableAttendees))
	if err != nil || env == nil {
		if err != nil {
			o.log.Warn(ctx, "speaker lookup unavailable", "table", spec.Name, "error", err)
		}
		return transform.BuildSpeakerLookup(nil)
	}
	return transform.BuildSpeakerLookup(env.Data)
}

func (o *Orchestrator) recordRun(ctx context.Context, runID, table string, records int, runErr error, started time.Time) {
	if o.runlog == nil {
		return
	}
	e := cache.RunEntry{
		RunID:      runID,
		Table:      table,
		Records:    records,
		StartedAt:  started,
		FinishedAt: time.Now(),
	}
	if runErr != nil {
		e.Error = runErr.Error()
	}
	if err := o.runlog.Record(ctx, e); err != nil {
		o.log.Warn(ctx, "failed to record sync run", "table", table, "error", err)
	}
}
