package cli

import (
	"context"
	"fmt"
	"os"
	"sort"

	"golang.org/x/term"
)

// readToken is a test seam for term.ReadPassword.
var readToken = func() ([]byte, error) {
	return term.ReadPassword(int(os.Stdin.Fd()))
}

func (a *App) Sync(ctx context.Context, args []string) {
	if len(args) > 0 {
		records, err := a.orch.SyncTable(ctx, args[0])
		if err != nil {
			fmt.Println("sync failed:", err)
			return
		}
		fmt.Printf("%s: %d records\n", args[0], len(records))
		return
	}

	results := a.orch.SyncAll(ctx)
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		r := results[name]
		if r.Err != nil {
			fmt.Printf("%s: FAILED: %v\n", name, r.Err)
			continue
		}
		fmt.Printf("%s: %d records\n", name, r.Records)
	}
}

func (a *App) Status(ctx context.Context) {
	s := a.status.Snapshot()
	fmt.Println("online:          ", s.IsOnline)
	fmt.Println("sync in progress:", s.SyncInProgress)
	fmt.Println("pending changes: ", s.PendingChanges)
	if s.LastSync != nil {
		fmt.Println("last sync:       ", s.LastSync.Format("2006-01-02 15:04:05 MST"))
	} else {
		fmt.Println("last sync:        never")
	}
}

func (a *App) Runs(ctx context.Context) {
	entries, err := a.runlog.Recent(ctx, 20)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, e := range entries {
		outcome := fmt.Sprintf("%d records", e.Records)
		if e.Error != "" {
			outcome = "FAILED: " + e.Error
		}
		fmt.Printf("%s  %-24s %s\n", e.FinishedAt.Format("15:04:05"), e.Table, outcome)
	}
}

func (a *App) Attendees(ctx context.Context) {
	items, err := a.reader.Attendees(ctx)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, item := range items {
		fmt.Printf("%-12s %-30s %s\n", item.ID, item.DisplayName, item.Company)
	}
	fmt.Println(len(items), "attendees")
}

func (a *App) Agenda(ctx context.Context) {
	items, err := a.reader.AgendaItems(ctx)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, item := range items {
		speakers := ""
		for i, s := range item.Speakers {
			if i > 0 {
				speakers += ", "
			}
			speakers += s.DisplayName
		}
		fmt.Printf("%s %s-%s  %-40s %s\n", item.Day, item.StartTime, item.EndTime, item.Title, speakers)
	}
}

func (a *App) Dining(ctx context.Context) {
	items, err := a.reader.DiningOptions(ctx)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, item := range items {
		fmt.Printf("%s %s  %-30s %s (%d tables)\n", item.Day, item.StartTime, item.Name, item.Location, len(item.Tables))
	}
}

func (a *App) Sponsors(ctx context.Context) {
	items, err := a.reader.Sponsors(ctx)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, item := range items {
		fmt.Printf("%-10s %-30s %s\n", item.Tier, item.Name, item.Website)
	}
}

func (a *App) Hotels(ctx context.Context) {
	items, err := a.reader.Hotels(ctx)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, item := range items {
		fmt.Printf("%-30s %s (%s)\n", item.Name, item.Address, item.DistanceToVenue)
	}
}

func (a *App) Seat(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("usage: seat <attendee-id>")
		return
	}
	detail, err := a.reader.SeatFor(ctx, args[0])
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("table %s, seat %d\n", detail.Assignment.TableName, detail.Assignment.SeatNumber)
	if detail.Configuration != nil {
		fmt.Printf("layout %s: %d tables x %d seats\n",
			detail.Configuration.LayoutType,
			detail.Configuration.TotalTables,
			detail.Configuration.SeatsPerTable)
	}
}

func (a *App) Logo(ctx context.Context, args []string) {
	if a.assets == nil {
		fmt.Println("asset cache is not configured")
		return
	}
	if len(args) != 1 {
		fmt.Println("usage: logo <sponsor-id>")
		return
	}
	sponsors, err := a.reader.Sponsors(ctx)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, s := range sponsors {
		if s.ID != args[0] {
			continue
		}
		if s.LogoKey == "" {
			fmt.Println("sponsor has no logo")
			return
		}
		path, err := a.assets.EnsureLocal(ctx, s.LogoKey)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		fmt.Println(path)
		return
	}
	fmt.Println("unknown sponsor:", args[0])
}

// Login replaces the access token for the remote row store. The token is
// read without echo.
func (a *App) Login(ctx context.Context) {
	fmt.Print("Access token: ")
	token, err := readToken()
	fmt.Println()
	if err != nil {
		fmt.Println("error reading token:", err)
		return
	}
	a.remote.SetToken(string(token))
	fmt.Println("token updated")
}
