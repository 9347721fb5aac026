package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) getStatus() string {
	s := a.status.Snapshot()
	mode := "offline"
	if s.IsOnline {
		mode = "online"
	}
	if s.SyncInProgress {
		mode += ", syncing"
	}
	return fmt.Sprintf("(%s)", mode)
}

// Root runs the console loop. Command handlers print their own errors; the
// loop stays up until EOF or quit.
func (a *App) Root(ctx context.Context) {

	fmt.Println("confsync console (type 'help' for commands)")

	for {
		fmt.Printf("confsync %s> ", a.getStatus())
		if !a.in.Scan() {
			break
		}
		parts := strings.Fields(a.in.Text())
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			fmt.Println("Available commands: sync [table], status, runs, attendees, agenda, dining, sponsors, hotels, seat <attendee-id>, logo <sponsor-id>, login, exit")

		case "sync":
			a.Sync(ctx, args)

		case "status":
			a.Status(ctx)

		case "runs":
			a.Runs(ctx)

		case "attendees":
			a.Attendees(ctx)

		case "agenda":
			a.Agenda(ctx)

		case "dining":
			a.Dining(ctx)

		case "sponsors":
			a.Sponsors(ctx)

		case "hotels":
			a.Hotels(ctx)

		case "seat":
			a.Seat(ctx, args)

		case "logo":
			a.Logo(ctx, args)

		case "login":
			a.Login(ctx)

		case "exit", "quit":
			return

		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}
