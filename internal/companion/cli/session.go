package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/magielabs/companion/internal/companion/models"
)

// LogSession records a practice session with an optional note.
func (a *App) LogSession(ctx context.Context) error {
	note, err := GetMultiline(a.reader, "Note (optional)", os.Stdout)
	if err != nil {
		return err
	}

	added, err := a.data.AddSession(ctx, a.session, models.SessionTypeSession, note)
	if err != nil {
		printlnFn("Could not log session:", err.Error())
		return err
	}

	printlnFn("Logged session", added.ID)
	return nil
}

// ListSessions prints the logged sessions, newest first.
func (a *App) ListSessions(ctx context.Context) error {
	sessions, err := a.data.Sessions(ctx)
	if err != nil {
		printlnFn("Could not list sessions:", err.Error())
		return err
	}

	if len(sessions) == 0 {
		printlnFn("No sessions logged yet.")
		return nil
	}

	for _, s := range sessions {
		line := fmt.Sprintf("%d  %s  %s", s.ID, s.Timestamp.Format("2006-01-02 15:04"), s.Type)
		if s.Note != "" {
			line += "  " + s.Note
		}
		printlnFn(line)
	}
	return nil
}

// Stats prints the session count and the number of days practicing.
func (a *App) Stats(ctx context.Context) error {
	count, err := a.data.SessionCount(ctx)
	if err != nil {
		return err
	}
	days, err := a.data.DaysPracticing(ctx)
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Sessions: %d", count))
	printlnFn(fmt.Sprintf("Days practicing: %d", days))
	return nil
}
