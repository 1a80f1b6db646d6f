package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/geosick-health/geosick/internal/client/activity"
	"github.com/geosick-health/geosick/internal/client/shell"
)

func printEntries(entries []activity.Entry, withPhone bool) {
	if len(entries) == 0 {
		fmt.Println("No activity yet.")
		return
	}
	for _, e := range entries {
		ts := time.UnixMilli(e.Timestamp).Format("2006-01-02 15:04")
		if withPhone {
			fmt.Printf("%s  %-22s %-14s %s\n", ts, e.Type, e.UserPhone, e.Title)
		} else {
			fmt.Printf("%s  %-22s %s\n", ts, e.Type, e.Title)
		}
	}
}

func (a *App) showHistory(ctx context.Context) {
	if !a.isLoggedIn() {
		fmt.Println("Please log in first.")
		return
	}
	a.shell.GoTo(shell.PageActivityHistory)
	printEntries(a.shell.History(), false)
}

func (a *App) showGlobalHistory(ctx context.Context) {
	entries, err := a.shell.GlobalHistory(ctx)
	if err != nil {
		fmt.Println("Access denied. Admin features are disabled.")
		return
	}
	a.shell.GoTo(shell.PageAdminDashboard)
	printEntries(entries, true)
}
