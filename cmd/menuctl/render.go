package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/preston-bernstein/campus-dining-service/internal/app/dining"
	"github.com/preston-bernstein/campus-dining-service/internal/menu"
)

func writeJSON(w io.Writer, payload any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func renderDay(w io.Writer, board dining.Board) error {
	fmt.Fprintf(w, "%s (%s)\n", board.Date, board.Tier)
	if len(board.Meals) == 0 {
		_, err := fmt.Fprintln(w, "  no meals scheduled")
		return err
	}
	for _, m := range board.Meals {
		fmt.Fprintf(w, "  %s  %s\n", m.Name, m.Window)
		fmt.Fprintf(w, "    %s\n", strings.Join(m.Items, ", "))
		if len(m.Highlights) > 0 {
			fmt.Fprintf(w, "    highlights: %s\n", strings.Join(m.Highlights, ", "))
		}
	}
	return nil
}

func renderBoard(w io.Writer, board dining.Board) error {
	fmt.Fprintf(w, "%s (%s)\n", board.Date, board.Tier)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, m := range board.Meals {
		countdown := m.Countdown
		if countdown == "" {
			countdown = "-"
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", m.Name, m.Window, m.Status, countdown)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if board.Next != nil {
		return renderNext(w, *board.Next, true)
	}
	return nil
}

func renderNext(w io.Writer, next dining.Upcoming, ok bool) error {
	if !ok {
		_, err := fmt.Fprintf(w, "no upcoming meals in the next %d days\n", dining.MaxRolloverDays)
		return err
	}
	_, err := fmt.Fprintf(w, "next: %s on %s at %s (in %s)\n", next.Meal.Name, next.Date, next.Meal.Start, next.Meal.Countdown)
	return err
}

func renderWeeks(w io.Writer, weeks []dining.Week) error {
	if len(weeks) == 0 {
		_, err := fmt.Fprintln(w, "no menu available")
		return err
	}
	for _, week := range weeks {
		fmt.Fprintln(w, week.Label)
		for _, day := range week.Days {
			names := make([]string, 0, len(day.Meals))
			for _, m := range day.Meals {
				names = append(names, m.Name)
			}
			fmt.Fprintf(w, "  %s  %s\n", day.Date, strings.Join(names, ", "))
		}
	}
	return nil
}

func renderRefresh(w io.Writer, res menu.RefreshResult) error {
	switch {
	case res.Updated:
		fmt.Fprintf(w, "refreshed %s (sequence %d, tier %s, persisted %t)\n", res.Month, res.Sequence, res.Tier, res.Persisted)
	case res.Stale:
		fmt.Fprintf(w, "refresh of %s superseded by a later refresh\n", res.Month)
	default:
		fmt.Fprintf(w, "refresh of %s failed: %v (serving %s)\n", res.Month, res.Err, res.Tier)
	}
	return nil
}
