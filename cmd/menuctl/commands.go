package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/campus-dining-service/internal/app/dining"
	"github.com/preston-bernstein/campus-dining-service/internal/timeutil"
)

func newDayCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "day [YYYY-MM-DD]",
		Short: "Print the menu for a date (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: c.run(func(cmd *cobra.Command, args []string) error {
			date, err := c.date(args)
			if err != nil {
				return err
			}
			dm := c.comps.Service.Day(date)
			if c.asJSON {
				return writeJSON(cmd.OutOrStdout(), dm)
			}
			board, err := c.comps.Service.Board(date, c.now)
			if err != nil {
				return err
			}
			return renderDay(cmd.OutOrStdout(), board)
		}),
	}
}

func newBoardCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "board [YYYY-MM-DD]",
		Short: "Print every meal's status and countdown",
		Args:  cobra.MaximumNArgs(1),
		RunE: c.run(func(cmd *cobra.Command, args []string) error {
			date, err := c.date(args)
			if err != nil {
				return err
			}
			board, err := c.comps.Service.Board(date, c.now)
			if err != nil {
				return err
			}
			if c.asJSON {
				return writeJSON(cmd.OutOrStdout(), board)
			}
			return renderBoard(cmd.OutOrStdout(), board)
		}),
	}
}

func newNextCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Print the next meal to start",
		Args:  cobra.NoArgs,
		RunE: c.run(func(cmd *cobra.Command, args []string) error {
			next, ok, err := c.comps.Service.Next(c.now)
			if err != nil {
				return err
			}
			if c.asJSON {
				var payload *dining.Upcoming
				if ok {
					payload = &next
				}
				return writeJSON(cmd.OutOrStdout(), map[string]*dining.Upcoming{"next": payload})
			}
			return renderNext(cmd.OutOrStdout(), next, ok)
		}),
	}
}

func newWeeksCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "weeks",
		Short: "Print the monthly menu grouped by week",
		Args:  cobra.NoArgs,
		RunE: c.run(func(cmd *cobra.Command, args []string) error {
			weeks := c.comps.Service.Weeks()
			if c.asJSON {
				return writeJSON(cmd.OutOrStdout(), weeks)
			}
			return renderWeeks(cmd.OutOrStdout(), weeks)
		}),
	}
}

func newRefreshCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:         "refresh [YYYY-MM-DD]",
		Short:       "Fetch the month containing a date and update the cache",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{annotationWritesCache: "true"},
		RunE: c.run(func(cmd *cobra.Command, args []string) error {
			date, err := c.date(args)
			if err != nil {
				return err
			}
			res := c.comps.Service.Refresh(c.context(cmd), date)
			if c.asJSON {
				if err := writeJSON(cmd.OutOrStdout(), res); err != nil {
					return err
				}
			} else if err := renderRefresh(cmd.OutOrStdout(), res); err != nil {
				return err
			}
			if res.Err != nil && !res.Stale {
				return fmt.Errorf("refresh %s: %w", res.Month, res.Err)
			}
			return nil
		}),
	}
}

func (c *cli) date(args []string) (string, error) {
	if len(args) == 0 {
		return c.comps.Service.Today(c.now), nil
	}
	if !timeutil.IsDate(args[0]) {
		return "", fmt.Errorf("%w: %q (expected YYYY-MM-DD)", dining.ErrInvalidDate, args[0])
	}
	return args[0], nil
}
