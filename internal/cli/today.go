package cli

import (
	"fmt"

	"pillbox/internal/constants"
	"pillbox/internal/scheduler"
)

type TodayCmd struct {
	Date string `help:"Date to show (YYYY-MM-DD), defaults to today."`
}

func (c *TodayCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	now, err := parseDate(c.Date)
	if err != nil {
		return fmt.Errorf("invalid date: %w", err)
	}

	pills, err := ctx.Store.GetAllPills()
	if err != nil {
		return err
	}

	due := scheduler.DueToday(pills, now)
	if len(due) == 0 {
		fmt.Printf("No pills due on %s\n", now.Format(constants.DateFormat))
		return nil
	}

	fmt.Printf("Pills due on %s:\n", now.Format(constants.DateFormat))
	for _, pill := range due {
		fmt.Printf("  %s - %s\n", pill.Name, pill.Dosage)
		fmt.Printf("      Times: %s\n", formatTimes(pill.Frequency.Times))
	}

	upcoming := scheduler.UpcomingReminders(pills, now)
	if len(upcoming) > 0 {
		fmt.Println("\nUpcoming doses:")
		for _, rem := range upcoming {
			fmt.Printf("  %s  %s (%s)\n", rem.FireAt.Format(constants.TimeFormat), rem.Pill.Name, rem.Pill.Dosage)
		}
	}

	return nil
}
