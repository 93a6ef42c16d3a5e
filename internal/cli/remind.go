package cli

import (
	"fmt"
	"time"

	"pillbox/internal/constants"
	"pillbox/internal/notifier"
	"pillbox/internal/scheduler"
)

type RemindCmd struct {
	DryRun bool `help:"Print reminders to stdout instead of scheduling them."`
	Wait   bool `help:"Stay in the foreground until all scheduled reminders fire."`
}

// Run arms a one-shot reminder for every upcoming dose today. Meant to be
// invoked from a login script or timer unit; the TUI schedules on its own.
func (c *RemindCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if err := ctx.LoadDispatcher(); err != nil {
		return err
	}

	pills, err := ctx.Store.GetAllPills()
	if err != nil {
		return err
	}

	now := time.Now()
	upcoming := scheduler.UpcomingReminders(pills, now)
	if len(upcoming) == 0 {
		fmt.Println("No upcoming doses today.")
		return nil
	}

	if c.DryRun {
		for _, rem := range upcoming {
			fmt.Printf("[DryRun] %s  Time for %s (%s)\n",
				rem.FireAt.Format(constants.TimeFormat), rem.Pill.Name, rem.Pill.Dosage)
		}
		return nil
	}

	if ctx.Dispatcher.Permission() != notifier.PermissionGranted {
		fmt.Println("Notifications are not enabled. Run 'pillbox notifications enable' first.")
		return nil
	}

	sched := scheduler.New(ctx.Dispatcher)
	var last time.Time
	for _, rem := range upcoming {
		fireAt, err := sched.ScheduleReminder(rem.Pill.Name, rem.Slot.Time)
		if err != nil {
			return err
		}
		fmt.Printf("Scheduled: %s at %s\n", rem.Pill.Name, fireAt.Format(constants.TimeFormat))
		if fireAt.After(last) {
			last = fireAt
		}
	}

	if c.Wait && !last.IsZero() {
		fmt.Printf("Waiting until %s...\n", last.Format(constants.TimeFormat))
		time.Sleep(time.Until(last) + time.Second)
		sched.Stop()
	}

	return nil
}
