package cli

import (
	"fmt"
	"time"
)

type TakeCmd struct {
	Pill string `arg:"" help:"Pill id or name."`
	Time string `short:"t" help:"Dose time (HH:MM). Defaults to the next untaken slot."`
}

func (c *TakeCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	pill, err := findPill(ctx.Store, c.Pill)
	if err != nil {
		return err
	}

	var slotID string
	for _, slot := range pill.Frequency.Times {
		if slot.Taken {
			continue
		}
		if c.Time == "" || slot.Time == c.Time {
			slotID = slot.ID
			break
		}
	}
	if slotID == "" {
		if c.Time != "" {
			return fmt.Errorf("no untaken %s dose for %s", c.Time, pill.Name)
		}
		return fmt.Errorf("all doses of %s are already taken", pill.Name)
	}

	if err := ctx.Store.MarkTaken(pill.ID, slotID, time.Now()); err != nil {
		return err
	}

	fmt.Printf("Marked %s as taken\n", pill.Name)
	return nil
}
