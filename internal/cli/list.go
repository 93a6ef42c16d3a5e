package cli

import (
	"fmt"
	"time"

	"pillbox/internal/recurrence"
)

type ListCmd struct {
	ActiveOnly bool `help:"Show only pills active today."`
}

func (c *ListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	pills, err := ctx.Store.GetAllPills()
	if err != nil {
		return err
	}
	if len(pills) == 0 {
		fmt.Println("No pills found")
		return nil
	}

	now := time.Now()
	fmt.Println("Pills:")
	for _, pill := range pills {
		active := recurrence.IsActiveOn(pill.Frequency, now)
		if c.ActiveOnly && !active {
			continue
		}

		status := "active"
		if !active {
			status = "inactive"
		}

		fmt.Printf("  [%s] %s - %s (%s)\n", status, pill.Name, pill.Dosage, formatFrequency(pill.Frequency))
		fmt.Printf("      Times: %s\n", formatTimes(pill.Frequency.Times))
		if pill.Instructions != "" {
			fmt.Printf("      Instructions: %s\n", pill.Instructions)
		}
	}

	return nil
}
