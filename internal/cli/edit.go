package cli

import (
	"fmt"
	"time"

	"pillbox/internal/constants"
	"pillbox/internal/validation"
)

type EditCmd struct {
	Pill         string  `arg:"" help:"Pill id or name."`
	Name         *string `help:"New pill name."`
	Dosage       *string `short:"d" help:"New dosage with unit."`
	Instructions *string `help:"New intake instructions."`
	End          *string `short:"e" help:"New end date (YYYY-MM-DD), or 'none' to clear."`
}

func (c *EditCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	pill, err := findPill(ctx.Store, c.Pill)
	if err != nil {
		return err
	}

	if c.Name != nil {
		pill.Name = *c.Name
	}
	if c.Dosage != nil {
		pill.Dosage = *c.Dosage
	}
	if c.Instructions != nil {
		pill.Instructions = *c.Instructions
	}
	if c.End != nil {
		if *c.End == "none" {
			pill.Frequency.EndDate = nil
		} else {
			end, err := time.Parse(constants.DateFormat, *c.End)
			if err != nil {
				return fmt.Errorf("invalid end date: %w", err)
			}
			pill.Frequency.EndDate = &end
		}
	}

	if result := validation.New().ValidatePill(pill); !result.IsValid() {
		return fmt.Errorf("%s", result.FormatReport())
	}

	if err := ctx.Store.UpdatePill(pill); err != nil {
		return err
	}

	fmt.Printf("Updated pill: %s\n", pill.Name)
	return nil
}
