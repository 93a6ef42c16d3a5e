package cli

import "fmt"

type DeleteCmd struct {
	Pill string `arg:"" help:"Pill id or name."`
}

func (c *DeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	pill, err := findPill(ctx.Store, c.Pill)
	if err != nil {
		return err
	}

	if err := ctx.Store.DeletePill(pill.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted pill: %s\n", pill.Name)
	return nil
}
