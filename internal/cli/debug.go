package cli

import (
	"encoding/json"
	"fmt"
)

type DebugCmd struct {
	DBPath   *DebugDBPathCmd   `cmd:"" help:"Show store path."`
	DumpPill *DebugDumpPillCmd `cmd:"" help:"Dump pill data as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *Context) error {
	// Output in machine-readable format
	output := map[string]string{
		"path": ctx.Store.GetStorePath(),
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}

type DebugDumpPillCmd struct {
	Pill string `arg:"" help:"Pill id or name to dump."`
}

func (cmd *DebugDumpPillCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}

	pill, err := findPill(ctx.Store, cmd.Pill)
	if err != nil {
		return err
	}

	jsonBytes, err := json.MarshalIndent(pill, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal pill: %w", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}
