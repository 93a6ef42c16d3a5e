package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"pillbox/internal/backup"
	"pillbox/internal/logger"
	"pillbox/internal/scheduler"
	"pillbox/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if err := ctx.LoadDispatcher(); err != nil {
		return err
	}

	// Automatic backup on TUI startup, best effort.
	if _, err := backup.NewManager(ctx.Store.GetStorePath()).CreateBackup(); err != nil {
		logger.Warn("automatic backup failed", "error", err)
	}

	p := tea.NewProgram(tui.NewModel(ctx.Store, scheduler.New(ctx.Dispatcher)), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
	return nil
}
