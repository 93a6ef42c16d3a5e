package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"pillbox/internal/cli"
	"pillbox/internal/logger"
	"pillbox/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Store file path." type:"path" default:"~/.config/pillbox/pillbox.db"`
	Debug   bool   `help:"Enable debug logging."`

	Init          cli.InitCmd          `cmd:"" help:"Initialize pillbox storage."`
	Tui           cli.TuiCmd           `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Add           cli.AddCmd           `cmd:"" help:"Add a new pill."`
	List          cli.ListCmd          `cmd:"" help:"List all pills."`
	Edit          cli.EditCmd          `cmd:"" help:"Edit an existing pill."`
	Delete        cli.DeleteCmd        `cmd:"" help:"Delete a pill."`
	Today         cli.TodayCmd         `cmd:"" help:"Show pills due today."`
	Take          cli.TakeCmd          `cmd:"" help:"Mark a dose as taken."`
	Remind        cli.RemindCmd        `cmd:"" help:"Schedule reminders for upcoming doses."`
	Notifications cli.NotificationsCmd `cmd:"" help:"Manage notification permission."`
	Backup        cli.BackupCmd        `cmd:"" help:"Manage store backups."`
	Doctor        cli.DoctorCmd        `cmd:"" help:"Run health diagnostics."`
	DebugTools    cli.DebugCmd         `cmd:"" name:"debug" help:"Debugging helpers."`
	Serve         cli.ServeCmd         `cmd:"" help:"Serve the HTTP API."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("pillbox"),
		kong.Description("Pill reminder and medication tracker"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	// Determine storage backend based on extension
	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}

	appCtx := &cli.Context{
		Store: store,
		Debug: CLI.Debug,
	}

	err := ctx.Run(appCtx)
	if closeErr := store.Close(); closeErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close store: %v\n", closeErr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
