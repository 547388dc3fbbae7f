package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/dcoutinho/tempora/internal/cli"
	"github.com/dcoutinho/tempora/internal/constants"
	"github.com/dcoutinho/tempora/internal/errors"
	"github.com/dcoutinho/tempora/internal/logger"
	"github.com/dcoutinho/tempora/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Data    string `help:"Data file path (.json or .db)." type:"path" default:"~/.config/tempora/data.json"`
	Debug   bool   `help:"Enable debug logging."`

	Init   cli.InitCmd   `cmd:"" help:"Initialize tempora data."`
	Track  cli.TrackCmd  `cmd:"" help:"Launch the interactive tracking dashboard." default:"1"`
	Serve  cli.ServeCmd  `cmd:"" help:"Serve the HTTP dashboard API."`
	Manual cli.ManualCmd `cmd:"" help:"Record a manual time entry."`
	Report cli.ReportCmd `cmd:"" help:"Show a daily, weekly, or monthly report."`
	Task   struct {
		List cli.TaskListCmd `cmd:"" help:"List tasks with tracked totals."`
		Add  cli.TaskAddCmd  `cmd:"" help:"Add a new task."`
	} `cmd:"" help:"Manage tasks."`
	Records cli.RecordListCmd `cmd:"" help:"List time records with filtering and sorting."`
	Backup  struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a backup of the data file."`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore a backup."`
	} `cmd:"" help:"Manage data backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal time tracking: stopwatches, goals, and reports"),
		kong.UsageOnError(),
		kong.Vars{
			"version":     constants.Version,
			"listen_addr": constants.DefaultListenAddr,
		},
	)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, DataDir: filepath.Dir(CLI.Data)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	store := storage.ForPath(CLI.Data)
	appCtx := &cli.Context{Store: store, DataPath: CLI.Data}

	err := ctx.Run(appCtx)
	store.Close()
	if err != nil {
		errors.Fatal(err)
	}
}
