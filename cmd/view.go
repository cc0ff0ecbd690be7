package cmd

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/etnz/capscope/tui"
	"github.com/google/subcommands"
)

// viewCmd holds the flags for the 'view' subcommand.
type viewCmd struct {
	providerFlags
	date      string
	exportDir string
	logFile   string
}

func (*viewCmd) Name() string     { return "view" }
func (*viewCmd) Synopsis() string { return "browse the market cap ranking interactively" }
func (*viewCmd) Usage() string {
	return `capscope view [-d <date>] [-export <dir>] [-log <file>]

  Browse the market caps in a table, one tab per sector.

  Keys: tab/shift+tab switch tabs, / search, d change the date, r refresh,
  e export the current tab to CSV, q quit.
`
}

func (c *viewCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Query date (YYYY-MM-DD), defaults to today")
	f.StringVar(&c.exportDir, "export", ".", "Folder of the exported CSV files")
	f.StringVar(&c.logFile, "log", filepath.Join(os.TempDir(), fmt.Sprintf("capscope-%s.log", time.Now().Format("2006-01-02"))), "Log file")
	c.providerFlags.SetFlags(f)
}

func (c *viewCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	p, err := c.pipeline()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	// the table owns the terminal, logs go to a file.
	logFile, err := os.OpenFile(c.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: opening log file: %v\n", err)
		return subcommands.ExitFailure
	}
	defer logFile.Close()
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: logLevel})))
	defer slog.SetDefault(previous)

	if err := tui.Run(ctx, p.Run, on, c.exportDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
