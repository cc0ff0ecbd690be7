package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/capscope"
	"github.com/etnz/capscope/constituents"
	"github.com/etnz/capscope/date"
	"github.com/google/subcommands"
)

// updateUniverseCmd holds the flags for the 'update-universe' subcommand.
type updateUniverseCmd struct{}

func (*updateUniverseCmd) Name() string { return "update-universe" }
func (*updateUniverseCmd) Synopsis() string {
	return "refresh the S&P 500 and Nasdaq-100 membership files"
}
func (*updateUniverseCmd) Usage() string {
	return `capscope update-universe

  Download the current S&P 500 and Nasdaq-100 constituents and rewrite the
  membership files. A file is left untouched when its index cannot be fetched.
`
}

func (*updateUniverseCmd) SetFlags(f *flag.FlagSet) {}

func (*updateUniverseCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	dir := membershipDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	err := constituents.Update(ctx, dir, capscope.NewCachingClient(), date.Today())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
