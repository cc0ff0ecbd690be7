package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/etnz/capscope"
	"github.com/google/subcommands"
)

// universeCmd holds the flags for the 'universe' subcommand.
type universeCmd struct {
	list bool
}

func (*universeCmd) Name() string     { return "universe" }
func (*universeCmd) Synopsis() string { return "display the stock universe" }
func (*universeCmd) Usage() string {
	return `capscope universe [-l]

  Display the number of stocks in the universe and the membership files it is made of.
`
}

func (c *universeCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.list, "l", false, "List the tickers")
}

func (c *universeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	c.print(os.Stdout, membershipDir())
	return subcommands.ExitSuccess
}

func (c *universeCmd) print(w io.Writer, dir string) {
	tickers := capscope.LoadUniverse(dir)
	fmt.Fprintf(w, "%d tickers in %s\n", len(tickers), dir)

	info := capscope.LoadUniverseInfo(dir)
	names := make([]string, 0, len(info))
	for name := range info {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-16s %4d tickers, updated %s\n", name, info[name].Count, info[name].Updated)
	}
	if c.list {
		for _, t := range tickers {
			fmt.Fprintln(w, t)
		}
	}
}
