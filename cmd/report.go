package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/etnz/capscope"
	"github.com/etnz/capscope/date"
	"github.com/etnz/capscope/renderer"
	"github.com/google/subcommands"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	providerFlags
	date   string
	sector string
	top    int
	style  string
	width  int
	raw    bool
	// processed
	on date.Date
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display the market cap ranking as a formatted report" }
func (*reportCmd) Usage() string {
	return `capscope report [-d <date>] [-s <sector>] [-t <n>] [-style <style>]

  Display the overall ranking followed by the ranking of each sector.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Query date (YYYY-MM-DD), defaults to today")
	f.StringVar(&c.sector, "s", "", "Only display this sector (English name, e.g. Energy)")
	f.IntVar(&c.top, "t", 10, "Number of stocks per table, all of them if negative")
	f.StringVar(&c.style, "style", "auto", "Terminal style (auto, dark, light, notty, ascii)")
	f.IntVar(&c.width, "w", 120, "Word wrap width")
	f.BoolVar(&c.raw, "raw", false, "Print the markdown source")
	c.providerFlags.SetFlags(f)
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var err error
	if c.on, err = parseDay(c.date); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	p, err := c.pipeline()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return c.run(ctx, p, os.Stdout, os.Stderr)
}

func (c *reportCmd) run(ctx context.Context, p *capscope.Pipeline, stdout, stderr io.Writer) subcommands.ExitStatus {
	res, err := p.Run(ctx, c.on, printProgress(stderr))
	fmt.Fprintln(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.sector != "" {
		if _, ok := selectStocks(res.Stocks, c.sector, c.top); !ok {
			return subcommands.ExitFailure
		}
	}
	md := renderer.RenderRanking(renderer.NewRanking(res, c.sector, c.top, time.Now()))
	if c.raw {
		fmt.Fprint(stdout, md)
		return subcommands.ExitSuccess
	}
	printMarkdown(stdout, md, c.style, c.width)
	return subcommands.ExitSuccess
}
