package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/etnz/capscope"
	"github.com/etnz/capscope/date"
	"github.com/google/subcommands"
)

// rankCmd holds the flags for the 'rank' subcommand.
type rankCmd struct {
	providerFlags
	date   string
	out    string
	format string
	sector string
	top    int
	// processed
	on date.Date
}

func (*rankCmd) Name() string     { return "rank" }
func (*rankCmd) Synopsis() string { return "rank stocks by market cap on a given day" }
func (*rankCmd) Usage() string {
	return `capscope rank [-d <date>] [-o <file>] [-f csv|json] [-s <sector>] [-t <n>] [-v]

  Compute the market caps of the S&P 500 and Nasdaq-100 stocks on a given day
  and print the largest ones. When the day is not a trading day, the closes of
  the latest trading day before it are used.

  Without -o a condensed CSV is printed on the standard output.
`
}

func (c *rankCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Query date (YYYY-MM-DD), defaults to today")
	f.StringVar(&c.out, "o", "", "Output file, defaults to the standard output")
	f.StringVar(&c.format, "f", "csv", "Output format (csv, json)")
	f.StringVar(&c.sector, "s", "", "Only rank the stocks of this sector (English name, e.g. Technology)")
	f.IntVar(&c.top, "t", capscope.DefaultTopN, "Number of stocks to keep, all of them if negative")
	c.providerFlags.SetFlags(f)
}

func (c *rankCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.init(); err != nil {
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

func (c *rankCmd) init() error {
	var err error
	c.on, err = parseDay(c.date)
	if err != nil {
		return err
	}
	switch c.format {
	case "csv", "json":
	default:
		return fmt.Errorf("unknown format %q, use csv or json", c.format)
	}
	return nil
}

// run executes the pipeline and writes the ranking. Progress and errors are written to stderr.
func (c *rankCmd) run(ctx context.Context, p *capscope.Pipeline, stdout, stderr io.Writer) subcommands.ExitStatus {
	res, err := p.Run(ctx, c.on, printProgress(stderr))
	fmt.Fprintln(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if res.ActualDate != res.QueryDate {
		slog.Info("using another trading day", "actual", res.ActualDate, "requested", res.QueryDate)
	}

	stocks, ok := selectStocks(res.Stocks, c.sector, c.top)
	if !ok {
		return subcommands.ExitFailure
	}

	if c.out == "" {
		if err := c.print(stdout, res, stocks); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	if err := c.export(res, stocks); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	slog.Info("exported", "path", c.out, "stocks", len(stocks))
	return subcommands.ExitSuccess
}

func (c *rankCmd) print(w io.Writer, res *capscope.Result, stocks []capscope.Stock) error {
	if c.format == "json" {
		return capscope.EncodeJSON(w, capscope.NewReport(res.QueryDate, res.ActualDate, stocks, time.Now()))
	}
	return capscope.EncodeCondensed(w, stocks)
}

func (c *rankCmd) export(res *capscope.Result, stocks []capscope.Stock) (err error) {
	f, err := os.Create(c.out)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing output: %w", cerr)
		}
	}()
	if c.format == "json" {
		return capscope.EncodeJSON(f, capscope.NewReport(res.QueryDate, res.ActualDate, stocks, time.Now()))
	}
	return capscope.EncodeCSV(f, stocks)
}

// selectStocks returns the 'top' largest stocks of 'sector', or of all stocks if sector is empty.
//
// It returns false, after logging the available sectors, if no stock belongs to the sector.
func selectStocks(stocks []capscope.Stock, sector string, top int) ([]capscope.Stock, bool) {
	if sector == "" {
		return capscope.TopOverall(stocks, top), true
	}
	groups := capscope.RankBySector(stocks, top)
	selected, ok := groups[sector]
	if !ok {
		slog.Error("sector not found", "sector", sector)
		slog.Info("available sectors", "sectors", capscope.Sectors(groups))
		return nil, false
	}
	return selected, true
}

// parseDay parses a query date, an empty string is today.
func parseDay(s string) (date.Date, error) {
	if s == "" {
		return date.Today(), nil
	}
	on, err := date.Parse(s)
	if err != nil {
		return on, fmt.Errorf("parsing date: %w", err)
	}
	return on, nil
}

// printProgress returns a progress function rewriting a single line on w.
func printProgress(w io.Writer) capscope.ProgressFunc {
	return func(completed, total int) {
		pct := 100
		if total > 0 {
			pct = completed * 100 / total
		}
		fmt.Fprintf(w, "\rFetching metadata: %d/%d (%d%%)", completed, total, pct)
	}
}
