// Package constituents refreshes the index membership files of the universe.
package constituents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/etnz/capscope"
	"github.com/etnz/capscope/date"
	"github.com/markcheno/go-quote"
)

// SP500URL is the Wikipedia page listing the S&P 500 constituents.
const SP500URL = "https://en.wikipedia.org/wiki/List_of_S%26P_500_companies"

// SP500 returns the current S&P 500 tickers, scraped from Wikipedia.
func SP500(ctx context.Context, client *http.Client) ([]capscope.Ticker, error) {
	return fetchSP500(ctx, client, SP500URL)
}

func fetchSP500(ctx context.Context, client *http.Client, addr string) ([]capscope.Ticker, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	// Wikipedia rejects requests without a user agent.
	req.Header.Set("User-Agent", "capscope/1.0 (market cap ranking tool)")
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	return parseSP500(resp.Body)
}

// parseSP500 reads the tickers from the first column of the constituents table.
func parseSP500(r io.Reader) ([]capscope.Ticker, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("cannot parse constituents page: %w", err)
	}
	table := doc.Find("table#constituents")
	if table.Length() == 0 {
		return nil, errors.New("constituents table not found")
	}
	var tickers []capscope.Ticker
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		cell := row.Find("td").First()
		if cell.Length() == 0 {
			return // header
		}
		if t := capscope.NormalizeTicker(cell.Text()); t != "" {
			tickers = append(tickers, t)
		}
	})
	if len(tickers) == 0 {
		return nil, errors.New("constituents table is empty")
	}
	return tickers, nil
}

// nasdaq100List is the source of the Nasdaq-100 symbols.
var nasdaq100List = func() ([]string, error) { return quote.NewMarketList("nasdaq100") }

// Nasdaq100 returns the current Nasdaq-100 tickers, as published by Nasdaq.
func Nasdaq100() ([]capscope.Ticker, error) {
	symbols, err := nasdaq100List()
	if err != nil {
		return nil, fmt.Errorf("cannot fetch nasdaq100 list: %w", err)
	}
	tickers := make([]capscope.Ticker, 0, len(symbols))
	for _, s := range symbols {
		// Nasdaq writes share classes with a slash.
		if t := capscope.NormalizeTicker(strings.ReplaceAll(s, "/", ".")); t != "" {
			tickers = append(tickers, t)
		}
	}
	if len(tickers) == 0 {
		return nil, errors.New("nasdaq100 list is empty")
	}
	return tickers, nil
}

// Update refreshes the membership files of 'dir' on day 'on'.
//
// An index that cannot be fetched keeps its previous file; the errors of all
// indexes are returned together.
func Update(ctx context.Context, dir string, client *http.Client, on date.Date) error {
	sources := []struct {
		file  string
		index string
		fetch func() ([]capscope.Ticker, error)
	}{
		{"sp500.json", "sp500", func() ([]capscope.Ticker, error) { return SP500(ctx, client) }},
		{"nasdaq100.json", "nasdaq100", Nasdaq100},
	}
	var errs []error
	for _, src := range sources {
		tickers, err := src.fetch()
		if err != nil {
			slog.Error("cannot update index", "index", src.index, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", src.index, err))
			continue
		}
		m := capscope.NewMembership(src.index, tickers, on)
		if err := capscope.WriteMembership(filepath.Join(dir, src.file), m); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", src.index, err))
			continue
		}
		slog.Info("updated index", "index", src.index, "count", m.Count)
	}
	return errors.Join(errs...)
}
