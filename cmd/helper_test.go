package cmd

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/etnz/capscope"
	"github.com/etnz/capscope/date"
)

// fakeMetadata is an in memory MetadataProvider.
type fakeMetadata map[capscope.Ticker]capscope.Metadata

func (f fakeMetadata) Metadata(ctx context.Context, t capscope.Ticker) (capscope.Metadata, error) {
	md, ok := f[t]
	if !ok {
		return md, errors.New("unknown ticker")
	}
	return md, nil
}

// fakePrices is an in memory PriceProvider.
type fakePrices struct {
	closes map[capscope.Ticker]float64 // on 'day'
	day    date.Date
	err    error
}

func (f fakePrices) Closes(ctx context.Context, tickers []capscope.Ticker, from, to date.Date) (map[capscope.Ticker]*capscope.PriceSeries, error) {
	if f.err != nil {
		return nil, f.err
	}
	res := make(map[capscope.Ticker]*capscope.PriceSeries)
	for _, t := range tickers {
		if px, ok := f.closes[t]; ok {
			res[t] = new(capscope.PriceSeries).Append(f.day, px)
		}
	}
	return res, nil
}

// testPipeline returns a pipeline over two stocks, AAA (Technology, 2000B) and
// BBB (Energy, 100B), with closes on 2024-03-05 only.
func testPipeline(t *testing.T) *capscope.Pipeline {
	t.Helper()
	dir := t.TempDir()
	m := capscope.NewMembership("sp500", []capscope.Ticker{"AAA", "BBB", "CCC"}, date.New(2024, 1, 15))
	if err := capscope.WriteMembership(filepath.Join(dir, "sp500.json"), m); err != nil {
		t.Fatalf("WriteMembership() unexpected error: %v", err)
	}
	return &capscope.Pipeline{
		DataDir: dir,
		Metadata: fakeMetadata{
			"AAA": {Ticker: "AAA", Name: "Alpha", Sector: "Technology", Shares: 10_000_000_000},
			"BBB": {Ticker: "BBB", Name: "Beta", Sector: "Energy", Shares: 2_000_000_000},
		},
		Prices: fakePrices{
			closes: map[capscope.Ticker]float64{"AAA": 200, "BBB": 50},
			day:    date.New(2024, 3, 5),
		},
		Workers: 2,
	}
}
