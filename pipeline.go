package capscope

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/etnz/capscope/date"
)

// Pipeline computes the market caps of the universe on a given day.
type Pipeline struct {
	DataDir  string           // folder of the membership files
	Metadata MetadataProvider // source of names, sectors and shares outstanding
	Prices   PriceProvider    // source of close prices
	Workers  int              // concurrent metadata requests, DefaultWorkers if zero
	Lookback int              // price window in calendar days, DefaultLookback if zero
}

// Result is the outcome of a pipeline run.
type Result struct {
	QueryDate  date.Date // requested date
	ActualDate date.Date // trading day used for the close prices
	Stocks     []Stock   // sorted by descending market cap
}

// Run executes the pipeline for the day 'on'.
//
// Tickers without metadata or without price are dropped. When no trading day
// is found the result is empty and ActualDate is 'on'. Errors are only
// returned for failures of the price provider itself.
func (p *Pipeline) Run(ctx context.Context, on date.Date, progress ProgressFunc) (*Result, error) {
	if p.Metadata == nil || p.Prices == nil {
		return nil, fmt.Errorf("pipeline is missing a provider")
	}
	tickers := LoadUniverse(p.DataDir)
	slog.Info("loaded universe", "tickers", len(tickers), "dir", p.DataDir)

	metadata := FetchMetadata(ctx, p.Metadata, tickers, p.Workers, progress)

	valid := make([]Ticker, 0, len(metadata))
	for _, md := range metadata {
		valid = append(valid, md.Ticker)
	}
	prices, actual, err := FetchPrices(ctx, p.Prices, valid, on, p.Lookback)
	if err != nil && !errors.Is(err, ErrNoTradingDay) {
		return nil, err
	}
	if err != nil {
		slog.Warn("no prices available", "error", err)
	}

	return &Result{
		QueryDate:  on,
		ActualDate: actual,
		Stocks:     ComputeMarketCaps(metadata, prices),
	}, nil
}
