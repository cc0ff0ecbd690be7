package capscope

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/etnz/capscope/date"
)

// DefaultLookback is the number of calendar days fetched before the requested date.
//
// Ten days covers any weekend plus the longest regular US market closures.
const DefaultLookback = 10

// ErrNoTradingDay is returned when no close price exists on or before the requested date.
var ErrNoTradingDay = errors.New("no trading day found")

// FetchPrices retrieves the close prices of 'tickers' on the last trading day
// on or before 'on', using a single batched provider call over a window of
// 'lookback' calendar days.
//
// It returns the prices and the trading day actually used. Tickers without a
// finite close on that day are omitted.
//
// If no trading day is found, prices is empty, actual is 'on' and the error
// wraps ErrNoTradingDay. Other errors come from the provider.
func FetchPrices(ctx context.Context, p PriceProvider, tickers []Ticker, on date.Date, lookback int) (prices map[Ticker]float64, actual date.Date, err error) {
	if lookback <= 0 {
		lookback = DefaultLookback
	}
	window := date.Lookback(on, lookback)
	prices = make(map[Ticker]float64)

	slog.Info("fetching prices", "tickers", len(tickers), "date", on, "window", window)
	if len(tickers) == 0 {
		return prices, on, fmt.Errorf("no tickers to price on %s: %w", on, ErrNoTradingDay)
	}

	series, err := p.Closes(ctx, tickers, window.From, window.To)
	if err != nil {
		return prices, on, fmt.Errorf("cannot fetch prices for %s: %w", window, err)
	}
	series = clip(series, window)

	actual, ok := ResolveTradingDay(TradingDays(series), on)
	if !ok {
		slog.Error("no trading day found", "date", on, "window", window)
		return prices, on, fmt.Errorf("on or before %s: %w", on, ErrNoTradingDay)
	}
	if actual != on {
		slog.Info("using nearest trading day", "actual", actual, "requested", on)
	}

	for _, t := range tickers {
		s, ok := series[t]
		if !ok {
			continue
		}
		px, ok := s.Get(actual)
		if !ok || math.IsNaN(px) || math.IsInf(px, 0) {
			continue
		}
		prices[t] = px
	}
	slog.Info("got prices", "tickers", len(prices), "date", actual)
	return prices, actual, nil
}

// ResolveTradingDay returns the latest of 'dates' that is not after 'on'.
func ResolveTradingDay(dates []date.Date, on date.Date) (date.Date, bool) {
	return date.LatestOnOrBefore(dates, on)
}

// TradingDays returns the sorted union of all dates with a close in any series.
func TradingDays(series map[Ticker]*PriceSeries) []date.Date {
	seen := make(map[date.Date]struct{})
	for _, s := range series {
		if s == nil {
			continue
		}
		for d := range s.Values() {
			seen[d] = struct{}{}
		}
	}
	days := make([]date.Date, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	slices.SortFunc(days, date.Date.Compare)
	return days
}

// clip drops the points outside of the window.
func clip(series map[Ticker]*PriceSeries, w date.Window) map[Ticker]*PriceSeries {
	clipped := make(map[Ticker]*PriceSeries, len(series))
	for t, s := range series {
		if s == nil {
			continue
		}
		c := new(PriceSeries)
		for d, v := range s.Values() {
			if w.Contains(d) {
				c.Append(d, v)
			}
		}
		if c.Len() > 0 {
			clipped[NormalizeTicker(string(t))] = c
		}
	}
	return clipped
}
