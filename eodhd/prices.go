package eodhd

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/etnz/capscope"
	"github.com/etnz/capscope/date"
	"github.com/shopspring/decimal"
)

// Closes returns the daily close prices of 'tickers' between 'from' and 'to' included.
//
// EODHD has no multi symbol endpoint, tickers are queried one after the other.
// A ticker that fails is logged and omitted; an error is returned only if
// every ticker failed.
func (c *Client) Closes(ctx context.Context, tickers []capscope.Ticker, from, to date.Date) (map[capscope.Ticker]*capscope.PriceSeries, error) {
	res := make(map[capscope.Ticker]*capscope.PriceSeries, len(tickers))
	var lastErr error
	for _, t := range tickers {
		s, err := c.closes(ctx, t, from, to)
		if err != nil {
			slog.Warn("no prices", "ticker", t, "error", err)
			lastErr = err
			continue
		}
		res[t] = s
	}
	if len(res) == 0 && lastErr != nil {
		return nil, fmt.Errorf("cannot fetch any price between %s and %s: %w", from, to, lastErr)
	}
	return res, nil
}

// closes fetches the close prices of a single ticker.
func (c *Client) closes(ctx context.Context, ticker capscope.Ticker, from, to date.Date) (*capscope.PriceSeries, error) {
	// https://eodhd.com/api/eod/MCD.US?api_token=demo&fmt=json&from=2024-02-01&to=2024-02-13
	// [
	//	{
	//		"date": "2024-02-13",
	//		"open": 290.1,
	//		"high": 291.3,
	//		"low": 286.5,
	//		"close": 288.45,
	//		"adjusted_close": 286.9,
	//		"volume": 4033800
	//	},
	// bounds are included in the response.
	type Info struct {
		Date  date.Date       `json:"date"`
		Close decimal.Decimal `json:"close"`
	}

	params := url.Values{}
	params.Set("from", from.String())
	params.Set("to", to.String())

	content := make([]Info, 0)
	if err := c.get(ctx, "eod/"+symbol(ticker), params, &content); err != nil {
		return nil, fmt.Errorf("cannot fetch prices of %q: %w", ticker, err)
	}

	s := new(capscope.PriceSeries)
	for _, info := range content {
		s.Append(info.Date, info.Close.InexactFloat64())
	}
	return s, nil
}
