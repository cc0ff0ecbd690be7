// Package yahoo retrieves quotes and daily bars from Yahoo Finance.
package yahoo

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/etnz/capscope"
	"github.com/etnz/capscope/date"
	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/equity"
	"github.com/pkg/errors"
)

// Client queries Yahoo Finance. No API key is needed.
//
// Yahoo quotes do not carry the sector, so metadata from this client always
// falls in the unknown sector.
type Client struct{}

// New returns a Yahoo Finance client.
func New() *Client { return &Client{} }

// symbol returns the Yahoo symbol of a ticker: share classes use a dash.
func symbol(t capscope.Ticker) string {
	return strings.ReplaceAll(string(t), ".", "-")
}

// Metadata returns the name and shares outstanding of a ticker.
func (c *Client) Metadata(ctx context.Context, ticker capscope.Ticker) (capscope.Metadata, error) {
	if err := ctx.Err(); err != nil {
		return capscope.Metadata{}, err
	}
	q, err := equity.Get(symbol(ticker))
	if err != nil {
		return capscope.Metadata{}, errors.Wrapf(err, "cannot get quote of %s", ticker)
	}
	return metadataOf(ticker, q)
}

// metadataOf converts a Yahoo equity quote.
func metadataOf(ticker capscope.Ticker, q *finance.Equity) (capscope.Metadata, error) {
	if q == nil {
		return capscope.Metadata{}, errors.Errorf("no quote returned for %s", ticker)
	}
	name := strings.TrimSpace(q.ShortName)
	if name == "" {
		name = strings.TrimSpace(q.LongName)
	}
	return capscope.Metadata{
		Ticker: ticker,
		Name:   name,
		Shares: int64(q.SharesOutstanding),
	}, nil
}

// Closes returns the daily close prices of 'tickers' between 'from' and 'to' included.
//
// Yahoo serves one chart per symbol, they are fetched one after the other. A
// ticker that fails is logged and omitted; an error is returned only if every
// ticker failed.
func (c *Client) Closes(ctx context.Context, tickers []capscope.Ticker, from, to date.Date) (map[capscope.Ticker]*capscope.PriceSeries, error) {
	res := make(map[capscope.Ticker]*capscope.PriceSeries, len(tickers))
	var lastErr error
	for _, t := range tickers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s, err := closes(t, from, to)
		if err != nil {
			slog.Warn("no prices", "ticker", t, "error", err)
			lastErr = err
			continue
		}
		res[t] = s
	}
	if len(res) == 0 && lastErr != nil {
		return nil, errors.Wrapf(lastErr, "cannot fetch any price between %s and %s", from, to)
	}
	return res, nil
}

// closes fetches the daily bars of a single ticker.
func closes(ticker capscope.Ticker, from, to date.Date) (*capscope.PriceSeries, error) {
	// The chart end is exclusive.
	end := to.Add(1)
	iter := chart.Get(&chart.Params{
		Symbol:   symbol(ticker),
		Start:    &datetime.Datetime{Month: int(from.Month()), Day: from.Day(), Year: from.Year()},
		End:      &datetime.Datetime{Month: int(end.Month()), Day: end.Day(), Year: end.Year()},
		Interval: datetime.OneDay,
	})
	s := new(capscope.PriceSeries)
	for iter.Next() {
		addBar(s, iter.Bar())
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrapf(err, "cannot get chart of %s", ticker)
	}
	return s, nil
}

// addBar appends the close of a daily bar to the series. Bars are stamped at
// the session open.
func addBar(s *capscope.PriceSeries, b *finance.ChartBar) {
	if b == nil {
		return
	}
	s.Append(date.OfMarket(time.Unix(int64(b.Timestamp), 0)), b.Close.InexactFloat64())
}

var (
	_ capscope.MetadataProvider = (*Client)(nil)
	_ capscope.PriceProvider    = (*Client)(nil)
)
