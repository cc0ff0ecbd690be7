// Package tiingo retrieves daily prices from Tiingo (https://www.tiingo.com).
package tiingo

import (
	"context"
	"log/slog"
	"strings"

	"github.com/etnz/capscope"
	"github.com/etnz/capscope/date"
	"github.com/markcheno/go-quote"
	"github.com/pkg/errors"
)

// Client is a Tiingo price provider.
//
// Tiingo closes are adjusted for splits and dividends.
type Client struct {
	Token string
}

// New returns a Tiingo client authenticated with 'token'.
func New(token string) *Client {
	// go-quote logs to a discarded standard logger by default.
	quote.Log = slog.NewLogLogger(slog.Default().Handler(), slog.LevelDebug)
	return &Client{Token: token}
}

// symbol returns the Tiingo symbol of a ticker: share classes use a dash.
func symbol(t capscope.Ticker) string {
	return strings.ToLower(strings.ReplaceAll(string(t), ".", "-"))
}

// Closes returns the daily close prices of 'tickers' between 'from' and 'to' included.
func (c *Client) Closes(ctx context.Context, tickers []capscope.Ticker, from, to date.Date) (map[capscope.Ticker]*capscope.PriceSeries, error) {
	if c.Token == "" {
		return nil, errors.New("tiingo token is missing")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	bySymbol := make(map[string]capscope.Ticker, len(tickers))
	symbols := make([]string, 0, len(tickers))
	for _, t := range tickers {
		s := symbol(t)
		bySymbol[s] = t
		symbols = append(symbols, s)
	}

	quotes, err := quote.NewQuotesFromTiingoSyms(symbols, from.String(), to.String(), quote.Daily, c.Token)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot fetch tiingo prices between %s and %s", from, to)
	}
	return seriesOf(quotes, bySymbol), nil
}

// seriesOf converts quotes to price series, keyed by the ticker of their symbol.
// Quotes of unknown symbols and empty quotes are dropped.
func seriesOf(quotes quote.Quotes, bySymbol map[string]capscope.Ticker) map[capscope.Ticker]*capscope.PriceSeries {
	res := make(map[capscope.Ticker]*capscope.PriceSeries, len(quotes))
	for _, q := range quotes {
		t, ok := bySymbol[strings.ToLower(q.Symbol)]
		if !ok || len(q.Date) == 0 {
			continue
		}
		s := new(capscope.PriceSeries)
		for i, d := range q.Date {
			if i >= len(q.Close) {
				break
			}
			// Tiingo dates are session dates at midnight UTC.
			s.Append(date.Of(d), q.Close[i])
		}
		res[t] = s
	}
	return res
}

var _ capscope.PriceProvider = (*Client)(nil)
