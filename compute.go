package capscope

import (
	"log/slog"
	"slices"

	"github.com/shopspring/decimal"
)

var billion = decimal.New(1, 9)

// Stock is the market capitalization of a company on a given day.
type Stock struct {
	Ticker     Ticker
	Name       string
	Sector     string // as reported by the provider, used for grouping
	SectorCN   string // localized sector name, for display
	Close      decimal.Decimal
	Shares     int64
	MarketCap  decimal.Decimal
	MarketCapB decimal.Decimal // market cap in billions
}

// NewStock computes the market cap of a company from its metadata and close price.
//
// Close and market cap are rounded to the cent, the market cap in billions to
// two decimals.
func NewStock(md Metadata, price float64) Stock {
	px := decimal.NewFromFloat(price)
	mc := px.Mul(decimal.NewFromInt(md.Shares))
	return Stock{
		Ticker:     md.Ticker,
		Name:       md.Name,
		Sector:     md.Sector,
		SectorCN:   LocalizeSector(md.Sector),
		Close:      px.Round(2),
		Shares:     md.Shares,
		MarketCap:  mc.Round(2),
		MarketCapB: mc.Div(billion).Round(2),
	}
}

// ComputeMarketCaps joins metadata and prices and returns the stocks sorted by
// descending market cap.
//
// Metadata without a price is skipped. Ties keep the metadata order.
func ComputeMarketCaps(metadata []Metadata, prices map[Ticker]float64) []Stock {
	stocks := make([]Stock, 0, len(metadata))
	for _, md := range metadata {
		px, ok := prices[md.Ticker]
		if !ok {
			slog.Debug("no price, skipping", "ticker", md.Ticker)
			continue
		}
		stocks = append(stocks, NewStock(md, px))
	}
	sortByMarketCap(stocks)
	slog.Info("computed market caps", "stocks", len(stocks))
	return stocks
}

// sortByMarketCap sorts in place by descending market cap, keeping the order of ties.
func sortByMarketCap(stocks []Stock) {
	slices.SortStableFunc(stocks, func(a, b Stock) int { return b.MarketCap.Cmp(a.MarketCap) })
}
