package capscope

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/etnz/capscope/date"
)

// fakeMetadata is an in memory MetadataProvider.
type fakeMetadata struct {
	records map[Ticker]Metadata
	delay   time.Duration

	inflight, maxInflight atomic.Int32
}

var errUnknownTicker = errors.New("unknown ticker")

func (f *fakeMetadata) Metadata(ctx context.Context, t Ticker) (Metadata, error) {
	n := f.inflight.Add(1)
	defer f.inflight.Add(-1)
	for {
		m := f.maxInflight.Load()
		if n <= m || f.maxInflight.CompareAndSwap(m, n) {
			break
		}
	}
	time.Sleep(f.delay)

	md, ok := f.records[t]
	if !ok {
		return Metadata{}, errUnknownTicker
	}
	return md, nil
}

// fakePrices is an in memory PriceProvider.
type fakePrices struct {
	series   map[Ticker]*PriceSeries
	err      error
	calls    int
	from, to date.Date
}

func (f *fakePrices) Closes(ctx context.Context, tickers []Ticker, from, to date.Date) (map[Ticker]*PriceSeries, error) {
	f.calls++
	f.from, f.to = from, to
	if f.err != nil {
		return nil, f.err
	}
	res := make(map[Ticker]*PriceSeries)
	for _, t := range tickers {
		if s, ok := f.series[t]; ok {
			res[t] = s
		}
	}
	return res, nil
}

// series builds a price series from a date to price map.
func series(points map[string]float64) *PriceSeries {
	s := new(PriceSeries)
	for d, v := range points {
		s.Append(date.MustParse(d), v)
	}
	return s
}

// writeUniverse writes membership files in a temporary folder and returns it.
func writeUniverse(t *testing.T, members map[string][]Ticker) string {
	t.Helper()
	dir := t.TempDir()
	for file, tickers := range members {
		m := NewMembership(file, tickers, date.New(2024, 1, 15))
		if err := WriteMembership(filepath.Join(dir, file), m); err != nil {
			t.Fatalf("WriteMembership(%q) unexpected error: %v", file, err)
		}
	}
	return dir
}
