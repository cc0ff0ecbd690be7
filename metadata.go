package capscope

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the default number of concurrent metadata requests.
const DefaultWorkers = 10

// Metadata holds the descriptive data of a company needed to compute its market cap.
type Metadata struct {
	Ticker Ticker `json:"ticker" validate:"required"`
	Name   string `json:"name"`
	Sector string `json:"sector"`
	Shares int64  `json:"shares" validate:"gt=0"`
}

var validate = validator.New()

// Validate returns an error if the metadata cannot be used to compute a market cap.
func (m Metadata) Validate() error {
	if err := validate.Struct(m); err != nil {
		return fmt.Errorf("invalid metadata for %q: %w", m.Ticker, err)
	}
	return nil
}

// withDefaults fills the optional fields the provider left empty.
func (m Metadata) withDefaults() Metadata {
	if m.Name == "" {
		m.Name = string(m.Ticker)
	}
	if m.Sector == "" {
		m.Sector = UnknownSector
	}
	return m
}

// ProgressFunc is called after each unit of work with the number of completed
// units and the total number of units.
type ProgressFunc func(completed, total int)

// FetchMetadata retrieves the metadata of all tickers, using at most 'workers'
// concurrent requests.
//
// Tickers that fail (provider error, missing or invalid shares outstanding)
// are logged and omitted from the result, they are never retried.
// 'progress', if not nil, is called once per ticker, in completion order, from
// the calling goroutine.
func FetchMetadata(ctx context.Context, p MetadataProvider, tickers []Ticker, workers int, progress ProgressFunc) []Metadata {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	total := len(tickers)

	type outcome struct {
		ticker Ticker
		md     Metadata
		err    error
	}
	// Buffered so that workers never wait for the collector.
	done := make(chan outcome, total)

	go func() {
		var g errgroup.Group
		g.SetLimit(workers)
		for _, t := range tickers {
			g.Go(func() error {
				md, err := fetchOneMetadata(ctx, p, t)
				done <- outcome{ticker: t, md: md, err: err}
				return nil // failures are per ticker
			})
		}
		g.Wait()
		close(done)
	}()

	results := make([]Metadata, 0, total)
	completed := 0
	for o := range done {
		completed++
		if o.err != nil {
			slog.Warn("skipping ticker", "ticker", o.ticker, "error", o.err)
		} else {
			results = append(results, o.md)
		}
		if progress != nil {
			progress(completed, total)
		}
	}
	slog.Info("fetched metadata", "valid", len(results), "total", total)
	return results
}

// fetchOneMetadata queries the provider for a single ticker.
func fetchOneMetadata(ctx context.Context, p MetadataProvider, ticker Ticker) (md Metadata, err error) {
	// Third party clients are not always careful with nil responses.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("metadata provider panicked for %q: %v", ticker, r)
		}
	}()

	md, err = p.Metadata(ctx, ticker)
	if err != nil {
		return Metadata{}, fmt.Errorf("cannot fetch metadata for %q: %w", ticker, err)
	}
	md.Ticker = ticker
	md = md.withDefaults()
	if err := md.Validate(); err != nil {
		return Metadata{}, err
	}
	return md, nil
}
