package capscope

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/capscope/date"
	"github.com/shopspring/decimal"
)

// utf8BOM lets spreadsheet software detect the encoding of exported CSV files.
const utf8BOM = "\ufeff"

// CSVHeader is the header row of exported CSV files.
var CSVHeader = []string{"ticker", "name", "sector", "sector_cn", "close", "shares", "market_cap", "market_cap_b"}

// condensedHeader is the header of the condensed stdout format.
var condensedHeader = []string{"ticker", "name", "sector", "close", "shares", "market_cap_b"}

// EncodeCSV writes stocks as CSV, prefixed by a UTF-8 byte order mark.
//
// Nothing is written for an empty list.
func EncodeCSV(w io.Writer, stocks []Stock) error {
	if len(stocks) == 0 {
		return nil
	}
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, s := range stocks {
		err := cw.Write([]string{
			string(s.Ticker),
			s.Name,
			s.Sector,
			s.SectorCN,
			s.Close.String(),
			strconv.FormatInt(s.Shares, 10),
			s.MarketCap.String(),
			s.MarketCapB.String(),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// DecodeCSV reads stocks written by EncodeCSV.
func DecodeCSV(r io.Reader) ([]Stock, error) {
	br := bufio.NewReader(r)
	// Skip the byte order mark if any.
	if head, err := br.Peek(len(utf8BOM)); err == nil && string(head) == utf8BOM {
		br.Discard(len(utf8BOM))
	}
	cr := csv.NewReader(br)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	cols := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		cols[name] = i
	}
	for _, name := range CSVHeader {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing CSV column %q", name)
		}
	}

	stocks := make([]Stock, 0, len(records)-1)
	for line, rec := range records[1:] {
		s := Stock{
			Ticker:   Ticker(rec[cols["ticker"]]),
			Name:     rec[cols["name"]],
			Sector:   rec[cols["sector"]],
			SectorCN: rec[cols["sector_cn"]],
		}
		if s.Close, err = decimal.NewFromString(rec[cols["close"]]); err != nil {
			return nil, fmt.Errorf("line %d: invalid close: %w", line+2, err)
		}
		if s.Shares, err = strconv.ParseInt(rec[cols["shares"]], 10, 64); err != nil {
			return nil, fmt.Errorf("line %d: invalid shares: %w", line+2, err)
		}
		if s.MarketCap, err = decimal.NewFromString(rec[cols["market_cap"]]); err != nil {
			return nil, fmt.Errorf("line %d: invalid market_cap: %w", line+2, err)
		}
		if s.MarketCapB, err = decimal.NewFromString(rec[cols["market_cap_b"]]); err != nil {
			return nil, fmt.Errorf("line %d: invalid market_cap_b: %w", line+2, err)
		}
		stocks = append(stocks, s)
	}
	return stocks, nil
}

// EncodeCondensed writes a compact, comma separated, listing of the stocks
// meant for the terminal.
func EncodeCondensed(w io.Writer, stocks []Stock) error {
	if len(stocks) == 0 {
		_, err := fmt.Fprintln(w, "No data")
		return err
	}
	var b strings.Builder
	b.WriteString(strings.Join(condensedHeader, ","))
	b.WriteByte('\n')
	for _, s := range stocks {
		fmt.Fprintf(&b, "%s,%s,%s,%s,%d,%s\n", s.Ticker, s.Name, s.Sector, s.Close, s.Shares, s.MarketCapB)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// stockJSON is the JSON representation of a Stock, with plain numbers.
type stockJSON struct {
	Ticker     Ticker  `json:"ticker"`
	Name       string  `json:"name"`
	Sector     string  `json:"sector"`
	SectorCN   string  `json:"sector_cn"`
	Close      float64 `json:"close"`
	Shares     int64   `json:"shares"`
	MarketCap  float64 `json:"market_cap"`
	MarketCapB float64 `json:"market_cap_b"`
}

func (s Stock) MarshalJSON() ([]byte, error) {
	return json.Marshal(stockJSON{
		Ticker:     s.Ticker,
		Name:       s.Name,
		Sector:     s.Sector,
		SectorCN:   s.SectorCN,
		Close:      s.Close.InexactFloat64(),
		Shares:     s.Shares,
		MarketCap:  s.MarketCap.InexactFloat64(),
		MarketCapB: s.MarketCapB.InexactFloat64(),
	})
}

func (s *Stock) UnmarshalJSON(data []byte) error {
	var j stockJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	*s = Stock{
		Ticker:     j.Ticker,
		Name:       j.Name,
		Sector:     j.Sector,
		SectorCN:   j.SectorCN,
		Close:      decimal.NewFromFloat(j.Close),
		Shares:     j.Shares,
		MarketCap:  decimal.NewFromFloat(j.MarketCap),
		MarketCapB: decimal.NewFromFloat(j.MarketCapB),
	}
	return nil
}

// Report is the JSON export document.
type Report struct {
	QueryDate   date.Date `json:"query_date"`
	ActualDate  date.Date `json:"actual_date"`
	GeneratedAt string    `json:"generated_at"`
	TotalStocks int       `json:"total_stocks"`
	Stocks      []Stock   `json:"stocks"`
}

// NewReport returns the export document of 'stocks', generated at 'now'.
func NewReport(query, actual date.Date, stocks []Stock, now time.Time) Report {
	if stocks == nil {
		stocks = []Stock{}
	}
	return Report{
		QueryDate:   query,
		ActualDate:  actual,
		GeneratedAt: now.UTC().Format(time.RFC3339),
		TotalStocks: len(stocks),
		Stocks:      stocks,
	}
}

// EncodeJSON writes the report as indented JSON, keeping non ASCII characters verbatim.
func EncodeJSON(w io.Writer, r Report) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}
