package capscope

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/etnz/capscope/date"
)

func sampleStocks() []Stock {
	return []Stock{
		NewStock(Metadata{Ticker: "AAPL", Name: "Apple Inc.", Sector: "Technology", Shares: 15_000_000_000}, 170.12),
		NewStock(Metadata{Ticker: "BRK.B", Name: "Berkshire Hathaway, Inc.", Sector: "Financials", Shares: 1_300_000_000}, 405.5),
	}
}

func TestEncodeCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeCSV(&buf, sampleStocks()); err != nil {
		t.Fatalf("EncodeCSV() unexpected error: %v", err)
	}
	want := "\ufeffticker,name,sector,sector_cn,close,shares,market_cap,market_cap_b\n" +
		"AAPL,Apple Inc.,Technology,信息技术,170.12,15000000000,2551800000000,2551.8\n" +
		"BRK.B,\"Berkshire Hathaway, Inc.\",Financials,金融,405.5,1300000000,527150000000,527.15\n"
	if got := buf.String(); got != want {
		t.Errorf("EncodeCSV() =\n%q\nwant\n%q", got, want)
	}
}

func TestEncodeCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeCSV(&buf, nil); err != nil {
		t.Fatalf("EncodeCSV() unexpected error: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("EncodeCSV(nil) wrote %q want nothing", buf.String())
	}
}

func TestDecodeCSV(t *testing.T) {
	var buf bytes.Buffer
	want := sampleStocks()
	if err := EncodeCSV(&buf, want); err != nil {
		t.Fatalf("EncodeCSV() unexpected error: %v", err)
	}
	got, err := DecodeCSV(&buf)
	if err != nil {
		t.Fatalf("DecodeCSV() unexpected error: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("DecodeCSV() returned %d stocks want %d", len(got), len(want))
	}
	for i := range want {
		g, w := got[i], want[i]
		if g.Ticker != w.Ticker || g.Name != w.Name || g.Sector != w.Sector || g.SectorCN != w.SectorCN || g.Shares != w.Shares {
			t.Errorf("DecodeCSV()[%d] = %v want %v", i, g, w)
		}
		if !g.Close.Equal(w.Close) || !g.MarketCap.Equal(w.MarketCap) || !g.MarketCapB.Equal(w.MarketCapB) {
			t.Errorf("DecodeCSV()[%d] amounts = %v %v %v want %v %v %v", i, g.Close, g.MarketCap, g.MarketCapB, w.Close, w.MarketCap, w.MarketCapB)
		}
	}
}

func TestDecodeCSVMissingColumn(t *testing.T) {
	_, err := DecodeCSV(strings.NewReader("ticker,name\nAAPL,Apple\n"))
	if err == nil {
		t.Errorf("DecodeCSV() succeeded, want a missing column error")
	}
}

func TestEncodeCondensed(t *testing.T) {
	testCases := []struct {
		stocks []Stock
		want   string
	}{
		{nil, "No data\n"},
		{sampleStocks()[:1], "ticker,name,sector,close,shares,market_cap_b\nAAPL,Apple Inc.,Technology,170.12,15000000000,2551.8\n"},
	}
	for _, tc := range testCases {
		var buf bytes.Buffer
		if err := EncodeCondensed(&buf, tc.stocks); err != nil {
			t.Fatalf("EncodeCondensed() unexpected error: %v", err)
		}
		if got := buf.String(); got != tc.want {
			t.Errorf("EncodeCondensed() = %q want %q", got, tc.want)
		}
	}
}

func TestEncodeJSON(t *testing.T) {
	now := time.Date(2024, 3, 6, 21, 30, 0, 0, time.UTC)
	r := NewReport(date.New(2024, 3, 6), date.New(2024, 3, 5), sampleStocks(), now)

	var buf bytes.Buffer
	if err := EncodeJSON(&buf, r); err != nil {
		t.Fatalf("EncodeJSON() unexpected error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`"query_date": "2024-03-06"`,
		`"actual_date": "2024-03-05"`,
		`"generated_at": "2024-03-06T21:30:00Z"`,
		`"total_stocks": 2`,
		`"sector_cn": "信息技术"`,
		`"market_cap": 2551800000000`,
		`"market_cap_b": 2551.8`,
		`"close": 170.12`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("EncodeJSON() output does not contain %s:\n%s", want, out)
		}
	}

	var back Report
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("json.Unmarshal() unexpected error: %v", err)
	}
	if back.TotalStocks != 2 || back.Stocks[1].Ticker != "BRK.B" || back.Stocks[1].Shares != 1_300_000_000 {
		t.Errorf("json.Unmarshal() = %+v want the original report", back)
	}
}

func TestNewReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	d := date.New(2024, 3, 6)
	if err := EncodeJSON(&buf, NewReport(d, d, nil, time.Now())); err != nil {
		t.Fatalf("EncodeJSON() unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), `"stocks": []`) || !strings.Contains(buf.String(), `"total_stocks": 0`) {
		t.Errorf("EncodeJSON() of an empty report = %s want an empty stock list", buf.String())
	}
}
