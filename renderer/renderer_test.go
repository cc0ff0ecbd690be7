package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/etnz/capscope"
	"github.com/etnz/capscope/date"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// document is the structure of a rendered markdown report.
type document struct {
	headings []string
	tables   [][][]string // rows of cells, header included
}

// parse reads markdown with GitHub tables.
func parse(t *testing.T, src string) document {
	t.Helper()
	source := []byte(src)
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	root := md.Parser().Parse(text.NewReader(source))

	var doc document
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			doc.headings = append(doc.headings, plain(n, source))
			return ast.WalkSkipChildren, nil
		case *east.Table:
			doc.tables = append(doc.tables, nil)
		case *east.TableHeader, *east.TableRow:
			var row []string
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				row = append(row, plain(c, source))
			}
			last := len(doc.tables) - 1
			doc.tables[last] = append(doc.tables[last], row)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("failed to walk markdown: %v", err)
	}
	return doc
}

// plain returns the text content of a node.
func plain(n ast.Node, source []byte) string {
	var b strings.Builder
	ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch c := c.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(source))
		case *ast.String:
			b.Write(c.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

func stock(ticker, name, sector string, price float64, shares int64) capscope.Stock {
	return capscope.NewStock(capscope.Metadata{Ticker: capscope.Ticker(ticker), Name: name, Sector: sector, Shares: shares}, price)
}

func sampleResult() *capscope.Result {
	return &capscope.Result{QueryDate: date.New(2024, 3, 9), ActualDate: date.New(2024, 3, 8)}
}

func TestRenderRanking(t *testing.T) {
	res := sampleResult()
	res.Stocks = []capscope.Stock{
		stock("MSFT", "Microsoft Corporation", "Technology", 406.22, 7_430_000_000),
		stock("AAPL", "Apple Inc.", "Technology", 170.73, 15_200_000_000),
		stock("XOM", "Exxon Mobil Corporation", "Energy", 104.5, 3_960_000_000),
	}
	now := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)

	doc := parse(t, RenderRanking(NewRanking(res, "", 2, now)))

	wantHeadings := []string{"Market Caps on 2024-03-08", "Top 2", "能源 (Energy)", "信息技术 (Technology)"}
	if diff := cmp.Diff(wantHeadings, doc.headings); diff != "" {
		t.Errorf("RenderRanking() headings mismatch (-want +got):\n%s", diff)
	}
	if len(doc.tables) != 3 {
		t.Fatalf("RenderRanking() has %d tables want 3", len(doc.tables))
	}
	wantTop := [][]string{
		{"#", "Ticker", "Name", "Sector", "Close", "Market Cap"},
		{"1", "MSFT", "Microsoft Corporation", "信息技术", "$406.22", "$3,018.21B"},
		{"2", "AAPL", "Apple Inc.", "信息技术", "$170.73", "$2,595.10B"},
	}
	if diff := cmp.Diff(wantTop, doc.tables[0]); diff != "" {
		t.Errorf("RenderRanking() top table mismatch (-want +got):\n%s", diff)
	}
	wantEnergy := [][]string{
		{"#", "Ticker", "Name", "Sector", "Close", "Market Cap"},
		{"1", "XOM", "Exxon Mobil Corporation", "能源", "$104.50", "$413.82B"},
	}
	if diff := cmp.Diff(wantEnergy, doc.tables[1]); diff != "" {
		t.Errorf("RenderRanking() energy table mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderRankingSector(t *testing.T) {
	res := sampleResult()
	res.Stocks = []capscope.Stock{
		stock("AAPL", "Apple Inc.", "Technology", 170.73, 15_200_000_000),
		stock("XOM", "Exxon Mobil", "Energy", 104.5, 3_960_000_000),
	}
	out := RenderRanking(NewRanking(res, "Energy", capscope.DefaultTopN, time.Now()))
	doc := parse(t, out)
	if want := []string{"Market Caps on 2024-03-08", "能源 (Energy)"}; !cmp.Equal(want, doc.headings) {
		t.Errorf("RenderRanking(Energy) headings = %v want %v", doc.headings, want)
	}
	if len(doc.tables) != 1 || len(doc.tables[0]) != 2 {
		t.Errorf("RenderRanking(Energy) tables = %v want a single row", doc.tables)
	}
	if !strings.Contains(out, "No trading on 2024-03-09, using the closes of 2024-03-08.") {
		t.Errorf("RenderRanking() does not mention the substituted date:\n%s", out)
	}
}

func TestRenderRankingEmpty(t *testing.T) {
	d := date.New(2024, 3, 8)
	out := RenderRanking(NewRanking(&capscope.Result{QueryDate: d, ActualDate: d}, "", -1, time.Now()))
	doc := parse(t, out)
	if want := []string{"Market Caps on 2024-03-08", "All Sectors"}; !cmp.Equal(want, doc.headings) {
		t.Errorf("RenderRanking() headings = %v want %v", doc.headings, want)
	}
	if len(doc.tables) != 0 || !strings.Contains(out, "No data") {
		t.Errorf("RenderRanking() of an empty result =\n%s\nwant no table", out)
	}
	if !strings.Contains(out, "Closes of 2024-03-08.") {
		t.Errorf("RenderRanking() = %s want the closing date", out)
	}
}

func TestUSD(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"170.12", "$170.12"},
		{"2551.8", "$2,551.80"},
		{"0.005", "$0.01"},
	}
	for _, tc := range testCases {
		if got := USD(decimal.RequireFromString(tc.in)); got != tc.want {
			t.Errorf("USD(%s) = %q want %q", tc.in, got, tc.want)
		}
	}
}

func TestCell(t *testing.T) {
	testCases := []struct {
		in, want string
	}{
		{"Apple Inc.", "Apple Inc."},
		{"A | B", `A \| B`},
		{" Multi\nline  name ", "Multi line name"},
	}
	for _, tc := range testCases {
		if got := cell(tc.in); got != tc.want {
			t.Errorf("cell(%q) = %q want %q", tc.in, got, tc.want)
		}
	}
}
