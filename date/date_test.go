package date

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{"2024-03-06", New(2024, 3, 6), false},
		{"2024-3-6", New(2024, 3, 6), false},
		{"06/03/2024", Date{}, true},
		{"", Date{}, true},
	}
	for _, tc := range testCases {
		got, err := Parse(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %v want %v", tc.in, got, tc.want)
		}
	}
}

func TestAddNormalizes(t *testing.T) {
	if got, want := New(2024, 3, 1).Add(-10), New(2024, 2, 20); got != want {
		t.Errorf("Add(-10) = %v want %v", got, want)
	}
	if got, want := New(2024, 12, 31).Add(1), New(2025, 1, 1); got != want {
		t.Errorf("Add(1) = %v want %v", got, want)
	}
}

func TestJSON(t *testing.T) {
	d := New(2024, 3, 6)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}
	if string(b) != `"2024-03-06"` {
		t.Errorf("Marshal() = %s want %q", b, "2024-03-06")
	}
	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal() unexpected error: %v", err)
	}
	if back != d {
		t.Errorf("Unmarshal() = %v want %v", back, d)
	}
}

func TestLookback(t *testing.T) {
	w := Lookback(New(2024, 3, 6), 10)
	if w.From != New(2024, 2, 25) || w.To != New(2024, 3, 7) {
		t.Errorf("Lookback() = %v want 2024-02-25..2024-03-07", w)
	}
	if w.Days() != 12 {
		t.Errorf("Days() = %d want 12", w.Days())
	}
	if !w.Contains(New(2024, 3, 6)) || w.Contains(New(2024, 3, 8)) {
		t.Errorf("Contains() is not inclusive of the window bounds only")
	}
}

func TestOfMarket(t *testing.T) {
	testCases := []struct {
		t    time.Time
		want Date
	}{
		// Session open, 9:30 in New York.
		{time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC), New(2024, 3, 5)},
		// Daily bars stamped at midnight New York.
		{time.Date(2024, 3, 5, 5, 0, 0, 0, time.UTC), New(2024, 3, 5)},
		// Still the 4th in New York.
		{time.Date(2024, 3, 5, 3, 0, 0, 0, time.UTC), New(2024, 3, 4)},
	}
	for _, tc := range testCases {
		if got := OfMarket(tc.t); got != tc.want {
			t.Errorf("OfMarket(%v) = %v want %v", tc.t, got, tc.want)
		}
	}
	if got := New(2024, 3, 5).MarketMidnight(); !got.Equal(time.Date(2024, 3, 5, 5, 0, 0, 0, time.UTC)) {
		t.Errorf("MarketMidnight() = %v want 2024-03-05T05:00:00Z", got)
	}
}
