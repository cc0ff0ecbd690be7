package capscope

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/etnz/capscope/date"
)

// MembershipFiles are the index membership files composing the universe, in
// the data folder.
var MembershipFiles = []string{"sp500.json", "nasdaq100.json"}

// Membership is the content of an index membership file.
type Membership struct {
	Index   string   `json:"index"`
	Tickers []Ticker `json:"tickers"`
	Count   int      `json:"count"`
	Updated string   `json:"updated"`
}

// NewMembership returns the membership of 'index' with tickers normalized,
// deduplicated and sorted.
func NewMembership(index string, tickers []Ticker, updated date.Date) Membership {
	members := union(tickers)
	return Membership{
		Index:   index,
		Tickers: members,
		Count:   len(members),
		Updated: updated.String(),
	}
}

// IndexInfo describes a membership file.
type IndexInfo struct {
	Count   int
	Updated string
}

// readMembership decodes a membership file.
func readMembership(path string) (m Membership, err error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return m, err
	}
	if err := json.Unmarshal(content, &m); err != nil {
		return m, fmt.Errorf("invalid membership file %q: %w", path, err)
	}
	return m, nil
}

// memberships reads all the membership files of 'dir', skipping missing or
// invalid ones.
func memberships(dir string) map[string]Membership {
	res := make(map[string]Membership)
	for _, name := range MembershipFiles {
		path := filepath.Join(dir, name)
		m, err := readMembership(path)
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("membership file not found, skipped", "path", path)
			continue
		}
		if err != nil {
			slog.Warn("membership file skipped", "path", path, "error", err)
			continue
		}
		res[name] = m
	}
	return res
}

// LoadUniverse returns the sorted union of the tickers of all membership files in 'dir'.
//
// Missing files are skipped.
func LoadUniverse(dir string) []Ticker {
	var all []Ticker
	for _, m := range memberships(dir) {
		all = append(all, m.Tickers...)
	}
	return union(all)
}

// LoadUniverseInfo returns the size and last update of each index of 'dir',
// keyed by index name (file name if the index is not named).
func LoadUniverseInfo(dir string) map[string]IndexInfo {
	info := make(map[string]IndexInfo)
	for name, m := range memberships(dir) {
		key := m.Index
		if key == "" {
			key = name
		}
		updated := m.Updated
		if updated == "" {
			updated = "unknown"
		}
		info[key] = IndexInfo{Count: m.Count, Updated: updated}
	}
	return info
}

// WriteMembership writes a membership file.
func WriteMembership(path string, m Membership) error {
	content, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, append(content, '\n'), 0644)
}

// union normalizes, deduplicates and sorts tickers.
func union(tickers []Ticker) []Ticker {
	set := make(map[Ticker]struct{}, len(tickers))
	for _, t := range tickers {
		if n := NormalizeTicker(string(t)); n != "" {
			set[n] = struct{}{}
		}
	}
	res := make([]Ticker, 0, len(set))
	for t := range set {
		res = append(res, t)
	}
	slices.Sort(res)
	return res
}
