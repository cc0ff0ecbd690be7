package tui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/capscope"
	"github.com/etnz/capscope/date"
)

// exportName returns the file name of the export of day 'on'.
func exportName(on date.Date) string {
	return fmt.Sprintf("capscope_%s.csv", on)
}

// export writes stocks as CSV in 'dir' and returns the file path.
func export(dir string, on date.Date, stocks []capscope.Stock) (string, error) {
	if len(stocks) == 0 {
		return "", fmt.Errorf("nothing to export")
	}
	path := filepath.Join(dir, exportName(on))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := capscope.EncodeCSV(f, stocks); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}
