package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/glamour"
)

// printMarkdown renders markdown for the terminal, falling back to the raw text.
func printMarkdown(w io.Writer, md, style string, width int) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		slog.Warn("cannot render markdown", "error", err)
		fmt.Fprint(w, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		slog.Warn("cannot render markdown", "error", err)
		fmt.Fprint(w, md)
		return
	}
	fmt.Fprint(w, out)
}
