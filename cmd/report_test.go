package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/etnz/capscope/date"
	"github.com/google/subcommands"
)

func TestReport(t *testing.T) {
	c := &reportCmd{top: 10, raw: true, on: date.New(2024, 3, 6)}
	var stdout, stderr bytes.Buffer
	if got := c.run(context.Background(), testPipeline(t), &stdout, &stderr); got != subcommands.ExitSuccess {
		t.Fatalf("run() = %v want success, stderr: %s", got, stderr.String())
	}
	out := stdout.String()
	for _, want := range []string{
		"# Market Caps on 2024-03-05",
		"## Top 10",
		"| 1 | AAA | Alpha |",
		"## 能源 (Energy)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report does not contain %q:\n%s", want, out)
		}
	}
}

func TestReportStyled(t *testing.T) {
	c := &reportCmd{top: 10, style: "notty", width: 100, on: date.New(2024, 3, 6)}
	var stdout, stderr bytes.Buffer
	if got := c.run(context.Background(), testPipeline(t), &stdout, &stderr); got != subcommands.ExitSuccess {
		t.Fatalf("run() = %v want success", got)
	}
	if out := stdout.String(); !strings.Contains(out, "Alpha") || strings.Contains(out, "|--:") {
		t.Errorf("styled report = %q want a rendered table", out)
	}
}

func TestReportUnknownSector(t *testing.T) {
	c := &reportCmd{sector: "Utilities", top: 10, raw: true, on: date.New(2024, 3, 6)}
	var stdout, stderr bytes.Buffer
	if got := c.run(context.Background(), testPipeline(t), &stdout, &stderr); got != subcommands.ExitFailure {
		t.Errorf("run(Utilities) = %v want %v", got, subcommands.ExitFailure)
	}
}
