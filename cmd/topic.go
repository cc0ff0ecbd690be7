package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/capscope/docs"
	"github.com/google/subcommands"
)

type topicCmd struct {
	style string
}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `capscope topic [<topic>...]

  Show documentation for the given topics, '*' for all of them.
  Without topic, list the available ones.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.style, "style", "auto", "Terminal style (auto, dark, light, notty, ascii)")
}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	topics := f.Args()
	if len(topics) == 0 {
		topics = []string{docs.Index}
	}

	doc, err := docs.GetTopics(topics...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading doc: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(os.Stdout, doc, c.style, 100)
	return subcommands.ExitSuccess
}
