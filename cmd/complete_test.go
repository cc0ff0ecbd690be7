package cmd

import (
	"flag"
	"testing"

	"github.com/google/subcommands"
)

// TestCompletionCoversCommands checks that every registered command and flag can be completed.
func TestCompletionCoversCommands(t *testing.T) {
	commander := subcommands.NewCommander(flag.NewFlagSet("capscope", flag.ContinueOnError), "capscope")
	Register(commander)
	root := completion()

	commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		sub, ok := root.Sub[c.Name()]
		if !ok {
			t.Errorf("command %q has no completion", c.Name())
			return
		}
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		fs.VisitAll(func(f *flag.Flag) {
			if _, ok := sub.Flags[f.Name]; !ok {
				t.Errorf("flag -%s of %q has no completion", f.Name, c.Name())
			}
		})
	})
}
