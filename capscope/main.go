package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/capscope/cmd"
	"github.com/google/subcommands"
)

func main() {
	cmd.Complete("capscope")
	cmd.SetupLogging()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
