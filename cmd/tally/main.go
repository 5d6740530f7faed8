package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(&replCmd{}, "")
	commander.Register(&execCmd{}, "")

	flag.Parse()

	// Without a subcommand, start the interactive prompt.
	if flag.NArg() == 0 {
		_ = flag.CommandLine.Parse([]string{"repl"})
	}

	os.Exit(int(commander.Execute(context.Background())))
}
