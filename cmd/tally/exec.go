package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/google/subcommands"
)

type execCmd struct {
	yes bool
}

func (*execCmd) Name() string     { return "exec" }
func (*execCmd) Synopsis() string { return "run a single ledger command and exit" }
func (*execCmd) Usage() string {
	return `tally exec [-yes] <command> [arguments...]

  Runs one command line, e.g. tally exec expense 12.50 d/Lunch c/food
  Questions such as duplicate warnings are asked on the terminal unless -yes
  accepts them up front.
`
}

func (c *execCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "yes", false, "Answer yes to every confirmation.")
}

func (c *execCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	a, err := bootstrap(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer a.close()

	out := a.session.Handle(ctx, strings.Join(f.Args(), " "))

	if out.Pending != nil {
		answer := c.yes
		if !answer {
			err := huh.NewConfirm().
				Title(out.Prompt).
				Affirmative("Yes").
				Negative("No").
				Value(&answer).
				Run()
			if err != nil {
				a.logger.Warn("confirmation not answered", "error", err)
				answer = false
			}
		}

		out = a.session.Resolve(ctx, out.Pending, answer)
	}

	fmt.Println(out.Message)

	return subcommands.ExitSuccess
}
