package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/subcommands"

	"github.com/MrJamesThe3rd/tally/cmd/tally/internal/view"
)

type replCmd struct{}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "start the interactive ledger prompt (default)" }
func (*replCmd) Usage() string {
	return `tally [repl]

  Opens a full-screen prompt. Type commands such as "expense 12.50 d/Lunch c/food"
  and "help" to list them all. The ledger is saved after every change.
`
}

func (*replCmd) SetFlags(*flag.FlagSet) {}

func (*replCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	a, err := bootstrap(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer a.close()

	final, err := tea.NewProgram(view.New(a.session, a.cfg.App.Name), tea.WithAltScreen()).Run()
	if err != nil {
		a.logger.Error("failed to run TUI", "error", err)
		fmt.Fprintln(os.Stderr, err)

		return subcommands.ExitFailure
	}

	// An exit command already saved; Ctrl+C did not.
	if m, ok := final.(view.Model); ok && !m.Exited() {
		if err := a.session.Close(ctx); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
	}

	return subcommands.ExitSuccess
}
