package command

import (
	"fmt"
	"strings"

	"github.com/MrJamesThe3rd/tally/internal/export"
	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

type ExportCommand struct {
	continues
	Format export.Format
}

func (c ExportCommand) Execute(env Env) Result {
	path, err := env.Exporter.Export(env.Ledger, c.Format)
	if err != nil {
		return Result{Message: fmt.Sprintf("Export failed: %v", err)}
	}

	return Result{Message: fmt.Sprintf("Exported %s to %s", plural(env.Ledger.Len(), "transaction"), path)}
}

// ImportCommand adds the movements of a bank statement, skipping those whose amount and description
// the ledger already holds.
type ImportCommand struct {
	continues
	Path string
	Bank importer.Bank
}

func (c ImportCommand) Execute(env Env) Result {
	txs, err := env.Importer.Import(c.Path, c.Bank)
	if err != nil {
		return Result{Message: fmt.Sprintf("Import failed: %v", err)}
	}

	fresh := make([]transaction.Transaction, 0, len(txs))

	for _, tx := range txs {
		if len(env.Ledger.FindDuplicates(tx.Amount, tx.Description)) == 0 {
			fresh = append(fresh, tx)
		}
	}

	for _, tx := range fresh {
		env.Ledger.Add(tx)
	}

	return Result{
		Message: fmt.Sprintf("Imported %s from %s, skipped %s.",
			plural(len(fresh), "transaction"), c.Path, plural(len(txs)-len(fresh), "duplicate")),
		Changed: len(fresh) > 0,
	}
}

// ClearCommand wipes every transaction, budget and savings goal. Without Confirmed it only explains
// how to proceed.
type ClearCommand struct {
	continues
	Confirmed bool
}

const clearWarning = "This deletes all transactions together with every budget and savings goal."

func (c ClearCommand) Execute(env Env) Result {
	if !c.Confirmed {
		return Result{Message: clearWarning + " Type 'clear confirm' to proceed."}
	}

	env.Ledger.Clear()
	env.Ledger.ClearBudgetsAndGoals()

	return Result{Message: "All data cleared.", Changed: true}
}

func (c ClearCommand) Confirmation(*transaction.Ledger) (string, bool) {
	return clearWarning + " Continue?", !c.Confirmed
}

func (c ClearCommand) OnConfirm() Command { return ClearCommand{Confirmed: true} }

func (c ClearCommand) OnDecline() Result { return Result{Message: "Clear cancelled."} }

// HelpCommand lists every command. The text is Markdown.
type HelpCommand struct{ continues }

func (HelpCommand) Execute(Env) Result {
	var sb strings.Builder

	sb.WriteString("# Commands\n\n")

	for _, g := range grammar {
		fmt.Fprintf(&sb, "- `%s`  \n  %s\n", g.usage, g.summary)
	}

	sb.WriteString("\nAmounts take up to two decimals, dates use yyyy-MM-dd and categories are ")

	names := make([]string, len(transaction.Categories))
	for i, c := range transaction.Categories {
		names[i] = string(c)
	}

	sb.WriteString(strings.Join(names, ", ") + ".\n")

	return Result{Message: sb.String(), Markdown: true}
}

type ExitCommand struct{}

func (ExitCommand) Execute(Env) Result { return Result{Message: "Goodbye!"} }

func (ExitCommand) IsExit() bool { return true }

type UnknownCommand struct {
	continues
	Word string
}

func (c UnknownCommand) Execute(Env) Result {
	return Result{Message: fmt.Sprintf("Unknown command '%s'. Type 'help' to see the available commands.", c.Word)}
}

// InvalidCommand is a recognized command whose arguments were rejected.
type InvalidCommand struct {
	continues
	Word   string
	Reason string
	Usage  string
}

func (c InvalidCommand) Execute(Env) Result {
	return Result{Message: fmt.Sprintf("Invalid %s command: %s\nUsage: %s", c.Word, c.Reason, c.Usage)}
}
