// Package command turns one line of user input into an operation on the ledger.
//
// Parsing never fails: malformed input becomes an InvalidCommand or UnknownCommand whose Execute
// explains the problem. Commands are values holding already validated parameters, and each input
// line yields a fresh one.
package command

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/MrJamesThe3rd/tally/internal/export"
	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

// Exporter writes a ledger snapshot and returns the path of the file it created.
type Exporter interface {
	Export(l *transaction.Ledger, format export.Format) (string, error)
}

// Importer reads a bank statement into transactions.
type Importer interface {
	Import(path string, bank importer.Bank) ([]transaction.Transaction, error)
}

// Env is what a command executes against.
type Env struct {
	Ledger   *transaction.Ledger
	Exporter Exporter
	Importer Importer
}

// Result is the outcome of executing a command.
type Result struct {
	Message string
	// Changed is set when the ledger was modified and must be persisted.
	Changed bool
	// Markdown is set when Message is meant to be rendered as Markdown.
	Markdown bool
}

type Command interface {
	Execute(env Env) Result
	// IsExit reports whether the session ends after this command.
	IsExit() bool
}

// Confirmable is implemented by commands that may need a yes/no answer from the user before they run.
type Confirmable interface {
	Command
	// Confirmation returns the question to ask, and false when no question is needed.
	Confirmation(l *transaction.Ledger) (string, bool)
	// OnConfirm returns the command to execute after a yes.
	OnConfirm() Command
	// OnDecline is the result reported after a no. The ledger is left alone.
	OnDecline() Result
}

type continues struct{}

func (continues) IsExit() bool { return false }

// numbered renders txs as a 1-based list, one per line.
func numbered(txs []transaction.Transaction) string {
	var sb strings.Builder

	for i, tx := range txs {
		if i > 0 {
			sb.WriteByte('\n')
		}

		fmt.Fprintf(&sb, "%d. %s", i+1, tx)
	}

	return sb.String()
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}

	return fmt.Sprintf("%d %ss", n, noun)
}

// sentence renders err as a capitalized sentence for display.
func sentence(err error) string {
	msg := err.Error()
	if msg == "" {
		return ""
	}

	r, size := utf8.DecodeRuneInString(msg)
	msg = string(unicode.ToUpper(r)) + msg[size:]

	if !strings.HasSuffix(msg, ".") {
		msg += "."
	}

	return msg
}

func isEmptyLedger(err error) bool {
	return errors.Is(err, transaction.ErrEmptyLedger)
}
