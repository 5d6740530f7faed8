package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

// AddCommand records a new income or expense.
type AddCommand struct {
	continues
	Transaction transaction.Transaction
}

func (c AddCommand) Execute(env Env) Result {
	env.Ledger.Add(c.Transaction)

	kind := "Income"
	if c.Transaction.IsExpense() {
		kind = "Expense"
	}

	return Result{Message: fmt.Sprintf("%s added: %s", kind, c.Transaction), Changed: true}
}

// Confirmation asks before adding a transaction whose amount and description are already recorded.
func (c AddCommand) Confirmation(l *transaction.Ledger) (string, bool) {
	dups := l.FindDuplicates(c.Transaction.Amount, c.Transaction.Description)
	if len(dups) == 0 {
		return "", false
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "Found %s with the same amount and description:\n", plural(len(dups), "similar transaction"))

	for _, d := range dups {
		fmt.Fprintf(&sb, "  %s\n", d)
	}

	sb.WriteString("Add it anyway?")

	return sb.String(), true
}

func (c AddCommand) OnConfirm() Command { return c }

func (c AddCommand) OnDecline() Result {
	return Result{Message: "Transaction cancelled by user."}
}

type ListCommand struct{ continues }

func (ListCommand) Execute(env Env) Result {
	txs := env.Ledger.List()
	if len(txs) == 0 {
		return Result{Message: "No transactions recorded."}
	}

	return Result{Message: fmt.Sprintf("Transactions (%d):\n%s", len(txs), numbered(txs))}
}

// DeleteCommand removes the transactions between two 1-based list positions, inclusive.
type DeleteCommand struct {
	continues
	Start int
	End   int
}

func (c DeleteCommand) Execute(env Env) Result {
	deleted, err := env.Ledger.DeleteRange(c.Start, c.End)
	if isEmptyLedger(err) {
		return Result{Message: "No transactions to delete."}
	}

	if err != nil {
		return Result{Message: sentence(err)}
	}

	return Result{
		Message: fmt.Sprintf("Deleted %s:\n%s", plural(len(deleted), "transaction"), numbered(deleted)),
		Changed: true,
	}
}

// Changes holds the fields an edit overrides. Nil fields keep their current value.
type Changes struct {
	Amount      *decimal.Decimal
	Description *string
	Category    *transaction.Category
	Date        *time.Time
	// Tags replace the current tags when SetTags is true; an empty list removes them.
	Tags    []string
	SetTags bool
}

func (ch Changes) empty() bool {
	return ch.Amount == nil && ch.Description == nil && ch.Category == nil && ch.Date == nil && !ch.SetTags
}

func (ch Changes) apply(p transaction.CreateParams) transaction.CreateParams {
	if ch.Amount != nil {
		p.Amount = *ch.Amount
	}

	if ch.Description != nil {
		p.Description = *ch.Description
	}

	if ch.Category != nil {
		p.Category = *ch.Category
	}

	if ch.Date != nil {
		p.Date = *ch.Date
	}

	if ch.SetTags {
		p.Tags = ch.Tags
	}

	return p
}

// EditCommand replaces the transaction at a 1-based list position with a copy carrying Changes.
// Either every change applies or none does.
type EditCommand struct {
	continues
	Index   int
	Changes Changes
}

func (c EditCommand) Execute(env Env) Result {
	original, err := env.Ledger.Get(c.Index)
	if isEmptyLedger(err) {
		return Result{Message: "No transactions to edit."}
	}

	if err != nil {
		return Result{Message: sentence(err)}
	}

	if c.Changes.Category != nil && !original.IsExpense() {
		return editFailed("a category can only be set on an expense")
	}

	updated, err := transaction.New(c.Changes.apply(original.Params()))
	if err != nil {
		return editFailed(err.Error())
	}

	if !env.Ledger.Update(original, updated) {
		return editFailed("the transaction could not be found")
	}

	return Result{
		Message: fmt.Sprintf("Transaction %d updated.\n  Before: %s\n  After:  %s", c.Index, original, updated),
		Changed: true,
	}
}

func editFailed(reason string) Result {
	return Result{Message: fmt.Sprintf("Edit failed, nothing was changed: %s.", reason)}
}

type SearchCommand struct {
	continues
	Keywords []string
}

func (c SearchCommand) Execute(env Env) Result {
	matches := env.Ledger.Search(c.Keywords...)
	terms := strings.Join(c.Keywords, ", ")

	if len(matches) == 0 {
		return Result{Message: fmt.Sprintf("No transactions match: %s.", terms)}
	}

	return Result{Message: fmt.Sprintf("Found %s matching %s:\n%s", plural(len(matches), "transaction"), terms, numbered(matches))}
}

// FilterCommand lists the transactions dated between From and To, inclusive.
type FilterCommand struct {
	continues
	From time.Time
	To   time.Time
}

func (c FilterCommand) Execute(env Env) Result {
	matches := env.Ledger.Filter(c.From, c.To)
	from, to := c.From.Format(time.DateOnly), c.To.Format(time.DateOnly)

	if len(matches) == 0 {
		return Result{Message: fmt.Sprintf("No transactions between %s and %s.", from, to)}
	}

	return Result{Message: fmt.Sprintf("%s between %s and %s:\n%s", plural(len(matches), "transaction"), from, to, numbered(matches))}
}

type BalanceCommand struct{ continues }

func (BalanceCommand) Execute(env Env) Result {
	l := env.Ledger

	return Result{Message: fmt.Sprintf(
		"Total income:   %s\nTotal expenses: %s\nBalance:        %s",
		transaction.FormatAmount(l.TotalIncome()),
		transaction.FormatAmount(l.TotalExpenses()),
		transaction.FormatAmount(l.Balance()),
	)}
}
