package command

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

var hundred = decimal.NewFromInt(100)

// SummaryCommand reports a month's totals and where the money went.
type SummaryCommand struct {
	continues
	Period transaction.Period
}

type share struct {
	label  string
	amount decimal.Decimal
}

func (c SummaryCommand) Execute(env Env) Result {
	l := env.Ledger
	income := l.MonthlyTotalIncome(c.Period)
	expenses := l.MonthlyTotalExpense(c.Period)

	var sb strings.Builder

	fmt.Fprintf(&sb, "Summary for %s\n", c.Period)
	fmt.Fprintf(&sb, "Total income:   %s\n", transaction.FormatAmount(income))
	fmt.Fprintf(&sb, "Total expenses: %s\n", transaction.FormatAmount(expenses))
	fmt.Fprintf(&sb, "Net balance:    %s", transaction.FormatAmount(income.Sub(expenses)))

	if expenses.IsZero() {
		sb.WriteString("\n\nNo expenses recorded for this month.")
		return Result{Message: sb.String()}
	}

	byCategory := l.MonthlyCategorisedExpenses(c.Period)
	categories := make([]share, 0, len(transaction.Categories))

	for _, cat := range transaction.Categories {
		categories = append(categories, share{label: string(cat), amount: byCategory[cat]})
	}

	byTag := l.MonthlyTaggedExpenses(c.Period)
	tags := make([]share, 0, len(byTag))

	for _, tag := range slices.Sorted(maps.Keys(byTag)) {
		tags = append(tags, share{label: tag, amount: byTag[tag]})
	}

	writeShares(&sb, "Expenses by category", categories, expenses)
	writeShares(&sb, "Expenses by tag", tags, expenses)

	return Result{Message: sb.String()}
}

// writeShares lists the non-zero shares, largest first, keeping the incoming order for ties.
func writeShares(sb *strings.Builder, title string, shares []share, total decimal.Decimal) {
	shares = slices.DeleteFunc(shares, func(s share) bool { return s.amount.IsZero() })
	if len(shares) == 0 {
		return
	}

	slices.SortStableFunc(shares, func(a, b share) int {
		return b.amount.Cmp(a.amount)
	})

	fmt.Fprintf(sb, "\n\n%s:", title)

	for i, s := range shares {
		pct := s.amount.Mul(hundred).Div(total)
		fmt.Fprintf(sb, "\n%d. %s: %s (%s%%)", i+1, s.label, transaction.FormatAmount(s.amount), pct.StringFixed(1))
	}
}

type SetBudgetCommand struct {
	continues
	Period transaction.Period
	Amount decimal.Decimal
}

func (c SetBudgetCommand) Execute(env Env) Result {
	env.Ledger.SetBudget(c.Period, c.Amount)

	return Result{
		Message: fmt.Sprintf("Budget for %s set to %s.", c.Period, transaction.FormatAmount(c.Amount)),
		Changed: true,
	}
}

// TrackBudgetCommand compares a month's expenses with its budget.
type TrackBudgetCommand struct {
	continues
	Period transaction.Period
}

func (c TrackBudgetCommand) Execute(env Env) Result {
	budget, ok := env.Ledger.Budget(c.Period)
	if !ok {
		return Result{Message: fmt.Sprintf("No budget set for %s.", c.Period)}
	}

	spent := env.Ledger.MonthlyTotalExpense(c.Period)

	var sb strings.Builder

	fmt.Fprintf(&sb, "Budget for %s: %s\n", c.Period, transaction.FormatAmount(budget))
	fmt.Fprintf(&sb, "Spent: %s\n", transaction.FormatAmount(spent))

	if spent.GreaterThan(budget) {
		fmt.Fprintf(&sb, "Budget exceeded by %s", transaction.FormatAmount(spent.Sub(budget)))
	} else {
		fmt.Fprintf(&sb, "Within budget, %s remaining", transaction.FormatAmount(budget.Sub(spent)))
	}

	return Result{Message: sb.String()}
}

type SetSavingsCommand struct {
	continues
	Period transaction.Period
	Amount decimal.Decimal
}

func (c SetSavingsCommand) Execute(env Env) Result {
	env.Ledger.SetSavingsGoal(c.Period, c.Amount)

	return Result{
		Message: fmt.Sprintf("Savings goal for %s set to %s.", c.Period, transaction.FormatAmount(c.Amount)),
		Changed: true,
	}
}

// TrackSavingsCommand compares what a month's income left over after expenses with its savings goal.
type TrackSavingsCommand struct {
	continues
	Period transaction.Period
}

func (c TrackSavingsCommand) Execute(env Env) Result {
	goal, ok := env.Ledger.SavingsGoal(c.Period)
	if !ok {
		return Result{Message: fmt.Sprintf("No savings goal set for %s.", c.Period)}
	}

	income := env.Ledger.MonthlyTotalIncome(c.Period)
	expenses := env.Ledger.MonthlyTotalExpense(c.Period)
	net := income.Sub(expenses)

	var sb strings.Builder

	fmt.Fprintf(&sb, "Savings goal for %s: %s\n", c.Period, transaction.FormatAmount(goal))
	fmt.Fprintf(&sb, "Income: %s, expenses: %s\n", transaction.FormatAmount(income), transaction.FormatAmount(expenses))

	switch {
	case net.IsNegative():
		fmt.Fprintf(&sb, "Net spending of %s this month, short of goal by %s",
			transaction.FormatAmount(net.Neg()), transaction.FormatAmount(goal.Sub(net)))
	case net.GreaterThanOrEqual(goal):
		fmt.Fprintf(&sb, "Net savings %s. Goal reached, surplus %s",
			transaction.FormatAmount(net), transaction.FormatAmount(net.Sub(goal)))
	default:
		fmt.Fprintf(&sb, "Net savings %s. Short of goal by %s",
			transaction.FormatAmount(net), transaction.FormatAmount(goal.Sub(net)))
	}

	return Result{Message: sb.String()}
}
