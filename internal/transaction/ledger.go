package transaction

import (
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Ledger holds the transactions of a session together with the monthly budgets and savings goals.
//
// Transactions are kept in insertion order; every index-based operation works on the display order
// returned by List (most recent first). A single mutex serialises access so a Ledger can be shared
// with a multi-threaded host.
type Ledger struct {
	mu           sync.Mutex
	transactions []Transaction
	budgets      map[Period]decimal.Decimal
	savingsGoals map[Period]decimal.Decimal
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		transactions: make([]Transaction, 0),
		budgets:      make(map[Period]decimal.Decimal),
		savingsGoals: make(map[Period]decimal.Decimal),
	}
}

// Add appends tx. Duplicate detection is the caller's job, see FindDuplicates.
func (l *Ledger) Add(tx Transaction) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.transactions = append(l.transactions, tx)
}

// Len returns the number of transactions.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.transactions)
}

// Transactions returns a copy of the transactions in insertion order.
func (l *Ledger) Transactions() []Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	return slices.Clone(l.transactions)
}

// FindDuplicates returns every transaction whose amount and description match exactly.
func (l *Ledger) FindDuplicates(amount decimal.Decimal, description string) []Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	var dups []Transaction

	for _, tx := range l.transactions {
		if tx.Amount.Equal(amount) && tx.Description == description {
			dups = append(dups, tx)
		}
	}

	return dups
}

// List returns all transactions sorted by date, most recent first.
func (l *Ledger) List() []Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.sortedLocked()
}

func (l *Ledger) sortedLocked() []Transaction {
	sorted := slices.Clone(l.transactions)
	slices.SortStableFunc(sorted, func(a, b Transaction) int {
		return b.Date.Compare(a.Date)
	})

	return sorted
}

// Get returns the transaction at the 1-based display index.
func (l *Ledger) Get(index int) (Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.checkIndexLocked(index); err != nil {
		return Transaction{}, err
	}

	return l.sortedLocked()[index-1], nil
}

// Delete removes the transaction at the 1-based display index and returns it.
func (l *Ledger) Delete(index int) (Transaction, error) {
	deleted, err := l.DeleteRange(index, index)
	if err != nil {
		return Transaction{}, err
	}

	return deleted[0], nil
}

// DeleteRange removes the transactions between the 1-based display indices start and end, inclusive.
// The removed transactions are returned in display order.
func (l *Ledger) DeleteRange(start, end int) ([]Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.checkIndexLocked(start); err != nil {
		return nil, err
	}

	if err := l.checkIndexLocked(end); err != nil {
		return nil, err
	}

	if start > end {
		return nil, &ValidationError{
			Kind:   KindBounds,
			Reason: "start index must not be greater than end index",
		}
	}

	sorted := l.sortedLocked()
	deleted := slices.Clone(sorted[start-1 : end])

	// Highest index first so lower positions stay valid.
	for i := end; i >= start; i-- {
		l.removeLocked(sorted[i-1])
	}

	return deleted, nil
}

func (l *Ledger) checkIndexLocked(index int) error {
	if len(l.transactions) == 0 {
		return ErrEmptyLedger
	}

	if index < 1 || index > len(l.transactions) {
		return &BoundsError{Index: index, Count: len(l.transactions)}
	}

	return nil
}

func (l *Ledger) removeLocked(tx Transaction) bool {
	idx := slices.IndexFunc(l.transactions, tx.Equal)
	if idx < 0 {
		return false
	}

	l.transactions = slices.Delete(l.transactions, idx, idx+1)

	return true
}

// Update replaces the first transaction equal to old with replacement.
// It reports false when old is not in the ledger.
func (l *Ledger) Update(old, replacement Transaction) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := slices.IndexFunc(l.transactions, old.Equal)
	if idx < 0 {
		return false
	}

	l.transactions[idx] = replacement

	return true
}

// Search returns, in display order, the transactions whose description contains any of the keywords,
// ignoring case.
func (l *Ledger) Search(keywords ...string) []Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	needles := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			needles = append(needles, k)
		}
	}

	var matches []Transaction

	for _, tx := range l.sortedLocked() {
		desc := strings.ToLower(tx.Description)
		if slices.ContainsFunc(needles, func(n string) bool { return strings.Contains(desc, n) }) {
			matches = append(matches, tx)
		}
	}

	return matches
}

// Filter returns, in display order, the transactions dated between start and end inclusive.
func (l *Ledger) Filter(start, end time.Time) []Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	from, to := truncateDay(start), truncateDay(end)

	var matches []Transaction

	for _, tx := range l.sortedLocked() {
		d := truncateDay(tx.Date)
		if d.Before(from) || d.After(to) {
			continue
		}

		matches = append(matches, tx)
	}

	return matches
}

// TotalIncome sums every income.
func (l *Ledger) TotalIncome() decimal.Decimal {
	return l.sum(func(tx Transaction) bool { return tx.Type == TypeIncome })
}

// TotalExpenses sums every expense.
func (l *Ledger) TotalExpenses() decimal.Decimal {
	return l.sum(func(tx Transaction) bool { return tx.Type == TypeExpense })
}

// Balance is total income minus total expenses.
func (l *Ledger) Balance() decimal.Decimal {
	return l.TotalIncome().Sub(l.TotalExpenses())
}

// MonthlyTotalIncome sums the income dated inside p.
func (l *Ledger) MonthlyTotalIncome(p Period) decimal.Decimal {
	return l.sum(func(tx Transaction) bool { return tx.Type == TypeIncome && p.Contains(tx.Date) })
}

// MonthlyTotalExpense sums the expenses dated inside p.
func (l *Ledger) MonthlyTotalExpense(p Period) decimal.Decimal {
	return l.sum(func(tx Transaction) bool { return tx.Type == TypeExpense && p.Contains(tx.Date) })
}

func (l *Ledger) sum(match func(Transaction) bool) decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()

	total := decimal.Zero

	for _, tx := range l.transactions {
		if match(tx) {
			total = total.Add(tx.Amount)
		}
	}

	return total
}

// MonthlyCategorisedExpenses sums the expenses of p per category. Every category is present,
// those without spending map to zero.
func (l *Ledger) MonthlyCategorisedExpenses(p Period) map[Category]decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()

	totals := make(map[Category]decimal.Decimal, len(Categories))
	for _, c := range Categories {
		totals[c] = decimal.Zero
	}

	for _, tx := range l.transactions {
		if tx.Type != TypeExpense || !p.Contains(tx.Date) {
			continue
		}

		totals[tx.Category] = totals[tx.Category].Add(tx.Amount)
	}

	return totals
}

// MonthlyTaggedExpenses sums the expenses of p per tag.
//
// An expense carrying several tags counts its full amount towards each of them, so the tag totals
// can add up to more than the month's expenses.
func (l *Ledger) MonthlyTaggedExpenses(p Period) map[string]decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()

	totals := make(map[string]decimal.Decimal)

	for _, tx := range l.transactions {
		if tx.Type != TypeExpense || !p.Contains(tx.Date) {
			continue
		}

		for _, tag := range tx.Tags {
			totals[tag] = totals[tag].Add(tx.Amount)
		}
	}

	return totals
}

// SetBudget records the budget for p, replacing any previous one.
func (l *Ledger) SetBudget(p Period, amount decimal.Decimal) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.budgets[p] = amount
}

// Budget returns the budget for p. The boolean is false when no budget was set; zero is a valid budget.
func (l *Ledger) Budget(p Period) (decimal.Decimal, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.budgets[p]

	return b, ok
}

// Budgets returns a copy of every budget.
func (l *Ledger) Budgets() map[Period]decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()

	return maps.Clone(l.budgets)
}

// SetSavingsGoal records the savings goal for p, replacing any previous one.
func (l *Ledger) SetSavingsGoal(p Period, amount decimal.Decimal) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.savingsGoals[p] = amount
}

// SavingsGoal returns the savings goal for p. The boolean is false when no goal was set.
func (l *Ledger) SavingsGoal(p Period) (decimal.Decimal, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	g, ok := l.savingsGoals[p]

	return g, ok
}

// SavingsGoals returns a copy of every savings goal.
func (l *Ledger) SavingsGoals() map[Period]decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()

	return maps.Clone(l.savingsGoals)
}

// Clear removes every transaction. Budgets and goals are kept, see ClearBudgetsAndGoals.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.transactions = make([]Transaction, 0)
}

// ClearBudgetsAndGoals removes every budget and savings goal.
func (l *Ledger) ClearBudgetsAndGoals() {
	l.mu.Lock()
	defer l.mu.Unlock()

	clear(l.budgets)
	clear(l.savingsGoals)
}
