package transaction

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Type represents the type of transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Category classifies an expense. Income carries no category.
type Category string

const (
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryShopping      Category = "Shopping"
	CategoryBills         Category = "Bills"
	CategoryEntertainment Category = "Entertainment"
	CategoryOthers        Category = "Others"
)

// Categories lists every category in declaration order. Reports use this order to break ties.
var Categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryShopping,
	CategoryBills,
	CategoryEntertainment,
	CategoryOthers,
}

// ParseCategory matches s case-insensitively against the known categories.
// Anything unrecognized, including the empty string, falls back to Others.
func ParseCategory(s string) Category {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) {
			return c
		}
	}

	return CategoryOthers
}

// Transaction represents a single income or expense record.
//
// Transactions are values: edits build a replacement with New and swap it into the ledger.
type Transaction struct {
	Type        Type
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	Tags        []string
	Category    Category // empty for income
}

// CreateParams holds the fields needed to build a Transaction.
type CreateParams struct {
	Type        Type
	Amount      decimal.Decimal
	Description string
	Date        time.Time // zero means today
	Tags        []string
	Category    Category
}

// New validates params and returns the resulting Transaction.
func New(params CreateParams) (Transaction, error) {
	if params.Type != TypeIncome && params.Type != TypeExpense {
		return Transaction{}, fmt.Errorf("unknown transaction type %q", params.Type)
	}

	if !params.Amount.IsPositive() {
		return Transaction{}, &ValidationError{
			Kind:   KindNegativeValue,
			Input:  params.Amount.String(),
			Reason: "amount must be greater than zero",
		}
	}

	desc := strings.TrimSpace(params.Description)
	if desc == "" {
		return Transaction{}, &ValidationError{Kind: KindMissingField, Reason: "description is required"}
	}

	date := params.Date
	if date.IsZero() {
		date = time.Now()
	}

	tx := Transaction{
		Type:        params.Type,
		Amount:      params.Amount.Round(2),
		Description: desc,
		Date:        truncateDay(date),
		Tags:        slices.Clone(params.Tags),
	}

	if params.Type == TypeExpense {
		tx.Category = ParseCategory(string(params.Category))
	}

	return tx, nil
}

// NewIncome is a shorthand for New with TypeIncome.
func NewIncome(amount decimal.Decimal, description string, date time.Time, tags ...string) (Transaction, error) {
	return New(CreateParams{Type: TypeIncome, Amount: amount, Description: description, Date: date, Tags: tags})
}

// NewExpense is a shorthand for New with TypeExpense.
func NewExpense(amount decimal.Decimal, description string, category Category, date time.Time, tags ...string) (Transaction, error) {
	return New(CreateParams{
		Type:        TypeExpense,
		Amount:      amount,
		Description: description,
		Category:    category,
		Date:        date,
		Tags:        tags,
	})
}

// Params returns the fields of t as CreateParams, ready to be modified for a replacement.
func (t Transaction) Params() CreateParams {
	return CreateParams{
		Type:        t.Type,
		Amount:      t.Amount,
		Description: t.Description,
		Date:        t.Date,
		Tags:        slices.Clone(t.Tags),
		Category:    t.Category,
	}
}

// IsExpense reports whether t is an expense.
func (t Transaction) IsExpense() bool { return t.Type == TypeExpense }

// Equal reports whether t and o hold the same fields.
func (t Transaction) Equal(o Transaction) bool {
	return t.Type == o.Type &&
		t.Amount.Equal(o.Amount) &&
		t.Description == o.Description &&
		sameDay(t.Date, o.Date) &&
		t.Category == o.Category &&
		slices.Equal(t.Tags, o.Tags)
}

// String renders t the way it appears in listings, e.g.
// "[Expense] Groceries - $100.00 (Food) on 2025-03-16 [tags: weekly]".
func (t Transaction) String() string {
	var sb strings.Builder

	if t.IsExpense() {
		fmt.Fprintf(&sb, "[Expense] %s - %s (%s)", t.Description, FormatAmount(t.Amount), t.Category)
	} else {
		fmt.Fprintf(&sb, "[Income] %s - %s", t.Description, FormatAmount(t.Amount))
	}

	fmt.Fprintf(&sb, " on %s", t.Date.Format(time.DateOnly))

	if len(t.Tags) > 0 {
		fmt.Fprintf(&sb, " [tags: %s]", strings.Join(t.Tags, ", "))
	}

	return sb.String()
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	return ay == by && am == bm && ad == bd
}
