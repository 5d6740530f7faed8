package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

const (
	recordIncome  = "INCOME"
	recordExpense = "EXPENSE"
	recordBudget  = "BUDGET"
	recordSavings = "SAVINGS"

	fieldSep = "|"
	tagSep   = ","

	transactionFields = 6
	targetFields      = 3
)

// EncodeTransaction renders tx as one line of the data file:
//
//	TYPE|yyyy-MM-dd|amount|description|category|tag1,tag2
func EncodeTransaction(tx transaction.Transaction) string {
	kind := recordIncome
	if tx.IsExpense() {
		kind = recordExpense
	}

	return strings.Join([]string{
		kind,
		tx.Date.Format(time.DateOnly),
		tx.Amount.StringFixed(2),
		tx.Description,
		string(tx.Category),
		strings.Join(tx.Tags, tagSep),
	}, fieldSep)
}

// DecodeTransaction parses a line produced by EncodeTransaction.
//
// Descriptions may contain the separator: the first three and last two fields are positional and
// whatever sits between them is the description.
func DecodeTransaction(line string) (transaction.Transaction, error) {
	fields := strings.Split(line, fieldSep)
	if len(fields) < transactionFields {
		return transaction.Transaction{}, fmt.Errorf("expected %d fields, got %d", transactionFields, len(fields))
	}

	n := len(fields)
	kind, rawDate, rawAmount := fields[0], fields[1], fields[2]
	description := strings.Join(fields[3:n-2], fieldSep)
	category, rawTags := fields[n-2], fields[n-1]

	var txType transaction.Type

	switch kind {
	case recordIncome:
		txType = transaction.TypeIncome
	case recordExpense:
		txType = transaction.TypeExpense
	default:
		return transaction.Transaction{}, fmt.Errorf("unknown record type %q", kind)
	}

	on, err := time.Parse(time.DateOnly, rawDate)
	if err != nil {
		return transaction.Transaction{}, fmt.Errorf("parsing date: %w", err)
	}

	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		return transaction.Transaction{}, fmt.Errorf("parsing amount: %w", err)
	}

	var tags []string
	if rawTags != "" {
		tags = strings.Split(rawTags, tagSep)
	}

	return transaction.New(transaction.CreateParams{
		Type:        txType,
		Amount:      amount,
		Description: description,
		Date:        on,
		Tags:        tags,
		Category:    transaction.Category(category),
	})
}

// encodeTarget renders a monthly budget or savings goal line: KIND|yyyy-MM|amount.
func encodeTarget(kind string, p transaction.Period, amount decimal.Decimal) string {
	return strings.Join([]string{kind, p.Key(), amount.StringFixed(2)}, fieldSep)
}

func decodeTarget(fields []string) (transaction.Period, decimal.Decimal, error) {
	if len(fields) != targetFields {
		return transaction.Period{}, decimal.Zero, fmt.Errorf("expected %d fields, got %d", targetFields, len(fields))
	}

	p, err := transaction.ParsePeriodKey(fields[1])
	if err != nil {
		return transaction.Period{}, decimal.Zero, err
	}

	amount, err := decimal.NewFromString(fields[2])
	if err != nil {
		return transaction.Period{}, decimal.Zero, fmt.Errorf("parsing amount: %w", err)
	}

	if amount.IsNegative() {
		return transaction.Period{}, decimal.Zero, fmt.Errorf("negative amount %s", amount)
	}

	return p, amount, nil
}
