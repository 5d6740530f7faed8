// Package cgd reads the CSV statements exported by Caixa Geral de Depósitos home banking.
package cgd

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/encoding"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

const dateLayout = "02-01-2006"

// Parser recognises the conta, extrato and cartão exports by their header row, wherever it sits
// below the account preamble.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse returns one CreateParams per movement with a positive Amount; the sign decides the Type.
func (p *Parser) Parse(r io.Reader) ([]transaction.CreateParams, error) {
	utf8r, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	for i, record := range records {
		for _, l := range layouts {
			if cols, ok := l.locate(record); ok {
				return cols.movements(records[i+1:], i+2)
			}
		}
	}

	return nil, fmt.Errorf("no matching CGD format found: expected the columns of a conta, extrato or cartão export")
}

// movements reads every record holding a date and a non-zero amount. Anything else, such as page
// footers and totals, is skipped. firstLine is the 1-based line number of records[0].
func (c columns) movements(records [][]string, firstLine int) ([]transaction.CreateParams, error) {
	var out []transaction.CreateParams

	for i, record := range records {
		on, err := time.Parse(dateLayout, cell(record, c.date))
		if err != nil {
			continue
		}

		amount, txType, ok := c.amount(record)
		if !ok {
			continue
		}

		desc := cell(record, c.description)
		if desc == "" {
			return nil, fmt.Errorf("line %d: missing description", firstLine+i)
		}

		out = append(out, transaction.CreateParams{
			Type:        txType,
			Amount:      amount,
			Description: desc,
			Date:        on,
		})
	}

	return out, nil
}

func (c columns) amount(record []string) (decimal.Decimal, transaction.Type, bool) {
	if c.signed < 0 {
		if d, ok := nonZero(cell(record, c.debit)); ok {
			return d.Abs(), transaction.TypeExpense, true
		}

		if d, ok := nonZero(cell(record, c.credit)); ok {
			return d.Abs(), transaction.TypeIncome, true
		}

		return decimal.Zero, "", false
	}

	d, ok := nonZero(cell(record, c.signed))
	switch {
	case !ok:
		return decimal.Zero, "", false
	case d.IsNegative():
		return d.Neg(), transaction.TypeExpense, true
	default:
		return d, transaction.TypeIncome, true
	}
}

func nonZero(s string) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Zero, false
	}

	d, err := parseEuropeanAmount(s)
	if err != nil || d.IsZero() {
		return decimal.Zero, false
	}

	return d, true
}

func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}

	return trimCell(record[idx])
}

func trimCell(s string) string {
	return strings.TrimSpace(s)
}
