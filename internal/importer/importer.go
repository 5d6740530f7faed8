// Package importer turns bank statement exports into ledger transactions.
package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

type Bank string

const (
	BankCGD Bank = "cgd"
)

// ImportedTag marks every transaction that came from a bank statement.
const ImportedTag = "imported"

// ParseBank matches s case-insensitively. An empty string selects CGD, the only supported bank.
func ParseBank(s string) (Bank, error) {
	switch Bank(strings.ToLower(strings.TrimSpace(s))) {
	case "", BankCGD:
		return BankCGD, nil
	}

	return "", fmt.Errorf("unknown bank %q: supported banks are %s", s, BankCGD)
}

// Parser reads one bank's statement format.
type Parser interface {
	Parse(r io.Reader) ([]transaction.CreateParams, error)
}
