package importer

import (
	"fmt"
	"io"
	"os"

	"github.com/MrJamesThe3rd/tally/internal/importer/cgd"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

type Service struct {
	parsers map[Bank]Parser
}

func NewService() *Service {
	return &Service{
		parsers: map[Bank]Parser{
			BankCGD: cgd.NewParser(),
		},
	}
}

// Import reads the statement at path. Expenses land in the Others category and every transaction
// is tagged ImportedTag.
func (s *Service) Import(path string, bank Bank) ([]transaction.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()

	return s.Read(f, bank)
}

// Read is Import for an already open statement.
func (s *Service) Read(r io.Reader, bank Bank) ([]transaction.Transaction, error) {
	parser, ok := s.parsers[bank]
	if !ok {
		return nil, fmt.Errorf("unknown bank: %s", bank)
	}

	rows, err := parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing %s statement: %w", bank, err)
	}

	txs := make([]transaction.Transaction, 0, len(rows))

	for i, params := range rows {
		if params.Type == transaction.TypeExpense {
			params.Category = transaction.CategoryOthers
		}

		params.Tags = []string{ImportedTag}

		tx, err := transaction.New(params)
		if err != nil {
			return nil, fmt.Errorf("movement %d: %w", i+1, err)
		}

		txs = append(txs, tx)
	}

	return txs, nil
}
