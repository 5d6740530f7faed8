package store

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/encoding"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

// Store persists a ledger to a single pipe-delimited text file.
type Store struct {
	path   string
	logger *slog.Logger
}

func New(path string, logger *slog.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Path returns the location of the data file.
func (s *Store) Path() string {
	return s.path
}

// Load reads the data file. A missing file yields an empty ledger; lines that cannot be parsed are
// logged and skipped.
func (s *Store) Load(ctx context.Context) (*transaction.Ledger, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Info("data file does not exist, starting with an empty ledger", "path", s.path)
			return transaction.NewLedger(), nil
		}

		return nil, fmt.Errorf("opening data file: %w", err)
	}
	defer f.Close()

	return s.decode(ctx, f)
}

func (s *Store) decode(ctx context.Context, r io.Reader) (*transaction.Ledger, error) {
	utf8r, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	ledger := transaction.NewLedger()
	br := bufio.NewReader(utf8r)
	lineNum := 0

	// ReadString has no line length limit, unlike bufio.Scanner.
	for {
		raw, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("reading data file: %w", err)
		}

		if raw == "" && err != nil {
			break
		}

		lineNum++

		line := strings.TrimRight(raw, "\r\n")
		if strings.TrimSpace(line) != "" {
			if derr := s.decodeLine(ledger, line); derr != nil {
				s.logger.WarnContext(ctx, "skipping malformed line", "path", s.path, "line", lineNum, "error", derr)
			}
		}

		if err != nil {
			break
		}
	}

	return ledger, nil
}

func (s *Store) decodeLine(ledger *transaction.Ledger, line string) error {
	kind, _, _ := strings.Cut(line, fieldSep)

	switch kind {
	case recordBudget, recordSavings:
		p, amount, err := decodeTarget(strings.Split(line, fieldSep))
		if err != nil {
			return err
		}

		if kind == recordBudget {
			ledger.SetBudget(p, amount)
		} else {
			ledger.SetSavingsGoal(p, amount)
		}

		return nil
	}

	tx, err := DecodeTransaction(line)
	if err != nil {
		return err
	}

	ledger.Add(tx)

	return nil
}

// Save writes the whole ledger to a temporary file next to the data file and renames it into place.
func (s *Store) Save(_ context.Context, ledger *transaction.Ledger) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	if err := Encode(w, ledger); err != nil {
		tmp.Close()
		return fmt.Errorf("writing data file: %w", err)
	}

	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("flushing data file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing data file: %w", err)
	}

	return nil
}

// Encode writes every transaction, then every budget and savings goal, one per line.
func Encode(w io.Writer, ledger *transaction.Ledger) error {
	for _, tx := range ledger.Transactions() {
		if _, err := fmt.Fprintln(w, EncodeTransaction(tx)); err != nil {
			return err
		}
	}

	if err := encodeTargets(w, recordBudget, ledger.Budgets()); err != nil {
		return err
	}

	return encodeTargets(w, recordSavings, ledger.SavingsGoals())
}

func encodeTargets(w io.Writer, kind string, targets map[transaction.Period]decimal.Decimal) error {
	periods := slices.SortedFunc(maps.Keys(targets), func(a, b transaction.Period) int {
		return strings.Compare(a.Key(), b.Key())
	})

	for _, p := range periods {
		if _, err := fmt.Fprintln(w, encodeTarget(kind, p, targets[p])); err != nil {
			return err
		}
	}

	return nil
}
