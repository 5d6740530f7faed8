package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

// Format is the file format of a snapshot.
type Format string

const (
	FormatCSV Format = "csv"
	FormatTXT Format = "txt"
)

// ParseFormat matches s case-insensitively. An empty string selects CSV.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(FormatCSV):
		return FormatCSV, nil
	case string(FormatTXT):
		return FormatTXT, nil
	}

	return "", fmt.Errorf("unsupported export format %q: use csv or txt", s)
}

const csvHeader = "Type,Date,Amount,Description,Category,Tags"

// Service writes timestamped snapshots of a ledger into a directory.
type Service struct {
	dir string
	now func() time.Time
}

// NewService creates a Service writing into dir. now stamps file names and report headers.
func NewService(dir string, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}

	return &Service{dir: dir, now: now}
}

// Export writes a snapshot of l in the given format and returns the path of the new file.
func (s *Service) Export(l *transaction.Ledger, format Format) (string, error) {
	var write func(io.Writer, *transaction.Ledger, time.Time) error

	switch format {
	case FormatCSV:
		write = WriteCSV
	case FormatTXT:
		write = WriteTXT
	default:
		return "", fmt.Errorf("unsupported export format %q", format)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	at := s.now()

	f, err := createUnique(s.dir, filename(at), string(format))
	if err != nil {
		return "", err
	}

	path := f.Name()

	w := bufio.NewWriter(f)
	if err := write(w, l, at); err != nil {
		f.Close()
		os.Remove(path)

		return "", fmt.Errorf("writing %s export: %w", format, err)
	}

	if err := w.Flush(); err != nil {
		f.Close()
		os.Remove(path)

		return "", fmt.Errorf("writing %s export: %w", format, err)
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("closing %s export: %w", format, err)
	}

	return path, nil
}

// maxNameAttempts bounds the suffixes tried when exports land in the same second.
const maxNameAttempts = 100

// createUnique creates base.ext in dir, or base_N.ext when that name is taken. Existing snapshots
// are never overwritten.
func createUnique(dir, base, ext string) (*os.File, error) {
	for i := range maxNameAttempts {
		name := base + "." + ext
		if i > 0 {
			name = fmt.Sprintf("%s_%d.%s", base, i, ext)
		}

		f, err := os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, nil
		}

		if !errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("creating file: %w", err)
		}
	}

	return nil, fmt.Errorf("creating file: %s already has %d exports named %s", dir, maxNameAttempts, base)
}

// filename returns the base name of a snapshot taken at at: transactions_YYYYMMDD_HHMMSS.
func filename(at time.Time) string {
	return "transactions_" + at.Format("20060102_150405")
}

// WriteCSV writes every transaction of l, most recent first, as CSV.
// Descriptions are always quoted and tags are joined with semicolons.
func WriteCSV(w io.Writer, l *transaction.Ledger, _ time.Time) error {
	if _, err := fmt.Fprintln(w, csvHeader); err != nil {
		return err
	}

	for _, tx := range l.List() {
		record := strings.Join([]string{
			typeLabel(tx),
			tx.Date.Format(time.DateOnly),
			tx.Amount.StringFixed(2),
			quote(tx.Description),
			csvField(string(tx.Category)),
			csvField(strings.Join(tx.Tags, ";")),
		}, ",")

		if _, err := fmt.Fprintln(w, record); err != nil {
			return err
		}
	}

	return nil
}

// WriteTXT writes a readable report: a header, a numbered listing, then totals.
func WriteTXT(w io.Writer, l *transaction.Ledger, at time.Time) error {
	var sb strings.Builder

	title := "Transaction report - exported " + at.Format(time.DateTime)
	fmt.Fprintf(&sb, "%s\n%s\n\n", title, strings.Repeat("=", len(title)))

	txs := l.List()
	if len(txs) == 0 {
		sb.WriteString("No transactions recorded.\n")
	}

	for i, tx := range txs {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, tx)
		fmt.Fprintf(&sb, "   Date: %s\n", tx.Date.Format(time.DateOnly))

		if tx.IsExpense() {
			fmt.Fprintf(&sb, "   Category: %s\n", tx.Category)
		}

		if len(tx.Tags) > 0 {
			fmt.Fprintf(&sb, "   Tags: %s\n", strings.Join(tx.Tags, ", "))
		}
	}

	sb.WriteString("\nSummary\n-------\n")
	fmt.Fprintf(&sb, "Total income:   %s\n", l.TotalIncome().StringFixed(2))
	fmt.Fprintf(&sb, "Total expenses: %s\n", l.TotalExpenses().StringFixed(2))
	fmt.Fprintf(&sb, "Balance:        %s\n", l.Balance().StringFixed(2))

	_, err := io.WriteString(w, sb.String())

	return err
}

func typeLabel(tx transaction.Transaction) string {
	if tx.IsExpense() {
		return "Expense"
	}

	return "Income"
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func csvField(s string) string {
	if strings.ContainsAny(s, ",\"\r\n") {
		return quote(s)
	}

	return s
}
