package command

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/export"
	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

// Parser turns input lines into commands. Dates default to, and are validated against, its clock.
type Parser struct {
	now func() time.Time
}

func NewParser(now func() time.Time) *Parser {
	if now == nil {
		now = time.Now
	}

	return &Parser{now: now}
}

type syntax struct {
	word    string
	usage   string
	summary string
	parse   func(p *Parser, a args) (Command, error)
}

// grammar lists the recognized command words in the order help presents them.
var grammar = []syntax{
	{
		word:    "income",
		usage:   "income <amount> d/<description> [t/<tag>]... [date/<yyyy-MM-dd>]",
		summary: "Record money received.",
		parse:   func(p *Parser, a args) (Command, error) { return p.parseAdd(transaction.TypeIncome, a) },
	},
	{
		word:    "expense",
		usage:   "expense <amount> d/<description> [c/<category>] [t/<tag>]... [date/<yyyy-MM-dd>]",
		summary: "Record money spent. Unknown categories become Others.",
		parse:   func(p *Parser, a args) (Command, error) { return p.parseAdd(transaction.TypeExpense, a) },
	},
	{
		word:    "list",
		usage:   "list",
		summary: "Show every transaction, most recent first.",
		parse:   func(*Parser, args) (Command, error) { return ListCommand{}, nil },
	},
	{
		word:    "delete",
		usage:   "delete <index> | delete <start>-<end>",
		summary: "Remove transactions by their position in the list.",
		parse:   (*Parser).parseDelete,
	},
	{
		word:    "edit",
		usage:   "edit <index> [a/<amount>] [d/<description>] [c/<category>] [date/<yyyy-MM-dd>] [t/<tag>]...",
		summary: "Change fields of a transaction. Given tags replace the old ones; a bare t/ removes them.",
		parse:   (*Parser).parseEdit,
	},
	{
		word:    "search",
		usage:   "search <keyword> [<keyword>]...",
		summary: "Find transactions whose description contains any keyword.",
		parse:   (*Parser).parseSearch,
	},
	{
		word:    "filter",
		usage:   "filter from/<yyyy-MM-dd> [to/<yyyy-MM-dd>]",
		summary: "Show transactions within a date range. The end defaults to today.",
		parse:   (*Parser).parseFilter,
	},
	{
		word:    "balance",
		usage:   "balance",
		summary: "Show total income, total expenses and the balance.",
		parse:   func(*Parser, args) (Command, error) { return BalanceCommand{}, nil },
	},
	{
		word:    "summary",
		usage:   "summary [m/<1-12>] [y/<yyyy>]",
		summary: "Break down a month's spending by category and tag. Defaults to the current month.",
		parse: func(p *Parser, a args) (Command, error) {
			period, err := p.parsePeriod(a)
			return SummaryCommand{Period: period}, err
		},
	},
	{
		word:    "setbudget",
		usage:   "setbudget <amount> [m/<1-12>] [y/<yyyy>]",
		summary: "Set the spending budget of a month.",
		parse: func(p *Parser, a args) (Command, error) {
			period, amount, err := p.parseTarget(a)
			return SetBudgetCommand{Period: period, Amount: amount}, err
		},
	},
	{
		word:    "trackbudget",
		usage:   "trackbudget [m/<1-12>] [y/<yyyy>]",
		summary: "Compare a month's expenses with its budget.",
		parse: func(p *Parser, a args) (Command, error) {
			period, err := p.parsePeriod(a)
			return TrackBudgetCommand{Period: period}, err
		},
	},
	{
		word:    "setsavings",
		usage:   "setsavings <amount> [m/<1-12>] [y/<yyyy>]",
		summary: "Set the savings goal of a month.",
		parse: func(p *Parser, a args) (Command, error) {
			period, amount, err := p.parseTarget(a)
			return SetSavingsCommand{Period: period, Amount: amount}, err
		},
	},
	{
		word:    "tracksavings",
		usage:   "tracksavings [m/<1-12>] [y/<yyyy>]",
		summary: "Compare what a month's income left after expenses with its savings goal.",
		parse: func(p *Parser, a args) (Command, error) {
			period, err := p.parsePeriod(a)
			return TrackSavingsCommand{Period: period}, err
		},
	},
	{
		word:    "export",
		usage:   "export [f/csv|txt]",
		summary: "Write a snapshot of the ledger to the export directory.",
		parse:   (*Parser).parseExport,
	},
	{
		word:    "import",
		usage:   "import <path> [b/cgd]",
		summary: "Add the movements of a bank statement, skipping duplicates.",
		parse:   (*Parser).parseImport,
	},
	{
		word:    "clear",
		usage:   "clear [confirm]",
		summary: "Delete all transactions, budgets and savings goals.",
		parse: func(_ *Parser, a args) (Command, error) {
			return ClearCommand{Confirmed: strings.EqualFold(a.raw, "confirm")}, nil
		},
	},
	{
		word:    "help",
		usage:   "help",
		summary: "Show this list.",
		parse:   func(*Parser, args) (Command, error) { return HelpCommand{}, nil },
	},
	{
		word:    "exit",
		usage:   "exit",
		summary: "Save and quit.",
		parse:   func(*Parser, args) (Command, error) { return ExitCommand{}, nil },
	},
}

// Parse never fails: bad input yields an UnknownCommand or an InvalidCommand.
func (p *Parser) Parse(line string) Command {
	line = strings.TrimSpace(line)
	if line == "" {
		return HelpCommand{}
	}

	word, tail := line, ""
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		word, tail = line[:i], line[i:]
	}

	word = strings.ToLower(word)

	for _, g := range grammar {
		if g.word != word {
			continue
		}

		cmd, err := g.parse(p, parseArgs(tail))
		if err != nil {
			return InvalidCommand{Word: word, Reason: reason(err), Usage: g.usage}
		}

		return cmd
	}

	return UnknownCommand{Word: word}
}

func reason(err error) string {
	msg := err.Error()
	if !strings.HasSuffix(msg, ".") {
		msg += "."
	}

	return msg
}

var errMissingDescription = &transaction.ValidationError{
	Kind:   transaction.KindMissingField,
	Reason: "a description is required (d/<description>)",
}

func (p *Parser) parseAdd(txType transaction.Type, a args) (Command, error) {
	amount, err := transaction.ParseAmount(a.positional)
	if err != nil {
		return nil, err
	}

	desc, _ := a.get(prefixDescription)
	if strings.TrimSpace(desc) == "" {
		return nil, errMissingDescription
	}

	tags, err := validTags(a.tags)
	if err != nil {
		return nil, err
	}

	on := p.now()
	if raw, ok := a.get(prefixDate); ok {
		if on, err = transaction.ParseDateAt(raw, p.now()); err != nil {
			return nil, err
		}
	}

	category, _ := a.get(prefixCategory)

	tx, err := transaction.New(transaction.CreateParams{
		Type:        txType,
		Amount:      amount,
		Description: desc,
		Date:        on,
		Tags:        tags,
		Category:    transaction.Category(category),
	})
	if err != nil {
		return nil, err
	}

	return AddCommand{Transaction: tx}, nil
}

// validTags rejects the characters the data file uses as separators.
func validTags(tags []string) ([]string, error) {
	for _, t := range tags {
		if strings.ContainsAny(t, ",|") {
			return nil, &transaction.ValidationError{
				Kind:   transaction.KindTagFormat,
				Input:  t,
				Reason: "tags cannot contain ',' or '|'",
			}
		}
	}

	return tags, nil
}

var (
	indexRe = regexp.MustCompile(`^\d+$`)
	rangeRe = regexp.MustCompile(`^(\d+)-(\d+)$`)
)

func (p *Parser) parseDelete(a args) (Command, error) {
	raw := strings.ReplaceAll(a.positional, " ", "")

	if m := rangeRe.FindStringSubmatch(raw); m != nil {
		start, err := parseIndex(m[1])
		if err != nil {
			return nil, err
		}

		end, err := parseIndex(m[2])
		if err != nil {
			return nil, err
		}

		if start > end {
			return nil, &transaction.ValidationError{
				Kind:   transaction.KindBounds,
				Input:  raw,
				Reason: "the start of a range must not be after its end",
			}
		}

		return DeleteCommand{Start: start, End: end}, nil
	}

	index, err := parseIndex(raw)
	if err != nil {
		return nil, err
	}

	return DeleteCommand{Start: index, End: index}, nil
}

func parseIndex(s string) (int, error) {
	if s == "" {
		return 0, &transaction.ValidationError{Kind: transaction.KindEmptyInput, Reason: "an index is required"}
	}

	if !indexRe.MatchString(s) {
		return 0, &transaction.ValidationError{
			Kind:   transaction.KindBounds,
			Input:  s,
			Reason: "an index must be a whole number like 3, or a range like 2-5",
		}
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &transaction.ValidationError{Kind: transaction.KindBounds, Input: s, Reason: "index is too large"}
	}

	return n, nil
}

func (p *Parser) parseEdit(a args) (Command, error) {
	index, err := parseIndex(a.positional)
	if err != nil {
		return nil, err
	}

	var ch Changes

	if raw, ok := a.get(prefixAmount); ok {
		amount, err := transaction.ParseAmount(raw)
		if err != nil {
			return nil, err
		}

		ch.Amount = &amount
	}

	if desc, ok := a.get(prefixDescription); ok {
		if strings.TrimSpace(desc) == "" {
			return nil, errMissingDescription
		}

		ch.Description = &desc
	}

	if raw, ok := a.get(prefixCategory); ok {
		c := transaction.ParseCategory(raw)
		ch.Category = &c
	}

	if raw, ok := a.get(prefixDate); ok {
		on, err := transaction.ParseDateAt(raw, p.now())
		if err != nil {
			return nil, err
		}

		ch.Date = &on
	}

	if a.tagged {
		if ch.Tags, err = validTags(a.tags); err != nil {
			return nil, err
		}

		ch.SetTags = true
	}

	if ch.empty() {
		return nil, &transaction.ValidationError{
			Kind:   transaction.KindMissingField,
			Reason: "nothing to change, give at least one of a/ d/ c/ date/ t/",
		}
	}

	return EditCommand{Index: index, Changes: ch}, nil
}

func (p *Parser) parseSearch(a args) (Command, error) {
	keywords := strings.Fields(a.raw)
	if len(keywords) == 0 {
		return nil, &transaction.ValidationError{Kind: transaction.KindEmptyInput, Reason: "at least one keyword is required"}
	}

	return SearchCommand{Keywords: keywords}, nil
}

func (p *Parser) parseFilter(a args) (Command, error) {
	rawFrom, ok := a.get(prefixFrom)
	if !ok {
		return nil, &transaction.ValidationError{Kind: transaction.KindMissingField, Reason: "a start date is required (from/<yyyy-MM-dd>)"}
	}

	from, err := transaction.ParseDateAt(rawFrom, p.now())
	if err != nil {
		return nil, err
	}

	to := p.now()
	if rawTo, ok := a.get(prefixTo); ok {
		if to, err = transaction.ParseDateAt(rawTo, p.now()); err != nil {
			return nil, err
		}
	}

	to = time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)

	if from.After(to) {
		return nil, &transaction.ValidationError{
			Kind:   transaction.KindDateFormat,
			Input:  rawFrom,
			Reason: "the start date must not be after the end date",
		}
	}

	return FilterCommand{From: from, To: to}, nil
}

// parsePeriod reads m/ and y/, defaulting each to the current month and year.
func (p *Parser) parsePeriod(a args) (transaction.Period, error) {
	period := transaction.PeriodOf(p.now())

	if raw, ok := a.get(prefixMonth); ok {
		m, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || m < 1 || m > 12 {
			return transaction.Period{}, &transaction.ValidationError{
				Kind:   transaction.KindDateFormat,
				Input:  raw,
				Reason: "month must be a number from 1 to 12",
			}
		}

		period.Month = time.Month(m)
	}

	if raw, ok := a.get(prefixYear); ok {
		y, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || y < 1 || y > 9999 {
			return transaction.Period{}, &transaction.ValidationError{
				Kind:   transaction.KindDateFormat,
				Input:  raw,
				Reason: "year must be a four-digit number",
			}
		}

		period.Year = y
	}

	return period, nil
}

func (p *Parser) parseTarget(a args) (transaction.Period, decimal.Decimal, error) {
	amount, err := transaction.ParseAmount(a.positional)
	if err != nil {
		return transaction.Period{}, amount, err
	}

	period, err := p.parsePeriod(a)

	return period, amount, err
}

func (p *Parser) parseExport(a args) (Command, error) {
	raw, _ := a.get(prefixFormat)

	format, err := export.ParseFormat(raw)
	if err != nil {
		return nil, err
	}

	return ExportCommand{Format: format}, nil
}

func (p *Parser) parseImport(a args) (Command, error) {
	path := strings.TrimSpace(a.positional)
	if path == "" {
		return nil, &transaction.ValidationError{Kind: transaction.KindMissingField, Reason: "the path of a statement file is required"}
	}

	raw, _ := a.get(prefixBank)

	bank, err := importer.ParseBank(raw)
	if err != nil {
		return nil, err
	}

	return ImportCommand{Path: path, Bank: bank}, nil
}
