package command_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/command"
	"github.com/MrJamesThe3rd/tally/internal/export"
	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

var now = time.Date(2025, 3, 16, 12, 0, 0, 0, time.UTC)

func newParser() *command.Parser {
	return command.NewParser(func() time.Time { return now })
}

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestParser_Parse(t *testing.T) {
	type testCase struct {
		name  string
		line  string
		check func(t *testing.T, cmd command.Command)
	}

	tests := []testCase{
		{
			name: "EmptyIsHelp",
			line: "   ",
			check: func(t *testing.T, cmd command.Command) {
				assert.IsType(t, command.HelpCommand{}, cmd)
			},
		},
		{
			name: "WordIgnoresCase",
			line: "LiSt",
			check: func(t *testing.T, cmd command.Command) {
				assert.IsType(t, command.ListCommand{}, cmd)
			},
		},
		{
			name: "Unknown",
			line: "dance now",
			check: func(t *testing.T, cmd command.Command) {
				require.IsType(t, command.UnknownCommand{}, cmd)
				assert.Equal(t, "dance", cmd.(command.UnknownCommand).Word)
			},
		},
		{
			name: "Income",
			line: "income 500 d/Monthly salary t/work date/2025-03-01",
			check: func(t *testing.T, cmd command.Command) {
				require.IsType(t, command.AddCommand{}, cmd)
				tx := cmd.(command.AddCommand).Transaction

				assert.Equal(t, transaction.TypeIncome, tx.Type)
				assert.True(t, decimal.NewFromInt(500).Equal(tx.Amount))
				assert.Equal(t, "Monthly salary", tx.Description)
				assert.Equal(t, []string{"work"}, tx.Tags)
				assert.Equal(t, day(2025, 3, 1), tx.Date)
				assert.Empty(t, tx.Category)
			},
		},
		{
			name: "ExpenseDefaults",
			line: "expense 12.5 d/Lunch",
			check: func(t *testing.T, cmd command.Command) {
				require.IsType(t, command.AddCommand{}, cmd)
				tx := cmd.(command.AddCommand).Transaction

				assert.Equal(t, transaction.CategoryOthers, tx.Category)
				assert.Equal(t, day(2025, 3, 16), tx.Date)
				assert.Empty(t, tx.Tags)
			},
		},
		{
			name: "ExpenseCategory",
			line: "expense 40 d/Train c/TRANSPORT",
			check: func(t *testing.T, cmd command.Command) {
				assert.Equal(t, transaction.CategoryTransport, cmd.(command.AddCommand).Transaction.Category)
			},
		},
		{
			name: "ExpenseUnknownCategory",
			line: "expense 40 d/Gift c/presents",
			check: func(t *testing.T, cmd command.Command) {
				assert.Equal(t, transaction.CategoryOthers, cmd.(command.AddCommand).Transaction.Category)
			},
		},
		{
			name: "DeleteSingle",
			line: "delete 3",
			check: func(t *testing.T, cmd command.Command) {
				assert.Equal(t, command.DeleteCommand{Start: 3, End: 3}, cmd)
			},
		},
		{
			name: "DeleteRange",
			line: "delete 2-4",
			check: func(t *testing.T, cmd command.Command) {
				assert.Equal(t, command.DeleteCommand{Start: 2, End: 4}, cmd)
			},
		},
		{
			name: "DeleteZeroReachesLedger",
			line: "delete 0",
			check: func(t *testing.T, cmd command.Command) {
				assert.Equal(t, command.DeleteCommand{Start: 0, End: 0}, cmd)
			},
		},
		{
			name: "Edit",
			line: "edit 2 a/9.99 c/bills t/",
			check: func(t *testing.T, cmd command.Command) {
				require.IsType(t, command.EditCommand{}, cmd)
				edit := cmd.(command.EditCommand)

				assert.Equal(t, 2, edit.Index)
				require.NotNil(t, edit.Changes.Amount)
				assert.True(t, decimal.RequireFromString("9.99").Equal(*edit.Changes.Amount))
				require.NotNil(t, edit.Changes.Category)
				assert.Equal(t, transaction.CategoryBills, *edit.Changes.Category)
				assert.Nil(t, edit.Changes.Description)
				assert.Nil(t, edit.Changes.Date)
				assert.True(t, edit.Changes.SetTags)
				assert.Empty(t, edit.Changes.Tags)
			},
		},
		{
			name: "Search",
			line: "search coffee  TEA",
			check: func(t *testing.T, cmd command.Command) {
				assert.Equal(t, []string{"coffee", "TEA"}, cmd.(command.SearchCommand).Keywords)
			},
		},
		{
			name: "FilterDefaultsToToday",
			line: "filter from/2025-01-01",
			check: func(t *testing.T, cmd command.Command) {
				assert.Equal(t, command.FilterCommand{From: day(2025, 1, 1), To: day(2025, 3, 16)}, cmd)
			},
		},
		{
			name: "FilterRange",
			line: "filter from/2024-01-01 to/2024-12-31",
			check: func(t *testing.T, cmd command.Command) {
				assert.Equal(t, command.FilterCommand{From: day(2024, 1, 1), To: day(2024, 12, 31)}, cmd)
			},
		},
		{
			name: "SummaryDefaultsToCurrentMonth",
			line: "summary",
			check: func(t *testing.T, cmd command.Command) {
				assert.Equal(t, transaction.Period{Month: time.March, Year: 2025}, cmd.(command.SummaryCommand).Period)
			},
		},
		{
			name: "SummaryMonthOnly",
			line: "summary m/5",
			check: func(t *testing.T, cmd command.Command) {
				assert.Equal(t, transaction.Period{Month: time.May, Year: 2025}, cmd.(command.SummaryCommand).Period)
			},
		},
		{
			name: "SetBudget",
			line: "setbudget 1000 m/5 y/2024",
			check: func(t *testing.T, cmd command.Command) {
				require.IsType(t, command.SetBudgetCommand{}, cmd)
				c := cmd.(command.SetBudgetCommand)

				assert.Equal(t, transaction.Period{Month: time.May, Year: 2024}, c.Period)
				assert.True(t, decimal.NewFromInt(1000).Equal(c.Amount))
			},
		},
		{
			name: "SetSavingsZero",
			line: "setsavings 0",
			check: func(t *testing.T, cmd command.Command) {
				require.IsType(t, command.SetSavingsCommand{}, cmd)
				assert.True(t, cmd.(command.SetSavingsCommand).Amount.IsZero())
			},
		},
		{
			name: "TrackBudget",
			line: "trackbudget y/2024",
			check: func(t *testing.T, cmd command.Command) {
				assert.Equal(t, transaction.Period{Month: time.March, Year: 2024}, cmd.(command.TrackBudgetCommand).Period)
			},
		},
		{
			name: "ExportDefaultsToCSV",
			line: "export",
			check: func(t *testing.T, cmd command.Command) {
				assert.Equal(t, export.FormatCSV, cmd.(command.ExportCommand).Format)
			},
		},
		{
			name: "ExportTXT",
			line: "export f/TXT",
			check: func(t *testing.T, cmd command.Command) {
				assert.Equal(t, export.FormatTXT, cmd.(command.ExportCommand).Format)
			},
		},
		{
			name: "Import",
			line: "import statements/jan 2026.csv b/cgd",
			check: func(t *testing.T, cmd command.Command) {
				assert.Equal(t, command.ImportCommand{Path: "statements/jan 2026.csv", Bank: importer.BankCGD}, cmd)
			},
		},
		{
			name: "ClearWithoutToken",
			line: "clear",
			check: func(t *testing.T, cmd command.Command) {
				assert.Equal(t, command.ClearCommand{}, cmd)
			},
		},
		{
			name: "ClearConfirmed",
			line: "clear CONFIRM",
			check: func(t *testing.T, cmd command.Command) {
				assert.Equal(t, command.ClearCommand{Confirmed: true}, cmd)
			},
		},
		{
			name: "Exit",
			line: "exit",
			check: func(t *testing.T, cmd command.Command) {
				assert.True(t, cmd.IsExit())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, newParser().Parse(tt.line))
		})
	}
}

func TestParser_Invalid(t *testing.T) {
	type testCase struct {
		name   string
		line   string
		reason string
	}

	tests := []testCase{
		{name: "IncomeMissingAmount", line: "income d/Salary", reason: "amount is required"},
		{name: "IncomeNegative", line: "income -5 d/Salary", reason: "cannot be negative"},
		{name: "IncomeTooPrecise", line: "income 5.123 d/Salary", reason: "at most two decimal places"},
		{name: "IncomeNotANumber", line: "income five d/Salary", reason: "must be a number"},
		{name: "IncomeZero", line: "income 0 d/Salary", reason: "greater than zero"},
		{name: "IncomeMissingDescription", line: "income 5", reason: "description is required"},
		{name: "IncomeBlankDescription", line: "income 5 d/", reason: "description is required"},
		{name: "ExpenseBadDate", line: "expense 5 d/Tea date/2025-02-30", reason: "not a real calendar date"},
		{name: "ExpenseDateLayout", line: "expense 5 d/Tea date/16-03-2025", reason: "yyyy-MM-dd"},
		{name: "ExpenseFarFuture", line: "expense 5 d/Tea date/2300-01-01", reason: "too far in the future"},
		{name: "ExpenseTagSeparator", line: "expense 5 d/Tea t/a,b", reason: "tags cannot contain"},
		{name: "DeleteMissingIndex", line: "delete", reason: "an index is required"},
		{name: "DeleteNotANumber", line: "delete two", reason: "whole number"},
		{name: "DeleteBackwardsRange", line: "delete 4-2", reason: "must not be after its end"},
		{name: "EditNothing", line: "edit 1", reason: "nothing to change"},
		{name: "EditBadAmount", line: "edit 1 a/1.999", reason: "at most two decimal places"},
		{name: "EditBlankDescription", line: "edit 1 d/", reason: "description is required"},
		{name: "SearchNoKeywords", line: "search", reason: "at least one keyword"},
		{name: "FilterMissingFrom", line: "filter to/2025-01-01", reason: "start date is required"},
		{name: "FilterBackwards", line: "filter from/2025-03-01 to/2025-02-01", reason: "must not be after the end date"},
		{name: "FilterFromInFuture", line: "filter from/2025-04-01", reason: "must not be after the end date"},
		{name: "SummaryBadMonth", line: "summary m/13", reason: "month must be a number from 1 to 12"},
		{name: "SummaryBadYear", line: "summary y/abc", reason: "year must be"},
		{name: "SetBudgetMissingAmount", line: "setbudget m/3", reason: "amount is required"},
		{name: "ExportFormat", line: "export f/pdf", reason: "unsupported export format"},
		{name: "ImportMissingPath", line: "import b/cgd", reason: "path of a statement file is required"},
		{name: "ImportUnknownBank", line: "import x.csv b/bpi", reason: "unknown bank"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newParser().Parse(tt.line)
			require.IsType(t, command.InvalidCommand{}, cmd)

			invalid := cmd.(command.InvalidCommand)
			assert.Contains(t, invalid.Reason, tt.reason)
			assert.NotEmpty(t, invalid.Usage)
			assert.False(t, invalid.IsExit())

			msg := invalid.Execute(command.Env{}).Message
			assert.Contains(t, msg, "Usage: ")
		})
	}
}
