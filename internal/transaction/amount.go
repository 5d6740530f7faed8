package transaction

import (
	"math"
	"regexp"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

var (
	amountRe    = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
	numericRe   = regexp.MustCompile(`^[+-]?\d*\.?\d+$|^[+-]?\d+\.$`)
	precisionRe = regexp.MustCompile(`^\d+\.\d{3,}$`)
)

// ParseAmount parses a non-negative amount with at most two decimal places, such as "12" or "12.50".
// Zero parses successfully; constructors reject it.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)

	if s == "" {
		return decimal.Zero, &ValidationError{Kind: KindEmptyInput, Reason: "amount is required"}
	}

	if amountRe.MatchString(s) {
		return decimal.RequireFromString(s), nil
	}

	if strings.HasPrefix(s, "-") && numericRe.MatchString(s) {
		return decimal.Zero, &ValidationError{Kind: KindNegativeValue, Input: s, Reason: "amount cannot be negative"}
	}

	if precisionRe.MatchString(s) {
		return decimal.Zero, &ValidationError{
			Kind:   KindDecimalPrecision,
			Input:  s,
			Reason: "amount can have at most two decimal places",
		}
	}

	return decimal.Zero, &ValidationError{Kind: KindAmountFormat, Input: s, Reason: "amount must be a number like 12 or 12.50"}
}

var (
	maxCents = decimal.NewFromInt(math.MaxInt64)
	minCents = decimal.NewFromInt(math.MinInt64)
)

// FormatAmount renders d in dollars with two decimals and thousands separators, e.g. "$1,234.50".
func FormatAmount(d decimal.Decimal) string {
	cents := d.Shift(2).Round(0)
	if cents.GreaterThan(maxCents) || cents.LessThan(minCents) {
		return formatLarge(d)
	}

	return money.New(cents.IntPart(), money.USD).Display()
}

// formatLarge renders amounts whose cents do not fit in an int64, in the same layout as money.Display.
func formatLarge(d decimal.Decimal) string {
	fixed := d.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var sb strings.Builder

	if d.IsNegative() {
		sb.WriteByte('-')
	}

	sb.WriteByte('$')

	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			sb.WriteByte(',')
		}

		sb.WriteRune(r)
	}

	sb.WriteString("." + frac)

	return sb.String()
}
