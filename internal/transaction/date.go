package transaction

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// maxYearsAhead bounds how far in the future a date may be before it is treated as a typo.
const maxYearsAhead = 100

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseDate parses a yyyy-MM-dd calendar date.
func ParseDate(s string) (time.Time, error) {
	return ParseDateAt(s, time.Now())
}

// ParseDateAt parses s like ParseDate, measuring the future limit from now.
func ParseDateAt(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)

	if s == "" {
		return time.Time{}, &ValidationError{Kind: KindEmptyInput, Reason: "date is required"}
	}

	if !dateRe.MatchString(s) {
		return time.Time{}, &ValidationError{Kind: KindDateFormat, Input: s, Reason: "date must use the yyyy-MM-dd format"}
	}

	// time.Parse rejects out-of-range months and days, including February 30th.
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, &ValidationError{Kind: KindDateFormat, Input: s, Reason: "date is not a real calendar date"}
	}

	limit := truncateDay(now).AddDate(maxYearsAhead, 0, 0)
	if d.After(limit) {
		return time.Time{}, &ValidationError{Kind: KindDateFormat, Input: s, Reason: "date is too far in the future"}
	}

	return d, nil
}

// Period identifies a calendar month.
type Period struct {
	Month time.Month
	Year  int
}

// PeriodOf returns the Period containing t.
func PeriodOf(t time.Time) Period {
	return Period{Month: t.Month(), Year: t.Year()}
}

// Contains reports whether t falls inside p.
func (p Period) Contains(t time.Time) bool {
	return t.Month() == p.Month && t.Year() == p.Year
}

// String renders p as M/YYYY, e.g. "5/2024".
func (p Period) String() string {
	return fmt.Sprintf("%d/%d", p.Month, p.Year)
}

// Key renders p as yyyy-MM, the form used in the data file.
func (p Period) Key() string {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

// ParsePeriodKey parses the yyyy-MM form produced by Key.
func ParsePeriodKey(s string) (Period, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return Period{}, &ValidationError{Kind: KindDateFormat, Input: s, Reason: "period must use the yyyy-MM format"}
	}

	return PeriodOf(t), nil
}
