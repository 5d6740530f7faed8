package transaction

import (
	"errors"
	"fmt"
)

// Kind identifies the class of a validation failure.
type Kind int

const (
	KindAmountFormat Kind = iota
	KindNegativeValue
	KindEmptyInput
	KindDecimalPrecision
	KindDateFormat
	KindBounds
	KindMissingField
	KindTagFormat
)

func (k Kind) String() string {
	switch k {
	case KindAmountFormat:
		return "amount format"
	case KindNegativeValue:
		return "negative value"
	case KindEmptyInput:
		return "empty input"
	case KindDecimalPrecision:
		return "decimal precision"
	case KindDateFormat:
		return "date format"
	case KindBounds:
		return "bounds"
	case KindMissingField:
		return "missing field"
	case KindTagFormat:
		return "tag format"
	}

	return "unknown"
}

// ValidationError describes why user input was rejected.
type ValidationError struct {
	Kind   Kind
	Input  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Input == "" {
		return e.Reason
	}

	return fmt.Sprintf("%s: %q", e.Reason, e.Input)
}

// ErrEmptyLedger is returned when an index-based operation runs against a ledger with no transactions.
var ErrEmptyLedger = errors.New("no transactions in the ledger")

// BoundsError is returned when a 1-based index falls outside the ledger.
type BoundsError struct {
	Index int
	Count int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("invalid index %d: must be between 1 and %d", e.Index, e.Count)
}

// KindOf returns the Kind carried by err, if any.
func KindOf(err error) (Kind, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Kind, true
	}

	var berr *BoundsError
	if errors.As(err, &berr) || errors.Is(err, ErrEmptyLedger) {
		return KindBounds, true
	}

	return 0, false
}
