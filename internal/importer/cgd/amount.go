package cgd

import (
	"strings"

	"github.com/shopspring/decimal"
)

// europeanDigits drops the thousands dots and turns the decimal comma into a point.
var europeanDigits = strings.NewReplacer(".", "", ",", ".", " ", "")

// parseEuropeanAmount reads amounts such as "1.234,56", "-588,74" or "10,00", rounded to cents.
func parseEuropeanAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(europeanDigits.Replace(strings.TrimSpace(s)))
	if err != nil {
		return decimal.Zero, err
	}

	return d.Round(2), nil
}
