package money

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// ErrBadAmount is returned by ParseDecimal for input that is not a number.
var ErrBadAmount = errors.New("bad amount")

// ParseDecimal is the lenient parser used by the ledger service. It accepts
// both "10.5" and "1.234,56": dots are dropped only when a comma is present too.
// The result is rounded to cents, halves away from zero.
func ParseDecimal(raw string) (decimal.Decimal, error) {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	if s == "" {
		return decimal.Zero, fmt.Errorf("money: empty amount, %w", ErrBadAmount)
	}

	if strings.Contains(s, decimalSep) && strings.Contains(s, thousandsSep) {
		s = strings.ReplaceAll(s, thousandsSep, "")
	}
	s = strings.ReplaceAll(s, decimalSep, ".")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("money: can't parse `%s`, %w", raw, ErrBadAmount)
	}
	return d.Round(2), nil
}
