// Package money formats and parses amounts written in Brazilian real notation,
// e.g. "R$ 1.234,56".
package money

import (
	"math"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

const (
	// Symbol is the currency symbol placed before every formatted amount.
	Symbol = "R$"

	thousandsSep = "."
	decimalSep   = ","
	nbsp         = "\u00a0"
)

// Format renders amount as BRL currency text with two decimal places.
// NaN and infinite values are rendered as zero.
func Format(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}

	d := decimal.NewFromFloat(amount).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	s := d.StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]
	return sign + Symbol + nbsp + group(intPart) + decimalSep + frac
}

func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(thousandsSep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Parse reads an amount typed in pt-BR notation: "." separates thousands and
// "," separates decimals. Whitespace and a leading currency symbol are ignored.
// Empty or unparseable input yields NaN.
func Parse(raw string) float64 {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	s = strings.TrimPrefix(s, Symbol)
	s = strings.ReplaceAll(s, thousandsSep, "")
	s = strings.ReplaceAll(s, decimalSep, ".")
	if s == "" {
		return math.NaN()
	}

	d, err := decimal.NewFromString(sign + s)
	if err != nil {
		return math.NaN()
	}
	f, _ := d.Float64()
	return f
}

// Valid reports whether amount can be sent as a deposit or withdrawal:
// a finite number greater than zero.
func Valid(amount float64) bool {
	return !math.IsNaN(amount) && !math.IsInf(amount, 0) && amount > 0
}
