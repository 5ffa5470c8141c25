// Package money formats and parses Brazilian real amounts.
package money

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ErrAmountTooLarge is returned when a masked input does not fit in int64 cents.
var ErrAmountTooLarge = errors.New("amount too large")

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Round returns v rounded to whole cents.
func Round(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatDecimal renders v with pt-BR grouping and exactly two decimals ("1.234,50").
func FormatDecimal(v float64) string {
	return printer.Sprint(number.Decimal(Round(v), number.Scale(2)))
}

// FormatBRL renders v as a currency string ("R$ 1.234,50").
func FormatBRL(v float64) string {
	if v < 0 {
		return "-R$ " + FormatDecimal(-v)
	}
	return "R$ " + FormatDecimal(v)
}

// ParseMasked reads a cents-accumulating input: every non-digit is dropped and the
// remaining digits are the amount in cents. ok is false when no digit remains.
func ParseMasked(raw string) (value float64, ok bool, err error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	if digits == "" {
		return 0, false, nil
	}
	cents, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false, ErrAmountTooLarge
	}
	return float64(cents) / 100, true, nil
}
