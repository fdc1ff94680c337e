package money

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Peso is the currency symbol printed in front of every amount.
const Peso = "₱"

var ErrInvalidAmount = errors.New("invalid money amount")

// Parse reads an amount as stored in flat files, where values may be quoted
// and carry thousands separators ("1,500.00").
func Parse(raw string) (decimal.Decimal, error) {
	clean := strings.NewReplacer(",", "", "\"", "", " ", "").Replace(strings.TrimSpace(raw))
	if clean == "" {
		return decimal.Zero, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	return d, nil
}

// Format renders an amount as ₱1,234.50, rounding half away from zero.
func Format(d decimal.Decimal) string {
	rounded := d.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}
	intPart, frac, _ := strings.Cut(rounded.Abs().StringFixed(2), ".")
	return Peso + sign + group(intPart) + "." + frac
}

// group inserts thousands separators into a run of digits.
func group(digits string) string {
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return digits
	}
	return message.NewPrinter(language.English).Sprintf("%d", n)
}
