// Package decimal provides exact cent arithmetic for report figures. The
// projection engine works in float64; amounts are converted here only when
// they are totalled for display or export.
package decimal

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Money represents a monetary amount with proper financial precision
type Money struct {
	decimal.Decimal
}

// NewMoney creates a new Money instance from a float64
func NewMoney(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// Sum rounds each amount to cents before adding, so the total equals the sum
// of the amounts as printed.
func Sum(amounts ...Money) Money {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a.Decimal.Round(2))
	}
	return Money{total}
}

// SumFloats is Sum over raw engine values.
func SumFloats(values ...float64) Money {
	amounts := make([]Money, len(values))
	for i, v := range values {
		amounts[i] = NewMoney(v)
	}
	return Sum(amounts...)
}

// Float64 returns the cent-rounded amount as a float.
func (m Money) Float64() float64 {
	f, _ := m.Decimal.Round(2).Float64()
	return f
}

// String returns the amount fixed to two places without grouping.
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders the amount as US currency with thousands separators,
// e.g. "$1,234.50" or "-$12.00".
func (m Money) Format() string {
	r := m.Decimal.Round(2)
	sign := ""
	if r.IsNegative() {
		sign = "-"
		r = r.Abs()
	}
	fixed := r.StringFixed(2)
	_, cents, _ := strings.Cut(fixed, ".")
	return sign + "$" + printer.Sprintf("%d", r.Truncate(0).IntPart()) + "." + cents
}
