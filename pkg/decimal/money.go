package decimal

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Money represents a monetary amount with proper financial precision
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// NewMoneyFromString creates a new Money instance from a string
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// Add adds another Money amount
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Sub subtracts another Money amount
func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// Neg flips the sign, turning an inflow into an outflow and back
func (m Money) Neg() Money {
	return Money{m.Decimal.Neg()}
}

// Sum adds any number of amounts
func Sum(amounts ...Money) Money {
	total := Zero()
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// Zero returns a zero Money amount
func Zero() Money {
	return Money{decimal.Zero}
}

// String returns the plain two-decimal representation
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders the amount as US dollars with thousands separators, e.g. -$5,000.00
func (m Money) Format() string {
	if m.Decimal.Round(2).IsNegative() {
		return "-$" + FormatGrouped(m.Decimal.Neg(), 2)
	}
	return "$" + FormatGrouped(m.Decimal, 2)
}

// FormatGrouped rounds d to places decimals and groups the integer digits
// in threes with commas (English locale).
func FormatGrouped(d decimal.Decimal, places int32) string {
	r := d.Round(places)
	sign := ""
	if r.IsNegative() {
		sign = "-"
		r = r.Neg()
	}
	whole := r.Truncate(0)
	p := message.NewPrinter(language.English)
	s := sign + p.Sprintf("%d", whole.IntPart())
	if places > 0 {
		// r - whole is in [0, 1) so StringFixed yields "0.xx"
		s += r.Sub(whole).StringFixed(places)[1:]
	}
	return s
}
