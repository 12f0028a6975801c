package output

import (
	"github.com/rpgo/policy-irr/internal/domain"
	pkgdecimal "github.com/rpgo/policy-irr/pkg/decimal"
	"github.com/shopspring/decimal"
)

// NoIRRMessage is shown when the solver finds no qualifying rate.
const NoIRRMessage = "Could not compute IRR with the given inputs."

// FormatCurrency formats a decimal as USD currency with 2 decimals and thousands separators.
func FormatCurrency(amount decimal.Decimal) string {
	return pkgdecimal.NewMoneyFromDecimal(amount).Format()
}

// FormatPercentage formats a decimal percentage with 2 decimals and thousands separators.
func FormatPercentage(amount decimal.Decimal) string {
	return pkgdecimal.FormatGrouped(amount, 2) + "%"
}

// FormatRate renders a solved IRR as a percentage, or "n/a".
func FormatRate(r domain.IRRResult) string {
	pct, ok := r.Percent()
	if !ok {
		return "n/a"
	}
	return FormatPercentage(pct)
}

// FormatIRR renders the IRR sentence shown to the user.
func FormatIRR(r domain.IRRResult) string {
	if !r.Solved {
		return NoIRRMessage
	}
	return "Estimated IRR: " + FormatRate(r)
}
