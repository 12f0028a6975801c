package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rpgo/policy-irr/internal/domain"
	"github.com/shopspring/decimal"
)

// barWidth is the length of the longest bar in the yearly chart.
const barWidth = 40

// ConsoleVerboseFormatter renders the detailed console report via the pluggable interface.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, "POLICY CASH FLOW & IRR ANALYSIS")
	fmt.Fprintln(&buf, "=================================================================================")
	if !results.GeneratedAt.IsZero() {
		fmt.Fprintf(&buf, "Generated: %s\n", results.GeneratedAt.UTC().Format("2006-01-02 15:04:05 MST"))
	}
	fmt.Fprintln(&buf)

	for i, scenario := range results.Scenarios {
		fmt.Fprintf(&buf, "SCENARIO %d: %s\n", i+1, scenario.Name)
		fmt.Fprintln(&buf, strings.Repeat("=", 50))

		p := scenario.Parameters
		fmt.Fprintln(&buf, "PARAMETERS:")
		fmt.Fprintf(&buf, "  Premiums:     %s per year, ages %d-%d\n", FormatCurrency(p.AnnualPremium), p.PremiumStartAge, p.PremiumEndAge)
		fmt.Fprintf(&buf, "  Withdrawals:  %s per year, ages %d-%d\n", FormatCurrency(p.AnnualWithdrawal), p.WithdrawalStartAge, p.WithdrawalEndAge)
		fmt.Fprintf(&buf, "  Death:        age %d, net benefit %s\n", p.DeathAge, FormatCurrency(p.NetDeathBenefit))
		fmt.Fprintln(&buf)

		t := scenario.Totals
		fmt.Fprintln(&buf, "TOTALS:")
		fmt.Fprintf(&buf, "  Premiums Paid:         %s\n", FormatCurrency(t.TotalPremiums))
		fmt.Fprintf(&buf, "  Withdrawals Received:  %s\n", FormatCurrency(t.TotalWithdrawals))
		fmt.Fprintf(&buf, "  Death Benefit Paid:    %s\n", FormatCurrency(t.DeathBenefitPaid))
		fmt.Fprintf(&buf, "  Net Cash Flow:         %s\n", FormatCurrency(t.Net))
		fmt.Fprintln(&buf)

		fmt.Fprintln(&buf, FormatIRR(scenario.IRR))
		fmt.Fprintln(&buf)

		writeBarChart(&buf, &scenario.Timeline)
		fmt.Fprintln(&buf)
	}

	rec := AnalyzeScenarios(results)
	if rec.ScenarioName != "" || len(rec.Unsolved) > 0 {
		fmt.Fprintln(&buf, "SUMMARY & RECOMMENDATIONS")
		fmt.Fprintln(&buf, "=========================")
	}
	if rec.ScenarioName != "" {
		fmt.Fprintf(&buf, "Best scenario: %s (%s)\n", rec.ScenarioName, FormatIRR(rec.IRR))
		if rec.RunnerUp != "" {
			fmt.Fprintf(&buf, "Ahead of %s by %s percentage points\n", rec.RunnerUp, rec.Spread.StringFixed(2))
		}
	}
	if len(rec.Unsolved) > 0 {
		fmt.Fprintf(&buf, "Scenarios without an IRR: %s\n", strings.Join(rec.Unsolved, ", "))
	}

	return buf.Bytes(), nil
}

// writeBarChart prints one row per age with a bar scaled to the largest absolute flow.
// Inflows are drawn with '#', outflows with '-'.
func writeBarChart(buf *bytes.Buffer, tl *domain.CashFlowTimeline) {
	fmt.Fprintf(buf, "YEARLY NET CASH FLOW (ages %d-%d):\n", tl.StartAge, tl.EndAge)
	fmt.Fprintf(buf, "  %3s %16s\n", "AGE", "NET")
	fmt.Fprintln(buf, "  "+strings.Repeat("-", 21+barWidth))

	maxAbs := decimal.Zero
	for _, f := range tl.Flows {
		if a := f.NetAmount.Abs(); a.GreaterThan(maxAbs) {
			maxAbs = a
		}
	}
	for _, f := range tl.Flows {
		n := barLength(f.NetAmount, maxAbs)
		mark := "#"
		if f.NetAmount.IsNegative() {
			mark = "-"
		}
		fmt.Fprintf(buf, "  %3d %16s |%s\n", f.Age, FormatCurrency(f.NetAmount), strings.Repeat(mark, n))
	}
}

// barLength scales |amount| against maxAbs onto [0, barWidth]. Any non-zero amount gets at least one mark.
func barLength(amount, maxAbs decimal.Decimal) int {
	if amount.IsZero() || maxAbs.IsZero() {
		return 0
	}
	n := int(amount.Abs().Div(maxAbs).Mul(decimal.NewFromInt(barWidth)).Round(0).IntPart())
	if n == 0 {
		n = 1
	}
	return n
}
