package output

import (
	"bytes"
	"encoding/csv"
	"sort"
	"strconv"

	"github.com/rpgo/policy-irr/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per scenario).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "StartAge", "EndAge", "TotalPremiums", "TotalWithdrawals", "DeathBenefitPaid", "NetCashFlow", "IRRSolved", "IRR"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	scenarios := append([]domain.ScenarioResult(nil), results.Scenarios...)
	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	for _, sc := range scenarios {
		rate := ""
		if sc.IRR.Solved {
			rate = strconv.FormatFloat(sc.IRR.Rate, 'f', 8, 64)
		}
		row := []string{
			sc.Name,
			intToString(sc.Timeline.StartAge),
			intToString(sc.Timeline.EndAge),
			sc.Totals.TotalPremiums.StringFixed(2),
			sc.Totals.TotalWithdrawals.StringFixed(2),
			sc.Totals.DeathBenefitPaid.StringFixed(2),
			sc.Totals.Net.StringFixed(2),
			boolToString(sc.IRR.Solved),
			rate,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
