package output

import (
	"bytes"
	"encoding/csv"
	"sort"

	"github.com/rpgo/policy-irr/internal/domain"
	pkgdecimal "github.com/rpgo/policy-irr/pkg/decimal"
)

// CSVDetailedExporter provides the raw yearly timeline per scenario/age.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Age", "NetAmount", "CumulativeNet", "IsDeathYear"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	scenarios := append([]domain.ScenarioResult(nil), results.Scenarios...)
	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	for _, sc := range scenarios {
		cumulative := pkgdecimal.Zero()
		for _, f := range sc.Timeline.Flows {
			amount := pkgdecimal.NewMoneyFromDecimal(f.NetAmount)
			cumulative = cumulative.Add(amount)
			row := []string{
				sc.Name,
				intToString(f.Age),
				amount.String(),
				cumulative.String(),
				boolToString(f.Age == sc.Parameters.DeathAge),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
