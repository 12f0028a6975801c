package output

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/rpgo/policy-irr/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "POLICY IRR SUMMARY")
	fmt.Fprintln(&buf, "================================")
	scenarios := append([]domain.ScenarioResult(nil), results.Scenarios...)
	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	for _, sc := range scenarios {
		fmt.Fprintf(&buf, "%s: IRR=%s Net=%s Ages=%d-%d\n",
			sc.Name,
			FormatRate(sc.IRR),
			FormatCurrency(sc.Totals.Net),
			sc.Timeline.StartAge,
			sc.Timeline.EndAge,
		)
	}
	rec := AnalyzeScenarios(results)
	if rec.ScenarioName != "" {
		fmt.Fprintln(&buf)
		if rec.RunnerUp != "" {
			fmt.Fprintf(&buf, "Recommended: %s (%s, +%s pts over %s)\n", rec.ScenarioName, FormatRate(rec.IRR), rec.Spread.StringFixed(2), rec.RunnerUp)
		} else {
			fmt.Fprintf(&buf, "Recommended: %s (%s)\n", rec.ScenarioName, FormatRate(rec.IRR))
		}
	}
	if len(rec.Unsolved) > 0 {
		fmt.Fprintf(&buf, "No IRR: %s\n", strings.Join(rec.Unsolved, ", "))
	}
	return buf.Bytes(), nil
}
