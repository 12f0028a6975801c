package output

import (
	"sort"

	"github.com/rpgo/policy-irr/internal/domain"
	"github.com/shopspring/decimal"
)

// Recommendation encapsulates the selection result of the best scenario.
type Recommendation struct {
	ScenarioName string
	IRR          domain.IRRResult
	Net          decimal.Decimal
	// RunnerUp and Spread (percentage points) are empty when only one scenario solved.
	RunnerUp string
	Spread   decimal.Decimal
	// Unsolved lists scenarios without an IRR, in input order.
	Unsolved []string
}

// AnalyzeScenarios ranks scenarios with a solved IRR from highest to lowest rate.
// Ties keep input order. Returns a zero Recommendation when no scenario solved.
func AnalyzeScenarios(results *domain.ScenarioComparison) Recommendation {
	var ranks []domain.ScenarioResult
	var unsolved []string
	for _, sc := range results.Scenarios {
		if !sc.IRR.Solved {
			unsolved = append(unsolved, sc.Name)
			continue
		}
		ranks = append(ranks, sc)
	}
	if len(ranks) == 0 {
		return Recommendation{Unsolved: unsolved}
	}
	sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].IRR.Rate > ranks[j].IRR.Rate })
	best := ranks[0]
	rec := Recommendation{ScenarioName: best.Name, IRR: best.IRR, Net: best.Totals.Net, Unsolved: unsolved}
	if len(ranks) > 1 {
		bestPct, _ := best.IRR.Percent()
		nextPct, _ := ranks[1].IRR.Percent()
		rec.RunnerUp = ranks[1].Name
		rec.Spread = bestPct.Sub(nextPct)
	}
	return rec
}
