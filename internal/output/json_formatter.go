package output

import (
	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/rpgo/policy-irr/internal/domain"
)

// JSONFormatter writes the scenario results together with the IRR recommendation.
type JSONFormatter struct{}

type jsonReport struct {
	*domain.ScenarioComparison
	Recommendation *jsonRecommendation `json:"recommendation"`
	Unsolved       []string            `json:"unsolved,omitempty"`
}

type jsonRecommendation struct {
	Scenario string           `json:"scenario"`
	IRR      domain.IRRResult `json:"irr"`
	Net      decimal.Decimal  `json:"net"`
	RunnerUp string           `json:"runner_up,omitempty"`
	// Spread is in percentage points.
	Spread *decimal.Decimal `json:"spread_pts,omitempty"`
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	rec := AnalyzeScenarios(results)
	report := jsonReport{ScenarioComparison: results, Unsolved: rec.Unsolved}
	if rec.ScenarioName != "" {
		report.Recommendation = &jsonRecommendation{Scenario: rec.ScenarioName, IRR: rec.IRR, Net: rec.Net, RunnerUp: rec.RunnerUp}
		if rec.RunnerUp != "" {
			spread := rec.Spread
			report.Recommendation.Spread = &spread
		}
	}
	return json.MarshalIndent(report, "", "  ")
}
