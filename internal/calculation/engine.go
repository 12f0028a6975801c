package calculation

import (
	"context"
	"errors"
	"fmt"

	"github.com/rpgo/policy-irr/internal/domain"
)

// ErrNoScenarios is returned when a configuration has nothing to evaluate.
var ErrNoScenarios = errors.New("no scenarios to evaluate")

// CalculationEngine orchestrates timeline construction and IRR solving for named scenarios.
// It holds no per-call state and is safe for concurrent use once configured.
type CalculationEngine struct {
	Logger Logger
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{Logger: NopLogger{}}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Evaluate builds the timeline for p and solves its IRR.
func (ce *CalculationEngine) Evaluate(name string, p domain.ScenarioParameters) *domain.ScenarioResult {
	timeline, totals := buildTimeline(p)
	irr := SolveIRR(&timeline)

	if irr.Solved {
		ce.Logger.Debugf("scenario %q: ages %d-%d, %d flows, irr=%.6f", name, timeline.StartAge, timeline.EndAge, len(timeline.Flows), irr.Rate)
	} else {
		ce.Logger.Debugf("scenario %q: ages %d-%d, %d flows, no irr", name, timeline.StartAge, timeline.EndAge, len(timeline.Flows))
	}

	return &domain.ScenarioResult{
		Name:       name,
		Parameters: p,
		Timeline:   timeline,
		IRR:        irr,
		Totals:     totals,
	}
}

// RunScenario calculates a single scenario
func (ce *CalculationEngine) RunScenario(ctx context.Context, scenario *domain.Scenario) (*domain.ScenarioResult, error) {
	if scenario == nil {
		return nil, fmt.Errorf("scenario is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ce.Evaluate(scenario.Name, scenario.Parameters), nil
}

// RunScenarios runs all scenarios and returns a comparison
func (ce *CalculationEngine) RunScenarios(ctx context.Context, config *domain.Configuration) (*domain.ScenarioComparison, error) {
	if config == nil || len(config.Scenarios) == 0 {
		return nil, ErrNoScenarios
	}

	results := make([]domain.ScenarioResult, len(config.Scenarios))
	for i := range config.Scenarios {
		res, err := ce.RunScenario(ctx, &config.Scenarios[i])
		if err != nil {
			return nil, fmt.Errorf("RunScenario %q failed: %w", config.Scenarios[i].Name, err)
		}
		results[i] = *res
	}

	solved := 0
	for _, r := range results {
		if r.IRR.Solved {
			solved++
		}
	}
	ce.Logger.Infof("evaluated %d scenarios, %d with an IRR", len(results), solved)

	return &domain.ScenarioComparison{
		Scenarios:   results,
		GeneratedAt: nowFunc(),
	}, nil
}
