package domain

import (
	"time"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// CashFlow is the signed net amount at one age. Outflows are negative.
type CashFlow struct {
	Age       int             `json:"age"`
	NetAmount decimal.Decimal `json:"net_amount"`
}

// CashFlowTimeline holds one CashFlow per integer age in [StartAge, EndAge], without gaps
type CashFlowTimeline struct {
	StartAge int        `json:"start_age"`
	EndAge   int        `json:"end_age"`
	Flows    []CashFlow `json:"flows"`
}

// Amounts returns the net amounts in chronological order as float64, which is what the IRR solver consumes.
func (t *CashFlowTimeline) Amounts() []float64 {
	out := make([]float64, len(t.Flows))
	for i, f := range t.Flows {
		out[i] = f.NetAmount.InexactFloat64()
	}
	return out
}

// FlowAt returns the net amount at age, or zero when age is outside the timeline.
func (t *CashFlowTimeline) FlowAt(age int) decimal.Decimal {
	idx := age - t.StartAge
	if idx < 0 || idx >= len(t.Flows) {
		return decimal.Zero
	}
	return t.Flows[idx].NetAmount
}

// IRRResult is either a periodic (yearly) rate or an explicit absence of solution.
// Rate is meaningful only when Solved is true.
type IRRResult struct {
	Rate   float64
	Solved bool
}

// NoSolution is the IRRResult for cash flows without a qualifying rate.
var NoSolution = IRRResult{}

// Solution wraps a rate as a solved IRRResult.
func Solution(rate float64) IRRResult { return IRRResult{Rate: rate, Solved: true} }

// Percent returns the rate as a percentage decimal (0.0523 -> 5.23). ok is false when unsolved.
func (r IRRResult) Percent() (decimal.Decimal, bool) {
	if !r.Solved {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(r.Rate).Mul(decimal.NewFromInt(100)), true
}

type irrJSON struct {
	Solved bool     `json:"solved"`
	Rate   *float64 `json:"rate"`
}

// MarshalJSON emits {"solved":false,"rate":null} for unsolved results.
func (r IRRResult) MarshalJSON() ([]byte, error) {
	out := irrJSON{Solved: r.Solved}
	if r.Solved {
		rate := r.Rate
		out.Rate = &rate
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler
func (r *IRRResult) UnmarshalJSON(data []byte) error {
	var in irrJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*r = NoSolution
	if in.Solved && in.Rate != nil {
		*r = Solution(*in.Rate)
	}
	return nil
}

// FlowTotals breaks the timeline down by event kind, counting only what landed inside the window
type FlowTotals struct {
	TotalPremiums    decimal.Decimal `json:"total_premiums"`
	TotalWithdrawals decimal.Decimal `json:"total_withdrawals"`
	DeathBenefitPaid decimal.Decimal `json:"death_benefit_paid"`
	Net              decimal.Decimal `json:"net"`
}

// ScenarioResult provides the evaluated timeline and IRR for one named scenario
type ScenarioResult struct {
	Name       string             `json:"name"`
	Parameters ScenarioParameters `json:"parameters"`
	Timeline   CashFlowTimeline   `json:"timeline"`
	IRR        IRRResult          `json:"irr"`
	Totals     FlowTotals         `json:"totals"`
}

// ScenarioComparison provides a comparison of all scenarios
type ScenarioComparison struct {
	Scenarios   []ScenarioResult `json:"scenarios"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// SweepPoint is one evaluation of a parameter sweep
type SweepPoint struct {
	Value decimal.Decimal `json:"value"`
	IRR   IRRResult       `json:"irr"`
	Net   decimal.Decimal `json:"net"`
}

// SweepResult holds the IRR for each value of the swept parameter, in ascending order
type SweepResult struct {
	Scenario  string       `json:"scenario"`
	Parameter string       `json:"parameter"`
	Points    []SweepPoint `json:"points"`
}
