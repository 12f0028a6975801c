package calculation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/rpgo/policy-irr/internal/domain"
	"github.com/shopspring/decimal"
)

// MaxSweepPoints bounds the number of evaluations in a single sweep.
const MaxSweepPoints = 1000

var (
	ErrUnknownSweepParameter = errors.New("unknown sweep parameter")
	ErrInvalidSweepStep      = errors.New("sweep step must be positive")
	ErrInvalidSweepRange     = errors.New("sweep range is invalid")
)

type sweepSetter struct {
	wholeYears bool
	set        func(p *domain.ScenarioParameters, v decimal.Decimal)
}

var sweepSetters = map[string]sweepSetter{
	"premium_start_age":    {true, func(p *domain.ScenarioParameters, v decimal.Decimal) { p.PremiumStartAge = int(v.IntPart()) }},
	"premium_end_age":      {true, func(p *domain.ScenarioParameters, v decimal.Decimal) { p.PremiumEndAge = int(v.IntPart()) }},
	"withdrawal_start_age": {true, func(p *domain.ScenarioParameters, v decimal.Decimal) { p.WithdrawalStartAge = int(v.IntPart()) }},
	"withdrawal_end_age":   {true, func(p *domain.ScenarioParameters, v decimal.Decimal) { p.WithdrawalEndAge = int(v.IntPart()) }},
	"death_age":            {true, func(p *domain.ScenarioParameters, v decimal.Decimal) { p.DeathAge = int(v.IntPart()) }},
	"annual_premium":       {false, func(p *domain.ScenarioParameters, v decimal.Decimal) { p.AnnualPremium = v }},
	"annual_withdrawal":    {false, func(p *domain.ScenarioParameters, v decimal.Decimal) { p.AnnualWithdrawal = v }},
	"net_death_benefit":    {false, func(p *domain.ScenarioParameters, v decimal.Decimal) { p.NetDeathBenefit = v }},
}

// SweepParameters lists the parameter names accepted by RunSweep.
func SweepParameters() []string {
	names := make([]string, 0, len(sweepSetters))
	for k := range sweepSetters {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// IsAgeParameter reports whether the named sweep parameter only takes whole years.
func IsAgeParameter(name string) bool {
	s, ok := sweepSetters[name]
	return ok && s.wholeYears
}

// maxSweepAge keeps whole-year values far from int overflow.
var maxSweepAge = decimal.NewFromInt(math.MaxInt32)

// CheckSweep validates the shape of spec and returns how many points it yields.
// It does not look at the scenario the sweep is applied to.
func CheckSweep(spec domain.SweepSpec) (int, error) {
	setter, ok := sweepSetters[spec.Parameter]
	if !ok {
		return 0, fmt.Errorf("%w: %q (expected one of %v)", ErrUnknownSweepParameter, spec.Parameter, SweepParameters())
	}
	if !spec.Step.IsPositive() {
		return 0, fmt.Errorf("%w: %s", ErrInvalidSweepStep, spec.Step)
	}
	if spec.To.LessThan(spec.From) {
		return 0, fmt.Errorf("%w: from %s is after to %s", ErrInvalidSweepRange, spec.From, spec.To)
	}
	if setter.wholeYears && (!isWhole(spec.From) || !isWhole(spec.Step)) {
		return 0, fmt.Errorf("%w: %s takes whole years", ErrInvalidSweepRange, spec.Parameter)
	}

	count := spec.To.Sub(spec.From).Div(spec.Step).Floor().Add(decimal.NewFromInt(1))
	if count.GreaterThan(decimal.NewFromInt(MaxSweepPoints)) {
		return 0, fmt.Errorf("%w: %s points exceeds the limit of %d", ErrInvalidSweepRange, count, MaxSweepPoints)
	}
	return int(count.IntPart()), nil
}

// SweepEndpoints returns the first and the last value a valid sweep visits.
// The last value is To only when To lands on a step.
func SweepEndpoints(spec domain.SweepSpec, count int) (first, last decimal.Decimal) {
	return spec.From, spec.From.Add(spec.Step.Mul(decimal.NewFromInt(int64(count - 1))))
}

// ApplySweepValue substitutes v into the named parameter of p.
func ApplySweepValue(p *domain.ScenarioParameters, parameter string, v decimal.Decimal) error {
	setter, ok := sweepSetters[parameter]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSweepParameter, parameter)
	}
	if setter.wholeYears && v.Abs().GreaterThan(maxSweepAge) {
		return fmt.Errorf("%w: %s %s is not a usable age", ErrInvalidSweepRange, parameter, v)
	}
	setter.set(p, v)
	return nil
}

// RunSweep re-evaluates base once for every value From, From+Step, ... up to To (inclusive),
// substituting the value into spec.Parameter. Each point is a full recomputation.
//
// Swept values are not checked against input limits; callers taking outside input
// validate the sweep first.
func (ce *CalculationEngine) RunSweep(ctx context.Context, base domain.ScenarioParameters, spec domain.SweepSpec) (*domain.SweepResult, error) {
	count, err := CheckSweep(spec)
	if err != nil {
		return nil, err
	}

	result := &domain.SweepResult{
		Scenario:  spec.Scenario,
		Parameter: spec.Parameter,
		Points:    make([]domain.SweepPoint, 0, count),
	}

	for v := spec.From; v.LessThanOrEqual(spec.To); v = v.Add(spec.Step) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		params := base
		if err := ApplySweepValue(&params, spec.Parameter, v); err != nil {
			return nil, err
		}
		timeline, totals := buildTimeline(params)
		result.Points = append(result.Points, domain.SweepPoint{
			Value: v,
			IRR:   SolveIRR(&timeline),
			Net:   totals.Net,
		})
	}

	ce.Logger.Debugf("sweep %s over %s..%s step %s: %d points", spec.Parameter, spec.From, spec.To, spec.Step, len(result.Points))
	return result, nil
}

func isWhole(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(0))
}
