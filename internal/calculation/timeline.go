package calculation

import (
	"github.com/rpgo/policy-irr/internal/domain"
	money "github.com/rpgo/policy-irr/pkg/decimal"
)

// BuildTimeline lays out the yearly net cash flow of a policy.
//
// The timeline always starts at the first premium age and ends at the latest of the
// death age, the last premium age and the last withdrawal age. Each age accumulates:
//   - minus the annual premium, from the first premium age through min(last premium age, death age)
//   - plus the annual withdrawal, from the first withdrawal age through min(last withdrawal age, death age),
//     dropping any age before the timeline start
//   - plus the net death benefit once at the death age, if the death age is not before the start
//
// Empty or inverted ranges contribute nothing. Every input yields a timeline.
func BuildTimeline(p domain.ScenarioParameters) domain.CashFlowTimeline {
	tl, _ := buildTimeline(p)
	return tl
}

// SummarizeFlows returns the per-kind totals that BuildTimeline applies for p.
func SummarizeFlows(p domain.ScenarioParameters) domain.FlowTotals {
	_, totals := buildTimeline(p)
	return totals
}

func buildTimeline(p domain.ScenarioParameters) (domain.CashFlowTimeline, domain.FlowTotals) {
	start := p.PremiumStartAge
	end := max(p.DeathAge, p.PremiumEndAge, p.WithdrawalEndAge)

	size := end - start + 1
	if size < 0 {
		size = 0
	}
	net := make([]money.Money, size)
	for i := range net {
		net[i] = money.Zero()
	}

	premium := money.NewMoneyFromDecimal(p.AnnualPremium)
	withdrawal := money.NewMoneyFromDecimal(p.AnnualWithdrawal)
	premiums, withdrawals, deathBenefit := money.Zero(), money.Zero(), money.Zero()

	// Premiums stop at death.
	premiumStop := min(p.PremiumEndAge, p.DeathAge)
	for age := p.PremiumStartAge; age <= premiumStop; age++ {
		net[age-start] = net[age-start].Sub(premium)
		premiums = premiums.Add(premium)
	}

	// Withdrawals stop at death and are clipped to the window.
	withdrawalFrom := max(p.WithdrawalStartAge, start)
	withdrawalStop := min(p.WithdrawalEndAge, p.DeathAge, end)
	for age := withdrawalFrom; age <= withdrawalStop; age++ {
		net[age-start] = net[age-start].Add(withdrawal)
		withdrawals = withdrawals.Add(withdrawal)
	}

	if p.DeathAge >= start && p.DeathAge <= end {
		deathBenefit = money.NewMoneyFromDecimal(p.NetDeathBenefit)
		net[p.DeathAge-start] = net[p.DeathAge-start].Add(deathBenefit)
	}

	flows := make([]domain.CashFlow, size)
	for i, amount := range net {
		flows[i] = domain.CashFlow{Age: start + i, NetAmount: amount.Decimal}
	}

	totals := domain.FlowTotals{
		TotalPremiums:    premiums.Decimal,
		TotalWithdrawals: withdrawals.Decimal,
		DeathBenefitPaid: deathBenefit.Decimal,
		Net:              money.Sum(withdrawals, deathBenefit, premiums.Neg()).Decimal,
	}

	return domain.CashFlowTimeline{StartAge: start, EndAge: end, Flows: flows}, totals
}
