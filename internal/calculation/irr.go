package calculation

import (
	"math"

	"github.com/rpgo/policy-irr/internal/domain"
)

// SolveIRR computes the internal rate of return of a timeline. Only the order of the
// flows matters; ages are ignored.
func SolveIRR(tl *domain.CashFlowTimeline) domain.IRRResult {
	return SolveIRRFlows(tl.Amounts())
}

// SolveIRRFlows finds r such that sum(flows[t] / (1+r)^t) == 0.
//
// With x = 1/(1+r) the equation is a polynomial in x whose coefficient of x^t is flows[t].
// All roots are computed; only real roots with x > 0 are kept and mapped back to r = 1/x - 1.
// When several rates qualify the one closest to zero is returned, the earliest on a tie.
// Streams with fewer than two flows, all-zero streams, non-finite amounts and root
// iteration failures have no solution.
func SolveIRRFlows(flows []float64) domain.IRRResult {
	if len(flows) < 2 {
		return domain.NoSolution
	}

	// Highest degree first: the last flow leads.
	coeffs := make([]float64, len(flows))
	for i, f := range flows {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return domain.NoSolution
		}
		coeffs[len(flows)-1-i] = f
	}

	roots, err := PolynomialRoots(coeffs)
	if err != nil {
		return domain.NoSolution
	}

	best, found := 0.0, false
	for _, root := range roots {
		if imag(root) != 0 || real(root) <= 0 {
			continue
		}
		rate := 1/real(root) - 1
		if math.IsNaN(rate) || math.IsInf(rate, 0) {
			continue
		}
		if !found || math.Abs(rate) < math.Abs(best) {
			best, found = rate, true
		}
	}
	if !found {
		return domain.NoSolution
	}
	return domain.Solution(best)
}
