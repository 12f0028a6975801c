package calculation

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// ErrNoConvergence is returned when the eigenvalue iteration for a polynomial does not converge.
var ErrNoConvergence = errors.New("polynomial root iteration did not converge")

// PolynomialRoots returns every complex root of the polynomial whose coefficients are
// given highest degree first. Roots are the eigenvalues of the companion matrix.
//
// Leading zero coefficients are dropped (they do not change the polynomial) and trailing
// zero coefficients contribute roots at the origin. An all-zero or constant polynomial has
// no roots. Real roots come back with an imaginary part of exactly zero.
func PolynomialRoots(coeffs []float64) ([]complex128, error) {
	first, last := -1, -1
	for i, c := range coeffs {
		if c != 0 {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return nil, nil
	}

	trailingZeros := len(coeffs) - 1 - last
	p := coeffs[first : last+1]
	degree := len(p) - 1

	roots := make([]complex128, 0, degree+trailingZeros)
	if degree > 0 {
		companion := mat.NewDense(degree, degree, nil)
		for j := 0; j < degree; j++ {
			companion.Set(0, j, -p[j+1]/p[0])
		}
		for i := 1; i < degree; i++ {
			companion.Set(i, i-1, 1)
		}

		var eig mat.Eigen
		if ok := eig.Factorize(companion, mat.EigenNone); !ok {
			return nil, ErrNoConvergence
		}
		roots = append(roots, eig.Values(nil)...)
	}

	for i := 0; i < trailingZeros; i++ {
		roots = append(roots, 0)
	}
	return roots, nil
}
