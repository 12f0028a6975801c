package calculation

import (
	"math/cmplx"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sortedReal(roots []complex128) []float64 {
	out := make([]float64, 0, len(roots))
	for _, r := range roots {
		out = append(out, real(r))
	}
	sort.Float64s(out)
	return out
}

func TestPolynomialRoots_Quadratic(t *testing.T) {
	// (x-1)(x-2) = x^2 - 3x + 2
	roots, err := PolynomialRoots([]float64{1, -3, 2})
	require.NoError(t, err)
	require.Len(t, roots, 2)
	for _, r := range roots {
		assert.Equal(t, 0.0, imag(r))
	}
	got := sortedReal(roots)
	assert.InDelta(t, 1, got[0], 1e-12)
	assert.InDelta(t, 2, got[1], 1e-12)
}

func TestPolynomialRoots_ComplexPair(t *testing.T) {
	// x^2 + 1
	roots, err := PolynomialRoots([]float64{1, 0, 1})
	require.NoError(t, err)
	require.Len(t, roots, 2)
	for _, r := range roots {
		assert.NotEqual(t, 0.0, imag(r))
		assert.InDelta(t, 1, cmplx.Abs(r), 1e-12)
	}
}

func TestPolynomialRoots_StripsZeros(t *testing.T) {
	// Leading zeros are ignored; trailing zeros are roots at the origin.
	roots, err := PolynomialRoots([]float64{0, 0, 2, -4, 0, 0})
	require.NoError(t, err)
	require.Len(t, roots, 3)
	got := sortedReal(roots)
	assert.Equal(t, []float64{0, 0}, got[:2])
	assert.InDelta(t, 2, got[2], 1e-12)
}

func TestPolynomialRoots_Degenerate(t *testing.T) {
	roots, err := PolynomialRoots(nil)
	require.NoError(t, err)
	assert.Empty(t, roots)

	roots, err = PolynomialRoots([]float64{0, 0, 0})
	require.NoError(t, err)
	assert.Empty(t, roots)

	roots, err = PolynomialRoots([]float64{7})
	require.NoError(t, err)
	assert.Empty(t, roots)
}

func TestPolynomialRoots_HighDegree(t *testing.T) {
	// x^n - 1 has the n roots of unity.
	const n = 91
	coeffs := make([]float64, n+1)
	coeffs[0] = 1
	coeffs[n] = -1
	roots, err := PolynomialRoots(coeffs)
	require.NoError(t, err)
	require.Len(t, roots, n)
	for _, r := range roots {
		assert.InDelta(t, 1, cmplx.Abs(r), 1e-9)
	}
}
