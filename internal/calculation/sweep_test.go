package calculation

import (
	"context"
	"testing"

	"github.com/rpgo/policy-irr/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSweep_DeathAge(t *testing.T) {
	engine := NewCalculationEngine()
	spec := domain.SweepSpec{Scenario: "Default", Parameter: "death_age", From: dec(70), To: dec(100), Step: dec(5)}

	res, err := engine.RunSweep(context.Background(), defaultPolicy(), spec)
	require.NoError(t, err)
	require.Len(t, res.Points, 7)
	assert.Equal(t, "death_age", res.Parameter)

	for i, pt := range res.Points {
		assert.True(t, pt.Value.Equal(dec(int64(70+5*i))))
		require.True(t, pt.IRR.Solved, "death age %s", pt.Value)
	}

	// Each point matches a direct evaluation.
	p := defaultPolicy()
	p.DeathAge = 85
	direct := engine.Evaluate("direct", p)
	assert.Equal(t, direct.IRR, res.Points[3].IRR)
	assert.True(t, direct.Totals.Net.Equal(res.Points[3].Net))
}

func TestRunSweep_AmountParameter(t *testing.T) {
	engine := NewCalculationEngine()
	spec := domain.SweepSpec{Parameter: "annual_withdrawal", From: decimal.Zero, To: dec(30000), Step: dec(15000)}

	res, err := engine.RunSweep(context.Background(), defaultPolicy(), spec)
	require.NoError(t, err)
	require.Len(t, res.Points, 3)
	// More withdrawn each year means a better return.
	assert.Less(t, res.Points[0].IRR.Rate, res.Points[1].IRR.Rate)
	assert.Less(t, res.Points[1].IRR.Rate, res.Points[2].IRR.Rate)
}

func TestRunSweep_Errors(t *testing.T) {
	engine := NewCalculationEngine()
	base := defaultPolicy()

	_, err := engine.RunSweep(context.Background(), base, domain.SweepSpec{Parameter: "salary", From: dec(1), To: dec(2), Step: dec(1)})
	assert.ErrorIs(t, err, ErrUnknownSweepParameter)

	_, err = engine.RunSweep(context.Background(), base, domain.SweepSpec{Parameter: "death_age", From: dec(70), To: dec(80), Step: decimal.Zero})
	assert.ErrorIs(t, err, ErrInvalidSweepStep)

	_, err = engine.RunSweep(context.Background(), base, domain.SweepSpec{Parameter: "death_age", From: dec(80), To: dec(70), Step: dec(1)})
	assert.ErrorIs(t, err, ErrInvalidSweepRange)

	_, err = engine.RunSweep(context.Background(), base, domain.SweepSpec{Parameter: "death_age", From: dec(70), To: dec(80), Step: decimal.RequireFromString("0.5")})
	assert.ErrorIs(t, err, ErrInvalidSweepRange)

	_, err = engine.RunSweep(context.Background(), base, domain.SweepSpec{Parameter: "annual_premium", From: dec(0), To: dec(100000), Step: dec(1)})
	assert.ErrorIs(t, err, ErrInvalidSweepRange)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = engine.RunSweep(ctx, base, domain.SweepSpec{Parameter: "death_age", From: dec(70), To: dec(80), Step: dec(1)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSweepParameters(t *testing.T) {
	names := SweepParameters()
	assert.Len(t, names, 8)
	assert.Contains(t, names, "death_age")
	assert.True(t, IsAgeParameter("death_age"))
	assert.False(t, IsAgeParameter("annual_premium"))
	assert.False(t, IsAgeParameter("unknown"))
}

func TestCheckSweep_Endpoints(t *testing.T) {
	spec := domain.SweepSpec{Parameter: "death_age", From: dec(70), To: dec(98), Step: dec(5)}
	count, err := CheckSweep(spec)
	require.NoError(t, err)
	assert.Equal(t, 6, count)

	first, last := SweepEndpoints(spec, count)
	assert.Equal(t, "70", first.String())
	assert.Equal(t, "95", last.String())

	_, err = CheckSweep(domain.SweepSpec{Parameter: "annual_premium", From: dec(0), To: decimal.RequireFromString("1e40"), Step: decimal.RequireFromString("1e-10")})
	assert.ErrorIs(t, err, ErrInvalidSweepRange)
}

func TestApplySweepValue(t *testing.T) {
	p := defaultPolicy()
	require.NoError(t, ApplySweepValue(&p, "death_age", dec(75)))
	assert.Equal(t, 75, p.DeathAge)

	require.NoError(t, ApplySweepValue(&p, "net_death_benefit", dec(5)))
	assert.True(t, p.NetDeathBenefit.Equal(dec(5)))

	assert.ErrorIs(t, ApplySweepValue(&p, "death_age", dec(10000000000000)), ErrInvalidSweepRange)
	assert.Equal(t, 75, p.DeathAge)
	assert.ErrorIs(t, ApplySweepValue(&p, "salary", dec(1)), ErrUnknownSweepParameter)
}
