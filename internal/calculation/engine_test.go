package calculation

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/rpgo/policy-irr/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	NopLogger
	infos  []string
	debugs []string
}

func (r *recordingLogger) Infof(format string, args ...any)  { r.infos = append(r.infos, format) }
func (r *recordingLogger) Debugf(format string, args ...any) { r.debugs = append(r.debugs, format) }

func TestRunScenarios(t *testing.T) {
	SetNowFunc(func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) })
	defer SetNowFunc(time.Now)

	single := domain.ScenarioParameters{PremiumStartAge: 30, PremiumEndAge: 30, AnnualPremium: dec(1000), WithdrawalStartAge: 60, WithdrawalEndAge: 90, DeathAge: 30}
	cfg := &domain.Configuration{Scenarios: []domain.Scenario{
		{Name: "Default", Parameters: defaultPolicy()},
		{Name: "Single premium", Parameters: single},
	}}

	logger := &recordingLogger{}
	engine := NewCalculationEngine()
	engine.SetLogger(logger)

	res, err := engine.RunScenarios(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, res.Scenarios, 2)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), res.GeneratedAt)

	first := res.Scenarios[0]
	assert.Equal(t, "Default", first.Name)
	assert.True(t, first.IRR.Solved)
	assert.Equal(t, 30, first.Timeline.StartAge)
	assert.True(t, first.Totals.TotalPremiums.Equal(dec(105000)))
	assert.True(t, first.Totals.TotalWithdrawals.Equal(dec(810000)))
	assert.True(t, first.Totals.DeathBenefitPaid.Equal(dec(1000000)))

	second := res.Scenarios[1]
	assert.Equal(t, "Single premium", second.Name)
	assert.False(t, second.IRR.Solved)

	assert.Len(t, logger.debugs, 2)
	assert.Len(t, logger.infos, 1)
}

func TestRunScenarios_Empty(t *testing.T) {
	engine := NewCalculationEngine()
	_, err := engine.RunScenarios(context.Background(), &domain.Configuration{})
	assert.ErrorIs(t, err, ErrNoScenarios)
	_, err = engine.RunScenarios(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoScenarios)
}

func TestRunScenario_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewCalculationEngine().RunScenario(ctx, &domain.Scenario{Name: "x", Parameters: defaultPolicy()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSetLogger_NilFallsBackToNop(t *testing.T) {
	engine := NewCalculationEngine()
	engine.SetLogger(nil)
	assert.IsType(t, NopLogger{}, engine.Logger)
}

func TestSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlogLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	engine := NewCalculationEngine()
	engine.SetLogger(l)
	engine.Evaluate("logged", defaultPolicy())
	assert.Contains(t, buf.String(), `scenario \"logged\"`)
	assert.Contains(t, buf.String(), "irr=0.07")
}
