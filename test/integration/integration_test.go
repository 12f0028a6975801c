package integration

import (
	"context"
	"testing"

	"github.com/rpgo/policy-irr/internal/calculation"
	"github.com/rpgo/policy-irr/internal/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndToEndCalculation(t *testing.T) {
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile("../testdata/example_config.yaml")
	require.NoError(t, err)
	require.Len(t, cfg.Scenarios, 3)

	engine := calculation.NewCalculationEngine()
	results, err := engine.RunScenarios(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, results.Scenarios, 3)

	def := results.Scenarios[0]
	assert.Equal(t, 30, def.Timeline.StartAge)
	assert.Equal(t, 90, def.Timeline.EndAge)
	assert.Len(t, def.Timeline.Flows, 61)
	require.True(t, def.IRR.Solved)
	assert.InDelta(t, 0.0768417, def.IRR.Rate, 1e-6)
	assert.True(t, def.Totals.Net.Equal(decimal.NewFromInt(1705000)))

	early := results.Scenarios[1]
	assert.Equal(t, 90, early.Timeline.EndAge)
	assert.True(t, early.Timeline.FlowAt(65).Equal(decimal.NewFromInt(1030000)))
	assert.True(t, early.Timeline.FlowAt(66).IsZero())
	assert.True(t, early.IRR.Solved)
	assert.Greater(t, early.IRR.Rate, def.IRR.Rate)

	// Death before the first premium: nothing is ever charged or paid.
	none := results.Scenarios[2]
	assert.Equal(t, 40, none.Timeline.StartAge)
	assert.Equal(t, 90, none.Timeline.EndAge)
	for _, f := range none.Timeline.Flows {
		assert.True(t, f.NetAmount.IsZero(), "age %d", f.Age)
	}
	assert.False(t, none.IRR.Solved)
}

func TestConfiguredSweep(t *testing.T) {
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile("../testdata/example_config.yaml")
	require.NoError(t, err)
	require.Len(t, cfg.Sweeps, 1)

	spec := cfg.Sweeps[0]
	base := cfg.FindScenario(spec.Scenario)
	require.NotNil(t, base)

	engine := calculation.NewCalculationEngine()
	res, err := engine.RunSweep(context.Background(), base.Parameters, spec)
	require.NoError(t, err)
	require.Len(t, res.Points, 7)

	// An earlier death pays the benefit sooner, so the IRR falls as death age rises.
	for i := 1; i < len(res.Points); i++ {
		require.True(t, res.Points[i].IRR.Solved)
		assert.Less(t, res.Points[i].IRR.Rate, res.Points[i-1].IRR.Rate, "death age %s", res.Points[i].Value)
	}
}

func TestConfigurationValidation(t *testing.T) {
	parser := config.NewInputParser()

	cfg, err := parser.LoadFromFile("../testdata/example_config.yaml")
	require.NoError(t, err)
	assert.NoError(t, parser.ValidateConfiguration(cfg))

	_, err = parser.LoadFromFile("../testdata/missing.yaml")
	assert.Error(t, err)
}
