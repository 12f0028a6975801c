package domain

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCashFlowTimeline_FlowAt(t *testing.T) {
	tl := CashFlowTimeline{
		StartAge: 40,
		EndAge:   42,
		Flows: []CashFlow{
			{Age: 40, NetAmount: decimal.NewFromInt(-100)},
			{Age: 41, NetAmount: decimal.Zero},
			{Age: 42, NetAmount: decimal.NewFromInt(250)},
		},
	}

	assert.True(t, tl.FlowAt(40).Equal(decimal.NewFromInt(-100)))
	assert.True(t, tl.FlowAt(42).Equal(decimal.NewFromInt(250)))
	assert.True(t, tl.FlowAt(39).IsZero())
	assert.True(t, tl.FlowAt(43).IsZero())
	assert.Equal(t, []float64{-100, 0, 250}, tl.Amounts())
}

func TestIRRResult_Percent(t *testing.T) {
	pct, ok := Solution(0.0525).Percent()
	assert.True(t, ok)
	assert.Equal(t, "5.25", pct.StringFixed(2))

	_, ok = NoSolution.Percent()
	assert.False(t, ok)
}

func TestIRRResult_JSON(t *testing.T) {
	b, err := json.Marshal(NoSolution)
	require.NoError(t, err)
	assert.JSONEq(t, `{"solved":false,"rate":null}`, string(b))

	b, err = json.Marshal(Solution(0.1))
	require.NoError(t, err)
	assert.JSONEq(t, `{"solved":true,"rate":0.1}`, string(b))

	var r IRRResult
	require.NoError(t, json.Unmarshal(b, &r))
	assert.Equal(t, Solution(0.1), r)

	require.NoError(t, json.Unmarshal([]byte(`{"solved":false,"rate":null}`), &r))
	assert.Equal(t, NoSolution, r)
}
