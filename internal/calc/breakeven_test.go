package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreakEvenRate(t *testing.T) {
	result, err := BreakEvenRate(BreakEvenInput{
		Leverage:           100,
		OpenFeeRate:        0.05,
		CloseFeeRate:       0.05,
		FundingRate:        0.01,
		FundingPeriodHours: 8,
		HoldingHours:       24,
	})
	require.NoError(t, err)

	assert.InDelta(t, 5, result.OpenCostRate, 1e-9)
	assert.InDelta(t, 5, result.CloseCostRate, 1e-9)
	assert.InDelta(t, 3, result.FundingPeriods, 1e-9)
	assert.InDelta(t, 3, result.FundingCostRate, 1e-9)
	assert.InDelta(t, 13, result.TotalBreakEvenRate, 1e-9)

	// breakdown applies the same rates to a 1000-unit principal
	assert.InDelta(t, 1000, result.Breakdown.Principal, 1e-9)
	assert.InDelta(t, 50, result.Breakdown.OpenCost, 1e-9)
	assert.InDelta(t, 50, result.Breakdown.CloseCost, 1e-9)
	assert.InDelta(t, 30, result.Breakdown.FundingCost, 1e-9)
	assert.InDelta(t, 130, result.Breakdown.TotalCost, 1e-9)
}

func TestBreakEvenRateFractionalFundingPeriods(t *testing.T) {
	// 12h over an 8h period is 1.5 periods, never rounded
	result, err := BreakEvenRate(BreakEvenInput{
		Leverage:           10,
		OpenFeeRate:        0.05,
		CloseFeeRate:       0.05,
		FundingRate:        0.01,
		FundingPeriodHours: 8,
		HoldingHours:       12,
	})
	require.NoError(t, err)
	assert.InDelta(t, 1.5, result.FundingPeriods, 1e-9)
	assert.InDelta(t, 0.15, result.FundingCostRate, 1e-9)
	assert.InDelta(t, 1.15, result.TotalBreakEvenRate, 1e-9)
}

func TestBreakEvenRateNegativeFunding(t *testing.T) {
	feeOnly, err := BreakEvenRate(BreakEvenInput{
		Leverage:           10,
		OpenFeeRate:        0.05,
		CloseFeeRate:       0.05,
		FundingRate:        0,
		FundingPeriodHours: 8,
		HoldingHours:       24,
	})
	require.NoError(t, err)

	paid, err := BreakEvenRate(BreakEvenInput{
		Leverage:           10,
		OpenFeeRate:        0.05,
		CloseFeeRate:       0.05,
		FundingRate:        -0.05,
		FundingPeriodHours: 8,
		HoldingHours:       24,
	})
	require.NoError(t, err)

	// being paid funding pushes the requirement below the fee-only total,
	// here 1.0 - 1.5 = -0.5, negative overall
	assert.Less(t, paid.TotalBreakEvenRate, feeOnly.TotalBreakEvenRate)
	assert.InDelta(t, -0.5, paid.TotalBreakEvenRate, 1e-9)
}

func TestBreakEvenRateZeroHolding(t *testing.T) {
	result, err := BreakEvenRate(BreakEvenInput{
		Leverage:           20,
		OpenFeeRate:        0.04,
		CloseFeeRate:       0.04,
		FundingRate:        0.01,
		FundingPeriodHours: 8,
		HoldingHours:       0,
	})
	require.NoError(t, err)
	assert.InDelta(t, 0, result.FundingCostRate, 1e-9)
	assert.InDelta(t, 1.6, result.TotalBreakEvenRate, 1e-9)
}

func TestBreakEvenRateValidation(t *testing.T) {
	_, err := BreakEvenRate(BreakEvenInput{
		Leverage:           0,
		OpenFeeRate:        -0.01,
		CloseFeeRate:       0.05,
		FundingPeriodHours: 0,
		HoldingHours:       -1,
	})
	require.Error(t, err)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs.Messages(), 4)
}
