package calc

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputePnLSingleExit(t *testing.T) {
	tests := []struct {
		name       string
		in         PnLInput
		wantPnL    float64
		wantROE    float64
		wantMargin float64
	}{
		{
			name: "long profit",
			in: PnLInput{
				Side: Long, Leverage: 20,
				EntryPrice: 50000, Quantity: 1, ExitPrice: 55000,
			},
			wantPnL:    5000,
			wantROE:    200,
			wantMargin: 2500,
		},
		{
			name: "short loses on the same move",
			in: PnLInput{
				Side: Short, Leverage: 20,
				EntryPrice: 50000, Quantity: 1, ExitPrice: 55000,
			},
			wantPnL:    -5000,
			wantROE:    -200,
			wantMargin: 2500,
		},
		{
			name: "short profit on a drop",
			in: PnLInput{
				Side: Short, Leverage: 10,
				EntryPrice: 3000, Quantity: 2, ExitPrice: 2700,
			},
			wantPnL:    600,
			wantROE:    100,
			wantMargin: 600,
		},
		{
			name: "zero quantity yields a zeroed result without error",
			in: PnLInput{
				Side: Long, Leverage: 10,
				EntryPrice: 50000, Quantity: 0, ExitPrice: 55000,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ComputePnL(tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantPnL, result.PnL, 1e-9)
			assert.InDelta(t, tt.wantROE, result.ROE, 1e-9)
			assert.InDelta(t, tt.wantMargin, result.InitialMargin, 1e-9)
			assert.InDelta(t, tt.in.Quantity, result.TotalExitQuantity, 1e-9)
		})
	}
}

func TestComputePnLMultiExit(t *testing.T) {
	in := PnLInput{
		Side: Long, Leverage: 10,
		EntryPrice: 50000, Quantity: 2,
		ExitOrders: []ExitOrder{
			{ID: uuid.New(), Price: 55000, Quantity: 1.5, Enabled: true},
			{ID: uuid.New(), Price: 60000, Quantity: 1, Enabled: true},
			{ID: uuid.New(), Price: 70000, Quantity: 1, Enabled: true},
		},
	}

	result, err := ComputePnL(in)
	require.NoError(t, err)

	// second order truncated to the 0.5 remaining, third skipped entirely
	require.Len(t, result.Fills, 2)
	assert.InDelta(t, 1.5, result.Fills[0].Quantity, 1e-9)
	assert.InDelta(t, 0.5, result.Fills[1].Quantity, 1e-9)
	assert.InDelta(t, 2, result.TotalExitQuantity, 1e-9)
	assert.InDelta(t, 0, result.RemainingQuantity, 1e-9)

	// (55000-50000)*1.5 + (60000-50000)*0.5
	assert.InDelta(t, 7500, result.Fills[0].PnL, 1e-9)
	assert.InDelta(t, 5000, result.Fills[1].PnL, 1e-9)
	assert.InDelta(t, 12500, result.PnL, 1e-9)

	// per-order ROE against that order's margin share
	assert.InDelta(t, 7500/(50000*1.5/10)*100, result.Fills[0].ROE, 1e-9)
	assert.InDelta(t, 5000/(50000*0.5/10)*100, result.Fills[1].ROE, 1e-9)

	// aggregate ROE against the whole-position margin
	assert.InDelta(t, 12500/10000*100, result.ROE, 1e-9)
}

func TestComputePnLMultiExitSkipsDisabledOrders(t *testing.T) {
	in := PnLInput{
		Side: Long, Leverage: 10,
		EntryPrice: 50000, Quantity: 1,
		ExitOrders: []ExitOrder{
			{ID: uuid.New(), Price: 100, Quantity: 1, Enabled: false},
			{ID: uuid.New(), Price: 52000, Quantity: 0.5, Enabled: true},
		},
	}

	result, err := ComputePnL(in)
	require.NoError(t, err)
	require.Len(t, result.Fills, 1)
	assert.InDelta(t, 52000, result.Fills[0].Price, 1e-9)
	assert.InDelta(t, 0.5, result.TotalExitQuantity, 1e-9)
	assert.InDelta(t, 0.5, result.RemainingQuantity, 1e-9)
	assert.InDelta(t, 1000, result.PnL, 1e-9)
}

func TestComputePnLValidation(t *testing.T) {
	_, err := ComputePnL(PnLInput{
		Side: Side("SIDEWAYS"), Leverage: 0,
		EntryPrice: -1, Quantity: 1, ExitPrice: 50000,
	})
	require.Error(t, err)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs.Messages(), 3)
}

func TestComputePnLIdempotent(t *testing.T) {
	in := PnLInput{
		Side: Short, Leverage: 25,
		EntryPrice: 1850.5, Quantity: 3.2,
		ExitOrders: []ExitOrder{
			{ID: uuid.New(), Price: 1800, Quantity: 2, Enabled: true},
			{ID: uuid.New(), Price: 1750, Quantity: 2, Enabled: true},
		},
	}

	first, err := ComputePnL(in)
	require.NoError(t, err)
	second, err := ComputePnL(in)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
