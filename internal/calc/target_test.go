package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetPrice(t *testing.T) {
	tests := []struct {
		name      string
		in        TargetPriceInput
		wantPrice float64
	}{
		{
			name:      "long 200% at 20x needs a 10% move up",
			in:        TargetPriceInput{Side: Long, Leverage: 20, EntryPrice: 50000, TargetROE: 200},
			wantPrice: 55000,
		},
		{
			name:      "short 200% at 20x needs a 10% move down",
			in:        TargetPriceInput{Side: Short, Leverage: 20, EntryPrice: 50000, TargetROE: 200},
			wantPrice: 45000,
		},
		{
			name:      "negative target walks the price against the position",
			in:        TargetPriceInput{Side: Long, Leverage: 10, EntryPrice: 3000, TargetROE: -50},
			wantPrice: 2850,
		},
		{
			name:      "zero target returns the entry price",
			in:        TargetPriceInput{Side: Short, Leverage: 5, EntryPrice: 1234.5, TargetROE: 0},
			wantPrice: 1234.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := TargetPrice(tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantPrice, result.TargetPrice, 1e-9)
		})
	}
}

// Exiting at the solved target price must reproduce the requested ROE.
func TestTargetPriceRoundTrip(t *testing.T) {
	cases := []TargetPriceInput{
		{Side: Long, Leverage: 20, EntryPrice: 50000, TargetROE: 200},
		{Side: Short, Leverage: 20, EntryPrice: 50000, TargetROE: 200},
		{Side: Long, Leverage: 3, EntryPrice: 0.0725, TargetROE: 42.5},
		{Side: Short, Leverage: 125, EntryPrice: 68123.4, TargetROE: -15},
	}

	for _, in := range cases {
		target, err := TargetPrice(in)
		require.NoError(t, err)

		pnl, err := ComputePnL(PnLInput{
			Side:       in.Side,
			Leverage:   in.Leverage,
			EntryPrice: in.EntryPrice,
			Quantity:   1,
			ExitPrice:  target.TargetPrice,
		})
		require.NoError(t, err)
		assert.InDelta(t, in.TargetROE, pnl.ROE, 1e-9)
	}
}

func TestTargetPriceValidation(t *testing.T) {
	_, err := TargetPrice(TargetPriceInput{Side: Long, Leverage: -1, EntryPrice: 0})
	require.Error(t, err)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs.Messages(), 2)
}
