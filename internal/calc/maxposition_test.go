package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxPosition(t *testing.T) {
	tests := []struct {
		name         string
		in           MaxPositionInput
		wantValue    float64
		wantQuantity float64
	}{
		{
			name:         "balance times leverage",
			in:           MaxPositionInput{WalletBalance: 1000, Leverage: 10, EntryPrice: 50000},
			wantValue:    10000,
			wantQuantity: 0.2,
		},
		{
			name:         "zero balance yields zero quantity, not an error",
			in:           MaxPositionInput{WalletBalance: 0, Leverage: 20, EntryPrice: 3000},
			wantValue:    0,
			wantQuantity: 0,
		},
		{
			name:         "unleveraged",
			in:           MaxPositionInput{WalletBalance: 500, Leverage: 1, EntryPrice: 250},
			wantValue:    500,
			wantQuantity: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := MaxPosition(tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantValue, result.MaxPositionValue, 1e-9)
			assert.InDelta(t, tt.wantQuantity, result.MaxQuantity, 1e-9)
		})
	}
}

func TestMaxPositionValidation(t *testing.T) {
	_, err := MaxPosition(MaxPositionInput{WalletBalance: -1, Leverage: 0, EntryPrice: 0})
	require.Error(t, err)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs.Messages(), 3)
}
