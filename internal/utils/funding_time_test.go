package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextFundingTime(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want time.Time
	}{
		{
			name: "morning rolls to 08:00",
			at:   time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC),
			want: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC),
		},
		{
			name: "exactly on a mark rolls to the next one",
			at:   time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC),
			want: time.Date(2025, 3, 10, 16, 0, 0, 0, time.UTC),
		},
		{
			name: "late evening rolls to next-day midnight",
			at:   time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC),
			want: time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "non-UTC input is normalized",
			at:   time.Date(2025, 3, 10, 9, 0, 0, 0, time.FixedZone("UTC+7", 7*3600)),
			want: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(NextFundingTime(tt.at)))
		})
	}
}

func TestHoursUntilFunding(t *testing.T) {
	at := time.Date(2025, 3, 10, 6, 30, 0, 0, time.UTC)
	assert.InDelta(t, 1.5, HoursUntilFunding(at), 1e-9)
}

func TestFundingPeriodsWithin(t *testing.T) {
	start := time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		holdingHours float64
		want         int
	}{
		{"one day catches three settlements", 24, 3},
		{"less than an hour catches none", 0.5, 0},
		{"exactly reaching a mark counts it", 1, 1},
		{"zero holding", 0, 0},
		{"negative holding", -5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FundingPeriodsWithin(start, tt.holdingHours))
		})
	}
}

func TestHoldingHoursBetween(t *testing.T) {
	open := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	close := open.Add(90 * time.Minute)

	assert.InDelta(t, 1.5, HoldingHoursBetween(open, close), 1e-9)
	assert.Zero(t, HoldingHoursBetween(close, open))
}
