package utils

import (
	"math"
	"time"
)

// DefaultFundingPeriodHours is the standard perpetual funding interval
const DefaultFundingPeriodHours = 8.0

// NextFundingTime returns the next funding timestamp after t, assuming the
// standard 00:00/08:00/16:00 UTC schedule
func NextFundingTime(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	for hour := 8; hour <= 24; hour += 8 {
		mark := day.Add(time.Duration(hour) * time.Hour)
		if mark.After(t) {
			return mark
		}
	}
	return day.Add(32 * time.Hour)
}

// HoursUntilFunding returns the fractional hours from t to the next funding
// timestamp
func HoursUntilFunding(t time.Time) float64 {
	return NextFundingTime(t).Sub(t.UTC()).Hours()
}

// FundingPeriodsWithin returns how many funding settlements occur while
// holding a position from start for holdingHours
func FundingPeriodsWithin(start time.Time, holdingHours float64) int {
	if holdingHours <= 0 {
		return 0
	}
	end := start.UTC().Add(time.Duration(holdingHours * float64(time.Hour)))
	count := 0
	for mark := NextFundingTime(start); !mark.After(end); mark = mark.Add(DefaultFundingPeriodHours * time.Hour) {
		count++
	}
	return count
}

// HoldingHoursBetween returns the fractional hours between two instants,
// never negative
func HoldingHoursBetween(open, close time.Time) float64 {
	return math.Max(0, close.Sub(open).Hours())
}
