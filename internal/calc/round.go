package calc

import "github.com/shopspring/decimal"

// Rounding happens only at output boundaries. Intermediate values stay in full
// double precision so multi-step formulas do not accumulate rounding error.

// Round2 rounds to 2 decimal places, half away from zero. Used for the
// human-readable money figures (cost breakdowns).
func Round2(v float64) float64 {
	return roundPlaces(v, 2)
}

// Round4 rounds to 4 decimal places, half away from zero. Used for rate
// outputs.
func Round4(v float64) float64 {
	return roundPlaces(v, 4)
}

func roundPlaces(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}
