package calc

// Side identifies the direction of a leveraged position
type Side string

// Side constants
const (
	Long  Side = "LONG"
	Short Side = "SHORT"
)

// Valid reports whether the side is one of the known constants
func (s Side) Valid() bool {
	return s == Long || s == Short
}

// MarginMode selects which balance base the liquidation formula uses
type MarginMode string

// MarginMode constants
const (
	// Cross uses the whole wallet balance as liquidation buffer
	Cross MarginMode = "CROSS"
	// Isolated uses only the margin allocated to the position
	Isolated MarginMode = "ISOLATED"
)

// Valid reports whether the margin mode is one of the known constants
func (m MarginMode) Valid() bool {
	return m == Cross || m == Isolated
}

// GrowthStrategy selects how layer quantities grow in a scale-in plan
type GrowthStrategy string

// GrowthStrategy constants
const (
	// Geometric multiplies each layer quantity by a fixed multiplier
	Geometric GrowthStrategy = "GEOMETRIC"
	// DoubleDown doubles the quantity on every layer
	DoubleDown GrowthStrategy = "DOUBLE_DOWN"
)

// Valid reports whether the strategy is one of the known constants
func (g GrowthStrategy) Valid() bool {
	return g == Geometric || g == DoubleDown
}

// RiskTolerance scales the risk-adjusted Kelly fraction
type RiskTolerance string

// RiskTolerance constants
const (
	Conservative RiskTolerance = "CONSERVATIVE"
	Moderate     RiskTolerance = "MODERATE"
	Aggressive   RiskTolerance = "AGGRESSIVE"
)

// Valid reports whether the tolerance is one of the known constants
func (r RiskTolerance) Valid() bool {
	return r == Conservative || r == Moderate || r == Aggressive
}

// Multiplier returns the scaling factor applied to the adjusted Kelly fraction
func (r RiskTolerance) Multiplier() float64 {
	switch r {
	case Conservative:
		return ConservativeMultiplier
	case Moderate:
		return ModerateMultiplier
	default:
		return AggressiveMultiplier
	}
}
