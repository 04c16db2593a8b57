package calc

import (
	"encoding/json"
	"math"

	"github.com/google/uuid"
)

// Kelly policy constants. These thresholds are business policy, not derived
// math, and are kept in one place so they can be audited independently of the
// arithmetic.
const (
	// KellyWarningThreshold marks a raw fraction aggressive enough to warn on
	KellyWarningThreshold = 0.25
	// KellyHalfFractionThreshold is the lower bound of the half-Kelly band
	KellyHalfFractionThreshold = 0.10
	// KellyThreeQuarterFractionThreshold is the lower bound of the 75% band
	KellyThreeQuarterFractionThreshold = 0.05

	HalfKellyFraction         = 0.5
	ThreeQuarterKellyFraction = 0.75
	FullKellyFraction         = 1.0

	ConservativeMultiplier = 0.5
	ModerateMultiplier     = 0.75
	AggressiveMultiplier   = 1.0
)

// Recommendation messages
const (
	RecommendHalfKelly         = "use half Kelly"
	RecommendThreeQuarterKelly = "use three-quarter Kelly"
	RecommendFullKelly         = "full Kelly acceptable"
	RecommendNotSuitable       = "Kelly sizing is not suitable for this strategy"

	WarningAggressiveKelly = "raw Kelly fraction is aggressive; a reduced fractional Kelly is strongly recommended"
)

// KellyBasicInput feeds the classic odds-based formula
type KellyBasicInput struct {
	WinRate     float64 `json:"win_rate"`     // p, in (0,1)
	PayoffRatio float64 `json:"payoff_ratio"` // b, net odds received on a win
}

// KellyTradingInput feeds the win-rate plus average-amounts variant
type KellyTradingInput struct {
	WinRate float64 `json:"win_rate"` // in (0,1)
	AvgWin  float64 `json:"avg_win"`
	AvgLoss float64 `json:"avg_loss"` // absolute value
}

// TradeRecord is one signed historical trade outcome
type TradeRecord struct {
	ID      uuid.UUID `json:"id"`
	Profit  float64   `json:"profit"`
	Enabled bool      `json:"enabled"`
}

// RiskAdjustment scales a raw Kelly fraction down to a tradable stake
type RiskAdjustment struct {
	FractionalFactor float64       `json:"fractional_factor"` // (0,1]
	MaxPosition      float64       `json:"max_position"`      // (0,1]
	RiskTolerance    RiskTolerance `json:"risk_tolerance"`
}

// KellyStats aggregates a historical trade log
type KellyStats struct {
	TotalTrades    int     `json:"total_trades"`
	Winners        int     `json:"winners"`
	Losers         int     `json:"losers"`
	WinRate        float64 `json:"win_rate"`
	AvgWin         float64 `json:"avg_win"`
	AvgLoss        float64 `json:"avg_loss"`
	ProfitFactor   float64 `json:"profit_factor"`
	ExpectedReturn float64 `json:"expected_return"`
}

// MarshalJSON renders an infinite profit factor as null. The standard encoder
// rejects +Inf outright, which would fail the whole response for a winning-only
// trade log.
func (s KellyStats) MarshalJSON() ([]byte, error) {
	type plain KellyStats
	payload := struct {
		plain
		ProfitFactor *float64 `json:"profit_factor"`
	}{plain: plain(s)}
	if !math.IsInf(s.ProfitFactor, 0) {
		payload.ProfitFactor = &s.ProfitFactor
	}
	return json.Marshal(payload)
}

// KellyResult holds the raw and risk-adjusted stake fractions plus the policy
// recommendation
type KellyResult struct {
	KellyFraction       float64     `json:"kelly_fraction"`
	AdjustedFraction    float64     `json:"adjusted_fraction"`
	RecommendedFraction float64     `json:"recommended_fraction"`
	Recommendation      string      `json:"recommendation"`
	Warning             string      `json:"warning,omitempty"`
	Stats               *KellyStats `json:"stats,omitempty"`
}

// KellyBasic computes f* = max(0, (b*p - q)/b) from win rate and payoff odds
func KellyBasic(in KellyBasicInput, adj RiskAdjustment) (KellyResult, error) {
	var errs ValidationErrors
	if in.WinRate <= 0 || in.WinRate >= 1 {
		errs.addf("win rate must be between 0 and 1 exclusive")
	}
	if in.PayoffRatio <= 0 {
		errs.addf("payoff ratio must be greater than 0")
	}
	validateAdjustment(adj, &errs)
	if err := errs.orNil(); err != nil {
		return KellyResult{}, err
	}

	q := 1 - in.WinRate
	fraction := (in.PayoffRatio*in.WinRate - q) / in.PayoffRatio
	if fraction < 0 {
		fraction = 0
	}
	return buildKellyResult(fraction, adj, nil), nil
}

// KellyTrading computes f* = max(0, (p*avgWin - q*avgLoss)/avgWin). Inputs
// outside their valid ranges are rejected outright, not clamped.
func KellyTrading(in KellyTradingInput, adj RiskAdjustment) (KellyResult, error) {
	var errs ValidationErrors
	if in.WinRate <= 0 || in.WinRate >= 1 {
		errs.addf("win rate must be between 0 and 1 exclusive")
	}
	if in.AvgWin <= 0 {
		errs.addf("average win must be greater than 0")
	}
	if in.AvgLoss <= 0 {
		errs.addf("average loss must be greater than 0")
	}
	validateAdjustment(adj, &errs)
	if err := errs.orNil(); err != nil {
		return KellyResult{}, err
	}

	fraction := tradingFraction(in.WinRate, in.AvgWin, in.AvgLoss)
	return buildKellyResult(fraction, adj, nil), nil
}

// KellyHistorical derives win-rate statistics from a trade log and feeds them
// through the trading formula. Disabled trades are excluded. An empty log is
// rejected rather than computed from empty statistics.
func KellyHistorical(trades []TradeRecord, adj RiskAdjustment) (KellyResult, error) {
	var errs ValidationErrors
	validateAdjustment(adj, &errs)

	stats := aggregateTrades(trades)
	if stats.TotalTrades == 0 {
		errs.addf("no enabled trades to analyze")
	}
	if err := errs.orNil(); err != nil {
		return KellyResult{}, err
	}

	// A log with no winners has no payoff to size against; the fraction
	// degenerates to zero and the recommendation ladder reports the strategy
	// as unsuitable
	var fraction float64
	if stats.AvgWin > 0 {
		fraction = tradingFraction(stats.WinRate, stats.AvgWin, stats.AvgLoss)
	}
	return buildKellyResult(fraction, adj, &stats), nil
}

// tradingFraction evaluates the win/loss-amount Kelly formula, floored at 0
func tradingFraction(winRate, avgWin, avgLoss float64) float64 {
	q := 1 - winRate
	fraction := (winRate*avgWin - q*avgLoss) / avgWin
	if fraction < 0 {
		return 0
	}
	return fraction
}

// aggregateTrades partitions enabled trades into winners and losers
func aggregateTrades(trades []TradeRecord) KellyStats {
	var stats KellyStats
	var totalWin, totalLoss float64

	for _, trade := range trades {
		if !trade.Enabled {
			continue
		}
		stats.TotalTrades++
		if trade.Profit > 0 {
			stats.Winners++
			totalWin += trade.Profit
		} else if trade.Profit < 0 {
			stats.Losers++
			totalLoss += -trade.Profit
		} else {
			// Break-even trades count toward the total only
			stats.Losers++
		}
	}

	if stats.TotalTrades == 0 {
		return stats
	}

	stats.WinRate = float64(stats.Winners) / float64(stats.TotalTrades)
	if stats.Winners > 0 {
		stats.AvgWin = totalWin / float64(stats.Winners)
	}
	if totalLoss > 0 {
		stats.AvgLoss = totalLoss / float64(stats.Losers)
	}

	switch {
	case stats.Winners == 0:
		stats.ProfitFactor = 0
	case totalLoss == 0:
		stats.ProfitFactor = math.Inf(1)
	default:
		stats.ProfitFactor = totalWin / totalLoss
	}

	stats.ExpectedReturn = (stats.WinRate*stats.AvgWin - (1-stats.WinRate)*stats.AvgLoss) / 100
	return stats
}

func validateAdjustment(adj RiskAdjustment, errs *ValidationErrors) {
	if adj.FractionalFactor <= 0 || adj.FractionalFactor > 1 {
		errs.addf("fractional factor must be between 0 exclusive and 1 inclusive")
	}
	if adj.MaxPosition <= 0 || adj.MaxPosition > 1 {
		errs.addf("max position must be between 0 exclusive and 1 inclusive")
	}
	if !adj.RiskTolerance.Valid() {
		errs.addf("risk tolerance must be CONSERVATIVE, MODERATE or AGGRESSIVE")
	}
}

// buildKellyResult applies the uniform risk-adjustment stage and the
// recommendation ladder
func buildKellyResult(fraction float64, adj RiskAdjustment, stats *KellyStats) KellyResult {
	adjusted := fraction * adj.FractionalFactor
	if adjusted > adj.MaxPosition {
		adjusted = adj.MaxPosition
	}
	adjusted *= adj.RiskTolerance.Multiplier()
	if adjusted < 0 {
		adjusted = 0
	}

	result := KellyResult{
		KellyFraction:    fraction,
		AdjustedFraction: adjusted,
		Stats:            stats,
	}

	switch {
	case fraction > KellyWarningThreshold:
		result.RecommendedFraction = HalfKellyFraction
		result.Recommendation = RecommendHalfKelly
		result.Warning = WarningAggressiveKelly
	case fraction > KellyHalfFractionThreshold:
		result.RecommendedFraction = HalfKellyFraction
		result.Recommendation = RecommendHalfKelly
	case fraction > KellyThreeQuarterFractionThreshold:
		result.RecommendedFraction = ThreeQuarterKellyFraction
		result.Recommendation = RecommendThreeQuarterKelly
	case fraction > 0:
		result.RecommendedFraction = FullKellyFraction
		result.Recommendation = RecommendFullKelly
	default:
		result.RecommendedFraction = 0
		result.Recommendation = RecommendNotSuitable
	}
	return result
}
