package calc

// breakdownPrincipal is the fixed notional used for the illustrative cost
// breakdown
const breakdownPrincipal = 1000.0

// BreakEvenInput aggregates the fee and funding parameters of a position.
// All rates are percentages: 0.05 means 0.05%.
type BreakEvenInput struct {
	Leverage           float64 `json:"leverage"`
	OpenFeeRate        float64 `json:"open_fee_rate"`
	CloseFeeRate       float64 `json:"close_fee_rate"`
	FundingRate        float64 `json:"funding_rate"` // may be negative
	FundingPeriodHours float64 `json:"funding_period_hours"`
	HoldingHours       float64 `json:"holding_hours"`
}

// CostBreakdown applies the computed rates to a fixed 1000-unit principal.
// This is presentation convenience only, not a separate calculation.
type CostBreakdown struct {
	Principal   float64 `json:"principal"`
	OpenCost    float64 `json:"open_cost"`
	CloseCost   float64 `json:"close_cost"`
	FundingCost float64 `json:"funding_cost"`
	TotalCost   float64 `json:"total_cost"`
}

// BreakEvenResult holds the minimum return needed to cover all costs. Rates
// are percentages rounded to 4 decimal places; breakdown figures to 2.
type BreakEvenResult struct {
	OpenCostRate       float64       `json:"open_cost_rate"`
	CloseCostRate      float64       `json:"close_cost_rate"`
	FundingPeriods     float64       `json:"funding_periods"`
	FundingCostRate    float64       `json:"funding_cost_rate"`
	TotalBreakEvenRate float64       `json:"total_break_even_rate"`
	Breakdown          CostBreakdown `json:"breakdown"`
}

// BreakEvenRate computes the minimum unrealized return that offsets opening
// fees, closing fees and funding over the holding window.
//
// A negative funding rate is valid: the position is paid funding, which
// lowers the break-even requirement and can push the total below the
// fee-only sum or below zero.
func BreakEvenRate(in BreakEvenInput) (BreakEvenResult, error) {
	var errs ValidationErrors
	if in.Leverage <= 0 {
		errs.addf("leverage must be greater than 0")
	}
	if in.OpenFeeRate < 0 {
		errs.addf("open fee rate must not be negative")
	}
	if in.CloseFeeRate < 0 {
		errs.addf("close fee rate must not be negative")
	}
	if in.FundingPeriodHours <= 0 {
		errs.addf("funding period hours must be greater than 0")
	}
	if in.HoldingHours < 0 {
		errs.addf("holding hours must not be negative")
	}
	if err := errs.orNil(); err != nil {
		return BreakEvenResult{}, err
	}

	// Fee rates are already percentages, so the leverage multiplication keeps
	// percent dimensions
	openCostRate := in.OpenFeeRate * in.Leverage
	closeCostRate := in.CloseFeeRate * in.Leverage
	fundingPeriods := in.HoldingHours / in.FundingPeriodHours
	fundingCostRate := in.FundingRate * in.Leverage * fundingPeriods
	total := openCostRate + closeCostRate + fundingCostRate

	return BreakEvenResult{
		OpenCostRate:       Round4(openCostRate),
		CloseCostRate:      Round4(closeCostRate),
		FundingPeriods:     fundingPeriods,
		FundingCostRate:    Round4(fundingCostRate),
		TotalBreakEvenRate: Round4(total),
		Breakdown: CostBreakdown{
			Principal:   breakdownPrincipal,
			OpenCost:    Round2(breakdownPrincipal * openCostRate / 100),
			CloseCost:   Round2(breakdownPrincipal * closeCostRate / 100),
			FundingCost: Round2(breakdownPrincipal * fundingCostRate / 100),
			TotalCost:   Round2(breakdownPrincipal * total / 100),
		},
	}, nil
}
