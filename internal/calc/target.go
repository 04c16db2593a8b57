package calc

// TargetPriceInput asks for the exit price that achieves a target return
type TargetPriceInput struct {
	Side       Side    `json:"side"`
	Leverage   float64 `json:"leverage"`
	EntryPrice float64 `json:"entry_price"`
	TargetROE  float64 `json:"target_roe"` // percent
}

// TargetPriceResult holds the solved exit price
type TargetPriceResult struct {
	TargetPrice float64 `json:"target_price"`
	// Adjustment is the fractional price move needed to reach the target
	Adjustment float64 `json:"adjustment"`
}

// TargetPrice solves for the exit price that yields the requested ROE. This
// is the algebraic inverse of the single-exit ROE formula, no iteration.
func TargetPrice(in TargetPriceInput) (TargetPriceResult, error) {
	var errs ValidationErrors
	if !in.Side.Valid() {
		errs.addf("side must be LONG or SHORT")
	}
	if in.Leverage <= 0 {
		errs.addf("leverage must be greater than 0")
	}
	if in.EntryPrice <= 0 {
		errs.addf("entry price must be greater than 0")
	}
	if err := errs.orNil(); err != nil {
		return TargetPriceResult{}, err
	}

	adjustment := in.TargetROE / in.Leverage / 100
	price := in.EntryPrice * (1 + adjustment)
	if in.Side == Short {
		price = in.EntryPrice * (1 - adjustment)
	}

	return TargetPriceResult{
		TargetPrice: price,
		Adjustment:  adjustment,
	}, nil
}
