package calc

// MaxPositionInput asks for the largest tradable size given balance and
// leverage
type MaxPositionInput struct {
	WalletBalance float64 `json:"wallet_balance"`
	Leverage      float64 `json:"leverage"`
	EntryPrice    float64 `json:"entry_price"`
}

// MaxPositionResult holds the maximum position value and quantity
type MaxPositionResult struct {
	MaxPositionValue float64 `json:"max_position_value"`
	MaxQuantity      float64 `json:"max_quantity"`
}

// MaxPosition computes the maximum tradable position. A zero balance yields a
// zero-quantity result, not an error.
func MaxPosition(in MaxPositionInput) (MaxPositionResult, error) {
	var errs ValidationErrors
	if in.WalletBalance < 0 {
		errs.addf("wallet balance must not be negative")
	}
	if in.Leverage <= 0 {
		errs.addf("leverage must be greater than 0")
	}
	if in.EntryPrice <= 0 {
		errs.addf("entry price must be greater than 0")
	}
	if err := errs.orNil(); err != nil {
		return MaxPositionResult{}, err
	}

	maxValue := in.WalletBalance * in.Leverage
	return MaxPositionResult{
		MaxPositionValue: maxValue,
		MaxQuantity:      maxValue / in.EntryPrice,
	}, nil
}
