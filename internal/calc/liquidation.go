package calc

// Maintenance-margin-rate defaults used historically by different calculator
// families. The rate is a required input so callers choose one explicitly
// instead of inheriting a silent default.
const (
	// DefaultMaintenanceMarginRate is the rate used by the dedicated
	// liquidation and max-position calculators
	DefaultMaintenanceMarginRate = 0.0065
	// SimpleMaintenanceMarginRate is the rate used by the position manager
	// and the pyramid planner
	SimpleMaintenanceMarginRate = 0.005
)

// LiquidationInput describes a position and the margin accounting to apply.
// MaintenanceMarginRate must be set by the caller; see the exported rate
// constants.
type LiquidationInput struct {
	Side                  Side       `json:"side"`
	MarginMode            MarginMode `json:"margin_mode"`
	Leverage              float64    `json:"leverage"`
	EntryPrice            float64    `json:"entry_price"`
	Quantity              float64    `json:"quantity"`
	WalletBalance         float64    `json:"wallet_balance"` // cross mode
	MaintenanceMarginRate float64    `json:"maintenance_margin_rate"`
}

// LiquidationResult holds the estimated forced-close price and the margin
// figures behind it
type LiquidationResult struct {
	PositionValue     float64 `json:"position_value"`
	InitialMargin     float64 `json:"initial_margin"`
	MaintenanceMargin float64 `json:"maintenance_margin"`
	LiquidationPrice  float64 `json:"liquidation_price"`
}

// LiquidationPrice estimates the price at which the position is force-closed.
//
// The formula is an approximation: it does not model tiered maintenance
// margin brackets, so results within 10% of an exchange's own engine are
// considered in agreement. A zero-quantity position yields a zero result.
func LiquidationPrice(in LiquidationInput) (LiquidationResult, error) {
	var errs ValidationErrors
	if !in.Side.Valid() {
		errs.addf("side must be LONG or SHORT")
	}
	if !in.MarginMode.Valid() {
		errs.addf("margin mode must be CROSS or ISOLATED")
	}
	if in.Leverage <= 0 {
		errs.addf("leverage must be greater than 0")
	}
	if in.EntryPrice <= 0 {
		errs.addf("entry price must be greater than 0")
	}
	if in.Quantity < 0 {
		errs.addf("quantity must not be negative")
	}
	if in.MaintenanceMarginRate <= 0 {
		errs.addf("maintenance margin rate must be greater than 0")
	}
	if in.MarginMode == Cross && in.WalletBalance < 0 {
		errs.addf("wallet balance must not be negative")
	}
	if err := errs.orNil(); err != nil {
		return LiquidationResult{}, err
	}

	if in.Quantity == 0 {
		return LiquidationResult{}, nil
	}

	positionValue := in.EntryPrice * in.Quantity
	initialMargin := positionValue / in.Leverage
	maintenanceMargin := positionValue * in.MaintenanceMarginRate

	var price float64
	switch in.MarginMode {
	case Cross:
		availableBalance := in.WalletBalance - initialMargin
		ratio := (availableBalance - maintenanceMargin) / positionValue
		if in.Side == Long {
			price = in.EntryPrice * (1 - ratio)
		} else {
			price = in.EntryPrice * (1 + ratio)
		}
	case Isolated:
		adjustment := (initialMargin - maintenanceMargin) / in.Quantity
		if in.Side == Long {
			price = in.EntryPrice - adjustment
		} else {
			price = in.EntryPrice + adjustment
		}
	}

	// A liquidation price is never reported negative
	if price < 0 {
		price = 0
	}

	return LiquidationResult{
		PositionValue:     positionValue,
		InitialMargin:     initialMargin,
		MaintenanceMargin: maintenanceMargin,
		LiquidationPrice:  price,
	}, nil
}
