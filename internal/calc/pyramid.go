package calc

import "math"

// Pyramid planner bounds
const (
	MinPyramidLayers      = 2
	MaxPyramidLayers      = 10
	MaxPriceChangePercent = 50.0

	// DefaultGeometricMultiplier is applied when the caller leaves the
	// multiplier unset
	DefaultGeometricMultiplier = 1.5
)

// PyramidParams describes a multi-layer scale-in schedule
type PyramidParams struct {
	Side                Side           `json:"side"`
	Leverage            float64        `json:"leverage"`
	InitialPrice        float64        `json:"initial_price"`
	InitialQuantity     float64        `json:"initial_quantity"`
	Layers              int            `json:"layers"`
	Strategy            GrowthStrategy `json:"strategy"`
	PriceChangePercent  float64        `json:"price_change_percent"` // (0,50]
	GeometricMultiplier float64        `json:"geometric_multiplier,omitempty"`
}

// PyramidLayer is one rung of the scale-in ladder with the running position
// state after filling it
type PyramidLayer struct {
	Index              int     `json:"index"`
	Price              float64 `json:"price"`
	Quantity           float64 `json:"quantity"`
	Margin             float64 `json:"margin"`
	CumulativeQuantity float64 `json:"cumulative_quantity"`
	CumulativeMargin   float64 `json:"cumulative_margin"`
	AveragePrice       float64 `json:"average_price"`
	LiquidationPrice   float64 `json:"liquidation_price"`
	PriceChange        float64 `json:"price_change"` // percent vs initial price
}

// PyramidResult is the full scale-in plan
type PyramidResult struct {
	Layers                []PyramidLayer `json:"layers"`
	TotalQuantity         float64        `json:"total_quantity"`
	TotalMargin           float64        `json:"total_margin"`
	FinalAveragePrice     float64        `json:"final_average_price"`
	FinalLiquidationPrice float64        `json:"final_liquidation_price"`
	MaxDrawdown           float64        `json:"max_drawdown"` // percent
}

// PlanPyramid generates an add-to-position schedule.
//
// Layer prices are always derived from the initial price
// (initial * (1 +- pct/100)^i), never compounded from the previous layer's
// price; the two interpretations diverge materially, and this one matches the
// published plan figures. The running average price is recomputed from the
// accumulated value and quantity at every layer instead of blending
// incrementally, so rounding error does not compound down the ladder.
func PlanPyramid(p PyramidParams) (PyramidResult, error) {
	var errs ValidationErrors
	if !p.Side.Valid() {
		errs.addf("side must be LONG or SHORT")
	}
	if p.Leverage <= 0 {
		errs.addf("leverage must be greater than 0")
	}
	if p.InitialPrice <= 0 {
		errs.addf("initial price must be greater than 0")
	}
	if p.InitialQuantity <= 0 {
		errs.addf("initial quantity must be greater than 0")
	}
	if p.Layers < MinPyramidLayers || p.Layers > MaxPyramidLayers {
		errs.addf("layers must be between %d and %d", MinPyramidLayers, MaxPyramidLayers)
	}
	if !p.Strategy.Valid() {
		errs.addf("strategy must be GEOMETRIC or DOUBLE_DOWN")
	}
	if p.PriceChangePercent <= 0 || p.PriceChangePercent > MaxPriceChangePercent {
		errs.addf("price change percent must be greater than 0 and at most %.0f", MaxPriceChangePercent)
	}
	multiplier := p.GeometricMultiplier
	if multiplier == 0 {
		multiplier = DefaultGeometricMultiplier
	}
	if multiplier <= 0 {
		errs.addf("geometric multiplier must be greater than 0")
	}
	if err := errs.orNil(); err != nil {
		return PyramidResult{}, err
	}

	step := p.PriceChangePercent / 100
	priceBase := 1 - step
	if p.Side == Short {
		priceBase = 1 + step
	}

	result := PyramidResult{Layers: make([]PyramidLayer, 0, p.Layers)}
	var cumulativeQuantity, cumulativeMargin, cumulativeValue float64

	for i := 0; i < p.Layers; i++ {
		price := p.InitialPrice * math.Pow(priceBase, float64(i))

		quantity := p.InitialQuantity
		switch p.Strategy {
		case Geometric:
			quantity = p.InitialQuantity * math.Pow(multiplier, float64(i))
		case DoubleDown:
			quantity = p.InitialQuantity * math.Pow(2, float64(i))
		}

		margin := price * quantity / p.Leverage
		cumulativeQuantity += quantity
		cumulativeMargin += margin
		cumulativeValue += price * quantity

		averagePrice := cumulativeValue / cumulativeQuantity
		liquidationPrice := pyramidLiquidationPrice(p.Side, averagePrice, p.Leverage)

		var priceChange float64
		if i > 0 {
			priceChange = (price - p.InitialPrice) / p.InitialPrice * 100
		}

		result.Layers = append(result.Layers, PyramidLayer{
			Index:              i,
			Price:              price,
			Quantity:           quantity,
			Margin:             margin,
			CumulativeQuantity: cumulativeQuantity,
			CumulativeMargin:   cumulativeMargin,
			AveragePrice:       averagePrice,
			LiquidationPrice:   liquidationPrice,
			PriceChange:        priceChange,
		})
	}

	final := result.Layers[len(result.Layers)-1]
	result.TotalQuantity = final.CumulativeQuantity
	result.TotalMargin = final.CumulativeMargin
	result.FinalAveragePrice = final.AveragePrice
	result.FinalLiquidationPrice = final.LiquidationPrice
	result.MaxDrawdown = math.Abs(final.PriceChange)
	return result, nil
}

// pyramidLiquidationPrice applies the isolated-margin liquidation formula to
// the running average price with the position-manager maintenance rate
func pyramidLiquidationPrice(side Side, averagePrice, leverage float64) float64 {
	var price float64
	if side == Long {
		price = averagePrice * (1 - 1/leverage + SimpleMaintenanceMarginRate)
	} else {
		price = averagePrice * (1 + 1/leverage - SimpleMaintenanceMarginRate)
	}
	if price < 0 {
		price = 0
	}
	return price
}
