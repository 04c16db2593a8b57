package dto

import (
	"github.com/google/uuid"

	"levercalc/internal/calc"
)

// Calculator inputs arrive from text fields, so every numeric is nullable:
// an empty field is JSON null, not zero. Requests convert themselves into
// fully-parsed engine inputs, reporting missing fields alongside whatever
// range violations the engine finds. Range checking itself stays in the
// engine.

// value unwraps a nullable numeric, treating absent as zero. Required-field
// presence is checked separately so the engine sees a complete record.
func value(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// require appends a missing-field message when p is nil
func require(missing []string, p *float64, field string) []string {
	if p == nil {
		missing = append(missing, field+" is required")
	}
	return missing
}

// EntryPriceRequest is the weighted entry price payload
type EntryPriceRequest struct {
	Fills []FillInput `json:"fills"`
}

// FillInput is one fill row
type FillInput struct {
	Price    *float64 `json:"price"`
	Quantity *float64 `json:"quantity"`
}

// ToFills converts the request into engine fills. Rows with both fields
// empty are dropped, matching how blank UI rows behave.
func (r EntryPriceRequest) ToFills() []calc.WeightedFill {
	fills := make([]calc.WeightedFill, 0, len(r.Fills))
	for _, f := range r.Fills {
		if f.Price == nil && f.Quantity == nil {
			continue
		}
		fills = append(fills, calc.WeightedFill{
			Price:    value(f.Price),
			Quantity: value(f.Quantity),
		})
	}
	return fills
}

// ExitOrderInput is one exit order row
type ExitOrderInput struct {
	ID       string   `json:"id"`
	Price    *float64 `json:"price"`
	Quantity *float64 `json:"quantity"`
	Enabled  bool     `json:"enabled"`
}

// PnLRequest is the PnL/ROE calculator payload
type PnLRequest struct {
	Side       string           `json:"side"`
	Leverage   *float64         `json:"leverage"`
	EntryPrice *float64         `json:"entry_price"`
	Quantity   *float64         `json:"quantity"`
	ExitPrice  *float64         `json:"exit_price"`
	ExitOrders []ExitOrderInput `json:"exit_orders,omitempty"`
}

// ToInput converts the request into an engine input, reporting missing
// required fields
func (r PnLRequest) ToInput() (calc.PnLInput, []string) {
	var missing []string
	missing = require(missing, r.Leverage, "leverage")
	missing = require(missing, r.EntryPrice, "entry_price")
	missing = require(missing, r.Quantity, "quantity")
	if len(r.ExitOrders) == 0 {
		missing = require(missing, r.ExitPrice, "exit_price")
	}

	in := calc.PnLInput{
		Side:       calc.Side(r.Side),
		Leverage:   value(r.Leverage),
		EntryPrice: value(r.EntryPrice),
		Quantity:   value(r.Quantity),
		ExitPrice:  value(r.ExitPrice),
	}
	for _, o := range r.ExitOrders {
		id, err := uuid.Parse(o.ID)
		if err != nil {
			id = uuid.New()
		}
		in.ExitOrders = append(in.ExitOrders, calc.ExitOrder{
			ID:       id,
			Price:    value(o.Price),
			Quantity: value(o.Quantity),
			Enabled:  o.Enabled,
		})
	}
	return in, missing
}

// TargetPriceRequest is the target price calculator payload
type TargetPriceRequest struct {
	Side       string   `json:"side"`
	Leverage   *float64 `json:"leverage"`
	EntryPrice *float64 `json:"entry_price"`
	TargetROE  *float64 `json:"target_roe"`
}

// ToInput converts the request into an engine input
func (r TargetPriceRequest) ToInput() (calc.TargetPriceInput, []string) {
	var missing []string
	missing = require(missing, r.Leverage, "leverage")
	missing = require(missing, r.EntryPrice, "entry_price")
	missing = require(missing, r.TargetROE, "target_roe")

	return calc.TargetPriceInput{
		Side:       calc.Side(r.Side),
		Leverage:   value(r.Leverage),
		EntryPrice: value(r.EntryPrice),
		TargetROE:  value(r.TargetROE),
	}, missing
}

// LiquidationRequest is the liquidation price calculator payload
type LiquidationRequest struct {
	Side                  string   `json:"side"`
	MarginMode            string   `json:"margin_mode"`
	Leverage              *float64 `json:"leverage"`
	EntryPrice            *float64 `json:"entry_price"`
	Quantity              *float64 `json:"quantity"`
	WalletBalance         *float64 `json:"wallet_balance"`
	MaintenanceMarginRate *float64 `json:"maintenance_margin_rate"`
}

// ToInput converts the request into an engine input
func (r LiquidationRequest) ToInput() (calc.LiquidationInput, []string) {
	var missing []string
	missing = require(missing, r.Leverage, "leverage")
	missing = require(missing, r.EntryPrice, "entry_price")
	missing = require(missing, r.Quantity, "quantity")
	missing = require(missing, r.MaintenanceMarginRate, "maintenance_margin_rate")
	if calc.MarginMode(r.MarginMode) == calc.Cross {
		missing = require(missing, r.WalletBalance, "wallet_balance")
	}

	return calc.LiquidationInput{
		Side:                  calc.Side(r.Side),
		MarginMode:            calc.MarginMode(r.MarginMode),
		Leverage:              value(r.Leverage),
		EntryPrice:            value(r.EntryPrice),
		Quantity:              value(r.Quantity),
		WalletBalance:         value(r.WalletBalance),
		MaintenanceMarginRate: value(r.MaintenanceMarginRate),
	}, missing
}

// MaxPositionRequest is the max position calculator payload
type MaxPositionRequest struct {
	WalletBalance *float64 `json:"wallet_balance"`
	Leverage      *float64 `json:"leverage"`
	EntryPrice    *float64 `json:"entry_price"`
}

// ToInput converts the request into an engine input
func (r MaxPositionRequest) ToInput() (calc.MaxPositionInput, []string) {
	var missing []string
	missing = require(missing, r.WalletBalance, "wallet_balance")
	missing = require(missing, r.Leverage, "leverage")
	missing = require(missing, r.EntryPrice, "entry_price")

	return calc.MaxPositionInput{
		WalletBalance: value(r.WalletBalance),
		Leverage:      value(r.Leverage),
		EntryPrice:    value(r.EntryPrice),
	}, missing
}

// BreakEvenRequest is the break-even rate calculator payload
type BreakEvenRequest struct {
	Leverage           *float64 `json:"leverage"`
	OpenFeeRate        *float64 `json:"open_fee_rate"`
	CloseFeeRate       *float64 `json:"close_fee_rate"`
	FundingRate        *float64 `json:"funding_rate"`
	FundingPeriodHours *float64 `json:"funding_period_hours"`
	HoldingHours       *float64 `json:"holding_hours"`
}

// ToInput converts the request into an engine input. The funding rate may
// legitimately be absent (spot-style trades) and defaults to zero.
func (r BreakEvenRequest) ToInput() (calc.BreakEvenInput, []string) {
	var missing []string
	missing = require(missing, r.Leverage, "leverage")
	missing = require(missing, r.OpenFeeRate, "open_fee_rate")
	missing = require(missing, r.CloseFeeRate, "close_fee_rate")
	missing = require(missing, r.FundingPeriodHours, "funding_period_hours")
	missing = require(missing, r.HoldingHours, "holding_hours")

	return calc.BreakEvenInput{
		Leverage:           value(r.Leverage),
		OpenFeeRate:        value(r.OpenFeeRate),
		CloseFeeRate:       value(r.CloseFeeRate),
		FundingRate:        value(r.FundingRate),
		FundingPeriodHours: value(r.FundingPeriodHours),
		HoldingHours:       value(r.HoldingHours),
	}, missing
}

// RiskAdjustmentInput is the shared Kelly risk-adjustment block
type RiskAdjustmentInput struct {
	FractionalFactor *float64 `json:"fractional_factor"`
	MaxPosition      *float64 `json:"max_position"`
	RiskTolerance    string   `json:"risk_tolerance"`
}

// ToAdjustment converts the block into an engine adjustment
func (r RiskAdjustmentInput) ToAdjustment() (calc.RiskAdjustment, []string) {
	var missing []string
	missing = require(missing, r.FractionalFactor, "fractional_factor")
	missing = require(missing, r.MaxPosition, "max_position")

	return calc.RiskAdjustment{
		FractionalFactor: value(r.FractionalFactor),
		MaxPosition:      value(r.MaxPosition),
		RiskTolerance:    calc.RiskTolerance(r.RiskTolerance),
	}, missing
}

// Kelly input modes
const (
	KellyModeBasic      = "BASIC"
	KellyModeTrading    = "TRADING"
	KellyModeHistorical = "HISTORICAL"
)

// TradeInput is one historical trade row
type TradeInput struct {
	ID      string   `json:"id"`
	Profit  *float64 `json:"profit"`
	Enabled bool     `json:"enabled"`
}

// KellyRequest is the Kelly criterion calculator payload. Mode selects which
// block is consulted.
type KellyRequest struct {
	Mode string `json:"mode"`

	// BASIC
	WinRate     *float64 `json:"win_rate"`
	PayoffRatio *float64 `json:"payoff_ratio"`

	// TRADING (also uses WinRate)
	AvgWin  *float64 `json:"avg_win"`
	AvgLoss *float64 `json:"avg_loss"`

	// HISTORICAL
	Trades []TradeInput `json:"trades,omitempty"`

	Adjustment RiskAdjustmentInput `json:"adjustment"`
}

// ToTrades converts historical rows into engine trade records
func (r KellyRequest) ToTrades() []calc.TradeRecord {
	trades := make([]calc.TradeRecord, 0, len(r.Trades))
	for _, t := range r.Trades {
		id, err := uuid.Parse(t.ID)
		if err != nil {
			id = uuid.New()
		}
		trades = append(trades, calc.TradeRecord{
			ID:      id,
			Profit:  value(t.Profit),
			Enabled: t.Enabled,
		})
	}
	return trades
}

// PyramidRequest is the scale-in planner payload
type PyramidRequest struct {
	Side                string   `json:"side"`
	Leverage            *float64 `json:"leverage"`
	InitialPrice        *float64 `json:"initial_price"`
	InitialQuantity     *float64 `json:"initial_quantity"`
	Layers              *int     `json:"layers"`
	Strategy            string   `json:"strategy"`
	PriceChangePercent  *float64 `json:"price_change_percent"`
	GeometricMultiplier *float64 `json:"geometric_multiplier"`
}

// ToParams converts the request into engine parameters
func (r PyramidRequest) ToParams() (calc.PyramidParams, []string) {
	var missing []string
	missing = require(missing, r.Leverage, "leverage")
	missing = require(missing, r.InitialPrice, "initial_price")
	missing = require(missing, r.InitialQuantity, "initial_quantity")
	missing = require(missing, r.PriceChangePercent, "price_change_percent")
	if r.Layers == nil {
		missing = append(missing, "layers is required")
	}

	layers := 0
	if r.Layers != nil {
		layers = *r.Layers
	}

	return calc.PyramidParams{
		Side:                calc.Side(r.Side),
		Leverage:            value(r.Leverage),
		InitialPrice:        value(r.InitialPrice),
		InitialQuantity:     value(r.InitialQuantity),
		Layers:              layers,
		Strategy:            calc.GrowthStrategy(r.Strategy),
		PriceChangePercent:  value(r.PriceChangePercent),
		GeometricMultiplier: value(r.GeometricMultiplier),
	}, missing
}
