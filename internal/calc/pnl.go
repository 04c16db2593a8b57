package calc

import (
	"github.com/google/uuid"
)

// ExitOrder is one leg of a multi-order exit plan. Disabled orders are
// excluded from the computation entirely.
type ExitOrder struct {
	ID       uuid.UUID `json:"id"`
	Price    float64   `json:"price"`
	Quantity float64   `json:"quantity"`
	Enabled  bool      `json:"enabled"`
}

// PnLInput describes a position and how it is exited. When ExitOrders is
// empty the calculation runs in single-exit mode against ExitPrice.
type PnLInput struct {
	Side       Side        `json:"side"`
	Leverage   float64     `json:"leverage"`
	EntryPrice float64     `json:"entry_price"`
	Quantity   float64     `json:"quantity"`
	ExitPrice  float64     `json:"exit_price"`
	ExitOrders []ExitOrder `json:"exit_orders,omitempty"`
}

// ExitFill reports the consumed portion of one exit order
type ExitFill struct {
	OrderID  uuid.UUID `json:"order_id"`
	Price    float64   `json:"price"`
	Quantity float64   `json:"quantity"`
	PnL      float64   `json:"pnl"`
	ROE      float64   `json:"roe"`
}

// PnLResult holds profit, loss and return-on-equity for a position
type PnLResult struct {
	PositionValue     float64    `json:"position_value"`
	InitialMargin     float64    `json:"initial_margin"`
	PnL               float64    `json:"pnl"`
	ROE               float64    `json:"roe"`
	Fills             []ExitFill `json:"fills,omitempty"`
	TotalExitQuantity float64    `json:"total_exit_quantity"`
	RemainingQuantity float64    `json:"remaining_quantity"`
}

// directionalPnL applies the side-dependent futures PnL formula
func directionalPnL(side Side, entryPrice, exitPrice, quantity float64) float64 {
	if side == Long {
		return (exitPrice - entryPrice) * quantity
	}
	return (entryPrice - exitPrice) * quantity
}

// ComputePnL computes profit/loss and ROE for a leveraged position.
//
// In multi-exit mode, enabled orders are consumed in input order; an order
// asking for more than the remaining position quantity is truncated to what
// is left, and orders arriving after the position is fully consumed are
// skipped. Over-specified exit plans are therefore tolerated, never rejected.
// Per-order ROE is measured against that order's own margin share
// (entryPrice * consumedQuantity / leverage); the aggregate ROE is measured
// against the whole-position initial margin.
func ComputePnL(in PnLInput) (PnLResult, error) {
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
	if in.Quantity < 0 {
		errs.addf("quantity must not be negative")
	}
	if len(in.ExitOrders) == 0 && in.ExitPrice <= 0 {
		errs.addf("exit price must be greater than 0")
	}
	for _, order := range in.ExitOrders {
		if !order.Enabled {
			continue
		}
		if order.Price <= 0 {
			errs.addf("exit order price must be greater than 0")
		}
		if order.Quantity < 0 {
			errs.addf("exit order quantity must not be negative")
		}
	}
	if err := errs.orNil(); err != nil {
		return PnLResult{}, err
	}

	positionValue := in.EntryPrice * in.Quantity
	initialMargin := positionValue / in.Leverage
	result := PnLResult{
		PositionValue: positionValue,
		InitialMargin: initialMargin,
	}

	if len(in.ExitOrders) == 0 {
		result.PnL = directionalPnL(in.Side, in.EntryPrice, in.ExitPrice, in.Quantity)
		if initialMargin > 0 {
			result.ROE = result.PnL / initialMargin * 100
		}
		result.TotalExitQuantity = in.Quantity
		return result, nil
	}

	remaining := in.Quantity
	for _, order := range in.ExitOrders {
		if !order.Enabled {
			continue
		}
		quantity := order.Quantity
		if quantity > remaining {
			quantity = remaining
		}
		if quantity <= 0 {
			continue
		}

		pnl := directionalPnL(in.Side, in.EntryPrice, order.Price, quantity)
		orderMargin := in.EntryPrice * quantity / in.Leverage
		var roe float64
		if orderMargin > 0 {
			roe = pnl / orderMargin * 100
		}

		result.Fills = append(result.Fills, ExitFill{
			OrderID:  order.ID,
			Price:    order.Price,
			Quantity: quantity,
			PnL:      pnl,
			ROE:      roe,
		})
		result.PnL += pnl
		remaining -= quantity
	}

	result.TotalExitQuantity = in.Quantity - remaining
	result.RemainingQuantity = remaining
	if initialMargin > 0 {
		result.ROE = result.PnL / initialMargin * 100
	}
	return result, nil
}
