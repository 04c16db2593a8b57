package http

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"levercalc/internal/domain"
)

// MarketHandler serves live market numbers used to prefill calculator inputs.
// The engine itself never sees where they came from.
type MarketHandler struct {
	marketData domain.MarketDataService
}

// NewMarketHandler creates a new MarketHandler
func NewMarketHandler(marketData domain.MarketDataService) *MarketHandler {
	return &MarketHandler{
		marketData: marketData,
	}
}

// Funding returns the funding rate and mark price for a symbol
// GET /api/market/funding/:symbol
func (h *MarketHandler) Funding(c echo.Context) error {
	symbol := c.Param("symbol")
	if symbol == "" {
		return BadRequestResponse(c, "symbol is required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	info, err := h.marketData.GetFunding(ctx, symbol)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to fetch funding data", err)
	}

	return SuccessResponse(c, info)
}
