package http

import (
	"errors"
	"sort"

	"github.com/labstack/echo/v4"

	"levercalc/internal/calc"
	"levercalc/internal/delivery/http/dto"
)

// CalculatorHandler exposes the calculation engine over HTTP. Every endpoint
// is stateless: it parses the payload, runs one engine function and returns
// the result or the full validation message list.
type CalculatorHandler struct{}

// NewCalculatorHandler creates a new CalculatorHandler
func NewCalculatorHandler() *CalculatorHandler {
	return &CalculatorHandler{}
}

// calcErrorResponse maps engine errors onto HTTP responses
func calcErrorResponse(c echo.Context, err error) error {
	var verrs calc.ValidationErrors
	if errors.As(err, &verrs) {
		return ValidationFailedResponse(c, verrs.Messages())
	}
	return InternalServerErrorResponse(c, "Calculation failed", err)
}

// EntryPrice computes the weighted average entry price
// POST /api/calc/entry-price
func (h *CalculatorHandler) EntryPrice(c echo.Context) error {
	var req dto.EntryPriceRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	return SuccessResponse(c, calc.WeightedEntryPrice(req.ToFills()))
}

// PnL computes profit/loss and ROE
// POST /api/calc/pnl
func (h *CalculatorHandler) PnL(c echo.Context) error {
	var req dto.PnLRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	in, missing := req.ToInput()
	if len(missing) > 0 {
		return ValidationFailedResponse(c, missing)
	}

	result, err := calc.ComputePnL(in)
	if err != nil {
		return calcErrorResponse(c, err)
	}
	return SuccessResponse(c, result)
}

// TargetPrice solves for the exit price that hits a target ROE
// POST /api/calc/target-price
func (h *CalculatorHandler) TargetPrice(c echo.Context) error {
	var req dto.TargetPriceRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	in, missing := req.ToInput()
	if len(missing) > 0 {
		return ValidationFailedResponse(c, missing)
	}

	result, err := calc.TargetPrice(in)
	if err != nil {
		return calcErrorResponse(c, err)
	}
	return SuccessResponse(c, result)
}

// Liquidation estimates the forced-close price
// POST /api/calc/liquidation
func (h *CalculatorHandler) Liquidation(c echo.Context) error {
	var req dto.LiquidationRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	in, missing := req.ToInput()
	if len(missing) > 0 {
		return ValidationFailedResponse(c, missing)
	}

	result, err := calc.LiquidationPrice(in)
	if err != nil {
		return calcErrorResponse(c, err)
	}
	return SuccessResponse(c, result)
}

// MaxPosition computes the largest tradable size
// POST /api/calc/max-position
func (h *CalculatorHandler) MaxPosition(c echo.Context) error {
	var req dto.MaxPositionRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	in, missing := req.ToInput()
	if len(missing) > 0 {
		return ValidationFailedResponse(c, missing)
	}

	result, err := calc.MaxPosition(in)
	if err != nil {
		return calcErrorResponse(c, err)
	}
	return SuccessResponse(c, result)
}

// BreakEven computes the minimum return covering fees and funding
// POST /api/calc/break-even
func (h *CalculatorHandler) BreakEven(c echo.Context) error {
	var req dto.BreakEvenRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	in, missing := req.ToInput()
	if len(missing) > 0 {
		return ValidationFailedResponse(c, missing)
	}

	result, err := calc.BreakEvenRate(in)
	if err != nil {
		return calcErrorResponse(c, err)
	}
	return SuccessResponse(c, result)
}

// Kelly computes the optimal stake fraction in one of three modes
// POST /api/calc/kelly
func (h *CalculatorHandler) Kelly(c echo.Context) error {
	var req dto.KellyRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	adjustment, missing := req.Adjustment.ToAdjustment()

	var result calc.KellyResult
	var err error
	switch req.Mode {
	case dto.KellyModeBasic:
		missing = append(missing, requireFields(map[string]*float64{
			"win_rate":     req.WinRate,
			"payoff_ratio": req.PayoffRatio,
		})...)
		if len(missing) > 0 {
			return ValidationFailedResponse(c, missing)
		}
		result, err = calc.KellyBasic(calc.KellyBasicInput{
			WinRate:     *req.WinRate,
			PayoffRatio: *req.PayoffRatio,
		}, adjustment)
	case dto.KellyModeTrading:
		missing = append(missing, requireFields(map[string]*float64{
			"win_rate": req.WinRate,
			"avg_win":  req.AvgWin,
			"avg_loss": req.AvgLoss,
		})...)
		if len(missing) > 0 {
			return ValidationFailedResponse(c, missing)
		}
		result, err = calc.KellyTrading(calc.KellyTradingInput{
			WinRate: *req.WinRate,
			AvgWin:  *req.AvgWin,
			AvgLoss: *req.AvgLoss,
		}, adjustment)
	case dto.KellyModeHistorical:
		if len(missing) > 0 {
			return ValidationFailedResponse(c, missing)
		}
		result, err = calc.KellyHistorical(req.ToTrades(), adjustment)
	default:
		return BadRequestResponse(c, "mode must be BASIC, TRADING or HISTORICAL")
	}

	if err != nil {
		return calcErrorResponse(c, err)
	}
	return SuccessResponse(c, result)
}

// Pyramid generates a scale-in plan
// POST /api/calc/pyramid
func (h *CalculatorHandler) Pyramid(c echo.Context) error {
	var req dto.PyramidRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	params, missing := req.ToParams()
	if len(missing) > 0 {
		return ValidationFailedResponse(c, missing)
	}

	result, err := calc.PlanPyramid(params)
	if err != nil {
		return calcErrorResponse(c, err)
	}
	return SuccessResponse(c, result)
}

// requireFields reports which of the named fields are absent, in a stable
// order
func requireFields(fields map[string]*float64) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	// Deterministic order keeps responses stable for clients and tests
	sort.Strings(names)

	var missing []string
	for _, name := range names {
		if fields[name] == nil {
			missing = append(missing, name+" is required")
		}
	}
	return missing
}
