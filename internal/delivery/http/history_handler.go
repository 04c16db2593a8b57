package http

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"levercalc/internal/delivery/http/dto"
	"levercalc/internal/domain"
	"levercalc/internal/middleware"
)

// defaultHistoryLimit caps unqualified history listings
const defaultHistoryLimit = 50

// HistoryHandler handles saved-calculation requests
type HistoryHandler struct {
	historyRepo domain.HistoryRepository
}

// NewHistoryHandler creates a new HistoryHandler
func NewHistoryHandler(historyRepo domain.HistoryRepository) *HistoryHandler {
	return &HistoryHandler{
		historyRepo: historyRepo,
	}
}

// Save stores a finished calculation in the user's history
// POST /api/history
func (h *HistoryHandler) Save(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	var req dto.SaveCalculationRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	if !domain.ValidCalculator(req.Calculator) {
		return BadRequestResponse(c, "Unknown calculator: "+req.Calculator)
	}
	if len(req.Params) == 0 || len(req.Result) == 0 {
		return BadRequestResponse(c, "params and result are required")
	}

	record := &domain.CalculationRecord{
		ID:         uuid.New(),
		UserID:     userID,
		Calculator: req.Calculator,
		Params:     req.Params,
		Result:     req.Result,
		CreatedAt:  time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.historyRepo.Save(ctx, record); err != nil {
		return InternalServerErrorResponse(c, "Failed to save calculation", err)
	}

	return CreatedResponse(c, toCalculationOutput(record))
}

// List returns the user's saved calculations, newest first
// GET /api/history?calculator=PNL&limit=20
func (h *HistoryHandler) List(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	calculator := c.QueryParam("calculator")
	if calculator != "" && !domain.ValidCalculator(calculator) {
		return BadRequestResponse(c, "Unknown calculator: "+calculator)
	}

	limit := defaultHistoryLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return BadRequestResponse(c, "limit must be a positive integer")
		}
		limit = parsed
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	records, err := h.historyRepo.GetByUserID(ctx, userID, calculator, limit)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to load history", err)
	}

	outputs := make([]dto.CalculationOutput, 0, len(records))
	for _, record := range records {
		outputs = append(outputs, toCalculationOutput(record))
	}
	return SuccessResponse(c, outputs)
}

// Delete removes one saved calculation owned by the user
// DELETE /api/history/:id
func (h *HistoryHandler) Delete(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid calculation ID")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.historyRepo.Delete(ctx, id, userID); err != nil {
		return NotFoundResponse(c, "Calculation not found")
	}

	return SuccessMessageResponse(c, "Calculation deleted", nil)
}

func toCalculationOutput(record *domain.CalculationRecord) dto.CalculationOutput {
	return dto.CalculationOutput{
		ID:         record.ID.String(),
		Calculator: record.Calculator,
		Params:     record.Params,
		Result:     record.Result,
		CreatedAt:  record.CreatedAt.Format(time.RFC3339),
	}
}
