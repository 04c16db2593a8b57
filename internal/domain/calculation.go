package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Calculator name constants identifying which calculator produced a record
const (
	CalcEntryPrice  = "ENTRY_PRICE"
	CalcPnL         = "PNL"
	CalcTargetPrice = "TARGET_PRICE"
	CalcLiquidation = "LIQUIDATION"
	CalcMaxPosition = "MAX_POSITION"
	CalcBreakEven   = "BREAK_EVEN"
	CalcKelly       = "KELLY"
	CalcPyramid     = "PYRAMID"
)

// knownCalculators holds all valid calculator names
var knownCalculators = map[string]bool{
	CalcEntryPrice:  true,
	CalcPnL:         true,
	CalcTargetPrice: true,
	CalcLiquidation: true,
	CalcMaxPosition: true,
	CalcBreakEven:   true,
	CalcKelly:       true,
	CalcPyramid:     true,
}

// ValidCalculator reports whether name is a known calculator
func ValidCalculator(name string) bool {
	return knownCalculators[name]
}

// CalculationRecord is a saved calculation: the calculator used, the exact
// inputs, and the result produced. Inputs and results are stored verbatim as
// JSON so a record replays without re-deriving anything.
type CalculationRecord struct {
	ID         uuid.UUID       `json:"id"`
	UserID     uuid.UUID       `json:"user_id"`
	Calculator string          `json:"calculator"`
	Params     json.RawMessage `json:"params"`
	Result     json.RawMessage `json:"result"`
	CreatedAt  time.Time       `json:"created_at"`
}
