package dto

import "encoding/json"

// SaveCalculationRequest stores a finished calculation in the user's history
type SaveCalculationRequest struct {
	Calculator string          `json:"calculator"`
	Params     json.RawMessage `json:"params"`
	Result     json.RawMessage `json:"result"`
}

// CalculationOutput represents a saved calculation in API responses
type CalculationOutput struct {
	ID         string          `json:"id"`
	Calculator string          `json:"calculator"`
	Params     json.RawMessage `json:"params"`
	Result     json.RawMessage `json:"result"`
	CreatedAt  string          `json:"created_at"`
}
