package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postCalc(t *testing.T, handler echo.HandlerFunc, body string) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, handler(e.NewContext(req, rec)))

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestCalculatorHandlerPnL(t *testing.T) {
	h := NewCalculatorHandler()

	rec, resp := postCalc(t, h.PnL, `{
		"side": "LONG",
		"leverage": 20,
		"entry_price": 50000,
		"quantity": 1,
		"exit_price": 55000
	}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", resp.Status)

	data := resp.Data.(map[string]interface{})
	assert.InDelta(t, 5000, data["pnl"].(float64), 1e-9)
	assert.InDelta(t, 200, data["roe"].(float64), 1e-9)
}

func TestCalculatorHandlerMissingFields(t *testing.T) {
	h := NewCalculatorHandler()

	rec, resp := postCalc(t, h.PnL, `{"side": "LONG"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "Validation failed", resp.Message)

	messages := resp.Error.([]interface{})
	assert.Len(t, messages, 4)
	assert.Contains(t, messages, "leverage is required")
}

func TestCalculatorHandlerEngineValidation(t *testing.T) {
	h := NewCalculatorHandler()

	rec, resp := postCalc(t, h.Pyramid, `{
		"side": "LONG",
		"leverage": 10,
		"initial_price": 50000,
		"initial_quantity": 1,
		"layers": 1,
		"strategy": "GEOMETRIC",
		"price_change_percent": 60
	}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	messages := resp.Error.([]interface{})
	assert.Len(t, messages, 2)
}

func TestCalculatorHandlerEntryPrice(t *testing.T) {
	h := NewCalculatorHandler()

	rec, resp := postCalc(t, h.EntryPrice, `{
		"fills": [
			{"price": 48000, "quantity": 1},
			{"price": 52000, "quantity": 1}
		]
	}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	data := resp.Data.(map[string]interface{})
	assert.InDelta(t, 50000, data["average_entry_price"].(float64), 1e-9)
}

func TestCalculatorHandlerKellyModes(t *testing.T) {
	h := NewCalculatorHandler()

	t.Run("basic", func(t *testing.T) {
		rec, resp := postCalc(t, h.Kelly, `{
			"mode": "BASIC",
			"win_rate": 0.6,
			"payoff_ratio": 2,
			"adjustment": {
				"fractional_factor": 0.5,
				"max_position": 0.25,
				"risk_tolerance": "AGGRESSIVE"
			}
		}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		data := resp.Data.(map[string]interface{})
		assert.InDelta(t, 0.4, data["kelly_fraction"].(float64), 1e-9)
	})

	t.Run("historical with winners only", func(t *testing.T) {
		rec, resp := postCalc(t, h.Kelly, `{
			"mode": "HISTORICAL",
			"trades": [
				{"id": "", "profit": 100, "enabled": true},
				{"id": "", "profit": 300, "enabled": true}
			],
			"adjustment": {
				"fractional_factor": 0.5,
				"max_position": 0.25,
				"risk_tolerance": "AGGRESSIVE"
			}
		}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "success", resp.Status)

		// the infinite profit factor surfaces as null, not an encoder failure
		stats := resp.Data.(map[string]interface{})["stats"].(map[string]interface{})
		assert.Nil(t, stats["profit_factor"])
	})

	t.Run("historical with empty log", func(t *testing.T) {
		rec, resp := postCalc(t, h.Kelly, `{
			"mode": "HISTORICAL",
			"trades": [],
			"adjustment": {
				"fractional_factor": 0.5,
				"max_position": 0.25,
				"risk_tolerance": "MODERATE"
			}
		}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Validation failed", resp.Message)
	})

	t.Run("unknown mode", func(t *testing.T) {
		rec, _ := postCalc(t, h.Kelly, `{"mode": "MAGIC"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCalculatorHandlerMalformedJSON(t *testing.T) {
	h := NewCalculatorHandler()
	rec, resp := postCalc(t, h.BreakEven, `{"leverage": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request payload", resp.Message)
}
