package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	custommiddleware "levercalc/internal/middleware"
)

// RouterConfig holds all dependencies for routing
type RouterConfig struct {
	AuthHandler       *AuthHandler
	CalculatorHandler *CalculatorHandler
	HistoryHandler    *HistoryHandler
	MarketHandler     *MarketHandler
}

// SetupRoutes configures all HTTP routes
func SetupRoutes(e *echo.Echo, config *RouterConfig) {
	// Middleware
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			// Funding prefill is polled by the UI; keep it out of the log
			return c.Request().URL.Path == "/health" ||
				c.Path() == "/api/market/funding/:symbol"
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return SuccessResponse(c, map[string]interface{}{
			"status":  "healthy",
			"service": "levercalc-api",
		})
	})

	// API group
	api := e.Group("/api")

	// Calculators (public, stateless)
	calcGroup := api.Group("/calc")
	{
		calcGroup.POST("/entry-price", config.CalculatorHandler.EntryPrice)
		calcGroup.POST("/pnl", config.CalculatorHandler.PnL)
		calcGroup.POST("/target-price", config.CalculatorHandler.TargetPrice)
		calcGroup.POST("/liquidation", config.CalculatorHandler.Liquidation)
		calcGroup.POST("/max-position", config.CalculatorHandler.MaxPosition)
		calcGroup.POST("/break-even", config.CalculatorHandler.BreakEven)
		calcGroup.POST("/kelly", config.CalculatorHandler.Kelly)
		calcGroup.POST("/pyramid", config.CalculatorHandler.Pyramid)
	}

	// Market data (public)
	api.GET("/market/funding/:symbol", config.MarketHandler.Funding)

	// Auth routes (public)
	auth := api.Group("/auth")
	{
		auth.POST("/login", config.AuthHandler.Login)
		auth.POST("/logout", config.AuthHandler.Logout)
		auth.POST("/register", config.AuthHandler.Register)
	}

	// Saved-calculation history (protected with AuthMiddleware)
	history := api.Group("/history", custommiddleware.AuthMiddleware)
	{
		history.POST("", config.HistoryHandler.Save)
		history.GET("", config.HistoryHandler.List)
		history.DELETE("/:id", config.HistoryHandler.Delete)
	}
}
