package configs

import (
	"os"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Market   MarketConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL string
}

// MarketConfig holds market-data configuration
type MarketConfig struct {
	// BinanceFuturesURL is the base URL for funding-rate lookups
	BinanceFuturesURL string
	// Symbols are kept warm by the refresh scheduler
	Symbols []string
	// RefreshSchedule is a cron expression for the funding refresh
	RefreshSchedule string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("GO_ENV", "development"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Market: MarketConfig{
			BinanceFuturesURL: getEnv("BINANCE_FUTURES_URL", "https://fapi.binance.com"),
			Symbols:           splitList(getEnv("FUNDING_SYMBOLS", "BTCUSDT,ETHUSDT")),
			RefreshSchedule:   getEnv("FUNDING_REFRESH_SCHEDULE", "*/5 * * * *"),
		},
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// splitList parses a comma-separated list, dropping empty entries
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
