package domain

import (
	"context"
	"time"
)

// FundingInfo is a snapshot of a perpetual contract's funding state. The
// calculators treat these as opaque numbers; provenance stays out of the
// engine.
type FundingInfo struct {
	Symbol          string    `json:"symbol"`
	MarkPrice       float64   `json:"mark_price"`
	FundingRate     float64   `json:"funding_rate"` // percent per funding period
	NextFundingTime time.Time `json:"next_funding_time"`
	FetchedAt       time.Time `json:"fetched_at"`
}

// MarketDataService defines the interface for fetching funding data
type MarketDataService interface {
	// GetFunding returns the funding snapshot for a symbol, from cache when
	// fresh enough
	GetFunding(ctx context.Context, symbol string) (*FundingInfo, error)

	// RefreshAll re-fetches the given symbols and warms the cache
	RefreshAll(ctx context.Context, symbols []string) error
}
