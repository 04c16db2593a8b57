package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"levercalc/internal/domain"
)

// fundingCacheTTL is how long a snapshot is served before re-fetching
const fundingCacheTTL = 60 * time.Second

// FundingService fetches funding rates and mark prices from Binance futures
type FundingService struct {
	httpClient *http.Client
	baseURL    string

	mu    sync.RWMutex
	cache map[string]*domain.FundingInfo
}

// NewFundingService creates a new FundingService. baseURL defaults to the
// Binance futures API when empty.
func NewFundingService(baseURL string) *FundingService {
	if baseURL == "" {
		baseURL = "https://fapi.binance.com"
	}
	return &FundingService{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
		cache:   make(map[string]*domain.FundingInfo),
	}
}

// premiumIndexResponse mirrors the Binance premiumIndex payload
type premiumIndexResponse struct {
	Symbol          string `json:"symbol"`
	MarkPrice       string `json:"markPrice"`
	LastFundingRate string `json:"lastFundingRate"`
	NextFundingTime int64  `json:"nextFundingTime"`
}

// GetFunding returns the funding snapshot for a symbol, served from cache
// while fresh
func (s *FundingService) GetFunding(ctx context.Context, symbol string) (*domain.FundingInfo, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}

	s.mu.RLock()
	cached, ok := s.cache[symbol]
	s.mu.RUnlock()
	if ok && time.Since(cached.FetchedAt) < fundingCacheTTL {
		return cached, nil
	}

	info, err := s.fetchFunding(ctx, symbol)
	if err != nil {
		// Serve a stale snapshot over failing the caller outright
		if ok {
			log.Printf("[ERROR] Funding fetch failed for %s, serving stale cache: %v", symbol, err)
			return cached, nil
		}
		return nil, err
	}

	s.mu.Lock()
	s.cache[symbol] = info
	s.mu.Unlock()
	return info, nil
}

// RefreshAll re-fetches the given symbols and warms the cache
func (s *FundingService) RefreshAll(ctx context.Context, symbols []string) error {
	var failed []string
	for _, symbol := range symbols {
		info, err := s.fetchFunding(ctx, strings.ToUpper(symbol))
		if err != nil {
			log.Printf("[ERROR] Failed to refresh funding for %s: %v", symbol, err)
			failed = append(failed, symbol)
			continue
		}
		s.mu.Lock()
		s.cache[info.Symbol] = info
		s.mu.Unlock()
	}

	if len(failed) > 0 {
		return fmt.Errorf("failed to refresh funding for: %s", strings.Join(failed, ", "))
	}
	return nil
}

// fetchFunding calls the Binance futures premiumIndex endpoint
func (s *FundingService) fetchFunding(ctx context.Context, symbol string) (*domain.FundingInfo, error) {
	url := fmt.Sprintf("%s/fapi/v1/premiumIndex?symbol=%s", s.baseURL, symbol)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch funding from Binance: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("Binance API error: status=%d, body=%s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var payload premiumIndexResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	markPrice, err := strconv.ParseFloat(payload.MarkPrice, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mark price %q: %w", payload.MarkPrice, err)
	}
	fundingRate, err := strconv.ParseFloat(payload.LastFundingRate, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse funding rate %q: %w", payload.LastFundingRate, err)
	}

	return &domain.FundingInfo{
		Symbol:    payload.Symbol,
		MarkPrice: markPrice,
		// Binance reports the rate as a fraction per period; the calculators
		// work in percent
		FundingRate:     fundingRate * 100,
		NextFundingTime: time.UnixMilli(payload.NextFundingTime).UTC(),
		FetchedAt:       time.Now().UTC(),
	}, nil
}
