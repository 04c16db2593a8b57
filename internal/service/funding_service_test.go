package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPremiumIndexServer(t *testing.T, hits *int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(hits, 1)
		require.Equal(t, "/fapi/v1/premiumIndex", r.URL.Path)

		symbol := r.URL.Query().Get("symbol")
		fmt.Fprintf(w, `{"symbol":%q,"markPrice":"65432.10","lastFundingRate":"0.00010000","nextFundingTime":1741593600000}`, symbol)
	}))
}

func TestFundingServiceGetFunding(t *testing.T) {
	var hits int64
	server := newPremiumIndexServer(t, &hits)
	defer server.Close()

	svc := NewFundingService(server.URL)
	info, err := svc.GetFunding(context.Background(), "btcusdt")
	require.NoError(t, err)

	assert.Equal(t, "BTCUSDT", info.Symbol)
	assert.InDelta(t, 65432.10, info.MarkPrice, 1e-9)
	// Binance fraction 0.0001 surfaces as 0.01 percent
	assert.InDelta(t, 0.01, info.FundingRate, 1e-9)
	assert.False(t, info.NextFundingTime.IsZero())

	// second call within the TTL is served from cache
	_, err = svc.GetFunding(context.Background(), "BTCUSDT")
	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt64(&hits))
}

func TestFundingServiceRejectsEmptySymbol(t *testing.T) {
	svc := NewFundingService("http://unused.invalid")
	_, err := svc.GetFunding(context.Background(), "   ")
	require.Error(t, err)
}

func TestFundingServiceServesStaleOnFetchFailure(t *testing.T) {
	var hits int64
	var fail atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		if fail.Load() {
			http.Error(w, "down", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"symbol":"ETHUSDT","markPrice":"3000.5","lastFundingRate":"-0.00005","nextFundingTime":1741593600000}`)
	}))
	defer server.Close()

	svc := NewFundingService(server.URL)
	info, err := svc.GetFunding(context.Background(), "ETHUSDT")
	require.NoError(t, err)
	assert.InDelta(t, -0.005, info.FundingRate, 1e-9)

	// force the cached entry to be treated as expired, then break the upstream
	svc.mu.Lock()
	svc.cache["ETHUSDT"].FetchedAt = svc.cache["ETHUSDT"].FetchedAt.Add(-2 * fundingCacheTTL)
	svc.mu.Unlock()
	fail.Store(true)

	stale, err := svc.GetFunding(context.Background(), "ETHUSDT")
	require.NoError(t, err)
	assert.InDelta(t, 3000.5, stale.MarkPrice, 1e-9)
}

func TestFundingServiceRefreshAll(t *testing.T) {
	var hits int64
	server := newPremiumIndexServer(t, &hits)
	defer server.Close()

	svc := NewFundingService(server.URL)
	err := svc.RefreshAll(context.Background(), []string{"BTCUSDT", "ETHUSDT"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt64(&hits))

	// warmed entries are served without another upstream call
	_, err = svc.GetFunding(context.Background(), "ETHUSDT")
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt64(&hits))
}
