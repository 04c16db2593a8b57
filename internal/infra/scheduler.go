package infra

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"levercalc/internal/domain"
)

// refreshTimeout bounds one full refresh pass
const refreshTimeout = 30 * time.Second

// Scheduler keeps the funding-rate cache warm for the tracked symbols
type Scheduler struct {
	cron       *cron.Cron
	marketData domain.MarketDataService
	symbols    []string
	schedule   string
}

// NewScheduler creates a new scheduler. schedule is a cron expression;
// "*/5 * * * *" (every 5 minutes) when empty.
func NewScheduler(marketData domain.MarketDataService, symbols []string, schedule string) *Scheduler {
	if schedule == "" {
		schedule = "*/5 * * * *"
	}
	return &Scheduler{
		cron:       cron.New(),
		marketData: marketData,
		symbols:    symbols,
		schedule:   schedule,
	}
}

// Start begins the periodic refresh and warms the cache once immediately
func (s *Scheduler) Start() error {
	if len(s.symbols) == 0 {
		log.Println("[INFO] No symbols configured, funding refresh disabled")
		return nil
	}

	log.Printf("Starting funding refresh scheduler... [%s] %v", s.schedule, s.symbols)

	_, err := s.cron.AddFunc(s.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		if err := s.marketData.RefreshAll(ctx, s.symbols); err != nil {
			log.Printf("ERROR: Scheduled funding refresh failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	// First fetch up front so the cache is warm before the first tick
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		if err := s.marketData.RefreshAll(ctx, s.symbols); err != nil {
			log.Printf("ERROR: Initial funding refresh failed: %v", err)
		}
	}()

	s.cron.Start()
	log.Println("[OK] Funding refresh scheduler started")
	return nil
}

// Stop stops the scheduler gracefully
func (s *Scheduler) Stop() {
	log.Println("Stopping scheduler...")
	s.cron.Stop()
	log.Println("[OK] Scheduler stopped")
}
