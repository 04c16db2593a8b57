package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"levercalc/configs"
	"levercalc/internal/database"
	delivery "levercalc/internal/delivery/http"
	"levercalc/internal/infra"
	"levercalc/internal/repository"
	"levercalc/internal/service"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Load configuration
	cfg := configs.Load()

	// Initialize context
	ctx := context.Background()

	// Initialize database
	db, err := infra.NewDatabase(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	historyRepo := repository.NewHistoryRepository(db)

	// Initialize market data service and its refresh scheduler
	fundingService := service.NewFundingService(cfg.Market.BinanceFuturesURL)
	scheduler := infra.NewScheduler(fundingService, cfg.Market.Symbols, cfg.Market.RefreshSchedule)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start funding refresh scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Initialize API
	e := echo.New()
	e.HideBanner = true
	delivery.SetupRoutes(e, &delivery.RouterConfig{
		AuthHandler:       delivery.NewAuthHandler(userRepo),
		CalculatorHandler: delivery.NewCalculatorHandler(),
		HistoryHandler:    delivery.NewHistoryHandler(historyRepo),
		MarketHandler:     delivery.NewMarketHandler(fundingService),
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Levercalc API starting on %s", addr)
	log.Printf("Environment: %s", cfg.Server.Env)
	log.Printf("Tracked symbols: %v", cfg.Market.Symbols)

	srv := &http.Server{
		Addr:         addr,
		Handler:      e,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Run API server in goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Internal ops endpoints on a separate listener
	opsSrv := newOpsServer(db)
	go func() {
		if err := opsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("ERROR: Ops server stopped: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := opsSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: Ops server forced to shutdown: %v", err)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("[OK] Server exited gracefully")
}

// newOpsServer builds the internal ops listener with liveness and readiness
// endpoints
func newOpsServer(db interface{ Ping(context.Context) error }) *http.Server {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Timeout(10 * time.Second))

	r.Get("/", handleRoot)
	r.Get("/health", handleHealth(db))

	opsPort := os.Getenv("OPS_PORT")
	if opsPort == "" {
		opsPort = "8081"
	}

	return &http.Server{
		Addr:         ":" + opsPort,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

func handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{
		"service": "levercalc",
		"endpoints": {
			"health": "GET /health",
			"api": "POST /api/calc/*"
		}
	}`))
}

func handleHealth(db interface{ Ping(context.Context) error }) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Check database
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "healthy"
		if err := db.Ping(ctx); err != nil {
			dbStatus = "unhealthy"
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(fmt.Sprintf(`{
			"status": "healthy",
			"service": "levercalc",
			"database": "%s",
			"timestamp": "%s"
		}`, dbStatus, time.Now().Format(time.RFC3339))))
	}
}
