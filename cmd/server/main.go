package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/kmurithi/ministore/internal/catalog"
	"github.com/kmurithi/ministore/internal/config"
	"github.com/kmurithi/ministore/internal/currency"
	"github.com/kmurithi/ministore/internal/handlers"
	"github.com/kmurithi/ministore/internal/ledger"
	"github.com/kmurithi/ministore/internal/middleware"
	"github.com/kmurithi/ministore/internal/models"
	"github.com/kmurithi/ministore/internal/store"
	"github.com/kmurithi/ministore/internal/tray"
	"github.com/kmurithi/ministore/internal/wal"
	"github.com/kmurithi/ministore/pkg/logger"
)

// demoProducts seeds the in-memory store when no external store is configured.
var demoProducts = []models.Product{
	{ID: "1", Name: "Milk 500ml", Price: 65, Capacity: 40, Available: 28, Sold: 12, Category: "Dairy"},
	{ID: "2", Name: "White Bread", Price: 70, Capacity: 30, Available: 4, Sold: 26, Category: "Bakery"},
	{ID: "3", Name: "Sugar 1kg", Price: 150, Capacity: 25, Available: 18, Sold: 7, Category: "Pantry"},
	{ID: "4", Name: "Cooking Oil 1L", Price: 320, Capacity: 20, Available: 9, Sold: 11, Category: "Pantry"},
	{ID: "5", Name: "Rice 2kg", Price: 280, Capacity: 15, Available: 0, Sold: 15, Category: "Pantry"},
	{ID: "6", Name: "Tea Leaves 250g", Price: 120, Capacity: 35, Available: 22, Sold: 13, Category: "Beverages"},
}

func main() {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting ministore server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"base_currency", cfg.Ledger.BaseCurrency,
		"log_level", cfg.LogLevel,
	)

	// External collaborators: the JSON store and the exchange-rate service.
	var st store.Store
	if cfg.Store.URL != "" {
		st = store.NewClient(cfg.Store.URL, &http.Client{
			Timeout: time.Duration(cfg.Store.Timeout) * time.Second,
		})
		log.Info("using external store", "url", cfg.Store.URL)
	} else {
		st = store.NewMemory(demoProducts)
		log.Info("no store configured, using seeded in-memory store")
	}

	rateSource := currency.NewHTTPRateSource(cfg.Rates.URL, &http.Client{
		Timeout: time.Duration(cfg.Rates.Timeout) * time.Second,
	})
	converter := currency.NewConverter(rateSource, cfg.Rates.TableBase)

	// Local write-ahead record for the non-atomic commit sequence.
	var intents *wal.Log
	if cfg.Ledger.IntentLogPath != "" {
		intents, err = wal.Open(cfg.Ledger.IntentLogPath)
		if err != nil {
			log.Error("failed to open intent log", "path", cfg.Ledger.IntentLogPath, "error", err)
			os.Exit(1)
		}
	}

	// Core state
	cat := catalog.New(nil)
	tr := tray.New()
	led := ledger.New(cat, tr, converter, st, intents, cfg.Ledger.BaseCurrency, log)

	ctx := context.Background()
	if err := led.Load(ctx); err != nil {
		log.Error("failed to load ledger data", "error", err)
		os.Exit(1)
	}

	// Retry purchase commits a previous run left half-applied.
	if applied, err := led.Reconcile(ctx); err != nil {
		log.Warn("intent reconciliation incomplete", "error", err)
	} else if applied > 0 {
		log.Info("reconciled pending purchase intents", "applied", applied)
	}

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(log)
	productHandler := handlers.NewProductHandler(cat, log)
	trayHandler := handlers.NewTrayHandler(cat, tr, log)
	orderHandler := handlers.NewOrderHandler(led, log)
	expenseHandler := handlers.NewExpenseHandler(led, log)
	reportHandler := handlers.NewReportHandler(led, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/products", productHandler.ListProducts)
		r.Get("/products/{productId}", productHandler.GetProduct)

		r.Get("/tray", trayHandler.GetTray)
		r.Post("/tray/items", trayHandler.AddItem)
		r.Delete("/tray/items/{index}", trayHandler.RemoveItem)

		r.Post("/checkout", orderHandler.Checkout)
		r.Get("/orders", orderHandler.ListOrders)

		r.Get("/expenses", expenseHandler.ListExpenses)
		r.Post("/expenses", expenseHandler.CreateExpense)
		r.Put("/expenses/{expenseId}", expenseHandler.UpdateExpense)
		r.Delete("/expenses/{expenseId}", expenseHandler.DeleteExpense)

		r.Get("/reports/summary", reportHandler.Summary)
		r.Get("/reports/expenses-by-category", reportHandler.ExpensesByCategory)
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
