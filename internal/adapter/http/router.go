package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/warungpos/inventory/internal/adapter/http/handler"
	"github.com/warungpos/inventory/internal/adapter/http/middleware"
	"github.com/warungpos/inventory/internal/infrastructure/metrics"
	"github.com/warungpos/inventory/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	TransferHandler      *handler.TransferHandler
	AdjustmentHandler    *handler.AdjustmentHandler
	WasteHandler         *handler.WasteHandler
	PurchaseOrderHandler *handler.PurchaseOrderHandler
	OrderHandler         *handler.OrderHandler
	StockHandler         *handler.StockHandler
	HealthHandler        *handler.HealthHandler

	Logger  zerolog.Logger
	Metrics *metrics.Metrics

	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration

	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)

	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}

	if cfg.RateLimitRPS > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.Metrics)
		r.Use(limiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Stock transfers between branches
		r.Route("/transfers", func(r chi.Router) {
			r.Post("/", cfg.TransferHandler.Create)
			r.Get("/", cfg.TransferHandler.List)
			r.Get("/{id}", cfg.TransferHandler.Get)
			r.Post("/{id}/ship", cfg.TransferHandler.Ship)
			r.Post("/{id}/receive", cfg.TransferHandler.Receive)
		})

		// Stock opname adjustments
		r.Route("/adjustments", func(r chi.Router) {
			r.Post("/", cfg.AdjustmentHandler.Create)
			r.Get("/", cfg.AdjustmentHandler.List)
			r.Get("/{id}", cfg.AdjustmentHandler.Get)
			r.Put("/{id}", cfg.AdjustmentHandler.Update)
			r.Post("/{id}/finalize", cfg.AdjustmentHandler.Finalize)
		})

		// Waste records
		r.Route("/wastes", func(r chi.Router) {
			r.Post("/", cfg.WasteHandler.Create)
			r.Get("/", cfg.WasteHandler.List)
			r.Get("/{id}", cfg.WasteHandler.Get)
		})

		// Purchase orders
		r.Route("/purchase-orders", func(r chi.Router) {
			r.Post("/", cfg.PurchaseOrderHandler.Create)
			r.Get("/", cfg.PurchaseOrderHandler.List)
			r.Get("/{id}", cfg.PurchaseOrderHandler.Get)
			r.Put("/{id}", cfg.PurchaseOrderHandler.Update)
			r.Delete("/{id}", cfg.PurchaseOrderHandler.Delete)
			r.Post("/{id}/approve", cfg.PurchaseOrderHandler.Approve)
			r.Post("/{id}/receive", cfg.PurchaseOrderHandler.Receive)
		})

		// Sales orders
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", cfg.OrderHandler.Create)
			r.Get("/", cfg.OrderHandler.List)
			r.Get("/{id}", cfg.OrderHandler.Get)
			r.Post("/{id}/pay", cfg.OrderHandler.Pay)
			r.Post("/{id}/cancel", cfg.OrderHandler.Cancel)
		})

		// Stock views and reports
		r.Route("/stocks", func(r chi.Router) {
			r.Get("/{branchID}", cfg.StockHandler.ListByBranch)
			r.Get("/{branchID}/{ingredientID}", cfg.StockHandler.GetQuantity)
		})
		r.Get("/reports/inventory/{branchID}", cfg.StockHandler.Valuation)
	})

	return r
}
