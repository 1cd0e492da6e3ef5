package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/warungpos/inventory/internal/adapter/http/handler"
	apimiddleware "github.com/warungpos/inventory/internal/adapter/http/middleware"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_MetricsEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /metrics to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimitRPS = 1
		cfg.RateLimitBurst = 1
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{cached: []byte(`{"replayed":true}`)}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	body := `{"from_branch_id":"br-1","to_branch_id":"br-2","items":[]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transfers/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatalf("expected idempotency store to be used")
	}

	if rec.Header().Get("X-Idempotency-Replay") != "true" {
		t.Fatalf("expected the cached response to be replayed")
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /api/v1/transfers/",
		"POST /api/v1/transfers/{id}/ship",
		"POST /api/v1/transfers/{id}/receive",
		"POST /api/v1/adjustments/",
		"PUT /api/v1/adjustments/{id}",
		"POST /api/v1/adjustments/{id}/finalize",
		"POST /api/v1/wastes/",
		"POST /api/v1/purchase-orders/",
		"POST /api/v1/purchase-orders/{id}/receive",
		"DELETE /api/v1/purchase-orders/{id}",
		"POST /api/v1/orders/",
		"POST /api/v1/orders/{id}/pay",
		"POST /api/v1/orders/{id}/cancel",
		"GET /api/v1/stocks/{branchID}",
		"GET /api/v1/stocks/{branchID}/{ingredientID}",
		"GET /api/v1/reports/inventory/{branchID}",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

// newRouterConfig builds a config whose handlers are never actually invoked
// by these tests, so nil use cases are fine.
func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	cfg := RouterConfig{
		TransferHandler:      handler.NewTransferHandler(nil),
		AdjustmentHandler:    handler.NewAdjustmentHandler(nil),
		WasteHandler:         handler.NewWasteHandler(nil),
		PurchaseOrderHandler: handler.NewPurchaseOrderHandler(nil),
		OrderHandler:         handler.NewOrderHandler(nil),
		StockHandler:         handler.NewStockHandler(nil),
		HealthHandler:        &handler.HealthHandler{},
		Logger:               zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubIdempotencyStore struct {
	checkCalled bool
	cached      []byte
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return true, s.cached, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}

func (s *stubIdempotencyStore) Release(ctx context.Context, key string) error {
	return nil
}
