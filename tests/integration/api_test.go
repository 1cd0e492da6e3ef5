package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	adapterhttp "github.com/warungpos/inventory/internal/adapter/http"
	"github.com/warungpos/inventory/internal/adapter/http/handler"
	redisrepo "github.com/warungpos/inventory/internal/adapter/repository/redis"
	"github.com/warungpos/inventory/tests/testutil"
)

func TestAPIIdempotentPurchaseOrderCreation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	s := newStack(t, testDB.Pool, true)

	mr := miniredis.RunT(t)
	redisClient := redislib.NewClient(&redislib.Options{Addr: mr.Addr()})
	defer redisClient.Close()

	router := adapterhttp.NewRouter(adapterhttp.RouterConfig{
		TransferHandler:      handler.NewTransferHandler(s.TransferUC),
		AdjustmentHandler:    handler.NewAdjustmentHandler(s.AdjustmentUC),
		WasteHandler:         handler.NewWasteHandler(s.WasteUC),
		PurchaseOrderHandler: handler.NewPurchaseOrderHandler(s.PurchaseUC),
		OrderHandler:         handler.NewOrderHandler(s.OrderUC),
		StockHandler:         handler.NewStockHandler(newReportUseCase(s, redisClient)),
		HealthHandler:        handler.NewHealthHandler(testDB.Pool, redisClient),
		Logger:               zerolog.Nop(),
		IdempotencyStore:     redisrepo.NewIdempotencyStore(redisClient),
	})

	server := httptest.NewServer(router)
	defer server.Close()

	flour := testDB.SeedIngredient(ctx, "Flour", "kg", decimal.NewFromInt(12000))

	payload, err := json.Marshal(map[string]any{
		"supplier_id": "sup-1",
		"branch_id":   "br-central",
		"items": []map[string]any{
			{"ingredient_id": flour, "quantity": "25", "unit_price": "12000"},
		},
	})
	require.NoError(t, err)

	post := func() *http.Response {
		req, err := http.NewRequest(http.MethodPost, server.URL+"/api/v1/purchase-orders", bytes.NewReader(payload))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Idempotency-Key", "po-create-1")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		return resp
	}

	first := post()
	defer first.Body.Close()
	require.Equal(t, http.StatusCreated, first.StatusCode)

	var firstPO struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(first.Body).Decode(&firstPO))
	require.NotEmpty(t, firstPO.ID)

	// Same key replays the stored response instead of creating a second
	// purchase order.
	second := post()
	defer second.Body.Close()
	require.Equal(t, "true", second.Header.Get("X-Idempotency-Replay"))

	var secondPO struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(second.Body).Decode(&secondPO))
	require.Equal(t, firstPO.ID, secondPO.ID)

	orders, err := s.PurchaseUC.ListPurchaseOrders(ctx, "br-central", 10, 0)
	require.NoError(t, err)
	require.Len(t, orders, 1)
}
