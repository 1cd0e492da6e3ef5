package integration

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/warungpos/inventory/internal/domain"
	"github.com/warungpos/inventory/internal/usecase"
	"github.com/warungpos/inventory/tests/testutil"
)

func TestOrderPaymentDeductsRecipesOnce(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	s := newStack(t, testDB.Pool, true)

	rice := testDB.SeedIngredient(ctx, "Rice", "g", decimal.NewFromFloat(0.02))
	oil := testDB.SeedIngredient(ctx, "Oil", "ml", decimal.NewFromFloat(0.03))
	nasiGoreng := testDB.SeedProduct(ctx, "Nasi Goreng", decimal.NewFromInt(25000))
	testDB.SeedRecipe(ctx, nasiGoreng, rice, decimal.NewFromInt(180))
	testDB.SeedRecipe(ctx, nasiGoreng, oil, decimal.NewFromInt(15))
	testDB.SeedStock(ctx, "br-central", rice, decimal.NewFromInt(1000))
	testDB.SeedStock(ctx, "br-central", oil, decimal.NewFromInt(100))

	order, err := s.OrderUC.CreateOrder(ctx, usecase.CreateOrderInput{
		BranchID: "br-central",
		Type:     domain.OrderTypeDineIn,
		Items: []usecase.OrderItemInput{
			{ProductID: nasiGoreng, Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("failed to create order: %v", err)
	}
	if !order.TotalAmount.Equal(decimal.NewFromInt(50000)) {
		t.Fatalf("expected total 50000, got %s", order.TotalAmount)
	}

	// Partial payment: recorded, no deduction.
	paid, err := s.OrderUC.Pay(ctx, usecase.PayOrderInput{
		OrderID: order.ID,
		Method:  "cash",
		Amount:  decimal.NewFromInt(20000),
	})
	if err != nil {
		t.Fatalf("failed to pay: %v", err)
	}
	if paid.PaymentStatus != domain.PaymentStatusPartial {
		t.Fatalf("expected partial, got %s", paid.PaymentStatus)
	}
	if got := testDB.StockQuantity(ctx, "br-central", rice); !got.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("expected rice untouched after partial payment, got %s", got)
	}

	// Completing payment fires the deduction: 2 servings of each recipe row.
	paid, err = s.OrderUC.Pay(ctx, usecase.PayOrderInput{
		OrderID: order.ID,
		Method:  "qris",
		Amount:  decimal.NewFromInt(30000),
	})
	if err != nil {
		t.Fatalf("failed to pay: %v", err)
	}
	if paid.Status != domain.OrderStatusCompleted || paid.PaymentStatus != domain.PaymentStatusPaid {
		t.Fatalf("expected completed/paid, got %s/%s", paid.Status, paid.PaymentStatus)
	}
	if got := testDB.StockQuantity(ctx, "br-central", rice); !got.Equal(decimal.NewFromInt(640)) {
		t.Fatalf("expected rice 640, got %s", got)
	}
	if got := testDB.StockQuantity(ctx, "br-central", oil); !got.Equal(decimal.NewFromInt(70)) {
		t.Fatalf("expected oil 70, got %s", got)
	}

	// A paid order rejects further payments; the ledger stays put.
	if _, err := s.OrderUC.Pay(ctx, usecase.PayOrderInput{
		OrderID: order.ID,
		Method:  "cash",
		Amount:  decimal.NewFromInt(50000),
	}); !errors.Is(err, domain.ErrOrderAlreadyPaid) {
		t.Fatalf("expected ErrOrderAlreadyPaid, got %v", err)
	}
	if got := testDB.StockQuantity(ctx, "br-central", rice); !got.Equal(decimal.NewFromInt(640)) {
		t.Fatalf("expected rice still 640, got %s", got)
	}
}

func TestConcurrentPaymentsDeductOnce(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	s := newStack(t, testDB.Pool, true)

	rice := testDB.SeedIngredient(ctx, "Rice", "g", decimal.NewFromFloat(0.02))
	nasiGoreng := testDB.SeedProduct(ctx, "Nasi Goreng", decimal.NewFromInt(25000))
	testDB.SeedRecipe(ctx, nasiGoreng, rice, decimal.NewFromInt(180))
	testDB.SeedStock(ctx, "br-central", rice, decimal.NewFromInt(1000))

	order, err := s.OrderUC.CreateOrder(ctx, usecase.CreateOrderInput{
		BranchID: "br-central",
		Type:     domain.OrderTypeTakeAway,
		Items: []usecase.OrderItemInput{
			{ProductID: nasiGoreng, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("failed to create order: %v", err)
	}

	// Race full payments for the same order. The order row lock serializes
	// them; exactly one crosses the completion edge.
	const workers = 5

	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.OrderUC.Pay(ctx, usecase.PayOrderInput{
				OrderID: order.ID,
				Method:  "cash",
				Amount:  decimal.NewFromInt(25000),
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrOrderAlreadyPaid):
		default:
			t.Fatalf("unexpected payment error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("expected exactly one successful payment, got %d", succeeded)
	}

	if got := testDB.StockQuantity(ctx, "br-central", rice); !got.Equal(decimal.NewFromInt(820)) {
		t.Fatalf("expected rice deducted once to 820, got %s", got)
	}
}

func TestConcurrentWasteAndSaleSerialize(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	s := newStack(t, testDB.Pool, true)

	rice := testDB.SeedIngredient(ctx, "Rice", "g", decimal.NewFromFloat(0.02))
	nasiGoreng := testDB.SeedProduct(ctx, "Nasi Goreng", decimal.NewFromInt(25000))
	testDB.SeedRecipe(ctx, nasiGoreng, rice, decimal.NewFromInt(180))
	testDB.SeedStock(ctx, "br-central", rice, decimal.NewFromInt(1000))

	order, err := s.OrderUC.CreateOrder(ctx, usecase.CreateOrderInput{
		BranchID: "br-central",
		Type:     domain.OrderTypeTakeAway,
		Items: []usecase.OrderItemInput{
			{ProductID: nasiGoreng, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("failed to create order: %v", err)
	}

	// Race a waste write against the sale deduction on the same row. The
	// stock row lock serializes the two movements; both must land in full.
	var wg sync.WaitGroup
	wg.Add(2)

	var wasteErr, payErr error

	go func() {
		defer wg.Done()
		_, wasteErr = s.WasteUC.RecordWaste(ctx, usecase.RecordWasteInput{
			BranchID: "br-central",
			Items: []usecase.WasteItemInput{
				{IngredientID: rice, Quantity: decimal.NewFromInt(50), Reason: "spoiled"},
			},
		})
	}()

	go func() {
		defer wg.Done()
		_, payErr = s.OrderUC.Pay(ctx, usecase.PayOrderInput{
			OrderID: order.ID,
			Method:  "cash",
			Amount:  decimal.NewFromInt(25000),
		})
	}()

	wg.Wait()

	if wasteErr != nil {
		t.Fatalf("failed to record waste: %v", wasteErr)
	}
	if payErr != nil {
		t.Fatalf("failed to pay: %v", payErr)
	}

	// 1000 - 50 waste - 180 sale deduction, regardless of who won the lock.
	if got := testDB.StockQuantity(ctx, "br-central", rice); !got.Equal(decimal.NewFromInt(770)) {
		t.Fatalf("expected rice 770 after both movements, got %s", got)
	}
}
