package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warungpos/inventory/internal/domain"
	"github.com/warungpos/inventory/internal/usecase"
	"github.com/warungpos/inventory/tests/testutil"
)

func TestTransferLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	s := newStack(t, testDB.Pool, true)

	flour := testDB.SeedIngredient(ctx, "Flour", "kg", decimal.NewFromInt(12000))
	testDB.SeedStock(ctx, "br-central", flour, decimal.NewFromInt(50))

	transfer, err := s.TransferUC.CreateTransfer(ctx, usecase.CreateTransferInput{
		FromBranchID: "br-central",
		ToBranchID:   "br-north",
		TransferDate: time.Now().UTC(),
		Items: []usecase.TransferItemInput{
			{IngredientID: flour, Quantity: decimal.NewFromInt(20)},
		},
	})
	if err != nil {
		t.Fatalf("failed to create transfer: %v", err)
	}
	if transfer.Status != domain.TransferStatusPending {
		t.Fatalf("expected pending, got %s", transfer.Status)
	}

	// Creation must not touch either ledger.
	if got := testDB.StockQuantity(ctx, "br-central", flour); !got.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("expected source 50 after create, got %s", got)
	}

	if _, err := s.TransferUC.Ship(ctx, transfer.ID); err != nil {
		t.Fatalf("failed to ship: %v", err)
	}

	if got := testDB.StockQuantity(ctx, "br-central", flour); !got.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("expected source 30 after ship, got %s", got)
	}
	if got := testDB.StockQuantity(ctx, "br-north", flour); !got.IsZero() {
		t.Fatalf("expected destination untouched after ship, got %s", got)
	}

	if _, err := s.TransferUC.Receive(ctx, transfer.ID); err != nil {
		t.Fatalf("failed to receive: %v", err)
	}

	if got := testDB.StockQuantity(ctx, "br-north", flour); !got.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("expected destination 20 after receive, got %s", got)
	}

	// Replays of both edges are rejected.
	if _, err := s.TransferUC.Ship(ctx, transfer.ID); !errors.Is(err, domain.ErrTransferNotPending) {
		t.Fatalf("expected ErrTransferNotPending, got %v", err)
	}
	if _, err := s.TransferUC.Receive(ctx, transfer.ID); !errors.Is(err, domain.ErrTransferNotShipped) {
		t.Fatalf("expected ErrTransferNotShipped, got %v", err)
	}
}

func TestTransferShipInsufficientStock(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	// Shipping requires stock even under the permissive overdraft policy.
	s := newStack(t, testDB.Pool, true)

	flour := testDB.SeedIngredient(ctx, "Flour", "kg", decimal.NewFromInt(12000))
	sugar := testDB.SeedIngredient(ctx, "Sugar", "kg", decimal.NewFromInt(15000))
	testDB.SeedStock(ctx, "br-central", flour, decimal.NewFromInt(50))
	testDB.SeedStock(ctx, "br-central", sugar, decimal.NewFromInt(30))

	transfer, err := s.TransferUC.CreateTransfer(ctx, usecase.CreateTransferInput{
		FromBranchID: "br-central",
		ToBranchID:   "br-north",
		TransferDate: time.Now().UTC(),
		Items: []usecase.TransferItemInput{
			{IngredientID: flour, Quantity: decimal.NewFromInt(10)},
			{IngredientID: sugar, Quantity: decimal.NewFromInt(20)},
		},
	})
	if err != nil {
		t.Fatalf("failed to create transfer: %v", err)
	}

	// Drain sugar below the transfer quantity between create and ship.
	if _, err := s.WasteUC.RecordWaste(ctx, usecase.RecordWasteInput{
		BranchID:  "br-central",
		WasteDate: time.Now().UTC(),
		Items: []usecase.WasteItemInput{
			{IngredientID: sugar, Quantity: decimal.NewFromInt(25), Reason: "spoiled"},
		},
	}); err != nil {
		t.Fatalf("failed to record waste: %v", err)
	}

	if _, err := s.TransferUC.Ship(ctx, transfer.ID); !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	// The whole batch aborts: the sufficient flour line is untouched too.
	if got := testDB.StockQuantity(ctx, "br-central", flour); !got.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("expected flour 50 after aborted ship, got %s", got)
	}

	got, err := s.TransferUC.GetTransfer(ctx, transfer.ID)
	if err != nil {
		t.Fatalf("failed to get transfer: %v", err)
	}
	if got.Status != domain.TransferStatusPending {
		t.Fatalf("expected transfer still pending, got %s", got.Status)
	}
}
