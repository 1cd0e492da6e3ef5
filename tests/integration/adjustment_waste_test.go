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

func TestWasteOverdraftGoesNegative(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	s := newStack(t, testDB.Pool, true)

	milk := testDB.SeedIngredient(ctx, "Milk", "l", decimal.NewFromInt(18000))
	testDB.SeedStock(ctx, "br-central", milk, decimal.NewFromInt(2))

	// The ledger records reality: if 5 liters went bad, 5 liters went bad,
	// even when the books said 2.
	waste, err := s.WasteUC.RecordWaste(ctx, usecase.RecordWasteInput{
		BranchID:  "br-central",
		WasteDate: time.Now().UTC(),
		Items: []usecase.WasteItemInput{
			{IngredientID: milk, Quantity: decimal.NewFromInt(5), Reason: "expired"},
		},
	})
	if err != nil {
		t.Fatalf("failed to record waste: %v", err)
	}
	if len(waste.Items) != 1 {
		t.Fatalf("expected 1 waste item, got %d", len(waste.Items))
	}

	if got := testDB.StockQuantity(ctx, "br-central", milk); !got.Equal(decimal.NewFromInt(-3)) {
		t.Fatalf("expected milk -3, got %s", got)
	}
}

func TestWasteStrictPolicyRejectsOverdraft(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	s := newStack(t, testDB.Pool, false)

	milk := testDB.SeedIngredient(ctx, "Milk", "l", decimal.NewFromInt(18000))
	testDB.SeedStock(ctx, "br-central", milk, decimal.NewFromInt(2))

	if _, err := s.WasteUC.RecordWaste(ctx, usecase.RecordWasteInput{
		BranchID:  "br-central",
		WasteDate: time.Now().UTC(),
		Items: []usecase.WasteItemInput{
			{IngredientID: milk, Quantity: decimal.NewFromInt(5), Reason: "expired"},
		},
	}); !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	if got := testDB.StockQuantity(ctx, "br-central", milk); !got.Equal(decimal.NewFromInt(2)) {
		t.Fatalf("expected milk untouched at 2, got %s", got)
	}
}

func TestAdjustmentFinalizeWritesCountedLevels(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	s := newStack(t, testDB.Pool, true)

	flour := testDB.SeedIngredient(ctx, "Flour", "kg", decimal.NewFromInt(12000))
	testDB.SeedStock(ctx, "br-central", flour, decimal.NewFromInt(40))

	adjustment, err := s.AdjustmentUC.CreateDraft(ctx, usecase.CreateAdjustmentInput{
		BranchID:       "br-central",
		AdjustmentDate: time.Now().UTC(),
		Note:           "monthly count",
	})
	if err != nil {
		t.Fatalf("failed to create draft: %v", err)
	}

	draft, err := s.AdjustmentUC.UpdateDraft(ctx, usecase.UpdateDraftInput{
		ID: adjustment.ID,
		Items: []usecase.AdjustmentItemInput{
			{IngredientID: flour, ActualStock: decimal.NewFromInt(37)},
		},
	})
	if err != nil {
		t.Fatalf("failed to update draft: %v", err)
	}
	if !draft.Items[0].SystemStock.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("expected captured system stock 40, got %s", draft.Items[0].SystemStock)
	}
	if !draft.Items[0].Difference.Equal(decimal.NewFromInt(-3)) {
		t.Fatalf("expected difference -3, got %s", draft.Items[0].Difference)
	}

	// The count itself does not move stock; the ledger drifts on.
	if _, err := s.WasteUC.RecordWaste(ctx, usecase.RecordWasteInput{
		BranchID:  "br-central",
		WasteDate: time.Now().UTC(),
		Items: []usecase.WasteItemInput{
			{IngredientID: flour, Quantity: decimal.NewFromInt(5), Reason: "burnt batch"},
		},
	}); err != nil {
		t.Fatalf("failed to record waste: %v", err)
	}

	// Finalize writes the counted level as an absolute, overriding the drift.
	finalized, err := s.AdjustmentUC.Finalize(ctx, adjustment.ID)
	if err != nil {
		t.Fatalf("failed to finalize: %v", err)
	}
	if finalized.Status != domain.AdjustmentStatusCompleted {
		t.Fatalf("expected completed, got %s", finalized.Status)
	}
	if got := testDB.StockQuantity(ctx, "br-central", flour); !got.Equal(decimal.NewFromInt(37)) {
		t.Fatalf("expected flour 37 after finalize, got %s", got)
	}

	// Finalize is not repeatable.
	if _, err := s.AdjustmentUC.Finalize(ctx, adjustment.ID); !errors.Is(err, domain.ErrAdjustmentCompleted) {
		t.Fatalf("expected ErrAdjustmentCompleted, got %v", err)
	}
}
