package integration

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warungpos/inventory/internal/domain"
	"github.com/warungpos/inventory/internal/usecase"
	"github.com/warungpos/inventory/tests/testutil"
)

func TestMovementsWriteOutboxEvents(t *testing.T) {
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

	waste, err := s.WasteUC.RecordWaste(ctx, usecase.RecordWasteInput{
		BranchID:  "br-central",
		WasteDate: time.Now().UTC(),
		Items: []usecase.WasteItemInput{
			{IngredientID: flour, Quantity: decimal.NewFromInt(3), Reason: "expired"},
		},
	})
	if err != nil {
		t.Fatalf("failed to record waste: %v", err)
	}

	events, err := s.OutboxRepo.GetUnpublished(ctx, 10)
	if err != nil {
		t.Fatalf("failed to get unpublished events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 unpublished event, got %d", len(events))
	}

	event := events[0]
	if event.EventType != domain.EventTypeWasteRecorded {
		t.Fatalf("expected %s, got %s", domain.EventTypeWasteRecorded, event.EventType)
	}
	if event.AggregateID != waste.ID {
		t.Fatalf("expected aggregate id %s, got %s", waste.ID, event.AggregateID)
	}
	if event.Payload["branch_id"] != "br-central" {
		t.Fatalf("unexpected payload: %+v", event.Payload)
	}

	if err := s.OutboxRepo.MarkPublished(ctx, event.ID, time.Now().UTC()); err != nil {
		t.Fatalf("failed to mark published: %v", err)
	}

	events, err = s.OutboxRepo.GetUnpublished(ctx, 10)
	if err != nil {
		t.Fatalf("failed to get unpublished events: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected no unpublished events, got %d", len(events))
	}
}
