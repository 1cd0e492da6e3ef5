package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestWaste_Validate(t *testing.T) {
	waste := &Waste{BranchID: "br-1"}
	if err := waste.Validate(); !errors.Is(err, ErrInvalidItems) {
		t.Fatalf("expected ErrInvalidItems, got %v", err)
	}

	waste.Items = []WasteItem{{IngredientID: "ing-flour", Quantity: decimal.Zero}}
	if err := waste.Validate(); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}

	waste.Items[0].Quantity = decimal.NewFromInt(3)
	if err := waste.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWaste_Deltas(t *testing.T) {
	waste := &Waste{
		BranchID: "br-1",
		Items: []WasteItem{
			{IngredientID: "ing-flour", Quantity: decimal.NewFromInt(3), Reason: "expired"},
			{IngredientID: "ing-milk", Quantity: decimal.NewFromFloat(0.5), Reason: "spilled"},
		},
	}

	deltas := waste.Deltas()
	if len(deltas) != 2 {
		t.Fatalf("expected 2 deltas, got %d", len(deltas))
	}
	if !deltas[0].Quantity.Equal(decimal.NewFromInt(-3)) {
		t.Fatalf("expected -3, got %s", deltas[0].Quantity)
	}
	if deltas[1].Key.BranchID != "br-1" || !deltas[1].Quantity.Equal(decimal.NewFromFloat(-0.5)) {
		t.Fatalf("unexpected delta: %+v", deltas[1])
	}
}
