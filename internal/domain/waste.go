package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Waste records discarded ingredient quantities at one branch. There is no
// draft phase: each item decrements the ledger in the same transaction that
// creates the record.
type Waste struct {
	ID        string
	BranchID  string
	WasteDate time.Time
	Note      string
	Items     []WasteItem
	CreatedAt time.Time
}

// WasteItem is one discarded ingredient line.
type WasteItem struct {
	ID           string
	IngredientID string
	Quantity     decimal.Decimal
	Reason       string
}

// Validate validates a waste request.
func (w *Waste) Validate() error {
	if len(w.Items) == 0 {
		return ErrInvalidItems
	}

	for _, item := range w.Items {
		if item.Quantity.LessThanOrEqual(decimal.Zero) {
			return ErrInvalidQuantity
		}
	}

	return nil
}

// Deltas returns the negative ledger deltas recording this waste applies.
func (w *Waste) Deltas() []StockDelta {
	deltas := make([]StockDelta, 0, len(w.Items))
	for _, item := range w.Items {
		deltas = append(deltas, StockDelta{
			Key:      StockKey{BranchID: w.BranchID, IngredientID: item.IngredientID},
			Quantity: item.Quantity.Neg(),
		})
	}

	return deltas
}
