package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustmentStatus is the state of a physical stock count reconciliation.
type AdjustmentStatus string

const (
	AdjustmentStatusDraft     AdjustmentStatus = "draft"
	AdjustmentStatusCompleted AdjustmentStatus = "completed"
)

// Adjustment reconciles counted stock against the ledger for one branch.
// Items are captured while the adjustment is a draft and may be replaced
// wholesale any number of times; finalize writes each item's actual stock to
// the ledger as an absolute value and completes the adjustment.
type Adjustment struct {
	ID             string
	BranchID       string
	AdjustmentDate time.Time
	Status         AdjustmentStatus
	Note           string
	Items          []AdjustmentItem
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AdjustmentItem records one counted ingredient. SystemStock is the ledger
// value as of item entry, not as of finalize; the ledger may drift between
// count and finalize and the recorded difference reflects the count moment.
type AdjustmentItem struct {
	ID           string
	IngredientID string
	SystemStock  decimal.Decimal
	ActualStock  decimal.Decimal
	Difference   decimal.Decimal
}

// NewAdjustmentItem captures a count against the current system stock.
func NewAdjustmentItem(ingredientID string, systemStock, actualStock decimal.Decimal) AdjustmentItem {
	return AdjustmentItem{
		IngredientID: ingredientID,
		SystemStock:  systemStock,
		ActualStock:  actualStock,
		Difference:   actualStock.Sub(systemStock),
	}
}

// Finalizable reports whether the adjustment can be finalized.
func (a *Adjustment) Finalizable() error {
	if a.Status != AdjustmentStatusDraft {
		return ErrAdjustmentCompleted
	}

	if len(a.Items) == 0 {
		return ErrAdjustmentEmpty
	}

	return nil
}

// Finalize transitions draft -> completed.
func (a *Adjustment) Finalize() error {
	if err := a.Finalizable(); err != nil {
		return err
	}

	a.Status = AdjustmentStatusCompleted

	return nil
}

// Levels returns the absolute stock levels finalize will write.
func (a *Adjustment) Levels() []StockLevel {
	levels := make([]StockLevel, 0, len(a.Items))
	for _, item := range a.Items {
		levels = append(levels, StockLevel{
			Key:      StockKey{BranchID: a.BranchID, IngredientID: item.IngredientID},
			Quantity: item.ActualStock,
		})
	}

	return levels
}
