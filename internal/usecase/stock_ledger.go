package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warungpos/inventory/internal/domain"
)

// StockLedger owns every mutation of stock rows. All writes go through one of
// its methods, inside the caller's transaction: deltas are merged per pair,
// rows are locked in canonical key order, and the whole batch is applied or
// nothing is.
type StockLedger struct {
	stockRepo StockRepository

	// allowNegative is the overdraft policy: when true (the default),
	// deductions may push a row negative and the discrepancy is left for a
	// later physical count; when false they fail with ErrInsufficientStock.
	allowNegative bool
}

// NewStockLedger creates a new StockLedger.
func NewStockLedger(stockRepo StockRepository, allowNegative bool) *StockLedger {
	return &StockLedger{
		stockRepo:     stockRepo,
		allowNegative: allowNegative,
	}
}

// Apply merges and applies signed deltas under row locks. Negative deltas are
// subject to the overdraft policy; positive deltas never fail a sufficiency
// check.
func (l *StockLedger) Apply(ctx context.Context, tx Transaction, deltas []domain.StockDelta) error {
	return l.apply(ctx, tx, deltas, !l.allowNegative)
}

// ApplyRequireStock is Apply with a hard sufficiency check regardless of the
// overdraft policy. Transfer ship uses it: shipping stock that is not there
// is never acceptable.
func (l *StockLedger) ApplyRequireStock(ctx context.Context, tx Transaction, deltas []domain.StockDelta) error {
	return l.apply(ctx, tx, deltas, true)
}

func (l *StockLedger) apply(ctx context.Context, tx Transaction, deltas []domain.StockDelta, requireStock bool) error {
	merged := domain.MergeDeltas(deltas)
	if len(merged) == 0 {
		return nil
	}

	keys := make([]domain.StockKey, 0, len(merged))
	for _, d := range merged {
		keys = append(keys, d.Key)
	}

	// MergeDeltas already returns canonical order; lock in that order.
	current, err := l.stockRepo.GetForUpdate(ctx, tx, keys)
	if err != nil {
		return err
	}

	if requireStock {
		for _, d := range merged {
			if d.Quantity.IsNegative() && current[d.Key].Add(d.Quantity).IsNegative() {
				return fmt.Errorf("%w: ingredient %s", domain.ErrInsufficientStock, d.Key.IngredientID)
			}
		}
	}

	now := time.Now().UTC()
	for _, d := range merged {
		if err := l.stockRepo.ApplyDelta(ctx, tx, d.Key, d.Quantity, now); err != nil {
			return err
		}
	}

	return nil
}

// SetAbsolute overwrites rows with counted quantities, locking them in
// canonical order first. Used by adjustment finalize. Levels are written in
// input order, so when the same key is counted twice the last count wins.
func (l *StockLedger) SetAbsolute(ctx context.Context, tx Transaction, levels []domain.StockLevel) error {
	keys := make([]domain.StockKey, 0, len(levels))
	for _, lv := range levels {
		keys = append(keys, lv.Key)
	}

	domain.SortStockKeys(keys)

	if _, err := l.stockRepo.GetForUpdate(ctx, tx, keys); err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, lv := range levels {
		if err := l.stockRepo.SetAbsolute(ctx, tx, lv.Key, lv.Quantity, now); err != nil {
			return err
		}
	}

	return nil
}

// Quantity reads the current quantity for a pair without locking. Pairs never
// touched read as zero.
func (l *StockLedger) Quantity(ctx context.Context, key domain.StockKey) (decimal.Decimal, error) {
	return l.stockRepo.GetQuantity(ctx, key)
}
