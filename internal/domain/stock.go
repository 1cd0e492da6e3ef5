package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// StockKey identifies the ledger row for one ingredient at one branch.
type StockKey struct {
	BranchID     string
	IngredientID string
}

// Less defines the canonical lock-acquisition order for stock rows.
func (k StockKey) Less(other StockKey) bool {
	if k.BranchID != other.BranchID {
		return k.BranchID < other.BranchID
	}

	return k.IngredientID < other.IngredientID
}

// StockEntry is the quantity-on-hand record for one ingredient at one branch.
// Rows are created lazily on the first movement that touches the pair and are
// mutated in place by every movement after that.
type StockEntry struct {
	ID           string
	BranchID     string
	IngredientID string
	Quantity     decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// StockDelta is a signed quantity change against one ledger row.
type StockDelta struct {
	Key      StockKey
	Quantity decimal.Decimal
}

// StockLevel is an absolute quantity to be written to one ledger row.
type StockLevel struct {
	Key      StockKey
	Quantity decimal.Decimal
}

// SortStockKeys orders keys canonically (branch, then ingredient). Every
// multi-row movement must lock rows in this order so that two movements
// touching the same pairs can never deadlock each other.
func SortStockKeys(keys []StockKey) {
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
}

// MergeDeltas sums deltas that hit the same ledger row and returns the result
// in canonical key order.
func MergeDeltas(deltas []StockDelta) []StockDelta {
	byKey := make(map[StockKey]decimal.Decimal, len(deltas))
	for _, d := range deltas {
		byKey[d.Key] = byKey[d.Key].Add(d.Quantity)
	}

	keys := make([]StockKey, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}

	SortStockKeys(keys)

	merged := make([]StockDelta, 0, len(keys))
	for _, k := range keys {
		merged = append(merged, StockDelta{Key: k, Quantity: byKey[k]})
	}

	return merged
}
