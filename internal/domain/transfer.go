package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferStatus is the state of a stock transfer between branches.
type TransferStatus string

const (
	TransferStatusPending  TransferStatus = "pending"
	TransferStatusShipped  TransferStatus = "shipped"
	TransferStatusReceived TransferStatus = "received"
)

// Transfer moves ingredients from one branch to another in two phases: ship
// decrements the source, receive increments the destination. The status only
// moves forward; an abandoned pending or shipped transfer has no automatic
// rollback and must be compensated by a new transfer in the opposite
// direction.
type Transfer struct {
	ID           string
	FromBranchID string
	ToBranchID   string
	TransferDate time.Time
	Status       TransferStatus
	Note         string
	Items        []TransferItem
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TransferItem is one ingredient line of a transfer.
type TransferItem struct {
	ID           string
	IngredientID string
	Quantity     decimal.Decimal
}

// Validate validates a transfer request.
func (t *Transfer) Validate() error {
	if t.FromBranchID == "" || t.ToBranchID == "" {
		return ErrMissingBranch
	}

	if t.FromBranchID == t.ToBranchID {
		return ErrSameBranch
	}

	if len(t.Items) == 0 {
		return ErrInvalidItems
	}

	for _, item := range t.Items {
		if item.Quantity.LessThanOrEqual(decimal.Zero) {
			return ErrInvalidQuantity
		}
	}

	return nil
}

// Ship transitions pending -> shipped.
func (t *Transfer) Ship() error {
	if t.Status != TransferStatusPending {
		return ErrTransferNotPending
	}

	t.Status = TransferStatusShipped

	return nil
}

// Receive transitions shipped -> received.
func (t *Transfer) Receive() error {
	if t.Status != TransferStatusShipped {
		return ErrTransferNotShipped
	}

	t.Status = TransferStatusReceived

	return nil
}

// SourceKeys returns the ledger keys the ship phase will lock.
func (t *Transfer) SourceKeys() []StockKey {
	keys := make([]StockKey, 0, len(t.Items))
	for _, item := range t.Items {
		keys = append(keys, StockKey{BranchID: t.FromBranchID, IngredientID: item.IngredientID})
	}

	return keys
}
