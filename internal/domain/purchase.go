package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus is the state of a purchase order.
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusPending  PurchaseOrderStatus = "pending"
	PurchaseOrderStatusApproved PurchaseOrderStatus = "approved"
	PurchaseOrderStatusReceived PurchaseOrderStatus = "received"
)

// PurchaseOrder is an order of ingredients from a supplier for one branch.
// Receiving increments the ledger; the received status transition happens in
// the same transaction as the deltas and gates double-receiving.
type PurchaseOrder struct {
	ID          string
	SupplierID  string
	BranchID    string
	OrderDate   time.Time
	Status      PurchaseOrderStatus
	TotalAmount decimal.Decimal
	Items       []PurchaseOrderItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PurchaseOrderItem is one ingredient line of a purchase order.
type PurchaseOrderItem struct {
	ID           string
	IngredientID string
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
	Subtotal     decimal.Decimal
}

// Validate validates a purchase order request.
func (po *PurchaseOrder) Validate() error {
	if len(po.Items) == 0 {
		return ErrInvalidItems
	}

	for _, item := range po.Items {
		if item.Quantity.LessThanOrEqual(decimal.Zero) {
			return ErrInvalidQuantity
		}

		if item.UnitPrice.IsNegative() {
			return ErrInvalidAmount
		}
	}

	return nil
}

// ComputeTotals fills per-item subtotals and the order total.
func (po *PurchaseOrder) ComputeTotals() {
	total := decimal.Zero
	for i := range po.Items {
		po.Items[i].Subtotal = po.Items[i].Quantity.Mul(po.Items[i].UnitPrice)
		total = total.Add(po.Items[i].Subtotal)
	}

	po.TotalAmount = total
}

// MarkReceived transitions to received from any non-received status.
func (po *PurchaseOrder) MarkReceived() error {
	if po.Status == PurchaseOrderStatusReceived {
		return ErrPurchaseOrderReceived
	}

	po.Status = PurchaseOrderStatusReceived

	return nil
}

// Approve transitions pending -> approved.
func (po *PurchaseOrder) Approve() error {
	if po.Status != PurchaseOrderStatusPending {
		return ErrPurchaseOrderNotPending
	}

	po.Status = PurchaseOrderStatusApproved

	return nil
}

// Deltas returns the positive ledger deltas receiving this order applies.
func (po *PurchaseOrder) Deltas() []StockDelta {
	deltas := make([]StockDelta, 0, len(po.Items))
	for _, item := range po.Items {
		deltas = append(deltas, StockDelta{
			Key:      StockKey{BranchID: po.BranchID, IngredientID: item.IngredientID},
			Quantity: item.Quantity,
		})
	}

	return deltas
}
