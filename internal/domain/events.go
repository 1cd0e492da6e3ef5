package domain

import "time"

// Event types
const (
	EventTypePurchaseOrderReceived = "purchase_order.received"
	EventTypeOrderPaid             = "order.paid"
	EventTypeTransferShipped       = "transfer.shipped"
	EventTypeTransferReceived      = "transfer.received"
	EventTypeWasteRecorded         = "waste.recorded"
	EventTypeAdjustmentCompleted   = "adjustment.completed"
)

// Aggregate types
const (
	AggregateTypePurchaseOrder = "purchase_order"
	AggregateTypeOrder         = "order"
	AggregateTypeTransfer      = "transfer"
	AggregateTypeWaste         = "waste"
	AggregateTypeAdjustment    = "adjustment"
)

// OutboxEvent is a movement event written in the same transaction as the
// ledger mutation it describes and published asynchronously.
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// StockMovedEvent is the common payload shape for movement events: which
// branch was touched and the signed per-ingredient quantities applied.
type StockMovedEvent struct {
	BranchID string            `json:"branch_id"`
	Deltas   map[string]string `json:"deltas"`
}

// NewStockMovedPayload builds the payload map for a movement event.
func NewStockMovedPayload(branchID string, deltas []StockDelta) map[string]any {
	m := make(map[string]string, len(deltas))
	for _, d := range deltas {
		m[d.Key.IngredientID] = d.Quantity.String()
	}

	return map[string]any{
		"branch_id": branchID,
		"deltas":    m,
	}
}
