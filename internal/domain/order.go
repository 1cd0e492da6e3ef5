package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the fulfillment state of a sales order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// PaymentStatus tracks cumulative payments against an order total.
type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// OrderType distinguishes how the order is served.
type OrderType string

const (
	OrderTypeDineIn   OrderType = "dine_in"
	OrderTypeTakeAway OrderType = "take_away"
	OrderTypeDelivery OrderType = "delivery"
)

// Order is a sale at one branch. Ingredient stock is deducted exactly once,
// at the moment cumulative payments first reach the order total; partial
// payments never touch the ledger.
type Order struct {
	ID            string
	BranchID      string
	TableID       string
	CustomerName  string
	Type          OrderType
	Status        OrderStatus
	PaymentStatus PaymentStatus
	TotalAmount   decimal.Decimal
	Items         []OrderItem
	Payments      []Payment
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderItem is one product line of an order.
type OrderItem struct {
	ID        string
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
	Notes     string
}

// Payment is one (possibly partial) payment against an order. Payments are
// append-only history rows.
type Payment struct {
	ID          string
	OrderID     string
	Method      string
	Amount      decimal.Decimal
	PaymentDate time.Time
}

// Validate validates an order request.
func (o *Order) Validate() error {
	if len(o.Items) == 0 {
		return ErrInvalidItems
	}

	for _, item := range o.Items {
		if item.Quantity <= 0 {
			return ErrInvalidQuantity
		}
	}

	switch o.Type {
	case OrderTypeDineIn, OrderTypeTakeAway, OrderTypeDelivery:
	default:
		return ErrInvalidOrderType
	}

	return nil
}

// ComputeTotals fills per-item subtotals and the order total from unit prices.
func (o *Order) ComputeTotals() {
	total := decimal.Zero
	for i := range o.Items {
		o.Items[i].Subtotal = o.Items[i].UnitPrice.Mul(decimal.NewFromInt(o.Items[i].Quantity))
		total = total.Add(o.Items[i].Subtotal)
	}

	o.TotalAmount = total
}

// SettlePayment updates payment status given the new cumulative paid amount
// and reports whether this payment crossed the completion edge. The deduction
// pass fires exactly on that edge, never on partial payments and never twice.
func (o *Order) SettlePayment(totalPaid decimal.Decimal) (completed bool) {
	if totalPaid.GreaterThanOrEqual(o.TotalAmount) {
		o.PaymentStatus = PaymentStatusPaid
		o.Status = OrderStatusCompleted

		return true
	}

	o.PaymentStatus = PaymentStatusPartial

	return false
}

// Cancel transitions to cancelled unless the order is already terminal.
func (o *Order) Cancel() error {
	if o.Status == OrderStatusCompleted || o.Status == OrderStatusCancelled {
		return ErrOrderNotOpen
	}

	o.Status = OrderStatusCancelled

	return nil
}
