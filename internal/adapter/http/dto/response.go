package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warungpos/inventory/internal/domain"
	"github.com/warungpos/inventory/internal/usecase"
)

// TransferResponse represents a stock transfer in API responses.
type TransferResponse struct {
	ID           string                 `json:"id"`
	FromBranchID string                 `json:"from_branch_id"`
	ToBranchID   string                 `json:"to_branch_id"`
	TransferDate time.Time              `json:"transfer_date"`
	Status       string                 `json:"status"`
	Note         string                 `json:"note,omitempty"`
	Items        []TransferItemResponse `json:"items"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// TransferItemResponse is one ingredient line of a transfer response.
type TransferItemResponse struct {
	ID           string          `json:"id"`
	IngredientID string          `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// TransferFromDomain converts a domain transfer to a response.
func TransferFromDomain(t *domain.Transfer) *TransferResponse {
	resp := &TransferResponse{
		ID:           t.ID,
		FromBranchID: t.FromBranchID,
		ToBranchID:   t.ToBranchID,
		TransferDate: t.TransferDate,
		Status:       string(t.Status),
		Note:         t.Note,
		Items:        make([]TransferItemResponse, 0, len(t.Items)),
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}

	for _, item := range t.Items {
		resp.Items = append(resp.Items, TransferItemResponse{
			ID:           item.ID,
			IngredientID: item.IngredientID,
			Quantity:     item.Quantity,
		})
	}

	return resp
}

// TransfersFromDomain converts domain transfers to responses.
func TransfersFromDomain(transfers []*domain.Transfer) []*TransferResponse {
	result := make([]*TransferResponse, len(transfers))
	for i, t := range transfers {
		result[i] = TransferFromDomain(t)
	}
	return result
}

// AdjustmentResponse represents a stock adjustment in API responses.
type AdjustmentResponse struct {
	ID             string                   `json:"id"`
	BranchID       string                   `json:"branch_id"`
	AdjustmentDate time.Time                `json:"adjustment_date"`
	Status         string                   `json:"status"`
	Note           string                   `json:"note,omitempty"`
	Items          []AdjustmentItemResponse `json:"items"`
	CreatedAt      time.Time                `json:"created_at"`
	UpdatedAt      time.Time                `json:"updated_at"`
}

// AdjustmentItemResponse is one counted ingredient in a response.
type AdjustmentItemResponse struct {
	ID           string          `json:"id"`
	IngredientID string          `json:"ingredient_id"`
	SystemStock  decimal.Decimal `json:"system_stock"`
	ActualStock  decimal.Decimal `json:"actual_stock"`
	Difference   decimal.Decimal `json:"difference"`
}

// AdjustmentFromDomain converts a domain adjustment to a response.
func AdjustmentFromDomain(a *domain.Adjustment) *AdjustmentResponse {
	resp := &AdjustmentResponse{
		ID:             a.ID,
		BranchID:       a.BranchID,
		AdjustmentDate: a.AdjustmentDate,
		Status:         string(a.Status),
		Note:           a.Note,
		Items:          make([]AdjustmentItemResponse, 0, len(a.Items)),
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}

	for _, item := range a.Items {
		resp.Items = append(resp.Items, AdjustmentItemResponse{
			ID:           item.ID,
			IngredientID: item.IngredientID,
			SystemStock:  item.SystemStock,
			ActualStock:  item.ActualStock,
			Difference:   item.Difference,
		})
	}

	return resp
}

// AdjustmentsFromDomain converts domain adjustments to responses.
func AdjustmentsFromDomain(adjustments []*domain.Adjustment) []*AdjustmentResponse {
	result := make([]*AdjustmentResponse, len(adjustments))
	for i, a := range adjustments {
		result[i] = AdjustmentFromDomain(a)
	}
	return result
}

// WasteResponse represents a waste record in API responses.
type WasteResponse struct {
	ID        string              `json:"id"`
	BranchID  string              `json:"branch_id"`
	WasteDate time.Time           `json:"waste_date"`
	Note      string              `json:"note,omitempty"`
	Items     []WasteItemResponse `json:"items"`
	CreatedAt time.Time           `json:"created_at"`
}

// WasteItemResponse is one discarded ingredient line in a response.
type WasteItemResponse struct {
	ID           string          `json:"id"`
	IngredientID string          `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	Reason       string          `json:"reason,omitempty"`
}

// WasteFromDomain converts a domain waste record to a response.
func WasteFromDomain(w *domain.Waste) *WasteResponse {
	resp := &WasteResponse{
		ID:        w.ID,
		BranchID:  w.BranchID,
		WasteDate: w.WasteDate,
		Note:      w.Note,
		Items:     make([]WasteItemResponse, 0, len(w.Items)),
		CreatedAt: w.CreatedAt,
	}

	for _, item := range w.Items {
		resp.Items = append(resp.Items, WasteItemResponse{
			ID:           item.ID,
			IngredientID: item.IngredientID,
			Quantity:     item.Quantity,
			Reason:       item.Reason,
		})
	}

	return resp
}

// WastesFromDomain converts domain waste records to responses.
func WastesFromDomain(wastes []*domain.Waste) []*WasteResponse {
	result := make([]*WasteResponse, len(wastes))
	for i, w := range wastes {
		result[i] = WasteFromDomain(w)
	}
	return result
}

// PurchaseOrderResponse represents a purchase order in API responses.
type PurchaseOrderResponse struct {
	ID          string                      `json:"id"`
	SupplierID  string                      `json:"supplier_id"`
	BranchID    string                      `json:"branch_id"`
	OrderDate   time.Time                   `json:"order_date"`
	Status      string                      `json:"status"`
	TotalAmount decimal.Decimal             `json:"total_amount"`
	Items       []PurchaseOrderItemResponse `json:"items"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

// PurchaseOrderItemResponse is one ordered ingredient line in a response.
type PurchaseOrderItemResponse struct {
	ID           string          `json:"id"`
	IngredientID string          `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// PurchaseOrderFromDomain converts a domain purchase order to a response.
func PurchaseOrderFromDomain(po *domain.PurchaseOrder) *PurchaseOrderResponse {
	resp := &PurchaseOrderResponse{
		ID:          po.ID,
		SupplierID:  po.SupplierID,
		BranchID:    po.BranchID,
		OrderDate:   po.OrderDate,
		Status:      string(po.Status),
		TotalAmount: po.TotalAmount,
		Items:       make([]PurchaseOrderItemResponse, 0, len(po.Items)),
		CreatedAt:   po.CreatedAt,
		UpdatedAt:   po.UpdatedAt,
	}

	for _, item := range po.Items {
		resp.Items = append(resp.Items, PurchaseOrderItemResponse{
			ID:           item.ID,
			IngredientID: item.IngredientID,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			Subtotal:     item.Subtotal,
		})
	}

	return resp
}

// PurchaseOrdersFromDomain converts domain purchase orders to responses.
func PurchaseOrdersFromDomain(orders []*domain.PurchaseOrder) []*PurchaseOrderResponse {
	result := make([]*PurchaseOrderResponse, len(orders))
	for i, po := range orders {
		result[i] = PurchaseOrderFromDomain(po)
	}
	return result
}

// OrderResponse represents a sales order in API responses.
type OrderResponse struct {
	ID            string              `json:"id"`
	BranchID      string              `json:"branch_id"`
	TableID       string              `json:"table_id,omitempty"`
	CustomerName  string              `json:"customer_name"`
	Type          string              `json:"order_type"`
	Status        string              `json:"status"`
	PaymentStatus string              `json:"payment_status"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	Items         []OrderItemResponse `json:"items"`
	Payments      []PaymentResponse   `json:"payments,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// OrderItemResponse is one product line in an order response.
type OrderItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Notes     string          `json:"notes,omitempty"`
}

// PaymentResponse is one payment in an order response.
type PaymentResponse struct {
	ID          string          `json:"id"`
	Method      string          `json:"method"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"payment_date"`
}

// OrderFromDomain converts a domain order to a response.
func OrderFromDomain(o *domain.Order) *OrderResponse {
	resp := &OrderResponse{
		ID:            o.ID,
		BranchID:      o.BranchID,
		TableID:       o.TableID,
		CustomerName:  o.CustomerName,
		Type:          string(o.Type),
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		TotalAmount:   o.TotalAmount,
		Items:         make([]OrderItemResponse, 0, len(o.Items)),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}

	for _, item := range o.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
			Notes:     item.Notes,
		})
	}

	for _, payment := range o.Payments {
		resp.Payments = append(resp.Payments, PaymentResponse{
			ID:          payment.ID,
			Method:      payment.Method,
			Amount:      payment.Amount,
			PaymentDate: payment.PaymentDate,
		})
	}

	return resp
}

// OrdersFromDomain converts domain orders to responses.
func OrdersFromDomain(orders []*domain.Order) []*OrderResponse {
	result := make([]*OrderResponse, len(orders))
	for i, o := range orders {
		result[i] = OrderFromDomain(o)
	}
	return result
}

// StockResponse represents a ledger row in API responses.
type StockResponse struct {
	BranchID     string          `json:"branch_id"`
	IngredientID string          `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// StockFromDomain converts a domain stock entry to a response.
func StockFromDomain(e *domain.StockEntry) *StockResponse {
	return &StockResponse{
		BranchID:     e.BranchID,
		IngredientID: e.IngredientID,
		Quantity:     e.Quantity,
		UpdatedAt:    e.UpdatedAt,
	}
}

// StocksFromDomain converts domain stock entries to responses.
func StocksFromDomain(entries []*domain.StockEntry) []*StockResponse {
	result := make([]*StockResponse, len(entries))
	for i, e := range entries {
		result[i] = StockFromDomain(e)
	}
	return result
}

// QuantityResponse is the on-hand quantity of one branch/ingredient pair.
type QuantityResponse struct {
	BranchID     string          `json:"branch_id"`
	IngredientID string          `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// ValuationResponse represents the inventory valuation report.
type ValuationResponse struct {
	BranchID   string                 `json:"branch_id"`
	TotalValue decimal.Decimal        `json:"total_value"`
	Stocks     []ValuationRowResponse `json:"stocks"`
}

// ValuationRowResponse is one priced stock row.
type ValuationRowResponse struct {
	IngredientID   string          `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name"`
	Quantity       decimal.Decimal `json:"quantity"`
	CostPerUnit    decimal.Decimal `json:"cost_per_unit"`
	Value          decimal.Decimal `json:"value"`
}

// ValuationFromUseCase converts a valuation report to a response.
func ValuationFromUseCase(v *usecase.InventoryValuation) *ValuationResponse {
	resp := &ValuationResponse{
		BranchID:   v.BranchID,
		TotalValue: v.TotalValue,
		Stocks:     make([]ValuationRowResponse, 0, len(v.Stocks)),
	}

	for _, row := range v.Stocks {
		resp.Stocks = append(resp.Stocks, ValuationRowResponse{
			IngredientID:   row.IngredientID,
			IngredientName: row.IngredientName,
			Quantity:       row.Quantity,
			CostPerUnit:    row.CostPerUnit,
			Value:          row.Value,
		})
	}

	return resp
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message,omitempty"`
	Retryable bool   `json:"retryable,omitempty"`
}
