package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warungpos/inventory/internal/domain"
	"github.com/warungpos/inventory/internal/usecase"
)

// CreateTransferRequest represents a request to create a stock transfer.
type CreateTransferRequest struct {
	FromBranchID string                `json:"from_branch_id"`
	ToBranchID   string                `json:"to_branch_id"`
	TransferDate *time.Time            `json:"transfer_date,omitempty"`
	Note         string                `json:"note,omitempty"`
	Items        []TransferItemRequest `json:"items"`
}

// TransferItemRequest is one ingredient line of a transfer request.
type TransferItemRequest struct {
	IngredientID string          `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransferRequest) ToUseCaseInput() usecase.CreateTransferInput {
	input := usecase.CreateTransferInput{
		FromBranchID: r.FromBranchID,
		ToBranchID:   r.ToBranchID,
		TransferDate: time.Now().UTC(),
		Note:         r.Note,
	}

	if r.TransferDate != nil {
		input.TransferDate = *r.TransferDate
	}

	for _, item := range r.Items {
		input.Items = append(input.Items, usecase.TransferItemInput{
			IngredientID: item.IngredientID,
			Quantity:     item.Quantity,
		})
	}

	return input
}

// CreateAdjustmentRequest represents a request to open an adjustment draft.
type CreateAdjustmentRequest struct {
	BranchID       string     `json:"branch_id"`
	AdjustmentDate *time.Time `json:"adjustment_date,omitempty"`
	Note           string     `json:"note,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAdjustmentRequest) ToUseCaseInput() usecase.CreateAdjustmentInput {
	input := usecase.CreateAdjustmentInput{
		BranchID:       r.BranchID,
		AdjustmentDate: time.Now().UTC(),
		Note:           r.Note,
	}

	if r.AdjustmentDate != nil {
		input.AdjustmentDate = *r.AdjustmentDate
	}

	return input
}

// UpdateAdjustmentRequest replaces the items of an adjustment draft.
type UpdateAdjustmentRequest struct {
	Note  *string                 `json:"note,omitempty"`
	Items []AdjustmentItemRequest `json:"items"`
}

// AdjustmentItemRequest is one counted ingredient.
type AdjustmentItemRequest struct {
	IngredientID string          `json:"ingredient_id"`
	ActualStock  decimal.Decimal `json:"actual_stock"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateAdjustmentRequest) ToUseCaseInput(id string) usecase.UpdateDraftInput {
	input := usecase.UpdateDraftInput{
		ID:   id,
		Note: r.Note,
	}

	for _, item := range r.Items {
		input.Items = append(input.Items, usecase.AdjustmentItemInput{
			IngredientID: item.IngredientID,
			ActualStock:  item.ActualStock,
		})
	}

	return input
}

// RecordWasteRequest represents a request to record waste.
type RecordWasteRequest struct {
	BranchID  string             `json:"branch_id"`
	WasteDate *time.Time         `json:"waste_date,omitempty"`
	Note      string             `json:"note,omitempty"`
	Items     []WasteItemRequest `json:"items"`
}

// WasteItemRequest is one discarded ingredient line.
type WasteItemRequest struct {
	IngredientID string          `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	Reason       string          `json:"reason,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *RecordWasteRequest) ToUseCaseInput() usecase.RecordWasteInput {
	input := usecase.RecordWasteInput{
		BranchID:  r.BranchID,
		WasteDate: time.Now().UTC(),
		Note:      r.Note,
	}

	if r.WasteDate != nil {
		input.WasteDate = *r.WasteDate
	}

	for _, item := range r.Items {
		input.Items = append(input.Items, usecase.WasteItemInput{
			IngredientID: item.IngredientID,
			Quantity:     item.Quantity,
			Reason:       item.Reason,
		})
	}

	return input
}

// CreatePurchaseOrderRequest represents a request to create a purchase order.
type CreatePurchaseOrderRequest struct {
	SupplierID string                     `json:"supplier_id"`
	BranchID   string                     `json:"branch_id"`
	OrderDate  *time.Time                 `json:"order_date,omitempty"`
	Items      []PurchaseOrderItemRequest `json:"items"`
}

// PurchaseOrderItemRequest is one ordered ingredient line.
type PurchaseOrderItemRequest struct {
	IngredientID string          `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
}

// ToUseCaseInput converts to use case input.
func (r *CreatePurchaseOrderRequest) ToUseCaseInput() usecase.CreatePurchaseOrderInput {
	input := usecase.CreatePurchaseOrderInput{
		SupplierID: r.SupplierID,
		BranchID:   r.BranchID,
		OrderDate:  time.Now().UTC(),
	}

	if r.OrderDate != nil {
		input.OrderDate = *r.OrderDate
	}

	input.Items = purchaseItemsToInput(r.Items)

	return input
}

// UpdatePurchaseOrderRequest replaces the items of a pending purchase order.
type UpdatePurchaseOrderRequest struct {
	Items []PurchaseOrderItemRequest `json:"items"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdatePurchaseOrderRequest) ToUseCaseInput() []usecase.PurchaseOrderItemInput {
	return purchaseItemsToInput(r.Items)
}

func purchaseItemsToInput(items []PurchaseOrderItemRequest) []usecase.PurchaseOrderItemInput {
	inputs := make([]usecase.PurchaseOrderItemInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, usecase.PurchaseOrderItemInput{
			IngredientID: item.IngredientID,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
		})
	}

	return inputs
}

// CreateOrderRequest represents a request to create a sales order.
type CreateOrderRequest struct {
	BranchID     string             `json:"branch_id"`
	TableID      string             `json:"table_id,omitempty"`
	CustomerName string             `json:"customer_name,omitempty"`
	Type         string             `json:"order_type"`
	Items        []OrderItemRequest `json:"items"`
}

// OrderItemRequest is one product line of an order request.
type OrderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	Notes     string `json:"notes,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateOrderRequest) ToUseCaseInput() usecase.CreateOrderInput {
	input := usecase.CreateOrderInput{
		BranchID:     r.BranchID,
		TableID:      r.TableID,
		CustomerName: r.CustomerName,
		Type:         domain.OrderType(r.Type),
	}

	for _, item := range r.Items {
		input.Items = append(input.Items, usecase.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Notes:     item.Notes,
		})
	}

	return input
}

// PayOrderRequest represents one payment against an order.
type PayOrderRequest struct {
	Method string          `json:"method"`
	Amount decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *PayOrderRequest) ToUseCaseInput(orderID string) usecase.PayOrderInput {
	return usecase.PayOrderInput{
		OrderID: orderID,
		Method:  r.Method,
		Amount:  r.Amount,
	}
}
