package domain

import "errors"

var (
	// Stock errors
	ErrStockEntryNotFound = errors.New("stock entry not found")
	ErrInsufficientStock  = errors.New("insufficient stock at source branch")
	ErrIngredientNotFound = errors.New("ingredient not found")

	// Transfer errors
	ErrSameBranch         = errors.New("cannot transfer to the same branch")
	ErrTransferNotFound   = errors.New("transfer not found")
	ErrTransferNotPending = errors.New("transfer status is not pending")
	ErrTransferNotShipped = errors.New("transfer must be shipped before receiving")

	// Adjustment errors
	ErrAdjustmentNotFound  = errors.New("adjustment not found")
	ErrAdjustmentCompleted = errors.New("adjustment is already completed")
	ErrAdjustmentEmpty     = errors.New("cannot finalize an adjustment with no items")

	// Waste errors
	ErrWasteNotFound = errors.New("waste record not found")

	// Purchase order errors
	ErrPurchaseOrderNotFound   = errors.New("purchase order not found")
	ErrPurchaseOrderNotPending = errors.New("purchase order is not pending")
	ErrPurchaseOrderReceived   = errors.New("purchase order is already received")

	// Order errors
	ErrOrderNotFound    = errors.New("order not found")
	ErrOrderAlreadyPaid = errors.New("order is already paid")
	ErrOrderNotOpen     = errors.New("order is completed or cancelled")
	ErrProductNotFound  = errors.New("product not found")

	// ErrConcurrencyConflict is returned when concurrent writes kept
	// colliding and retries ran out. The request can be resubmitted as-is.
	ErrConcurrencyConflict = errors.New("concurrent modification, retry the request")
)
