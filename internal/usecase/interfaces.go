package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warungpos/inventory/internal/domain"
)

// StockRepository defines data access for the stock ledger rows.
type StockRepository interface {
	// GetQuantity returns the current quantity for a pair, zero when no row
	// exists. Plain read, no lock.
	GetQuantity(ctx context.Context, key domain.StockKey) (decimal.Decimal, error)
	// GetForUpdate locks the rows for the given keys (FOR UPDATE, canonical
	// order) and returns current quantities. Missing pairs are absent from
	// the map.
	GetForUpdate(ctx context.Context, tx Transaction, keys []domain.StockKey) (map[domain.StockKey]decimal.Decimal, error)
	// ApplyDelta adds delta to the row, creating it at delta when absent.
	ApplyDelta(ctx context.Context, tx Transaction, key domain.StockKey, delta decimal.Decimal, updatedAt time.Time) error
	// SetAbsolute overwrites the row quantity, creating the row when absent.
	SetAbsolute(ctx context.Context, tx Transaction, key domain.StockKey, quantity decimal.Decimal, updatedAt time.Time) error
	ListByBranch(ctx context.Context, branchID string, limit, offset int) ([]*domain.StockEntry, error)
	Valuation(ctx context.Context, branchID string) ([]*domain.StockValuation, error)
}

// RecipeRepository defines read access to product recipes.
type RecipeRepository interface {
	ListByProduct(ctx context.Context, productID string) ([]domain.Recipe, error)
}

// ProductRepository defines read access to sellable products.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

// IngredientRepository defines read access to ingredients.
type IngredientRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Ingredient, error)
	// CheckExist fails with ErrIngredientNotFound when any id is unknown.
	CheckExist(ctx context.Context, ids []string) error
}

// TransferRepository defines data access for stock transfers.
type TransferRepository interface {
	Create(ctx context.Context, tx Transaction, transfer *domain.Transfer) error
	GetByID(ctx context.Context, id string) (*domain.Transfer, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Transfer, error)
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.TransferStatus, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Transfer, error)
}

// AdjustmentRepository defines data access for stock adjustments.
type AdjustmentRepository interface {
	Create(ctx context.Context, adjustment *domain.Adjustment) error
	GetByID(ctx context.Context, id string) (*domain.Adjustment, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Adjustment, error)
	ReplaceItems(ctx context.Context, tx Transaction, adjustment *domain.Adjustment) error
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.AdjustmentStatus, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Adjustment, error)
}

// WasteRepository defines data access for waste records.
type WasteRepository interface {
	Create(ctx context.Context, tx Transaction, waste *domain.Waste) error
	GetByID(ctx context.Context, id string) (*domain.Waste, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Waste, error)
}

// PurchaseOrderRepository defines data access for purchase orders.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, tx Transaction, po *domain.PurchaseOrder) error
	GetByID(ctx context.Context, id string) (*domain.PurchaseOrder, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.PurchaseOrder, error)
	ReplaceItems(ctx context.Context, tx Transaction, po *domain.PurchaseOrder) error
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.PurchaseOrderStatus, updatedAt time.Time) error
	Delete(ctx context.Context, tx Transaction, id string) error
	List(ctx context.Context, branchID string, limit, offset int) ([]*domain.PurchaseOrder, error)
}

// OrderRepository defines data access for sales orders and payments.
type OrderRepository interface {
	Create(ctx context.Context, tx Transaction, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Order, error)
	AddPayment(ctx context.Context, tx Transaction, payment *domain.Payment) error
	// SumPayments returns cumulative payments for the order, inside the
	// locking transaction.
	SumPayments(ctx context.Context, tx Transaction, orderID string) (decimal.Decimal, error)
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.OrderStatus, paymentStatus domain.PaymentStatus, updatedAt time.Time) error
	List(ctx context.Context, filter domain.OrderFilter, limit, offset int) ([]*domain.Order, error)
}

// OutboxRepository defines data access for movement events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries an operation on retryable (deadlock/serialization) errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations for read-side reports.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a claimed key so the request may be retried.
	Release(ctx context.Context, key string) error
}
