// Package mocks provides hand-rolled mock implementations of the use case
// interfaces. Every mock executes a sensible in-memory default unless the
// corresponding Func field is set.
package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warungpos/inventory/internal/domain"
	"github.com/warungpos/inventory/internal/usecase"
)

// MockStockRepository is a mock implementation of StockRepository backed by
// an in-memory quantity map.
type MockStockRepository struct {
	mu         sync.RWMutex
	quantities map[domain.StockKey]decimal.Decimal

	GetQuantityFunc  func(ctx context.Context, key domain.StockKey) (decimal.Decimal, error)
	GetForUpdateFunc func(ctx context.Context, tx usecase.Transaction, keys []domain.StockKey) (map[domain.StockKey]decimal.Decimal, error)
	ApplyDeltaFunc   func(ctx context.Context, tx usecase.Transaction, key domain.StockKey, delta decimal.Decimal, updatedAt time.Time) error
	SetAbsoluteFunc  func(ctx context.Context, tx usecase.Transaction, key domain.StockKey, quantity decimal.Decimal, updatedAt time.Time) error
	ListByBranchFunc func(ctx context.Context, branchID string, limit, offset int) ([]*domain.StockEntry, error)
	ValuationFunc    func(ctx context.Context, branchID string) ([]*domain.StockValuation, error)
}

func NewMockStockRepository() *MockStockRepository {
	return &MockStockRepository{
		quantities: make(map[domain.StockKey]decimal.Decimal),
	}
}

// Seed sets the in-memory quantity for a pair.
func (m *MockStockRepository) Seed(key domain.StockKey, qty decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quantities[key] = qty
}

// Quantity reads the in-memory quantity for a pair.
func (m *MockStockRepository) Quantity(key domain.StockKey) decimal.Decimal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.quantities[key]
}

func (m *MockStockRepository) GetQuantity(ctx context.Context, key domain.StockKey) (decimal.Decimal, error) {
	if m.GetQuantityFunc != nil {
		return m.GetQuantityFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.quantities[key], nil
}

func (m *MockStockRepository) GetForUpdate(ctx context.Context, tx usecase.Transaction, keys []domain.StockKey) (map[domain.StockKey]decimal.Decimal, error) {
	if m.GetForUpdateFunc != nil {
		return m.GetForUpdateFunc(ctx, tx, keys)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make(map[domain.StockKey]decimal.Decimal)
	for _, key := range keys {
		if qty, ok := m.quantities[key]; ok {
			result[key] = qty
		}
	}
	return result, nil
}

func (m *MockStockRepository) ApplyDelta(ctx context.Context, tx usecase.Transaction, key domain.StockKey, delta decimal.Decimal, updatedAt time.Time) error {
	if m.ApplyDeltaFunc != nil {
		return m.ApplyDeltaFunc(ctx, tx, key, delta, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quantities[key] = m.quantities[key].Add(delta)
	return nil
}

func (m *MockStockRepository) SetAbsolute(ctx context.Context, tx usecase.Transaction, key domain.StockKey, quantity decimal.Decimal, updatedAt time.Time) error {
	if m.SetAbsoluteFunc != nil {
		return m.SetAbsoluteFunc(ctx, tx, key, quantity, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quantities[key] = quantity
	return nil
}

func (m *MockStockRepository) ListByBranch(ctx context.Context, branchID string, limit, offset int) ([]*domain.StockEntry, error) {
	if m.ListByBranchFunc != nil {
		return m.ListByBranchFunc(ctx, branchID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.StockEntry
	for key, qty := range m.quantities {
		if key.BranchID == branchID {
			entries = append(entries, &domain.StockEntry{
				BranchID:     key.BranchID,
				IngredientID: key.IngredientID,
				Quantity:     qty,
			})
		}
	}
	return entries, nil
}

func (m *MockStockRepository) Valuation(ctx context.Context, branchID string) ([]*domain.StockValuation, error) {
	if m.ValuationFunc != nil {
		return m.ValuationFunc(ctx, branchID)
	}
	return []*domain.StockValuation{}, nil
}

// MockRecipeRepository is a mock implementation of RecipeRepository.
type MockRecipeRepository struct {
	mu      sync.RWMutex
	recipes map[string][]domain.Recipe

	ListByProductFunc func(ctx context.Context, productID string) ([]domain.Recipe, error)
}

func NewMockRecipeRepository() *MockRecipeRepository {
	return &MockRecipeRepository{
		recipes: make(map[string][]domain.Recipe),
	}
}

// SeedRecipe registers the recipe lines for a product.
func (m *MockRecipeRepository) SeedRecipe(productID string, lines []domain.Recipe) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recipes[productID] = lines
}

func (m *MockRecipeRepository) ListByProduct(ctx context.Context, productID string) ([]domain.Recipe, error) {
	if m.ListByProductFunc != nil {
		return m.ListByProductFunc(ctx, productID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.recipes[productID], nil
}

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product

	GetByIDFunc func(ctx context.Context, id string) (*domain.Product, error)
}

func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]*domain.Product),
	}
}

func (m *MockProductRepository) Seed(product *domain.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[product.ID] = product
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	product, ok := m.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

// MockIngredientRepository is a mock implementation of IngredientRepository.
// By default every ingredient exists.
type MockIngredientRepository struct {
	GetByIDFunc    func(ctx context.Context, id string) (*domain.Ingredient, error)
	CheckExistFunc func(ctx context.Context, ids []string) error
}

func NewMockIngredientRepository() *MockIngredientRepository {
	return &MockIngredientRepository{}
}

func (m *MockIngredientRepository) GetByID(ctx context.Context, id string) (*domain.Ingredient, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return &domain.Ingredient{ID: id, Name: "ingredient-" + id}, nil
}

func (m *MockIngredientRepository) CheckExist(ctx context.Context, ids []string) error {
	if m.CheckExistFunc != nil {
		return m.CheckExistFunc(ctx, ids)
	}
	return nil
}

// MockTransferRepository is a mock implementation of TransferRepository.
type MockTransferRepository struct {
	mu        sync.RWMutex
	transfers map[string]*domain.Transfer

	CreateFunc           func(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Transfer, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Transfer, error)
	UpdateStatusFunc     func(ctx context.Context, tx usecase.Transaction, id string, status domain.TransferStatus, updatedAt time.Time) error
	ListFunc             func(ctx context.Context, limit, offset int) ([]*domain.Transfer, error)
}

func NewMockTransferRepository() *MockTransferRepository {
	return &MockTransferRepository{
		transfers: make(map[string]*domain.Transfer),
	}
}

func (m *MockTransferRepository) Seed(transfer *domain.Transfer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transfers[transfer.ID] = transfer
}

func (m *MockTransferRepository) Create(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, transfer)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transfers[transfer.ID] = transfer
	return nil
}

func (m *MockTransferRepository) GetByID(ctx context.Context, id string) (*domain.Transfer, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	transfer, ok := m.transfers[id]
	if !ok {
		return nil, domain.ErrTransferNotFound
	}
	return transfer, nil
}

func (m *MockTransferRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Transfer, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockTransferRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.TransferStatus, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, tx, id, status, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	transfer, ok := m.transfers[id]
	if !ok {
		return domain.ErrTransferNotFound
	}
	transfer.Status = status
	transfer.UpdatedAt = updatedAt
	return nil
}

func (m *MockTransferRepository) List(ctx context.Context, limit, offset int) ([]*domain.Transfer, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	transfers := make([]*domain.Transfer, 0, len(m.transfers))
	for _, t := range m.transfers {
		transfers = append(transfers, t)
	}
	return transfers, nil
}

// MockAdjustmentRepository is a mock implementation of AdjustmentRepository.
type MockAdjustmentRepository struct {
	mu          sync.RWMutex
	adjustments map[string]*domain.Adjustment

	CreateFunc           func(ctx context.Context, adjustment *domain.Adjustment) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Adjustment, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Adjustment, error)
	ReplaceItemsFunc     func(ctx context.Context, tx usecase.Transaction, adjustment *domain.Adjustment) error
	UpdateStatusFunc     func(ctx context.Context, tx usecase.Transaction, id string, status domain.AdjustmentStatus, updatedAt time.Time) error
	ListFunc             func(ctx context.Context, limit, offset int) ([]*domain.Adjustment, error)
}

func NewMockAdjustmentRepository() *MockAdjustmentRepository {
	return &MockAdjustmentRepository{
		adjustments: make(map[string]*domain.Adjustment),
	}
}

func (m *MockAdjustmentRepository) Seed(adjustment *domain.Adjustment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.adjustments[adjustment.ID] = adjustment
}

func (m *MockAdjustmentRepository) Create(ctx context.Context, adjustment *domain.Adjustment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, adjustment)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.adjustments[adjustment.ID] = adjustment
	return nil
}

func (m *MockAdjustmentRepository) GetByID(ctx context.Context, id string) (*domain.Adjustment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	adjustment, ok := m.adjustments[id]
	if !ok {
		return nil, domain.ErrAdjustmentNotFound
	}
	return adjustment, nil
}

func (m *MockAdjustmentRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Adjustment, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockAdjustmentRepository) ReplaceItems(ctx context.Context, tx usecase.Transaction, adjustment *domain.Adjustment) error {
	if m.ReplaceItemsFunc != nil {
		return m.ReplaceItemsFunc(ctx, tx, adjustment)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.adjustments[adjustment.ID] = adjustment
	return nil
}

func (m *MockAdjustmentRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.AdjustmentStatus, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, tx, id, status, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	adjustment, ok := m.adjustments[id]
	if !ok {
		return domain.ErrAdjustmentNotFound
	}
	adjustment.Status = status
	adjustment.UpdatedAt = updatedAt
	return nil
}

func (m *MockAdjustmentRepository) List(ctx context.Context, limit, offset int) ([]*domain.Adjustment, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	adjustments := make([]*domain.Adjustment, 0, len(m.adjustments))
	for _, a := range m.adjustments {
		adjustments = append(adjustments, a)
	}
	return adjustments, nil
}

// MockWasteRepository is a mock implementation of WasteRepository.
type MockWasteRepository struct {
	mu     sync.RWMutex
	wastes map[string]*domain.Waste

	CreateFunc  func(ctx context.Context, tx usecase.Transaction, waste *domain.Waste) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.Waste, error)
	ListFunc    func(ctx context.Context, limit, offset int) ([]*domain.Waste, error)
}

func NewMockWasteRepository() *MockWasteRepository {
	return &MockWasteRepository{
		wastes: make(map[string]*domain.Waste),
	}
}

func (m *MockWasteRepository) Create(ctx context.Context, tx usecase.Transaction, waste *domain.Waste) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, waste)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wastes[waste.ID] = waste
	return nil
}

func (m *MockWasteRepository) GetByID(ctx context.Context, id string) (*domain.Waste, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	waste, ok := m.wastes[id]
	if !ok {
		return nil, domain.ErrWasteNotFound
	}
	return waste, nil
}

func (m *MockWasteRepository) List(ctx context.Context, limit, offset int) ([]*domain.Waste, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	wastes := make([]*domain.Waste, 0, len(m.wastes))
	for _, w := range m.wastes {
		wastes = append(wastes, w)
	}
	return wastes, nil
}

// MockPurchaseOrderRepository is a mock implementation of
// PurchaseOrderRepository.
type MockPurchaseOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*domain.PurchaseOrder

	CreateFunc           func(ctx context.Context, tx usecase.Transaction, po *domain.PurchaseOrder) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.PurchaseOrder, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.PurchaseOrder, error)
	ReplaceItemsFunc     func(ctx context.Context, tx usecase.Transaction, po *domain.PurchaseOrder) error
	UpdateStatusFunc     func(ctx context.Context, tx usecase.Transaction, id string, status domain.PurchaseOrderStatus, updatedAt time.Time) error
	DeleteFunc           func(ctx context.Context, tx usecase.Transaction, id string) error
	ListFunc             func(ctx context.Context, branchID string, limit, offset int) ([]*domain.PurchaseOrder, error)
}

func NewMockPurchaseOrderRepository() *MockPurchaseOrderRepository {
	return &MockPurchaseOrderRepository{
		orders: make(map[string]*domain.PurchaseOrder),
	}
}

func (m *MockPurchaseOrderRepository) Seed(po *domain.PurchaseOrder) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[po.ID] = po
}

func (m *MockPurchaseOrderRepository) Create(ctx context.Context, tx usecase.Transaction, po *domain.PurchaseOrder) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, po)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[po.ID] = po
	return nil
}

func (m *MockPurchaseOrderRepository) GetByID(ctx context.Context, id string) (*domain.PurchaseOrder, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	po, ok := m.orders[id]
	if !ok {
		return nil, domain.ErrPurchaseOrderNotFound
	}
	return po, nil
}

func (m *MockPurchaseOrderRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.PurchaseOrder, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockPurchaseOrderRepository) ReplaceItems(ctx context.Context, tx usecase.Transaction, po *domain.PurchaseOrder) error {
	if m.ReplaceItemsFunc != nil {
		return m.ReplaceItemsFunc(ctx, tx, po)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[po.ID] = po
	return nil
}

func (m *MockPurchaseOrderRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.PurchaseOrderStatus, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, tx, id, status, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	po, ok := m.orders[id]
	if !ok {
		return domain.ErrPurchaseOrderNotFound
	}
	po.Status = status
	po.UpdatedAt = updatedAt
	return nil
}

func (m *MockPurchaseOrderRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[id]; !ok {
		return domain.ErrPurchaseOrderNotFound
	}
	delete(m.orders, id)
	return nil
}

func (m *MockPurchaseOrderRepository) List(ctx context.Context, branchID string, limit, offset int) ([]*domain.PurchaseOrder, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, branchID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	orders := make([]*domain.PurchaseOrder, 0, len(m.orders))
	for _, po := range m.orders {
		if branchID == "" || po.BranchID == branchID {
			orders = append(orders, po)
		}
	}
	return orders, nil
}

// MockOrderRepository is a mock implementation of OrderRepository.
type MockOrderRepository struct {
	mu       sync.RWMutex
	orders   map[string]*domain.Order
	payments map[string][]*domain.Payment

	CreateFunc           func(ctx context.Context, tx usecase.Transaction, order *domain.Order) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Order, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Order, error)
	AddPaymentFunc       func(ctx context.Context, tx usecase.Transaction, payment *domain.Payment) error
	SumPaymentsFunc      func(ctx context.Context, tx usecase.Transaction, orderID string) (decimal.Decimal, error)
	UpdateStatusFunc     func(ctx context.Context, tx usecase.Transaction, id string, status domain.OrderStatus, paymentStatus domain.PaymentStatus, updatedAt time.Time) error
	ListFunc             func(ctx context.Context, filter domain.OrderFilter, limit, offset int) ([]*domain.Order, error)
}

func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders:   make(map[string]*domain.Order),
		payments: make(map[string][]*domain.Payment),
	}
}

func (m *MockOrderRepository) Seed(order *domain.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[order.ID] = order
}

func (m *MockOrderRepository) Create(ctx context.Context, tx usecase.Transaction, order *domain.Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, order)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[order.ID] = order
	return nil
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	order, ok := m.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

func (m *MockOrderRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Order, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockOrderRepository) AddPayment(ctx context.Context, tx usecase.Transaction, payment *domain.Payment) error {
	if m.AddPaymentFunc != nil {
		return m.AddPaymentFunc(ctx, tx, payment)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments[payment.OrderID] = append(m.payments[payment.OrderID], payment)
	return nil
}

func (m *MockOrderRepository) SumPayments(ctx context.Context, tx usecase.Transaction, orderID string) (decimal.Decimal, error) {
	if m.SumPaymentsFunc != nil {
		return m.SumPaymentsFunc(ctx, tx, orderID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := decimal.Zero
	for _, p := range m.payments[orderID] {
		total = total.Add(p.Amount)
	}
	return total, nil
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.OrderStatus, paymentStatus domain.PaymentStatus, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, tx, id, status, paymentStatus, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	order.Status = status
	order.PaymentStatus = paymentStatus
	order.UpdatedAt = updatedAt
	return nil
}

func (m *MockOrderRepository) List(ctx context.Context, filter domain.OrderFilter, limit, offset int) ([]*domain.Order, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	orders := make([]*domain.Order, 0, len(m.orders))
	for _, o := range m.orders {
		orders = append(orders, o)
	}
	return orders, nil
}

// MockOutboxRepository is a mock implementation of OutboxRepository.
type MockOutboxRepository struct {
	mu     sync.RWMutex
	events []*domain.OutboxEvent

	CreateFunc         func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
	GetUnpublishedFunc func(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublishedFunc  func(ctx context.Context, id string, publishedAt time.Time) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

// Events returns a copy of the recorded events.
func (m *MockOutboxRepository) Events() []*domain.OutboxEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.OutboxEvent(nil), m.events...)
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	if m.GetUnpublishedFunc != nil {
		return m.GetUnpublishedFunc(ctx, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var unpublished []*domain.OutboxEvent
	for _, e := range m.events {
		if !e.Published {
			unpublished = append(unpublished, e)
		}
		if len(unpublished) == limit {
			break
		}
	}
	return unpublished, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	if m.MarkPublishedFunc != nil {
		return m.MarkPublishedFunc(ctx, id, publishedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			e.Published = true
			e.PublishedAt = &publishedAt
		}
	}
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockRetrier is a mock implementation of Retrier that runs the operation
// once.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
	ReleaseFunc     func(ctx context.Context, key string) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response == nil {
		response = []byte("processing")
	}
	m.data[key] = response
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}

func (m *MockIdempotencyStore) Release(ctx context.Context, key string) error {
	if m.ReleaseFunc != nil {
		return m.ReleaseFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
