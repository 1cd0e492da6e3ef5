package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warungpos/inventory/internal/domain"
)

// PurchaseOrderUseCase handles purchasing: pending orders are editable,
// approval is a plain status step, receiving increments the ledger. The
// received transition is made in the same transaction as the deltas, so a
// concurrent second receive is stopped by the status check under lock rather
// than double-counting.
type PurchaseOrderUseCase struct {
	txManager      TransactionManager
	purchaseRepo   PurchaseOrderRepository
	ingredientRepo IngredientRepository
	outboxRepo     OutboxRepository
	ledger         *StockLedger
	idGen          IDGenerator
	retrier        Retrier
}

// NewPurchaseOrderUseCase creates a new PurchaseOrderUseCase.
func NewPurchaseOrderUseCase(
	txManager TransactionManager,
	purchaseRepo PurchaseOrderRepository,
	ingredientRepo IngredientRepository,
	outboxRepo OutboxRepository,
	ledger *StockLedger,
	idGen IDGenerator,
	retrier Retrier,
) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{
		txManager:      txManager,
		purchaseRepo:   purchaseRepo,
		ingredientRepo: ingredientRepo,
		outboxRepo:     outboxRepo,
		ledger:         ledger,
		idGen:          idGen,
		retrier:        retrier,
	}
}

// PurchaseOrderItemInput is one ordered ingredient line.
type PurchaseOrderItemInput struct {
	IngredientID string
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
}

// CreatePurchaseOrderInput represents input for creating a purchase order.
type CreatePurchaseOrderInput struct {
	SupplierID string
	BranchID   string
	OrderDate  time.Time
	Items      []PurchaseOrderItemInput
}

// CreatePurchaseOrder creates a pending purchase order. No ledger effect.
func (uc *PurchaseOrderUseCase) CreatePurchaseOrder(ctx context.Context, input CreatePurchaseOrderInput) (*domain.PurchaseOrder, error) {
	if input.BranchID == "" {
		return nil, domain.ErrMissingBranch
	}

	now := time.Now().UTC()

	po := &domain.PurchaseOrder{
		ID:         uc.idGen.Generate(),
		SupplierID: input.SupplierID,
		BranchID:   input.BranchID,
		OrderDate:  input.OrderDate,
		Status:     domain.PurchaseOrderStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	items, ingredientIDs, err := uc.buildItems(input.Items)
	if err != nil {
		return nil, err
	}

	po.Items = items
	if err := po.Validate(); err != nil {
		return nil, err
	}

	po.ComputeTotals()

	if err := uc.ingredientRepo.CheckExist(ctx, ingredientIDs); err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.purchaseRepo.Create(ctx, tx, po); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return po, nil
}

// UpdatePurchaseOrder replaces the items of a pending order and recomputes
// its total. The pending check happens under the order row lock so a
// concurrent receive cannot land between check and write.
func (uc *PurchaseOrderUseCase) UpdatePurchaseOrder(ctx context.Context, id string, itemInputs []PurchaseOrderItemInput) (*domain.PurchaseOrder, error) {
	items, ingredientIDs, err := uc.buildItems(itemInputs)
	if err != nil {
		return nil, err
	}

	if err := uc.ingredientRepo.CheckExist(ctx, ingredientIDs); err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	po, err := uc.purchaseRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if po.Status != domain.PurchaseOrderStatusPending {
		return nil, domain.ErrPurchaseOrderNotPending
	}

	po.Items = items
	if err := po.Validate(); err != nil {
		return nil, err
	}

	po.ComputeTotals()
	po.UpdatedAt = time.Now().UTC()

	if err := uc.purchaseRepo.ReplaceItems(ctx, tx, po); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return po, nil
}

// Approve transitions a pending order to approved.
func (uc *PurchaseOrderUseCase) Approve(ctx context.Context, id string) (*domain.PurchaseOrder, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	po, err := uc.purchaseRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := po.Approve(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := uc.purchaseRepo.UpdateStatus(ctx, tx, po.ID, domain.PurchaseOrderStatusApproved, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	po.UpdatedAt = now

	return po, nil
}

// Receive marks the order received and credits every item to the branch
// ledger, all in one transaction. An already-received order fails the status
// check under lock; the ledger itself does not deduplicate.
func (uc *PurchaseOrderUseCase) Receive(ctx context.Context, id string) (*domain.PurchaseOrder, error) {
	var po *domain.PurchaseOrder

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		p, err := uc.purchaseRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := p.MarkReceived(); err != nil {
			return err
		}

		deltas := p.Deltas()
		if err := uc.ledger.Apply(ctx, tx, deltas); err != nil {
			return err
		}

		now := time.Now().UTC()
		if err := uc.purchaseRepo.UpdateStatus(ctx, tx, p.ID, domain.PurchaseOrderStatusReceived, now); err != nil {
			return err
		}

		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   p.ID,
			AggregateType: domain.AggregateTypePurchaseOrder,
			EventType:     domain.EventTypePurchaseOrderReceived,
			Payload:       domain.NewStockMovedPayload(p.BranchID, deltas),
			CreatedAt:     now,
		}
		if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		p.UpdatedAt = now
		po = p

		return nil
	})
	if err != nil {
		return nil, err
	}

	return po, nil
}

// DeletePurchaseOrder deletes a pending order. The pending check and the
// delete share one transaction and row lock, so a received order's history
// rows can never be removed.
func (uc *PurchaseOrderUseCase) DeletePurchaseOrder(ctx context.Context, id string) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	po, err := uc.purchaseRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return err
	}

	if po.Status != domain.PurchaseOrderStatusPending {
		return domain.ErrPurchaseOrderNotPending
	}

	if err := uc.purchaseRepo.Delete(ctx, tx, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// GetPurchaseOrder retrieves a purchase order by ID.
func (uc *PurchaseOrderUseCase) GetPurchaseOrder(ctx context.Context, id string) (*domain.PurchaseOrder, error) {
	return uc.purchaseRepo.GetByID(ctx, id)
}

// ListPurchaseOrders lists purchase orders, optionally filtered by branch.
func (uc *PurchaseOrderUseCase) ListPurchaseOrders(ctx context.Context, branchID string, limit, offset int) ([]*domain.PurchaseOrder, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	return uc.purchaseRepo.List(ctx, branchID, limit, offset)
}

func (uc *PurchaseOrderUseCase) buildItems(inputs []PurchaseOrderItemInput) ([]domain.PurchaseOrderItem, []string, error) {
	items := make([]domain.PurchaseOrderItem, 0, len(inputs))
	ids := make([]string, 0, len(inputs))

	for _, in := range inputs {
		if err := domain.ValidateQuantity(in.Quantity); err != nil {
			return nil, nil, err
		}

		items = append(items, domain.PurchaseOrderItem{
			ID:           uc.idGen.Generate(),
			IngredientID: in.IngredientID,
			Quantity:     in.Quantity,
			UnitPrice:    in.UnitPrice,
		})
		ids = append(ids, in.IngredientID)
	}

	return items, ids, nil
}
