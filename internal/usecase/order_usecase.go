package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warungpos/inventory/internal/domain"
)

// OrderUseCase handles sales orders and their payments. Stock deduction fires
// exactly once per order, inside the payment transaction that first brings
// cumulative payments up to the order total.
type OrderUseCase struct {
	txManager   TransactionManager
	orderRepo   OrderRepository
	productRepo ProductRepository
	outboxRepo  OutboxRepository
	resolver    *RecipeResolver
	ledger      *StockLedger
	idGen       IDGenerator
	retrier     Retrier
}

// NewOrderUseCase creates a new OrderUseCase.
func NewOrderUseCase(
	txManager TransactionManager,
	orderRepo OrderRepository,
	productRepo ProductRepository,
	outboxRepo OutboxRepository,
	resolver *RecipeResolver,
	ledger *StockLedger,
	idGen IDGenerator,
	retrier Retrier,
) *OrderUseCase {
	return &OrderUseCase{
		txManager:   txManager,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		outboxRepo:  outboxRepo,
		resolver:    resolver,
		ledger:      ledger,
		idGen:       idGen,
		retrier:     retrier,
	}
}

// OrderItemInput is one requested product line.
type OrderItemInput struct {
	ProductID string
	Quantity  int64
	Notes     string
}

// CreateOrderInput represents input for creating an order.
type CreateOrderInput struct {
	BranchID     string
	TableID      string
	CustomerName string
	Type         domain.OrderType
	Items        []OrderItemInput
}

// CreateOrder creates a pending, unpaid order priced from the current product
// catalog. No ledger effect until payment completes.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error) {
	if input.BranchID == "" {
		return nil, domain.ErrMissingBranch
	}

	now := time.Now().UTC()

	order := &domain.Order{
		ID:            uc.idGen.Generate(),
		BranchID:      input.BranchID,
		TableID:       input.TableID,
		CustomerName:  input.CustomerName,
		Type:          input.Type,
		Status:        domain.OrderStatusPending,
		PaymentStatus: domain.PaymentStatusUnpaid,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if order.CustomerName == "" {
		order.CustomerName = "Guest"
	}

	for _, item := range input.Items {
		product, err := uc.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}

		order.Items = append(order.Items, domain.OrderItem{
			ID:        uc.idGen.Generate(),
			ProductID: product.ID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
			Notes:     item.Notes,
		})
	}

	if err := order.Validate(); err != nil {
		return nil, err
	}

	order.ComputeTotals()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.orderRepo.Create(ctx, tx, order); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return order, nil
}

// PayOrderInput represents one payment against an order.
type PayOrderInput struct {
	OrderID string
	Method  string
	Amount  decimal.Decimal
}

// Pay records a payment. When cumulative payments first reach the order
// total the order flips to paid/completed and every recipe ingredient of
// every item is deducted from the branch ledger, in the same transaction.
// Partial payments record the payment only. A paid order rejects further
// payments, which is what makes the deduction fire exactly once.
func (uc *OrderUseCase) Pay(ctx context.Context, input PayOrderInput) (*domain.Order, error) {
	if input.Amount.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	var order *domain.Order

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		o, err := uc.orderRepo.GetByIDForUpdate(ctx, tx, input.OrderID)
		if err != nil {
			return err
		}

		if o.PaymentStatus == domain.PaymentStatusPaid {
			return domain.ErrOrderAlreadyPaid
		}

		now := time.Now().UTC()

		payment := &domain.Payment{
			ID:          uc.idGen.Generate(),
			OrderID:     o.ID,
			Method:      input.Method,
			Amount:      input.Amount,
			PaymentDate: now,
		}
		if err := uc.orderRepo.AddPayment(ctx, tx, payment); err != nil {
			return err
		}

		totalPaid, err := uc.orderRepo.SumPayments(ctx, tx, o.ID)
		if err != nil {
			return err
		}

		if o.SettlePayment(totalPaid) {
			// Payment-completion edge: deduct the full order's consumption,
			// sized by the item list, not by this payment.
			deltas, err := uc.resolver.DeductionsForItems(ctx, o.BranchID, o.Items)
			if err != nil {
				return err
			}

			if err := uc.ledger.Apply(ctx, tx, deltas); err != nil {
				return err
			}

			event := &domain.OutboxEvent{
				ID:            uc.idGen.Generate(),
				AggregateID:   o.ID,
				AggregateType: domain.AggregateTypeOrder,
				EventType:     domain.EventTypeOrderPaid,
				Payload:       domain.NewStockMovedPayload(o.BranchID, deltas),
				CreatedAt:     now,
			}
			if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
				return err
			}
		}

		if err := uc.orderRepo.UpdateStatus(ctx, tx, o.ID, o.Status, o.PaymentStatus, now); err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		o.Payments = append(o.Payments, *payment)
		o.UpdatedAt = now
		order = o

		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// Cancel cancels an order that is not yet completed. Cancellation never
// touches the ledger: nothing was deducted for an unpaid order.
func (uc *OrderUseCase) Cancel(ctx context.Context, id string) (*domain.Order, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	order, err := uc.orderRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := order.Cancel(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := uc.orderRepo.UpdateStatus(ctx, tx, order.ID, order.Status, order.PaymentStatus, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	order.UpdatedAt = now

	return order, nil
}

// GetOrder retrieves an order by ID.
func (uc *OrderUseCase) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return uc.orderRepo.GetByID(ctx, id)
}

// ListOrders lists orders matching the filter.
func (uc *OrderUseCase) ListOrders(ctx context.Context, filter domain.OrderFilter, limit, offset int) ([]*domain.Order, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	return uc.orderRepo.List(ctx, filter, limit, offset)
}
