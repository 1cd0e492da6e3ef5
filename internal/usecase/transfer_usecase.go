package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warungpos/inventory/internal/domain"
)

// TransferUseCase handles the two-phase branch-to-branch transfer workflow:
// pending at creation (no ledger effect), ship decrements the source, receive
// increments the destination.
type TransferUseCase struct {
	txManager      TransactionManager
	transferRepo   TransferRepository
	ingredientRepo IngredientRepository
	outboxRepo     OutboxRepository
	ledger         *StockLedger
	idGen          IDGenerator
	retrier        Retrier
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(
	txManager TransactionManager,
	transferRepo TransferRepository,
	ingredientRepo IngredientRepository,
	outboxRepo OutboxRepository,
	ledger *StockLedger,
	idGen IDGenerator,
	retrier Retrier,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:      txManager,
		transferRepo:   transferRepo,
		ingredientRepo: ingredientRepo,
		outboxRepo:     outboxRepo,
		ledger:         ledger,
		idGen:          idGen,
		retrier:        retrier,
	}
}

// CreateTransferInput represents input for creating a transfer.
type CreateTransferInput struct {
	FromBranchID string
	ToBranchID   string
	TransferDate time.Time
	Note         string
	Items        []TransferItemInput
}

// TransferItemInput is one requested ingredient line.
type TransferItemInput struct {
	IngredientID string
	Quantity     decimal.Decimal
}

// CreateTransfer creates a transfer in pending status. The ledger is not
// touched yet; availability is only pre-checked without locks, the
// authoritative check happens at ship time.
func (uc *TransferUseCase) CreateTransfer(ctx context.Context, input CreateTransferInput) (*domain.Transfer, error) {
	now := time.Now().UTC()

	transfer := &domain.Transfer{
		ID:           uc.idGen.Generate(),
		FromBranchID: input.FromBranchID,
		ToBranchID:   input.ToBranchID,
		TransferDate: input.TransferDate,
		Status:       domain.TransferStatusPending,
		Note:         input.Note,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	ingredientIDs := make([]string, 0, len(input.Items))
	for _, item := range input.Items {
		if err := domain.ValidateQuantity(item.Quantity); err != nil {
			return nil, err
		}

		transfer.Items = append(transfer.Items, domain.TransferItem{
			ID:           uc.idGen.Generate(),
			IngredientID: item.IngredientID,
			Quantity:     item.Quantity,
		})
		ingredientIDs = append(ingredientIDs, item.IngredientID)
	}

	if err := transfer.Validate(); err != nil {
		return nil, err
	}

	if err := uc.ingredientRepo.CheckExist(ctx, ingredientIDs); err != nil {
		return nil, err
	}

	// Courtesy pre-check so an obviously unfillable transfer is rejected up
	// front. Not authoritative: nothing is locked here.
	for _, item := range transfer.Items {
		key := domain.StockKey{BranchID: transfer.FromBranchID, IngredientID: item.IngredientID}

		qty, err := uc.ledger.Quantity(ctx, key)
		if err != nil {
			return nil, err
		}

		if qty.LessThan(item.Quantity) {
			return nil, fmt.Errorf("%w: ingredient %s", domain.ErrInsufficientStock, item.IngredientID)
		}
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.transferRepo.Create(ctx, tx, transfer); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return transfer, nil
}

// Ship transitions a pending transfer to shipped, deducting every item from
// the source branch. The whole deduction is one transaction: if any single
// item lacks stock, nothing ships.
func (uc *TransferUseCase) Ship(ctx context.Context, id string) (*domain.Transfer, error) {
	var transfer *domain.Transfer

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		t, err := uc.transferRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := t.Ship(); err != nil {
			return err
		}

		deltas := make([]domain.StockDelta, 0, len(t.Items))
		for _, item := range t.Items {
			deltas = append(deltas, domain.StockDelta{
				Key:      domain.StockKey{BranchID: t.FromBranchID, IngredientID: item.IngredientID},
				Quantity: item.Quantity.Neg(),
			})
		}

		if err := uc.ledger.ApplyRequireStock(ctx, tx, deltas); err != nil {
			return err
		}

		now := time.Now().UTC()
		if err := uc.transferRepo.UpdateStatus(ctx, tx, t.ID, domain.TransferStatusShipped, now); err != nil {
			return err
		}

		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   t.ID,
			AggregateType: domain.AggregateTypeTransfer,
			EventType:     domain.EventTypeTransferShipped,
			Payload:       domain.NewStockMovedPayload(t.FromBranchID, deltas),
			CreatedAt:     now,
		}
		if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		t.UpdatedAt = now
		transfer = t

		return nil
	})
	if err != nil {
		return nil, err
	}

	return transfer, nil
}

// Receive transitions a shipped transfer to received, crediting every item to
// the destination branch. Increments need no sufficiency check.
func (uc *TransferUseCase) Receive(ctx context.Context, id string) (*domain.Transfer, error) {
	var transfer *domain.Transfer

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		t, err := uc.transferRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := t.Receive(); err != nil {
			return err
		}

		deltas := make([]domain.StockDelta, 0, len(t.Items))
		for _, item := range t.Items {
			deltas = append(deltas, domain.StockDelta{
				Key:      domain.StockKey{BranchID: t.ToBranchID, IngredientID: item.IngredientID},
				Quantity: item.Quantity,
			})
		}

		if err := uc.ledger.Apply(ctx, tx, deltas); err != nil {
			return err
		}

		now := time.Now().UTC()
		if err := uc.transferRepo.UpdateStatus(ctx, tx, t.ID, domain.TransferStatusReceived, now); err != nil {
			return err
		}

		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   t.ID,
			AggregateType: domain.AggregateTypeTransfer,
			EventType:     domain.EventTypeTransferReceived,
			Payload:       domain.NewStockMovedPayload(t.ToBranchID, deltas),
			CreatedAt:     now,
		}
		if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		t.UpdatedAt = now
		transfer = t

		return nil
	})
	if err != nil {
		return nil, err
	}

	return transfer, nil
}

// GetTransfer retrieves a transfer by ID.
func (uc *TransferUseCase) GetTransfer(ctx context.Context, id string) (*domain.Transfer, error) {
	return uc.transferRepo.GetByID(ctx, id)
}

// ListTransfers lists transfers with pagination.
func (uc *TransferUseCase) ListTransfers(ctx context.Context, limit, offset int) ([]*domain.Transfer, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	return uc.transferRepo.List(ctx, limit, offset)
}
