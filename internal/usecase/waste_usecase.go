package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warungpos/inventory/internal/domain"
)

// WasteUseCase records discarded stock. There is no draft phase: the waste
// record and the ledger decrements are one transaction.
type WasteUseCase struct {
	txManager      TransactionManager
	wasteRepo      WasteRepository
	ingredientRepo IngredientRepository
	outboxRepo     OutboxRepository
	ledger         *StockLedger
	idGen          IDGenerator
	retrier        Retrier
}

// NewWasteUseCase creates a new WasteUseCase.
func NewWasteUseCase(
	txManager TransactionManager,
	wasteRepo WasteRepository,
	ingredientRepo IngredientRepository,
	outboxRepo OutboxRepository,
	ledger *StockLedger,
	idGen IDGenerator,
	retrier Retrier,
) *WasteUseCase {
	return &WasteUseCase{
		txManager:      txManager,
		wasteRepo:      wasteRepo,
		ingredientRepo: ingredientRepo,
		outboxRepo:     outboxRepo,
		ledger:         ledger,
		idGen:          idGen,
		retrier:        retrier,
	}
}

// RecordWasteInput represents input for recording waste.
type RecordWasteInput struct {
	BranchID  string
	WasteDate time.Time
	Note      string
	Items     []WasteItemInput
}

// WasteItemInput is one discarded ingredient line.
type WasteItemInput struct {
	IngredientID string
	Quantity     decimal.Decimal
	Reason       string
}

// RecordWaste creates the waste record and decrements the ledger for each
// item. Under the default overdraft policy the decrement is unconditional;
// negative stock is a reconciliation signal, not a failure.
func (uc *WasteUseCase) RecordWaste(ctx context.Context, input RecordWasteInput) (*domain.Waste, error) {
	if input.BranchID == "" {
		return nil, domain.ErrMissingBranch
	}

	waste := &domain.Waste{
		ID:        uc.idGen.Generate(),
		BranchID:  input.BranchID,
		WasteDate: input.WasteDate,
		Note:      input.Note,
		CreatedAt: time.Now().UTC(),
	}

	ingredientIDs := make([]string, 0, len(input.Items))
	for _, item := range input.Items {
		if err := domain.ValidateQuantity(item.Quantity); err != nil {
			return nil, err
		}

		waste.Items = append(waste.Items, domain.WasteItem{
			ID:           uc.idGen.Generate(),
			IngredientID: item.IngredientID,
			Quantity:     item.Quantity,
			Reason:       item.Reason,
		})
		ingredientIDs = append(ingredientIDs, item.IngredientID)
	}

	if err := waste.Validate(); err != nil {
		return nil, err
	}

	if err := uc.ingredientRepo.CheckExist(ctx, ingredientIDs); err != nil {
		return nil, err
	}

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		deltas := waste.Deltas()
		if err := uc.ledger.Apply(ctx, tx, deltas); err != nil {
			return err
		}

		if err := uc.wasteRepo.Create(ctx, tx, waste); err != nil {
			return err
		}

		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   waste.ID,
			AggregateType: domain.AggregateTypeWaste,
			EventType:     domain.EventTypeWasteRecorded,
			Payload:       domain.NewStockMovedPayload(waste.BranchID, deltas),
			CreatedAt:     time.Now().UTC(),
		}
		if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	return waste, nil
}

// GetWaste retrieves a waste record by ID.
func (uc *WasteUseCase) GetWaste(ctx context.Context, id string) (*domain.Waste, error) {
	return uc.wasteRepo.GetByID(ctx, id)
}

// ListWastes lists waste records with pagination.
func (uc *WasteUseCase) ListWastes(ctx context.Context, limit, offset int) ([]*domain.Waste, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	return uc.wasteRepo.List(ctx, limit, offset)
}
