package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warungpos/inventory/internal/domain"
)

// AdjustmentUseCase handles physical stock count reconciliation: a draft
// collects counted items (with the ledger value snapshotted at entry time),
// finalize writes each actual count to the ledger as an absolute value.
type AdjustmentUseCase struct {
	txManager      TransactionManager
	adjustmentRepo AdjustmentRepository
	ingredientRepo IngredientRepository
	outboxRepo     OutboxRepository
	ledger         *StockLedger
	idGen          IDGenerator
	retrier        Retrier
}

// NewAdjustmentUseCase creates a new AdjustmentUseCase.
func NewAdjustmentUseCase(
	txManager TransactionManager,
	adjustmentRepo AdjustmentRepository,
	ingredientRepo IngredientRepository,
	outboxRepo OutboxRepository,
	ledger *StockLedger,
	idGen IDGenerator,
	retrier Retrier,
) *AdjustmentUseCase {
	return &AdjustmentUseCase{
		txManager:      txManager,
		adjustmentRepo: adjustmentRepo,
		ingredientRepo: ingredientRepo,
		outboxRepo:     outboxRepo,
		ledger:         ledger,
		idGen:          idGen,
		retrier:        retrier,
	}
}

// CreateAdjustmentInput represents input for creating an adjustment draft.
type CreateAdjustmentInput struct {
	BranchID       string
	AdjustmentDate time.Time
	Note           string
}

// CreateDraft creates an empty adjustment draft. No ledger effect.
func (uc *AdjustmentUseCase) CreateDraft(ctx context.Context, input CreateAdjustmentInput) (*domain.Adjustment, error) {
	if input.BranchID == "" {
		return nil, domain.ErrMissingBranch
	}

	now := time.Now().UTC()

	adjustment := &domain.Adjustment{
		ID:             uc.idGen.Generate(),
		BranchID:       input.BranchID,
		AdjustmentDate: input.AdjustmentDate,
		Status:         domain.AdjustmentStatusDraft,
		Note:           input.Note,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.adjustmentRepo.Create(ctx, adjustment); err != nil {
		return nil, err
	}

	return adjustment, nil
}

// AdjustmentItemInput is one counted ingredient.
type AdjustmentItemInput struct {
	IngredientID string
	ActualStock  decimal.Decimal
}

// UpdateDraftInput represents input for updating a draft.
type UpdateDraftInput struct {
	ID    string
	Note  *string
	Items []AdjustmentItemInput
}

// UpdateDraft replaces the draft's items wholesale. For each item the current
// ledger quantity is captured as the system stock of the count; the recorded
// difference is actual minus system as of this moment, even if the ledger
// drifts before finalize. The draft check happens under the adjustment row
// lock so a concurrent finalize cannot slip between check and write.
func (uc *AdjustmentUseCase) UpdateDraft(ctx context.Context, input UpdateDraftInput) (*domain.Adjustment, error) {
	if input.Items != nil {
		ingredientIDs := make([]string, 0, len(input.Items))
		for _, item := range input.Items {
			if item.ActualStock.IsNegative() {
				return nil, domain.ErrInvalidAmount
			}

			ingredientIDs = append(ingredientIDs, item.IngredientID)
		}

		if err := uc.ingredientRepo.CheckExist(ctx, ingredientIDs); err != nil {
			return nil, err
		}
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	adjustment, err := uc.adjustmentRepo.GetByIDForUpdate(ctx, tx, input.ID)
	if err != nil {
		return nil, err
	}

	if adjustment.Status != domain.AdjustmentStatusDraft {
		return nil, domain.ErrAdjustmentCompleted
	}

	if input.Note != nil {
		adjustment.Note = *input.Note
	}

	if input.Items != nil {
		items := make([]domain.AdjustmentItem, 0, len(input.Items))
		for _, item := range input.Items {
			systemStock, err := uc.ledger.Quantity(ctx, domain.StockKey{
				BranchID:     adjustment.BranchID,
				IngredientID: item.IngredientID,
			})
			if err != nil {
				return nil, err
			}

			captured := domain.NewAdjustmentItem(item.IngredientID, systemStock, item.ActualStock)
			captured.ID = uc.idGen.Generate()
			items = append(items, captured)
		}

		adjustment.Items = items
	}

	adjustment.UpdatedAt = time.Now().UTC()

	if err := uc.adjustmentRepo.ReplaceItems(ctx, tx, adjustment); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return adjustment, nil
}

// Finalize sets each counted ingredient's ledger row to the actual stock
// (absolute write, not a delta) and completes the adjustment. Requires a
// draft with at least one item; completed adjustments are immutable, so a
// second finalize fails instead of applying twice.
func (uc *AdjustmentUseCase) Finalize(ctx context.Context, id string) (*domain.Adjustment, error) {
	var adjustment *domain.Adjustment

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		a, err := uc.adjustmentRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := a.Finalize(); err != nil {
			return err
		}

		if err := uc.ledger.SetAbsolute(ctx, tx, a.Levels()); err != nil {
			return err
		}

		now := time.Now().UTC()
		if err := uc.adjustmentRepo.UpdateStatus(ctx, tx, a.ID, domain.AdjustmentStatusCompleted, now); err != nil {
			return err
		}

		deltas := make([]domain.StockDelta, 0, len(a.Items))
		for _, item := range a.Items {
			deltas = append(deltas, domain.StockDelta{
				Key:      domain.StockKey{BranchID: a.BranchID, IngredientID: item.IngredientID},
				Quantity: item.Difference,
			})
		}

		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   a.ID,
			AggregateType: domain.AggregateTypeAdjustment,
			EventType:     domain.EventTypeAdjustmentCompleted,
			Payload:       domain.NewStockMovedPayload(a.BranchID, deltas),
			CreatedAt:     now,
		}
		if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		a.UpdatedAt = now
		adjustment = a

		return nil
	})
	if err != nil {
		return nil, err
	}

	return adjustment, nil
}

// GetAdjustment retrieves an adjustment by ID.
func (uc *AdjustmentUseCase) GetAdjustment(ctx context.Context, id string) (*domain.Adjustment, error) {
	return uc.adjustmentRepo.GetByID(ctx, id)
}

// ListAdjustments lists adjustments with pagination.
func (uc *AdjustmentUseCase) ListAdjustments(ctx context.Context, limit, offset int) ([]*domain.Adjustment, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	return uc.adjustmentRepo.List(ctx, limit, offset)
}
