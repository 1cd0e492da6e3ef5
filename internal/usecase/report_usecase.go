package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warungpos/inventory/internal/domain"
)

// ReportUseCase serves read-side views over the ledger: current quantities
// and inventory valuation. Pure reads, read-committed, explicitly tolerant of
// being slightly stale relative to in-flight movements; valuation is cached.
type ReportUseCase struct {
	stockRepo      StockRepository
	ingredientRepo IngredientRepository
	cache          Cache
	cacheTTL       time.Duration
}

// NewReportUseCase creates a new ReportUseCase. Cache may be nil.
func NewReportUseCase(stockRepo StockRepository, ingredientRepo IngredientRepository, cache Cache, cacheTTL time.Duration) *ReportUseCase {
	return &ReportUseCase{
		stockRepo:      stockRepo,
		ingredientRepo: ingredientRepo,
		cache:          cache,
		cacheTTL:       cacheTTL,
	}
}

// CurrentQuantity returns quantity-on-hand for one pair; zero if the
// ingredient exists but no movement ever touched the pair. An unknown
// ingredient fails with ErrIngredientNotFound rather than reading zero.
func (uc *ReportUseCase) CurrentQuantity(ctx context.Context, branchID, ingredientID string) (decimal.Decimal, error) {
	if _, err := uc.ingredientRepo.GetByID(ctx, ingredientID); err != nil {
		return decimal.Zero, err
	}

	return uc.stockRepo.GetQuantity(ctx, domain.StockKey{BranchID: branchID, IngredientID: ingredientID})
}

// ListStock lists stock entries for one branch.
func (uc *ReportUseCase) ListStock(ctx context.Context, branchID string, limit, offset int) ([]*domain.StockEntry, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	return uc.stockRepo.ListByBranch(ctx, branchID, limit, offset)
}

// InventoryValuation is the valuation report for one branch.
type InventoryValuation struct {
	BranchID   string                   `json:"branch_id"`
	TotalValue decimal.Decimal          `json:"total_value"`
	Stocks     []*domain.StockValuation `json:"stocks"`
}

// Valuation prices every stock row of a branch at the ingredient's current
// cost per unit. Results are cached briefly; the report does not promise
// consistency with transactions committing while it runs.
func (uc *ReportUseCase) Valuation(ctx context.Context, branchID string) (*InventoryValuation, error) {
	cacheKey := "valuation:" + branchID

	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, cacheKey); err == nil && cached != "" {
			var report InventoryValuation
			if err := json.Unmarshal([]byte(cached), &report); err == nil {
				return &report, nil
			}
		}
	}

	rows, err := uc.stockRepo.Valuation(ctx, branchID)
	if err != nil {
		return nil, err
	}

	report := &InventoryValuation{
		BranchID:   branchID,
		TotalValue: decimal.Zero,
		Stocks:     rows,
	}

	for _, row := range rows {
		report.TotalValue = report.TotalValue.Add(row.Value)
	}

	if uc.cache != nil {
		if payload, err := json.Marshal(report); err == nil {
			_ = uc.cache.Set(ctx, cacheKey, string(payload), uc.cacheTTL)
		}
	}

	return report, nil
}
