package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warungpos/inventory/internal/domain"
	"github.com/warungpos/inventory/internal/usecase"
	"github.com/warungpos/inventory/internal/usecase/mocks"
)

func key(branch, ingredient string) domain.StockKey {
	return domain.StockKey{BranchID: branch, IngredientID: ingredient}
}

func TestStockLedger_ApplyMergesDeltasPerPair(t *testing.T) {
	stockRepo := mocks.NewMockStockRepository()
	ledger := usecase.NewStockLedger(stockRepo, true)

	deltas := []domain.StockDelta{
		{Key: key("br-1", "flour"), Quantity: decimal.NewFromInt(10)},
		{Key: key("br-1", "flour"), Quantity: decimal.NewFromInt(-4)},
		{Key: key("br-1", "sugar"), Quantity: decimal.NewFromInt(2)},
	}

	var applied int
	stockRepo.ApplyDeltaFunc = func(ctx context.Context, tx usecase.Transaction, k domain.StockKey, delta decimal.Decimal, updatedAt time.Time) error {
		applied++
		if k == key("br-1", "flour") && !delta.Equal(decimal.NewFromInt(6)) {
			t.Fatalf("expected merged flour delta 6, got %s", delta)
		}
		return nil
	}

	if err := ledger.Apply(context.Background(), &mocks.MockTransaction{}, deltas); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if applied != 2 {
		t.Fatalf("expected 2 merged writes, got %d", applied)
	}
}

func TestStockLedger_LocksKeysInCanonicalOrder(t *testing.T) {
	stockRepo := mocks.NewMockStockRepository()
	ledger := usecase.NewStockLedger(stockRepo, true)

	var locked []domain.StockKey
	stockRepo.GetForUpdateFunc = func(ctx context.Context, tx usecase.Transaction, keys []domain.StockKey) (map[domain.StockKey]decimal.Decimal, error) {
		locked = keys
		return map[domain.StockKey]decimal.Decimal{}, nil
	}

	deltas := []domain.StockDelta{
		{Key: key("br-2", "sugar"), Quantity: decimal.NewFromInt(1)},
		{Key: key("br-1", "sugar"), Quantity: decimal.NewFromInt(1)},
		{Key: key("br-1", "flour"), Quantity: decimal.NewFromInt(1)},
	}

	if err := ledger.Apply(context.Background(), &mocks.MockTransaction{}, deltas); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 1; i < len(locked); i++ {
		if !locked[i-1].Less(locked[i]) {
			t.Fatalf("lock keys out of canonical order: %v before %v", locked[i-1], locked[i])
		}
	}
}

func TestStockLedger_OverdraftPolicy(t *testing.T) {
	tests := []struct {
		name          string
		allowNegative bool
		expectError   bool
	}{
		{name: "overdraft allowed goes negative", allowNegative: true, expectError: false},
		{name: "overdraft forbidden fails", allowNegative: false, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stockRepo := mocks.NewMockStockRepository()
			stockRepo.Seed(key("br-1", "flour"), decimal.NewFromInt(5))
			ledger := usecase.NewStockLedger(stockRepo, tt.allowNegative)

			deltas := []domain.StockDelta{
				{Key: key("br-1", "flour"), Quantity: decimal.NewFromInt(-8)},
			}

			err := ledger.Apply(context.Background(), &mocks.MockTransaction{}, deltas)
			if tt.expectError {
				if !errors.Is(err, domain.ErrInsufficientStock) {
					t.Fatalf("expected ErrInsufficientStock, got %v", err)
				}
				if !stockRepo.Quantity(key("br-1", "flour")).Equal(decimal.NewFromInt(5)) {
					t.Fatalf("stock must be untouched after a rejected deduction")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !stockRepo.Quantity(key("br-1", "flour")).Equal(decimal.NewFromInt(-3)) {
				t.Fatalf("expected quantity -3, got %s", stockRepo.Quantity(key("br-1", "flour")))
			}
		})
	}
}

func TestStockLedger_ApplyRequireStockIgnoresOverdraftPolicy(t *testing.T) {
	stockRepo := mocks.NewMockStockRepository()
	stockRepo.Seed(key("br-1", "flour"), decimal.NewFromInt(5))

	// Policy allows negatives, but the hard check still applies.
	ledger := usecase.NewStockLedger(stockRepo, true)

	deltas := []domain.StockDelta{
		{Key: key("br-1", "flour"), Quantity: decimal.NewFromInt(-8)},
	}

	err := ledger.ApplyRequireStock(context.Background(), &mocks.MockTransaction{}, deltas)
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
}

func TestStockLedger_RequireStockAbortsWholeBatch(t *testing.T) {
	stockRepo := mocks.NewMockStockRepository()
	stockRepo.Seed(key("br-1", "flour"), decimal.NewFromInt(100))
	stockRepo.Seed(key("br-1", "sugar"), decimal.NewFromInt(1))
	ledger := usecase.NewStockLedger(stockRepo, true)

	deltas := []domain.StockDelta{
		{Key: key("br-1", "flour"), Quantity: decimal.NewFromInt(-10)},
		{Key: key("br-1", "sugar"), Quantity: decimal.NewFromInt(-5)},
	}

	err := ledger.ApplyRequireStock(context.Background(), &mocks.MockTransaction{}, deltas)
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	// The sufficient flour line must not have been written either.
	if !stockRepo.Quantity(key("br-1", "flour")).Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected flour untouched, got %s", stockRepo.Quantity(key("br-1", "flour")))
	}
}

func TestStockLedger_MissingRowReadsAsZero(t *testing.T) {
	stockRepo := mocks.NewMockStockRepository()
	ledger := usecase.NewStockLedger(stockRepo, true)

	qty, err := ledger.Quantity(context.Background(), key("br-1", "never-touched"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !qty.IsZero() {
		t.Fatalf("expected zero for an untouched pair, got %s", qty)
	}
}

func TestStockLedger_SetAbsoluteOverwrites(t *testing.T) {
	stockRepo := mocks.NewMockStockRepository()
	stockRepo.Seed(key("br-1", "flour"), decimal.NewFromInt(40))
	ledger := usecase.NewStockLedger(stockRepo, true)

	levels := []domain.StockLevel{
		{Key: key("br-1", "flour"), Quantity: decimal.NewFromInt(37)},
		{Key: key("br-1", "sugar"), Quantity: decimal.NewFromInt(12)},
	}

	if err := ledger.SetAbsolute(context.Background(), &mocks.MockTransaction{}, levels); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !stockRepo.Quantity(key("br-1", "flour")).Equal(decimal.NewFromInt(37)) {
		t.Fatalf("expected flour 37, got %s", stockRepo.Quantity(key("br-1", "flour")))
	}
	if !stockRepo.Quantity(key("br-1", "sugar")).Equal(decimal.NewFromInt(12)) {
		t.Fatalf("expected sugar 12, got %s", stockRepo.Quantity(key("br-1", "sugar")))
	}
}

func TestStockLedger_SetAbsoluteLastCountWins(t *testing.T) {
	stockRepo := mocks.NewMockStockRepository()
	stockRepo.Seed(key("br-1", "flour"), decimal.NewFromInt(40))
	ledger := usecase.NewStockLedger(stockRepo, true)

	levels := []domain.StockLevel{
		{Key: key("br-1", "flour"), Quantity: decimal.NewFromInt(37)},
		{Key: key("br-1", "flour"), Quantity: decimal.NewFromInt(35)},
	}

	if err := ledger.SetAbsolute(context.Background(), &mocks.MockTransaction{}, levels); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !stockRepo.Quantity(key("br-1", "flour")).Equal(decimal.NewFromInt(35)) {
		t.Fatalf("expected the later count 35 to win, got %s", stockRepo.Quantity(key("br-1", "flour")))
	}
}
