package integration

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	redislib "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/warungpos/inventory/internal/adapter/repository/postgres"
	redisrepo "github.com/warungpos/inventory/internal/adapter/repository/redis"
	"github.com/warungpos/inventory/internal/usecase"
)

// stack wires every use case against a real database, the way the server
// entrypoint does.
type stack struct {
	TransferUC   *usecase.TransferUseCase
	AdjustmentUC *usecase.AdjustmentUseCase
	WasteUC      *usecase.WasteUseCase
	PurchaseUC   *usecase.PurchaseOrderUseCase
	OrderUC      *usecase.OrderUseCase

	StockRepo      usecase.StockRepository
	IngredientRepo usecase.IngredientRepository
	OutboxRepo     usecase.OutboxRepository
}

func newStack(t *testing.T, pool *pgxpool.Pool, allowNegative bool) *stack {
	t.Helper()

	idGen := postgres.NewULIDGenerator()
	txManager := postgres.NewTxManager(pool)
	retrier := postgres.NewRetrier(zerolog.Nop())
	stockRepo := postgres.NewStockRepository(pool, idGen)
	transferRepo := postgres.NewTransferRepository(pool, idGen)
	adjustmentRepo := postgres.NewAdjustmentRepository(pool, idGen)
	wasteRepo := postgres.NewWasteRepository(pool, idGen)
	purchaseRepo := postgres.NewPurchaseOrderRepository(pool, idGen)
	orderRepo := postgres.NewOrderRepository(pool, idGen)
	productRepo := postgres.NewProductRepository(pool)
	recipeRepo := postgres.NewRecipeRepository(pool)
	ingredientRepo := postgres.NewIngredientRepository(pool)
	outboxRepo := postgres.NewOutboxRepository(pool)

	ledger := usecase.NewStockLedger(stockRepo, allowNegative)
	resolver := usecase.NewRecipeResolver(recipeRepo)

	return &stack{
		TransferUC:     usecase.NewTransferUseCase(txManager, transferRepo, ingredientRepo, outboxRepo, ledger, idGen, retrier),
		AdjustmentUC:   usecase.NewAdjustmentUseCase(txManager, adjustmentRepo, ingredientRepo, outboxRepo, ledger, idGen, retrier),
		WasteUC:        usecase.NewWasteUseCase(txManager, wasteRepo, ingredientRepo, outboxRepo, ledger, idGen, retrier),
		PurchaseUC:     usecase.NewPurchaseOrderUseCase(txManager, purchaseRepo, ingredientRepo, outboxRepo, ledger, idGen, retrier),
		OrderUC:        usecase.NewOrderUseCase(txManager, orderRepo, productRepo, outboxRepo, resolver, ledger, idGen, retrier),
		StockRepo:      stockRepo,
		IngredientRepo: ingredientRepo,
		OutboxRepo:     outboxRepo,
	}
}

func newReportUseCase(s *stack, client *redislib.Client) *usecase.ReportUseCase {
	return usecase.NewReportUseCase(s.StockRepo, s.IngredientRepo, redisrepo.NewCache(client), 30*time.Second)
}
