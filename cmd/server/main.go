package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpAdapter "github.com/warungpos/inventory/internal/adapter/http"
	"github.com/warungpos/inventory/internal/adapter/http/handler"
	postgresRepo "github.com/warungpos/inventory/internal/adapter/repository/postgres"
	redisRepo "github.com/warungpos/inventory/internal/adapter/repository/redis"
	"github.com/warungpos/inventory/internal/infrastructure/config"
	"github.com/warungpos/inventory/internal/infrastructure/eventpublisher"
	"github.com/warungpos/inventory/internal/infrastructure/logger"
	"github.com/warungpos/inventory/internal/infrastructure/metrics"
	"github.com/warungpos/inventory/internal/infrastructure/postgres"
	"github.com/warungpos/inventory/internal/infrastructure/redis"
	"github.com/warungpos/inventory/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.MigrationsPath != "" {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Repositories
	idGen := postgresRepo.NewULIDGenerator()
	txManager := postgresRepo.NewTxManager(pool)
	retrier := postgresRepo.NewRetrier(log)
	stockRepo := postgresRepo.NewStockRepository(pool, idGen)
	transferRepo := postgresRepo.NewTransferRepository(pool, idGen)
	adjustmentRepo := postgresRepo.NewAdjustmentRepository(pool, idGen)
	wasteRepo := postgresRepo.NewWasteRepository(pool, idGen)
	purchaseRepo := postgresRepo.NewPurchaseOrderRepository(pool, idGen)
	orderRepo := postgresRepo.NewOrderRepository(pool, idGen)
	productRepo := postgresRepo.NewProductRepository(pool)
	recipeRepo := postgresRepo.NewRecipeRepository(pool)
	ingredientRepo := postgresRepo.NewIngredientRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	cache := redisRepo.NewCache(redisClient)

	// Use cases
	ledger := usecase.NewStockLedger(stockRepo, cfg.StockAllowNegative)
	resolver := usecase.NewRecipeResolver(recipeRepo)
	transferUC := usecase.NewTransferUseCase(txManager, transferRepo, ingredientRepo, outboxRepo, ledger, idGen, retrier)
	adjustmentUC := usecase.NewAdjustmentUseCase(txManager, adjustmentRepo, ingredientRepo, outboxRepo, ledger, idGen, retrier)
	wasteUC := usecase.NewWasteUseCase(txManager, wasteRepo, ingredientRepo, outboxRepo, ledger, idGen, retrier)
	purchaseUC := usecase.NewPurchaseOrderUseCase(txManager, purchaseRepo, ingredientRepo, outboxRepo, ledger, idGen, retrier)
	orderUC := usecase.NewOrderUseCase(txManager, orderRepo, productRepo, outboxRepo, resolver, ledger, idGen, retrier)
	reportUC := usecase.NewReportUseCase(stockRepo, ingredientRepo, cache, cfg.ValuationCacheTTL)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		TransferHandler:      handler.NewTransferHandler(transferUC),
		AdjustmentHandler:    handler.NewAdjustmentHandler(adjustmentUC),
		WasteHandler:         handler.NewWasteHandler(wasteUC),
		PurchaseOrderHandler: handler.NewPurchaseOrderHandler(purchaseUC),
		OrderHandler:         handler.NewOrderHandler(orderUC),
		StockHandler:         handler.NewStockHandler(reportUC),
		HealthHandler:        handler.NewHealthHandler(pool, redisClient),
		Logger:               log,
		Metrics:              metrics.New(),
		IdempotencyStore:     idempotencyStore,
		IdempotencyTTL:       cfg.IdempotencyTTL,
		RateLimitRPS:         cfg.RateLimitRPS,
		RateLimitBurst:       cfg.RateLimitBurst,
	})

	// Outbox drain worker. With events disabled the worker still runs so the
	// outbox does not grow unbounded, but events go to the log instead of
	// Redis.
	var publisher eventpublisher.Publisher = eventpublisher.NewLogPublisher(log)
	if cfg.EventsEnabled {
		publisher = redisRepo.NewPublisher(redisClient, cfg.EventChannel)
	}

	eventPublisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  publisher,
		Logger:     log,
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxInterval,
		Retention:  cfg.OutboxRetention,
	})

	go func() {
		if err := eventPublisher.Start(ctx); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("event publisher stopped")
		}
	}()

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	stop()

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
