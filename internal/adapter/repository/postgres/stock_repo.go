package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/warungpos/inventory/internal/domain"
	"github.com/warungpos/inventory/internal/usecase"
)

// StockRepository implements usecase.StockRepository against the
// branch_stocks table. One row per (branch, ingredient) pair, created lazily
// by the first movement that touches the pair.
type StockRepository struct {
	pool  *pgxpool.Pool
	idGen usecase.IDGenerator
}

// NewStockRepository creates a new StockRepository.
func NewStockRepository(pool *pgxpool.Pool, idGen usecase.IDGenerator) *StockRepository {
	return &StockRepository{pool: pool, idGen: idGen}
}

// GetQuantity returns the current quantity for a pair, zero when no row
// exists.
func (r *StockRepository) GetQuantity(ctx context.Context, key domain.StockKey) (decimal.Decimal, error) {
	query := `
		SELECT quantity FROM branch_stocks
		WHERE branch_id = $1 AND ingredient_id = $2
	`

	var qty decimal.Decimal

	err := r.pool.QueryRow(ctx, query, key.BranchID, key.IngredientID).Scan(&qty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}

		return decimal.Zero, err
	}

	return qty, nil
}

// GetForUpdate locks the rows for the given keys and returns their current
// quantities. Rows are locked in (branch_id, ingredient_id) order; every
// multi-row movement goes through here, so concurrent movements always
// acquire locks in the same order. Pairs without a row are absent from the
// returned map.
func (r *StockRepository) GetForUpdate(ctx context.Context, tx usecase.Transaction, keys []domain.StockKey) (map[domain.StockKey]decimal.Decimal, error) {
	if len(keys) == 0 {
		return map[domain.StockKey]decimal.Decimal{}, nil
	}

	tuples := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys)*2)

	for i, key := range keys {
		tuples = append(tuples, fmt.Sprintf("($%d, $%d)", i*2+1, i*2+2))
		args = append(args, key.BranchID, key.IngredientID)
	}

	query := `
		SELECT branch_id, ingredient_id, quantity FROM branch_stocks
		WHERE (branch_id, ingredient_id) IN (` + strings.Join(tuples, ", ") + `)
		ORDER BY branch_id, ingredient_id
		FOR UPDATE
	`

	rows, err := txQuerier(tx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	quantities := make(map[domain.StockKey]decimal.Decimal, len(keys))

	for rows.Next() {
		var (
			key domain.StockKey
			qty decimal.Decimal
		)

		if err := rows.Scan(&key.BranchID, &key.IngredientID, &qty); err != nil {
			return nil, err
		}

		quantities[key] = qty
	}

	return quantities, rows.Err()
}

// ApplyDelta adds delta to the row quantity, creating the row at delta when
// absent.
func (r *StockRepository) ApplyDelta(ctx context.Context, tx usecase.Transaction, key domain.StockKey, delta decimal.Decimal, updatedAt time.Time) error {
	query := `
		INSERT INTO branch_stocks (id, branch_id, ingredient_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (branch_id, ingredient_id)
		DO UPDATE SET quantity = branch_stocks.quantity + EXCLUDED.quantity, updated_at = EXCLUDED.updated_at
	`

	_, err := txQuerier(tx).Exec(ctx, query, r.idGen.Generate(), key.BranchID, key.IngredientID, delta, updatedAt)

	return err
}

// SetAbsolute overwrites the row quantity, creating the row when absent.
func (r *StockRepository) SetAbsolute(ctx context.Context, tx usecase.Transaction, key domain.StockKey, quantity decimal.Decimal, updatedAt time.Time) error {
	query := `
		INSERT INTO branch_stocks (id, branch_id, ingredient_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (branch_id, ingredient_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at
	`

	_, err := txQuerier(tx).Exec(ctx, query, r.idGen.Generate(), key.BranchID, key.IngredientID, quantity, updatedAt)

	return err
}

// ListByBranch lists stock entries for a branch.
func (r *StockRepository) ListByBranch(ctx context.Context, branchID string, limit, offset int) ([]*domain.StockEntry, error) {
	query := `
		SELECT id, branch_id, ingredient_id, quantity, created_at, updated_at
		FROM branch_stocks
		WHERE branch_id = $1
		ORDER BY ingredient_id
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, branchID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.StockEntry

	for rows.Next() {
		var entry domain.StockEntry

		err := rows.Scan(
			&entry.ID,
			&entry.BranchID,
			&entry.IngredientID,
			&entry.Quantity,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

// Valuation prices current branch stock at current ingredient cost.
func (r *StockRepository) Valuation(ctx context.Context, branchID string) ([]*domain.StockValuation, error) {
	query := `
		SELECT bs.branch_id, bs.ingredient_id, i.name, bs.quantity, i.cost_per_unit,
		       bs.quantity * i.cost_per_unit
		FROM branch_stocks bs
		JOIN ingredients i ON i.id = bs.ingredient_id
		WHERE bs.branch_id = $1
		ORDER BY i.name
	`

	rows, err := r.pool.Query(ctx, query, branchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var valuations []*domain.StockValuation

	for rows.Next() {
		var v domain.StockValuation

		err := rows.Scan(
			&v.BranchID,
			&v.IngredientID,
			&v.IngredientName,
			&v.Quantity,
			&v.CostPerUnit,
			&v.Value,
		)
		if err != nil {
			return nil, err
		}

		valuations = append(valuations, &v)
	}

	return valuations, rows.Err()
}
