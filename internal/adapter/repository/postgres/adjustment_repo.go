package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/warungpos/inventory/internal/domain"
	"github.com/warungpos/inventory/internal/usecase"
)

// AdjustmentRepository implements usecase.AdjustmentRepository.
type AdjustmentRepository struct {
	pool  *pgxpool.Pool
	idGen usecase.IDGenerator
}

// NewAdjustmentRepository creates a new AdjustmentRepository.
func NewAdjustmentRepository(pool *pgxpool.Pool, idGen usecase.IDGenerator) *AdjustmentRepository {
	return &AdjustmentRepository{pool: pool, idGen: idGen}
}

// Create creates a draft adjustment. Drafts have no ledger effect, so no
// transaction is required.
func (r *AdjustmentRepository) Create(ctx context.Context, adjustment *domain.Adjustment) error {
	query := `
		INSERT INTO stock_adjustments (id, branch_id, adjustment_date, status, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		adjustment.ID,
		adjustment.BranchID,
		adjustment.AdjustmentDate,
		adjustment.Status,
		adjustment.Note,
		adjustment.CreatedAt,
		adjustment.UpdatedAt,
	)

	return err
}

// GetByID retrieves an adjustment with its items.
func (r *AdjustmentRepository) GetByID(ctx context.Context, id string) (*domain.Adjustment, error) {
	return r.get(ctx, r.pool, id, false)
}

// GetByIDForUpdate retrieves an adjustment with its items, locking the
// adjustment row. Concurrent finalizes of the same adjustment serialize here.
func (r *AdjustmentRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Adjustment, error) {
	return r.get(ctx, txQuerier(tx), id, true)
}

func (r *AdjustmentRepository) get(ctx context.Context, q querier, id string, forUpdate bool) (*domain.Adjustment, error) {
	query := `
		SELECT id, branch_id, adjustment_date, status, note, created_at, updated_at
		FROM stock_adjustments
		WHERE id = $1
	`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var a domain.Adjustment

	err := q.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.BranchID,
		&a.AdjustmentDate,
		&a.Status,
		&a.Note,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAdjustmentNotFound
		}

		return nil, err
	}

	items, err := r.items(ctx, q, id)
	if err != nil {
		return nil, err
	}

	a.Items = items

	return &a, nil
}

func (r *AdjustmentRepository) items(ctx context.Context, q querier, adjustmentID string) ([]domain.AdjustmentItem, error) {
	query := `
		SELECT id, ingredient_id, system_stock, actual_stock, difference
		FROM stock_adjustment_items
		WHERE adjustment_id = $1
		ORDER BY ingredient_id
	`

	rows, err := q.Query(ctx, query, adjustmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.AdjustmentItem

	for rows.Next() {
		var item domain.AdjustmentItem

		err := rows.Scan(
			&item.ID,
			&item.IngredientID,
			&item.SystemStock,
			&item.ActualStock,
			&item.Difference,
		)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, rows.Err()
}

// ReplaceItems replaces the draft items wholesale within a transaction.
func (r *AdjustmentRepository) ReplaceItems(ctx context.Context, tx usecase.Transaction, adjustment *domain.Adjustment) error {
	q := txQuerier(tx)

	_, err := q.Exec(ctx, `DELETE FROM stock_adjustment_items WHERE adjustment_id = $1`, adjustment.ID)
	if err != nil {
		return err
	}

	itemQuery := `
		INSERT INTO stock_adjustment_items (id, adjustment_id, ingredient_id, system_stock, actual_stock, difference)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for i := range adjustment.Items {
		if adjustment.Items[i].ID == "" {
			adjustment.Items[i].ID = r.idGen.Generate()
		}

		_, err := q.Exec(ctx, itemQuery,
			adjustment.Items[i].ID,
			adjustment.ID,
			adjustment.Items[i].IngredientID,
			adjustment.Items[i].SystemStock,
			adjustment.Items[i].ActualStock,
			adjustment.Items[i].Difference,
		)
		if err != nil {
			return err
		}
	}

	updateQuery := `
		UPDATE stock_adjustments SET note = $2, adjustment_date = $3, updated_at = $4 WHERE id = $1
	`

	_, err = q.Exec(ctx, updateQuery,
		adjustment.ID,
		adjustment.Note,
		adjustment.AdjustmentDate,
		adjustment.UpdatedAt,
	)

	return err
}

// UpdateStatus updates the adjustment status within a transaction.
func (r *AdjustmentRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.AdjustmentStatus, updatedAt time.Time) error {
	query := `
		UPDATE stock_adjustments SET status = $2, updated_at = $3 WHERE id = $1
	`

	tag, err := txQuerier(tx).Exec(ctx, query, id, status, updatedAt)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrAdjustmentNotFound
	}

	return nil
}

// List lists adjustments, newest first.
func (r *AdjustmentRepository) List(ctx context.Context, limit, offset int) ([]*domain.Adjustment, error) {
	query := `
		SELECT id, branch_id, adjustment_date, status, note, created_at, updated_at
		FROM stock_adjustments
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var adjustments []*domain.Adjustment

	for rows.Next() {
		var a domain.Adjustment

		err := rows.Scan(
			&a.ID,
			&a.BranchID,
			&a.AdjustmentDate,
			&a.Status,
			&a.Note,
			&a.CreatedAt,
			&a.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		adjustments = append(adjustments, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, a := range adjustments {
		items, err := r.items(ctx, r.pool, a.ID)
		if err != nil {
			return nil, err
		}

		a.Items = items
	}

	return adjustments, nil
}
