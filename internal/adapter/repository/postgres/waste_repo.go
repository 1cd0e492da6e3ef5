package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/warungpos/inventory/internal/domain"
	"github.com/warungpos/inventory/internal/usecase"
)

// WasteRepository implements usecase.WasteRepository.
type WasteRepository struct {
	pool  *pgxpool.Pool
	idGen usecase.IDGenerator
}

// NewWasteRepository creates a new WasteRepository.
func NewWasteRepository(pool *pgxpool.Pool, idGen usecase.IDGenerator) *WasteRepository {
	return &WasteRepository{pool: pool, idGen: idGen}
}

// Create creates a waste record and its items within a transaction. The
// ledger deltas are applied in the same transaction by the caller.
func (r *WasteRepository) Create(ctx context.Context, tx usecase.Transaction, waste *domain.Waste) error {
	q := txQuerier(tx)

	query := `
		INSERT INTO stock_wastes (id, branch_id, waste_date, note, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := q.Exec(ctx, query,
		waste.ID,
		waste.BranchID,
		waste.WasteDate,
		waste.Note,
		waste.CreatedAt,
	)
	if err != nil {
		return err
	}

	itemQuery := `
		INSERT INTO stock_waste_items (id, waste_id, ingredient_id, quantity, reason)
		VALUES ($1, $2, $3, $4, $5)
	`

	for i := range waste.Items {
		if waste.Items[i].ID == "" {
			waste.Items[i].ID = r.idGen.Generate()
		}

		_, err := q.Exec(ctx, itemQuery,
			waste.Items[i].ID,
			waste.ID,
			waste.Items[i].IngredientID,
			waste.Items[i].Quantity,
			waste.Items[i].Reason,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// GetByID retrieves a waste record with its items.
func (r *WasteRepository) GetByID(ctx context.Context, id string) (*domain.Waste, error) {
	query := `
		SELECT id, branch_id, waste_date, note, created_at
		FROM stock_wastes
		WHERE id = $1
	`

	var w domain.Waste

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&w.ID,
		&w.BranchID,
		&w.WasteDate,
		&w.Note,
		&w.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWasteNotFound
		}

		return nil, err
	}

	items, err := r.items(ctx, id)
	if err != nil {
		return nil, err
	}

	w.Items = items

	return &w, nil
}

func (r *WasteRepository) items(ctx context.Context, wasteID string) ([]domain.WasteItem, error) {
	query := `
		SELECT id, ingredient_id, quantity, reason
		FROM stock_waste_items
		WHERE waste_id = $1
		ORDER BY ingredient_id
	`

	rows, err := r.pool.Query(ctx, query, wasteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.WasteItem

	for rows.Next() {
		var item domain.WasteItem

		if err := rows.Scan(&item.ID, &item.IngredientID, &item.Quantity, &item.Reason); err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, rows.Err()
}

// List lists waste records, newest first.
func (r *WasteRepository) List(ctx context.Context, limit, offset int) ([]*domain.Waste, error) {
	query := `
		SELECT id, branch_id, waste_date, note, created_at
		FROM stock_wastes
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wastes []*domain.Waste

	for rows.Next() {
		var w domain.Waste

		err := rows.Scan(
			&w.ID,
			&w.BranchID,
			&w.WasteDate,
			&w.Note,
			&w.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		wastes = append(wastes, &w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, w := range wastes {
		items, err := r.items(ctx, w.ID)
		if err != nil {
			return nil, err
		}

		w.Items = items
	}

	return wastes, nil
}
