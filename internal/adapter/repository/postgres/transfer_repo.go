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

// TransferRepository implements usecase.TransferRepository.
type TransferRepository struct {
	pool  *pgxpool.Pool
	idGen usecase.IDGenerator
}

// NewTransferRepository creates a new TransferRepository.
func NewTransferRepository(pool *pgxpool.Pool, idGen usecase.IDGenerator) *TransferRepository {
	return &TransferRepository{pool: pool, idGen: idGen}
}

// Create creates a transfer and its items within a transaction.
func (r *TransferRepository) Create(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error {
	q := txQuerier(tx)

	query := `
		INSERT INTO stock_transfers (id, from_branch_id, to_branch_id, transfer_date, status, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := q.Exec(ctx, query,
		transfer.ID,
		transfer.FromBranchID,
		transfer.ToBranchID,
		transfer.TransferDate,
		transfer.Status,
		transfer.Note,
		transfer.CreatedAt,
		transfer.UpdatedAt,
	)
	if err != nil {
		return err
	}

	itemQuery := `
		INSERT INTO stock_transfer_items (id, transfer_id, ingredient_id, quantity)
		VALUES ($1, $2, $3, $4)
	`

	for i := range transfer.Items {
		if transfer.Items[i].ID == "" {
			transfer.Items[i].ID = r.idGen.Generate()
		}

		_, err := q.Exec(ctx, itemQuery,
			transfer.Items[i].ID,
			transfer.ID,
			transfer.Items[i].IngredientID,
			transfer.Items[i].Quantity,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// GetByID retrieves a transfer with its items.
func (r *TransferRepository) GetByID(ctx context.Context, id string) (*domain.Transfer, error) {
	return r.get(ctx, r.pool, id, false)
}

// GetByIDForUpdate retrieves a transfer with its items, locking the transfer
// row for the duration of the transaction.
func (r *TransferRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Transfer, error) {
	return r.get(ctx, txQuerier(tx), id, true)
}

func (r *TransferRepository) get(ctx context.Context, q querier, id string, forUpdate bool) (*domain.Transfer, error) {
	query := `
		SELECT id, from_branch_id, to_branch_id, transfer_date, status, note, created_at, updated_at
		FROM stock_transfers
		WHERE id = $1
	`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var t domain.Transfer

	err := q.QueryRow(ctx, query, id).Scan(
		&t.ID,
		&t.FromBranchID,
		&t.ToBranchID,
		&t.TransferDate,
		&t.Status,
		&t.Note,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransferNotFound
		}

		return nil, err
	}

	items, err := r.items(ctx, q, id)
	if err != nil {
		return nil, err
	}

	t.Items = items

	return &t, nil
}

func (r *TransferRepository) items(ctx context.Context, q querier, transferID string) ([]domain.TransferItem, error) {
	query := `
		SELECT id, ingredient_id, quantity
		FROM stock_transfer_items
		WHERE transfer_id = $1
		ORDER BY ingredient_id
	`

	rows, err := q.Query(ctx, query, transferID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.TransferItem

	for rows.Next() {
		var item domain.TransferItem

		if err := rows.Scan(&item.ID, &item.IngredientID, &item.Quantity); err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, rows.Err()
}

// UpdateStatus updates the transfer status within a transaction.
func (r *TransferRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.TransferStatus, updatedAt time.Time) error {
	query := `
		UPDATE stock_transfers SET status = $2, updated_at = $3 WHERE id = $1
	`

	tag, err := txQuerier(tx).Exec(ctx, query, id, status, updatedAt)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTransferNotFound
	}

	return nil
}

// List lists transfers, newest first.
func (r *TransferRepository) List(ctx context.Context, limit, offset int) ([]*domain.Transfer, error) {
	query := `
		SELECT id, from_branch_id, to_branch_id, transfer_date, status, note, created_at, updated_at
		FROM stock_transfers
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transfers []*domain.Transfer

	for rows.Next() {
		var t domain.Transfer

		err := rows.Scan(
			&t.ID,
			&t.FromBranchID,
			&t.ToBranchID,
			&t.TransferDate,
			&t.Status,
			&t.Note,
			&t.CreatedAt,
			&t.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		transfers = append(transfers, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, t := range transfers {
		items, err := r.items(ctx, r.pool, t.ID)
		if err != nil {
			return nil, err
		}

		t.Items = items
	}

	return transfers, nil
}
