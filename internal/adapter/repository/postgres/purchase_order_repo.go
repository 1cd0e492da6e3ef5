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

// PurchaseOrderRepository implements usecase.PurchaseOrderRepository.
type PurchaseOrderRepository struct {
	pool  *pgxpool.Pool
	idGen usecase.IDGenerator
}

// NewPurchaseOrderRepository creates a new PurchaseOrderRepository.
func NewPurchaseOrderRepository(pool *pgxpool.Pool, idGen usecase.IDGenerator) *PurchaseOrderRepository {
	return &PurchaseOrderRepository{pool: pool, idGen: idGen}
}

// Create creates a purchase order and its items within a transaction.
func (r *PurchaseOrderRepository) Create(ctx context.Context, tx usecase.Transaction, po *domain.PurchaseOrder) error {
	q := txQuerier(tx)

	query := `
		INSERT INTO purchase_orders (id, supplier_id, branch_id, order_date, status, total_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := q.Exec(ctx, query,
		po.ID,
		po.SupplierID,
		po.BranchID,
		po.OrderDate,
		po.Status,
		po.TotalAmount,
		po.CreatedAt,
		po.UpdatedAt,
	)
	if err != nil {
		return err
	}

	return r.insertItems(ctx, q, po)
}

func (r *PurchaseOrderRepository) insertItems(ctx context.Context, q querier, po *domain.PurchaseOrder) error {
	itemQuery := `
		INSERT INTO purchase_order_items (id, purchase_order_id, ingredient_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for i := range po.Items {
		if po.Items[i].ID == "" {
			po.Items[i].ID = r.idGen.Generate()
		}

		_, err := q.Exec(ctx, itemQuery,
			po.Items[i].ID,
			po.ID,
			po.Items[i].IngredientID,
			po.Items[i].Quantity,
			po.Items[i].UnitPrice,
			po.Items[i].Subtotal,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// GetByID retrieves a purchase order with its items.
func (r *PurchaseOrderRepository) GetByID(ctx context.Context, id string) (*domain.PurchaseOrder, error) {
	return r.get(ctx, r.pool, id, false)
}

// GetByIDForUpdate retrieves a purchase order with its items, locking the
// order row. Concurrent receives of the same order serialize here, which is
// what keeps a double receive from applying deltas twice.
func (r *PurchaseOrderRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.PurchaseOrder, error) {
	return r.get(ctx, txQuerier(tx), id, true)
}

func (r *PurchaseOrderRepository) get(ctx context.Context, q querier, id string, forUpdate bool) (*domain.PurchaseOrder, error) {
	query := `
		SELECT id, supplier_id, branch_id, order_date, status, total_amount, created_at, updated_at
		FROM purchase_orders
		WHERE id = $1
	`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var po domain.PurchaseOrder

	err := q.QueryRow(ctx, query, id).Scan(
		&po.ID,
		&po.SupplierID,
		&po.BranchID,
		&po.OrderDate,
		&po.Status,
		&po.TotalAmount,
		&po.CreatedAt,
		&po.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPurchaseOrderNotFound
		}

		return nil, err
	}

	items, err := r.items(ctx, q, id)
	if err != nil {
		return nil, err
	}

	po.Items = items

	return &po, nil
}

func (r *PurchaseOrderRepository) items(ctx context.Context, q querier, poID string) ([]domain.PurchaseOrderItem, error) {
	query := `
		SELECT id, ingredient_id, quantity, unit_price, subtotal
		FROM purchase_order_items
		WHERE purchase_order_id = $1
		ORDER BY ingredient_id
	`

	rows, err := q.Query(ctx, query, poID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.PurchaseOrderItem

	for rows.Next() {
		var item domain.PurchaseOrderItem

		err := rows.Scan(
			&item.ID,
			&item.IngredientID,
			&item.Quantity,
			&item.UnitPrice,
			&item.Subtotal,
		)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, rows.Err()
}

// ReplaceItems replaces the order items wholesale and updates the header
// within a transaction.
func (r *PurchaseOrderRepository) ReplaceItems(ctx context.Context, tx usecase.Transaction, po *domain.PurchaseOrder) error {
	q := txQuerier(tx)

	_, err := q.Exec(ctx, `DELETE FROM purchase_order_items WHERE purchase_order_id = $1`, po.ID)
	if err != nil {
		return err
	}

	if err := r.insertItems(ctx, q, po); err != nil {
		return err
	}

	updateQuery := `
		UPDATE purchase_orders
		SET supplier_id = $2, order_date = $3, total_amount = $4, updated_at = $5
		WHERE id = $1
	`

	_, err = q.Exec(ctx, updateQuery,
		po.ID,
		po.SupplierID,
		po.OrderDate,
		po.TotalAmount,
		po.UpdatedAt,
	)

	return err
}

// UpdateStatus updates the purchase order status within a transaction.
func (r *PurchaseOrderRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.PurchaseOrderStatus, updatedAt time.Time) error {
	query := `
		UPDATE purchase_orders SET status = $2, updated_at = $3 WHERE id = $1
	`

	tag, err := txQuerier(tx).Exec(ctx, query, id, status, updatedAt)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrPurchaseOrderNotFound
	}

	return nil
}

// Delete deletes a purchase order and its items.
func (r *PurchaseOrderRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	q := txQuerier(tx)

	_, err := q.Exec(ctx, `DELETE FROM purchase_order_items WHERE purchase_order_id = $1`, id)
	if err != nil {
		return err
	}

	tag, err := q.Exec(ctx, `DELETE FROM purchase_orders WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrPurchaseOrderNotFound
	}

	return nil
}

// List lists purchase orders, newest first, optionally narrowed to a branch.
func (r *PurchaseOrderRepository) List(ctx context.Context, branchID string, limit, offset int) ([]*domain.PurchaseOrder, error) {
	query := `
		SELECT id, supplier_id, branch_id, order_date, status, total_amount, created_at, updated_at
		FROM purchase_orders
	`
	args := []any{limit, offset}

	if branchID != "" {
		query += ` WHERE branch_id = $3`
		args = append(args, branchID)
	}

	query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*domain.PurchaseOrder

	for rows.Next() {
		var po domain.PurchaseOrder

		err := rows.Scan(
			&po.ID,
			&po.SupplierID,
			&po.BranchID,
			&po.OrderDate,
			&po.Status,
			&po.TotalAmount,
			&po.CreatedAt,
			&po.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		orders = append(orders, &po)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, po := range orders {
		items, err := r.items(ctx, r.pool, po.ID)
		if err != nil {
			return nil, err
		}

		po.Items = items
	}

	return orders, nil
}
