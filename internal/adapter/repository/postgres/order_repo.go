package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/warungpos/inventory/internal/domain"
	"github.com/warungpos/inventory/internal/usecase"
)

// OrderRepository implements usecase.OrderRepository.
type OrderRepository struct {
	pool  *pgxpool.Pool
	idGen usecase.IDGenerator
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(pool *pgxpool.Pool, idGen usecase.IDGenerator) *OrderRepository {
	return &OrderRepository{pool: pool, idGen: idGen}
}

// Create creates an order and its items within a transaction.
func (r *OrderRepository) Create(ctx context.Context, tx usecase.Transaction, order *domain.Order) error {
	q := txQuerier(tx)

	query := `
		INSERT INTO orders (id, branch_id, table_id, customer_name, order_type, status, payment_status, total_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := q.Exec(ctx, query,
		order.ID,
		order.BranchID,
		order.TableID,
		order.CustomerName,
		order.Type,
		order.Status,
		order.PaymentStatus,
		order.TotalAmount,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		return err
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, quantity, unit_price, subtotal, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = r.idGen.Generate()
		}

		_, err := q.Exec(ctx, itemQuery,
			order.Items[i].ID,
			order.ID,
			order.Items[i].ProductID,
			order.Items[i].Quantity,
			order.Items[i].UnitPrice,
			order.Items[i].Subtotal,
			order.Items[i].Notes,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// GetByID retrieves an order with its items and payments.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	return r.get(ctx, r.pool, id, false)
}

// GetByIDForUpdate retrieves an order with its items and payments, locking
// the order row. Concurrent payments against the same order serialize here,
// so exactly one of them observes the completion edge.
func (r *OrderRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Order, error) {
	return r.get(ctx, txQuerier(tx), id, true)
}

func (r *OrderRepository) get(ctx context.Context, q querier, id string, forUpdate bool) (*domain.Order, error) {
	query := `
		SELECT id, branch_id, table_id, customer_name, order_type, status, payment_status, total_amount, created_at, updated_at
		FROM orders
		WHERE id = $1
	`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var o domain.Order

	err := q.QueryRow(ctx, query, id).Scan(
		&o.ID,
		&o.BranchID,
		&o.TableID,
		&o.CustomerName,
		&o.Type,
		&o.Status,
		&o.PaymentStatus,
		&o.TotalAmount,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}

		return nil, err
	}

	items, err := r.items(ctx, q, id)
	if err != nil {
		return nil, err
	}

	payments, err := r.payments(ctx, q, id)
	if err != nil {
		return nil, err
	}

	o.Items = items
	o.Payments = payments

	return &o, nil
}

func (r *OrderRepository) items(ctx context.Context, q querier, orderID string) ([]domain.OrderItem, error) {
	query := `
		SELECT id, product_id, quantity, unit_price, subtotal, notes
		FROM order_items
		WHERE order_id = $1
		ORDER BY product_id
	`

	rows, err := q.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem

	for rows.Next() {
		var item domain.OrderItem

		err := rows.Scan(
			&item.ID,
			&item.ProductID,
			&item.Quantity,
			&item.UnitPrice,
			&item.Subtotal,
			&item.Notes,
		)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *OrderRepository) payments(ctx context.Context, q querier, orderID string) ([]domain.Payment, error) {
	query := `
		SELECT id, order_id, method, amount, payment_date
		FROM order_payments
		WHERE order_id = $1
		ORDER BY payment_date
	`

	rows, err := q.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment

	for rows.Next() {
		var p domain.Payment

		err := rows.Scan(
			&p.ID,
			&p.OrderID,
			&p.Method,
			&p.Amount,
			&p.PaymentDate,
		)
		if err != nil {
			return nil, err
		}

		payments = append(payments, p)
	}

	return payments, rows.Err()
}

// AddPayment appends a payment row within a transaction.
func (r *OrderRepository) AddPayment(ctx context.Context, tx usecase.Transaction, payment *domain.Payment) error {
	query := `
		INSERT INTO order_payments (id, order_id, method, amount, payment_date)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := txQuerier(tx).Exec(ctx, query,
		payment.ID,
		payment.OrderID,
		payment.Method,
		payment.Amount,
		payment.PaymentDate,
	)

	return err
}

// SumPayments returns cumulative payments for the order, read inside the
// locking transaction so the completion check sees every committed payment.
func (r *OrderRepository) SumPayments(ctx context.Context, tx usecase.Transaction, orderID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0) FROM order_payments WHERE order_id = $1
	`

	var total decimal.Decimal

	err := txQuerier(tx).QueryRow(ctx, query, orderID).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}

	return total, nil
}

// UpdateStatus updates the order and payment status within a transaction.
func (r *OrderRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.OrderStatus, paymentStatus domain.PaymentStatus, updatedAt time.Time) error {
	query := `
		UPDATE orders SET status = $2, payment_status = $3, updated_at = $4 WHERE id = $1
	`

	tag, err := txQuerier(tx).Exec(ctx, query, id, status, paymentStatus, updatedAt)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}

	return nil
}

// List lists orders, newest first, narrowed by the filter.
func (r *OrderRepository) List(ctx context.Context, filter domain.OrderFilter, limit, offset int) ([]*domain.Order, error) {
	query := `
		SELECT id, branch_id, table_id, customer_name, order_type, status, payment_status, total_amount, created_at, updated_at
		FROM orders
		WHERE 1=1
	`
	args := []any{}

	if filter.BranchID != "" {
		args = append(args, filter.BranchID)
		query += ` AND branch_id = $` + itoa(len(args))
	}

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += ` AND status = $` + itoa(len(args))
	}

	if filter.PaymentStatus != "" {
		args = append(args, filter.PaymentStatus)
		query += ` AND payment_status = $` + itoa(len(args))
	}

	args = append(args, limit)
	query += ` ORDER BY created_at DESC LIMIT $` + itoa(len(args))

	args = append(args, offset)
	query += ` OFFSET $` + itoa(len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*domain.Order

	for rows.Next() {
		var o domain.Order

		err := rows.Scan(
			&o.ID,
			&o.BranchID,
			&o.TableID,
			&o.CustomerName,
			&o.Type,
			&o.Status,
			&o.PaymentStatus,
			&o.TotalAmount,
			&o.CreatedAt,
			&o.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, o := range orders {
		items, err := r.items(ctx, r.pool, o.ID)
		if err != nil {
			return nil, err
		}

		o.Items = items
	}

	return orders, nil
}
