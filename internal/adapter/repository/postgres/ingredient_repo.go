package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/warungpos/inventory/internal/domain"
)

// IngredientRepository implements usecase.IngredientRepository.
type IngredientRepository struct {
	pool *pgxpool.Pool
}

// NewIngredientRepository creates a new IngredientRepository.
func NewIngredientRepository(pool *pgxpool.Pool) *IngredientRepository {
	return &IngredientRepository{pool: pool}
}

// GetByID retrieves an ingredient by ID.
func (r *IngredientRepository) GetByID(ctx context.Context, id string) (*domain.Ingredient, error) {
	query := `
		SELECT id, name, unit, cost_per_unit, minimum_stock, created_at, updated_at
		FROM ingredients
		WHERE id = $1
	`

	var ing domain.Ingredient

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&ing.ID,
		&ing.Name,
		&ing.Unit,
		&ing.CostPerUnit,
		&ing.MinimumStock,
		&ing.CreatedAt,
		&ing.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrIngredientNotFound
		}

		return nil, err
	}

	return &ing, nil
}

// CheckExist fails with ErrIngredientNotFound when any of the ids is unknown.
func (r *IngredientRepository) CheckExist(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query := `
		SELECT COUNT(DISTINCT id) FROM ingredients WHERE id = ANY($1)
	`

	var count int

	if err := r.pool.QueryRow(ctx, query, ids).Scan(&count); err != nil {
		return err
	}

	unique := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}

	if count != len(unique) {
		return fmt.Errorf("%w: %d of %d ingredients found", domain.ErrIngredientNotFound, count, len(unique))
	}

	return nil
}
