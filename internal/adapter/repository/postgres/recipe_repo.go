package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/warungpos/inventory/internal/domain"
)

// RecipeRepository implements usecase.RecipeRepository.
type RecipeRepository struct {
	pool *pgxpool.Pool
}

// NewRecipeRepository creates a new RecipeRepository.
func NewRecipeRepository(pool *pgxpool.Pool) *RecipeRepository {
	return &RecipeRepository{pool: pool}
}

// ListByProduct lists the recipe rows of a product. Products without recipes
// return an empty list, not an error.
func (r *RecipeRepository) ListByProduct(ctx context.Context, productID string) ([]domain.Recipe, error) {
	query := `
		SELECT id, product_id, ingredient_id, quantity, unit
		FROM recipes
		WHERE product_id = $1
		ORDER BY ingredient_id
	`

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recipes []domain.Recipe

	for rows.Next() {
		var rec domain.Recipe

		err := rows.Scan(
			&rec.ID,
			&rec.ProductID,
			&rec.IngredientID,
			&rec.Quantity,
			&rec.Unit,
		)
		if err != nil {
			return nil, err
		}

		recipes = append(recipes, rec)
	}

	return recipes, rows.Err()
}
