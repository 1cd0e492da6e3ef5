package usecase

import (
	"context"

	"github.com/warungpos/inventory/internal/domain"
)

// RecipeResolver maps sellable products to their per-unit ingredient
// consumption. Pure reads over the recipe model; a product without recipes
// resolves to nothing and sells with no stock effect.
type RecipeResolver struct {
	recipeRepo RecipeRepository
}

// NewRecipeResolver creates a new RecipeResolver.
func NewRecipeResolver(recipeRepo RecipeRepository) *RecipeResolver {
	return &RecipeResolver{recipeRepo: recipeRepo}
}

// ConsumptionFor resolves total ingredient consumption for one product at the
// given order quantity.
func (r *RecipeResolver) ConsumptionFor(ctx context.Context, productID string, orderQuantity int64) ([]domain.IngredientQuantity, error) {
	recipes, err := r.recipeRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	return domain.Consumption(recipes, orderQuantity), nil
}

// DeductionsForItems resolves the negative ledger deltas a paid order's items
// produce at the given branch, aggregated per ingredient.
func (r *RecipeResolver) DeductionsForItems(ctx context.Context, branchID string, items []domain.OrderItem) ([]domain.StockDelta, error) {
	var deltas []domain.StockDelta

	for _, item := range items {
		consumption, err := r.ConsumptionFor(ctx, item.ProductID, item.Quantity)
		if err != nil {
			return nil, err
		}

		for _, c := range consumption {
			deltas = append(deltas, domain.StockDelta{
				Key:      domain.StockKey{BranchID: branchID, IngredientID: c.IngredientID},
				Quantity: c.Quantity.Neg(),
			})
		}
	}

	return domain.MergeDeltas(deltas), nil
}
