package domain

import (
	"github.com/shopspring/decimal"
)

// Recipe is the per-unit ingredient consumption of one sellable product.
// A product typically has several recipe rows, one per ingredient. The ledger
// treats recipes as read-only; they are owned by product management.
type Recipe struct {
	ID           string
	ProductID    string
	IngredientID string
	Quantity     decimal.Decimal
	Unit         string
}

// IngredientQuantity is a resolved (ingredient, total quantity) consumption.
type IngredientQuantity struct {
	IngredientID string
	Quantity     decimal.Decimal
}

// Consumption multiplies each recipe row by the ordered quantity. Products
// without recipes yield an empty list: non-inventoried items sell without any
// stock effect.
func Consumption(recipes []Recipe, orderQuantity int64) []IngredientQuantity {
	qty := decimal.NewFromInt(orderQuantity)

	result := make([]IngredientQuantity, 0, len(recipes))
	for _, r := range recipes {
		result = append(result, IngredientQuantity{
			IngredientID: r.IngredientID,
			Quantity:     r.Quantity.Mul(qty),
		})
	}

	return result
}
