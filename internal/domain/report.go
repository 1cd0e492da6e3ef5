package domain

import "github.com/shopspring/decimal"

// StockValuation is one valuation row of the inventory report: current
// quantity priced at the ingredient's current cost. Valuation is a pure read
// and tolerates being slightly stale relative to in-flight movements.
type StockValuation struct {
	BranchID       string
	IngredientID   string
	IngredientName string
	Quantity       decimal.Decimal
	CostPerUnit    decimal.Decimal
	Value          decimal.Decimal
}

// OrderFilter narrows order listings.
type OrderFilter struct {
	BranchID      string
	Status        OrderStatus
	PaymentStatus PaymentStatus
}
