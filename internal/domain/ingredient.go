package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ingredient is the read model the ledger needs for valuation and low-stock
// reporting. Ingredient management itself lives outside this service.
type Ingredient struct {
	ID           string
	Name         string
	Unit         string
	CostPerUnit  decimal.Decimal
	MinimumStock decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Product is the read model for order creation and recipe resolution.
type Product struct {
	ID        string
	Name      string
	Price     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
