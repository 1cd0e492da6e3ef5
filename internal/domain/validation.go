package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidQuantity  = errors.New("quantity must be positive")
	ErrInvalidAmount    = errors.New("amount must not be negative")
	ErrInvalidItems     = errors.New("at least one item is required")
	ErrQuantityTooLarge = errors.New("quantity exceeds maximum allowed")
	ErrInvalidOrderType = errors.New("invalid order type")
	ErrMissingBranch    = errors.New("branch id is required")
)

// Quantities are stored as NUMERIC(15,2); anything near the column bound is a
// caller bug, not a real movement.
const MaxMovementQuantity = "1000000000"

// ValidateQuantity validates a single movement quantity.
func ValidateQuantity(qty decimal.Decimal) error {
	if qty.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidQuantity
	}

	maxQty, _ := decimal.NewFromString(MaxMovementQuantity)
	if qty.GreaterThan(maxQty) {
		return fmt.Errorf("%w: maximum is %s", ErrQuantityTooLarge, MaxMovementQuantity)
	}

	return nil
}

// ValidatePagination clamps pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const maxPageSize = 1000
	const defaultPageSize = 50

	if limit <= 0 {
		limit = defaultPageSize
	}

	if limit > maxPageSize {
		limit = maxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
