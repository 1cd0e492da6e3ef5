package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateQuantity(t *testing.T) {
	tests := []struct {
		name        string
		qty         decimal.Decimal
		expectError error
	}{
		{name: "positive", qty: decimal.NewFromInt(5)},
		{name: "at maximum", qty: decimal.RequireFromString(MaxMovementQuantity)},
		{name: "zero", qty: decimal.Zero, expectError: ErrInvalidQuantity},
		{name: "negative", qty: decimal.NewFromInt(-1), expectError: ErrInvalidQuantity},
		{name: "above maximum", qty: decimal.RequireFromString("1000000001"), expectError: ErrQuantityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuantity(tt.qty)
			if tt.expectError == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.expectError) {
				t.Fatalf("expected %v, got %v", tt.expectError, err)
			}
		})
	}
}

func TestValidatePagination(t *testing.T) {
	tests := []struct {
		name         string
		limit        int
		offset       int
		expectLimit  int
		expectOffset int
	}{
		{name: "defaults", limit: 0, offset: 0, expectLimit: 50, expectOffset: 0},
		{name: "passes through", limit: 20, offset: 40, expectLimit: 20, expectOffset: 40},
		{name: "clamps oversized limit", limit: 5000, offset: 0, expectLimit: 1000, expectOffset: 0},
		{name: "negative offset", limit: 10, offset: -5, expectLimit: 10, expectOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := ValidatePagination(tt.limit, tt.offset)
			if limit != tt.expectLimit || offset != tt.expectOffset {
				t.Fatalf("got (%d, %d), expected (%d, %d)", limit, offset, tt.expectLimit, tt.expectOffset)
			}
		})
	}
}
