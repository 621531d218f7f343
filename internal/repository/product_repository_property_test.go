package repository

import (
	"context"
	"errors"
	"testing"

	"vendas-service/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
)

// Feature: vendas-service, Property 3: Stock decrements accumulate additively
// and never drive stock negative
func TestProperty_DecrementsAccumulateAndNeverGoNegative(t *testing.T) {
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	properties := gopter.NewProperties(nil)

	properties.Property("sum of successful decrements equals the stock consumed", prop.ForAll(
		func(initialStock int32, requests []int32) bool {
			if _, err := testDB.Exec(`DELETE FROM products`); err != nil {
				t.Logf("failed to reset products: %v", err)
				return false
			}

			product := &domain.Product{
				Name:  "prop",
				Price: decimal.NewFromInt(1),
				Stock: initialStock,
			}
			if err := repo.Create(ctx, product); err != nil {
				t.Logf("failed to create product: %v", err)
				return false
			}

			remaining := initialStock
			for _, q := range requests {
				err := repo.DecrementStock(ctx, product.ID, q)
				if q <= remaining {
					if err != nil {
						t.Logf("unexpected decrement failure: %v", err)
						return false
					}
					remaining -= q
				} else if !errors.Is(err, ErrStockInsufficient) {
					t.Logf("expected ErrStockInsufficient, got %v", err)
					return false
				}
			}

			found, err := repo.FindByID(ctx, product.ID)
			if err != nil {
				t.Logf("failed to re-read product: %v", err)
				return false
			}
			return found.Stock == remaining && found.Stock >= 0
		},
		gen.Int32Range(0, 100),
		gen.SliceOf(gen.Int32Range(1, 30)),
	))

	properties.TestingRun(t)
}
