package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vendas-service/internal/domain"
	"vendas-service/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrNoLineItems         = errors.New("at least one line item is required")
	ErrLengthMismatch      = errors.New("product ids and quantities must have the same length")
	ErrQuantityNotPositive = errors.New("quantities must be positive")
)

// RegisterSaleInput carries the caller-supplied fields of a new sale. SaleDate
// defaults to the current time when left zero.
type RegisterSaleInput struct {
	ProductIDs []int64
	Quantities []int32
	SaleDate   time.Time
}

// SaleService defines the interface for the sale registration workflow
type SaleService interface {
	RegisterSale(ctx context.Context, input RegisterSaleInput) (*domain.Sale, error)
	ComputeTotal(ctx context.Context, productIDs []int64, quantities []int32) (decimal.Decimal, error)
	ListSales(ctx context.Context) ([]*domain.Sale, error)
	GetSale(ctx context.Context, id int64) (*domain.Sale, error)
	DeleteSale(ctx context.Context, id int64) error
}

type saleService struct {
	store  repository.Store
	logger *zap.Logger
}

// NewSaleService creates a new instance of SaleService
func NewSaleService(store repository.Store, logger *zap.Logger) SaleService {
	return &saleService{
		store:  store,
		logger: logger,
	}
}

// RegisterSale validates the input, computes the total from current unit
// prices, then persists the sale row and decrements stock for every line item
// inside one transaction. A failed decrement rolls the sale back, so no sale
// is ever recorded without its inventory adjustment.
func (s *saleService) RegisterSale(ctx context.Context, input RegisterSaleInput) (*domain.Sale, error) {
	if err := validateLineItems(input.ProductIDs, input.Quantities); err != nil {
		return nil, err
	}

	saleDate := input.SaleDate
	if saleDate.IsZero() {
		saleDate = time.Now()
	}

	total, err := s.ComputeTotal(ctx, input.ProductIDs, input.Quantities)
	if err != nil {
		return nil, err
	}

	sale := &domain.Sale{
		ProductIDs: input.ProductIDs,
		Quantities: input.Quantities,
		TotalValue: total,
		SaleDate:   saleDate,
	}

	err = s.store.ExecTx(ctx, func(st repository.Store) error {
		if err := st.Sales().Create(ctx, sale); err != nil {
			return err
		}

		for i, productID := range sale.ProductIDs {
			if err := st.Products().DecrementStock(ctx, productID, sale.Quantities[i]); err != nil {
				s.logger.Warn("Stock adjustment failed, rolling back sale",
					zap.Int64("sale_id", sale.ID),
					zap.Int64("product_id", productID),
					zap.Int32("quantity", sale.Quantities[i]),
					zap.Error(err),
				)
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Sale registered",
		zap.Int64("sale_id", sale.ID),
		zap.String("total_value", sale.TotalValue.String()),
		zap.Int("line_items", len(sale.ProductIDs)),
	)

	return sale, nil
}

// ComputeTotal fetches the current unit price of every referenced product in
// one batched lookup and returns sum(price * quantity) over the line items.
// Prices are paired with quantities by product id, never by row position.
// Empty input yields zero without contacting the store; callers are expected
// to have rejected it already.
func (s *saleService) ComputeTotal(ctx context.Context, productIDs []int64, quantities []int32) (decimal.Decimal, error) {
	if len(productIDs) == 0 {
		return decimal.Zero, nil
	}
	if len(productIDs) != len(quantities) {
		return decimal.Zero, ErrLengthMismatch
	}

	prices, err := s.store.Products().UnitPrices(ctx, productIDs)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute total: %w", err)
	}

	total := decimal.Zero
	for i, productID := range productIDs {
		price, ok := prices[productID]
		if !ok {
			return decimal.Zero, fmt.Errorf("product %d: %w", productID, repository.ErrProductNotFound)
		}
		total = total.Add(price.Mul(decimal.NewFromInt32(quantities[i])))
	}

	return total, nil
}

// ListSales returns all sales ordered by ascending id
func (s *saleService) ListSales(ctx context.Context) ([]*domain.Sale, error) {
	sales, err := s.store.Sales().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return sales, nil
}

// GetSale retrieves a sale by id
func (s *saleService) GetSale(ctx context.Context, id int64) (*domain.Sale, error) {
	sale, err := s.store.Sales().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// DeleteSale permanently removes a sale record. Stock is not restored.
func (s *saleService) DeleteSale(ctx context.Context, id int64) error {
	if err := s.store.Sales().Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Sale deleted", zap.Int64("sale_id", id))
	return nil
}

func validateLineItems(productIDs []int64, quantities []int32) error {
	if len(productIDs) == 0 || len(quantities) == 0 {
		return ErrNoLineItems
	}
	if len(productIDs) != len(quantities) {
		return ErrLengthMismatch
	}
	for _, q := range quantities {
		if q <= 0 {
			return ErrQuantityNotPositive
		}
	}
	return nil
}
