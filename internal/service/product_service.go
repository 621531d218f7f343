package service

import (
	"context"
	"fmt"

	"vendas-service/internal/domain"
	"vendas-service/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductService defines the interface for product catalog operations
type ProductService interface {
	CreateProduct(ctx context.Context, name string, price decimal.Decimal, stock int32) (*domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]*domain.Product, error)
}

type productService struct {
	store repository.Store
}

// NewProductService creates a new instance of ProductService
func NewProductService(store repository.Store) ProductService {
	return &productService{store: store}
}

// CreateProduct adds a product to the catalog with its unit price and
// initial stock level
func (s *productService) CreateProduct(ctx context.Context, name string, price decimal.Decimal, stock int32) (*domain.Product, error) {
	product := &domain.Product{
		Name:  name,
		Price: price,
		Stock: stock,
	}

	if err := s.store.Products().Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// GetProduct retrieves a product by id
func (s *productService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.store.Products().FindByID(ctx, id)
}

// ListProducts returns all products ordered by id
func (s *productService) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.store.Products().List(ctx)
}
