package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"vendas-service/internal/domain"

	"github.com/jackc/pgx/v5/pgtype"
)

var (
	ErrSaleNotFound = errors.New("sale not found")
)

// pgTypeMap adapts pgx's type system to database/sql scanning, needed for the
// bigint[]/integer[] columns on the sales table.
var pgTypeMap = pgtype.NewMap()

// SaleRepository defines the interface for sale data access
type SaleRepository interface {
	Create(ctx context.Context, sale *domain.Sale) error
	FindByID(ctx context.Context, id int64) (*domain.Sale, error)
	List(ctx context.Context) ([]*domain.Sale, error)
	Delete(ctx context.Context, id int64) error
}

type saleRepository struct {
	db DBTX
}

// NewSaleRepository creates a new instance of SaleRepository
func NewSaleRepository(db DBTX) SaleRepository {
	return &saleRepository{db: db}
}

// Create inserts a new sale and fills in its store-assigned id
func (r *saleRepository) Create(ctx context.Context, sale *domain.Sale) error {
	query := `
		INSERT INTO sales (product_ids, quantities, total_value, sale_date, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	sale.CreatedAt = time.Now()

	err := r.db.QueryRowContext(
		ctx,
		query,
		sale.ProductIDs,
		sale.Quantities,
		sale.TotalValue,
		sale.SaleDate,
		sale.CreatedAt,
	).Scan(&sale.ID)

	if err != nil {
		return fmt.Errorf("failed to create sale: %w", err)
	}

	return nil
}

// FindByID retrieves a sale by ID
func (r *saleRepository) FindByID(ctx context.Context, id int64) (*domain.Sale, error) {
	query := `
		SELECT id, product_ids, quantities, total_value, sale_date, created_at
		FROM sales
		WHERE id = $1
	`

	sale := &domain.Sale{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&sale.ID,
		pgTypeMap.SQLScanner(&sale.ProductIDs),
		pgTypeMap.SQLScanner(&sale.Quantities),
		&sale.TotalValue,
		&sale.SaleDate,
		&sale.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSaleNotFound
		}
		return nil, fmt.Errorf("failed to find sale by ID: %w", err)
	}

	return sale, nil
}

// List retrieves all sales ordered by ascending id (insertion order)
func (r *saleRepository) List(ctx context.Context) ([]*domain.Sale, error) {
	query := `
		SELECT id, product_ids, quantities, total_value, sale_date, created_at
		FROM sales
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	defer rows.Close()

	sales := []*domain.Sale{}
	for rows.Next() {
		sale := &domain.Sale{}
		err := rows.Scan(
			&sale.ID,
			pgTypeMap.SQLScanner(&sale.ProductIDs),
			pgTypeMap.SQLScanner(&sale.Quantities),
			&sale.TotalValue,
			&sale.SaleDate,
			&sale.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		sales = append(sales, sale)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sales: %w", err)
	}

	return sales, nil
}

// Delete removes a sale by id. Deleting a sale does not restock its products.
func (r *saleRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM sales WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete sale: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrSaleNotFound
	}

	return nil
}
