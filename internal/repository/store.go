package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// DBTX is the subset of database/sql shared by *sql.DB and *sql.Tx, so the
// same repository code runs inside and outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Store bundles the repositories with a transaction boundary. ExecTx hands the
// callback a Store whose repositories are bound to a single transaction; any
// error rolls the whole transaction back.
type Store interface {
	Sales() SaleRepository
	Products() ProductRepository
	ExecTx(ctx context.Context, fn func(Store) error) error
}

type sqlStore struct {
	db       *sql.DB
	sales    SaleRepository
	products ProductRepository
}

// NewStore creates a Store backed by the given database handle.
func NewStore(db *sql.DB) Store {
	return &sqlStore{
		db:       db,
		sales:    NewSaleRepository(db),
		products: NewProductRepository(db),
	}
}

func (s *sqlStore) Sales() SaleRepository {
	return s.sales
}

func (s *sqlStore) Products() ProductRepository {
	return s.products
}

func (s *sqlStore) ExecTx(ctx context.Context, fn func(Store) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	txStore := &sqlStore{
		sales:    NewSaleRepository(tx),
		products: NewProductRepository(tx),
	}

	if err := fn(txStore); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
