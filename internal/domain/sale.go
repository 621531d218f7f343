package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale represents one recorded transaction. ProductIDs and Quantities are
// positionally paired line items; TotalValue is a snapshot computed from the
// unit prices current at registration time and never recomputed afterwards.
type Sale struct {
	ID         int64           `json:"id" db:"id"`
	ProductIDs []int64         `json:"productIds" db:"product_ids"`
	Quantities []int32         `json:"quantities" db:"quantities"`
	TotalValue decimal.Decimal `json:"totalValue" db:"total_value"`
	SaleDate   time.Time       `json:"saleDate" db:"sale_date"`
	CreatedAt  time.Time       `json:"createdAt" db:"created_at"`
}

// Product is an inventory item with a unit price and on-hand stock. The sale
// workflow only reads prices and decrements stock; the store enforces that
// stock never goes negative.
type Product struct {
	ID        int64           `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	Price     decimal.Decimal `json:"price" db:"price"`
	Stock     int32           `json:"stock" db:"stock"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time       `json:"updatedAt" db:"updated_at"`
}
