package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID              string
	Name            string
	Price           decimal.Decimal
	QuantityInStock int
	Version         int // optimistic locking
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// QuantityUpdate sets an absolute stock level, guarded by the version read
// alongside it.
type QuantityUpdate struct {
	ProductID string
	Quantity  int
	Version   int
}

// StockDecrement removes Quantity units, rejected if fewer remain.
type StockDecrement struct {
	ProductID string
	Quantity  int
}
