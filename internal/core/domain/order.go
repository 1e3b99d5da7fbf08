package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem carries the unit price read from the catalog when the order was
// accepted. Later catalog price changes never touch it.
type OrderItem struct {
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
}

type Order struct {
	ID         string
	CustomerID string
	Items      []OrderItem
	CreatedAt  time.Time
}

// Total sums quantity times frozen unit price over all items.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
