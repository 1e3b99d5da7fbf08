package port

import (
	"context"

	"github.com/rl1809/storefront/internal/core/domain"
)

type CustomerRepository interface {
	// FindByID retrieves a customer by id, returning nil when absent
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
}

type ProductRepository interface {
	// FindAllByID retrieves the subset of catalog products matching the given ids
	FindAllByID(ctx context.Context, ids []string) ([]domain.Product, error)

	// UpdateQuantities sets absolute stock levels with version check for optimistic locking
	UpdateQuantities(ctx context.Context, updates []domain.QuantityUpdate) error

	// DecrementQuantities removes stock as one all-or-nothing batch, failing
	// with InsufficientStockError if any product holds fewer units than requested
	DecrementQuantities(ctx context.Context, decrements []domain.StockDecrement) error
}

type OrderRepository interface {
	// Create persists a new order for the customer with frozen item prices
	Create(ctx context.Context, customer *domain.Customer, items []domain.OrderItem) (*domain.Order, error)

	// Delete removes an order and its items (rollback when the stock write fails)
	Delete(ctx context.Context, orderID string) error
}
