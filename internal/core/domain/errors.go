package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidRequest    = errors.New("invalid order request")
	ErrDuplicateProducts = errors.New("duplicate products in request")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrNoProductsFound   = errors.New("no products found")
	ErrProductsNotFound  = errors.New("products not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// MissingProductsError lists requested product ids absent from the catalog,
// in the order they appeared in the request.
type MissingProductsError struct {
	ProductIDs []string
}

func (e *MissingProductsError) Error() string {
	return "products not found: " + strings.Join(e.ProductIDs, ", ")
}

func (e *MissingProductsError) Unwrap() error { return ErrProductsNotFound }

// StockShortage is one line item whose requested quantity exceeds the stock
// observed for its product.
type StockShortage struct {
	ProductID string
	Requested int
	Available int
}

// InsufficientStockError reports every short line item, not just the first.
type InsufficientStockError struct {
	Shortages []StockShortage
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, len(e.Shortages))
	for i, s := range e.Shortages {
		parts[i] = fmt.Sprintf("%s (requested %d, available %d)", s.ProductID, s.Requested, s.Available)
	}
	return "insufficient stock: " + strings.Join(parts, ", ")
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
