package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rl1809/storefront/internal/core/domain"
	"github.com/rl1809/storefront/internal/port"
)

type RequestedItem struct {
	ProductID string
	Quantity  int
}

type CreateOrderRequest struct {
	CustomerID string
	Items      []RequestedItem
}

type OrderService struct {
	customers port.CustomerRepository
	catalog   port.ProductRepository
	orders    port.OrderRepository
}

func NewOrderService(customers port.CustomerRepository, catalog port.ProductRepository, orders port.OrderRepository) *OrderService {
	return &OrderService{
		customers: customers,
		catalog:   catalog,
		orders:    orders,
	}
}

// CreateOrder validates the customer and every requested product, freezes
// unit prices at the catalog values read during validation, persists the
// order and decrements stock. Validation failures abort before any write.
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*domain.Order, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	customer, err := s.customers.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("find customer: %w", err)
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrCustomerNotFound, req.CustomerID)
	}

	ids := make([]string, len(req.Items))
	for i, item := range req.Items {
		ids[i] = item.ProductID
	}

	products, err := s.catalog.FindAllByID(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	if len(products) == 0 {
		return nil, domain.ErrNoProductsFound
	}

	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var missing []string
	for _, item := range req.Items {
		if _, ok := byID[item.ProductID]; !ok {
			missing = append(missing, item.ProductID)
		}
	}
	if len(missing) > 0 {
		return nil, &domain.MissingProductsError{ProductIDs: missing}
	}

	// Every short line item is collected before failing, not just the first.
	var shortages []domain.StockShortage
	for _, item := range req.Items {
		product := byID[item.ProductID]
		if item.Quantity > product.QuantityInStock {
			shortages = append(shortages, domain.StockShortage{
				ProductID: item.ProductID,
				Requested: item.Quantity,
				Available: product.QuantityInStock,
			})
		}
	}
	if len(shortages) > 0 {
		return nil, &domain.InsufficientStockError{Shortages: shortages}
	}

	items := make([]domain.OrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = domain.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: byID[item.ProductID].Price,
		}
	}

	order, err := s.orders.Create(ctx, customer, items)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	decrements := make([]domain.StockDecrement, len(req.Items))
	for i, item := range req.Items {
		decrements[i] = domain.StockDecrement{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	// The conditional decrement is the authoritative stock check; the read
	// above can lose a race against a concurrent order, this cannot.
	if err := s.catalog.DecrementQuantities(ctx, decrements); err != nil {
		// rollback: the order must not survive a failed stock write
		if delErr := s.orders.Delete(ctx, order.ID); delErr != nil {
			return nil, fmt.Errorf("decrement stock: %w (order %s not rolled back: %v)", err, order.ID, delErr)
		}
		return nil, fmt.Errorf("decrement stock: %w", err)
	}

	return order, nil
}

func validateRequest(req CreateOrderRequest) error {
	if req.CustomerID == "" {
		return fmt.Errorf("%w: customer id is required", domain.ErrInvalidRequest)
	}
	if len(req.Items) == 0 {
		return fmt.Errorf("%w: at least one product is required", domain.ErrInvalidRequest)
	}

	seen := make(map[string]bool, len(req.Items))
	var duplicates []string
	for _, item := range req.Items {
		if item.ProductID == "" {
			return fmt.Errorf("%w: product id is required", domain.ErrInvalidRequest)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: quantity for product %s must be positive", domain.ErrInvalidRequest, item.ProductID)
		}
		if seen[item.ProductID] {
			duplicates = append(duplicates, item.ProductID)
		}
		seen[item.ProductID] = true
	}
	if len(duplicates) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateProducts, strings.Join(duplicates, ", "))
	}

	return nil
}
