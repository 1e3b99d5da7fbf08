package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rl1809/storefront/internal/core/domain"
)

var ErrOptimisticLock = errors.New("optimistic lock conflict")

type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

func (m *MySQLAdapter) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	var c domain.Customer
	err := m.db.QueryRowContext(ctx, `
		SELECT id, name, email, created_at
		FROM customers WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name, &c.Email, &c.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query customer: %w", err)
	}

	return &c, nil
}

func (m *MySQLAdapter) FindAllByID(ctx context.Context, ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := m.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT id, name, price, quantity_in_stock, version, created_at, updated_at
		FROM products WHERE id IN (%s)`, placeholders), args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.QuantityInStock, &p.Version, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return products, nil
}

func (m *MySQLAdapter) UpdateQuantities(ctx context.Context, updates []domain.QuantityUpdate) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, u := range updates {
		result, err := tx.ExecContext(ctx, `
			UPDATE products
			SET quantity_in_stock = ?, version = version + 1, updated_at = NOW()
			WHERE id = ? AND version = ?`,
			u.Quantity, u.ProductID, u.Version,
		)
		if err != nil {
			return fmt.Errorf("update quantity: %w", err)
		}

		rows, _ := result.RowsAffected()
		if rows == 0 {
			return ErrOptimisticLock
		}
	}

	return tx.Commit()
}

// DecrementQuantities applies the whole batch in one transaction. Each row
// is guarded with quantity_in_stock >= requested, so two concurrent orders
// that both passed validation cannot drive stock negative; the losing batch
// rolls back and reports every short product.
func (m *MySQLAdapter) DecrementQuantities(ctx context.Context, decrements []domain.StockDecrement) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var shortages []domain.StockShortage
	for _, d := range decrements {
		result, err := tx.ExecContext(ctx, `
			UPDATE products
			SET quantity_in_stock = quantity_in_stock - ?, version = version + 1, updated_at = NOW()
			WHERE id = ? AND quantity_in_stock >= ?`,
			d.Quantity, d.ProductID, d.Quantity,
		)
		if err != nil {
			return fmt.Errorf("decrement stock: %w", err)
		}

		rows, _ := result.RowsAffected()
		if rows == 0 {
			var available int
			err := tx.QueryRowContext(ctx,
				`SELECT quantity_in_stock FROM products WHERE id = ?`, d.ProductID,
			).Scan(&available)
			if err != nil && !errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("read stock: %w", err)
			}
			shortages = append(shortages, domain.StockShortage{
				ProductID: d.ProductID,
				Requested: d.Quantity,
				Available: available,
			})
		}
	}

	if len(shortages) > 0 {
		return &domain.InsufficientStockError{Shortages: shortages}
	}

	return tx.Commit()
}

func (m *MySQLAdapter) Create(ctx context.Context, customer *domain.Customer, items []domain.OrderItem) (*domain.Order, error) {
	order := &domain.Order{
		ID:         uuid.NewString(),
		CustomerID: customer.ID,
		Items:      items,
		CreatedAt:  time.Now(),
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, customer_id, created_at)
		VALUES (?, ?, ?)`,
		order.ID, order.CustomerID, order.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	for _, item := range items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, unit_price)
			VALUES (?, ?, ?, ?)`,
			order.ID, item.ProductID, item.Quantity, item.UnitPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("insert order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit order: %w", err)
	}

	return order, nil
}

func (m *MySQLAdapter) Delete(ctx context.Context, orderID string) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = ?`, orderID); err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, orderID); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}

	return tx.Commit()
}
