package storage

import (
	"context"

	"github.com/rl1809/storefront/internal/core/domain"
	"github.com/rl1809/storefront/internal/port"
)

// CachedProductRepository puts a read-through cache in front of the catalog.
// Stock writes go straight to the catalog and invalidate the touched
// entries. A stale cached quantity can only make validation fail early or
// send a decrement that the store's guard rejects; it cannot oversell.
type CachedProductRepository struct {
	catalog port.ProductRepository
	cache   port.CacheRepository
}

func NewCachedProductRepository(catalog port.ProductRepository, cache port.CacheRepository) *CachedProductRepository {
	return &CachedProductRepository{catalog: catalog, cache: cache}
}

func (c *CachedProductRepository) FindAllByID(ctx context.Context, ids []string) ([]domain.Product, error) {
	cached, err := c.cache.GetProducts(ctx, ids)
	if err != nil {
		// cache outage degrades to catalog reads
		cached = nil
	}

	have := make(map[string]bool, len(cached))
	for _, p := range cached {
		have[p.ID] = true
	}

	var missing []string
	for _, id := range ids {
		if !have[id] {
			missing = append(missing, id)
		}
	}

	products := cached
	if len(missing) > 0 {
		fetched, err := c.catalog.FindAllByID(ctx, missing)
		if err != nil {
			return nil, err
		}
		if len(fetched) > 0 {
			_ = c.cache.SetProducts(ctx, fetched) // best effort
			products = append(products, fetched...)
		}
	}

	return products, nil
}

func (c *CachedProductRepository) UpdateQuantities(ctx context.Context, updates []domain.QuantityUpdate) error {
	if err := c.catalog.UpdateQuantities(ctx, updates); err != nil {
		return err
	}

	ids := make([]string, len(updates))
	for i, u := range updates {
		ids[i] = u.ProductID
	}
	_ = c.cache.InvalidateProducts(ctx, ids) // best effort, TTL bounds staleness

	return nil
}

func (c *CachedProductRepository) DecrementQuantities(ctx context.Context, decrements []domain.StockDecrement) error {
	if err := c.catalog.DecrementQuantities(ctx, decrements); err != nil {
		return err
	}

	ids := make([]string, len(decrements))
	for i, d := range decrements {
		ids[i] = d.ProductID
	}
	_ = c.cache.InvalidateProducts(ctx, ids) // best effort, TTL bounds staleness

	return nil
}
