package port

import (
	"context"

	"github.com/rl1809/storefront/internal/core/domain"
)

type CacheRepository interface {
	// GetProducts returns cached products for the given ids; absent entries are skipped
	GetProducts(ctx context.Context, ids []string) ([]domain.Product, error)

	// SetProducts caches products, replacing existing entries
	SetProducts(ctx context.Context, products []domain.Product) error

	// InvalidateProducts drops cached entries for the given ids
	InvalidateProducts(ctx context.Context, ids []string) error
}
