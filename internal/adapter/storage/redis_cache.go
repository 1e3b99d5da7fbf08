package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/storefront/internal/core/domain"
)

const productKeyPrefix = "product:"

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (r *RedisCache) GetProducts(ctx context.Context, ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = productKeyPrefix + id
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	var products []domain.Product
	for _, v := range values {
		data, ok := v.(string)
		if !ok {
			continue
		}
		var p domain.Product
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			// unreadable entry counts as a miss
			continue
		}
		products = append(products, p)
	}

	return products, nil
}

func (r *RedisCache) SetProducts(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	pipe := r.client.Pipeline()
	for _, p := range products {
		data, err := json.Marshal(p)
		if err != nil {
			return err
		}
		pipe.Set(ctx, productKeyPrefix+p.ID, data, r.ttl)
	}

	_, err := pipe.Exec(ctx)
	return err
}

func (r *RedisCache) InvalidateProducts(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = productKeyPrefix + id
	}

	return r.client.Del(ctx, keys...).Err()
}
