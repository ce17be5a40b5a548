// Package cache implementa la caché del reporte de ventas sobre Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/jhoicas/greenthread-api/internal/application/dto"
	"github.com/jhoicas/greenthread-api/internal/application/ports"
	"github.com/jhoicas/greenthread-api/pkg/config"
)

var _ ports.InsightsCache = (*RedisInsightsCache)(nil)

const keyPrefix = "insights:"

// RedisInsightsCache guarda el reporte serializado en JSON bajo insights:<sellerId>.
type RedisInsightsCache struct {
	client *redis.Client
}

// NewRedisInsightsCache crea el cliente. No conecta hasta el primer comando; usar Ping para verificar.
func NewRedisInsightsCache(cfg config.RedisConfig) *RedisInsightsCache {
	return &RedisInsightsCache{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
			PoolSize: cfg.PoolSize,
		}),
	}
}

func key(sellerID string) string { return keyPrefix + sellerID }

// Ping verifica la conexión.
func (c *RedisInsightsCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close libera el pool de conexiones.
func (c *RedisInsightsCache) Close() error {
	return c.client.Close()
}

func (c *RedisInsightsCache) Get(ctx context.Context, sellerID string) (*dto.SalesInsightsResponse, bool, error) {
	data, err := c.client.Get(ctx, key(sellerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	var out dto.SalesInsightsResponse
	if err := json.Unmarshal(data, &out); err != nil {
		// entrada corrupta: se descarta y se trata como miss
		_ = c.client.Del(ctx, key(sellerID)).Err()
		return nil, false, nil
	}
	return &out, true, nil
}

func (c *RedisInsightsCache) Set(ctx context.Context, sellerID string, insights *dto.SalesInsightsResponse, ttl time.Duration) error {
	data, err := json.Marshal(insights)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, key(sellerID), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *RedisInsightsCache) Invalidate(ctx context.Context, sellerIDs ...string) error {
	if len(sellerIDs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(sellerIDs))
	for _, id := range sellerIDs {
		keys = append(keys, key(id))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
