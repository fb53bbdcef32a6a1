package cache

import (
	"context"
	"errors"

	"github.com/waste3d/survivors-profile/internal/domain"

	"github.com/redis/go-redis/v9"
)

// ProfileCache - облачное key/value хранилище профилей в Redis. TTL нет: это не кэш, а источник правды.
type ProfileCache struct {
	client *redis.Client
}

func NewProfileCache(client *redis.Client) *ProfileCache {
	return &ProfileCache{client: client}
}

func (c *ProfileCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return val, nil
}

func (c *ProfileCache) Put(ctx context.Context, key string, data []byte) error {
	return c.client.Set(ctx, key, data, 0).Err()
}

func (c *ProfileCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

func (c *ProfileCache) Close() error {
	return c.client.Close()
}
