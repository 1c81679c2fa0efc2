package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"training-portal/internal/models"
)

const catalogKey = "modules:catalog"

type RedisCache struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisCache(addr string) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisCache{
		client: client,
		ctx:    context.Background(),
	}
}

// SetCatalog caches the full module catalog as a JSON blob.
func (c *RedisCache) SetCatalog(modules []models.Module) error {
	data, err := json.Marshal(modules)
	if err != nil {
		return err
	}
	return c.client.Set(c.ctx, catalogKey, data, 24*time.Hour).Err()
}

func (c *RedisCache) GetCatalog() ([]models.Module, error) {
	data, err := c.client.Get(c.ctx, catalogKey).Bytes()
	if err != nil {
		return nil, err
	}

	var modules []models.Module
	err = json.Unmarshal(data, &modules)
	return modules, err
}

// InvalidateCatalog drops the cached catalog after an admin edit.
func (c *RedisCache) InvalidateCatalog() error {
	return c.client.Del(c.ctx, catalogKey).Err()
}

// SetJSON stores an arbitrary value under key with a TTL. Used for
// in-flight quiz attempts and short-lived stats snapshots.
func (c *RedisCache) SetJSON(key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(c.ctx, key, data, ttl).Err()
}

// GetJSON loads a value stored by SetJSON. A missing key surfaces as
// redis.Nil.
func (c *RedisCache) GetJSON(key string, dest interface{}) error {
	data, err := c.client.Get(c.ctx, key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func (c *RedisCache) Delete(key string) error {
	return c.client.Del(c.ctx, key).Err()
}
