package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTLs per payload kind
const (
	TTLPost     = 5 * time.Minute  // single published post
	TTLPosts    = 30 * time.Second // post lists (refreshed often)
	TTLServices = 10 * time.Minute // published services (rarely change)
	TTLPricing  = 10 * time.Minute // active price plans
	TTLAppStatus = 1 * time.Minute // desktop app status payloads
	TTLDefault  = 5 * time.Minute
)

// Cache key prefixes
const (
	PrefixPost      = "post:"
	PrefixPosts     = "posts:"
	PrefixServices  = "services:"
	PrefixPricing   = "pricing:"
	PrefixAppStatus = "appstatus:"
)

// Service is the Redis cache interface used by the read paths
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)

	GetPost(ctx context.Context, slug string) ([]byte, error)
	SetPost(ctx context.Context, slug string, data interface{}) error
	InvalidatePost(ctx context.Context, slug string) error

	GetPosts(ctx context.Context, page, limit int, filter string) ([]byte, error)
	SetPosts(ctx context.Context, page, limit int, filter string, data interface{}) error
	InvalidatePosts(ctx context.Context) error

	GetServices(ctx context.Context) ([]byte, error)
	SetServices(ctx context.Context, data interface{}) error
	InvalidateServices(ctx context.Context) error

	GetPricing(ctx context.Context) ([]byte, error)
	SetPricing(ctx context.Context, data interface{}) error
	InvalidatePricing(ctx context.Context) error

	GetAppStatus(ctx context.Context, key string) ([]byte, error)
	SetAppStatus(ctx context.Context, key string, data interface{}) error
	InvalidateAppStatus(ctx context.Context) error

	IsAvailable() bool
	Ping(ctx context.Context) error
}

type redisCache struct {
	client *redis.Client
}

// NewService creates a Redis-backed cache service
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

func (c *redisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = TTLDefault
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *redisCache) Exists(ctx context.Context, key string) (bool, error) {
	n, err := c.client.Exists(ctx, key).Result()
	return n > 0, err
}

func (c *redisCache) getRaw(ctx context.Context, key string) ([]byte, error) {
	return c.client.Get(ctx, key).Bytes()
}

func (c *redisCache) setRaw(ctx context.Context, key string, data interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, ttl).Err()
}

func (c *redisCache) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// --- posts ---

func (c *redisCache) GetPost(ctx context.Context, slug string) ([]byte, error) {
	return c.getRaw(ctx, PrefixPost+slug)
}

func (c *redisCache) SetPost(ctx context.Context, slug string, data interface{}) error {
	return c.setRaw(ctx, PrefixPost+slug, data, TTLPost)
}

func (c *redisCache) InvalidatePost(ctx context.Context, slug string) error {
	return c.Delete(ctx, PrefixPost+slug)
}

func (c *redisCache) GetPosts(ctx context.Context, page, limit int, filter string) ([]byte, error) {
	return c.getRaw(ctx, postsKey(page, limit, filter))
}

func (c *redisCache) SetPosts(ctx context.Context, page, limit int, filter string, data interface{}) error {
	return c.setRaw(ctx, postsKey(page, limit, filter), data, TTLPosts)
}

func (c *redisCache) InvalidatePosts(ctx context.Context) error {
	return c.deleteByPattern(ctx, PrefixPosts+"*")
}

func postsKey(page, limit int, filter string) string {
	return fmt.Sprintf("%sp%d:l%d:%s", PrefixPosts, page, limit, filter)
}

// --- services ---

func (c *redisCache) GetServices(ctx context.Context) ([]byte, error) {
	return c.getRaw(ctx, PrefixServices+"published")
}

func (c *redisCache) SetServices(ctx context.Context, data interface{}) error {
	return c.setRaw(ctx, PrefixServices+"published", data, TTLServices)
}

func (c *redisCache) InvalidateServices(ctx context.Context) error {
	return c.deleteByPattern(ctx, PrefixServices+"*")
}

// --- pricing ---

func (c *redisCache) GetPricing(ctx context.Context) ([]byte, error) {
	return c.getRaw(ctx, PrefixPricing+"active")
}

func (c *redisCache) SetPricing(ctx context.Context, data interface{}) error {
	return c.setRaw(ctx, PrefixPricing+"active", data, TTLPricing)
}

func (c *redisCache) InvalidatePricing(ctx context.Context) error {
	return c.deleteByPattern(ctx, PrefixPricing+"*")
}

// --- desktop app status ---

func (c *redisCache) GetAppStatus(ctx context.Context, key string) ([]byte, error) {
	return c.getRaw(ctx, PrefixAppStatus+key)
}

func (c *redisCache) SetAppStatus(ctx context.Context, key string, data interface{}) error {
	return c.setRaw(ctx, PrefixAppStatus+key, data, TTLAppStatus)
}

func (c *redisCache) InvalidateAppStatus(ctx context.Context) error {
	return c.deleteByPattern(ctx, PrefixAppStatus+"*")
}
