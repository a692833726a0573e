package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"resortbook/constants"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// Cache is the key/value store behind the available-listing cache.
type Cache interface {
	Get(ctx context.Context, key string, target interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Incr(ctx context.Context, key string) (int64, error)
	GetInt(ctx context.Context, key string) (int64, error)
}

// GetFromRedis decodes the JSON value at key into target. found is false on a miss.
func GetFromRedis(ctx context.Context, rdb *redis.Client, key string, target interface{}) (found bool, err error) {
	cachedData, err := rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(cachedData, target); err != nil {
		return false, err
	}
	return true, nil
}

func SetToRedis(ctx context.Context, rdb *redis.Client, key string, value interface{}, ttl time.Duration) error {
	dataJSON, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, dataJSON, ttl).Err()
}

type RedisCache struct {
	rdb *redis.Client
}

func NewRedisCache(rdb *redis.Client) *RedisCache {
	return &RedisCache{rdb: rdb}
}

func (c *RedisCache) Get(ctx context.Context, key string, target interface{}) (bool, error) {
	return GetFromRedis(ctx, c.rdb, key, target)
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return SetToRedis(ctx, c.rdb, key, value, ttl)
}

func (c *RedisCache) Incr(ctx context.Context, key string) (int64, error) {
	return c.rdb.Incr(ctx, key).Result()
}

// GetInt returns 0 for a missing key.
func (c *RedisCache) GetInt(ctx context.Context, key string) (int64, error) {
	v, err := c.rdb.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// AvailabilityCache stores available-listing results under a version that
// every inventory mutation bumps. A nil *AvailabilityCache or a nil Cache
// disables caching.
type AvailabilityCache struct {
	cache Cache
	ttl   time.Duration
}

func NewAvailabilityCache(cache Cache) *AvailabilityCache {
	return &AvailabilityCache{cache: cache, ttl: constants.AvailableCacheTTL}
}

func (a *AvailabilityCache) enabled() bool {
	return a != nil && a.cache != nil
}

func (a *AvailabilityCache) key(ctx context.Context, variant string) (string, error) {
	version, err := a.cache.GetInt(ctx, constants.CacheKeyAvailableVersion)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:v%s:%s", constants.CacheKeyAvailablePrefix, strconv.FormatInt(version, 10), variant), nil
}

// Load fills target from the cache. The returned key is empty when caching is off.
func (a *AvailabilityCache) Load(ctx context.Context, variant string, target interface{}) (key string, hit bool, err error) {
	if !a.enabled() {
		return "", false, nil
	}
	key, err = a.key(ctx, variant)
	if err != nil {
		return "", false, err
	}
	hit, err = a.cache.Get(ctx, key, target)
	return key, hit, err
}

func (a *AvailabilityCache) Store(ctx context.Context, key string, value interface{}) error {
	if !a.enabled() || key == "" {
		return nil
	}
	return a.cache.Set(ctx, key, value, a.ttl)
}

// Invalidate moves every reader to a fresh key space. Old entries expire on their own.
func (a *AvailabilityCache) Invalidate(ctx context.Context) error {
	if !a.enabled() {
		return nil
	}
	_, err := a.cache.Incr(ctx, constants.CacheKeyAvailableVersion)
	return err
}
