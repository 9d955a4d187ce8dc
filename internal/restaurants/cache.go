package restaurants

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const listingVersionKey = "restaurants:listing:version"

// Cache keeps recent listing pages in Redis with versioned keys. Promotion
// changes and new listings bump the version instead of deleting keys, so a
// sweep invalidates every cached page at once. Concurrent misses for the
// same page collapse through singleflight.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	group  singleflight.Group
}

// NewCache instantiates the listing cache helper.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) version(ctx context.Context) (int64, error) {
	ver, err := c.client.Get(ctx, listingVersionKey).Int64()
	if err == redis.Nil {
		if err := c.client.Set(ctx, listingVersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return ver, nil
}

// FetchPage loads a cached listing page or populates it using the loader.
// A nil cache or redis failure falls back to the loader: the cache is an
// optimization, never a source of truth.
func (c *Cache) FetchPage(ctx context.Context, limit, offset int, loader func(context.Context) (*ListRestaurantsResponse, error)) (*ListRestaurantsResponse, error) {
	if c == nil || c.client == nil {
		return loader(ctx)
	}

	ver, err := c.version(ctx)
	if err != nil {
		return loader(ctx)
	}
	key := fmt.Sprintf("restaurants:listing:%d:%d:%d", ver, limit, offset)

	if payload, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var cached ListRestaurantsResponse
		if err := json.Unmarshal(payload, &cached); err == nil {
			return &cached, nil
		}
	}

	value, err, _ := c.group.Do(key, func() (interface{}, error) {
		page, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		if raw, err := json.Marshal(page); err == nil {
			_ = c.client.Set(ctx, key, raw, c.ttl).Err()
		}
		return page, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*ListRestaurantsResponse), nil
}

// Invalidate drops every cached page by bumping the listing version.
func (c *Cache) Invalidate(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Incr(ctx, listingVersionKey).Err()
}
