package restaurants

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/kurier-app/kurier/testing"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewCache(client, time.Minute)
}

func listingPage(names ...string) *ListRestaurantsResponse {
	items := make([]Restaurant, 0, len(names))
	for i, name := range names {
		items = append(items, Restaurant{ID: int64(i + 1), Name: name})
	}
	return &ListRestaurantsResponse{Restaurants: items, Total: len(items)}
}

func TestFetchPagePopulatesAndHits(t *testing.T) {
	cache := newTestCache(t)
	loads := 0
	loader := func(ctx context.Context) (*ListRestaurantsResponse, error) {
		loads++
		return listingPage("Gilded Spoon", "Nokdu House"), nil
	}

	first, err := cache.FetchPage(context.Background(), 25, 0, loader)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Total)
	assert.Equal(t, 1, loads)

	second, err := cache.FetchPage(context.Background(), 25, 0, loader)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, loads, "second fetch must come from cache")
}

func TestFetchPageKeysByPage(t *testing.T) {
	cache := newTestCache(t)
	loads := 0
	loader := func(ctx context.Context) (*ListRestaurantsResponse, error) {
		loads++
		return listingPage("Gilded Spoon"), nil
	}

	_, err := cache.FetchPage(context.Background(), 25, 0, loader)
	require.NoError(t, err)
	_, err = cache.FetchPage(context.Background(), 25, 25, loader)
	require.NoError(t, err)
	assert.Equal(t, 2, loads)
}

func TestInvalidateDropsAllPages(t *testing.T) {
	cache := newTestCache(t)
	loads := 0
	loader := func(ctx context.Context) (*ListRestaurantsResponse, error) {
		loads++
		return listingPage("Gilded Spoon"), nil
	}

	_, err := cache.FetchPage(context.Background(), 25, 0, loader)
	require.NoError(t, err)
	require.NoError(t, cache.Invalidate(context.Background()))

	_, err = cache.FetchPage(context.Background(), 25, 0, loader)
	require.NoError(t, err)
	assert.Equal(t, 2, loads, "invalidation must force a reload")
}

func TestNilCacheFallsThrough(t *testing.T) {
	var cache *Cache
	page, err := cache.FetchPage(context.Background(), 25, 0, func(ctx context.Context) (*ListRestaurantsResponse, error) {
		return listingPage("Gilded Spoon"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	assert.NoError(t, cache.Invalidate(context.Background()))
}
