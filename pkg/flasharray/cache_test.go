package flasharray_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arraykit-io/flasharray-client/pkg/flasharray"
)

func TestMemoryCache(t *testing.T) {
	t.Parallel()
	t.Run("set and get", func(t *testing.T) {
		t.Parallel()

		cache := flasharray.NewMemoryCache(10)
		ctx := context.Background()

		err := cache.Set(ctx, "key", []byte("value"), time.Minute)
		require.NoError(t, err)

		entry, err := cache.Get(ctx, "key")
		require.NoError(t, err)
		assert.Equal(t, []byte("value"), entry.Value)
	})

	t.Run("miss on absent key", func(t *testing.T) {
		t.Parallel()

		cache := flasharray.NewMemoryCache(10)

		_, err := cache.Get(context.Background(), "absent")
		require.ErrorIs(t, err, flasharray.ErrCacheMiss)
	})

	t.Run("expired entries miss", func(t *testing.T) {
		t.Parallel()

		cache := flasharray.NewMemoryCache(10)
		ctx := context.Background()

		err := cache.Set(ctx, "key", []byte("value"), time.Nanosecond)
		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)

		_, err = cache.Get(ctx, "key")
		require.ErrorIs(t, err, flasharray.ErrCacheMiss)
	})

	t.Run("zero TTL never expires", func(t *testing.T) {
		t.Parallel()

		entry := &flasharray.CacheEntry{
			Value:    []byte("value"),
			StoredAt: time.Now().Add(-time.Hour),
			TTL:      0,
		}

		assert.False(t, entry.Expired())
	})

	t.Run("eviction keeps the cache within its size cap", func(t *testing.T) {
		t.Parallel()

		cache := flasharray.NewMemoryCache(2)
		ctx := context.Background()

		require.NoError(t, cache.Set(ctx, "a", []byte("1"), 0))
		require.NoError(t, cache.Set(ctx, "b", []byte("2"), 0))
		require.NoError(t, cache.Set(ctx, "c", []byte("3"), 0))

		survivors := 0

		for _, key := range []string{"a", "b", "c"} {
			if _, err := cache.Get(ctx, key); err == nil {
				survivors++
			}
		}

		assert.Equal(t, 2, survivors)
	})

	t.Run("delete and clear", func(t *testing.T) {
		t.Parallel()

		cache := flasharray.NewMemoryCache(10)
		ctx := context.Background()

		require.NoError(t, cache.Set(ctx, "a", []byte("1"), 0))
		require.NoError(t, cache.Set(ctx, "b", []byte("2"), 0))

		require.NoError(t, cache.Delete(ctx, "a"))

		_, err := cache.Get(ctx, "a")
		require.ErrorIs(t, err, flasharray.ErrCacheMiss)

		require.NoError(t, cache.Clear(ctx))

		_, err = cache.Get(ctx, "b")
		require.ErrorIs(t, err, flasharray.ErrCacheMiss)
	})
}

func TestNoOpCache(t *testing.T) {
	t.Parallel()

	cache := flasharray.NewNoOpCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", []byte("value"), time.Minute))

	_, err := cache.Get(ctx, "key")
	require.ErrorIs(t, err, flasharray.ErrCacheDisabled)

	require.NoError(t, cache.Delete(ctx, "key"))
	require.NoError(t, cache.Clear(ctx))
	require.NoError(t, cache.Close())
}

func TestNewCacheFromConfig(t *testing.T) {
	t.Parallel()
	t.Run("nil config defaults to memory", func(t *testing.T) {
		t.Parallel()

		cache, err := flasharray.NewCacheFromConfig(nil)
		require.NoError(t, err)
		assert.IsType(t, &flasharray.MemoryCache{}, cache)
	})

	t.Run("memory", func(t *testing.T) {
		t.Parallel()

		cache, err := flasharray.NewCacheFromConfig(&flasharray.CacheConfig{
			Type:   flasharray.CacheTypeMemory,
			Memory: &flasharray.MemoryCacheConfig{MaxSize: 5},
		})
		require.NoError(t, err)
		assert.IsType(t, &flasharray.MemoryCache{}, cache)
	})

	t.Run("none", func(t *testing.T) {
		t.Parallel()

		cache, err := flasharray.NewCacheFromConfig(&flasharray.CacheConfig{Type: flasharray.CacheTypeNone})
		require.NoError(t, err)
		assert.IsType(t, &flasharray.NoOpCache{}, cache)
	})

	t.Run("nats without config fails", func(t *testing.T) {
		t.Parallel()

		_, err := flasharray.NewCacheFromConfig(&flasharray.CacheConfig{Type: flasharray.CacheTypeNATS})
		require.ErrorIs(t, err, flasharray.ErrNATSConfigRequired)
	})

	t.Run("unknown type fails", func(t *testing.T) {
		t.Parallel()

		_, err := flasharray.NewCacheFromConfig(&flasharray.CacheConfig{Type: "redis"})
		require.ErrorIs(t, err, flasharray.ErrUnsupportedCache)
	})
}

func TestCacheConfig_EffectiveTTL(t *testing.T) {
	t.Parallel()

	var nilConfig *flasharray.CacheConfig

	assert.Equal(t, 5*time.Minute, nilConfig.EffectiveTTL())
	assert.Equal(t, 5*time.Minute, (&flasharray.CacheConfig{}).EffectiveTTL())
	assert.Equal(t, time.Minute, (&flasharray.CacheConfig{TTL: time.Minute}).EffectiveTTL())
}
