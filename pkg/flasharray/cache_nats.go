package flasharray

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// NATSKVCache stores responses in a NATS JetStream key-value bucket, letting
// multiple SDK processes share one cache. Entry expiry is delegated to the
// bucket TTL.
type NATSKVCache struct {
	conn *nats.Conn
	kv   nats.KeyValue
	ttl  time.Duration
}

// NewNATSKVCache connects to NATS and opens (or creates) the KV bucket.
func NewNATSKVCache(config *NATSKVConfig, ttl time.Duration) (*NATSKVCache, error) {
	var opts []nats.Option
	if config.CredsFile != "" {
		opts = append(opts, nats.UserCredentials(config.CredsFile))
	}

	conn, err := nats.Connect(config.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("getting JetStream context: %w", err)
	}

	kv, err := js.KeyValue(config.Bucket)
	if errors.Is(err, nats.ErrBucketNotFound) {
		kv, err = js.CreateKeyValue(&nats.KeyValueConfig{
			Bucket: config.Bucket,
			TTL:    ttl,
		})
	}

	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("opening KV bucket %q: %w", config.Bucket, err)
	}

	return &NATSKVCache{conn: conn, kv: kv, ttl: ttl}, nil
}

// kvKey maps arbitrary cache keys onto the restricted NATS KV key charset.
func kvKey(key string) string {
	sum := sha256.Sum256([]byte(key))

	return hex.EncodeToString(sum[:])
}

// Get implements Cache.Get.
func (c *NATSKVCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	entry, err := c.kv.Get(kvKey(key))
	if err != nil {
		if errors.Is(err, nats.ErrKeyNotFound) {
			return nil, ErrCacheMiss
		}

		return nil, fmt.Errorf("reading cache key: %w", err)
	}

	return &CacheEntry{
		Value:    entry.Value(),
		StoredAt: entry.Created(),
		TTL:      c.ttl,
	}, nil
}

// Set implements Cache.Set. The per-entry ttl argument is ignored; the
// bucket TTL governs expiry.
func (c *NATSKVCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if _, err := c.kv.Put(kvKey(key), value); err != nil {
		return fmt.Errorf("writing cache key: %w", err)
	}

	return nil
}

// Delete implements Cache.Delete.
func (c *NATSKVCache) Delete(ctx context.Context, key string) error {
	err := c.kv.Purge(kvKey(key))
	if err != nil && !errors.Is(err, nats.ErrKeyNotFound) {
		return fmt.Errorf("purging cache key: %w", err)
	}

	return nil
}

// Clear implements Cache.Clear.
func (c *NATSKVCache) Clear(ctx context.Context) error {
	keys, err := c.kv.Keys()
	if err != nil {
		if errors.Is(err, nats.ErrNoKeysFound) {
			return nil
		}

		return fmt.Errorf("listing cache keys: %w", err)
	}

	for _, key := range keys {
		if err := c.kv.Purge(key); err != nil {
			return fmt.Errorf("purging cache key: %w", err)
		}
	}

	return nil
}

// Close implements Cache.Close.
func (c *NATSKVCache) Close() error {
	c.conn.Close()

	return nil
}
