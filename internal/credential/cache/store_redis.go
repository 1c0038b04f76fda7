package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hubrwa/internal/credential/models"
	"hubrwa/pkg/domain"
	"hubrwa/pkg/platform/sentinel"

	"github.com/redis/go-redis/v9"
)

const (
	// Redis key prefix for cached credential records
	credentialKeyPrefix = "hubrwa:credential:"

	defaultTTL = 30 * time.Second
)

// setNewer writes the record hash unless the key already holds the same or a
// later revision. KEYS[1]=key, ARGV = revision, record json, ttl ms.
var setNewer = redis.NewScript(`
local cur = redis.call('HGET', KEYS[1], 'revision')
if cur and tonumber(cur) >= tonumber(ARGV[1]) then
	return 0
end
redis.call('HSET', KEYS[1], 'revision', ARGV[1], 'record', ARGV[2])
redis.call('PEXPIRE', KEYS[1], ARGV[3])
return 1
`)

// RedisCache caches committed credential records keyed by holder. It stores
// the record only; validity is always re-derived from the caller's clock.
// Each key is a hash of the record and its revision, so a slow reader cannot
// put back a record older than one a writer already stored.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// Option configures a RedisCache instance.
type Option func(*RedisCache)

// WithTTL bounds how long a record may be served after it changed.
func WithTTL(ttl time.Duration) Option {
	return func(c *RedisCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// NewRedisCache constructs a Redis-backed credential cache.
func NewRedisCache(client *redis.Client, opts ...Option) *RedisCache {
	c := &RedisCache{client: client, ttl: defaultTTL}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func key(holder domain.Address) string {
	return credentialKeyPrefix + holder.String()
}

// Get returns sentinel.ErrNotFound when the holder is not cached.
func (c *RedisCache) Get(ctx context.Context, holder domain.Address) (*models.Record, error) {
	raw, err := c.client.HGet(ctx, key(holder), "record").Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read cached credential: %w", err)
	}
	var record models.Record
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("decode cached credential: %w", err)
	}
	return &record, nil
}

// Set stores record with the configured TTL unless a record with the same or
// a later revision is already cached.
func (c *RedisCache) Set(ctx context.Context, record *models.Record) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode credential: %w", err)
	}
	err = setNewer.Run(ctx, c.client, []string{key(record.Holder)},
		record.Revision, raw, c.ttl.Milliseconds()).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("write cached credential: %w", err)
	}
	return nil
}

// Invalidate drops the holder's cached record.
func (c *RedisCache) Invalidate(ctx context.Context, holder domain.Address) error {
	return c.client.Del(ctx, key(holder)).Err()
}
