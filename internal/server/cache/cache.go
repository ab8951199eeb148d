// Package cache is a thin gateway over a shared Redis instance. The cache is
// best effort by contract: absence of a value, transport failures, and decode
// failures all collapse to a miss, and write failures are logged and
// swallowed. Callers must never treat a miss as an error.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/accountsvc/internal/logging"
)

type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger logging.Logger
}

func New(client *redis.Client, ttl time.Duration, logger logging.Logger) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
		logger: logger.With("module", "cache"),
	}
}

// NewClient builds the shared Redis client from connection settings.
func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
}

// Get loads the value stored under key into dest (via JSON) and reports
// whether anything usable was found.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn(ctx, "cache get failed", "key", key, "error", err)
		}
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Warn(ctx, "cache value not decodable", "key", key, "error", err)
		return false
	}

	return true
}

// GetString returns the raw string stored under key.
func (c *Cache) GetString(ctx context.Context, key string) (string, bool) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn(ctx, "cache get failed", "key", key, "error", err)
		}
		return "", false
	}
	return val, true
}

// Set stores value under key with the gateway TTL. Strings are stored
// verbatim; everything else is JSON-encoded. Failures are logged only.
func (c *Cache) Set(ctx context.Context, key string, value any) {
	var payload any

	switch v := value.(type) {
	case string:
		payload = v
	default:
		data, err := json.Marshal(value)
		if err != nil {
			c.logger.Warn(ctx, "cache value not encodable", "key", key, "error", err)
			return
		}
		payload = data
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn(ctx, "cache set failed", "key", key, "error", err)
	}
}

// Del removes key. Failures are logged only.
func (c *Cache) Del(ctx context.Context, key string) {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Warn(ctx, "cache del failed", "key", key, "error", err)
	}
}
