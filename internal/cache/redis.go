package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/musmankhan/cnic-ocr/internal/common"
)

const keyPrefix = "cnic:extract:"

// ResultCache stores finished extraction results keyed by the SHA-256 of the
// uploaded image, so re-uploads of the same file skip the vision provider.
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewResultCache connects to Redis and verifies the connection.
func NewResultCache(ctx context.Context, addr string, ttl time.Duration, logger *slog.Logger) (*ResultCache, error) {
	if logger == nil {
		logger = slog.Default()
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, common.WrapError(err, "ping redis")
	}
	logger.Info("cache.connected", "addr", addr, "ttl", ttl.String())
	return &ResultCache{client: client, ttl: ttl, logger: logger}, nil
}

// HashImage returns the cache key material for an image payload.
func HashImage(image []byte) string {
	sum := sha256.Sum256(image)
	return hex.EncodeToString(sum[:])
}

// Get returns the cached value for hash, or (false, nil) on a miss.
func (c *ResultCache) Get(ctx context.Context, hash string, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, keyPrefix+hash).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, common.WrapError(err, "cache get")
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		// A corrupt entry is treated as a miss and overwritten by the caller.
		c.logger.Warn("cache.decode_error", "hash", hash, "error", err)
		return false, nil
	}
	return true, nil
}

// Set stores value under hash with the configured TTL.
func (c *ResultCache) Set(ctx context.Context, hash string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return common.WrapError(err, "cache encode")
	}
	if err := c.client.Set(ctx, keyPrefix+hash, raw, c.ttl).Err(); err != nil {
		return common.WrapError(err, "cache set")
	}
	return nil
}

// Close releases the Redis connection.
func (c *ResultCache) Close() error {
	return c.client.Close()
}
