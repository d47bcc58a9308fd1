package guidancecache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTTL = 10 * time.Minute

// Cache is a redis-backed cache for mentor replies. Identical stage contexts
// re-asked within the TTL are served without a model round trip. A nil Cache
// or an unreachable redis degrades to a miss; callers never see an error.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client) *Cache {
	return &Cache{
		rdb: rdb,
		ttl: defaultTTL,
	}
}

// Key derives a cache key from the guidance context fields.
func Key(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x1f")))
	return "guidance:" + hex.EncodeToString(sum[:16])
}

func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	if c == nil || c.rdb == nil {
		return "", false
	}
	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (c *Cache) Set(ctx context.Context, key, text string) {
	if c == nil || c.rdb == nil {
		return
	}
	// Best effort; a write failure just means a cold cache next time.
	c.rdb.Set(ctx, key, text, c.ttl)
}
