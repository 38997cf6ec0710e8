package cache

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Latch is the single-flight guard behind feed loads and like toggles: a key
// can be acquired once per TTL window, duplicate acquisitions report busy.
type Latch interface {
	TryAcquire(ctx context.Context, key string, ttl time.Duration) bool
	Release(ctx context.Context, key string)
}

// Cache wraps redis for latches and hot counters, degrading to an in-process
// latch when no redis address is configured.
type Cache struct {
	rdb   *redis.Client
	local *MemoryLatch
}

func New(redisURL string) *Cache {
	c := &Cache{local: NewMemoryLatch()}

	if redisURL == "" {
		log.Println("[Cache]: REDIS_URL not set, using in-process latches")
		return c
	}

	c.rdb = redis.NewClient(&redis.Options{
		Addr: redisURL,
		DB:   0,
	})
	return c
}

func (c *Cache) TryAcquire(ctx context.Context, key string, ttl time.Duration) bool {
	if c.rdb == nil {
		return c.local.TryAcquire(ctx, key, ttl)
	}

	ok, err := c.rdb.SetNX(ctx, "latch:"+key, 1, ttl).Result()
	if err != nil {
		log.Println("[Cache]: latch SetNX failed, falling back to local", err)
		return c.local.TryAcquire(ctx, key, ttl)
	}
	return ok
}

func (c *Cache) Release(ctx context.Context, key string) {
	if c.rdb == nil {
		c.local.Release(ctx, key)
		return
	}
	if err := c.rdb.Del(ctx, "latch:"+key).Err(); err != nil {
		log.Println("[Cache]: latch release failed", err)
	}
}

// IncrCounter bumps a hot counter (likes, comments) mirrored in redis for
// cheap reads. Misses are harmless, postgres remains the source of truth.
func (c *Cache) IncrCounter(ctx context.Context, key string, delta int64) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.IncrBy(ctx, "counter:"+key, delta).Err(); err != nil {
		log.Println("[Cache]: counter incr failed", err)
	}
}

func (c *Cache) Close() {
	if c.rdb != nil {
		_ = c.rdb.Close()
	}
}

// MemoryLatch is the in-process fallback. Entries expire by timestamp, there
// is no background sweeper.
type MemoryLatch struct {
	mu      sync.Mutex
	expires map[string]time.Time
}

func NewMemoryLatch() *MemoryLatch {
	return &MemoryLatch{expires: make(map[string]time.Time)}
}

func (m *MemoryLatch) TryAcquire(_ context.Context, key string, ttl time.Duration) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	if until, ok := m.expires[key]; ok && now.Before(until) {
		return false
	}
	m.expires[key] = now.Add(ttl)
	return true
}

func (m *MemoryLatch) Release(_ context.Context, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.expires, key)
}
