package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Pages caches rendered public payloads keyed by page path.
type Pages interface {
	GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error)
	// Invalidate marks the given page paths stale.
	Invalidate(ctx context.Context, keys ...string) error
}

var invalidations = prometheus.NewCounterVec(
	prometheus.CounterOpts{Name: "page_cache_invalidations_total", Help: "Page cache invalidations by path"},
	[]string{"path"},
)

func init() { prometheus.MustRegister(invalidations) }

// Cache is a Redis page cache. A nil RDB turns it into a pass-through.
type Cache struct {
	RDB    redis.UniversalClient
	Prefix string
	sf     singleflight.Group
}

func New(addr, pass string, db int, prefix string) *Cache {
	return &Cache{
		RDB: redis.NewClient(&redis.Options{
			Addr:         addr,
			Password:     pass,
			DB:           db,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		}),
		Prefix: prefix,
	}
}

// Disabled returns a cache that always loads from the source.
func Disabled() *Cache { return &Cache{} }

// GetOrLoad serves key from Redis or fills it from load. Entries live under a
// generation-suffixed key, so a fill that raced an Invalidate lands in a
// generation nobody reads anymore.
func (c *Cache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	if c.RDB == nil {
		return load(ctx)
	}
	gen, err := c.RDB.Get(ctx, c.genKey(key)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		// redis trouble degrades to a miss without a fill
		return load(ctx)
	}
	k := c.Prefix + key + "@" + strconv.FormatInt(gen, 10)
	if b, err := c.RDB.Get(ctx, k).Bytes(); err == nil {
		return b, nil
	}
	v, err, _ := c.sf.Do(k, func() (any, error) {
		b, e := load(ctx)
		if e != nil {
			return nil, e
		}
		_ = c.RDB.Set(ctx, k, b, ttl).Err()
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Invalidate bumps the generation of each page; the old entries expire on their TTL.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		invalidations.WithLabelValues(k).Inc()
	}
	if c.RDB == nil || len(keys) == 0 {
		return nil
	}
	_, err := c.RDB.TxPipelined(ctx, func(p redis.Pipeliner) error {
		for _, k := range keys {
			p.Incr(ctx, c.genKey(k))
		}
		return nil
	})
	return err
}

func (c *Cache) genKey(key string) string { return c.Prefix + "gen:" + key }

func (c *Cache) Ping(ctx context.Context) error {
	if c.RDB == nil {
		return nil
	}
	return c.RDB.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	if c.RDB == nil {
		return nil
	}
	return c.RDB.Close()
}
