// Package querycache caches upstream query results per resource and drops
// them when a mutation touches the resource.
package querycache

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/flo-mobility/admin-console/internal/observability"
)

// fetchTimeout bounds a shared upstream call once it is detached from the
// caller that started it.
const fetchTimeout = 30 * time.Second

// Cache fronts a Store with request coalescing.
type Cache struct {
	store   Store
	group   singleflight.Group
	logger  *zap.Logger
	metrics *observability.Metrics
	enabled bool

	// mu guards generations and orders result writes against invalidation.
	mu          sync.Mutex
	generations map[string]uint64
}

// New builds a cache. A disabled cache calls through on every Fetch.
func New(store Store, enabled bool, logger *zap.Logger, metrics *observability.Metrics) *Cache {
	return &Cache{
		store:       store,
		logger:      logger,
		metrics:     metrics,
		enabled:     enabled && store != nil,
		generations: make(map[string]uint64),
	}
}

// Key joins a resource and its query parts, e.g. "customers:1:10:all:".
// Parts are query-escaped so a ':' inside a part cannot shift the fields.
func Key(resource string, parts ...any) string {
	var b strings.Builder
	b.WriteString(resource)
	for _, p := range parts {
		b.WriteByte(':')
		b.WriteString(url.QueryEscape(fmt.Sprint(p)))
	}
	return b.String()
}

// Fetch returns the cached value for key, or runs fn once for all concurrent
// callers of the same key and caches a successful result for ttl.
func Fetch[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, fn func(context.Context) (T, error)) (T, error) {
	if c == nil || !c.enabled || ttl <= 0 {
		return fn(ctx)
	}
	resource := resourceOf(key)

	if data, ok, err := c.store.Get(ctx, key); err != nil {
		c.logger.Warn("query cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		var cached T
		if err := json.Unmarshal(data, &cached); err == nil {
			c.metrics.RecordCache(resource, true)
			return cached, nil
		}
		c.logger.Warn("query cache entry unreadable", zap.String("key", key))
	}
	c.metrics.RecordCache(resource, false)

	gen := c.generation(resource)
	flightKey := key + "#" + strconv.FormatUint(gen, 10)
	ch := c.group.DoChan(flightKey, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()

		fresh, err := fn(fctx)
		if err != nil {
			return fresh, err
		}
		data, err := json.Marshal(fresh)
		if err != nil {
			c.logger.Warn("query cache encode failed", zap.String("key", key), zap.Error(err))
			return fresh, nil
		}
		c.storeIfCurrent(fctx, resource, gen, key, data, ttl)
		return fresh, nil
	})

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			var zero T
			return zero, res.Err
		}
		v, _ := res.Val.(T)
		return v, nil
	}
}

func (c *Cache) generation(resource string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[resource]
}

// storeIfCurrent writes a fetched result unless the resource was invalidated
// after the fetch started.
func (c *Cache) storeIfCurrent(ctx context.Context, resource string, gen uint64, key string, data []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[resource] != gen {
		c.logger.Debug("query cache result discarded after invalidation", zap.String("key", key))
		return
	}
	if err := c.store.Set(ctx, key, data, ttl); err != nil {
		c.logger.Warn("query cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *Cache) bump(resource string) {
	c.mu.Lock()
	c.generations[resource]++
	c.mu.Unlock()
}

// Invalidate drops every cached query of the resources.
func (c *Cache) Invalidate(ctx context.Context, resources ...string) {
	if c == nil || !c.enabled {
		return
	}
	for _, resource := range resources {
		c.bump(resource)
		if err := c.store.DeletePrefix(ctx, resource+":"); err != nil {
			c.logger.Warn("query cache invalidation failed", zap.String("resource", resource), zap.Error(err))
		}
	}
}

// InvalidateKey drops one exact key.
func (c *Cache) InvalidateKey(ctx context.Context, key string) {
	if c == nil || !c.enabled {
		return
	}
	c.bump(resourceOf(key))
	if err := c.store.Delete(ctx, key); err != nil {
		c.logger.Warn("query cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}

func resourceOf(key string) string {
	if i := strings.IndexByte(key, ':'); i >= 0 {
		return key[:i]
	}
	return key
}
