// Package cache is an in-process read-through cache with a TTL per operation.
package cache

import (
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	keyVersion  = "v1"
	defaultSize = 1024
)

// Config sets the bucket size and the TTL of every operation.
// Operations missing from TTLs are not cached.
type Config struct {
	Size int
	TTLs map[string]time.Duration
}

// Cache holds one expirable LRU per operation.
type Cache struct {
	buckets map[string]*expirable.LRU[string, any]
}

// New creates a cache with one bucket per operation that has a positive TTL.
func New(cfg Config) *Cache {
	size := cfg.Size
	if size <= 0 {
		size = defaultSize
	}

	c := &Cache{buckets: make(map[string]*expirable.LRU[string, any], len(cfg.TTLs))}
	for op, ttl := range cfg.TTLs {
		if ttl <= 0 {
			continue
		}
		c.buckets[op] = expirable.NewLRU[string, any](size, nil, ttl)
	}
	return c
}

// Key builds "{op}:v1:{args}" with args joined by ':'.
func Key(op string, args ...any) string {
	var b strings.Builder
	b.WriteString(op)
	b.WriteByte(':')
	b.WriteString(keyVersion)
	for _, a := range args {
		b.WriteByte(':')
		fmt.Fprint(&b, a)
	}
	return b.String()
}

// Get returns the value cached for op called with args.
func (c *Cache) Get(op string, args ...any) (any, bool) {
	bucket, ok := c.buckets[op]
	if !ok {
		return nil, false
	}
	return bucket.Get(Key(op, args...))
}

// Set caches value for op called with args. Unknown operations are ignored.
func (c *Cache) Set(op string, value any, args ...any) {
	if bucket, ok := c.buckets[op]; ok {
		bucket.Add(Key(op, args...), value)
	}
}

// Purge drops every cached entry.
func (c *Cache) Purge() {
	for _, bucket := range c.buckets {
		bucket.Purge()
	}
}

// Len returns the number of live entries across all buckets.
func (c *Cache) Len() int {
	n := 0
	for _, bucket := range c.buckets {
		n += bucket.Len()
	}
	return n
}
