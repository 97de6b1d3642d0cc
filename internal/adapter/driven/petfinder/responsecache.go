package petfinder

import (
	"sync"

	"github.com/golang/groupcache/lru"
	"github.com/gregjones/httpcache"
)

const (
	defaultCacheEntries = 128
	defaultCacheBytes   = 16 << 20
)

// Compile-time interface satisfaction check.
var _ httpcache.Cache = (*responseCache)(nil)

// responseCache is an httpcache.Cache bounded by entry count and total
// stored bytes. Least recently used responses are evicted first. Responses
// larger than the byte budget are not stored.
type responseCache struct {
	mu       sync.Mutex
	entries  *lru.Cache
	size     int
	maxBytes int
}

func newResponseCache(maxEntries, maxBytes int) *responseCache {
	c := &responseCache{
		entries:  lru.New(maxEntries),
		maxBytes: maxBytes,
	}
	c.entries.OnEvicted = func(_ lru.Key, value any) {
		c.size -= len(value.([]byte))
	}
	return c
}

// Get returns the cached response stored under key.
func (c *responseCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.entries.Get(key)
	if !ok {
		return nil, false
	}
	return v.([]byte), true
}

// Set stores resp under key, evicting older entries until the byte budget
// holds again.
func (c *responseCache) Set(key string, resp []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries.Remove(key)
	if len(resp) > c.maxBytes {
		return
	}

	c.entries.Add(key, resp)
	c.size += len(resp)
	for c.size > c.maxBytes {
		c.entries.RemoveOldest()
	}
}

// Delete removes key from the cache.
func (c *responseCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries.Remove(key)
}

// stats reports the number of stored responses and their total size.
func (c *responseCache) stats() (entries, bytes int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.entries.Len(), c.size
}
