// Package newscache holds GNews payloads for a bounded time so repeated
// queries don't spend upstream quota.
package newscache

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"math"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/news-assignment/newsapi/pkg/clog"
	"github.com/news-assignment/newsapi/pkg/gnews"
)

const (
	DefaultMaxItems = 1000
	DefaultTTL      = 600 * time.Second

	ClearedMessage = "Cache cleared successfully"
)

type Stats struct {
	Keys      int     `json:"keys"`
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	HitRate   float64 `json:"hit_rate"`
	CacheSize int     `json:"cache_size"`
}

// Cache is a size bounded LRU whose entries also expire after a TTL. Hits
// count successful lookups; misses count payloads stored after a fresh
// upstream fetch, so failed fetches show up as neither.
type Cache struct {
	lru *expirable.LRU[string, *gnews.Response]

	mu     sync.Mutex
	hits   int64
	misses int64
}

func New(maxItems int, ttl time.Duration) *Cache {
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Cache{lru: expirable.NewLRU[string, *gnews.Response](maxItems, nil, ttl)}
}

// Key derives the cache key for a call: the md5 of endpoint + "_" + the
// params as compact JSON with sorted keys. Keys only live in this process.
// The API key is never part of params.
func Key(endpoint string, params gnews.Params) string {
	// encoding/json writes map keys in sorted order.
	b, _ := json.Marshal(params)
	sum := md5.Sum([]byte(endpoint + "_" + string(b)))
	return hex.EncodeToString(sum[:])
}

// Get returns a copy of the cached payload so callers may filter it freely.
func (c *Cache) Get(key string) (*gnews.Response, bool) {
	resp, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}

	c.mu.Lock()
	c.hits++
	c.mu.Unlock()

	clog.UsingCtx(clog.CacheCtx).WithField("key", key).Debug("Cache hit")
	return resp.Clone(), true
}

func (c *Cache) Store(key string, resp *gnews.Response) {
	c.lru.Add(key, resp.Clone())

	c.mu.Lock()
	c.misses++
	c.mu.Unlock()

	clog.UsingCtx(clog.CacheCtx).WithField("key", key).Debug("Cache miss - stored data")
}

// Len is the number of live, unexpired entries.
func (c *Cache) Len() int {
	return len(c.lru.Keys())
}

func (c *Cache) Stats() Stats {
	c.mu.Lock()
	hits, misses := c.hits, c.misses
	c.mu.Unlock()

	size := c.Len()
	stats := Stats{Keys: size, Hits: hits, Misses: misses, CacheSize: size}
	if total := hits + misses; total > 0 {
		stats.HitRate = math.Round(float64(hits)/float64(total)*1000) / 1000
	}

	return stats
}

// Clear drops every entry and resets the counters.
func (c *Cache) Clear() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lru.Purge()
	c.hits = 0
	c.misses = 0

	clog.UsingCtx(clog.CacheCtx).Info(ClearedMessage)
	return ClearedMessage
}
