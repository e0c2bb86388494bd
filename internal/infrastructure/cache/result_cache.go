package cache

import (
	"container/list"
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"fraudlens/internal/domain/models"
)

// ResultCache memoizes complete analysis results keyed by content hash.
// Bounded FIFO: when full, the oldest-inserted entry is evicted. Hits do
// not refresh entry age.
type ResultCache struct {
	mu      sync.Mutex
	maxSize int
	order   *list.List // front = oldest
	items   map[string]*list.Element
}

type cacheEntry struct {
	key    string
	result models.AnalysisResult
}

// NewResultCache creates a bounded result cache. Sizes below 1 fall back
// to the default of 100 entries.
func NewResultCache(maxSize int) *ResultCache {
	if maxSize < 1 {
		maxSize = 100
	}
	return &ResultCache{
		maxSize: maxSize,
		order:   list.New(),
		items:   make(map[string]*list.Element),
	}
}

// Key derives the cache key from the message identity fields
func Key(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached result for a key, if present
func (c *ResultCache) Get(key string) (models.AnalysisResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return models.AnalysisResult{}, false
	}
	return elem.Value.(*cacheEntry).result, true
}

// Put stores a result, evicting the oldest entry when at capacity
func (c *ResultCache) Put(key string, result models.AnalysisResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		elem.Value.(*cacheEntry).result = result
		return
	}

	if c.order.Len() >= c.maxSize {
		oldest := c.order.Front()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(*cacheEntry).key)
		}
	}

	c.items[key] = c.order.PushBack(&cacheEntry{key: key, result: result})
}

// Len returns the number of cached entries
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
