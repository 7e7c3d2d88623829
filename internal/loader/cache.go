package loader

import (
	"context"
	"sync"
	"time"

	"github.com/go-gota/gota/dataframe"

	"github.com/ArmandColonnaW/irve-insights/internal/observability"
)

// Source abstracts the underlying read so the cache can wrap any loader.
type Source interface {
	Load(ctx context.Context, source string) (dataframe.DataFrame, error)
}

// CachedSource memoizes whole load results keyed by the loader's source
// argument. The cache lives as long as the process: it is created once at
// startup and invalidated only by restart, so repeated view interactions
// reuse the same raw frame instead of re-reading the file.
type CachedSource struct {
	inner   Source
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedSource creates a cache decorator around a loader. metrics may be
// nil, for callers that do not record cache traffic.
func NewCachedSource(inner Source, maxEntries int, metrics *observability.Metrics) *CachedSource {
	return &CachedSource{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

// Load returns the cached frame for source, reading through on first use.
// Load errors are never cached, so a failed read can be retried by the next
// session restart or call.
func (c *CachedSource) Load(ctx context.Context, source string) (dataframe.DataFrame, error) {
	if cached, ok := c.cache.get(source); ok {
		c.count("hit")
		return cached.frame, nil
	}
	c.count("miss")

	df, err := c.inner.Load(ctx, source)
	if err != nil {
		return df, err
	}
	c.cache.put(source, cachedFrame{frame: df, loadedAt: time.Now()})
	return df, nil
}

// LoadedAt returns when the frame for source was read, if it is cached.
func (c *CachedSource) LoadedAt(source string) (time.Time, bool) {
	cached, ok := c.cache.get(source)
	return cached.loadedAt, ok
}

func (c *CachedSource) count(result string) {
	if c.metrics != nil {
		c.metrics.LoaderCache.WithLabelValues(result).Inc()
	}
}

type cachedFrame struct {
	frame    dataframe.DataFrame
	loadedAt time.Time
}

// lruCache is a small thread-safe LRU keyed by source argument. One dashboard
// process rarely sees more than a couple of sources, but the bound keeps a
// misconfigured caller from pinning frames forever.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value cachedFrame
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (cachedFrame, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return cachedFrame{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value cachedFrame) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
