package cache

import (
	"sync"
	"time"
)

// EvictionReason tells an OnEvict callback why an entry left the cache
type EvictionReason int

const (
	EvictedExpired EvictionReason = iota
	EvictedCapacity
	EvictedCleared
)

func (r EvictionReason) String() string {
	switch r {
	case EvictedExpired:
		return "expired"
	case EvictedCapacity:
		return "capacity"
	case EvictedCleared:
		return "cleared"
	}
	return "unknown"
}

type cacheEntry[V any] struct {
	value      V
	expiration time.Time
}

// MemoryCache is a size-bounded in-memory cache with per-entry TTL.
// A zero TTL means entries never expire.
type MemoryCache[K comparable, V any] struct {
	data     map[K]cacheEntry[V]
	mutex    sync.Mutex
	ttl      time.Duration
	maxSize  int
	onEvict  func(K, V, EvictionReason)
	now      func() time.Time
	stopChan chan struct{}
	stopOnce sync.Once
}

// Option configures a MemoryCache
type Option[K comparable, V any] func(*MemoryCache[K, V])

// WithOnEvict registers a callback invoked for entries removed by expiry,
// capacity pressure or Clear. It is not called for Delete or Take.
func WithOnEvict[K comparable, V any](fn func(K, V, EvictionReason)) Option[K, V] {
	return func(c *MemoryCache[K, V]) {
		c.onEvict = fn
	}
}

// WithClock overrides time.Now, used by tests
func WithClock[K comparable, V any](now func() time.Time) Option[K, V] {
	return func(c *MemoryCache[K, V]) {
		c.now = now
	}
}

// NewMemoryCache creates a cache. When ttl > 0 a janitor goroutine sweeps
// expired entries every ttl/2 until Close is called.
func NewMemoryCache[K comparable, V any](ttl time.Duration, maxSize int, opts ...Option[K, V]) *MemoryCache[K, V] {
	cache := &MemoryCache[K, V]{
		data:     make(map[K]cacheEntry[V]),
		ttl:      ttl,
		maxSize:  maxSize,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(cache)
	}

	if ttl > 0 {
		go cache.cleanupExpiredEntries(ttl / 2)
	}

	return cache
}

// Set stores value under key, evicting the soonest-expiring entry when full
func (c *MemoryCache[K, V]) Set(key K, value V) {
	var evicted []evictedEntry[K, V]

	c.mutex.Lock()
	if _, exists := c.data[key]; !exists && c.maxSize > 0 && len(c.data) >= c.maxSize {
		if e, ok := c.evictOldestEntry(); ok {
			evicted = append(evicted, e)
		}
	}

	c.data[key] = cacheEntry[V]{
		value:      value,
		expiration: c.expiration(),
	}
	c.mutex.Unlock()

	c.notify(evicted)
}

// Get returns the value for key when present and not expired
func (c *MemoryCache[K, V]) Get(key K) (V, bool) {
	var evicted []evictedEntry[K, V]

	c.mutex.Lock()
	entry, exists := c.data[key]
	if exists && c.isExpired(entry) {
		delete(c.data, key)
		evicted = append(evicted, evictedEntry[K, V]{key, entry.value, EvictedExpired})
		exists = false
	}
	c.mutex.Unlock()

	c.notify(evicted)

	if !exists {
		var zero V
		return zero, false
	}
	return entry.value, true
}

// Take atomically removes and returns the value for key. Only one caller can
// take a given entry.
func (c *MemoryCache[K, V]) Take(key K) (V, bool) {
	var evicted []evictedEntry[K, V]

	c.mutex.Lock()
	entry, exists := c.data[key]
	if exists {
		delete(c.data, key)
		if c.isExpired(entry) {
			evicted = append(evicted, evictedEntry[K, V]{key, entry.value, EvictedExpired})
			exists = false
		}
	}
	c.mutex.Unlock()

	c.notify(evicted)

	if !exists {
		var zero V
		return zero, false
	}
	return entry.value, true
}

// Delete removes key without invoking OnEvict
func (c *MemoryCache[K, V]) Delete(key K) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
}

// Clear removes all entries, invoking OnEvict for each
func (c *MemoryCache[K, V]) Clear() {
	c.mutex.Lock()
	evicted := make([]evictedEntry[K, V], 0, len(c.data))
	for key, entry := range c.data {
		evicted = append(evicted, evictedEntry[K, V]{key, entry.value, EvictedCleared})
	}
	c.data = make(map[K]cacheEntry[V])
	c.mutex.Unlock()

	c.notify(evicted)
}

// Size returns the number of stored entries, expired ones included until swept
func (c *MemoryCache[K, V]) Size() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return len(c.data)
}

// Keys returns the stored keys in no particular order
func (c *MemoryCache[K, V]) Keys() []K {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	keys := make([]K, 0, len(c.data))
	for key := range c.data {
		keys = append(keys, key)
	}

	return keys
}

// HasKey reports whether key is present and not expired
func (c *MemoryCache[K, V]) HasKey(key K) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, exists := c.data[key]
	return exists && !c.isExpired(entry)
}

// RemoveExpired sweeps expired entries immediately
func (c *MemoryCache[K, V]) RemoveExpired() {
	c.mutex.Lock()
	evicted := make([]evictedEntry[K, V], 0)
	for key, entry := range c.data {
		if c.isExpired(entry) {
			evicted = append(evicted, evictedEntry[K, V]{key, entry.value, EvictedExpired})
			delete(c.data, key)
		}
	}
	c.mutex.Unlock()

	c.notify(evicted)
}

// Stats reports entry counts for diagnostics
func (c *MemoryCache[K, V]) Stats() map[string]int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	expired := 0
	for _, entry := range c.data {
		if c.isExpired(entry) {
			expired++
		}
	}

	return map[string]int{
		"total_entries":   len(c.data),
		"expired_entries": expired,
		"max_size":        c.maxSize,
		"ttl_seconds":     int(c.ttl.Seconds()),
	}
}

// Close stops the janitor and clears the cache
func (c *MemoryCache[K, V]) Close() {
	c.stopOnce.Do(func() {
		close(c.stopChan)
	})
	c.Clear()
}

type evictedEntry[K comparable, V any] struct {
	key    K
	value  V
	reason EvictionReason
}

func (c *MemoryCache[K, V]) notify(evicted []evictedEntry[K, V]) {
	if c.onEvict == nil {
		return
	}
	for _, e := range evicted {
		c.onEvict(e.key, e.value, e.reason)
	}
}

func (c *MemoryCache[K, V]) expiration() time.Time {
	if c.ttl <= 0 {
		return time.Time{}
	}
	return c.now().Add(c.ttl)
}

func (c *MemoryCache[K, V]) isExpired(entry cacheEntry[V]) bool {
	return !entry.expiration.IsZero() && c.now().After(entry.expiration)
}

// evictOldestEntry must be called with the mutex held
func (c *MemoryCache[K, V]) evictOldestEntry() (evictedEntry[K, V], bool) {
	var (
		oldestKey  K
		oldestTime time.Time
		found      bool
	)

	for key, entry := range c.data {
		if !found || entry.expiration.Before(oldestTime) {
			oldestKey = key
			oldestTime = entry.expiration
			found = true
		}
	}

	if !found {
		return evictedEntry[K, V]{}, false
	}

	value := c.data[oldestKey].value
	delete(c.data, oldestKey)
	return evictedEntry[K, V]{oldestKey, value, EvictedCapacity}, true
}

func (c *MemoryCache[K, V]) cleanupExpiredEntries(interval time.Duration) {
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.RemoveExpired()
		case <-c.stopChan:
			return
		}
	}
}
