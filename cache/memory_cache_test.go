package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewMemoryCache[string, int](0, 10)
	defer c.Close()

	c.Set("a", 1)
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestMemoryCacheExpiryInvokesOnEvict(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	var reasons []EvictionReason
	c := NewMemoryCache[string, string](time.Hour, 10,
		WithClock[string, string](clock.Now),
		WithOnEvict(func(_ string, _ string, reason EvictionReason) {
			reasons = append(reasons, reason)
		}),
	)
	defer c.Close()

	c.Set("k", "v")
	clock.Advance(2 * time.Hour)

	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, []EvictionReason{EvictedExpired}, reasons)
	assert.Equal(t, 0, c.Size())
}

func TestMemoryCacheRemoveExpired(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	evicted := map[string]bool{}
	c := NewMemoryCache[string, int](time.Hour, 10,
		WithClock[string, int](clock.Now),
		WithOnEvict(func(k string, _ int, _ EvictionReason) { evicted[k] = true }),
	)
	defer c.Close()

	c.Set("old", 1)
	clock.Advance(90 * time.Minute)
	c.Set("new", 2)
	clock.Advance(time.Minute)

	c.RemoveExpired()

	assert.True(t, evicted["old"])
	assert.False(t, evicted["new"])
	assert.True(t, c.HasKey("new"))
}

func TestMemoryCacheCapacityEvictsSoonestExpiring(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	c := NewMemoryCache[string, int](time.Hour, 2, WithClock[string, int](clock.Now))
	defer c.Close()

	c.Set("first", 1)
	clock.Advance(time.Second)
	c.Set("second", 2)
	clock.Advance(time.Second)
	c.Set("third", 3)

	assert.False(t, c.HasKey("first"))
	assert.True(t, c.HasKey("second"))
	assert.True(t, c.HasKey("third"))
}

func TestMemoryCacheTakeIsSingleUse(t *testing.T) {
	c := NewMemoryCache[string, int](0, 0)
	defer c.Close()
	c.Set("once", 42)

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := c.Take("once"); ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
}

func TestMemoryCacheClearReportsEntries(t *testing.T) {
	var cleared []string
	c := NewMemoryCache[string, int](0, 0, WithOnEvict(func(k string, _ int, reason EvictionReason) {
		if reason == EvictedCleared {
			cleared = append(cleared, k)
		}
	}))

	c.Set("a", 1)
	c.Close()

	assert.Equal(t, []string{"a"}, cleared)
	assert.Equal(t, "cleared", EvictedCleared.String())
}
