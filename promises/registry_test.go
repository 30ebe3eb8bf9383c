package promises

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryResolveSettlesOnce(t *testing.T) {
	reg := NewRegistry[bool](0, nil)
	defer reg.Close()

	d := NewDeferred[bool]()
	id := reg.Set(d)
	require.NotEmpty(t, id)
	assert.True(t, reg.Pending(id))

	require.NoError(t, reg.Resolve(id, true))
	assert.False(t, reg.Pending(id))

	err := reg.Resolve(id, false)
	assert.ErrorIs(t, err, ErrNotFound)

	v, err := d.Wait(context.Background())
	require.NoError(t, err)
	assert.True(t, v)
}

func TestRegistryRejectPropagatesError(t *testing.T) {
	reg := NewRegistry[bool](0, nil)
	defer reg.Close()

	boom := errors.New("dialog dismissed")
	d := NewDeferred[bool]()
	id := reg.Set(d)

	require.NoError(t, reg.Reject(id, boom))
	_, err := d.Wait(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, reg.Len())
}

func TestRegistryUnknownID(t *testing.T) {
	reg := NewRegistry[bool](0, nil)
	defer reg.Close()

	assert.ErrorIs(t, reg.Resolve("nope", true), ErrNotFound)
	assert.ErrorIs(t, reg.Reject("nope", errors.New("x")), ErrNotFound)
}

func TestRegistryIDsAreUnique(t *testing.T) {
	reg := NewRegistry[int](0, nil)
	defer reg.Close()

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := reg.Set(NewDeferred[int]())
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestRegistryConcurrentResolveWinsOnce(t *testing.T) {
	reg := NewRegistry[int](0, nil)
	defer reg.Close()

	d := NewDeferred[int]()
	id := reg.Set(d)

	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			if reg.Resolve(id, v) == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	select {
	case <-d.Done():
	default:
		t.Fatal("deferred should be settled")
	}
}

func TestRegistryCloseRejectsPending(t *testing.T) {
	reg := NewRegistry[bool](0, nil)
	d := NewDeferred[bool]()
	reg.Set(d)

	reg.Close()

	_, err := d.Wait(context.Background())
	assert.ErrorIs(t, err, ErrCleared)
}

func TestRegistryExpiresUnsettledEntries(t *testing.T) {
	reg := NewRegistry[bool](20*time.Millisecond, nil)
	defer reg.Close()

	d := NewDeferred[bool]()
	id := reg.Set(d)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := d.Wait(ctx)
	assert.ErrorIs(t, err, ErrExpired)
	assert.False(t, reg.Pending(id))
}

func TestDeferredFirstSettlementWins(t *testing.T) {
	d := NewDeferred[string]()
	assert.True(t, d.Resolve("first"))
	assert.False(t, d.Resolve("second"))
	assert.False(t, d.Reject(errors.New("late")))

	v, err := d.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "first", v)
}

func TestDeferredWaitHonoursContext(t *testing.T) {
	d := NewDeferred[bool]()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
