package data

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKeyedPool() *KeyedPool[string, int] {
	return NewKeyedPool(func(key string) *Pool[int] {
		return NewPool[int](key, PoolConfig{}, nil)
	})
}

func TestKeyedPoolGetCreatesOnDemand(t *testing.T) {
	kp := newTestKeyedPool()

	assert.False(t, kp.Has("?page=1"))
	p := kp.Get("?page=1")
	require.NotNil(t, p)
	assert.True(t, kp.Has("?page=1"))

	// Same key returns the same pool.
	assert.Same(t, p, kp.Get("?page=1"))

	// Different key returns a different pool.
	assert.NotSame(t, p, kp.Get("?page=2"))
}

func TestKeyedPoolInvalidate(t *testing.T) {
	kp := newTestKeyedPool()
	p1 := kp.Get("?page=1")
	p2 := kp.Get("?page=2")
	p1.Set(1)
	p2.Set(2)

	kp.Invalidate()
	assert.Equal(t, StateStale, p1.Get().State)
	assert.Equal(t, StateStale, p2.Get().State)
}

func TestKeyedPoolInvalidateWhere(t *testing.T) {
	kp := newTestKeyedPool()
	draft := kp.Get("?page=1&status=draft")
	published := kp.Get("?page=1&status=published")
	draft.Set(1)
	published.Set(2)

	kp.InvalidateWhere(func(key string) bool {
		return strings.Contains(key, "status=draft")
	})

	assert.Equal(t, StateStale, draft.Get().State)
	assert.Equal(t, StateFresh, published.Get().State)
}

func TestKeyedPoolClear(t *testing.T) {
	kp := newTestKeyedPool()
	p := kp.Get("?page=1")
	p.Set(1)

	kp.Clear()
	assert.False(t, kp.Has("?page=1"))
	assert.False(t, p.Get().HasData)
}
