package data

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealmRegisterAndPool(t *testing.T) {
	r := NewRealm("session", context.Background())
	p := NewPool[int]("tasks:list:", PoolConfig{}, nil)
	r.Register("tasks:list:", p)

	assert.Equal(t, p, r.Pool("tasks:list:"))
	assert.Nil(t, r.Pool("missing"))
}

func TestRealmTeardownCancelsContextAndClearsPools(t *testing.T) {
	r := NewRealm("session", context.Background())
	p := NewPool[int]("leads:list:", PoolConfig{}, nil)
	p.Set(1)
	r.Register("leads:list:", p)

	r.Teardown()

	select {
	case <-r.Context().Done():
	default:
		t.Fatal("realm context should be canceled after teardown")
	}
	assert.False(t, p.Get().HasData)
	assert.Nil(t, r.Pool("leads:list:"))
}

func TestRealmInvalidate(t *testing.T) {
	r := NewRealm("session", context.Background())
	p1 := NewPool[int]("a", PoolConfig{}, nil)
	p2 := NewPool[int]("b", PoolConfig{}, nil)
	p1.Set(1)
	p2.Set(2)
	r.Register("a", p1)
	r.Register("b", p2)

	r.Invalidate()
	assert.Equal(t, StateStale, p1.Get().State)
	assert.Equal(t, StateStale, p2.Get().State)
}

// Invalidating a resource prefix must reach every cached page, filter
// variant, and detail record of that resource while leaving other
// resources fresh.
func TestRealmInvalidatePrefix(t *testing.T) {
	r := NewRealm("session", context.Background())

	blogPage1 := NewPool[int]("blog-posts:list:?page=1", PoolConfig{}, nil)
	blogPage2 := NewPool[int]("blog-posts:list:?page=2&status=draft", PoolConfig{}, nil)
	blogDetail := NewPool[int]("blog-posts:detail:9", PoolConfig{}, nil)
	leads := NewPool[int]("leads:list:?page=1", PoolConfig{}, nil)
	for key, p := range map[string]*Pool[int]{
		blogPage1.Key():  blogPage1,
		blogPage2.Key():  blogPage2,
		blogDetail.Key(): blogDetail,
		leads.Key():      leads,
	} {
		p.Set(1)
		r.Register(key, p)
	}

	r.InvalidatePrefix("blog-posts:")

	assert.Equal(t, StateStale, blogPage1.Get().State)
	assert.Equal(t, StateStale, blogPage2.Get().State)
	assert.Equal(t, StateStale, blogDetail.Get().State)
	assert.Equal(t, StateFresh, leads.Get().State)
}

func TestRealmPoolCreatesOnce(t *testing.T) {
	r := NewRealm("session", context.Background())
	created := 0
	create := func() *Pool[int] {
		created++
		return NewPool[int]("k", PoolConfig{}, nil)
	}

	p1 := RealmPool(r, "k", create)
	p2 := RealmPool(r, "k", create)
	require.Same(t, p1, p2)
	assert.Equal(t, 1, created)
}

func TestRealmContextDerivedFromParent(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	r := NewRealm("child", parent)

	cancel()
	select {
	case <-r.Context().Done():
	default:
		t.Fatal("realm context should follow parent cancellation")
	}
}
