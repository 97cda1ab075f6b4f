package cache

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced clock
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func TestStoreRoundTrip(t *testing.T) {
	s := NewStore()
	s.Set("k", json.RawMessage(`{"a":1}`), 0)

	got, ok := s.Get("k")
	require.True(t, ok)
	assert.JSONEq(t, `{"a":1}`, string(got))

	_, ok = s.Get("missing")
	assert.False(t, ok)
}

func TestStoreExpiry(t *testing.T) {
	clock := newFakeClock()
	s := NewStore(WithClock(clock.Now))
	s.Set("k", json.RawMessage(`"v"`), time.Minute)

	clock.Advance(time.Minute)
	_, ok := s.Get("k")
	assert.True(t, ok, "entry is still valid at exactly expiresAt")

	clock.Advance(time.Second)
	_, ok = s.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Stats().Total, "expired entry should be removed on read")
}

func TestStoreDefaultTTL(t *testing.T) {
	clock := newFakeClock()
	s := NewStore(WithClock(clock.Now))
	s.Set("k", json.RawMessage(`1`), -5*time.Second)

	clock.Advance(DefaultTTL - time.Second)
	_, ok := s.Get("k")
	assert.True(t, ok)

	clock.Advance(2 * time.Second)
	_, ok = s.Get("k")
	assert.False(t, ok)
}

func TestStoreSetReplaces(t *testing.T) {
	clock := newFakeClock()
	s := NewStore(WithClock(clock.Now))
	s.Set("k", json.RawMessage(`1`), time.Minute)
	clock.Advance(50 * time.Second)
	s.Set("k", json.RawMessage(`2`), time.Minute)
	clock.Advance(30 * time.Second)

	got, ok := s.Get("k")
	require.True(t, ok)
	assert.Equal(t, "2", string(got))
}

func TestStoreDelete(t *testing.T) {
	s := NewStore()
	s.Set("k", json.RawMessage(`1`), 0)

	assert.True(t, s.Delete("k"))
	assert.False(t, s.Delete("k"))
	_, ok := s.Get("k")
	assert.False(t, ok)
}

func TestStoreClear(t *testing.T) {
	s := NewStore()
	s.Set("a", json.RawMessage(`1`), 0)
	s.Set("b", json.RawMessage(`2`), 0)
	s.Clear()

	assert.Equal(t, Stats{}, s.Stats())
}

func TestStoreCleanupAndStats(t *testing.T) {
	clock := newFakeClock()
	s := NewStore(WithClock(clock.Now))
	s.Set("short1", json.RawMessage(`1`), time.Second)
	s.Set("short2", json.RawMessage(`1`), time.Second)
	s.Set("long", json.RawMessage(`1`), time.Hour)

	clock.Advance(2 * time.Second)

	st := s.Stats()
	assert.Equal(t, Stats{Total: 3, Active: 1, Expired: 2}, st)
	assert.Equal(t, 3, s.Stats().Total, "Stats must not evict")

	assert.Equal(t, 2, s.CleanupExpired())
	assert.Equal(t, Stats{Total: 1, Active: 1}, s.Stats())
	assert.Equal(t, 0, s.CleanupExpired())
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := KeyFor("k", map[string]string{"i": string(rune('a' + i%5))})
			s.Set(key, json.RawMessage(`1`), 0)
			s.Get(key)
			s.Stats()
			s.CleanupExpired()
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 5, s.Stats().Total)
}

func TestLoadSave(t *testing.T) {
	type payload struct {
		Results []string `json:"results"`
		Page    int      `json:"page"`
	}
	s := NewStore()

	_, err := Load[payload](s, "p")
	assert.ErrorIs(t, err, ErrCacheNotFound)

	require.NoError(t, Save(s, "p", payload{Results: []string{"x"}, Page: 2}, 0))
	got, err := Load[payload](s, "p")
	require.NoError(t, err)
	assert.Equal(t, payload{Results: []string{"x"}, Page: 2}, got)
}
