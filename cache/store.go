package cache

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultTTL is applied when Set is called without a positive ttl.
const DefaultTTL = 10 * time.Minute

// Store implements the Cache interface in process memory.
// A single mutex guards the map so an expired read and its delete
// cannot interleave with a concurrent Set on the same key.
type Store struct {
	mu      sync.Mutex
	entries map[string]*Entry
	ttl     time.Duration
	now     func() time.Time

	hits   prometheus.Counter
	misses prometheus.Counter
}

type StoreOption func(*Store)

// WithClock replaces the wall clock, mostly for tests.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

func WithDefaultTTL(ttl time.Duration) StoreOption {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithCounters records hits and misses on the given counters.
func WithCounters(hits, misses prometheus.Counter) StoreOption {
	return func(s *Store) { s.hits, s.misses = hits, misses }
}

// NewStore creates an empty store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		entries: make(map[string]*Entry),
		ttl:     DefaultTTL,
		now:     time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// TTL returns the default time-to-live of the store.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Get implements Reader interface
func (s *Store) Get(key string) (json.RawMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		s.observe(false)
		return nil, false
	}
	if entry.Expired(s.now()) {
		delete(s.entries, key)
		s.observe(false)
		return nil, false
	}
	s.observe(true)
	return entry.Body, true
}

// Set implements Writer interface
func (s *Store) Set(key string, body json.RawMessage, ttl time.Duration) {
	if ttl <= 0 {
		ttl = s.ttl
	}
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = &Entry{
		Key:       key,
		Body:      body,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// Delete removes key and reports whether it was present.
func (s *Store) Delete(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[key]
	delete(s.entries, key)
	return ok
}

// Clear drops every entry.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*Entry)
}

// CleanupExpired removes every expired entry and returns how many were removed.
func (s *Store) CleanupExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, entry := range s.entries {
		if entry.Expired(now) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

// Stats counts entries without evicting anything.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	st := Stats{Total: len(s.entries)}
	for _, entry := range s.entries {
		if !entry.Expired(now) {
			st.Active++
		}
	}
	st.Expired = st.Total - st.Active
	return st
}

func (s *Store) observe(hit bool) {
	switch {
	case hit && s.hits != nil:
		s.hits.Inc()
	case !hit && s.misses != nil:
		s.misses.Inc()
	}
}
