// Package cache provides a process-scoped response cache with
// TTL-based expiration and deterministic key generation.
package cache

import (
	"encoding/json"
	"time"
)

// Entry represents a cached entry with metadata.
// ExpiresAt is fixed when the entry is written and never extended.
type Entry struct {
	Key       string          `json:"key"`
	Body      json.RawMessage `json:"body"`
	CreatedAt time.Time       `json:"created_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// Expired reports whether the entry is past its expiry at now.
func (e *Entry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// Reader defines the interface for reading cache entries
type Reader interface {
	// Get returns the body stored under key.
	// Returns false if the key is unknown or the entry has expired.
	Get(key string) (json.RawMessage, bool)
}

// Writer defines the interface for writing cache entries
type Writer interface {
	// Set stores body under key, replacing any previous entry.
	// A ttl of zero or less selects the store's default.
	Set(key string, body json.RawMessage, ttl time.Duration)
}

// ReadWriter combines both cache operations
type ReadWriter interface {
	Reader
	Writer
}

// KeyGenerator generates cache keys from request parameters
type KeyGenerator interface {
	// KeyFor generates a stable cache key from a prefix and parameters
	KeyFor(prefix string, params map[string]string) string
}

// Stats is a point-in-time summary of the store contents.
type Stats struct {
	Total   int `json:"total_entries"`
	Active  int `json:"active_entries"`
	Expired int `json:"expired_entries"`
}

// Cache is the main interface that combines all cache operations
type Cache interface {
	ReadWriter
	KeyGenerator
	Delete(key string) bool
	Clear()
	CleanupExpired() int
	Stats() Stats
}
