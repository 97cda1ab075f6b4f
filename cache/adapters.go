package cache

import (
	"errors"
	"time"

	json "github.com/goccy/go-json"
)

var (
	// ErrCacheNotFound is returned when a cache entry is not found or expired
	ErrCacheNotFound = errors.New("cache entry not found or expired")
)

// Load decodes the body stored under key into a T.
// A missing, expired or undecodable entry yields ErrCacheNotFound.
func Load[T any](r Reader, key string) (T, error) {
	var out T
	body, ok := r.Get(key)
	if !ok {
		return out, ErrCacheNotFound
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, ErrCacheNotFound
	}
	return out, nil
}

// Save encodes v and stores it under key.
func Save[T any](w Writer, key string, v T, ttl time.Duration) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	w.Set(key, body, ttl)
	return nil
}
