package tmdb

import (
	"errors"
	"fmt"
	"net/http"
)

// PlaceholderKey is the value shipped in sample env files.
const PlaceholderKey = "your_tmdb_api_key_here"

// KeyStatus describes how the API key is configured.
type KeyStatus string

const (
	KeyConfigured  KeyStatus = "configured"
	KeyMissing     KeyStatus = "missing"
	KeyPlaceholder KeyStatus = "placeholder"
)

// CheckKey classifies an API key value.
func CheckKey(apiKey string) KeyStatus {
	switch apiKey {
	case "":
		return KeyMissing
	case PlaceholderKey:
		return KeyPlaceholder
	default:
		return KeyConfigured
	}
}

var (
	ErrNotConfigured = errors.New("TMDB API key not configured")
	ErrNotFound      = errors.New("TMDB resource not found")
	ErrUnauthorized  = errors.New("TMDB API key is invalid")
)

// ConfigError is returned by every call made without a usable key.
type ConfigError struct {
	Status KeyStatus
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s (%s)", ErrNotConfigured, e.Status)
}

func (e *ConfigError) Is(target error) bool { return target == ErrNotConfigured }

// Instructions tells the operator how to fix the key.
func (e *ConfigError) Instructions() string {
	if e.Status == KeyPlaceholder {
		return "Replace '" + PlaceholderKey + "' with your actual TMDB API key (TMDB_API_KEY)"
	}
	return "Set TMDB_API_KEY; get a key from https://www.themoviedb.org/settings/api"
}

// StatusError is a non-2xx answer from TMDB.
type StatusError struct {
	Code int
	Path string
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %d %s: %s", e.Path, e.Code, http.StatusText(e.Code), e.Body)
}

func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Code == http.StatusNotFound
	case ErrUnauthorized:
		return e.Code == http.StatusUnauthorized
	}
	return false
}

// clientSide reports errors that say nothing about TMDB's health.
func clientSide(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code >= 400 && se.Code < 500 && se.Code != http.StatusTooManyRequests
}
