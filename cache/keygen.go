package cache

import (
	"sort"
	"strings"

	json "github.com/goccy/go-json"
)

const (
	// TrendingKey holds the weekly trending movie list.
	TrendingKey = "trending:weekly"

	searchPrefix = "search"
)

// SearchKey returns the key for a movie search on query.
func SearchKey(query string) string {
	return searchPrefix + ":" + strings.ToLower(query)
}

// KeyFor implements KeyGenerator interface
func (s *Store) KeyFor(prefix string, params map[string]string) string {
	return KeyFor(prefix, params)
}

// KeyFor builds prefix:<params> where params are serialized as a JSON
// array of [name, value] pairs sorted by name. Equal maps always
// produce equal keys regardless of insertion order.
func KeyFor(prefix string, params map[string]string) string {
	if len(params) == 0 {
		return prefix
	}

	names := make([]string, 0, len(params))
	for k := range params {
		names = append(names, k)
	}
	sort.Strings(names)

	pairs := make([][2]string, 0, len(names))
	for _, k := range names {
		pairs = append(pairs, [2]string{k, params[k]})
	}

	b, err := json.Marshal(pairs)
	if err != nil {
		// [][2]string always marshals; keep a readable key regardless
		parts := make([]string, 0, len(names))
		for _, p := range pairs {
			parts = append(parts, p[0]+"="+p[1])
		}
		return prefix + ":" + strings.Join(parts, "&")
	}
	return prefix + ":" + string(b)
}
