// Package sources defines the common interface for upstream content providers
package sources

import (
	"context"
	"sort"

	"github.com/briangreenhill/recogate/internal/classify"
	"github.com/briangreenhill/recogate/internal/normalize"
)

// Source defines the minimal interface that all content providers must implement
type Source interface {
	// Name returns the name of the source (e.g., "tmdb", "googlebooks")
	Name() string

	// Category is the content category the source serves
	Category() classify.Category

	// Search returns raw records for the search terms, optionally narrowed by genre
	Search(ctx context.Context, terms, genre string) ([]normalize.Raw, error)
}

// Registry manages available sources, one per category
type Registry struct {
	sources map[classify.Category]Source
}

// NewRegistry creates a new source registry
func NewRegistry() *Registry {
	return &Registry{
		sources: make(map[classify.Category]Source),
	}
}

// Register adds a source, replacing any source already serving its category
func (r *Registry) Register(source Source) {
	r.sources[source.Category()] = source
}

// ForCategory retrieves the source serving a category
func (r *Registry) ForCategory(c classify.Category) (Source, bool) {
	source, exists := r.sources[c]
	return source, exists
}

// List returns all registered source names, sorted
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.sources))
	for _, s := range r.sources {
		names = append(names, s.Name())
	}
	sort.Strings(names)
	return names
}
