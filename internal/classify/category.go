// Package classify maps a normalized query to a content category
// and, where possible, a genre.
package classify

import (
	"errors"
	"fmt"
	"strings"
)

// Category is one of the content kinds the gateway serves.
type Category string

const (
	Movies   Category = "movies"
	Books    Category = "books"
	Products Category = "products"
	Blogs    Category = "blogs"
)

// Categories lists every category in priority order.
var Categories = []Category{Movies, Books, Products, Blogs}

var ErrUnknownCategory = errors.New("unsupported category")

// ParseCategory accepts a category name case-insensitively.
// "comics" is served from the books catalog.
func ParseCategory(s string) (Category, error) {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case Movies, Books, Products, Blogs:
		return c, nil
	case "comics":
		return Books, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
}

// TypeTag is the singular item type carried by results of this category.
func (c Category) TypeTag() string {
	switch c {
	case Movies:
		return "movie"
	case Books:
		return "book"
	case Products:
		return "product"
	case Blogs:
		return "blog"
	}
	return ""
}

func (c Category) String() string { return string(c) }
