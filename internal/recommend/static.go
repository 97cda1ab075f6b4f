package recommend

import (
	"sort"
	"strings"

	"github.com/briangreenhill/recogate/internal/catalog"
	"github.com/briangreenhill/recogate/internal/classify"
	"github.com/briangreenhill/recogate/internal/normalize"
	"github.com/briangreenhill/recogate/internal/query"
)

const (
	trendingLimit = 10
	blogRating    = 3.5
	productRating = 4.0
)

// matches reports whether q is empty or a substring of any normalized field.
func matches(q string, fields ...string) bool {
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(query.Normalize(f), q) {
			return true
		}
	}
	return false
}

// Static item ids come from the dataset position, so a filtered list
// keeps the same id an item has in the full list.

func staticMovies(cleaned string) []normalize.Item {
	q := query.Normalize(cleaned)
	var out []normalize.Item
	for i, m := range catalog.Movies() {
		if matches(q, m.Title, m.Genre) {
			if it, ok := normalize.Normalize(normalize.FromMovie(m), classify.Movies, i); ok {
				out = append(out, it)
			}
		}
	}
	return out
}

// staticBooks matches on any single query token, unlike the other
// categories which need the whole query to appear.
func staticBooks(cleaned string) []normalize.Item {
	q := query.Normalize(cleaned)
	all := q == "" || q == "book" || q == "books"
	tokens := strings.Fields(q)

	var out []normalize.Item
	for i, b := range catalog.Books() {
		if !all && !anyToken(tokens, b.Title, b.Genre, b.Author) {
			continue
		}
		if it, ok := normalize.Normalize(normalize.FromBook(b), classify.Books, i); ok {
			out = append(out, it)
		}
	}
	return out
}

func anyToken(tokens []string, fields ...string) bool {
	for _, tok := range tokens {
		if matches(tok, fields...) {
			return true
		}
	}
	return false
}

func staticProducts(cleaned string) []normalize.Item {
	q := query.Normalize(cleaned)
	var out []normalize.Item
	for i, p := range catalog.Products() {
		if matches(q, p.Name, p.Category) {
			if it, ok := normalize.Normalize(normalize.FromProduct(p), classify.Products, i); ok {
				out = append(out, it)
			}
		}
	}
	return out
}

func staticBlogs(cleaned string) []normalize.Item {
	q := query.Normalize(cleaned)
	var out []normalize.Item
	for i, b := range catalog.Blogs() {
		if matches(q, b.Title, b.Topic) {
			if it, ok := normalize.Normalize(normalize.FromBlog(b), classify.Blogs, i); ok {
				out = append(out, it)
			}
		}
	}
	return out
}

// Static returns every static item of a category, unfiltered.
func Static(c classify.Category) []normalize.Item {
	switch c {
	case classify.Movies:
		return staticMovies("")
	case classify.Books:
		return staticBooks("")
	case classify.Products:
		return staticProducts("")
	case classify.Blogs:
		return staticBlogs("")
	}
	return nil
}

// Trending merges the static datasets (movies, books, blogs, products),
// gives blogs and products a baseline rating, and returns the ten best
// rated. Equal ratings keep merge order.
func Trending() []normalize.Item {
	var all []normalize.Item
	all = append(all, Static(classify.Movies)...)
	all = append(all, Static(classify.Books)...)
	for _, it := range Static(classify.Blogs) {
		it.Rating = blogRating
		all = append(all, it)
	}
	for _, it := range Static(classify.Products) {
		it.Rating = productRating
		all = append(all, it)
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].Rating > all[j].Rating })
	if len(all) > trendingLimit {
		all = all[:trendingLimit]
	}
	return all
}
