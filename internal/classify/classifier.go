package classify

import (
	"strings"

	"github.com/briangreenhill/recogate/internal/query"
)

// Classifier decides which category a normalized query targets.
// ok is false when the strategy declines to pick one.
type Classifier interface {
	Classify(normalized string) (c Category, ok bool)
}

// FirstMatch checks the books, products and blogs keywords in that order
// and returns the first category with any keyword among the query tokens.
// Movies has no keywords of its own: book-ish genres fall to books and
// everything else to movies.
type FirstMatch struct{}

var firstMatchKeywords = map[Category][]string{
	Books:    {"book", "books", "read", "reading", "novel", "author", "literature"},
	Products: {"product", "products", "buy", "shop", "gadget", "item", "purchase"},
	Blogs:    {"blog", "blogs", "article", "post", "tech", "lifestyle", "news"},
}

var firstMatchOrder = []Category{Books, Products, Blogs}

var bookGenres = []string{"thriller", "mystery", "romance", "fantasy", "biography"}

func (FirstMatch) Classify(normalized string) (Category, bool) {
	tokens := tokenSet(normalized)
	for _, c := range firstMatchOrder {
		if containsAny(tokens, firstMatchKeywords[c]) {
			return c, true
		}
	}
	if containsAny(tokens, bookGenres) {
		return Books, true
	}
	return Movies, true
}

// MaxCount counts keyword hits per category and picks the category with
// the strictly highest count. A tie, including no hits at all, yields no
// category so the caller can query several sources.
type MaxCount struct{}

var maxCountKeywords = []keywordSet[Category]{
	{Movies, []string{"movie", "film", "cinema", "watch"}},
	{Books, []string{"book", "novel", "read", "literature", "author"}},
	{Products, []string{"product", "buy", "shop", "purchase", "item"}},
	{Blogs, []string{"blog", "article", "post", "read"}},
}

func (MaxCount) Classify(normalized string) (Category, bool) {
	return strictMax(normalized, maxCountKeywords)
}

type keywordSet[K comparable] struct {
	key      K
	keywords []string
}

// hits counts keywords that occur as substrings of q, so "movies" counts "movie".
func hits(q string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(q, kw) {
			n++
		}
	}
	return n
}

func strictMax[K comparable](q string, sets []keywordSet[K]) (K, bool) {
	var best K
	bestN, tied := 0, false
	for _, s := range sets {
		n := hits(q, s.keywords)
		switch {
		case n > bestN:
			best, bestN, tied = s.key, n, false
		case n == bestN && n > 0:
			tied = true
		}
	}
	if bestN == 0 || tied {
		var zero K
		return zero, false
	}
	return best, true
}

func tokenSet(normalized string) map[string]struct{} {
	toks := strings.Fields(query.Normalize(normalized))
	m := make(map[string]struct{}, len(toks))
	for _, t := range toks {
		m[t] = struct{}{}
	}
	return m
}

func containsAny(tokens map[string]struct{}, words []string) bool {
	for _, w := range words {
		if _, ok := tokens[w]; ok {
			return true
		}
	}
	return false
}
