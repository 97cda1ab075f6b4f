package classify

import (
	"strings"

	"github.com/briangreenhill/recogate/internal/query"
)

// Genre names understood by DetectGenre.
const (
	Action      = "action"
	Romance     = "romance"
	SciFi       = "sci-fi"
	Horror      = "horror"
	Comedy      = "comedy"
	Drama       = "drama"
	Mystery     = "mystery"
	Fantasy     = "fantasy"
	Documentary = "documentary"
	Biography   = "biography"
)

// Keywords are stored normalized; "sci-fi" is matched as "sci fi".
var genreKeywords = []keywordSet[string]{
	{Action, []string{"action", "adventure", "thriller"}},
	{Romance, []string{"romance", "romantic", "love story"}},
	{SciFi, []string{"sci fi", "science fiction", "scifi", "futuristic"}},
	{Horror, []string{"horror", "scary", "thriller", "supernatural"}},
	{Comedy, []string{"comedy", "funny", "humorous", "comedic"}},
	{Drama, []string{"drama", "dramatic", "serious"}},
	{Mystery, []string{"mystery", "detective", "crime", "suspense"}},
	{Fantasy, []string{"fantasy", "magical", "mythical"}},
	{Documentary, []string{"documentary", "real", "true story"}},
	{Biography, []string{"biography", "bio", "life story", "memoir"}},
}

var tmdbGenreIDs = map[string]int{
	Action:      28,
	Romance:     10749,
	SciFi:       878,
	Horror:      27,
	Comedy:      35,
	Drama:       18,
	Mystery:     9648,
	Fantasy:     14,
	Documentary: 99,
}

// DetectGenre returns the genre with the most keyword hits.
// Ties go to the genre declared first; no hits yields ok=false.
func DetectGenre(normalized string) (string, bool) {
	q := query.Normalize(normalized)
	best, bestN := "", 0
	for _, s := range genreKeywords {
		if n := hits(q, s.keywords); n > bestN {
			best, bestN = s.key, n
		}
	}
	return best, bestN > 0
}

// TMDBGenreID maps a genre to TMDB's numeric genre id.
func TMDBGenreID(genre string) (int, bool) {
	id, ok := tmdbGenreIDs[genre]
	return id, ok
}

var extractExclude = func() map[string]struct{} {
	m := make(map[string]struct{})
	add := func(sets []string) {
		for _, kw := range sets {
			if !strings.Contains(kw, " ") || kw == "sci fi" {
				for _, part := range strings.Fields(kw) {
					m[part] = struct{}{}
				}
			}
		}
	}
	for _, s := range maxCountKeywords {
		add(s.keywords)
	}
	for _, s := range genreKeywords {
		add(s.keywords)
	}
	return m
}()

// ExtractSearchTerms drops category and genre keywords from the query.
// When nothing is left the normalized query is returned unchanged.
func ExtractSearchTerms(q string) string {
	normalized := query.Normalize(q)
	var kept []string
	for _, tok := range strings.Fields(normalized) {
		if _, drop := extractExclude[tok]; !drop {
			kept = append(kept, tok)
		}
	}
	if len(kept) == 0 {
		return normalized
	}
	return strings.Join(kept, " ")
}
