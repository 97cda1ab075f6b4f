// Package query normalizes free-form search text and strips filler words.
package query

import "strings"

var dashes = strings.NewReplacer("-", " ", "_", " ")

// Normalize lowercases q, turns hyphens and underscores into spaces
// and collapses runs of whitespace.
func Normalize(q string) string {
	if q == "" {
		return ""
	}
	return strings.Join(strings.Fields(dashes.Replace(strings.ToLower(q))), " ")
}

// Tokens returns the whitespace-separated tokens of the normalized query.
func Tokens(q string) []string {
	return strings.Fields(Normalize(q))
}

// Filter removes stop words and single-character tokens from q.
// Genre terms survive even when they are also stop words.
// An empty result means "no filter", not an error.
func Filter(q string) string {
	var kept []string
	for _, tok := range Tokens(q) {
		if len(tok) <= 1 {
			continue
		}
		if IsStopWord(tok) && !IsGenreTerm(tok) {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

// IsStopWord reports whether tok is in the filler list.
func IsStopWord(tok string) bool {
	_, ok := stopWords[tok]
	return ok
}

// IsGenreTerm reports whether tok names a genre.
func IsGenreTerm(tok string) bool {
	_, ok := genreTerms[tok]
	return ok
}
