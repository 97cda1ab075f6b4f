package query

func set(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// genreTerms are in normalized form, so "sci-fi" appears as its parts.
var genreTerms = set(
	"sci", "fi", "scifi", "science", "fiction", "horror", "thriller", "comedy",
	"drama", "action", "adventure", "romance", "mystery", "fantasy", "animation",
	"documentary", "biography", "crime", "western", "musical", "war", "history",
	"family", "sport", "music", "reality", "talk", "news", "game",
)

var stopWords = set(
	// request phrasing
	"show", "me", "some", "recommend", "movies", "movie", "films", "film", "want",
	"like", "suggest", "please", "can", "you", "find", "get", "give", "tell",
	"about", "let", "lets", "let's",

	// articles, pronouns, auxiliaries
	"a", "an", "the", "of", "with", "that", "are", "is", "was", "were", "be",
	"been", "being", "have", "has", "had", "do", "does", "did", "will", "would",
	"could", "should", "may", "might", "must", "shall", "i", "we", "they", "he",
	"she", "it", "this", "these", "those", "my", "your", "his", "her", "its",
	"our", "their", "what", "which", "who", "when", "where", "why", "how",

	// praise
	"good", "best", "top", "great", "awesome", "amazing", "wonderful",
	"fantastic", "excellent", "perfect", "nice", "cool", "interesting", "fun",
	"exciting", "thrilling", "action", "packed", "full",

	// quantifiers
	"all", "any", "both", "each", "few", "many", "most", "other", "such", "no",
	"nor", "not", "only", "own", "same", "so", "than", "too", "very", "just",
	"also", "even", "ever", "never", "every", "neither", "either", "none",
	"much", "several", "enough", "plenty", "lot", "lots", "bit", "piece",
	"part", "whole", "half", "quarter", "third", "more", "less", "least",
	"everything", "nothing", "anything", "something", "everyone", "noone",
	"anyone", "someone", "everybody", "nobody", "anybody", "somebody",

	// time and place
	"here", "there", "now", "then", "once", "always", "sometimes", "often",
	"usually", "rarely", "seldom", "again", "still", "yet", "already", "soon",
	"later", "before", "after", "since", "until", "while", "during", "first",
	"last", "next", "previous", "early", "late", "everywhere", "nowhere",
	"anywhere", "somewhere",

	// prepositions
	"through", "across", "against", "among", "between", "into", "onto", "upon",
	"under", "over", "above", "below", "behind", "beside", "near", "by", "from",
	"to", "at", "in", "on", "for", "as", "inside", "outside", "beyond", "far",
	"close",

	// adjectives
	"open", "empty", "hot", "cold", "wet", "dry", "big", "small", "large",
	"little", "long", "short", "high", "low", "wide", "narrow", "thick", "thin",
	"heavy", "light", "hard", "soft", "fast", "slow", "easy", "difficult",
	"simple", "complex", "new", "old", "young", "fresh", "clean", "dirty",
	"right", "wrong", "true", "false", "real", "fake", "bad", "better", "worse",
	"worst",
)
