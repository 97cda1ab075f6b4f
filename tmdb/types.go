package tmdb

// Movie is a TMDB movie list entry.
type Movie struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	VoteAverage  float64 `json:"vote_average"`
	ReleaseDate  string  `json:"release_date"`
	GenreIDs     []int   `json:"genre_ids"`
}

// Year returns the release year or "" when unknown.
func (m Movie) Year() string {
	if len(m.ReleaseDate) >= 4 {
		return m.ReleaseDate[:4]
	}
	return ""
}

// Page is one page of a TMDB movie listing.
type Page struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalResults int     `json:"total_results"`
	TotalPages   int     `json:"total_pages"`
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MovieDetail is the full record served by /movie/{id}.
type MovieDetail struct {
	Movie
	Runtime int     `json:"runtime"`
	Genres  []Genre `json:"genres"`
	Tagline string  `json:"tagline"`
	Status  string  `json:"status"`
	Budget  int64   `json:"budget"`
	Revenue int64   `json:"revenue"`
}

// SearchOptions narrows a movie search.
type SearchOptions struct {
	GenreID int
	Page    int
}
