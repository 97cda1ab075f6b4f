package catalog

import "strings"

// Curated is an entry of the hand-picked list served at the API root.
type Curated struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

var curated = []Curated{
	{101, "Interstellar", "movies", "A space exploration epic about love and time."},
	{102, "Inception", "movies", "Dream within a dream heist thriller."},
	{103, "The Alchemist", "books", "Fable about following your personal legend."},
	{104, "Top 10 AI Trends", "blogs", "A look at where AI is heading."},
	{105, "Smartwatch Pro X", "products", "Track health and stay connected."},
	{106, "Dune", "books", "Epic science fiction saga on Arrakis."},
}

// CuratedList returns the curated entries in id order.
func CuratedList() []Curated { return append([]Curated(nil), curated...) }

// CuratedByID looks up a curated entry.
func CuratedByID(id int) (Curated, bool) {
	for _, c := range curated {
		if c.ID == id {
			return c, true
		}
	}
	return Curated{}, false
}

// Preferences steer per-user recommendations.
type Preferences struct {
	Genres   []string `json:"genres"`
	Keywords []string `json:"keywords"`
}

// User is a demo profile.
type User struct {
	ID          int         `json:"id"`
	Username    string      `json:"username"`
	Name        string      `json:"name"`
	Preferences Preferences `json:"preferences"`
}

var users = []User{
	{1, "aayush", "Aayush", Preferences{Genres: []string{"sci-fi", "tech"}, Keywords: []string{"ai", "space"}}},
	{2, "jordan", "Jordan", Preferences{Genres: []string{"romantic", "lifestyle"}, Keywords: []string{"travel", "love"}}},
	{3, "riya", "Riya", Preferences{Genres: []string{"thriller", "fitness"}, Keywords: []string{"yoga", "security"}}},
}

// FindUser matches username case-insensitively.
func FindUser(username string) (User, bool) {
	for _, u := range users {
		if strings.EqualFold(u.Username, username) {
			return u, true
		}
	}
	return User{}, false
}
