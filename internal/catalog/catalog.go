// Package catalog holds the read-only sample datasets served when no
// upstream source is available.
package catalog

// Movie is a static movie record.
type Movie struct {
	Title  string  `json:"title"`
	Genre  string  `json:"genre"`
	Rating float64 `json:"rating"`
	Year   int     `json:"year"`
}

// Book is a static book record.
type Book struct {
	Title  string  `json:"title"`
	Author string  `json:"author"`
	Genre  string  `json:"genre"`
	Rating float64 `json:"rating"`
}

// Blog is a static blog post record.
type Blog struct {
	Title string   `json:"title"`
	Topic string   `json:"topic"`
	Tags  []string `json:"tags"`
}

// Product is a static product record.
type Product struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

var movies = []Movie{
	{Title: "Interstellar", Genre: "sci-fi", Rating: 4.9, Year: 2014},
	{Title: "Inception", Genre: "sci-fi", Rating: 4.8, Year: 2010},
	{Title: "La La Land", Genre: "romantic", Rating: 4.6, Year: 2016},
	{Title: "The Notebook", Genre: "romantic", Rating: 4.2, Year: 2004},
	{Title: "Mad Max: Fury Road", Genre: "action", Rating: 4.7, Year: 2015},
}

var books = []Book{
	{Title: "The Alchemist", Author: "Paulo Coelho", Genre: "adventure", Rating: 4.5},
	{Title: "Dune", Author: "Frank Herbert", Genre: "sci-fi", Rating: 4.8},
	{Title: "Gone Girl", Author: "Gillian Flynn", Genre: "thriller", Rating: 4.4},
	{Title: "Pride and Prejudice", Author: "Jane Austen", Genre: "romantic", Rating: 4.6},
}

var blogs = []Blog{
	{Title: "Top 10 AI Trends", Topic: "tech", Tags: []string{"ai", "ml", "future"}},
	{Title: "Travel on a Budget", Topic: "lifestyle", Tags: []string{"travel", "budget"}},
	{Title: "Cybersecurity Basics", Topic: "tech", Tags: []string{"security", "privacy"}},
}

var products = []Product{
	{Name: "Smartwatch Pro X", Category: "gadgets", Price: 199},
	{Name: "Noise-Cancelling Headphones", Category: "gadgets", Price: 299},
	{Name: "Yoga Mat Premium", Category: "fitness", Price: 49},
	{Name: "Minimal Lamp", Category: "home", Price: 79},
}

// Movies returns a copy of the static movie list.
func Movies() []Movie { return append([]Movie(nil), movies...) }

// Books returns a copy of the static book list.
func Books() []Book { return append([]Book(nil), books...) }

// Blogs returns a copy of the static blog list.
func Blogs() []Blog { return append([]Blog(nil), blogs...) }

// Products returns a copy of the static product list.
func Products() []Product { return append([]Product(nil), products...) }
