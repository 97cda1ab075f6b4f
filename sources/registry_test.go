package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/briangreenhill/recogate/fakestore"
	"github.com/briangreenhill/recogate/googlebooks"
	"github.com/briangreenhill/recogate/internal/classify"
	"github.com/briangreenhill/recogate/internal/normalize"
	"github.com/briangreenhill/recogate/tmdb"
)

// mockSource is a test implementation of the Source interface
type mockSource struct {
	name string
	cat  classify.Category
}

func (m *mockSource) Name() string                { return m.name }
func (m *mockSource) Category() classify.Category { return m.cat }

func (m *mockSource) Search(ctx context.Context, terms, genre string) ([]normalize.Raw, error) {
	return []normalize.Raw{{Title: terms + " from " + m.name}}, nil
}

func TestNewRegistry(t *testing.T) {
	registry := NewRegistry()
	if registry == nil {
		t.Fatal("NewRegistry should not return nil")
	}

	names := registry.List()
	if len(names) != 0 {
		t.Errorf("New registry should be empty, got %d sources: %v", len(names), names)
	}
}

func TestRegisterAndForCategory(t *testing.T) {
	registry := NewRegistry()

	registry.Register(&mockSource{name: "movies-a", cat: classify.Movies})
	registry.Register(&mockSource{name: "books-a", cat: classify.Books})

	names := registry.List()
	if len(names) != 2 || names[0] != "books-a" || names[1] != "movies-a" {
		t.Errorf("List() = %v, want [books-a movies-a]", names)
	}

	src, ok := registry.ForCategory(classify.Movies)
	if !ok {
		t.Fatal("Expected a movies source")
	}
	raws, err := src.Search(context.Background(), "dune", "")
	if err != nil || len(raws) != 1 || raws[0].Title != "dune from movies-a" {
		t.Errorf("Search() = %v, %v", raws, err)
	}

	if _, ok := registry.ForCategory(classify.Blogs); ok {
		t.Error("Expected no blogs source")
	}
}

func TestRegisterReplacesCategory(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&mockSource{name: "first", cat: classify.Books})
	registry.Register(&mockSource{name: "second", cat: classify.Books})

	src, _ := registry.ForCategory(classify.Books)
	if src.Name() != "second" {
		t.Errorf("Expected second source to win, got %s", src.Name())
	}
	if len(registry.List()) != 1 {
		t.Errorf("Expected 1 source, got %v", registry.List())
	}
}

func TestTMDBSourceSkipsPosterless(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("with_genres"); got != "27" {
			t.Errorf("with_genres = %q, want 27", got)
		}
		_, _ = w.Write([]byte(`{"results":[
			{"id":1,"title":"No Poster"},
			{"id":2,"title":"The Ring","poster_path":"/r.jpg","vote_average":7.14,"release_date":"2002-10-18"}
		]}`))
	}))
	defer srv.Close()

	src := NewTMDB(tmdb.New("k", tmdb.WithBaseURL(srv.URL)))
	raws, err := src.Search(context.Background(), "ring", classify.Horror)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(raws) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(raws))
	}
	r := raws[0]
	if r.Title != "The Ring" || r.SourceID != "2" || r.Rating != 7.1 || r.Year != "2002" {
		t.Errorf("unexpected raw %+v", r)
	}
	if r.Link != "https://www.themoviedb.org/movie/2" {
		t.Errorf("Link = %s", r.Link)
	}
}

func TestGoogleBooksSourceAppendsGenre(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "space fantasy" {
			t.Errorf("q = %q, want %q", got, "space fantasy")
		}
		_, _ = w.Write([]byte(`{"items":[{"id":"b1","volumeInfo":{"title":"Dune","authors":["Frank Herbert","Brian Herbert"]}}]}`))
	}))
	defer srv.Close()

	src := NewGoogleBooks(googlebooks.New(googlebooks.WithBaseURL(srv.URL)))
	raws, err := src.Search(context.Background(), "space", classify.Fantasy)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(raws) != 1 || raws[0].Author != "Frank Herbert, Brian Herbert" || raws[0].Secondary != classify.Fantasy {
		t.Errorf("unexpected raws %+v", raws)
	}
}

func TestFakeStoreSourceCapsResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[{"id":1,"title":"a"},{"id":2,"title":"b"},{"id":3,"title":"c"},{"id":4,"title":"d"},{"id":5,"title":"e"},{"id":6,"title":"f"}]`))
	}))
	defer srv.Close()

	src := NewFakeStore(fakestore.New(fakestore.WithBaseURL(srv.URL)))
	raws, err := src.Search(context.Background(), "anything", "")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(raws) != maxPerSource {
		t.Errorf("Expected %d results, got %d", maxPerSource, len(raws))
	}
}

func TestBlogTemplates(t *testing.T) {
	raws, _ := BlogTemplates{}.Search(context.Background(), "remote work", "")
	if len(raws) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(raws))
	}
	if raws[0].Title != "The Complete Guide to Remote Work" {
		t.Errorf("Title = %q", raws[0].Title)
	}
	if raws[0].Link != "https://medium.com/search?q=remote+work" {
		t.Errorf("Link = %q", raws[0].Link)
	}

	raws, _ = BlogTemplates{}.Search(context.Background(), "", "")
	if len(raws) != 0 {
		t.Errorf("Expected no results for empty terms, got %d", len(raws))
	}
}
