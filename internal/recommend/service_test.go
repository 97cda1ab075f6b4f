package recommend

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briangreenhill/recogate/cache"
	"github.com/briangreenhill/recogate/internal/catalog"
	"github.com/briangreenhill/recogate/internal/classify"
	"github.com/briangreenhill/recogate/internal/normalize"
	"github.com/briangreenhill/recogate/sources"
	"github.com/briangreenhill/recogate/tmdb"
)

type mockTMDB struct {
	srv   *httptest.Server
	calls int32
}

func newMockTMDB(t *testing.T, status int, body string) *mockTMDB {
	t.Helper()
	m := &mockTMDB{}
	m.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&m.calls, 1)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(m.srv.Close)
	return m
}

func (m *mockTMDB) Calls() int { return int(atomic.LoadInt32(&m.calls)) }

func (m *mockTMDB) client() *tmdb.Client {
	return tmdb.New("test-key", tmdb.WithBaseURL(m.srv.URL))
}

const twoMovies = `{"page":1,"total_results":2,"results":[
	{"id":157336,"title":"Interstellar","overview":"Space travel.","poster_path":"/i.jpg","vote_average":8.46,"release_date":"2014-11-05"},
	{"id":27205,"title":"Inception","overview":"","vote_average":8.37,"release_date":"2010-07-15"}
]}`

func titles(items []normalize.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Title)
	}
	return out
}

func ids(items []normalize.Item) []int {
	out := make([]int, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestSearchMoviesUnconfiguredFallsBack(t *testing.T) {
	svc := New(tmdb.New(""), cache.NewStore())

	res, err := svc.Search(context.Background(), "show me some sci-fi movies")
	require.NoError(t, err)
	assert.Equal(t, classify.Movies, res.Category)
	assert.Equal(t, OriginStatic, res.Source)
	assert.Equal(t, []string{"Interstellar", "Inception"}, titles(res.Items))
	assert.Equal(t, []int{1, 2}, ids(res.Items))
	for _, it := range res.Items {
		assert.Equal(t, "movie", it.Type)
	}
}

func TestSearchMoviesUpstreamThenCache(t *testing.T) {
	m := newMockTMDB(t, http.StatusOK, twoMovies)
	svc := New(m.client(), cache.NewStore())

	res, err := svc.Search(context.Background(), "Interstellar")
	require.NoError(t, err)
	assert.Equal(t, OriginUpstream, res.Source)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "157336", res.Items[0].SourceID)
	assert.Equal(t, 8.5, res.Items[0].Rating)
	assert.Equal(t, "2014", res.Items[0].Year)
	assert.Equal(t, "Inception is a highly rated movie.", res.Items[1].Description)
	assert.Empty(t, res.Items[1].Image)

	res, err = svc.Search(context.Background(), "interstellar")
	require.NoError(t, err)
	assert.Equal(t, OriginCache, res.Source)
	assert.Equal(t, 1, m.Calls())
}

func TestSearchMoviesCacheExpires(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store := cache.NewStore(cache.WithClock(func() time.Time { return now }))
	m := newMockTMDB(t, http.StatusOK, twoMovies)
	svc := New(m.client(), store, WithCacheTTL(time.Minute))

	_, _ = svc.Search(context.Background(), "inception")
	now = now.Add(2 * time.Minute)
	res, err := svc.Search(context.Background(), "inception")
	require.NoError(t, err)
	assert.Equal(t, OriginUpstream, res.Source)
	assert.Equal(t, 2, m.Calls())
}

func TestSearchMoviesFallbacks(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{}`},
		{"empty results", http.StatusOK, `{"results":[]}`},
		{"malformed body", http.StatusOK, `{"results":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMockTMDB(t, tt.status, tt.body)
			svc := New(m.client(), cache.NewStore())

			res, err := svc.Search(context.Background(), "romantic movies")
			require.NoError(t, err)
			assert.Equal(t, OriginStatic, res.Source)
			assert.Equal(t, []string{"La La Land", "The Notebook"}, titles(res.Items))
			assert.Equal(t, []int{3, 4}, ids(res.Items))
		})
	}
}

func TestSearchMoviesNoResultsAnywhere(t *testing.T) {
	m := newMockTMDB(t, http.StatusOK, `{"results":[]}`)
	svc := New(m.client(), cache.NewStore())

	res, err := svc.Search(context.Background(), "zzqx obscure movie")
	require.NoError(t, err)
	assert.Equal(t, classify.Movies, res.Category)
	assert.Equal(t, OriginStatic, res.Source)
	assert.Empty(t, res.Items)
	assert.Equal(t, 1, m.Calls())
}

func TestSearchMoviesEmptyTermsSkipsUpstream(t *testing.T) {
	m := newMockTMDB(t, http.StatusOK, twoMovies)
	svc := New(m.client(), cache.NewStore())

	res, err := svc.Search(context.Background(), "show me some movies")
	require.NoError(t, err)
	assert.Equal(t, OriginStatic, res.Source)
	assert.Len(t, res.Items, 5)
	assert.Zero(t, m.Calls())
}

func TestFetchBooks(t *testing.T) {
	svc := New(tmdb.New(""), cache.NewStore())
	ctx := context.Background()

	res, err := svc.Search(ctx, "recommend books about dune")
	require.NoError(t, err)
	assert.Equal(t, classify.Books, res.Category)
	assert.Equal(t, []string{"Dune"}, titles(res.Items))
	assert.Equal(t, []int{1002}, ids(res.Items))

	for _, q := range []string{"", "book", "books"} {
		res, err = svc.Fetch(ctx, classify.Books, q)
		require.NoError(t, err)
		assert.Len(t, res.Items, 4, "query %q", q)
	}

	res, _ = svc.Fetch(ctx, classify.Books, "austen")
	assert.Equal(t, []string{"Pride and Prejudice"}, titles(res.Items))
	assert.Equal(t, "Book by Jane Austen: Pride and Prejudice (romantic).", res.Items[0].Description)

	res, _ = svc.Fetch(ctx, classify.Books, "python programming")
	assert.Empty(t, res.Items)
}

func TestFetchProductsAndBlogs(t *testing.T) {
	svc := New(tmdb.New(""), cache.NewStore())
	ctx := context.Background()

	res, err := svc.Fetch(ctx, classify.Products, "gadgets")
	require.NoError(t, err)
	assert.Equal(t, []int{2001, 2002}, ids(res.Items))
	assert.Equal(t, 199.0, res.Items[0].Price)

	res, _ = svc.Fetch(ctx, classify.Products, "buy smartwatch")
	assert.Empty(t, res.Items, "products need the whole query to match")

	res, _ = svc.Fetch(ctx, classify.Products, "")
	assert.Len(t, res.Items, 4)

	res, _ = svc.Fetch(ctx, classify.Blogs, "tech")
	assert.Equal(t, []int{3001, 3003}, ids(res.Items))
	assert.Equal(t, "blog", res.Items[0].Type)
	assert.Equal(t, []string{"ai", "ml", "future"}, res.Items[0].Tags)
}

func TestFetchUnknownCategory(t *testing.T) {
	svc := New(tmdb.New(""), cache.NewStore())
	_, err := svc.Fetch(context.Background(), classify.Category("games"), "x")
	assert.ErrorIs(t, err, classify.ErrUnknownCategory)
}

func TestTrending(t *testing.T) {
	items := Trending()
	require.Len(t, items, 10)
	assert.Equal(t, []string{
		"Interstellar", "Inception", "Dune", "Mad Max: Fury Road", "La La Land",
		"Pride and Prejudice", "The Alchemist", "Gone Girl", "The Notebook", "Smartwatch Pro X",
	}, titles(items))
	for i := 1; i < len(items); i++ {
		assert.GreaterOrEqual(t, items[i-1].Rating, items[i].Rating)
	}
	assert.Equal(t, "product", items[9].Type)
	assert.Equal(t, 4.0, items[9].Rating)

	seen := map[int]bool{}
	for _, it := range items {
		assert.False(t, seen[it.ID], "duplicate id %d", it.ID)
		seen[it.ID] = true
	}
}

func TestTrendingMoviesCached(t *testing.T) {
	m := newMockTMDB(t, http.StatusOK, twoMovies)
	store := cache.NewStore()
	svc := New(m.client(), store)

	_, cached, err := svc.TrendingMovies(context.Background())
	require.NoError(t, err)
	assert.False(t, cached)

	pg, cached, err := svc.TrendingMovies(context.Background())
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Len(t, pg.Results, 2)

	_, ok := store.Get(cache.TrendingKey)
	assert.True(t, ok)
}

func TestTrendingMoviesUnconfigured(t *testing.T) {
	store := cache.NewStore()
	require.NoError(t, cache.Save(store, cache.TrendingKey, tmdb.Page{Page: 1}, 0))
	svc := New(tmdb.New(tmdb.PlaceholderKey), store)

	_, _, err := svc.TrendingMovies(context.Background())
	var ce *tmdb.ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, tmdb.KeyPlaceholder, ce.Status)
}

func TestForUser(t *testing.T) {
	svc := New(tmdb.New(""), cache.NewStore(), WithRand(rand.New(rand.NewSource(1))))

	items, err := svc.ForUser("movies", "aayush")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Interstellar", "Inception"}, titles(items))

	items, err = svc.ForUser("comics", "Aayush")
	require.NoError(t, err)
	assert.Equal(t, []string{"Dune"}, titles(items))

	items, err = svc.ForUser("products", "jordan")
	require.NoError(t, err)
	assert.Len(t, items, 4, "no preference match means the whole dataset")

	items, err = svc.ForUser("blogs", "riya")
	require.NoError(t, err)
	assert.Equal(t, []string{"Cybersecurity Basics"}, titles(items))

	_, err = svc.ForUser("games", "aayush")
	assert.ErrorIs(t, err, classify.ErrUnknownCategory)

	_, err = svc.ForUser("movies", "nobody")
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestPrefersMatchesKeywordInGenre(t *testing.T) {
	p := catalog.Preferences{Genres: []string{"thriller"}, Keywords: []string{"lifestyle"}}
	blog := normalize.Item{Title: "Travel on a Budget", Genre: "lifestyle", Tags: []string{"travel", "budget"}}
	assert.True(t, prefers(p, blog), "keyword found only in the blog topic")

	other := normalize.Item{Title: "Cybersecurity Basics", Genre: "tech", Tags: []string{"security"}}
	assert.False(t, prefers(p, other))
}

type stubSource struct {
	name  string
	cat   classify.Category
	raws  []normalize.Raw
	err   error
	genre string
}

func (s *stubSource) Name() string                { return s.name }
func (s *stubSource) Category() classify.Category { return s.cat }
func (s *stubSource) Search(ctx context.Context, terms, genre string) ([]normalize.Raw, error) {
	s.genre = genre
	return s.raws, s.err
}

func TestDiscoverSingleCategory(t *testing.T) {
	reg := sources.NewRegistry()
	books := &stubSource{name: "books", cat: classify.Books, raws: []normalize.Raw{{Title: "Dune", Author: "Frank Herbert"}}}
	reg.Register(books)
	svc := New(tmdb.New(""), cache.NewStore(), WithSources(reg))

	d := svc.Discover(context.Background(), "a sci-fi novel to read")
	assert.Equal(t, classify.Books, d.Category)
	assert.Equal(t, classify.SciFi, d.Genre)
	assert.Equal(t, classify.SciFi, books.genre)
	assert.NotEmpty(t, d.QueryID)
	require.Len(t, d.Items, 1)
	assert.Equal(t, 1001, d.Items[0].ID)
	assert.Equal(t, "Here are some books we found for your query 'a sci-fi novel to read'. The recommendations include 'Dune'.", d.Message)
}

func TestDiscoverFanoutToleratesFailure(t *testing.T) {
	reg := sources.NewRegistry()
	reg.Register(&stubSource{name: "movies", cat: classify.Movies, err: errors.New("boom")})
	reg.Register(&stubSource{name: "books", cat: classify.Books, raws: []normalize.Raw{{Title: "Cosmos"}, {Title: ""}}})
	svc := New(tmdb.New(""), cache.NewStore(), WithSources(reg))

	d := svc.Discover(context.Background(), "carl sagan")
	assert.Empty(t, d.Category)
	assert.Equal(t, []string{"Cosmos"}, titles(d.Items))
	assert.Contains(t, d.Message, "'Cosmos'")
}

func TestDiscoverFanoutJoinsInOrder(t *testing.T) {
	reg := sources.NewRegistry()
	movies := &stubSource{name: "movies", cat: classify.Movies, raws: []normalize.Raw{{Title: "Heat"}}}
	reg.Register(movies)
	reg.Register(&stubSource{name: "books", cat: classify.Books, raws: []normalize.Raw{{Title: "Ronin"}}})
	svc := New(tmdb.New(""), cache.NewStore(), WithSources(reg), WithFanout(1))

	d := svc.Discover(context.Background(), "scary heist")
	assert.Equal(t, []string{"Heat", "Ronin"}, titles(d.Items))
	assert.Equal(t, []int{1, 1001}, ids(d.Items))
	assert.Equal(t, classify.Horror, d.Genre)
	assert.Empty(t, movies.genre, "fan-out searches are not narrowed by genre")
}

func TestDiscoverNoResults(t *testing.T) {
	svc := New(tmdb.New(""), cache.NewStore())
	d := svc.Discover(context.Background(), "buy a product")
	assert.Equal(t, classify.Products, d.Category)
	assert.Empty(t, d.Items)
	assert.Equal(t, "No products found matching your query. Try a different search term.", d.Message)
}
