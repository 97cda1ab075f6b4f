// Package recommend turns classified queries into normalized result
// lists, consulting the response cache, upstream sources and static data.
package recommend

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/briangreenhill/recogate/cache"
	"github.com/briangreenhill/recogate/internal/classify"
	"github.com/briangreenhill/recogate/internal/metrics"
	"github.com/briangreenhill/recogate/internal/normalize"
	"github.com/briangreenhill/recogate/internal/prompt"
	"github.com/briangreenhill/recogate/internal/query"
	"github.com/briangreenhill/recogate/sources"
	"github.com/briangreenhill/recogate/tmdb"
)

// Origin says where a result list came from.
type Origin string

const (
	OriginCache    Origin = "cache"
	OriginUpstream Origin = "upstream"
	OriginStatic   Origin = "static-fallback"
)

// MaxResults caps upstream movie results in a search response.
const MaxResults = 10

// Result is the answer to a search.
type Result struct {
	Items    []normalize.Item  `json:"results"`
	Category classify.Category `json:"category"`
	Source   Origin            `json:"source"`
}

// upstreamFunc fetches live results for cleaned terms.
type upstreamFunc func(ctx context.Context, terms string) ([]normalize.Item, Origin, error)

// staticMatcher filters a static dataset by the cleaned query.
type staticMatcher func(cleaned string) []normalize.Item

// strategy describes how one category is served.
type strategy struct {
	upstream upstreamFunc // nil means static only
	static   staticMatcher
}

type Service struct {
	tmdb       *tmdb.Client
	cache      cache.ReadWriter
	cacheTTL   time.Duration
	registry   *sources.Registry
	classifier classify.Classifier
	summary    *prompt.Generator
	log        zerolog.Logger

	fanout int64

	randMu sync.Mutex
	rand   *rand.Rand

	strategies map[classify.Category]strategy
}

type Option func(*Service)

func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithCacheTTL sets the ttl for upstream responses; zero uses the store default.
func WithCacheTTL(d time.Duration) Option {
	return func(s *Service) { s.cacheTTL = d }
}

// WithSources sets the registry used by Discover.
func WithSources(r *sources.Registry) Option {
	return func(s *Service) { s.registry = r }
}

func WithSummary(g *prompt.Generator) Option {
	return func(s *Service) { s.summary = g }
}

// WithRand makes ForUser's shuffle reproducible.
func WithRand(r *rand.Rand) Option {
	return func(s *Service) { s.rand = r }
}

// WithFanout bounds concurrent upstream calls in Discover.
func WithFanout(n int64) Option {
	return func(s *Service) {
		if n > 0 {
			s.fanout = n
		}
	}
}

// New wires the service. tmdbClient may be unconfigured; movie searches
// then fall back to static data.
func New(tmdbClient *tmdb.Client, store cache.ReadWriter, opts ...Option) *Service {
	s := &Service{
		tmdb:       tmdbClient,
		cache:      store,
		registry:   sources.NewRegistry(),
		classifier: classify.FirstMatch{},
		summary:    prompt.Default(),
		log:        zerolog.Nop(),
		fanout:     4,
		rand:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, o := range opts {
		o(s)
	}
	s.strategies = map[classify.Category]strategy{
		classify.Movies:   {upstream: s.searchMoviesUpstream, static: staticMovies},
		classify.Books:    {static: staticBooks},
		classify.Products: {static: staticProducts},
		classify.Blogs:    {static: staticBlogs},
	}
	return s
}

// Search classifies a raw query and fetches results for it.
func (s *Service) Search(ctx context.Context, raw string) (Result, error) {
	c, _ := s.classifier.Classify(query.Normalize(raw))
	cleaned := query.Filter(raw)
	s.log.Debug().Str("query", raw).Str("category", c.String()).Str("terms", cleaned).Msg("classified query")
	return s.Fetch(ctx, c, cleaned)
}

// Fetch serves a category. Upstream failures are logged and answered
// from static data; an empty list is a valid result.
func (s *Service) Fetch(ctx context.Context, c classify.Category, cleaned string) (Result, error) {
	st, ok := s.strategies[c]
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", classify.ErrUnknownCategory, c)
	}

	if st.upstream != nil && cleaned != "" {
		items, origin, err := st.upstream(ctx, cleaned)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Str("category", c.String()).Str("terms", cleaned).Msg("upstream failed, using static data")
		case len(items) > 0:
			return Result{Items: items, Category: c, Source: origin}, nil
		default:
			s.log.Info().Str("category", c.String()).Str("terms", cleaned).Msg("upstream returned nothing, using static data")
		}
	}

	if st.upstream != nil {
		metrics.FallbacksTotal.WithLabelValues(c.String()).Inc()
	}
	return Result{Items: st.static(cleaned), Category: c, Source: OriginStatic}, nil
}

func (s *Service) searchMoviesUpstream(ctx context.Context, terms string) ([]normalize.Item, Origin, error) {
	pg, cached, err := s.SearchMovies(ctx, terms)
	if err != nil {
		return nil, "", err
	}
	results := pg.Results
	if len(results) > MaxResults {
		results = results[:MaxResults]
	}
	raws := make([]normalize.Raw, 0, len(results))
	for _, m := range results {
		raws = append(raws, sources.MovieRaw(s.tmdb, m))
	}
	origin := OriginUpstream
	if cached {
		origin = OriginCache
	}
	return normalize.All(raws, classify.Movies), origin, nil
}
