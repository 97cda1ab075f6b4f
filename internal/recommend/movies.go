package recommend

import (
	"context"
	"strings"

	"github.com/briangreenhill/recogate/cache"
	"github.com/briangreenhill/recogate/tmdb"
)

// SearchMovies searches TMDB through the response cache. cached reports
// whether the page was served without an upstream call.
func (s *Service) SearchMovies(ctx context.Context, q string) (pg tmdb.Page, cached bool, err error) {
	return s.cachedPage(cache.SearchKey(strings.TrimSpace(q)), func() (tmdb.Page, error) {
		return s.tmdb.SearchMovies(ctx, q, tmdb.SearchOptions{})
	})
}

// TrendingMovies returns this week's trending movies through the response cache.
func (s *Service) TrendingMovies(ctx context.Context) (pg tmdb.Page, cached bool, err error) {
	return s.cachedPage(cache.TrendingKey, func() (tmdb.Page, error) {
		return s.tmdb.TrendingMovies(ctx)
	})
}

// PopularMovies passes straight through to TMDB.
func (s *Service) PopularMovies(ctx context.Context, page int) (tmdb.Page, error) {
	return s.tmdb.PopularMovies(ctx, page)
}

// MovieDetails passes straight through to TMDB.
func (s *Service) MovieDetails(ctx context.Context, id int) (tmdb.MovieDetail, error) {
	return s.tmdb.MovieDetails(ctx, id)
}

// TMDB exposes the client for health and image helpers.
func (s *Service) TMDB() *tmdb.Client {
	return s.tmdb
}

// cachedPage checks the key status before the cache so that an
// unconfigured key is reported even when stale pages are cached.
func (s *Service) cachedPage(key string, fetch func() (tmdb.Page, error)) (tmdb.Page, bool, error) {
	if st := s.tmdb.KeyStatus(); st != tmdb.KeyConfigured {
		return tmdb.Page{}, false, &tmdb.ConfigError{Status: st}
	}
	if pg, err := cache.Load[tmdb.Page](s.cache, key); err == nil {
		return pg, true, nil
	}

	pg, err := fetch()
	if err != nil {
		return tmdb.Page{}, false, err
	}
	if err := cache.Save(s.cache, key, pg, s.cacheTTL); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
	return pg, false, nil
}
