package routes

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"
	"github.com/sony/gobreaker/v2"

	"github.com/briangreenhill/recogate/tmdb"
)

const noDescription = "No description available"

type movieView struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Image       *string `json:"image"`
	Rating      float64 `json:"rating"`
	ReleaseDate string  `json:"release_date"`
	GenreIDs    []int   `json:"genre_ids"`
}

type movieDetailView struct {
	movieView
	Backdrop *string      `json:"backdrop"`
	Runtime  int          `json:"runtime"`
	Genres   []tmdb.Genre `json:"genres"`
	Tagline  string       `json:"tagline"`
	Status   string       `json:"status"`
	Budget   int64        `json:"budget"`
	Revenue  int64        `json:"revenue"`
}

type pageView struct {
	Results      []movieView `json:"results"`
	TotalResults int         `json:"total_results"`
	Page         int         `json:"page"`
	TotalPages   int         `json:"total_pages,omitempty"`
	Query        string      `json:"query,omitempty"`
	Cached       *bool       `json:"cached,omitempty"`
}

type searchParams struct {
	Q string `validate:"required,max=500"`
}

type popularParams struct {
	Page int `validate:"min=1,max=500"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (s *Server) viewMovie(m tmdb.Movie) movieView {
	desc := m.Overview
	if desc == "" {
		desc = noDescription
	}
	ids := m.GenreIDs
	if ids == nil {
		ids = []int{}
	}
	return movieView{
		ID:          m.ID,
		Title:       m.Title,
		Description: desc,
		Image:       optional(s.Svc.TMDB().ImageURL(m.PosterPath)),
		Rating:      math.Round(m.VoteAverage*10) / 10,
		ReleaseDate: m.ReleaseDate,
		GenreIDs:    ids,
	}
}

func (s *Server) viewPage(pg tmdb.Page) []movieView {
	out := make([]movieView, 0, len(pg.Results))
	for _, m := range pg.Results {
		out = append(out, s.viewMovie(m))
	}
	return out
}

func (s *Server) handleTMDBTrending(w http.ResponseWriter, r *http.Request) {
	pg, cached, err := s.Svc.TrendingMovies(r.Context())
	if err != nil {
		s.tmdbError(w, r, err, "trending movies")
		return
	}
	results := s.viewPage(pg)
	writeJSON(w, r, http.StatusOK, pageView{
		Results:      results,
		TotalResults: len(results),
		Page:         max(pg.Page, 1),
		Cached:       &cached,
	})
}

func (s *Server) handleTMDBSearch(w http.ResponseWriter, r *http.Request) {
	p := searchParams{Q: r.URL.Query().Get("q")}
	if err := validate.Struct(p); err != nil {
		invalid(w, r, err)
		return
	}
	pg, cached, err := s.Svc.SearchMovies(r.Context(), p.Q)
	if err != nil {
		s.tmdbError(w, r, err, "searching movies")
		return
	}
	writeJSON(w, r, http.StatusOK, pageView{
		Results:      s.viewPage(pg),
		TotalResults: pg.TotalResults,
		Page:         max(pg.Page, 1),
		Query:        p.Q,
		Cached:       &cached,
	})
}

func (s *Server) handleTMDBPopular(w http.ResponseWriter, r *http.Request) {
	p := popularParams{Page: 1}
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			invalid(w, r, fmt.Errorf("page must be an integer"))
			return
		}
		p.Page = n
	}
	if err := validate.Struct(p); err != nil {
		invalid(w, r, err)
		return
	}
	pg, err := s.Svc.PopularMovies(r.Context(), p.Page)
	if err != nil {
		s.tmdbError(w, r, err, "popular movies")
		return
	}
	writeJSON(w, r, http.StatusOK, pageView{
		Results:      s.viewPage(pg),
		TotalResults: pg.TotalResults,
		Page:         max(pg.Page, 1),
		TotalPages:   max(pg.TotalPages, 1),
	})
}

func (s *Server) handleTMDBMovie(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		invalid(w, r, fmt.Errorf("movie id must be an integer"))
		return
	}
	d, err := s.Svc.MovieDetails(r.Context(), id)
	if errors.Is(err, tmdb.ErrNotFound) {
		hlog.FromRequest(r).Warn().Int("movie_id", id).Msg("movie not found")
		writeError(w, r, http.StatusNotFound, APIError{
			Error:   "Movie not found",
			Message: fmt.Sprintf("Movie with ID %d not found", id),
		})
		return
	}
	if err != nil {
		s.tmdbError(w, r, err, "movie details")
		return
	}

	v := movieDetailView{
		movieView: s.viewMovie(d.Movie),
		Runtime:   d.Runtime,
		Genres:    d.Genres,
		Tagline:   d.Tagline,
		Status:    d.Status,
		Budget:    d.Budget,
		Revenue:   d.Revenue,
	}
	if d.BackdropPath != "" {
		v.Backdrop = optional(tmdb.BackdropBaseURL + d.BackdropPath)
	}
	if v.Genres == nil {
		v.Genres = []tmdb.Genre{}
	}
	writeJSON(w, r, http.StatusOK, v)
}

type tmdbHealth struct {
	Status           string `json:"status"`
	APIKeyConfigured bool   `json:"api_key_configured"`
	APIKeyValid      bool   `json:"api_key_valid"`
	Message          string `json:"message"`
	Instructions     string `json:"instructions,omitempty"`
	Details          string `json:"details,omitempty"`
	Breaker          string `json:"breaker"`
}

// handleTMDBHealth always answers 200; the body carries the verdict.
func (s *Server) handleTMDBHealth(w http.ResponseWriter, r *http.Request) {
	c := s.Svc.TMDB()
	h := tmdbHealth{Status: "error", Breaker: c.BreakerState()}

	switch c.KeyStatus() {
	case tmdb.KeyMissing:
		h.Message = "TMDB_API_KEY not found in environment variables"
		h.Instructions = (&tmdb.ConfigError{Status: tmdb.KeyMissing}).Instructions()
		writeJSON(w, r, http.StatusOK, h)
		return
	case tmdb.KeyPlaceholder:
		h.APIKeyConfigured = true
		h.Message = "TMDB_API_KEY is set to placeholder value"
		h.Instructions = (&tmdb.ConfigError{Status: tmdb.KeyPlaceholder}).Instructions()
		writeJSON(w, r, http.StatusOK, h)
		return
	}

	h.APIKeyConfigured = true
	err := c.Ping(r.Context())
	var se *tmdb.StatusError
	switch {
	case err == nil:
		h.Status = "ok"
		h.APIKeyValid = true
		h.Message = "TMDB API is configured correctly and responding"
	case errors.Is(err, tmdb.ErrUnauthorized):
		h.Message = "TMDB API key is invalid (401 Unauthorized)"
		h.Instructions = "Check your API key at https://www.themoviedb.org/settings/api"
	case errors.As(err, &se):
		h.Message = fmt.Sprintf("TMDB API error: %d", se.Code)
		h.Details = err.Error()
	default:
		h.Message = "Error testing TMDB API: " + err.Error()
	}
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("tmdb health check failed")
	}
	// breaker state may have moved during the ping
	h.Breaker = c.BreakerState()
	writeJSON(w, r, http.StatusOK, h)
}

func (s *Server) handleCacheStats(w http.ResponseWriter, r *http.Request) {
	minutes := int(s.CacheTTL.Minutes())
	writeJSON(w, r, http.StatusOK, map[string]any{
		"cache_stats": s.Cache.Stats(),
		"ttl_minutes": minutes,
		"message":     fmt.Sprintf("Cache automatically expires after %d minutes", minutes),
	})
}

func (s *Server) handleCacheClear(w http.ResponseWriter, r *http.Request) {
	s.Cache.Clear()
	hlog.FromRequest(r).Info().Msg("response cache cleared")
	writeJSON(w, r, http.StatusOK, map[string]string{
		"message": "Cache cleared successfully",
		"status":  "ok",
	})
}

// tmdbError maps a TMDB failure onto the response the frontend expects.
func (s *Server) tmdbError(w http.ResponseWriter, r *http.Request, err error, what string) {
	log := hlog.FromRequest(r)

	var ce *tmdb.ConfigError
	var se *tmdb.StatusError
	switch {
	case errors.As(err, &ce):
		log.Error().Str("reason", string(ce.Status)).Msg("tmdb api key not configured")
		writeError(w, r, http.StatusBadRequest, APIError{
			Error:        tmdb.ErrNotConfigured.Error(),
			Message:      "Please set TMDB_API_KEY for the server",
			Reason:       string(ce.Status),
			Instructions: ce.Instructions(),
		})
	case errors.As(err, &se):
		log.Error().Int("status", se.Code).Str("body", se.Body).Msg("tmdb api error")
		writeError(w, r, se.Code, APIError{
			Error:      "TMDB API error",
			StatusCode: se.Code,
			Message:    err.Error(),
			Response:   se.Body,
		})
	case errors.Is(err, context.DeadlineExceeded):
		log.Error().Err(err).Msg("tmdb api timeout")
		writeError(w, r, http.StatusGatewayTimeout, APIError{
			Error:   "Request timeout",
			Message: "TMDB API took too long to respond",
		})
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		log.Warn().Err(err).Msg("tmdb circuit open")
		writeError(w, r, http.StatusServiceUnavailable, APIError{
			Error:   "TMDB unavailable",
			Message: "TMDB is failing; retry shortly",
		})
	default:
		log.Error().Err(err).Msg("unexpected tmdb failure")
		writeError(w, r, http.StatusInternalServerError, APIError{
			Error:   "Internal server error",
			Message: "Error fetching " + what + ": " + err.Error(),
		})
	}
}
