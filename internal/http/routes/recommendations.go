package routes

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/hlog"

	"github.com/briangreenhill/recogate/internal/catalog"
	"github.com/briangreenhill/recogate/internal/recommend"
)

const maxBodyBytes = 64 << 10

type queryPayload struct {
	Query string `json:"query" validate:"max=500"`
}

type userParams struct {
	Category string `validate:"oneof=movies books blogs products comics"`
	Username string `validate:"required"`
}

// decodeQuery accepts {"query": "..."} or a bare JSON string.
func decodeQuery(r *http.Request) (string, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return "", errors.New("request body is empty")
	}

	var p queryPayload
	if body[0] == '"' {
		if err := json.Unmarshal(body, &p.Query); err != nil {
			return "", fmt.Errorf("decode query string: %w", err)
		}
	} else if err := json.Unmarshal(body, &p); err != nil {
		return "", fmt.Errorf("decode query payload: %w", err)
	}
	if err := validate.Struct(p); err != nil {
		return "", err
	}
	return p.Query, nil
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q, err := decodeQuery(r)
	if err != nil {
		invalid(w, r, err)
		return
	}
	res, err := s.Svc.Search(r.Context(), q)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("query", q).Msg("recommendation search failed")
		writeError(w, r, http.StatusInternalServerError, APIError{Error: "Internal server error", Message: err.Error()})
		return
	}
	hlog.FromRequest(r).Info().
		Str("query", q).
		Str("category", res.Category.String()).
		Str("source", string(res.Source)).
		Int("results", len(res.Items)).
		Msg("recommendations served")
	writeJSON(w, r, http.StatusOK, res)
}

func (s *Server) handleDiscover(w http.ResponseWriter, r *http.Request) {
	q, err := decodeQuery(r)
	if err != nil {
		invalid(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, s.Svc.Discover(r.Context(), q))
}

func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, recommend.Trending())
}

func (s *Server) handleCuratedList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, catalog.CuratedList())
}

func (s *Server) handleCuratedByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		invalid(w, r, fmt.Errorf("id must be an integer"))
		return
	}
	item, ok := catalog.CuratedByID(id)
	if !ok {
		writeError(w, r, http.StatusNotFound, APIError{Error: "Recommendation not found"})
		return
	}
	writeJSON(w, r, http.StatusOK, item)
}

func (s *Server) handleForUser(w http.ResponseWriter, r *http.Request) {
	p := userParams{
		Category: strings.ToLower(chi.URLParam(r, "category")),
		Username: r.URL.Query().Get("username"),
	}
	if err := validate.Var(p.Category, "oneof=movies books blogs products comics"); err != nil {
		writeError(w, r, http.StatusBadRequest, APIError{Error: "Unsupported category"})
		return
	}
	if err := validate.Struct(p); err != nil {
		invalid(w, r, err)
		return
	}

	items, err := s.Svc.ForUser(p.Category, p.Username)
	if err != nil || len(items) == 0 {
		if err != nil && !errors.Is(err, recommend.ErrUnknownUser) {
			hlog.FromRequest(r).Warn().Err(err).Msg("per-user recommendations failed")
		}
		writeError(w, r, http.StatusNotFound, APIError{Error: "No recommendations found for user/category"})
		return
	}
	writeJSON(w, r, http.StatusOK, items)
}
