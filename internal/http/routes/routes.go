package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/briangreenhill/recogate/cache"
	"github.com/briangreenhill/recogate/internal/config"
	appmw "github.com/briangreenhill/recogate/internal/http/middleware"
	"github.com/briangreenhill/recogate/internal/recommend"
)

var validate = validator.New()

type Server struct {
	Router   *chi.Mux
	Svc      *recommend.Service
	Cache    cache.Cache
	CacheTTL time.Duration
}

type ServerOptions struct {
	Svc      *recommend.Service
	Cache    cache.Cache
	Logger   zerolog.Logger
	Cfg      config.Config
	Gatherer prometheus.Gatherer // defaults to prometheus.DefaultGatherer
}

func New(opts ServerOptions) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(appmw.Logger(opts.Logger)...)
	r.Use(chimw.Recoverer)
	r.Use(appmw.Metrics)
	r.Use(appmw.CORS(opts.Cfg.HTTP.CORSOrigins))

	s := &Server{Router: r, Svc: opts.Svc, Cache: opts.Cache, CacheTTL: opts.Cfg.Cache.TTL}

	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("ok")); err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("write health check response")
		}
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/", s.handleRoot)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api", func(api chi.Router) {
		api.Use(appmw.RateLimit(opts.Cfg.HTTP.RateLimitRequests, opts.Cfg.HTTP.RateLimitWindow))
		api.Get("/", s.handleAPIRoot)

		api.Route("/tmdb", func(tr chi.Router) {
			tr.Get("/trending", s.handleTMDBTrending)
			tr.Get("/search", s.handleTMDBSearch)
			tr.Get("/movie/{id}", s.handleTMDBMovie)
			tr.Get("/popular", s.handleTMDBPopular)
			tr.Get("/health", s.handleTMDBHealth)
			tr.Get("/cache/stats", s.handleCacheStats)
			tr.Post("/cache/clear", s.handleCacheClear)
		})

		api.Route("/recommendations", func(rr chi.Router) {
			rr.Get("/", s.handleCuratedList)
			rr.Post("/", s.handleSearch)
			rr.Post("/discover", s.handleDiscover)
			rr.Get("/trending", s.handleTrending)
			rr.Get("/by-id/{id}", s.handleCuratedByID)
			rr.Get("/{category}", s.handleForUser)
		})
	})

	return s
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"message": "recogate is running"})
}

func (s *Server) handleAPIRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{
		"status":  "ok",
		"message": "API root",
		"endpoints": []string{
			"/api/recommendations/",
			"/api/recommendations/trending",
			"/api/recommendations/discover",
			"/api/tmdb/trending",
			"/api/tmdb/search",
			"/api/tmdb/health",
			"/health",
		},
	})
}

// APIError is the body of every non-2xx JSON response.
type APIError struct {
	Error        string `json:"error"`
	Message      string `json:"message,omitempty"`
	Reason       string `json:"reason,omitempty"`
	Instructions string `json:"instructions,omitempty"`
	StatusCode   int    `json:"status_code,omitempty"`
	Response     string `json:"response,omitempty"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, code int, e APIError) {
	writeJSON(w, r, code, e)
}

func invalid(w http.ResponseWriter, r *http.Request, err error) {
	writeError(w, r, http.StatusBadRequest, APIError{Error: "invalid request", Message: err.Error()})
}
