// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/briangreenhill/recogate/cache"
	"github.com/briangreenhill/recogate/fakestore"
	"github.com/briangreenhill/recogate/googlebooks"
	"github.com/briangreenhill/recogate/internal/config"
	"github.com/briangreenhill/recogate/internal/http/routes"
	"github.com/briangreenhill/recogate/internal/jobs"
	"github.com/briangreenhill/recogate/internal/logging"
	"github.com/briangreenhill/recogate/internal/metrics"
	"github.com/briangreenhill/recogate/internal/prompt"
	"github.com/briangreenhill/recogate/internal/recommend"
	"github.com/briangreenhill/recogate/internal/telemetry"
	"github.com/briangreenhill/recogate/sources"
	"github.com/briangreenhill/recogate/tmdb"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLogger := logging.New("info", "json")
		bootLogger.Fatal().Err(err).Msg("load config")
	}

	// Logger
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	logger.Info().Str("port", cfg.Port).Msg("starting recogate")
	logTMDBKey(logger, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Tracing
	shutdownTracing, err := telemetry.Init(ctx, "recogate")
	if err != nil {
		logger.Fatal().Err(err).Msg("init tracing")
	}

	// Metrics
	metrics.Register(prometheus.DefaultRegisterer)

	// Cache
	store := cache.NewStore(
		cache.WithDefaultTTL(cfg.Cache.TTL),
		cache.WithCounters(metrics.CacheHitsTotal, metrics.CacheMissesTotal),
	)

	// Upstream clients share one traced transport
	httpClient := telemetry.HTTPClient()
	tmdbClient := tmdb.New(cfg.TMDB.APIKey,
		tmdb.WithHTTPClient(httpClient),
		tmdb.WithBaseURL(cfg.TMDB.BaseURL),
		tmdb.WithImageBaseURL(cfg.TMDB.ImageBaseURL),
		tmdb.WithTimeout(cfg.TMDB.Timeout),
		tmdb.WithRateLimit(cfg.TMDB.RateLimit, cfg.TMDB.RateBurst),
		tmdb.WithBreaker(cfg.TMDB.BreakerFailures, cfg.TMDB.BreakerCooldown),
	)
	books := googlebooks.New(
		googlebooks.WithHTTPClient(httpClient),
		googlebooks.WithBaseURL(cfg.Books.BaseURL),
		googlebooks.WithTimeout(cfg.Books.Timeout),
	)
	shop := fakestore.New(
		fakestore.WithHTTPClient(httpClient),
		fakestore.WithBaseURL(cfg.Products.BaseURL),
		fakestore.WithTimeout(cfg.Products.Timeout),
	)

	registry := sources.NewRegistry()
	registry.Register(sources.NewTMDB(tmdbClient))
	registry.Register(sources.NewGoogleBooks(books))
	registry.Register(sources.NewFakeStore(shop))
	registry.Register(sources.BlogTemplates{})
	logger.Info().Strs("sources", registry.List()).Msg("content sources registered")

	summary, err := prompt.NewGenerator(cfg.SummaryTemplatePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("load summary template")
	}

	svc := recommend.New(tmdbClient, store,
		recommend.WithLogger(logger.With().Str("component", "recommend").Logger()),
		recommend.WithCacheTTL(cfg.Cache.TTL),
		recommend.WithSources(registry),
		recommend.WithSummary(summary),
		recommend.WithFanout(cfg.DiscoverFanout),
	)

	// Scheduled maintenance
	sched := jobs.NewScheduler(logger.With().Str("component", "jobs").Logger(), cfg.TMDB.Timeout)
	if err := sched.Add(cfg.Cache.SweepSchedule, jobs.TaskSweepCache, jobs.SweepCache(store, logger)); err != nil {
		logger.Fatal().Err(err).Msg("schedule cache sweep")
	}
	if cfg.Cache.WarmTrending && cfg.HasTMDB() {
		// refresh just before the cached page would expire
		every := cfg.Cache.TTL - cfg.Cache.TTL/10
		if err := sched.Add("@every "+every.String(), jobs.TaskWarmTrending, jobs.WarmTrending(svc)); err != nil {
			logger.Fatal().Err(err).Msg("schedule trending warm-up")
		}
		go func() { _ = sched.Run(ctx, jobs.TaskWarmTrending) }()
	}
	sched.Start()

	// Router / server
	s := routes.New(routes.ServerOptions{
		Svc:    svc,
		Cache:  store,
		Logger: logger,
		Cfg:    cfg,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           telemetry.Handler(s.Router, "recogate"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	sched.Stop(shutdownCtx)
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("tracing shutdown")
	}
}

// logTMDBKey reports the key state at startup without printing the key.
func logTMDBKey(logger zerolog.Logger, cfg config.Config) {
	switch cfg.TMDBKeyStatus() {
	case tmdb.KeyMissing:
		logger.Warn().Msg("TMDB_API_KEY not set, movie searches use static data")
	case tmdb.KeyPlaceholder:
		logger.Warn().Msg("TMDB_API_KEY is the placeholder value, movie searches use static data")
	default:
		logger.Info().Int("key_length", len(cfg.TMDB.APIKey)).Msg("TMDB_API_KEY loaded")
	}
}
