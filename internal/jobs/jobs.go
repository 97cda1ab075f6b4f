// Package jobs runs in-process maintenance on a cron schedule.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/briangreenhill/recogate/internal/metrics"
	"github.com/briangreenhill/recogate/tmdb"
)

const (
	TaskSweepCache   = "cache:sweep"
	TaskWarmTrending = "tmdb:warm_trending"
)

// Task is one unit of scheduled work.
type Task func(ctx context.Context) error

type Scheduler struct {
	cron    *cron.Cron
	log     zerolog.Logger
	timeout time.Duration

	mu    sync.Mutex
	tasks map[string]Task
}

func NewScheduler(log zerolog.Logger, timeout time.Duration) *Scheduler {
	cl := cronLogger{log: log}
	return &Scheduler{
		cron:    cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
		log:     log,
		timeout: timeout,
		tasks:   make(map[string]Task),
	}
}

// Add registers task under name on a cron spec such as "@every 1m".
func (s *Scheduler) Add(spec, name string, task Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.tasks[name]; dup {
		return fmt.Errorf("task %s already registered", name)
	}
	if _, err := s.cron.AddFunc(spec, func() { _ = s.Run(context.Background(), name) }); err != nil {
		return fmt.Errorf("schedule %s (%q): %w", name, spec, err)
	}
	s.tasks[name] = task
	return nil
}

// Run executes a registered task now, outside its schedule.
func (s *Scheduler) Run(ctx context.Context, name string) error {
	s.mu.Lock()
	task, ok := s.tasks[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("unknown task %s", name)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	err := task(ctx)
	if err != nil {
		s.log.Warn().Err(err).Str("task", name).Dur("duration", time.Since(start)).Msg("task failed")
		return err
	}
	s.log.Debug().Str("task", name).Dur("duration", time.Since(start)).Msg("task done")
	return nil
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop halts scheduling and waits for running tasks or ctx, whichever ends first.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// Sweeper drops expired entries and reports how many went.
type Sweeper interface {
	CleanupExpired() int
}

func SweepCache(c Sweeper, log zerolog.Logger) Task {
	return func(context.Context) error {
		n := c.CleanupExpired()
		metrics.CacheEvictionsTotal.Add(float64(n))
		if n > 0 {
			log.Info().Int("removed", n).Msg("expired cache entries swept")
		}
		return nil
	}
}

// TrendingSource is satisfied by the recommendation service.
type TrendingSource interface {
	TrendingMovies(ctx context.Context) (tmdb.Page, bool, error)
}

// WarmTrending keeps the weekly trending page hot. Without a TMDB key
// there is nothing to warm, which is not a failure.
func WarmTrending(src TrendingSource) Task {
	return func(ctx context.Context) error {
		_, _, err := src.TrendingMovies(ctx)
		if errors.Is(err, tmdb.ErrNotConfigured) {
			return nil
		}
		return err
	}
}

type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
