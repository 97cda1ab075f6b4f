// Package tmdb is a small client for The Movie Database v3 API.
package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL      = "https://api.themoviedb.org/3"
	DefaultImageBaseURL = "https://image.tmdb.org/t/p/w500"
	BackdropBaseURL     = "https://image.tmdb.org/t/p/original"

	DefaultTimeout = 30 * time.Second
	HealthTimeout  = 10 * time.Second

	maxResponseBytes = 1 << 20
)

type Client struct {
	http         *http.Client
	baseURL      *url.URL
	imageBaseURL string
	apiKey       string
	timeout      time.Duration

	limiter *rate.Limiter // optional
	breaker *gobreaker.CircuitBreaker[[]byte]
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}
func WithBaseURL(raw string) Option {
	return func(c *Client) {
		if u, err := url.Parse(raw); err == nil && raw != "" {
			c.baseURL = u
		}
	}
}
func WithImageBaseURL(raw string) Option {
	return func(c *Client) {
		if raw != "" {
			c.imageBaseURL = raw
		}
	}
}
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRateLimit caps outbound requests per second. A non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithBreaker trips after failures consecutive upstream failures and
// stays open for cooldown.
func WithBreaker(failures uint32, cooldown time.Duration) Option {
	return func(c *Client) { c.breaker = newBreaker(failures, cooldown) }
}

// New creates a client. An empty or placeholder key is accepted so that
// callers can still report configuration status; every API call then
// fails with a *ConfigError.
func New(apiKey string, opts ...Option) *Client {
	u, _ := url.Parse(DefaultBaseURL)
	c := &Client{
		http:         http.DefaultClient,
		baseURL:      u,
		imageBaseURL: DefaultImageBaseURL,
		apiKey:       apiKey,
		timeout:      DefaultTimeout,
		breaker:      newBreaker(5, 30*time.Second),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func newBreaker(failures uint32, cooldown time.Duration) *gobreaker.CircuitBreaker[[]byte] {
	if failures == 0 {
		failures = 5
	}
	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "tmdb",
		MaxRequests: 1,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || clientSide(err) || errors.Is(err, context.Canceled)
		},
	})
}

// KeyStatus reports whether the client has a usable key.
func (c *Client) KeyStatus() KeyStatus {
	return CheckKey(c.apiKey)
}

// BreakerState is the circuit breaker state, e.g. "closed".
func (c *Client) BreakerState() string {
	return c.breaker.State().String()
}

// ImageURL turns a poster path into an absolute URL, or "" if path is empty.
func (c *Client) ImageURL(p string) string {
	if p == "" {
		return ""
	}
	return c.imageBaseURL + p
}

func (c *Client) newReq(ctx context.Context, p string, q map[string]string) (*http.Request, error) {
	u := *c.baseURL
	u.Path = path.Join(u.Path, p)
	qq := u.Query()
	for k, v := range q {
		qq.Set(k, v)
	}
	qq.Set("api_key", c.apiKey)
	u.RawQuery = qq.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) doJSON(ctx context.Context, timeout time.Duration, p string, q map[string]string, out any) error {
	if st := c.KeyStatus(); st != KeyConfigured {
		return &ConfigError{Status: st}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("GET %s: rate limit: %w", p, err)
		}
	}

	body, err := c.breaker.Execute(func() ([]byte, error) {
		req, err := c.newReq(ctx, p, q)
		if err != nil {
			return nil, err
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		b, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if err != nil {
			return nil, err
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			if len(b) > 200 {
				b = b[:200]
			}
			return nil, &StatusError{Code: resp.StatusCode, Path: p, Body: string(b)}
		}
		return b, nil
	})
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("GET %s: decode: %w", p, err)
	}
	return nil
}

// SearchMovies runs /search/movie with adult titles excluded.
func (c *Client) SearchMovies(ctx context.Context, query string, opts SearchOptions) (Page, error) {
	q := map[string]string{
		"query":         query,
		"include_adult": "false",
		"page":          "1",
	}
	if opts.Page > 0 {
		q["page"] = strconv.Itoa(opts.Page)
	}
	if opts.GenreID > 0 {
		q["with_genres"] = strconv.Itoa(opts.GenreID)
	}
	var pg Page
	err := c.doJSON(ctx, c.timeout, "/search/movie", q, &pg)
	return pg, err
}

// TrendingMovies returns this week's trending movies.
func (c *Client) TrendingMovies(ctx context.Context) (Page, error) {
	var pg Page
	err := c.doJSON(ctx, c.timeout, "/trending/movie/week", nil, &pg)
	return pg, err
}

// PopularMovies returns a page (1..500) of popular movies.
func (c *Client) PopularMovies(ctx context.Context, page int) (Page, error) {
	if page <= 0 {
		page = 1
	}
	var pg Page
	err := c.doJSON(ctx, c.timeout, "/movie/popular", map[string]string{"page": strconv.Itoa(page)}, &pg)
	return pg, err
}

// MovieDetails fetches one movie. A missing id yields an error matching ErrNotFound.
func (c *Client) MovieDetails(ctx context.Context, id int) (MovieDetail, error) {
	var d MovieDetail
	err := c.doJSON(ctx, c.timeout, "/movie/"+strconv.Itoa(id), nil, &d)
	return d, err
}

// Ping calls /configuration to verify the key. A rejected key yields
// an error matching ErrUnauthorized.
func (c *Client) Ping(ctx context.Context) error {
	var discard map[string]any
	return c.doJSON(ctx, HealthTimeout, "/configuration", nil, &discard)
}
