// Package googlebooks queries the public Google Books volumes API.
package googlebooks

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

const (
	DefaultBaseURL    = "https://www.googleapis.com/books/v1"
	DefaultTimeout    = 10 * time.Second
	DefaultMaxResults = 5

	maxResponseBytes = 1 << 20
)

type Client struct {
	http    *http.Client
	baseURL string
	timeout time.Duration
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}
func WithBaseURL(raw string) Option {
	return func(c *Client) {
		if raw != "" {
			c.baseURL = strings.TrimRight(raw, "/")
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

func New(opts ...Option) *Client {
	c := &Client{
		http:    http.DefaultClient,
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Volume is the subset of a volume resource the gateway uses.
type Volume struct {
	ID         string `json:"id"`
	VolumeInfo struct {
		Title         string   `json:"title"`
		Authors       []string `json:"authors"`
		Description   string   `json:"description"`
		AverageRating float64  `json:"averageRating"`
		PreviewLink   string   `json:"previewLink"`
		PublishedDate string   `json:"publishedDate"`
		Categories    []string `json:"categories"`
		ImageLinks    struct {
			Thumbnail string `json:"thumbnail"`
		} `json:"imageLinks"`
	} `json:"volumeInfo"`
}

type volumesResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []Volume `json:"items"`
}

// Search runs a volumes query. Non-2xx answers and malformed bodies are errors.
func (c *Client) Search(ctx context.Context, q string, maxResults int) ([]Volume, error) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := c.baseURL + "/volumes?" + url.Values{
		"q":          {q},
		"maxResults": {strconv.Itoa(maxResults)},
	}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET /volumes: %s", resp.Status)
	}
	var out volumesResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("GET /volumes: decode: %w", err)
	}
	return out.Items, nil
}
