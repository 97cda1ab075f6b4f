// Package fakestore reads the FakeStore sample product catalog.
package fakestore

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
	DefaultBaseURL = "https://fakestoreapi.com"
	DefaultTimeout = 10 * time.Second

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

type Product struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      struct {
		Rate  float64 `json:"rate"`
		Count int     `json:"count"`
	} `json:"rating"`
}

// Link is the public URL of the product.
func (c *Client) Link(p Product) string {
	return c.baseURL + "/products/" + strconv.Itoa(p.ID)
}

// Products lists the catalog, or one category of it when category is set.
func (c *Client) Products(ctx context.Context, category string) ([]Product, error) {
	p := "/products"
	if category != "" {
		p += "/category/" + url.PathEscape(category)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+p, nil)
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
		return nil, fmt.Errorf("GET %s: %s", p, resp.Status)
	}
	var out []Product
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("GET %s: decode: %w", p, err)
	}
	return out, nil
}

var categoryTerms = []struct {
	category string
	terms    []string
}{
	{"electronics", []string{"electronics", "gadgets", "tech", "computer", "phone", "laptop"}},
	{"jewelery", []string{"jewelry", "jewellery", "necklace", "ring", "earring"}},
	{"men's clothing", []string{"men's", "men", "male", "shirt", "pants", "jacket"}},
	{"women's clothing", []string{"women's", "women", "female", "dress", "skirt", "blouse"}},
}

// CategoryFor maps free text to a FakeStore category by whole-word match.
// It returns "" when no category term appears.
func CategoryFor(q string) string {
	words := strings.Fields(strings.ToLower(q))
	for _, ct := range categoryTerms {
		for _, term := range ct.terms {
			for _, w := range words {
				if w == term {
					return ct.category
				}
			}
		}
	}
	return ""
}
