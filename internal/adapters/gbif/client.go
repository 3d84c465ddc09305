// Package gbif reads species and synonym name usages from the GBIF species API.
package gbif

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"specifytools/internal/domain"
	"specifytools/internal/ports"
)

const (
	DefaultBaseURL  = "https://api.gbif.org/v1"
	DefaultPageSize = 100

	defaultTimeout   = 30 * time.Second
	defaultRate      = 10 // requests per second
	userAgent        = "specify-synonymize"
	maxErrorBodySize = 512
)

// Client implements ports.SpeciesFetcher
type Client struct {
	baseURL  string
	http     *http.Client
	limiter  *rate.Limiter
	pageSize int
}

// Ensure Client implements SpeciesFetcher
var _ ports.SpeciesFetcher = (*Client)(nil)

// Option configures a Client
type Option func(*Client)

// WithBaseURL points the client at another API root
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithPageSize sets the synonyms page size
func WithPageSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithRateLimit caps requests per second; zero or less disables the limit
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// NewClient creates a GBIF client
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:  DefaultBaseURL,
		http:     &http.Client{Timeout: defaultTimeout},
		limiter:  rate.NewLimiter(defaultRate, 1),
		pageSize: DefaultPageSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// synonymPage is one page of GET /species/{key}/synonyms
type synonymPage struct {
	Offset       int                `json:"offset"`
	Limit        int                `json:"limit"`
	EndOfRecords bool               `json:"endOfRecords"`
	Results      []domain.NameUsage `json:"results"`
}

// Species fetches GET /species/{key}. A 404 returns ok=false.
func (c *Client) Species(ctx context.Context, key string) (domain.NameUsage, bool, error) {
	var usage domain.NameUsage
	found, err := c.get(ctx, "/species/"+url.PathEscape(key), nil, &usage)
	if err != nil || !found {
		return domain.NameUsage{}, false, err
	}
	return usage, true, nil
}

// Synonyms fetches every page of GET /species/{key}/synonyms
func (c *Client) Synonyms(ctx context.Context, key string) ([]domain.NameUsage, error) {
	path := "/species/" + url.PathEscape(key) + "/synonyms"

	var usages []domain.NameUsage
	offset := 0
	for {
		q := url.Values{}
		q.Set("offset", strconv.Itoa(offset))
		q.Set("limit", strconv.Itoa(c.pageSize))

		var page synonymPage
		found, err := c.get(ctx, path, q, &page)
		if err != nil {
			return nil, err
		}
		if !found {
			return usages, nil
		}
		usages = append(usages, page.Results...)
		if page.EndOfRecords || len(page.Results) == 0 {
			return usages, nil
		}
		offset += len(page.Results)
	}
}

// get decodes a JSON response into out. found is false on 404.
func (c *Client) get(ctx context.Context, path string, q url.Values, out any) (found bool, err error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return false, err
	}

	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to call %s: %w", u, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return false, fmt.Errorf("GET %s: status %d: %s", u, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", u, err)
	}
	return true, nil
}
