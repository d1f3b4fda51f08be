package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/poiesic/harvest/core"
)

const (
	// DefaultEndpoint is the listing fetched when none is configured.
	DefaultEndpoint = "https://www.reddit.com/r/crypto/hot.json"

	// DefaultUserAgent identifies the crawler to the API.
	DefaultUserAgent = "MyRedditApp/0.1 by OutlandishnessGrand8"

	// DefaultLimit is the maximum page size the listing API accepts.
	DefaultLimit = 100
)

// listing mirrors the subset of the listing envelope that is consumed.
type listing struct {
	Data struct {
		Children []struct {
			Data core.RawItem `json:"data"`
		} `json:"children"`
		After *string `json:"after"`
	} `json:"data"`
}

// Client fetches listing pages one at a time.
type Client struct {
	endpoint   string
	userAgent  string
	limit      int
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client) error

// WithEndpoint sets the listing URL.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) error {
		if endpoint == "" {
			return ErrEndpointRequired
		}
		if _, err := url.Parse(endpoint); err != nil {
			return fmt.Errorf("invalid endpoint: %w", err)
		}
		c.endpoint = endpoint
		return nil
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) error {
		if ua != "" {
			c.userAgent = ua
		}
		return nil
	}
}

// WithLimit sets the page size. Default is 100.
func WithLimit(limit int) Option {
	return func(c *Client) error {
		if limit < 1 {
			return ErrInvalidLimit
		}
		c.limit = limit
		return nil
	}
}

// WithTimeout bounds each request. Default is no timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) error {
		c.httpClient.Timeout = timeout
		return nil
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc != nil {
			c.httpClient = hc
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// NewClient creates a listing client with the default endpoint, user agent
// and page size.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{
		endpoint:   DefaultEndpoint,
		userAgent:  DefaultUserAgent,
		limit:      DefaultLimit,
		httpClient: &http.Client{},
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	c.logger = c.logger.With("component", "reddit-client")
	return c, nil
}

// FetchPage performs one GET for the page starting after cursor. An empty
// cursor fetches the first page. Non-2xx responses return *HTTPError.
func (c *Client) FetchPage(ctx context.Context, cursor core.Cursor) (*core.Page, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}
	q := u.Query()
	q.Set("limit", strconv.Itoa(c.limit))
	if !cursor.IsZero() {
		q.Set("after", cursor.String())
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug("fetching page", "url", u.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			URL:        u.String(),
		}
	}

	var body listing
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode listing: %w", err)
	}

	page := &core.Page{Items: make([]core.RawItem, 0, len(body.Data.Children))}
	for _, child := range body.Data.Children {
		page.Items = append(page.Items, child.Data)
	}
	if body.Data.After != nil {
		page.Next = core.Cursor(*body.Data.After)
	}

	c.logger.Debug("fetched page", "items", len(page.Items), "next", page.Next.String())
	return page, nil
}
